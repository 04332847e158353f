// Package log wraps [log/slog] with a leveled logger configured by functional
// options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("document parsed", slog.Int("key_count", 6))
//
// The zero [Logger] discards all records, so libraries can accept one as an
// option and log unconditionally.
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with some settings changed. The package-level
// functions ([Info], [ErrorContext], ...) write through a default logger that
// [Config] reconfigures.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is written as "TRACE" in every
// format.
//
// # Output Formats
//
// [FormatText] (default) writes one line per record. With [WithPretty] it is
// colorized using lipgloss when the output is a terminal, and group
// attributes are flattened into dotted keys. [FormatJSON] writes one JSON
// object per record.
package log
