// Package cli contains the command line interface for bulba.
//
// # Usage
//
//	bulba [flags] <command> [args]
//
// The commands are implemented by package [github.com/ardnew/bulba/cli/cmd].
// A command given no source of its own reads the first --source file, or
// stdin:
//
//	bulba -s app.bulba get database.pool.max_connections
//	bulba fmt yaml app.bulba
//	cat app.bulba | bulba check
//
// # Configuration Files
//
// Flag defaults are read from the configuration directory, e.g.
// $XDG_CONFIG_HOME/bulba, from any of:
//
//   - config.json: flag names as keys
//   - config.yaml: nested mappings joined with hyphens
//   - config.bulba: sections joined with hyphens
//
// For example, this config.bulba sets --log-level=debug:
//
//	BULBA!
//	(o) log (o)
//	    level ~> "debug"
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output on a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o bulba .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/bulba/pprof)
package cli
