package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/bulba/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("document parsed", slog.Int("key_count", 6))
	logger.Debug("not written")
	// Output:
	// level=INFO msg="document parsed" key_count=6
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))

	logger = logger.With(slog.String("source", "app.bulba"))

	logger.Trace("tokenize complete", slog.Int("token_count", 12))
	// Output:
	// {"level":"TRACE","msg":"tokenize complete","source":"app.bulba","token_count":12}
}

func ExampleParseLevel() {
	for name := range log.Levels() {
		level := log.ParseLevel(name)
		os.Stdout.WriteString(name + " " + level.String() + "\n")
	}
	// Output:
	// trace trace
	// debug debug
	// info info
	// warn warn
	// error error
}
