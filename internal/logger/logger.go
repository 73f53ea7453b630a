package logger

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns the logger used across the extraction run. Output is JSON on
// stdout pipes and a console writer on terminals; DEBUG=1 lowers the level.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	l := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if isatty.IsTerminal(os.Stderr.Fd()) {
		l = l.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if os.Getenv("DEBUG") == "1" {
		l = l.Level(zerolog.DebugLevel)
	} else {
		l = l.Level(zerolog.InfoLevel)
	}

	return l
}
