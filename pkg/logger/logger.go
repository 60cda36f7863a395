package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process logger. Components get a copy through their
// constructors instead of reading this variable.
var Log zerolog.Logger

func Init(isDev bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	Log = New(os.Stdout, isDev)
}

func New(out io.Writer, isDev bool) zerolog.Logger {
	if isDev {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}).With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func IsDev() bool {
	env := os.Getenv("ENV")
	return env == "" || env == "dev" || env == "development"
}
