package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init configures the global zerolog logger and returns it. Debug mode
// gets a human-readable console writer; anything else logs JSON.
func Init(ginMode string) zerolog.Logger {
	w := io.Writer(os.Stdout)

	if ginMode == "release" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	return logger
}
