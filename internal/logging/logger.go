// Package logging builds the service-wide structured logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Development gets a human console
// writer; everything else logs JSON.
func Setup(appName, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(os.Stdout)
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	logger = logger.With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()

	log.Logger = logger
	return logger
}
