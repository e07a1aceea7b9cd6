// Package service holds the application services sitting between the HTTP
// handlers and the repositories.
package service

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
