package config

import (
	"github.com/MonkyMars/gecho"
)

var logger gecho.Logger

// InitializeLogger builds the process-wide logger honoring LOG_LEVEL.
func InitializeLogger() *gecho.Logger {
	logger = *gecho.NewLogger(gecho.NewConfig(
		gecho.WithShowCaller(true),
		gecho.WithLogLevel(gecho.ParseLogLevel(GetLogLevel())),
	))
	return &logger
}

func GetLogger() *gecho.Logger {
	return &logger
}
