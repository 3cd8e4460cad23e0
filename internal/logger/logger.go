package logger

import (
	"sync"
	"time"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level.
// Timestamps are rendered in loc, so log lines line up with the reading
// timestamps written to the store. The first call initializes the logger;
// subsequent calls ignore the arguments and return the existing instance.
func Get(level string, loc *time.Location) *Logger {
	once.Do(func() {
		if loc == nil {
			loc = time.UTC
		}
		globalLogger = newZapLogger(level, loc)
	})
	return globalLogger
}
