// Package log wraps a shared logrus logger for all notable components.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerbose switches the shared logger to debug level.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// Logger returns the shared logger for callers that need fields.
func Logger() *logrus.Logger {
	return logger
}

// WithFields returns an entry with structured fields attached.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
