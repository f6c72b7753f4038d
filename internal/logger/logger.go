package logger

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Fields carries structured context for a log line.
type Fields map[string]interface{}

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
}

// SetVerbose switches debug-level tracing on or off. The propagation and
// selection traces are debug level; command outcomes are info and up.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// Debug logs a debug message
func Debug(msg string, fields Fields) {
	entry(fields).Debug(msg)
}

// Info logs an info message
func Info(msg string, fields Fields) {
	entry(fields).Info(msg)
}

// Warn logs a warning message
func Warn(msg string, fields Fields) {
	entry(fields).Warn(msg)
}

// Error logs an error message
func Error(msg string, err error, fields Fields) {
	entry(fields).WithError(err).Error(msg)
}

func entry(fields Fields) *logrus.Entry {
	if fields == nil {
		return logrus.NewEntry(log)
	}
	return log.WithFields(logrus.Fields(fields))
}
