// Package logging holds the logrus logger shared by flexpeg packages.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"

	DefaultLogFormat LogFormat    = LogFormatText
	DefaultLogLevel  logrus.Level = logrus.InfoLevel
)

// DefaultLogger is the base logger. It is different from the logrus
// default so that libraries do not write through it unexpectedly.
var DefaultLogger = initializeDefaultLogger()

func initializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(GetFormatter(DefaultLogFormat))
	logger.SetLevel(DefaultLogLevel)
	return logger
}

// GetFormatter returns formatter for format or nil for unknown format.
func GetFormatter(format LogFormat) logrus.Formatter {
	switch format {
	case LogFormatText:
		return &logrus.TextFormatter{
			DisableTimestamp: true,
			DisableColors:    true,
		}
	case LogFormatJSON:
		return &logrus.JSONFormatter{
			DisableTimestamp: true,
		}
	}

	return nil
}

// ParseLogFormat validates format name, case does not matter.
func ParseLogFormat(format string) (LogFormat, error) {
	f := LogFormat(strings.ToLower(format))
	if GetFormatter(f) == nil {
		return DefaultLogFormat, fmt.Errorf("incorrect log format %q, expected 'text' or 'json'", format)
	}
	return f, nil
}

// SetLogLevel updates the DefaultLogger with a new logrus.Level
func SetLogLevel(level logrus.Level) {
	DefaultLogger.SetLevel(level)
}

// SetLogFormat updates the DefaultLogger with a new LogFormat
func SetLogFormat(format LogFormat) {
	DefaultLogger.SetFormatter(GetFormatter(format))
}

// SetupLogging configures DefaultLogger output, level, and format from option values.
// Empty values keep defaults.
func SetupLogging(out io.Writer, level, format string) error {
	if out != nil {
		DefaultLogger.SetOutput(out)
	}

	if level != "" {
		l, e := logrus.ParseLevel(level)
		if e != nil {
			return e
		}
		SetLogLevel(l)
	}

	if format != "" {
		f, e := ParseLogFormat(format)
		if e != nil {
			return e
		}
		SetLogFormat(f)
	}

	return nil
}
