package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logger writing to w at the named level. "off" and "none"
// discard everything; an unknown level falls back to info.
func NewLogger(level string, w io.Writer) *logrus.Logger {
	logger := logrus.New()

	if level == "off" || level == "none" {
		logger.SetOutput(io.Discard)
	} else {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		logger.SetLevel(lvl)
		logger.SetOutput(w)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
