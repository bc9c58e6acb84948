// Package logger configures the process-wide logrus logger from the
// environment: LOG_LEVEL picks the level, and anything other than
// development gets JSON output.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

func Init() {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if os.Getenv("ENV") == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(os.Stdout)
}
