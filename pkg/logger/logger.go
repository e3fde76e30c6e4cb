// Package logger configures the process-wide structured logger.
package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// Setup initializes the logger. JSON output in production, human-readable
// text elsewhere.
func Setup(env string, debug bool) *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(os.Stdout)

		if env == "production" {
			log.SetFormatter(&logrus.JSONFormatter{})
		} else {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}

		if debug {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}
	})
	return log
}

// Get returns the configured logger, initializing a default one if Setup
// was never called (tests).
func Get() *logrus.Logger {
	if log == nil {
		return Setup("development", false)
	}
	return log
}
