package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// Logger returns the shared process logger. Level comes from LOG_LEVEL
// (default warn, so data-quality notices surface without drowning CLI output).
func Logger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()

		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
		logLevel, err := logrus.ParseLevel(level)
		if err != nil {
			logLevel = logrus.WarnLevel
		}
		logger.SetLevel(logLevel)
		logger.SetOutput(os.Stderr)
	})
	return logger
}
