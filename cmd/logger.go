package cmd

import (
	"github.com/sirupsen/logrus"
)

// newLogger creates a logger at the configured level. Verbose forces DebugLevel.
func newLogger(verbose bool, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(Logger.Formatter)
	log.SetOutput(Logger.Out)

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(level)
	}

	return log
}
