package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func ConsoleLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}

// FileLogger logs to the given file and mirrors everything to stderr.
func FileLogger(level logrus.Level, path string) (*logrus.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, f, nil
}
