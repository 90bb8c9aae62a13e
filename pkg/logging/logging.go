package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ConsoleLogger returns a logger writing human-readable lines to stderr.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// FileLogger returns a logger that writes JSON lines to logPath, creating
// parent directories as needed. The caller owns the returned file handle.
func FileLogger(level logrus.Level, logPath string) (*os.File, *logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetOutput(io.MultiWriter(f, os.Stderr))
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return f, logger, nil
}
