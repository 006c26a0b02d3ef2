package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type appNameHook struct {
	appName string
}

func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}

// NewLogger builds the process logger. The level comes from LOG_LEVEL and
// defaults to info.
func NewLogger(appName string) *logrus.Logger {
	return newLogger(appName, os.Stdout, os.Getenv("LOG_LEVEL"))
}

func newLogger(appName string, out io.Writer, levelName string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	levelName = strings.ToLower(strings.TrimSpace(levelName))
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", levelName)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.AddHook(&appNameHook{appName})
	return logger
}
