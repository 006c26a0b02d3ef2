package utils

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("fabhomes", &buf, "DEBUG")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Info("listening")
	assert.Contains(t, buf.String(), "[fabhomes] listening")

	buf.Reset()
	log = newLogger("fabhomes", &buf, "chatty")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid LOG_LEVEL")

	assert.Equal(t, logrus.InfoLevel, newLogger("fabhomes", &buf, "").GetLevel())
}
