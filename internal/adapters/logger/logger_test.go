package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ship/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_WritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New()
	l.SetOutput(&buf)

	l.Info("cache hit")
	l.Warn("cache store failed")
	l.Error(zerr.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "cache hit")
	assert.Contains(t, out, "cache store failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}
