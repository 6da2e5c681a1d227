package sqlconn

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger(t *testing.T) {
	newLogger := func() (*SlogLogger, *bytes.Buffer) {
		var buf bytes.Buffer
		l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		return l, &buf
	}

	t.Run("debug for fast statements", func(t *testing.T) {
		l, buf := newLogger()
		l.Log("SELECT 1", nil, time.Millisecond, nil)
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), `query="SELECT 1"`)
	})

	t.Run("warn for slow statements", func(t *testing.T) {
		l, buf := newLogger()
		l.Log("SELECT 1", nil, time.Second, nil)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "slow query detected")
	})

	t.Run("error for failures", func(t *testing.T) {
		l, buf := newLogger()
		l.Log("SELECT 1", nil, time.Second, errors.New("no such table"))
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "no such table")
	})

	t.Run("zero threshold never warns", func(t *testing.T) {
		l, buf := newLogger()
		l.SlowThreshold = 0
		l.Log("SELECT 1", nil, time.Hour, nil)
		assert.Contains(t, buf.String(), "level=DEBUG")
	})
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NopLogger{}.Log("SELECT 1", nil, 0, nil)
	})
}
