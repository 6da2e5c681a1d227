package sqlconn

import (
	"log/slog"
	"time"
)

// Logger, çalıştırılan her ifadeyi, argümanlarını, süresini ve varsa hatasını alır.
type Logger interface {
	Log(query string, args []any, duration time.Duration, err error)
}

// NopLogger tüm kayıtları yok sayar. Varsayılan logger'dır.
type NopLogger struct{}

// Log implements Logger.
func (NopLogger) Log(string, []any, time.Duration, error) {}

// SlogLogger writes statements to a slog.Logger: failures at error level, statements slower
// than SlowThreshold at warn level and everything else at debug level.
type SlogLogger struct {
	Logger        *slog.Logger
	SlowThreshold time.Duration
}

// NewSlogLogger returns a SlogLogger with a 100ms slow threshold. A nil logger means
// slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{Logger: l, SlowThreshold: 100 * time.Millisecond}
}

// Log implements Logger.
func (s *SlogLogger) Log(query string, args []any, duration time.Duration, err error) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	switch {
	case err != nil:
		l.Error("query failed", "query", query, "args", args, "duration", duration, "error", err)
	case s.SlowThreshold > 0 && duration > s.SlowThreshold:
		l.Warn("slow query detected", "query", query, "args", args, "duration", duration)
	default:
		l.Debug("query", "query", query, "args", args, "duration", duration)
	}
}
