package logging

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/zap"
)

// Supported backends for New.
const (
	BackendZap  = "zap"
	BackendSlog = "slog"
)

// New builds a Logger for the given backend and level name
// ("debug", "info", "warn", "error").
func New(backend, level string) (Logger, error) {
	switch backend {
	case BackendZap, "":
		return NewZap(level, false)
	case BackendSlog:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		return NewSlogText(os.Stderr, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewZapLogger(zap.NewNop())
}

// Sync flushes l when its backend buffers entries; other loggers return nil.
func Sync(l Logger) error {
	if s, ok := l.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
