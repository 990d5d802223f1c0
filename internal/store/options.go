package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Option configures a durable backend.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger routes backend diagnostics to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Open opens the named backend under dataDir.
func Open(backend, dataDir string, opts ...Option) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(filepath.Join(dataDir, "kcal.db"), opts...)
	case BackendBadger:
		return OpenBadger(filepath.Join(dataDir, "badger"), opts...)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Path returns the file or directory Open would use, or "" for memory.
func Path(backend, dataDir string) string {
	switch backend {
	case BackendSQLite, "":
		return filepath.Join(dataDir, "kcal.db")
	case BackendBadger:
		return filepath.Join(dataDir, "badger")
	default:
		return ""
	}
}
