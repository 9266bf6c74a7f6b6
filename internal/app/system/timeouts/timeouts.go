// Package timeouts holds the deadlines handlers put on store and storage
// calls. Values are process-wide and set once from configuration at startup.
package timeouts

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Config is one set of deadlines.
type Config struct {
	Ping   time.Duration // health probes
	Short  time.Duration // single identity or record lookups
	Medium time.Duration // uploads and reads over every record
}

// Defaults apply until Set is called.
var Defaults = Config{
	Ping:   2 * time.Second,
	Short:  5 * time.Second,
	Medium: 10 * time.Second,
}

var current atomic.Pointer[Config]

func init() {
	d := Defaults
	current.Store(&d)
}

// Set replaces the non-zero fields of cfg.
func Set(cfg Config) {
	next := *current.Load()
	if cfg.Ping > 0 {
		next.Ping = cfg.Ping
	}
	if cfg.Short > 0 {
		next.Short = cfg.Short
	}
	if cfg.Medium > 0 {
		next.Medium = cfg.Medium
	}
	current.Store(&next)
}

// Get returns the deadlines in effect.
func Get() Config { return *current.Load() }

func Ping() time.Duration   { return current.Load().Ping }
func Short() time.Duration  { return current.Load().Short }
func Medium() time.Duration { return current.Load().Medium }

// WithTimeout derives a context with the given deadline. Its cancel func
// logs op when the deadline was what ended the context.
func WithTimeout(parent context.Context, d time.Duration, log *zap.Logger, op string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if log != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn("operation timed out", zap.String("operation", op), zap.Duration("timeout", d))
		}
		cancel()
	}
}
