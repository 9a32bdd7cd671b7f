package engine

import (
	"log/slog"
	"time"

	"github.com/dshills/listcraft/internal/config"
	"github.com/dshills/listcraft/internal/engine/history"
	"github.com/dshills/listcraft/internal/event"
	"github.com/dshills/listcraft/internal/schedule"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultDebounce       = schedule.DefaultDebounce
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithConfig applies a loaded configuration: numbering scheme, nesting
// policy, and renumber debounce.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		e.scheme.Levels = cfg.LevelStyles()
		e.policy.NestedOrdinalStyle = cfg.NestedOrdinalStyle()
		e.policy.OutdentReconvert = cfg.Policy.OutdentReconvert
		e.debounce = cfg.Debounce()
	}
}

// WithBus sets the event bus the engine publishes on. The engine
// creates its own when not given one.
func WithBus(bus *event.Bus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithMaxUndoEntries bounds the undo stack.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndoEntries = n
		}
	}
}

// WithDebounce sets the renumber debounce window.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.debounce = d
		}
	}
}

// WithLogger sets the structured logger for operation failures.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}
