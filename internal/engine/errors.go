package engine

import (
	"errors"

	"github.com/dshills/listcraft/internal/engine/history"
	"github.com/dshills/listcraft/internal/engine/mutate"
)

// Errors returned by Engine operations.
var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("engine is closed")

	// ErrOperationPanic wraps a panic recovered during a mutation; the
	// document has been rolled back to its pre-operation state.
	ErrOperationPanic = errors.New("operation panicked")
)

// Re-export the sentinel errors callers match against.
var (
	ErrNothingToUndo = history.ErrNothingToUndo
	ErrNothingToRedo = history.ErrNothingToRedo
	ErrMalformedItem = mutate.ErrMalformedItem
)
