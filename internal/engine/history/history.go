// Package history provides the transactional wrapper around structural
// list edits: whole-document snapshots for rollback on failure and a
// bounded undo/redo stack so the host sees one coalesced edit per user
// operation.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/listcraft/internal/doctree"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack.
const DefaultMaxEntries = 200

// entry is one completed operation: the document as it was before and
// after.
type entry struct {
	name      string
	before    *doctree.Document
	after     *doctree.Document
	timestamp time.Time
}

// History manages undo/redo state for one document.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Grouping state: while a group is open, recorded operations
	// coalesce into a single undo entry.
	grouping    bool
	groupName   string
	groupBefore *doctree.Document

	maxEntries int
}

// New creates a history manager. maxEntries <= 0 selects the default.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record pushes a completed operation. The snapshots are cloned by the
// caller (the engine) and owned by the history from here on. Clears the
// redo stack.
func (h *History) Record(name string, before, after *doctree.Document) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Only the first snapshot of the group matters; the group's
		// "after" is taken at EndGroup.
		if h.groupBefore == nil {
			h.groupBefore = before
		}
		return
	}
	h.pushLocked(&entry{name: name, before: before, after: after, timestamp: time.Now()})
}

// BeginGroup starts coalescing subsequent operations into one entry.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.grouping = true
	h.groupName = name
	h.groupBefore = nil
}

// EndGroup closes the group, recording one entry spanning everything
// since BeginGroup. A group with no recorded operations is dropped.
func (h *History) EndGroup(after *doctree.Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.grouping {
		return
	}
	h.grouping = false
	if h.groupBefore == nil {
		return
	}
	h.pushLocked(&entry{name: h.groupName, before: h.groupBefore, after: after, timestamp: time.Now()})
	h.groupBefore = nil
}

func (h *History) pushLocked(e *entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo returns the snapshot to restore, or ErrNothingToUndo.
func (h *History) Undo() (*doctree.Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e.before.Clone(), nil
}

// Redo returns the snapshot to restore, or ErrNothingToRedo.
func (h *History) Redo() (*doctree.Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e.after.Clone(), nil
}

// CanUndo reports whether an undo entry exists.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo entry exists.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// Clear drops all undo/redo state (document unload).
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupBefore = nil
}
