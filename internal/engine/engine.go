package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/history"
	"github.com/dshills/listcraft/internal/engine/mutate"
	"github.com/dshills/listcraft/internal/engine/numbering"
	"github.com/dshills/listcraft/internal/engine/tracking"
	"github.com/dshills/listcraft/internal/event"
	"github.com/dshills/listcraft/internal/markdown"
	"github.com/dshills/listcraft/internal/schedule"
	"github.com/dshills/listcraft/internal/serialize"
)

// Re-export commonly used types for convenience.
type (
	// Position is a caret location: a block ID plus a rune offset.
	Position = doctree.Position

	// MarkerStyle names a bullet glyph or ordinal scheme.
	MarkerStyle = doctree.MarkerStyle

	// Scheme maps nesting levels to marker styles.
	Scheme = numbering.Scheme

	// Policy holds the configurable mutation rules.
	Policy = mutate.Policy
)

// Re-export marker styles.
const (
	Disc       = doctree.Disc
	Circle     = doctree.Circle
	Square     = doctree.Square
	Decimal    = doctree.Decimal
	LowerAlpha = doctree.LowerAlpha
	UpperAlpha = doctree.UpperAlpha
	LowerRoman = doctree.LowerRoman
	UpperRoman = doctree.UpperRoman
	Outline    = doctree.Outline
)

// Engine is the main facade for the list editing core.
//
// All operations are thread-safe and can be called from multiple
// goroutines.
type Engine struct {
	mu sync.Mutex

	doc     *doctree.Document
	tracker *tracking.Tracker
	history *history.History
	bus     *event.Bus
	renum   *schedule.Renumberer

	scheme numbering.Scheme
	policy mutate.Policy

	maxUndoEntries int
	debounce       time.Duration
	log            *slog.Logger
	closed         bool
}

// New creates an Engine over an empty document.
func New(opts ...Option) *Engine {
	e := &Engine{
		doc:            &doctree.Document{},
		tracker:        tracking.NewTracker(),
		policy:         mutate.DefaultPolicy(),
		maxUndoEntries: DefaultMaxUndoEntries,
		debounce:       DefaultDebounce,
		log:            slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = event.NewBus()
	}
	e.history = history.New(e.maxUndoEntries)
	e.renum = schedule.NewRenumberer(e.debounce, e.renumberPass)
	return e
}

// Close stops the renumber scheduler. The engine rejects mutations
// afterward.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.renum.Stop()
}

// ============================================================================
// Document access
// ============================================================================

// Document returns a deep copy of the current document.
func (e *Engine) Document() *doctree.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

// SetDocument replaces the document and resets history and tracking.
func (e *Engine) SetDocument(doc *doctree.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	doctree.Repair(e.doc)
	numbering.Renumber(e.doc)
	e.history.Clear()
	e.tracker.Begin()
	e.bus.Publish(event.Event{Topic: event.TopicDocumentLoaded})
}

// LoadMarkdown parses markdown source into a fresh document.
func (e *Engine) LoadMarkdown(src []byte) error {
	doc, err := markdown.Parse(src)
	if err != nil {
		return fmt.Errorf("loading markdown: %w", err)
	}
	e.SetDocument(doc)
	return nil
}

// RenderMarkdown flattens the current document back to markdown.
func (e *Engine) RenderMarkdown() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return markdown.Render(e.doc)
}

// ============================================================================
// Mutations
// ============================================================================

// ContinueItem handles Enter inside a list item: split the item at the
// caret, or leave the list when the item is blank.
func (e *Engine) ContinueItem(pos Position) (Position, error) {
	return e.apply("continue item", pos, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.Continue(doc, pos, e.policy)
	})
}

// BackspaceAtStart handles Backspace with the caret at the start of a
// list item's text.
func (e *Engine) BackspaceAtStart(pos Position) (Position, error) {
	return e.apply("backspace", pos, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.Backspace(doc, pos, e.policy, e.tracker)
	})
}

// DeleteAtEnd handles Delete with the caret at the end of a list item's
// text: the next item merges into this one.
func (e *Engine) DeleteAtEnd(pos Position) (Position, error) {
	return e.apply("delete forward", pos, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.Delete(doc, pos, e.tracker)
	})
}

// SoftBreak inserts a line break inside the current item without
// creating a new one.
func (e *Engine) SoftBreak(pos Position) (Position, error) {
	return e.apply("soft break", pos, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.SoftBreak(doc, pos)
	})
}

// IndentSelection nests the item under its preceding sibling.
func (e *Engine) IndentSelection(pos Position) (Position, error) {
	return e.apply("indent", pos, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.Indent(doc, pos, e.policy)
	})
}

// OutdentSelection lifts the item one level, or converts a top-level
// item to a paragraph.
func (e *Engine) OutdentSelection(pos Position) (Position, error) {
	return e.apply("outdent", pos, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.Outdent(doc, pos, e.policy)
	})
}

// InsertBulletList toggles a disc list over the selected blocks.
func (e *Engine) InsertBulletList(ids []string) error {
	return e.applySelection("bullet list", ids, Disc)
}

// InsertNumberedList toggles an ordinal list over the selected blocks,
// using the configured scheme's top-level style.
func (e *Engine) InsertNumberedList(ids []string) error {
	_, err := e.apply("numbered list", Position{}, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.Toggle(doc, ids, e.scheme.StyleForLevel(0))
	})
	return err
}

// ToggleList applies, restyles, or strips a list over the selected
// blocks depending on what the selection already is.
func (e *Engine) ToggleList(ids []string, style MarkerStyle) error {
	return e.applySelection("toggle list", ids, style)
}

// RemoveListFormatting converts the selected items back to paragraphs.
func (e *Engine) RemoveListFormatting(ids []string) error {
	_, err := e.apply("remove list formatting", Position{}, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.RemoveListFormatting(doc, ids)
	})
	return err
}

func (e *Engine) applySelection(name string, ids []string, style MarkerStyle) error {
	_, err := e.apply(name, Position{}, func(doc *doctree.Document) (mutate.Result, error) {
		return mutate.Toggle(doc, ids, style)
	})
	return err
}

// SetNumberingScheme restyles every numbered list to the scheme's
// per-level styles and makes the scheme the default for new lists.
func (e *Engine) SetNumberingScheme(scheme Scheme) error {
	_, err := e.apply("set numbering scheme", Position{}, func(doc *doctree.Document) (mutate.Result, error) {
		e.scheme = scheme
		changed := false
		for _, b := range doc.Blocks {
			if l, ok := b.(*doctree.List); ok {
				if applyScheme(l, scheme, 0) {
					changed = true
				}
			}
		}
		return mutate.Result{Changed: changed}, nil
	})
	return err
}

func applyScheme(l *doctree.List, scheme Scheme, level int) bool {
	changed := false
	if l.Style.IsOrdinal() {
		if want := scheme.StyleForLevel(level); want.IsOrdinal() && l.Style != want {
			l.Style = want
			changed = true
		}
	}
	for _, it := range l.Items {
		if nested := it.NestedList(); nested != nil {
			if applyScheme(nested, scheme, level+1) {
				changed = true
			}
		}
	}
	return changed
}

// ============================================================================
// Numbering
// ============================================================================

// Renumber recomputes every list marker immediately, bypassing the
// debounce window.
func (e *Engine) Renumber() {
	e.renumberPass()
}

// FlushRenumber runs a pending scheduled pass now.
func (e *Engine) FlushRenumber() {
	e.renum.Flush()
}

func (e *Engine) renumberPass() {
	e.mu.Lock()
	numbering.Renumber(e.doc)
	e.mu.Unlock()
	e.bus.Publish(event.Event{Topic: event.TopicListRenumbered})
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo restores the document state before the last operation.
func (e *Engine) Undo() error {
	return e.travel((*history.History).Undo)
}

// Redo re-applies the last undone operation.
func (e *Engine) Redo() error {
	return e.travel((*history.History).Redo)
}

func (e *Engine) travel(step func(*history.History) (*doctree.Document, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	doc, err := step(e.history)
	if err != nil {
		return err
	}
	e.doc = doc
	e.tracker.Begin()
	e.bus.Publish(event.Event{Topic: event.TopicListChanged})
	e.renum.Notify()
	return nil
}

// CanUndo reports whether an undo entry exists.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo entry exists.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// ============================================================================
// Persistence
// ============================================================================

// SerializeListState encodes list structure and numbering state as an
// opaque blob for the host's save pipeline.
func (e *Engine) SerializeListState() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return serialize.ListState(e.doc)
}

// RestoreListState replaces the document from a blob produced by
// SerializeListState.
func (e *Engine) RestoreListState(blob string) error {
	_, err := e.apply("restore list state", Position{}, func(doc *doctree.Document) (mutate.Result, error) {
		if err := serialize.RestoreListState(doc, blob); err != nil {
			return mutate.Result{}, err
		}
		return mutate.Result{Changed: true}, nil
	})
	return err
}

// ============================================================================
// Transaction core
// ============================================================================

// apply runs one mutation as a transaction: snapshot, mutate, repair,
// record history, restore the caret, publish, schedule renumbering.
// A failed or panicking mutation rolls the document back and leaves
// every observable state untouched.
func (e *Engine) apply(name string, pos Position, fn func(*doctree.Document) (mutate.Result, error)) (Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return pos, ErrClosed
	}

	before := e.doc.Clone()
	e.tracker.Begin()
	anchor := e.tracker.Capture(e.doc, pos)

	res, err := e.run(fn)
	if err != nil {
		e.doc = before
		e.log.Warn("operation rolled back", "op", name, "error", err)
		return pos, fmt.Errorf("%s: %w", name, err)
	}
	if !res.Changed {
		return pos, nil
	}

	doctree.Repair(e.doc)
	e.history.Record(name, before, e.doc.Clone())

	caret := res.Caret
	if caret == (Position{}) {
		caret = e.tracker.Restore(e.doc, anchor)
	}

	e.bus.Publish(event.Event{Topic: event.TopicListChanged, Payload: name})
	e.renum.Notify()
	return caret, nil
}

// run executes the mutation with panic containment.
func (e *Engine) run(fn func(*doctree.Document) (mutate.Result, error)) (res mutate.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrOperationPanic, r)
		}
	}()
	return fn(e.doc)
}
