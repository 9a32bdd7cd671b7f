// Package tracking captures caret positions before a structural
// mutation and restores the closest equivalent position afterward.
// Positions anchor to paragraph IDs, which survive splits and moves;
// merges are recorded as redirects so a caret in a removed paragraph
// lands where its content went.
package tracking

import (
	"sync"

	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/navigate"
)

// Anchor is a captured caret position plus enough context to fall back
// when the anchored paragraph no longer exists.
type Anchor struct {
	Pos doctree.Position

	// prevID is the paragraph immediately preceding the anchored one in
	// document order at capture time.
	prevID string
}

// redirect records that a paragraph's content was merged into another.
type redirect struct {
	targetID string
	base     int // rune length of the target before the merge
}

// Tracker resolves anchors across mutations. Redirects accumulate
// during one operation and are cleared by Begin.
type Tracker struct {
	mu        sync.Mutex
	redirects map[string]redirect
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{redirects: map[string]redirect{}}
}

// Begin clears redirect state at the start of an operation.
func (t *Tracker) Begin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.redirects)
}

// RecordMerge notes that the paragraph srcID was merged into dstID,
// whose text was base runes long before the merge. A caret at offset n
// in src restores to base+n in dst.
func (t *Tracker) RecordMerge(srcID, dstID string, base int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.redirects[srcID] = redirect{targetID: dstID, base: base}
}

// Capture snapshots a caret position before a mutation.
func (t *Tracker) Capture(doc *doctree.Document, pos doctree.Position) Anchor {
	a := Anchor{Pos: pos}
	var prev *doctree.Paragraph
	for _, p := range navigate.Paragraphs(doc) {
		if p.ID == pos.BlockID {
			if prev != nil {
				a.prevID = prev.ID
			}
			break
		}
		prev = p
	}
	return a
}

// Restore resolves an anchor against the mutated document. Resolution
// order: the anchored paragraph itself, the merge recipient of its
// content, the end of the preceding paragraph, then document start.
func (t *Tracker) Restore(doc *doctree.Document, a Anchor) doctree.Position {
	if p, ok := navigate.FindParagraph(doc, a.Pos.BlockID); ok {
		return doctree.Position{BlockID: p.ID, Offset: clampOffset(p, a.Pos.Offset)}
	}

	t.mu.Lock()
	r, ok := t.redirects[a.Pos.BlockID]
	t.mu.Unlock()
	for ok {
		if p, found := navigate.FindParagraph(doc, r.targetID); found {
			return doctree.Position{BlockID: p.ID, Offset: clampOffset(p, r.base+a.Pos.Offset)}
		}
		// The recipient itself may have been merged onward.
		prev := r
		t.mu.Lock()
		r, ok = t.redirects[prev.targetID]
		t.mu.Unlock()
		if ok {
			r.base += prev.base
		}
	}

	if a.prevID != "" {
		if p, found := navigate.FindParagraph(doc, a.prevID); found {
			return doctree.Position{BlockID: p.ID, Offset: p.RuneLen()}
		}
	}

	if ps := navigate.Paragraphs(doc); len(ps) > 0 {
		return doctree.Position{BlockID: ps[0].ID, Offset: 0}
	}
	return doctree.Position{}
}

func clampOffset(p *doctree.Paragraph, off int) int {
	if off < 0 {
		return 0
	}
	if n := p.RuneLen(); off > n {
		return n
	}
	return off
}
