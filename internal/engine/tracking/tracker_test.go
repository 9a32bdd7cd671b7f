package tracking

import (
	"testing"

	"github.com/dshills/listcraft/internal/doctree"
)

func twoParagraphDoc() (*doctree.Document, *doctree.Paragraph, *doctree.Paragraph) {
	a := doctree.NewParagraph("alpha")
	b := doctree.NewParagraph("beta")
	return doctree.NewDocument(a, b), a, b
}

func TestRestoreExactBlock(t *testing.T) {
	doc, _, b := twoParagraphDoc()
	tr := NewTracker()

	a := tr.Capture(doc, doctree.Position{BlockID: b.ID, Offset: 2})
	got := tr.Restore(doc, a)
	if got.BlockID != b.ID || got.Offset != 2 {
		t.Errorf("got %+v, want block %s offset 2", got, b.ID)
	}
}

func TestRestoreClampsOffset(t *testing.T) {
	doc, _, b := twoParagraphDoc()
	tr := NewTracker()

	a := tr.Capture(doc, doctree.Position{BlockID: b.ID, Offset: 2})
	b.Text = "b"
	got := tr.Restore(doc, a)
	if got.Offset != 1 {
		t.Errorf("offset = %d, want clamp to 1", got.Offset)
	}
}

func TestRestoreFollowsMergeRedirect(t *testing.T) {
	doc, first, second := twoParagraphDoc()
	tr := NewTracker()
	tr.Begin()

	anchor := tr.Capture(doc, doctree.Position{BlockID: second.ID, Offset: 2})

	// Merge second into first, as backspace-at-start does.
	base := first.RuneLen()
	first.Append(second)
	doc.RemoveBlock(1)
	tr.RecordMerge(second.ID, first.ID, base)

	got := tr.Restore(doc, anchor)
	if got.BlockID != first.ID {
		t.Fatalf("caret should follow merged content into %s, got %s", first.ID, got.BlockID)
	}
	if got.Offset != base+2 {
		t.Errorf("offset = %d, want %d", got.Offset, base+2)
	}
}

func TestRestoreChainedRedirects(t *testing.T) {
	a := doctree.NewParagraph("aa")
	b := doctree.NewParagraph("bbb")
	c := doctree.NewParagraph("cccc")
	doc := doctree.NewDocument(a, b, c)
	tr := NewTracker()
	tr.Begin()

	anchor := tr.Capture(doc, doctree.Position{BlockID: c.ID, Offset: 1})

	// c merges into b, then b merges into a.
	tr.RecordMerge(c.ID, b.ID, b.RuneLen())
	b.Append(c)
	doc.RemoveBlock(2)
	tr.RecordMerge(b.ID, a.ID, a.RuneLen())
	a.Append(b)
	doc.RemoveBlock(1)

	got := tr.Restore(doc, anchor)
	if got.BlockID != a.ID {
		t.Fatalf("caret should chain to %s, got %s", a.ID, got.BlockID)
	}
	// a("aa") + b("bbb") then offset 1 inside c's content.
	if got.Offset != 2+3+1 {
		t.Errorf("offset = %d, want 6", got.Offset)
	}
}

func TestRestoreFallsBackToPreceding(t *testing.T) {
	doc, first, second := twoParagraphDoc()
	tr := NewTracker()
	tr.Begin()

	anchor := tr.Capture(doc, doctree.Position{BlockID: second.ID, Offset: 3})
	doc.RemoveBlock(1) // second vanishes with no redirect

	got := tr.Restore(doc, anchor)
	if got.BlockID != first.ID {
		t.Fatalf("caret should land on preceding paragraph")
	}
	if got.Offset != first.RuneLen() {
		t.Errorf("offset = %d, want end of preceding (%d)", got.Offset, first.RuneLen())
	}
}

func TestRestoreFallsBackToDocumentStart(t *testing.T) {
	doc, first, _ := twoParagraphDoc()
	tr := NewTracker()

	anchor := tr.Capture(doc, doctree.Position{BlockID: first.ID, Offset: 0})
	doc.RemoveBlock(0)

	got := tr.Restore(doc, anchor)
	remaining := doc.Blocks[0].(*doctree.Paragraph)
	if got.BlockID != remaining.ID || got.Offset != 0 {
		t.Errorf("caret should land at document start, got %+v", got)
	}
}

func TestBeginClearsRedirects(t *testing.T) {
	doc, first, second := twoParagraphDoc()
	tr := NewTracker()
	tr.RecordMerge(second.ID, first.ID, first.RuneLen())
	tr.Begin()

	anchor := tr.Capture(doc, doctree.Position{BlockID: second.ID, Offset: 0})
	doc.RemoveBlock(1)
	got := tr.Restore(doc, anchor)
	if got.BlockID == second.ID {
		t.Fatal("stale block resolved")
	}
	// With redirects cleared the preceding-paragraph fallback applies.
	if got.BlockID != first.ID || got.Offset != first.RuneLen() {
		t.Errorf("got %+v, want end of first", got)
	}
}
