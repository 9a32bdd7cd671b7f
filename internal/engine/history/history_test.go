package history

import (
	"testing"

	"github.com/dshills/listcraft/internal/doctree"
)

func docWithText(text string) *doctree.Document {
	return doctree.NewDocument(doctree.NewParagraph(text))
}

func firstText(d *doctree.Document) string {
	return d.Blocks[0].(*doctree.Paragraph).Text
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New(0)
	before := docWithText("v1")
	after := docWithText("v2")
	h.Record("edit", before, after)

	if !h.CanUndo() {
		t.Fatal("expected undo entry")
	}
	got, err := h.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if firstText(got) != "v1" {
		t.Errorf("undo = %q, want v1", firstText(got))
	}

	if !h.CanRedo() {
		t.Fatal("expected redo entry")
	}
	got, err = h.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if firstText(got) != "v2" {
		t.Errorf("redo = %q, want v2", firstText(got))
	}
}

func TestUndoEmpty(t *testing.T) {
	h := New(0)
	if _, err := h.Undo(); err != ErrNothingToUndo {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
	if _, err := h.Redo(); err != ErrNothingToRedo {
		t.Errorf("err = %v, want ErrNothingToRedo", err)
	}
}

func TestRecordClearsRedo(t *testing.T) {
	h := New(0)
	h.Record("a", docWithText("1"), docWithText("2"))
	if _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	h.Record("b", docWithText("1"), docWithText("3"))
	if h.CanRedo() {
		t.Error("a fresh record must clear the redo stack")
	}
}

func TestMaxEntriesBound(t *testing.T) {
	h := New(2)
	h.Record("a", docWithText("1"), docWithText("2"))
	h.Record("b", docWithText("2"), docWithText("3"))
	h.Record("c", docWithText("3"), docWithText("4"))

	got, _ := h.Undo()
	if firstText(got) != "3" {
		t.Errorf("undo = %q, want 3", firstText(got))
	}
	got, _ = h.Undo()
	if firstText(got) != "2" {
		t.Errorf("undo = %q, want 2", firstText(got))
	}
	if h.CanUndo() {
		t.Error("oldest entry should have been evicted")
	}
}

func TestGroupCoalesces(t *testing.T) {
	h := New(0)
	h.BeginGroup("toggle")
	h.Record("step1", docWithText("start"), docWithText("mid"))
	h.Record("step2", docWithText("mid"), docWithText("late"))
	h.EndGroup(docWithText("end"))

	got, err := h.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if firstText(got) != "start" {
		t.Errorf("group undo = %q, want the first snapshot", firstText(got))
	}
	if h.CanUndo() {
		t.Error("group should collapse to one entry")
	}

	got, _ = h.Redo()
	if firstText(got) != "end" {
		t.Errorf("group redo = %q, want the EndGroup snapshot", firstText(got))
	}
}

func TestEmptyGroupDropped(t *testing.T) {
	h := New(0)
	h.BeginGroup("noop")
	h.EndGroup(docWithText("x"))
	if h.CanUndo() {
		t.Error("group without operations should not record")
	}
}

func TestUndoReturnsClone(t *testing.T) {
	h := New(0)
	h.Record("edit", docWithText("v1"), docWithText("v2"))

	got, _ := h.Undo()
	got.Blocks[0].(*doctree.Paragraph).Text = "mutated"

	if _, err := h.Redo(); err != nil {
		t.Fatal(err)
	}
	again, err := h.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if firstText(again) != "v1" {
		t.Error("history must hand out clones, not shared snapshots")
	}
}
