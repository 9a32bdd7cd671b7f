package doctree

import "testing"

func TestSplitAtMidContent(t *testing.T) {
	p := NewParagraph("hello world", Run{Start: 0, End: 5, Attrs: "bold"}, Run{Start: 3, End: 9, Attrs: "em"})
	tail := p.SplitAt(5)

	if p.Text != "hello" {
		t.Errorf("head text = %q, want %q", p.Text, "hello")
	}
	if tail.Text != " world" {
		t.Errorf("tail text = %q, want %q", tail.Text, " world")
	}
	if len(p.Runs) != 2 {
		t.Fatalf("head runs = %d, want 2", len(p.Runs))
	}
	if p.Runs[1] != (Run{Start: 3, End: 5, Attrs: "em"}) {
		t.Errorf("spanning run not truncated: %+v", p.Runs[1])
	}
	if len(tail.Runs) != 1 {
		t.Fatalf("tail runs = %d, want 1", len(tail.Runs))
	}
	if tail.Runs[0] != (Run{Start: 0, End: 4, Attrs: "em"}) {
		t.Errorf("spanning run not rebased: %+v", tail.Runs[0])
	}
	if p.ID == tail.ID {
		t.Error("tail must get a fresh ID")
	}
}

func TestSplitConservesContent(t *testing.T) {
	original := "héllo wörld"
	for off := 0; off <= len([]rune(original)); off++ {
		p := NewParagraph(original)
		tail := p.SplitAt(off)
		if p.Text+tail.Text != original {
			t.Errorf("split at %d lost content: %q + %q", off, p.Text, tail.Text)
		}
	}
}

func TestSplitAtGraphemeBoundary(t *testing.T) {
	// "e" followed by a combining acute accent is one grapheme cluster
	// of two runes; a split inside it must snap back.
	p := NewParagraph("éx")
	tail := p.SplitAt(1)
	if p.Text != "" {
		t.Errorf("head = %q, want empty (snap before cluster)", p.Text)
	}
	if tail.Text != "éx" {
		t.Errorf("tail = %q, want full cluster", tail.Text)
	}
}

func TestParagraphAppend(t *testing.T) {
	a := NewParagraph("Intro", Run{Start: 0, End: 5, Attrs: "bold"})
	b := NewParagraph("Point", Run{Start: 1, End: 3, Attrs: "em"})
	a.Append(b)

	if a.Text != "IntroPoint" {
		t.Errorf("text = %q, want %q", a.Text, "IntroPoint")
	}
	if len(a.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(a.Runs))
	}
	if a.Runs[1] != (Run{Start: 6, End: 8, Attrs: "em"}) {
		t.Errorf("appended run not shifted: %+v", a.Runs[1])
	}
}

func TestInsertText(t *testing.T) {
	p := NewParagraph("ac", Run{Start: 0, End: 2, Attrs: "bold"})
	p.InsertText(1, "b")
	if p.Text != "abc" {
		t.Errorf("text = %q, want %q", p.Text, "abc")
	}
	if p.Runs[0] != (Run{Start: 0, End: 3, Attrs: "bold"}) {
		t.Errorf("spanning run not widened: %+v", p.Runs[0])
	}
}

func TestListInsertRemove(t *testing.T) {
	l := NewList(Disc, NewTextItem("a"), NewTextItem("c"))
	b := NewTextItem("b")
	l.InsertItem(1, b)

	if len(l.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(l.Items))
	}
	if l.IndexOf(b) != 1 {
		t.Errorf("IndexOf = %d, want 1", l.IndexOf(b))
	}

	l.RemoveItem(1)
	if len(l.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(l.Items))
	}
	if l.IndexOf(b) != -1 {
		t.Error("removed item still found")
	}
}

func TestNestedListAccessors(t *testing.T) {
	it := NewTextItem("parent")
	if it.NestedList() != nil {
		t.Fatal("fresh item should have no nested list")
	}
	nested := NewList(Disc, NewTextItem("child"))
	it.SetNestedList(nested)
	if it.NestedList() != nested {
		t.Fatal("nested list not attached")
	}

	detached := it.RemoveNestedList()
	if detached != nested {
		t.Fatal("wrong list detached")
	}
	if it.NestedList() != nil {
		t.Fatal("nested list still attached")
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name string
		item *ListItem
		want bool
	}{
		{"empty", NewTextItem(""), true},
		{"whitespace", NewTextItem("  \t"), true},
		{"text", NewTextItem("x"), false},
		{"nested only", func() *ListItem {
			it := NewTextItem("")
			it.SetNestedList(NewList(Disc, NewTextItem("c")))
			return it
		}(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.IsBlank(); got != tt.want {
				t.Errorf("IsBlank = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRepairRemovesEmptyLists(t *testing.T) {
	doc := NewDocument(
		NewParagraph("before"),
		&List{Style: Disc},
		NewParagraph("after"),
	)
	if !Repair(doc) {
		t.Fatal("repair should report a change")
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(doc.Blocks))
	}
}

func TestRepairFixesEmptyItem(t *testing.T) {
	broken := &ListItem{ID: "x"}
	doc := NewDocument(NewList(Disc, broken))
	if !Repair(doc) {
		t.Fatal("repair should report a change")
	}
	if broken.Paragraph() == nil {
		t.Fatal("empty item should gain a paragraph")
	}
}

func TestRepairDetachesEmptyNestedList(t *testing.T) {
	it := NewTextItem("a")
	it.SetNestedList(&List{Style: Disc})
	doc := NewDocument(NewList(Disc, it))
	if !Repair(doc) {
		t.Fatal("repair should report a change")
	}
	if it.NestedList() != nil {
		t.Fatal("empty nested list should be removed")
	}
}

func TestRepairParagraphFirst(t *testing.T) {
	it := &ListItem{ID: "x", Blocks: []Block{NewList(Disc, NewTextItem("c"))}}
	doc := NewDocument(NewList(Disc, it))
	Repair(doc)
	if _, ok := it.Blocks[0].(*Paragraph); !ok {
		t.Fatal("first block should be a paragraph after repair")
	}
}

func TestCloneIsDeep(t *testing.T) {
	item := NewTextItem("a")
	doc := NewDocument(NewList(Decimal, item))
	c := doc.Clone()

	item.Paragraph().Text = "mutated"
	cl := c.Blocks[0].(*List)
	if cl.Items[0].Paragraph().Text != "a" {
		t.Error("clone shares paragraph state with original")
	}
	if cl.Items[0].ID != item.ID {
		t.Error("clone must preserve item IDs")
	}
}
