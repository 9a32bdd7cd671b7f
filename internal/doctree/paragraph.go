package doctree

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

// Run is one inline formatting span over a paragraph's text. Offsets are
// rune offsets, Start inclusive, End exclusive. Attrs is opaque to the
// engine; it is carried through splits and merges but never interpreted.
type Run struct {
	Start int
	End   int
	Attrs string
}

// Paragraph is opaque formatted content: text plus inline formatting
// runs. The engine copies, splits, and merges paragraphs but does not
// interpret their content.
type Paragraph struct {
	ID   string
	Text string
	Runs []Run
}

func (*Paragraph) isBlock() {}

// NewParagraph creates a paragraph with a fresh ID.
func NewParagraph(text string, runs ...Run) *Paragraph {
	return &Paragraph{ID: uuid.New().String(), Text: text, Runs: runs}
}

// RuneLen returns the paragraph's text length in runes.
func (p *Paragraph) RuneLen() int {
	return len([]rune(p.Text))
}

// IsBlank reports whether the text is empty or whitespace-only.
func (p *Paragraph) IsBlank() bool {
	return strings.TrimSpace(p.Text) == ""
}

// Clone returns a deep copy preserving the ID.
func (p *Paragraph) Clone() *Paragraph {
	c := &Paragraph{ID: p.ID, Text: p.Text}
	if len(p.Runs) > 0 {
		c.Runs = make([]Run, len(p.Runs))
		copy(c.Runs, p.Runs)
	}
	return c
}

// ClampOffset clamps a rune offset into the paragraph's text, snapping
// backward to the nearest grapheme-cluster boundary so a split never
// tears a multi-rune cluster.
func (p *Paragraph) ClampOffset(off int) int {
	n := p.RuneLen()
	if off <= 0 {
		return 0
	}
	if off >= n {
		return n
	}
	boundary := 0
	count := 0
	state := -1
	rest := p.Text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		next := count + len([]rune(cluster))
		if next > off {
			return boundary
		}
		count = next
		boundary = count
	}
	return boundary
}

// SplitAt splits the paragraph at the given rune offset. The receiver
// keeps text before the offset; the returned paragraph (with a fresh ID)
// holds the remainder. Formatting runs are truncated, moved, or split so
// neither side references text it does not hold.
func (p *Paragraph) SplitAt(off int) *Paragraph {
	off = p.ClampOffset(off)
	runes := []rune(p.Text)
	tail := NewParagraph(string(runes[off:]))
	p.Text = string(runes[:off])

	var head, rest []Run
	for _, r := range p.Runs {
		switch {
		case r.End <= off:
			head = append(head, r)
		case r.Start >= off:
			rest = append(rest, Run{Start: r.Start - off, End: r.End - off, Attrs: r.Attrs})
		default:
			head = append(head, Run{Start: r.Start, End: off, Attrs: r.Attrs})
			rest = append(rest, Run{Start: 0, End: r.End - off, Attrs: r.Attrs})
		}
	}
	p.Runs = head
	tail.Runs = rest
	return tail
}

// Append concatenates other's text and runs onto the receiver. Run
// offsets from other are shifted past the receiver's existing text.
func (p *Paragraph) Append(other *Paragraph) {
	shift := p.RuneLen()
	p.Text += other.Text
	for _, r := range other.Runs {
		p.Runs = append(p.Runs, Run{Start: r.Start + shift, End: r.End + shift, Attrs: r.Attrs})
	}
}

// InsertText inserts s at the given rune offset, widening any run that
// spans the insertion point and shifting runs after it.
func (p *Paragraph) InsertText(off int, s string) {
	off = p.ClampOffset(off)
	runes := []rune(p.Text)
	width := len([]rune(s))
	p.Text = string(runes[:off]) + s + string(runes[off:])
	for i := range p.Runs {
		r := &p.Runs[i]
		if r.Start >= off {
			r.Start += width
		}
		if r.End > off {
			r.End += width
		}
	}
}
