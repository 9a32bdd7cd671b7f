// Package doctree defines the block tree that the list engine reads and
// mutates: paragraphs, lists, and list items. The tree is owned by the
// host editor; the engine borrows it for the duration of one operation.
package doctree

// Block is a node in the document tree. Implementations are *Paragraph
// and *List.
type Block interface {
	isBlock()
}

// Document is the root container of blocks.
type Document struct {
	Blocks []Block
}

// NewDocument creates an empty document.
func NewDocument(blocks ...Block) *Document {
	return &Document{Blocks: blocks}
}

// IndexOf returns the index of b in the document's top-level blocks,
// or -1 if b is not a top-level block.
func (d *Document) IndexOf(b Block) int {
	for i, blk := range d.Blocks {
		if blk == b {
			return i
		}
	}
	return -1
}

// InsertBlock inserts b at index i, clamping i to the valid range.
func (d *Document) InsertBlock(i int, b Block) {
	if i < 0 {
		i = 0
	}
	if i > len(d.Blocks) {
		i = len(d.Blocks)
	}
	d.Blocks = append(d.Blocks, nil)
	copy(d.Blocks[i+1:], d.Blocks[i:])
	d.Blocks[i] = b
}

// RemoveBlock removes the block at index i. Out-of-range indices are
// ignored.
func (d *Document) RemoveBlock(i int) {
	if i < 0 || i >= len(d.Blocks) {
		return
	}
	d.Blocks = append(d.Blocks[:i], d.Blocks[i+1:]...)
}

// ReplaceBlock swaps the block at index i for b.
func (d *Document) ReplaceBlock(i int, b Block) {
	if i < 0 || i >= len(d.Blocks) {
		return
	}
	d.Blocks[i] = b
}

// Clone returns a deep copy of the document. Block IDs are preserved so
// captured positions remain valid against the copy.
func (d *Document) Clone() *Document {
	c := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		c.Blocks[i] = cloneBlock(b)
	}
	return c
}

func cloneBlock(b Block) Block {
	switch v := b.(type) {
	case *Paragraph:
		return v.Clone()
	case *List:
		return v.Clone()
	default:
		return b
	}
}

// Position addresses a caret location: the ID of the paragraph that
// holds the caret and a rune offset within its text.
type Position struct {
	BlockID string
	Offset  int
}
