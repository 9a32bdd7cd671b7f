// Package mutate implements the structural list operations: continue,
// split, merge, indent, outdent, and paragraph/list conversion. Each
// operation is a pure tree edit; the engine facade wraps it in a
// transaction and repairs invariants at the boundary.
package mutate

import (
	"errors"

	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/navigate"
)

// ErrMalformedItem indicates an item without a leading paragraph was
// encountered mid-operation. Repair normally prevents this.
var ErrMalformedItem = errors.New("list item has no paragraph")

// Policy holds the configurable mutation rules the spec treats as
// explicit decisions rather than hard-coded behavior.
type Policy struct {
	// NestedOrdinalStyle is the style given to a nested list freshly
	// created by indenting out of an ordinal list. Ordinal lists do not
	// auto-nest as ordinal by default.
	NestedOrdinalStyle doctree.MarkerStyle

	// OutdentReconvert allows an item that an indent demoted from an
	// ordinal list to reconvert to an ordinal item on outdent when an
	// ordinal sibling immediately precedes the insertion point.
	OutdentReconvert bool
}

// DefaultPolicy mirrors the observed editor behavior.
func DefaultPolicy() Policy {
	return Policy{
		NestedOrdinalStyle: doctree.Disc,
		OutdentReconvert:   true,
	}
}

// Result reports the outcome of one mutation.
type Result struct {
	Changed bool
	// Caret is where the caret should land. Zero when unchanged.
	Caret doctree.Position
}

// MergeRecorder receives content-merge notifications so the position
// tracker can redirect carets out of removed paragraphs. A nil recorder
// is valid.
type MergeRecorder interface {
	RecordMerge(srcID, dstID string, base int)
}

func recordMerge(rec MergeRecorder, src, dst *doctree.Paragraph, base int) {
	if rec != nil {
		rec.RecordMerge(src.ID, dst.ID, base)
	}
}

// SoftBreak inserts a line break inside the current paragraph. It is
// never list-structural and works outside lists too.
func SoftBreak(doc *doctree.Document, pos doctree.Position) (Result, error) {
	p, ok := navigate.FindParagraph(doc, pos.BlockID)
	if !ok {
		return Result{}, nil
	}
	off := p.ClampOffset(pos.Offset)
	p.InsertText(off, "\n")
	return Result{Changed: true, Caret: doctree.Position{BlockID: p.ID, Offset: off + 1}}, nil
}

// removeItemAsParagraph detaches the item at loc and re-inserts its
// paragraph as a plain block at the list's position, splitting the list
// when the item sat in the middle. A nested list the item carried is
// hoisted to a sibling block after the paragraph. Returns the freed
// paragraph.
func removeItemAsParagraph(doc *doctree.Document, loc navigate.Location) (*doctree.Paragraph, error) {
	p := loc.Item.Paragraph()
	if p == nil {
		return nil, ErrMalformedItem
	}
	nested := loc.Item.RemoveNestedList()
	loc.List.RemoveItem(loc.Index)

	listIdx := doc.IndexOf(loc.List)
	if listIdx < 0 {
		// The list is nested; place the paragraph after the container
		// item's sub-list inside the parent item.
		if c, ok := navigate.ContainerOf(doc, loc.List); ok {
			insertAfterNested(c.Item, p, nested)
			return p, nil
		}
		return nil, ErrMalformedItem
	}

	switch {
	case len(loc.List.Items) == 0:
		doc.ReplaceBlock(listIdx, p)
	case loc.Index == 0:
		doc.InsertBlock(listIdx, p)
	case loc.Index == len(loc.List.Items):
		doc.InsertBlock(listIdx+1, p)
	default:
		// Middle of the list: split into two lists around the paragraph.
		// The tail must be copied and the head's capacity pinned, or the
		// two lists keep sharing a backing array and a later insert into
		// the head overwrites the tail's items.
		rest := &doctree.List{
			Style: loc.List.Style,
			Items: append([]*doctree.ListItem(nil), loc.List.Items[loc.Index:]...),
		}
		loc.List.Items = loc.List.Items[:loc.Index:loc.Index]
		doc.InsertBlock(listIdx+1, p)
		doc.InsertBlock(listIdx+2, rest)
	}
	if nested != nil {
		doc.InsertBlock(doc.IndexOf(p)+1, nested)
	}
	return p, nil
}

func insertAfterNested(item *doctree.ListItem, p *doctree.Paragraph, nested *doctree.List) {
	item.Blocks = append(item.Blocks, p)
	if nested != nil {
		item.Blocks = append(item.Blocks, nested)
	}
}

// absorbTrailingBlocks appends src's non-paragraph blocks to dst,
// folding a nested list into dst's own nested list when dst already has
// one (an item holds at most one nested list).
func absorbTrailingBlocks(dst, src *doctree.ListItem) {
	for _, b := range src.Blocks {
		switch v := b.(type) {
		case *doctree.Paragraph:
			// Leading paragraph content is merged by the caller; any
			// further paragraphs ride along as-is.
			if v != src.Paragraph() {
				dst.Blocks = append(dst.Blocks, v)
			}
		case *doctree.List:
			if own := dst.NestedList(); own != nil {
				own.Items = append(own.Items, v.Items...)
			} else {
				dst.Blocks = append(dst.Blocks, v)
			}
		default:
			dst.Blocks = append(dst.Blocks, b)
		}
	}
}
