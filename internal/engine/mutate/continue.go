package mutate

import (
	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/navigate"
)

// Continue handles Enter inside a list item.
//
// A blank item exits the list: at the root level its paragraph replaces
// it at the list's position (splitting the list when the item sat in the
// middle); in a nested list the item outdents one level instead, which
// is what exiting one level of nesting means there. A non-blank item is
// split at the caret into a new following sibling, preserving
// formatting; with the caret at the end the new sibling starts empty.
func Continue(doc *doctree.Document, pos doctree.Position, policy Policy) (Result, error) {
	loc, ok := navigate.Locate(doc, pos)
	if !ok {
		return Result{}, nil
	}
	p := loc.Item.Paragraph()
	if p == nil {
		return Result{}, ErrMalformedItem
	}

	if loc.Item.IsBlank() {
		if loc.Level > 0 {
			return Outdent(doc, pos, policy)
		}
		freed, err := removeItemAsParagraph(doc, loc)
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: true, Caret: doctree.Position{BlockID: freed.ID, Offset: 0}}, nil
	}

	off := p.ClampOffset(pos.Offset)
	var next *doctree.ListItem
	if off < p.RuneLen() {
		// Trailing content moves into the new item, formatting intact.
		next = doctree.NewListItem(p.SplitAt(off))
	} else {
		next = doctree.NewListItem()
	}
	loc.List.InsertItem(loc.Index+1, next)
	return Result{Changed: true, Caret: doctree.Position{BlockID: next.Paragraph().ID, Offset: 0}}, nil
}
