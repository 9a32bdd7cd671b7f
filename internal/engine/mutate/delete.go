package mutate

import (
	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/navigate"
)

// Delete handles forward-delete with the caret at the last insertion
// point of an item's content: the next sibling's leading paragraph
// merges into the current item and its remaining blocks ride along. For
// the last item of a root list, a paragraph immediately following the
// list is absorbed instead.
func Delete(doc *doctree.Document, pos doctree.Position, rec MergeRecorder) (Result, error) {
	loc, ok := navigate.Locate(doc, pos)
	if !ok {
		return Result{}, nil
	}
	p := loc.Item.Paragraph()
	if p == nil {
		return Result{}, ErrMalformedItem
	}
	caret := doctree.Position{BlockID: p.ID, Offset: p.RuneLen()}

	if next, ok := navigate.SiblingAt(loc.List, loc.Index+1); ok {
		np := next.Paragraph()
		if np == nil {
			return Result{}, ErrMalformedItem
		}
		base := p.RuneLen()
		p.Append(np)
		recordMerge(rec, np, p, base)
		absorbTrailingBlocks(loc.Item, next)
		loc.List.RemoveItem(loc.Index + 1)
		return Result{Changed: true, Caret: caret}, nil
	}

	// Last item: absorb a paragraph that immediately follows the list.
	listIdx := doc.IndexOf(loc.List)
	if listIdx < 0 || listIdx+1 >= len(doc.Blocks) {
		return Result{}, nil
	}
	after, ok := doc.Blocks[listIdx+1].(*doctree.Paragraph)
	if !ok {
		return Result{}, nil
	}
	base := p.RuneLen()
	p.Append(after)
	recordMerge(rec, after, p, base)
	doc.RemoveBlock(listIdx + 1)
	return Result{Changed: true, Caret: caret}, nil
}
