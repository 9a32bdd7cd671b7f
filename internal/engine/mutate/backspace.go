package mutate

import (
	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/navigate"
)

// Backspace handles Backspace with the caret at the first insertion
// point of an item's content.
//
// A blank item is removed outright, the caret landing at the end of the
// previous sibling or immediately before the list for a first item. A
// non-blank item in a nested list outdents one level. A non-blank item
// at the root converts to a plain paragraph; when it was the first item
// and a paragraph immediately precedes the list, its content merges into
// that paragraph instead.
func Backspace(doc *doctree.Document, pos doctree.Position, policy Policy, rec MergeRecorder) (Result, error) {
	loc, ok := navigate.Locate(doc, pos)
	if !ok {
		return Result{}, nil
	}
	p := loc.Item.Paragraph()
	if p == nil {
		return Result{}, ErrMalformedItem
	}

	if loc.Item.IsBlank() {
		return removeBlankItem(doc, loc)
	}

	if loc.Level > 0 {
		return Outdent(doc, pos, policy)
	}

	// Root level, non-blank: leave the list as a paragraph.
	listIdx := doc.IndexOf(loc.List)
	if loc.Index == 0 && listIdx > 0 {
		if prev, ok := doc.Blocks[listIdx-1].(*doctree.Paragraph); ok {
			return mergeFirstItemInto(doc, loc, prev, rec)
		}
	}
	freed, err := removeItemAsParagraph(doc, loc)
	if err != nil {
		return Result{}, err
	}
	return Result{Changed: true, Caret: doctree.Position{BlockID: freed.ID, Offset: 0}}, nil
}

func removeBlankItem(doc *doctree.Document, loc navigate.Location) (Result, error) {
	loc.List.RemoveItem(loc.Index)

	if loc.Index > 0 {
		prev := loc.List.Items[loc.Index-1]
		if pp := prev.Paragraph(); pp != nil {
			return Result{Changed: true, Caret: doctree.Position{BlockID: pp.ID, Offset: pp.RuneLen()}}, nil
		}
		return Result{Changed: true}, nil
	}

	// First item: caret moves immediately before the list, which is the
	// end of whatever paragraph precedes it.
	caret := doctree.Position{}
	if listIdx := doc.IndexOf(loc.List); listIdx > 0 {
		if prev, ok := doc.Blocks[listIdx-1].(*doctree.Paragraph); ok {
			caret = doctree.Position{BlockID: prev.ID, Offset: prev.RuneLen()}
		}
	}
	if len(loc.List.Items) == 0 {
		removeListBlock(doc, loc.List)
	}
	return Result{Changed: true, Caret: caret}, nil
}

// mergeFirstItemInto appends the first item's content to the paragraph
// preceding the list, then drops the item.
func mergeFirstItemInto(doc *doctree.Document, loc navigate.Location, prev *doctree.Paragraph, rec MergeRecorder) (Result, error) {
	p := loc.Item.Paragraph()
	base := prev.RuneLen()
	prev.Append(p)
	recordMerge(rec, p, prev, base)

	nested := loc.Item.RemoveNestedList()
	loc.List.RemoveItem(loc.Index)
	if len(loc.List.Items) == 0 {
		removeListBlock(doc, loc.List)
	}
	if nested != nil {
		doc.InsertBlock(doc.IndexOf(prev)+1, nested)
	}
	return Result{Changed: true, Caret: doctree.Position{BlockID: prev.ID, Offset: base}}, nil
}

func removeListBlock(doc *doctree.Document, l *doctree.List) {
	if i := doc.IndexOf(l); i >= 0 {
		doc.RemoveBlock(i)
		return
	}
	if c, ok := navigate.ContainerOf(doc, l); ok {
		c.Item.RemoveNestedList()
	}
}
