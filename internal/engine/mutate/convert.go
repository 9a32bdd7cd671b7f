package mutate

import (
	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/navigate"
)

// Toggle applies a list style to the paragraphs identified by ids
// (toolbar semantics). The choice of action follows the selection:
//
//   - every target already in a list of the requested style → strip the
//     list formatting back to paragraphs
//   - any target not in a list → apply the style to all targets
//   - targets in lists of differing styles → restyle those lists in place
//   - otherwise → apply
func Toggle(doc *doctree.Document, ids []string, style doctree.MarkerStyle) (Result, error) {
	if len(ids) == 0 {
		return Result{}, nil
	}

	var (
		outside   []string
		lists     []*doctree.List
		different bool
	)
	seen := map[*doctree.List]bool{}
	for _, id := range ids {
		loc, ok := navigate.Locate(doc, doctree.Position{BlockID: id})
		if !ok {
			outside = append(outside, id)
			continue
		}
		if !seen[loc.List] {
			seen[loc.List] = true
			lists = append(lists, loc.List)
		}
		if loc.List.Style != style {
			different = true
		}
	}

	switch {
	case len(outside) == 0 && !different:
		return stripItems(doc, ids)
	case len(outside) > 0:
		return applyToAll(doc, outside, lists, style)
	case different:
		return restyle(lists, style)
	default:
		return applyToAll(doc, outside, lists, style)
	}
}

// RemoveListFormatting converts every selected item back to a plain
// paragraph regardless of style.
func RemoveListFormatting(doc *doctree.Document, ids []string) (Result, error) {
	return stripItems(doc, ids)
}

func stripItems(doc *doctree.Document, ids []string) (Result, error) {
	changed := false
	caret := doctree.Position{}
	for _, id := range ids {
		loc, ok := navigate.Locate(doc, doctree.Position{BlockID: id})
		if !ok {
			continue
		}
		freed, err := removeItemAsParagraph(doc, loc)
		if err != nil {
			return Result{}, err
		}
		changed = true
		caret = doctree.Position{BlockID: freed.ID, Offset: 0}
	}
	return Result{Changed: changed, Caret: caret}, nil
}

func restyle(lists []*doctree.List, style doctree.MarkerStyle) (Result, error) {
	changed := false
	for _, l := range lists {
		if l.Style != style {
			l.Style = style
			changed = true
		}
		for _, it := range l.Items {
			it.Demoted = false
		}
	}
	return Result{Changed: changed}, nil
}

// applyToAll restyles the lists already containing targets and wraps
// runs of adjacent top-level target paragraphs, each run under one
// freshly created list.
func applyToAll(doc *doctree.Document, outside []string, lists []*doctree.List, style doctree.MarkerStyle) (Result, error) {
	res, err := restyle(lists, style)
	if err != nil {
		return Result{}, err
	}
	changed := res.Changed

	wanted := map[string]bool{}
	for _, id := range outside {
		wanted[id] = true
	}

	caret := doctree.Position{}
	for i := 0; i < len(doc.Blocks); i++ {
		p, ok := doc.Blocks[i].(*doctree.Paragraph)
		if !ok || !wanted[p.ID] {
			continue
		}
		// Collect the contiguous run of selected paragraphs.
		l := &doctree.List{Style: style}
		j := i
		for j < len(doc.Blocks) {
			q, ok := doc.Blocks[j].(*doctree.Paragraph)
			if !ok || !wanted[q.ID] {
				break
			}
			l.Items = append(l.Items, doctree.NewListItem(q))
			j++
		}
		doc.Blocks = append(doc.Blocks[:i], append([]doctree.Block{l}, doc.Blocks[j:]...)...)
		caret = doctree.Position{BlockID: l.Items[0].Paragraph().ID, Offset: 0}
		changed = true
	}
	return Result{Changed: changed, Caret: caret}, nil
}

// WrapParagraphs wraps a contiguous run of top-level paragraphs,
// starting at the paragraph with startID and spanning count blocks, in
// one new list. Used by the insert-list commands: count 1 with the
// caret's paragraph makes a single-item list.
func WrapParagraphs(doc *doctree.Document, startID string, count int, style doctree.MarkerStyle) (Result, error) {
	start := -1
	for i, b := range doc.Blocks {
		if p, ok := b.(*doctree.Paragraph); ok && p.ID == startID {
			start = i
			break
		}
	}
	if start < 0 || count <= 0 {
		return Result{}, nil
	}

	l := &doctree.List{Style: style}
	end := start
	for end < len(doc.Blocks) && end-start < count {
		p, ok := doc.Blocks[end].(*doctree.Paragraph)
		if !ok {
			break
		}
		l.Items = append(l.Items, doctree.NewListItem(p))
		end++
	}
	if len(l.Items) == 0 {
		return Result{}, nil
	}
	doc.Blocks = append(doc.Blocks[:start], append([]doctree.Block{l}, doc.Blocks[end:]...)...)
	return Result{Changed: true, Caret: doctree.Position{BlockID: l.Items[0].Paragraph().ID, Offset: 0}}, nil
}
