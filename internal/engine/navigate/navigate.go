// Package navigate resolves caret positions to list structure: the
// enclosing item, its list, sibling index, and nesting depth. All
// queries are read-only.
package navigate

import (
	"github.com/dshills/listcraft/internal/doctree"
)

// Location describes where a caret sits inside list structure.
type Location struct {
	Item  *doctree.ListItem
	List  *doctree.List
	Index int // index of Item within List
	Level int // nesting depth; 0 for a root-level list
}

// Locate resolves a position to its enclosing list item. The second
// return is false when the position is not inside any list item; callers
// treat that as a no-op, not an error.
func Locate(doc *doctree.Document, pos doctree.Position) (Location, bool) {
	for _, b := range doc.Blocks {
		if l, ok := b.(*doctree.List); ok {
			if loc, ok := locateInList(l, pos.BlockID, 0); ok {
				return loc, true
			}
		}
	}
	return Location{}, false
}

// LocateItem resolves an item pointer to its list, index, and level.
func LocateItem(doc *doctree.Document, item *doctree.ListItem) (Location, bool) {
	for _, b := range doc.Blocks {
		if l, ok := b.(*doctree.List); ok {
			if loc, ok := locateItemInList(l, item, 0); ok {
				return loc, true
			}
		}
	}
	return Location{}, false
}

func locateInList(l *doctree.List, blockID string, level int) (Location, bool) {
	for i, it := range l.Items {
		for _, b := range it.Blocks {
			switch v := b.(type) {
			case *doctree.Paragraph:
				if v.ID == blockID {
					return Location{Item: it, List: l, Index: i, Level: level}, true
				}
			case *doctree.List:
				if loc, ok := locateInList(v, blockID, level+1); ok {
					return loc, true
				}
			}
		}
	}
	return Location{}, false
}

func locateItemInList(l *doctree.List, item *doctree.ListItem, level int) (Location, bool) {
	for i, it := range l.Items {
		if it == item {
			return Location{Item: it, List: l, Index: i, Level: level}, true
		}
		if nested := it.NestedList(); nested != nil {
			if loc, ok := locateItemInList(nested, item, level+1); ok {
				return loc, true
			}
		}
	}
	return Location{}, false
}

// SiblingAt returns the item at index i of l, or false when i is out of
// range.
func SiblingAt(l *doctree.List, i int) (*doctree.ListItem, bool) {
	if l == nil || i < 0 || i >= len(l.Items) {
		return nil, false
	}
	return l.Items[i], true
}

// Container describes the list item that holds a nested list, along
// with that item's own list and index.
type Container struct {
	Item  *doctree.ListItem
	List  *doctree.List
	Index int
}

// ContainerOf finds the list item whose blocks contain target, walking
// the whole document. Returns false for root-level lists.
func ContainerOf(doc *doctree.Document, target *doctree.List) (Container, bool) {
	for _, b := range doc.Blocks {
		if l, ok := b.(*doctree.List); ok {
			if c, ok := containerInList(l, target); ok {
				return c, true
			}
		}
	}
	return Container{}, false
}

func containerInList(l *doctree.List, target *doctree.List) (Container, bool) {
	for i, it := range l.Items {
		nested := it.NestedList()
		if nested == target {
			return Container{Item: it, List: l, Index: i}, true
		}
		if nested != nil {
			if c, ok := containerInList(nested, target); ok {
				return c, true
			}
		}
	}
	return Container{}, false
}

// AncestorList returns the list one level shallower than the item's own
// list: the list holding the item whose nested list contains item.
// Returns false when the item's list is at the root level.
func AncestorList(doc *doctree.Document, item *doctree.ListItem) (*doctree.List, bool) {
	loc, ok := LocateItem(doc, item)
	if !ok {
		return nil, false
	}
	c, ok := ContainerOf(doc, loc.List)
	if !ok {
		return nil, false
	}
	return c.List, true
}

// FindParagraph locates a paragraph anywhere in the document by ID.
func FindParagraph(doc *doctree.Document, id string) (*doctree.Paragraph, bool) {
	var found *doctree.Paragraph
	walkParagraphs(doc, func(p *doctree.Paragraph) bool {
		if p.ID == id {
			found = p
			return false
		}
		return true
	})
	return found, found != nil
}

// Paragraphs returns every paragraph in document order.
func Paragraphs(doc *doctree.Document) []*doctree.Paragraph {
	var out []*doctree.Paragraph
	walkParagraphs(doc, func(p *doctree.Paragraph) bool {
		out = append(out, p)
		return true
	})
	return out
}

func walkParagraphs(doc *doctree.Document, fn func(*doctree.Paragraph) bool) {
	var visit func(b doctree.Block) bool
	visit = func(b doctree.Block) bool {
		switch v := b.(type) {
		case *doctree.Paragraph:
			return fn(v)
		case *doctree.List:
			for _, it := range v.Items {
				for _, child := range it.Blocks {
					if !visit(child) {
						return false
					}
				}
			}
		}
		return true
	}
	for _, b := range doc.Blocks {
		if !visit(b) {
			return
		}
	}
}
