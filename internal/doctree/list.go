package doctree

import (
	"fmt"

	"github.com/google/uuid"
)

// MarkerStyle is the visual/counting style of a list.
type MarkerStyle int

const (
	// Bullet styles.
	Disc MarkerStyle = iota
	Circle
	Square

	// Ordinal styles.
	Decimal
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman

	// Outline renders composite counters such as "1.2.3".
	Outline
)

var styleNames = map[MarkerStyle]string{
	Disc:       "disc",
	Circle:     "circle",
	Square:     "square",
	Decimal:    "decimal",
	LowerAlpha: "lower-alpha",
	UpperAlpha: "upper-alpha",
	LowerRoman: "lower-roman",
	UpperRoman: "upper-roman",
	Outline:    "outline",
}

// String returns the style's canonical configuration name.
func (s MarkerStyle) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("MarkerStyle(%d)", int(s))
}

// ParseMarkerStyle resolves a configuration name to a style.
func ParseMarkerStyle(name string) (MarkerStyle, error) {
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return Disc, fmt.Errorf("unknown marker style %q", name)
}

// IsBullet reports whether the style draws a fixed glyph.
func (s MarkerStyle) IsBullet() bool {
	return s == Disc || s == Circle || s == Square
}

// IsOrdinal reports whether the style requires a computed counter.
func (s MarkerStyle) IsOrdinal() bool {
	return !s.IsBullet()
}

// List is an ordered sequence of list items sharing one marker style.
// Item order is display order. A list's nesting level is its depth from
// the document root measured in enclosing list items; it is computed by
// navigation, never stored.
type List struct {
	Style MarkerStyle
	Items []*ListItem
}

func (*List) isBlock() {}

// NewList creates a list with the given style and items.
func NewList(style MarkerStyle, items ...*ListItem) *List {
	return &List{Style: style, Items: items}
}

// IndexOf returns the index of item, or -1.
func (l *List) IndexOf(item *ListItem) int {
	for i, it := range l.Items {
		if it == item {
			return i
		}
	}
	return -1
}

// InsertItem inserts item at index i, clamping i to the valid range.
func (l *List) InsertItem(i int, item *ListItem) {
	if i < 0 {
		i = 0
	}
	if i > len(l.Items) {
		i = len(l.Items)
	}
	l.Items = append(l.Items, nil)
	copy(l.Items[i+1:], l.Items[i:])
	l.Items[i] = item
}

// RemoveItem removes the item at index i. Out-of-range indices are
// ignored.
func (l *List) RemoveItem(i int) {
	if i < 0 || i >= len(l.Items) {
		return
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
}

// Clone returns a deep copy preserving item IDs.
func (l *List) Clone() *List {
	c := &List{Style: l.Style, Items: make([]*ListItem, len(l.Items))}
	for i, it := range l.Items {
		c.Items[i] = it.Clone()
	}
	return c
}

// ListItem is a unit of list content: one leading paragraph, optionally
// followed by further blocks, at most one of which is a nested list.
// Indentation is represented by nesting, not by a depth field.
type ListItem struct {
	ID     string
	Blocks []Block

	// CustomNumber, when > 0, overrides the computed counter for an
	// ordinal item; the running counter resynchronizes from it.
	// Structural moves clear the override.
	CustomNumber int

	// Marker is the rendered counter or glyph, maintained by the
	// numbering engine.
	Marker string

	// Demoted records that an indent moved this item out of an ordinal
	// list into a bullet nested list. Outdent consults it when deciding
	// whether the item may reconvert to an ordinal item.
	Demoted bool
}

// NewListItem creates an item with a fresh ID wrapping the given blocks.
// An item created with no blocks gets an empty paragraph.
func NewListItem(blocks ...Block) *ListItem {
	if len(blocks) == 0 {
		blocks = []Block{NewParagraph("")}
	}
	return &ListItem{ID: uuid.New().String(), Blocks: blocks}
}

// NewTextItem creates an item holding a single paragraph of text.
func NewTextItem(text string) *ListItem {
	return NewListItem(NewParagraph(text))
}

// Paragraph returns the item's leading paragraph, or nil if the item is
// malformed (see Repair).
func (it *ListItem) Paragraph() *Paragraph {
	for _, b := range it.Blocks {
		if p, ok := b.(*Paragraph); ok {
			return p
		}
	}
	return nil
}

// NestedList returns the item's nested list, or nil.
func (it *ListItem) NestedList() *List {
	for _, b := range it.Blocks {
		if l, ok := b.(*List); ok {
			return l
		}
	}
	return nil
}

// SetNestedList appends l to the item's blocks, replacing an existing
// nested list if one is present.
func (it *ListItem) SetNestedList(l *List) {
	for i, b := range it.Blocks {
		if _, ok := b.(*List); ok {
			it.Blocks[i] = l
			return
		}
	}
	it.Blocks = append(it.Blocks, l)
}

// RemoveNestedList detaches and returns the item's nested list.
func (it *ListItem) RemoveNestedList() *List {
	for i, b := range it.Blocks {
		if l, ok := b.(*List); ok {
			it.Blocks = append(it.Blocks[:i], it.Blocks[i+1:]...)
			return l
		}
	}
	return nil
}

// IsBlank reports whether the item's paragraph is empty or
// whitespace-only and no nested list is present.
func (it *ListItem) IsBlank() bool {
	if it.NestedList() != nil {
		return false
	}
	p := it.Paragraph()
	return p == nil || p.IsBlank()
}

// Clone returns a deep copy preserving the item ID.
func (it *ListItem) Clone() *ListItem {
	c := &ListItem{ID: it.ID, CustomNumber: it.CustomNumber, Marker: it.Marker, Demoted: it.Demoted, Blocks: make([]Block, len(it.Blocks))}
	for i, b := range it.Blocks {
		c.Blocks[i] = cloneBlock(b)
	}
	return c
}
