package numbering

import (
	"strconv"
	"strings"

	"github.com/dshills/listcraft/internal/doctree"
)

// Context holds the per-level counters of one renumber pass. It is
// created lazily per pass and discarded when the pass ends; counters for
// deeper levels are dropped whenever a shallower item breaks the run.
type Context struct {
	next     map[int]int // level → counter to assign next
	assigned map[int]int // level → value most recently assigned
}

// NewContext creates an empty numbering context.
func NewContext() *Context {
	return &Context{next: map[int]int{}, assigned: map[int]int{}}
}

// Reset clears all counters; a non-list block at the top level has
// broken the run.
func (c *Context) Reset() {
	clear(c.next)
	clear(c.assigned)
}

// discardDeeper drops counters for every level deeper than level.
func (c *Context) discardDeeper(level int) {
	for l := range c.next {
		if l > level {
			delete(c.next, l)
			delete(c.assigned, l)
		}
	}
}

// assign produces the counter value for an ordinal item at the given
// level, honoring a custom override by resynchronizing the running
// counter from it.
func (c *Context) assign(level, override int) int {
	c.discardDeeper(level)
	n, ok := c.next[level]
	if !ok {
		n = 1
	}
	if override > 0 {
		n = override
	}
	c.assigned[level] = n
	c.next[level] = n + 1
	return n
}

// outline joins the assigned counters for levels 0..level with dots.
func (c *Context) outline(level int) string {
	parts := make([]string, 0, level+1)
	for l := 0; l <= level; l++ {
		n, ok := c.assigned[l]
		if !ok {
			n = 1
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ".")
}

// Renumber walks the document in order and recomputes the rendered
// marker of every list item. Running it on an already-correct tree
// changes nothing.
func Renumber(doc *doctree.Document) {
	ctx := NewContext()
	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *doctree.List:
			renumberList(ctx, v, 0)
		default:
			// Any other top-level block breaks the counting run.
			ctx.Reset()
		}
	}
}

// RenumberList recomputes markers for a single list subtree, counting
// from one. Used for partial passes over freshly created lists.
func RenumberList(l *doctree.List) {
	renumberList(NewContext(), l, 0)
}

func renumberList(ctx *Context, l *doctree.List, level int) {
	for _, it := range l.Items {
		if l.Style.IsOrdinal() {
			n := ctx.assign(level, it.CustomNumber)
			if l.Style == doctree.Outline {
				it.Marker = ctx.outline(level)
			} else {
				it.Marker = Format(n, l.Style)
			}
		} else {
			// Bullet items render a glyph and leave the counters of
			// shallower levels untouched.
			it.Marker = Format(0, l.Style)
		}
		if nested := it.NestedList(); nested != nil {
			renumberList(ctx, nested, level+1)
		}
	}
}

// FindNumberedLists returns every ordinal list in document order,
// including nested ones.
func FindNumberedLists(doc *doctree.Document) []*doctree.List {
	var out []*doctree.List
	var visit func(l *doctree.List)
	visit = func(l *doctree.List) {
		if l.Style.IsOrdinal() {
			out = append(out, l)
		}
		for _, it := range l.Items {
			if nested := it.NestedList(); nested != nil {
				visit(nested)
			}
		}
	}
	for _, b := range doc.Blocks {
		if l, ok := b.(*doctree.List); ok {
			visit(l)
		}
	}
	return out
}
