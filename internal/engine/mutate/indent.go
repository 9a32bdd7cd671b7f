package mutate

import (
	"github.com/dshills/listcraft/internal/doctree"
	"github.com/dshills/listcraft/internal/engine/navigate"
)

// Indent moves the item one level deeper: into a nested list located or
// created inside its previous sibling. The first item of a list cannot
// indent; that is a no-op, not an error. A newly created nested list
// matches the parent list's style, except under an ordinal list where
// the policy's nested style applies and the item is marked demoted.
func Indent(doc *doctree.Document, pos doctree.Position, policy Policy) (Result, error) {
	loc, ok := navigate.Locate(doc, pos)
	if !ok {
		return Result{}, nil
	}
	if loc.Index == 0 {
		return Result{}, nil
	}
	prev := loc.List.Items[loc.Index-1]

	nested := prev.NestedList()
	if nested == nil {
		style := loc.List.Style
		if style.IsOrdinal() {
			style = policy.NestedOrdinalStyle
		}
		nested = &doctree.List{Style: style}
		prev.SetNestedList(nested)
	}

	loc.List.RemoveItem(loc.Index)
	nested.Items = append(nested.Items, loc.Item)

	if loc.List.Style.IsOrdinal() && nested.Style.IsBullet() {
		loc.Item.Demoted = true
	}
	// A structural move invalidates a custom counter override.
	loc.Item.CustomNumber = 0

	p := loc.Item.Paragraph()
	caret := pos
	if p != nil {
		caret = doctree.Position{BlockID: p.ID, Offset: p.ClampOffset(pos.Offset)}
	}
	return Result{Changed: true, Caret: caret}, nil
}

// Outdent moves the item one level shallower. From a nested list the
// item re-enters the parent list immediately after its container item,
// the emptied nested list vanishing with it. From a root-level list the
// item leaves the list as a plain paragraph — unless the reconversion
// policy applies: an item demoted out of an ordinal list reconverts to
// an ordinal item when an ordinal sibling immediately precedes the
// insertion point at the target level.
func Outdent(doc *doctree.Document, pos doctree.Position, policy Policy) (Result, error) {
	loc, ok := navigate.Locate(doc, pos)
	if !ok {
		return Result{}, nil
	}
	p := loc.Item.Paragraph()
	caret := pos
	if p != nil {
		caret = doctree.Position{BlockID: p.ID, Offset: p.ClampOffset(pos.Offset)}
	}

	if c, found := navigate.ContainerOf(doc, loc.List); found {
		loc.List.RemoveItem(loc.Index)
		if len(loc.List.Items) == 0 {
			c.Item.RemoveNestedList()
		}
		c.List.InsertItem(c.Index+1, loc.Item)
		if c.List.Style.IsOrdinal() {
			// Back in an ordinal run; the demotion is undone.
			loc.Item.Demoted = false
		}
		loc.Item.CustomNumber = 0
		return Result{Changed: true, Caret: caret}, nil
	}

	// Root level.
	if shouldReconvert(loc, policy) {
		loc.Item.Demoted = false
		return Result{Changed: true, Caret: caret}, nil
	}
	freed, err := removeItemAsParagraph(doc, loc)
	if err != nil {
		return Result{}, err
	}
	return Result{Changed: true, Caret: doctree.Position{BlockID: freed.ID, Offset: freed.ClampOffset(pos.Offset)}}, nil
}

// shouldReconvert decides the root-level outdent reconversion in one
// place so the rule can be tested in isolation: the policy must allow
// it, the list must be decimal-numbered, the item must have been demoted
// by an earlier indent, and an ordinal sibling must sit immediately
// before the insertion point at the same level.
func shouldReconvert(loc navigate.Location, policy Policy) bool {
	if !policy.OutdentReconvert {
		return false
	}
	if loc.List.Style != doctree.Decimal {
		return false
	}
	if !loc.Item.Demoted {
		return false
	}
	prev, ok := navigate.SiblingAt(loc.List, loc.Index-1)
	return ok && !prev.Demoted
}
