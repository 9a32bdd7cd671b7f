package doctree

// Repair restores the structural invariants on the whole document:
// a list with zero items is removed, an item with zero blocks gains an
// empty paragraph, and an item whose first block is not a paragraph has
// one inserted ahead of it. Repair reports whether anything changed.
func Repair(doc *Document) bool {
	changed := false
	kept := doc.Blocks[:0]
	for _, b := range doc.Blocks {
		if l, ok := b.(*List); ok {
			if repairList(l) {
				changed = true
			}
			if len(l.Items) == 0 {
				changed = true
				continue
			}
		}
		kept = append(kept, b)
	}
	doc.Blocks = kept
	return changed
}

func repairList(l *List) bool {
	changed := false
	kept := l.Items[:0]
	for _, it := range l.Items {
		if repairItem(it) {
			changed = true
		}
		kept = append(kept, it)
	}
	l.Items = kept
	return changed
}

func repairItem(it *ListItem) bool {
	changed := false

	// Recurse into nested lists first; an emptied nested list is
	// detached below.
	blocks := it.Blocks[:0]
	for _, b := range it.Blocks {
		if l, ok := b.(*List); ok {
			if repairList(l) {
				changed = true
			}
			if len(l.Items) == 0 {
				changed = true
				continue
			}
		}
		blocks = append(blocks, b)
	}
	it.Blocks = blocks

	if len(it.Blocks) == 0 {
		it.Blocks = []Block{NewParagraph("")}
		return true
	}
	if _, ok := it.Blocks[0].(*Paragraph); !ok {
		it.Blocks = append([]Block{NewParagraph("")}, it.Blocks...)
		changed = true
	}
	return changed
}
