package markdown

import (
	"strconv"
	"strings"

	"github.com/dshills/listcraft/internal/doctree"
)

// Render flattens a document back to markdown. Bullet items render as
// "- ", ordinal items as "N. " with the running decimal counter;
// display styles beyond decimal are a rendering concern and travel in
// the list state blob, not the markdown. Soft breaks inside an item
// continue on an indented line, and nested content is indented to the
// parent marker's content column.
func Render(doc *doctree.Document) string {
	var sb strings.Builder
	for i, b := range doc.Blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch v := b.(type) {
		case *doctree.Paragraph:
			sb.WriteString(v.Text)
			sb.WriteString("\n")
		case *doctree.List:
			renderList(&sb, v, "")
		}
	}
	return sb.String()
}

func renderList(sb *strings.Builder, l *doctree.List, prefix string) {
	n := 1
	for _, it := range l.Items {
		if it.CustomNumber > 0 {
			n = it.CustomNumber
		}
		marker := "- "
		if l.Style.IsOrdinal() {
			marker = strconv.Itoa(n) + ". "
			n++
		}
		renderItem(sb, it, prefix, marker)
	}
}

func renderItem(sb *strings.Builder, it *doctree.ListItem, prefix, marker string) {
	cont := prefix + strings.Repeat(" ", len(marker))
	wroteMarker := false
	for _, b := range it.Blocks {
		switch v := b.(type) {
		case *doctree.Paragraph:
			for _, line := range strings.Split(v.Text, "\n") {
				if !wroteMarker {
					sb.WriteString(prefix)
					sb.WriteString(marker)
					wroteMarker = true
				} else {
					sb.WriteString(cont)
				}
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		case *doctree.List:
			if !wroteMarker {
				sb.WriteString(prefix)
				sb.WriteString(strings.TrimRight(marker, " "))
				sb.WriteString("\n")
				wroteMarker = true
			}
			renderList(sb, v, cont)
		}
	}
}
