// Package markdown converts between markdown text and the block tree.
// It is the flat-text boundary of the engine: hosts that store notes as
// markdown parse on load and render on save, while every edit in
// between runs on the structured tree.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/listcraft/internal/doctree"
)

// Parse builds a document from markdown source. Bullet lists become
// disc lists, ordered lists become decimal lists; a non-1 start number
// is kept as a custom number on the first item. Block kinds the tree
// does not model (headings, code fences, quotes) are flattened to
// plain paragraphs.
func Parse(src []byte) (*doctree.Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.List:
			doc.Blocks = append(doc.Blocks, convertList(node, src))
		default:
			if t := extractText(n, src); t != "" {
				doc.Blocks = append(doc.Blocks, doctree.NewParagraph(t))
			}
		}
	}
	doctree.Repair(doc)
	return doc, nil
}

func convertList(n *ast.List, src []byte) *doctree.List {
	style := doctree.Disc
	if n.IsOrdered() {
		style = doctree.Decimal
	}
	list := &doctree.List{Style: style}

	for li := n.FirstChild(); li != nil; li = li.NextSibling() {
		item := convertItem(li, src)
		if len(list.Items) == 0 && n.IsOrdered() && n.Start > 1 {
			item.CustomNumber = n.Start
		}
		list.Items = append(list.Items, item)
	}
	return list
}

// convertItem flattens a markdown list item: inline content becomes the
// item's paragraphs, a child list becomes the nested list. Markdown
// permits several lists inside one item; the tree does not, so later
// lists are folded into the first.
func convertItem(li ast.Node, src []byte) *doctree.ListItem {
	var blocks []doctree.Block
	var nested *doctree.List
	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.List:
			sub := convertList(node, src)
			if nested != nil {
				nested.Items = append(nested.Items, sub.Items...)
			} else {
				nested = sub
				blocks = append(blocks, sub)
			}
		default:
			if t := extractText(c, src); t != "" {
				blocks = append(blocks, doctree.NewParagraph(t))
			}
		}
	}
	if len(blocks) > 0 {
		if _, ok := blocks[0].(*doctree.Paragraph); !ok {
			blocks = append([]doctree.Block{doctree.NewParagraph("")}, blocks...)
		}
	}
	return doctree.NewListItem(blocks...)
}

// extractText collects the plain text of a goldmark node, keeping soft
// and hard line breaks as newlines.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	if buf.Len() == 0 && n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}
