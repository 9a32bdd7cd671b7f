// Package serialize persists list and numbering state as an opaque
// string blob for the host's save/load pipeline. The encoding is a
// versioned JSON envelope; the contract is only that it round-trips
// losslessly for any structurally valid tree.
package serialize

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/listcraft/internal/doctree"
)

// Version is the current envelope version.
const Version = 1

// ErrUnknownVersion is returned when a blob was written by a newer
// encoder.
var ErrUnknownVersion = errors.New("unknown list state version")

type envelope struct {
	Version int        `json:"version"`
	Blocks  []blockDTO `json:"blocks"`
}

type blockDTO struct {
	Paragraph *paragraphDTO `json:"paragraph,omitempty"`
	List      *listDTO      `json:"list,omitempty"`
}

type paragraphDTO struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Runs []runDTO `json:"runs,omitempty"`
}

type runDTO struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Attrs string `json:"attrs,omitempty"`
}

type listDTO struct {
	Style string    `json:"style"`
	Items []itemDTO `json:"items"`
}

type itemDTO struct {
	ID           string     `json:"id"`
	CustomNumber int        `json:"customNumber,omitempty"`
	Demoted      bool       `json:"demoted,omitempty"`
	Blocks       []blockDTO `json:"blocks"`
}

// ListState encodes the document's block tree as an opaque blob.
func ListState(doc *doctree.Document) (string, error) {
	env := envelope{Version: Version, Blocks: encodeBlocks(doc.Blocks)}
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encoding list state: %w", err)
	}
	return string(data), nil
}

// RestoreListState replaces the document's blocks with the tree encoded
// in blob. The document is untouched when decoding fails.
func RestoreListState(doc *doctree.Document, blob string) error {
	var env envelope
	if err := json.Unmarshal([]byte(blob), &env); err != nil {
		return fmt.Errorf("decoding list state: %w", err)
	}
	if env.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnknownVersion, env.Version)
	}
	blocks, err := decodeBlocks(env.Blocks)
	if err != nil {
		return err
	}
	doc.Blocks = blocks
	return nil
}

func encodeBlocks(blocks []doctree.Block) []blockDTO {
	out := make([]blockDTO, 0, len(blocks))
	for _, b := range blocks {
		switch v := b.(type) {
		case *doctree.Paragraph:
			out = append(out, blockDTO{Paragraph: encodeParagraph(v)})
		case *doctree.List:
			out = append(out, blockDTO{List: encodeList(v)})
		}
	}
	return out
}

func encodeParagraph(p *doctree.Paragraph) *paragraphDTO {
	dto := &paragraphDTO{ID: p.ID, Text: p.Text}
	for _, r := range p.Runs {
		dto.Runs = append(dto.Runs, runDTO{Start: r.Start, End: r.End, Attrs: r.Attrs})
	}
	return dto
}

func encodeList(l *doctree.List) *listDTO {
	dto := &listDTO{Style: l.Style.String()}
	for _, it := range l.Items {
		dto.Items = append(dto.Items, itemDTO{
			ID:           it.ID,
			CustomNumber: it.CustomNumber,
			Demoted:      it.Demoted,
			Blocks:       encodeBlocks(it.Blocks),
		})
	}
	return dto
}

func decodeBlocks(dtos []blockDTO) ([]doctree.Block, error) {
	out := make([]doctree.Block, 0, len(dtos))
	for _, dto := range dtos {
		switch {
		case dto.Paragraph != nil:
			out = append(out, decodeParagraph(dto.Paragraph))
		case dto.List != nil:
			l, err := decodeList(dto.List)
			if err != nil {
				return nil, err
			}
			out = append(out, l)
		default:
			return nil, errors.New("block with neither paragraph nor list")
		}
	}
	return out, nil
}

func decodeParagraph(dto *paragraphDTO) *doctree.Paragraph {
	p := &doctree.Paragraph{ID: dto.ID, Text: dto.Text}
	for _, r := range dto.Runs {
		p.Runs = append(p.Runs, doctree.Run{Start: r.Start, End: r.End, Attrs: r.Attrs})
	}
	return p
}

func decodeList(dto *listDTO) (*doctree.List, error) {
	style, err := doctree.ParseMarkerStyle(dto.Style)
	if err != nil {
		return nil, err
	}
	l := &doctree.List{Style: style}
	for _, idto := range dto.Items {
		blocks, err := decodeBlocks(idto.Blocks)
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, &doctree.ListItem{
			ID:           idto.ID,
			CustomNumber: idto.CustomNumber,
			Demoted:      idto.Demoted,
			Blocks:       blocks,
		})
	}
	return l, nil
}
