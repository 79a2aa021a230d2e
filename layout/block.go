package layout

import (
	"fmt"

	"github.com/tsawler/relayout/internal/record"
	"github.com/tsawler/relayout/model"
)

// Block is a text block of a page: the lines extracted together, in
// reading order.
type Block struct {
	// Index is the block's position on the page (0-based). Its lines carry
	// it as their parent id.
	Index int

	// Lines are the block's lines in reading order
	Lines Lines
}

// LineError reports a line record that could not be built.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// NewBlockFromRecord builds a block from an extracted record with a "lines"
// sequence. Line records that fail are skipped and reported; the rest still
// form the block. A malformed "lines" value fails the whole block.
func NewBlockFromRecord(raw map[string]interface{}, index int, cfg LineConfig) (*Block, []*LineError, error) {
	raws, err := record.Records(raw, "lines")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}

	b := &Block{Index: index}
	var skipped []*LineError
	for i, r := range raws {
		line, err := NewLineFromRecord(r, cfg)
		if err != nil {
			skipped = append(skipped, &LineError{Line: i, Err: err})
			continue
		}
		// an int is always accepted
		_ = line.SetParentID(index)
		b.Lines = append(b.Lines, line)
	}
	return b, skipped, nil
}

// BBox returns the union of the line boxes
func (b *Block) BBox() model.BBox {
	return b.Lines.BBox()
}

// Text returns the lines' text joined with newlines
func (b *Block) Text() string {
	return b.Lines.Text()
}

// Store serializes the block's lines.
func (b *Block) Store() map[string]interface{} {
	return map[string]interface{}{
		"bbox":  b.BBox().Rect(),
		"lines": b.Lines.Store(),
	}
}
