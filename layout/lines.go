package layout

import (
	"fmt"
	"strings"

	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/span"
)

// Lines is an ordered group of lines, typically the content of one block.
type Lines []*Line

// NewLinesFromRecords builds lines from extracted line records.
func NewLinesFromRecords(raws []map[string]interface{}, cfg LineConfig) (Lines, error) {
	lines := make(Lines, 0, len(raws))
	for i, raw := range raws {
		l, err := NewLineFromRecord(raw, cfg)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// RestoreLines rebuilds lines from stored mappings.
func RestoreLines(raws []map[string]interface{}) (Lines, error) {
	lines := make(Lines, 0, len(raws))
	for i, raw := range raws {
		l, err := RestoreLine(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// Store serializes every line
func (ls Lines) Store() []interface{} {
	out := make([]interface{}, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Store())
	}
	return out
}

// Text joins the line texts with newlines
func (ls Lines) Text() string {
	texts := make([]string, 0, len(ls))
	for _, l := range ls {
		texts = append(texts, l.Text())
	}
	return strings.Join(texts, "\n")
}

// BBox returns the union of all line boxes
func (ls Lines) BBox() model.BBox {
	var box model.BBox
	first := true
	for _, l := range ls {
		if l.Spans.Len() == 0 {
			continue
		}
		if first {
			box = l.BBox()
			first = false
			continue
		}
		box = box.Union(l.BBox())
	}
	return box
}

// SetParentID tags every line with the block it was extracted in
func (ls Lines) SetParentID(id interface{}) error {
	for _, l := range ls {
		if err := l.SetParentID(id); err != nil {
			return err
		}
	}
	return nil
}

// Strip strips every line and returns those with content left
func (ls Lines) Strip() Lines {
	out := make(Lines, 0, len(ls))
	for _, l := range ls {
		if l.Strip() {
			out = append(out, l)
		}
	}
	return out
}

// RemoveWhiteSpaceOnly returns the lines that hold more than blank text
func (ls Lines) RemoveWhiteSpaceOnly() Lines {
	out := make(Lines, 0, len(ls))
	for _, l := range ls {
		if !l.WhiteSpaceOnly() {
			out = append(out, l)
		}
	}
	return out
}

// ImageSpans collects the image spans of all lines in order
func (ls Lines) ImageSpans() []*span.ImageSpan {
	var images []*span.ImageSpan
	for _, l := range ls {
		images = append(images, l.ImageSpans()...)
	}
	return images
}

// Intersects clips every line to rect and drops the ones left empty
func (ls Lines) Intersects(rect model.BBox) Lines {
	out := make(Lines, 0, len(ls))
	for _, l := range ls {
		clipped := l.Intersects(rect)
		if clipped.Spans.Len() > 0 {
			out = append(out, clipped)
		}
	}
	return out
}

// GroupBySourceParent splits the lines into runs of consecutive lines that
// share an original parent block. Lines without a parent id each form their
// own group.
func (ls Lines) GroupBySourceParent() []Lines {
	var groups []Lines
	for _, l := range ls {
		n := len(groups)
		if n > 0 {
			last := groups[n-1]
			if last[len(last)-1].SameSourceParent(l) {
				groups[n-1] = append(last, l)
				continue
			}
		}
		groups = append(groups, Lines{l})
	}
	return groups
}

// Emit renders all lines into one paragraph
func (ls Lines) Emit(p span.Paragraph) error {
	for i, l := range ls {
		if err := l.Emit(p); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	return nil
}
