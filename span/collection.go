package span

import (
	"fmt"

	"github.com/tsawler/relayout/model"
)

// Spans is the ordered span container owned by a line.
// The zero value is an empty collection ready to use.
type Spans struct {
	items []Span
}

// Len returns the number of spans
func (s *Spans) Len() int { return len(s.items) }

// At returns the i-th span
func (s *Spans) At(i int) Span { return s.items[i] }

// All returns the spans in reading order. The slice is a copy; the spans are not.
func (s *Spans) All() []Span {
	out := make([]Span, len(s.items))
	copy(out, s.items)
	return out
}

// Append adds a span at the end. nil is ignored.
func (s *Spans) Append(sp Span) {
	if sp == nil {
		return
	}
	s.items = append(s.items, sp)
}

// BBox returns the union of all span boxes, or the zero box when empty.
func (s *Spans) BBox() model.BBox {
	var box model.BBox
	for i, sp := range s.items {
		if i == 0 {
			box = sp.BBox()
			continue
		}
		box = box.Union(sp.BBox())
	}
	return box
}

// Strip drops white-space-only text spans from both ends of the collection.
// Interior spans are untouched. It reports whether any span remains.
func (s *Spans) Strip() bool {
	start, end := 0, len(s.items)
	for start < end && isBlankText(s.items[start]) {
		start++
	}
	for end > start && isBlankText(s.items[end-1]) {
		end--
	}
	s.items = s.items[start:end]
	return len(s.items) > 0
}

// Clone deep-copies every span.
func (s *Spans) Clone() Spans {
	out := Spans{items: make([]Span, 0, len(s.items))}
	for _, sp := range s.items {
		out.items = append(out.items, sp.Clone())
	}
	return out
}

// Restore appends spans rebuilt from stored records.
func (s *Spans) Restore(raws []map[string]interface{}) error {
	for i, raw := range raws {
		sp, err := Restore(raw)
		if err != nil {
			return fmt.Errorf("restoring span %d: %w", i, err)
		}
		s.Append(sp)
	}
	return nil
}

// Store serializes every span in order.
func (s *Spans) Store() []interface{} {
	out := make([]interface{}, 0, len(s.items))
	for _, sp := range s.items {
		out = append(out, sp.Store())
	}
	return out
}

func isBlankText(sp Span) bool {
	ts, ok := sp.(*TextSpan)
	return ok && ts.IsBlank()
}
