package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/relayout/internal/record"
	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/span"
)

var (
	// ErrInvalidParentID is returned when a parent id is not an integer.
	ErrInvalidParentID = errors.New("invalid parent id")

	// ErrMalformedLine is returned when a line record has bad geometry.
	ErrMalformedLine = errors.New("malformed line record")
)

// LineConfig holds the page context lines are built in
type LineConfig struct {
	// Rotation is the pure rotation of the page. Extracted directions are
	// mapped through it into the final coordinate system.
	Rotation model.Matrix

	// DefaultDirection is used when a record has no "dir" (default: left to right)
	DefaultDirection model.Point
}

// DefaultLineConfig returns the configuration for an unrotated page
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Rotation:         model.Identity(),
		DefaultDirection: leftRight,
	}
}

// Line is a row of spans inside a text block.
type Line struct {
	WritingMode WritingMode

	// Direction is the reading direction relative to the final coordinate
	// system.
	Direction model.Point

	// LineBreak ends the line with an explicit break inside the paragraph.
	LineBreak bool

	// TabStop places a tab before the line's content.
	TabStop bool

	// Spans are owned by the line and kept in reading order.
	Spans span.Spans

	parentID  int
	hasParent bool
}

// NewLine creates an empty left-to-right horizontal line.
func NewLine() *Line {
	return &Line{Direction: leftRight}
}

// NewLineFromRecord builds a line from an extracted record. The record's
// "dir" is rotated by cfg.Rotation; its "bbox" is ignored since the box is
// derived from the spans.
func NewLineFromRecord(raw map[string]interface{}, cfg LineConfig) (*Line, error) {
	l := &Line{}
	dir, err := l.restore(raw, cfg.DefaultDirection)
	if err != nil {
		return nil, err
	}
	if dir != nil {
		rot := cfg.Rotation
		if rot == (model.Matrix{}) {
			rot = model.Identity()
		}
		l.Direction = rot.TransformVector(*dir)
	}
	return l, nil
}

// RestoreLine rebuilds a line from the mapping produced by Store.
func RestoreLine(raw map[string]interface{}) (*Line, error) {
	l := &Line{}
	if err := l.Restore(raw); err != nil {
		return nil, err
	}
	return l, nil
}

// Restore replaces the line's attributes and spans with those of a stored
// mapping. The stored direction is already final and is not rotated.
// A missing "spans" key leaves the line empty.
func (l *Line) Restore(raw map[string]interface{}) error {
	dir, err := l.restore(raw, leftRight)
	if err != nil {
		return err
	}
	if dir != nil {
		l.Direction = *dir
	}
	return nil
}

// restore fills everything but the direction, which it returns when the
// record has one.
func (l *Line) restore(raw record.Params, defaultDir model.Point) (*model.Point, error) {
	wmode, err := record.Int(raw, "wmode", int(Horizontal))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	lineBreak, err := record.Bool(raw, "line_break")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	tabStop, err := record.Bool(raw, "tab_stop")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}

	var dir *model.Point
	vals, ok, err := record.Floats(raw, "dir")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	if ok {
		if len(vals) != 2 {
			return nil, fmt.Errorf("%w: dir needs 2 components, got %d", ErrMalformedLine, len(vals))
		}
		dir = &model.Point{X: vals[0], Y: vals[1]}
	}

	raws, err := record.Records(raw, "spans")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	var spans span.Spans
	if err := spans.Restore(raws); err != nil {
		return nil, err
	}

	l.WritingMode = WritingMode(wmode)
	l.Direction = defaultDir
	l.LineBreak = lineBreak
	l.TabStop = tabStop
	l.Spans = spans
	return dir, nil
}

// Store serializes the line. Char geometry of text spans is not kept.
func (l *Line) Store() map[string]interface{} {
	return map[string]interface{}{
		"bbox":       l.BBox().Rect(),
		"wmode":      int(l.WritingMode),
		"dir":        l.Direction.Slice(),
		"line_break": record.Flag(l.LineBreak),
		"tab_stop":   record.Flag(l.TabStop),
		"spans":      l.Spans.Store(),
	}
}

// BBox returns the union of the span boxes
func (l *Line) BBox() model.BBox {
	return l.Spans.BBox()
}

// Text joins the span texts; images appear as span.ImagePlaceholder.
func (l *Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans.All() {
		sb.WriteString(s.Text())
	}
	return sb.String()
}

// RawText joins the text of text spans only.
func (l *Line) RawText() string {
	var sb strings.Builder
	for _, s := range l.Spans.All() {
		if ts, ok := s.(*span.TextSpan); ok {
			sb.WriteString(ts.Text())
		}
	}
	return sb.String()
}

// WhiteSpaceOnly reports whether the line holds nothing but blank text, in
// which case it can be dropped.
func (l *Line) WhiteSpaceOnly() bool {
	for _, s := range l.Spans.All() {
		ts, ok := s.(*span.TextSpan)
		if !ok || !ts.IsBlank() {
			return false
		}
	}
	return true
}

// ImageSpans returns the image spans in reading order
func (l *Line) ImageSpans() []*span.ImageSpan {
	var images []*span.ImageSpan
	for _, s := range l.Spans.All() {
		if img, ok := s.(*span.ImageSpan); ok {
			images = append(images, img)
		}
	}
	return images
}

// TextDirection classifies the line direction
func (l *Line) TextDirection() TextDirection {
	return ClassifyDirection(l.Direction)
}

// ParentID returns the id of the block the line was originally extracted in.
func (l *Line) ParentID() (int, bool) {
	return l.parentID, l.hasParent
}

// SetParentID records the original parent block. Only the first successful
// call has an effect; later calls are ignored. nil is ignored.
func (l *Line) SetParentID(id interface{}) error {
	if l.hasParent || id == nil {
		return nil
	}
	v, err := record.ParseInt(id)
	if err != nil {
		return fmt.Errorf("%w %v: %v", ErrInvalidParentID, id, err)
	}
	l.parentID = v
	l.hasParent = true
	return nil
}

// SameSourceParent reports whether both lines came from the same extracted
// block, even if they were regrouped since. A line without a parent id
// matches nothing.
func (l *Line) SameSourceParent(other *Line) bool {
	if !l.hasParent || other == nil || !other.hasParent {
		return false
	}
	return l.parentID == other.parentID
}

// Strip removes blank spans at both ends and reports whether anything is left.
func (l *Line) Strip() bool {
	return l.Spans.Strip()
}

// Add appends spans in the given order
func (l *Line) Add(spans ...span.Span) {
	for _, s := range spans {
		l.AddSpan(s)
	}
}

// AddSpan appends a span without reordering or checking its position
func (l *Line) AddSpan(s span.Span) {
	l.Spans.Append(s)
}

// Copy returns a deep copy of the line, parent id included
func (l *Line) Copy() *Line {
	c := *l
	c.Spans = l.Spans.Clone()
	return &c
}

// Intersects returns a new line holding the content of l that lies in rect.
// The result is empty, not nil, when nothing does.
func (l *Line) Intersects(rect model.BBox) *Line {
	if rect.ContainsBox(l.BBox()) {
		return l.Copy()
	}

	// the direction is already in the final coordinate system, keep it as is
	clipped := &Line{
		WritingMode: l.WritingMode,
		Direction:   l.Direction,
		parentID:    l.parentID,
		hasParent:   l.hasParent,
	}
	for _, s := range l.Spans.All() {
		clipped.AddSpan(s.Intersects(rect))
	}
	return clipped
}

// Emit renders the line into a paragraph: an optional leading tab, one run
// per span and an optional trailing break. Condensed text spans are split
// so that only their last two words keep the condensed spacing. The line
// itself is not modified.
func (l *Line) Emit(p span.Paragraph) error {
	if l.TabStop {
		p.AddTab()
	}

	for i, s := range l.Spans.All() {
		ts, ok := s.(*span.TextSpan)
		if !ok || !ts.Condensed() {
			if err := s.Emit(p); err != nil {
				return fmt.Errorf("emitting span %d: %w", i, err)
			}
			continue
		}

		head, tail := ts.SplitTail()
		if head.Text() != "" {
			head.Emit(p)
		}
		if tail.Text() != "" {
			tail.Emit(p)
		}
	}

	if l.LineBreak {
		p.AddBreak()
	}
	return nil
}
