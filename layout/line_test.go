package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"reflect"
	"testing"

	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/span"
)

// paragraphRecorder collects emitted runs as strings
type paragraphRecorder struct {
	runs   []string
	styles []model.TextStyle
}

func (r *paragraphRecorder) AddText(text string, style model.TextStyle) {
	r.runs = append(r.runs, text)
	r.styles = append(r.styles, style)
}
func (r *paragraphRecorder) AddTab()   { r.runs = append(r.runs, "\t") }
func (r *paragraphRecorder) AddBreak() { r.runs = append(r.runs, "\n") }
func (r *paragraphRecorder) AddImage(img span.ImageRun) error {
	r.runs = append(r.runs, span.ImagePlaceholder)
	return nil
}

// makeText creates a text span at x with a 10pt cell per rune
func makeText(txt string, x float64) *span.TextSpan {
	w := float64(len([]rune(txt))) * 10
	return span.NewTextSpan(txt, model.NewBBox(x, 0, w, 12), model.TextStyle{FontSize: 12})
}

func makeImage(t *testing.T, x float64) *span.ImageSpan {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return span.NewImageSpan(buf.Bytes(), model.NewBBox(x, 0, 12, 12))
}

// ============================================================================
// Construction
// ============================================================================

func TestNewLineFromRecord(t *testing.T) {
	raw := map[string]interface{}{
		"bbox":       []interface{}{0.0, 0.0, 1.0, 1.0},
		"wmode":      1.0,
		"dir":        []interface{}{1.0, 0.0},
		"line_break": 1.0,
		"tab_stop":   true,
		"spans": []interface{}{
			map[string]interface{}{"text": "Hello ", "bbox": []interface{}{0.0, 0.0, 60.0, 12.0}},
			map[string]interface{}{"text": "world", "bbox": []interface{}{60.0, 0.0, 110.0, 12.0}},
		},
	}

	line, err := NewLineFromRecord(raw, DefaultLineConfig())
	if err != nil {
		t.Fatalf("NewLineFromRecord() error = %v", err)
	}
	if line.WritingMode != Vertical {
		t.Errorf("WritingMode = %v, want vertical", line.WritingMode)
	}
	if !line.LineBreak || !line.TabStop {
		t.Errorf("flags = %v/%v, want true/true", line.LineBreak, line.TabStop)
	}
	if line.Text() != "Hello world" {
		t.Errorf("Text() = %q, want %q", line.Text(), "Hello world")
	}
	if line.BBox() != model.NewBBox(0, 0, 110, 12) {
		t.Errorf("BBox() = %+v, want derived from spans", line.BBox())
	}
}

func TestNewLineFromRecordDefaults(t *testing.T) {
	line, err := NewLineFromRecord(map[string]interface{}{}, DefaultLineConfig())
	if err != nil {
		t.Fatalf("NewLineFromRecord() error = %v", err)
	}
	if line.WritingMode != Horizontal || line.LineBreak || line.TabStop {
		t.Errorf("unexpected defaults: %+v", line)
	}
	if line.Direction != (model.Point{X: 1, Y: 0}) {
		t.Errorf("Direction = %+v, want {1 0}", line.Direction)
	}
	if line.Spans.Len() != 0 {
		t.Errorf("Spans.Len() = %d, want 0", line.Spans.Len())
	}
}

func TestNewLineFromRecordRotation(t *testing.T) {
	tests := []struct {
		rotation int
		dir      []interface{}
		want     TextDirection
	}{
		{0, []interface{}{1.0, 0.0}, DirectionLeftRight},
		{270, []interface{}{1.0, 0.0}, DirectionBottomTop},
		{90, []interface{}{0.0, -1.0}, DirectionLeftRight},
		{90, []interface{}{1.0, 0.0}, DirectionIgnore},
		{30, []interface{}{1.0, 0.0}, DirectionIgnore},
	}

	for _, tt := range tests {
		cfg := DefaultLineConfig()
		cfg.Rotation = model.PageRotation(tt.rotation)
		line, err := NewLineFromRecord(map[string]interface{}{"dir": tt.dir}, cfg)
		if err != nil {
			t.Fatalf("NewLineFromRecord() error = %v", err)
		}
		if got := line.TextDirection(); got != tt.want {
			t.Errorf("rotation %d, dir %v: TextDirection() = %v, want %v", tt.rotation, tt.dir, got, tt.want)
		}
	}
}

func TestNewLineFromRecordMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want error
	}{
		{"dir too long", map[string]interface{}{"dir": []interface{}{1.0, 0.0, 0.0}}, ErrMalformedLine},
		{"dir not numeric", map[string]interface{}{"dir": "right"}, ErrMalformedLine},
		{"wmode not numeric", map[string]interface{}{"wmode": "h"}, ErrMalformedLine},
		{"spans not a list", map[string]interface{}{"spans": 3.0}, ErrMalformedLine},
		{"bad span bbox", map[string]interface{}{"spans": []interface{}{
			map[string]interface{}{"bbox": []interface{}{1.0}},
		}}, span.ErrMalformedRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLineFromRecord(tt.raw, DefaultLineConfig())
			if !errors.Is(err, tt.want) {
				t.Errorf("NewLineFromRecord() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// ============================================================================
// Direction & identity
// ============================================================================

func TestTextDirection(t *testing.T) {
	tests := []struct {
		dir  model.Point
		want TextDirection
	}{
		{model.Point{X: 1, Y: 0}, DirectionLeftRight},
		{model.Point{X: 0, Y: -1}, DirectionBottomTop},
		{model.Point{X: 0, Y: 1}, DirectionIgnore},
		{model.Point{X: -1, Y: 0}, DirectionIgnore},
		{model.Point{X: 0.9999999, Y: 0}, DirectionIgnore},
	}

	for _, tt := range tests {
		line := NewLine()
		line.Direction = tt.dir
		if got := line.TextDirection(); got != tt.want {
			t.Errorf("TextDirection(%+v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestParentIDWriteOnce(t *testing.T) {
	line := NewLine()
	other := NewLine()

	if _, ok := line.ParentID(); ok {
		t.Fatal("fresh line should have no parent id")
	}
	if line.SameSourceParent(other) {
		t.Error("SameSourceParent() = true for two unset ids")
	}

	if err := line.SetParentID(7); err != nil {
		t.Fatalf("SetParentID(7) error = %v", err)
	}
	if err := line.SetParentID(3); err != nil {
		t.Fatalf("SetParentID(3) error = %v", err)
	}
	if id, ok := line.ParentID(); !ok || id != 7 {
		t.Errorf("ParentID() = %d, %v, want 7, true", id, ok)
	}

	if line.SameSourceParent(other) {
		t.Error("SameSourceParent() = true against an unset id")
	}
	if err := other.SetParentID("7"); err != nil {
		t.Fatalf("SetParentID(\"7\") error = %v", err)
	}
	if !line.SameSourceParent(other) || !other.SameSourceParent(line) {
		t.Error("SameSourceParent() = false for equal ids")
	}
}

func TestSetParentIDInvalid(t *testing.T) {
	line := NewLine()
	if err := line.SetParentID("block"); !errors.Is(err, ErrInvalidParentID) {
		t.Errorf("SetParentID(\"block\") error = %v, want ErrInvalidParentID", err)
	}
	if _, ok := line.ParentID(); ok {
		t.Error("failed assignment should leave the id unset")
	}
	if err := line.SetParentID(nil); err != nil {
		t.Errorf("SetParentID(nil) error = %v", err)
	}

	// once set, nothing is validated
	_ = line.SetParentID(2.0)
	if err := line.SetParentID("block"); err != nil {
		t.Errorf("SetParentID on a set id error = %v, want nil", err)
	}
}

// ============================================================================
// Content queries
// ============================================================================

func TestTextAndRawText(t *testing.T) {
	line := NewLine()
	line.Add(makeText("see ", 0), makeImage(t, 40), makeText(" here", 52))

	if got := line.Text(); got != "see <image> here" {
		t.Errorf("Text() = %q", got)
	}
	if got := line.RawText(); got != "see  here" {
		t.Errorf("RawText() = %q", got)
	}
	if got := len(line.ImageSpans()); got != 1 {
		t.Errorf("len(ImageSpans()) = %d, want 1", got)
	}
}

func TestWhiteSpaceOnly(t *testing.T) {
	line := NewLine()
	line.AddSpan(makeText("   ", 0))
	if !line.WhiteSpaceOnly() {
		t.Error("WhiteSpaceOnly() = false for blank text")
	}

	line.AddSpan(makeImage(t, 30))
	if line.WhiteSpaceOnly() {
		t.Error("WhiteSpaceOnly() = true with an image span")
	}

	words := NewLine()
	words.Add(makeText(" ", 0), makeText("x", 10))
	if words.WhiteSpaceOnly() {
		t.Error("WhiteSpaceOnly() = true with non-blank text")
	}
}

func TestStrip(t *testing.T) {
	line := NewLine()
	line.Add(makeText(" ", 0), makeText("a", 10), makeText(" ", 20), makeText("b", 30), makeText("  ", 40))

	if !line.Strip() {
		t.Fatal("Strip() = false, want true")
	}
	if line.Text() != "a b" {
		t.Errorf("Text() after Strip = %q, want %q", line.Text(), "a b")
	}
	if line.BBox() != model.NewBBox(10, 0, 30, 12) {
		t.Errorf("BBox() after Strip = %+v", line.BBox())
	}

	blank := NewLine()
	blank.AddSpan(makeText("  ", 0))
	if blank.Strip() {
		t.Error("Strip() on blank line = true, want false")
	}
}

// ============================================================================
// Clipping
// ============================================================================

func TestIntersectsContained(t *testing.T) {
	line := NewLine()
	line.Add(makeText("one", 0), makeText("two", 40))
	_ = line.SetParentID(4)

	got := line.Intersects(model.NewBBox(-10, -10, 500, 500))
	if got == line {
		t.Fatal("Intersects() returned the receiver")
	}
	if got.Text() != line.Text() || got.Spans.Len() != line.Spans.Len() {
		t.Errorf("Intersects() = %q (%d spans), want %q (%d spans)", got.Text(), got.Spans.Len(), line.Text(), line.Spans.Len())
	}
	if !got.SameSourceParent(line) {
		t.Error("copy lost the parent id")
	}
	if got.Spans.At(0) == line.Spans.At(0) {
		t.Error("copy shares spans with the original")
	}
}

func TestIntersectsDisjoint(t *testing.T) {
	line := NewLine()
	line.Add(makeText("one", 0), makeText("two", 40))

	got := line.Intersects(model.NewBBox(1000, 1000, 10, 10))
	if got == nil {
		t.Fatal("Intersects() = nil, want empty line")
	}
	if got.Spans.Len() != 0 {
		t.Errorf("Spans.Len() = %d, want 0", got.Spans.Len())
	}
}

func TestIntersectsPartial(t *testing.T) {
	line := NewLine()
	line.Direction = model.Point{X: 0, Y: -1}
	line.WritingMode = Vertical
	line.LineBreak = true
	_ = line.SetParentID(9)
	line.Add(makeText("left", 0), makeText("mid", 100), makeText("right", 200))

	got := line.Intersects(model.NewBBox(90, -5, 200, 30))

	if got.Text() != "midright" {
		t.Errorf("Text() = %q, want %q", got.Text(), "midright")
	}
	if got.Direction != line.Direction || got.WritingMode != Vertical {
		t.Errorf("clipped line lost orientation: %+v %v", got.Direction, got.WritingMode)
	}
	if id, ok := got.ParentID(); !ok || id != 9 {
		t.Errorf("ParentID() = %d, %v, want 9", id, ok)
	}
	if got.LineBreak {
		t.Error("clipped fragment should not carry the line break")
	}
}

// ============================================================================
// Emission
// ============================================================================

func TestEmitOrdering(t *testing.T) {
	line := NewLine()
	line.TabStop = true
	line.LineBreak = true
	line.Add(makeText("first", 0), makeText("second", 60))

	var rec paragraphRecorder
	if err := line.Emit(&rec); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	want := []string{"\t", "first", "second", "\n"}
	if !reflect.DeepEqual(rec.runs, want) {
		t.Errorf("runs = %q, want %q", rec.runs, want)
	}
}

func TestEmitCondensedSplit(t *testing.T) {
	condensed := span.NewTextSpan("Hello world foo", model.NewBBox(0, 0, 150, 12), model.TextStyle{CharSpacing: -0.5})
	line := NewLine()
	line.AddSpan(condensed)

	var rec paragraphRecorder
	if err := line.Emit(&rec); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	want := []string{"Hello", " world foo"}
	if !reflect.DeepEqual(rec.runs, want) {
		t.Fatalf("runs = %q, want %q", rec.runs, want)
	}
	if rec.styles[0].CharSpacing != 0 {
		t.Errorf("head spacing = %v, want 0", rec.styles[0].CharSpacing)
	}
	if rec.styles[1].CharSpacing != -0.5 {
		t.Errorf("tail spacing = %v, want -0.5", rec.styles[1].CharSpacing)
	}
	if condensed.Text() != "Hello world foo" || condensed.Style.CharSpacing != -0.5 {
		t.Error("Emit() mutated the span")
	}
}

func TestEmitCondensedShortText(t *testing.T) {
	line := NewLine()
	line.AddSpan(span.NewTextSpan("Hi", model.NewBBox(0, 0, 20, 12), model.TextStyle{CharSpacing: -1}))

	var rec paragraphRecorder
	if err := line.Emit(&rec); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if !reflect.DeepEqual(rec.runs, []string{"Hi"}) {
		t.Errorf("runs = %q, want [\"Hi\"]", rec.runs)
	}
}

func TestEmitImage(t *testing.T) {
	line := NewLine()
	line.Add(makeText("a", 0), makeImage(t, 10))

	var rec paragraphRecorder
	if err := line.Emit(&rec); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if !reflect.DeepEqual(rec.runs, []string{"a", span.ImagePlaceholder}) {
		t.Errorf("runs = %q", rec.runs)
	}

	broken := NewLine()
	broken.AddSpan(span.NewImageSpan([]byte("junk"), model.NewBBox(0, 0, 5, 5)))
	if err := broken.Emit(&rec); !errors.Is(err, span.ErrImageData) {
		t.Errorf("Emit() error = %v, want ErrImageData", err)
	}
}

// ============================================================================
// Serialization
// ============================================================================

func TestStoreRestoreRoundTrip(t *testing.T) {
	line := NewLine()
	line.WritingMode = Vertical
	line.Direction = model.Point{X: 0, Y: -1}
	line.LineBreak = true
	line.TabStop = true
	line.Add(makeText("alpha ", 0), makeImage(t, 60), makeText("beta", 72))

	// through JSON, as a persisted record would be
	data, err := json.Marshal(line.Store())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}

	got, err := RestoreLine(raw)
	if err != nil {
		t.Fatalf("RestoreLine() error = %v", err)
	}

	if got.WritingMode != line.WritingMode || got.Direction != line.Direction {
		t.Errorf("orientation = %v %+v, want %v %+v", got.WritingMode, got.Direction, line.WritingMode, line.Direction)
	}
	if got.LineBreak != line.LineBreak || got.TabStop != line.TabStop {
		t.Errorf("flags = %v/%v", got.LineBreak, got.TabStop)
	}
	if got.Text() != line.Text() || got.RawText() != line.RawText() {
		t.Errorf("Text() = %q, want %q", got.Text(), line.Text())
	}
	if got.Spans.Len() != line.Spans.Len() {
		t.Fatalf("Spans.Len() = %d, want %d", got.Spans.Len(), line.Spans.Len())
	}
	for i := 0; i < line.Spans.Len(); i++ {
		if got.Spans.At(i).Kind() != line.Spans.At(i).Kind() {
			t.Errorf("span %d kind = %v, want %v", i, got.Spans.At(i).Kind(), line.Spans.At(i).Kind())
		}
	}
}

func TestRestoreDoesNotRotate(t *testing.T) {
	raw := map[string]interface{}{"dir": []float64{0, -1}}
	line, err := RestoreLine(raw)
	if err != nil {
		t.Fatalf("RestoreLine() error = %v", err)
	}
	if line.TextDirection() != DirectionBottomTop {
		t.Errorf("TextDirection() = %v, want bottom-top", line.TextDirection())
	}
}

func TestRestoreReplacesSpans(t *testing.T) {
	line := NewLine()
	line.AddSpan(makeText("old", 0))
	if err := line.Restore(map[string]interface{}{}); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if line.Spans.Len() != 0 {
		t.Errorf("Spans.Len() = %d, want 0 when spans are absent", line.Spans.Len())
	}
}
