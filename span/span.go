package span

import (
	"errors"
	"fmt"

	"github.com/tsawler/relayout/internal/record"
	"github.com/tsawler/relayout/model"
)

// ImagePlaceholder stands in for an image span when line text is assembled.
const ImagePlaceholder = "<image>"

var (
	// ErrMalformedRecord is returned when a stored span cannot be restored.
	ErrMalformedRecord = errors.New("malformed span record")

	// ErrImageData is returned when image bytes cannot be decoded.
	ErrImageData = errors.New("undecodable image data")
)

// Kind identifies a span variant
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// String returns "text" or "image"
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Span is the smallest unit of content in a line.
type Span interface {
	Kind() Kind

	// Text returns the span's text; image spans return ImagePlaceholder.
	Text() string

	BBox() model.BBox

	// Intersects returns a new span holding the part of this one that lies in
	// rect, or nil when nothing does. The result never shares state with the
	// receiver.
	Intersects(rect model.BBox) Span

	// Emit appends the span to an output paragraph as one run.
	Emit(p Paragraph) error

	// Store serializes the span. The mapping is self-describing: image spans
	// carry an "image" key.
	Store() map[string]interface{}

	// Clone returns a deep copy.
	Clone() Span
}

// Paragraph is the output target spans and lines render into.
type Paragraph interface {
	AddText(text string, style model.TextStyle)
	AddTab()
	AddBreak()
	AddImage(img ImageRun) error
}

// ImageRun is a decoded picture ready to be placed in a paragraph
type ImageRun struct {
	Data   []byte
	Format model.ImageFormat

	// Pixel dimensions of the encoded image
	PixelWidth  int
	PixelHeight int

	// Display size in points, taken from the span's box
	Width  float64
	Height float64
}

// Restore rebuilds a span from its stored mapping.
func Restore(raw map[string]interface{}) (Span, error) {
	if _, ok := raw["image"]; ok {
		return RestoreImageSpan(raw)
	}
	return RestoreTextSpan(raw)
}

// restoreBBox reads the optional "bbox" key.
func restoreBBox(raw record.Params) (model.BBox, error) {
	rect, ok, err := record.Floats(raw, "bbox")
	if err != nil {
		return model.BBox{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if !ok {
		return model.BBox{}, nil
	}
	box, err := model.BBoxFromRect(rect)
	if err != nil {
		return model.BBox{}, fmt.Errorf("%w: bbox: %v", ErrMalformedRecord, err)
	}
	return box, nil
}
