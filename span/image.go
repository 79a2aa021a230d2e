package span

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	// Decoders available to ImageSpan.Run.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/relayout/internal/record"
	"github.com/tsawler/relayout/model"
)

// ImageSpan is an inline picture positioned within a line.
type ImageSpan struct {
	Box  model.BBox
	Data []byte // encoded image (PNG, JPEG, ...)
}

// NewImageSpan creates an image span. data is copied.
func NewImageSpan(data []byte, box model.BBox) *ImageSpan {
	return &ImageSpan{Box: box, Data: append([]byte(nil), data...)}
}

// RestoreImageSpan rebuilds an image span. "image" holds the base64 encoded
// picture.
func RestoreImageSpan(raw map[string]interface{}) (*ImageSpan, error) {
	box, err := restoreBBox(raw)
	if err != nil {
		return nil, err
	}
	encoded, err := record.String(raw, "image")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: image: %v", ErrMalformedRecord, err)
	}
	return &ImageSpan{Box: box, Data: data}, nil
}

func (s *ImageSpan) Kind() Kind { return KindImage }

func (s *ImageSpan) Text() string { return ImagePlaceholder }

func (s *ImageSpan) BBox() model.BBox { return s.Box }

// Intersects returns a copy of the whole image when any area of it lies in
// rect. Pictures are never cropped.
func (s *ImageSpan) Intersects(rect model.BBox) Span {
	if rect.ContainsBox(s.Box) || rect.Overlaps(s.Box) {
		return s.Clone()
	}
	return nil
}

// Run decodes the image header and returns the run to place in a paragraph.
func (s *ImageSpan) Run() (ImageRun, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(s.Data))
	if err != nil {
		return ImageRun{}, fmt.Errorf("%w: %v", ErrImageData, err)
	}
	return ImageRun{
		Data:        s.Data,
		Format:      model.ImageFormatFromName(name),
		PixelWidth:  cfg.Width,
		PixelHeight: cfg.Height,
		Width:       s.Box.Width,
		Height:      s.Box.Height,
	}, nil
}

// Emit adds the picture as a drawing run.
func (s *ImageSpan) Emit(p Paragraph) error {
	run, err := s.Run()
	if err != nil {
		return err
	}
	return p.AddImage(run)
}

func (s *ImageSpan) Store() map[string]interface{} {
	return map[string]interface{}{
		"bbox":  s.Box.Rect(),
		"image": base64.StdEncoding.EncodeToString(s.Data),
	}
}

func (s *ImageSpan) Clone() Span {
	return NewImageSpan(s.Data, s.Box)
}
