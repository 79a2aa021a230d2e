package model

import "fmt"

// TextStyle carries the run-level formatting of a piece of text
type TextStyle struct {
	FontName  string
	FontSize  float64 // points
	Bold      bool
	Italic    bool
	Underline bool
	Color     Color

	// CharSpacing is the extra space between characters in points.
	// Negative values condense the text.
	CharSpacing float64
}

// Condensed reports whether the style shrinks inter-character spacing
func (s TextStyle) Condensed() bool {
	return s.CharSpacing != 0
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// ColorFromInt unpacks a 0xRRGGBB integer as produced by extractors
func ColorFromInt(v int) Color {
	return Color{
		R: uint8(v >> 16 & 0xff),
		G: uint8(v >> 8 & 0xff),
		B: uint8(v & 0xff),
	}
}

// Int packs the color back into 0xRRGGBB form
func (c Color) Int() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// Hex returns the color as six upper-case hex digits, e.g. "FF0000"
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ImageFormat represents image format
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatJPEG
	ImageFormatPNG
	ImageFormatGIF
	ImageFormatBMP
	ImageFormatTIFF
	ImageFormatWebP
)

// ImageFormatFromName maps an image.DecodeConfig format name to an ImageFormat
func ImageFormatFromName(name string) ImageFormat {
	switch name {
	case "jpeg":
		return ImageFormatJPEG
	case "png":
		return ImageFormatPNG
	case "gif":
		return ImageFormatGIF
	case "bmp":
		return ImageFormatBMP
	case "tiff":
		return ImageFormatTIFF
	case "webp":
		return ImageFormatWebP
	default:
		return ImageFormatUnknown
	}
}

// Extension returns the usual file extension (without dot) for the format
func (f ImageFormat) Extension() string {
	switch f {
	case ImageFormatJPEG:
		return "jpeg"
	case ImageFormatPNG:
		return "png"
	case ImageFormatGIF:
		return "gif"
	case ImageFormatBMP:
		return "bmp"
	case ImageFormatTIFF:
		return "tiff"
	case ImageFormatWebP:
		return "webp"
	default:
		return "bin"
	}
}

// MIMEType returns the content type registered for the format
func (f ImageFormat) MIMEType() string {
	if f == ImageFormatUnknown {
		return "application/octet-stream"
	}
	return "image/" + f.Extension()
}
