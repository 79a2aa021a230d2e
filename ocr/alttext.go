package ocr

import (
	"errors"
	"strings"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultMaxAltText is the longest alt text Describe returns, in runes.
const DefaultMaxAltText = 250

// PageSegMode represents page segmentation modes for OCR.
type PageSegMode int

// Page segmentation modes useful for pictures cut out of a page.
const (
	PSMAuto        PageSegMode = 3  // Fully automatic (default)
	PSMSingleBlock PageSegMode = 6  // Single uniform block of text
	PSMSingleLine  PageSegMode = 7  // Single text line
	PSMSparseText  PageSegMode = 11 // Find as much text as possible
)

// Option configures a Client
type Option func(*settings)

type settings struct {
	language   string
	mode       PageSegMode
	maxAltText int
}

func defaultSettings() settings {
	return settings{language: "eng", mode: PSMSparseText, maxAltText: DefaultMaxAltText}
}

// WithLanguage sets the recognition language(s), "+" separated (e.g. "eng+fra").
func WithLanguage(lang string) Option {
	return func(s *settings) { s.language = lang }
}

// WithPageSegMode sets how Tesseract analyzes the picture layout.
func WithPageSegMode(mode PageSegMode) Option {
	return func(s *settings) { s.mode = mode }
}

// WithMaxAltText limits the length of described text. Zero or less means
// no limit.
func WithMaxAltText(n int) Option {
	return func(s *settings) { s.maxAltText = n }
}

// altText collapses runs of whitespace to single spaces and cuts the result
// to max runes on a word boundary where possible.
func altText(raw string, max int) string {
	text := strings.Join(strings.Fields(raw), " ")
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut
}
