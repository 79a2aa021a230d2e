package span

import (
	"fmt"
	"strings"

	"github.com/tsawler/relayout/internal/record"
	"github.com/tsawler/relayout/model"
)

// Font flag bits as reported by the extractor.
const (
	FlagSuperscript = 1 << 0
	FlagItalic      = 1 << 1
	FlagSerif       = 1 << 2
	FlagMonospace   = 1 << 3
	FlagBold        = 1 << 4
)

// minCharCoverage is the share of a char's box that must lie inside a
// clipping rectangle for the char to be kept.
const minCharCoverage = 0.5

// Char is a single positioned glyph.
type Char struct {
	C    rune
	BBox model.BBox
}

// TextSpan is a run of text sharing one style.
type TextSpan struct {
	Box   model.BBox
	Style model.TextStyle

	// Flags holds the extractor's font flags (FlagBold, FlagItalic, ...).
	Flags int

	// Chars is the per-glyph geometry, when the extractor provided it.
	// It is not stored.
	Chars []Char

	text string
}

// NewTextSpan creates a text span without per-char geometry.
func NewTextSpan(text string, box model.BBox, style model.TextStyle) *TextSpan {
	return &TextSpan{Box: box, Style: style, text: text}
}

// NewTextSpanFromChars creates a text span whose text and box are derived
// from chars.
func NewTextSpanFromChars(chars []Char, style model.TextStyle) *TextSpan {
	s := &TextSpan{Style: style}
	s.setChars(chars)
	return s
}

// RestoreTextSpan rebuilds a text span from a stored or extracted record.
// When "text" is absent the text is assembled from "chars".
func RestoreTextSpan(raw map[string]interface{}) (*TextSpan, error) {
	box, err := restoreBBox(raw)
	if err != nil {
		return nil, err
	}
	s := &TextSpan{Box: box}

	if s.Style.FontName, err = record.String(raw, "font"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if s.Style.FontSize, err = record.Float(raw, "size", 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	color, err := record.Int(raw, "color", 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	s.Style.Color = model.ColorFromInt(color)
	if s.Flags, err = record.Int(raw, "flags", 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	s.Style.Bold = s.Flags&FlagBold != 0
	s.Style.Italic = s.Flags&FlagItalic != 0
	if s.Style.Underline, err = record.Bool(raw, "underline"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if s.Style.CharSpacing, err = record.Float(raw, "char_spacing", 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	rawChars, err := record.Records(raw, "chars")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	chars := make([]Char, 0, len(rawChars))
	for i, rc := range rawChars {
		c, err := restoreChar(rc)
		if err != nil {
			return nil, fmt.Errorf("char %d: %w", i, err)
		}
		chars = append(chars, c)
	}

	text, err := record.String(raw, "text")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if _, hasText := raw["text"]; !hasText && len(chars) > 0 {
		var sb strings.Builder
		for _, c := range chars {
			sb.WriteRune(c.C)
		}
		text = sb.String()
	}
	s.text = text
	s.Chars = chars
	return s, nil
}

func restoreChar(raw record.Params) (Char, error) {
	c, err := record.String(raw, "c")
	if err != nil {
		return Char{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	box, err := restoreBBox(raw)
	if err != nil {
		return Char{}, err
	}
	runes := []rune(c)
	if len(runes) != 1 {
		return Char{}, fmt.Errorf("%w: char %q is not a single rune", ErrMalformedRecord, c)
	}
	return Char{C: runes[0], BBox: box}, nil
}

func (s *TextSpan) Kind() Kind { return KindText }

func (s *TextSpan) Text() string { return s.text }

func (s *TextSpan) BBox() model.BBox { return s.Box }

// SetText replaces the text. Char geometry no longer matches and is dropped.
func (s *TextSpan) SetText(text string) {
	s.text = text
	s.Chars = nil
}

// Condensed reports whether the span is rendered with condensed spacing.
func (s *TextSpan) Condensed() bool { return s.Style.Condensed() }

// IsBlank reports whether the text is empty after trimming white space.
func (s *TextSpan) IsBlank() bool {
	return strings.TrimSpace(s.text) == ""
}

// Intersects keeps the chars that lie mostly inside rect. A span without
// char geometry is kept whole when its center is inside rect.
func (s *TextSpan) Intersects(rect model.BBox) Span {
	if rect.ContainsBox(s.Box) {
		return s.Clone()
	}

	if len(s.Chars) == 0 {
		if rect.Contains(s.Box.Center()) {
			return s.Clone()
		}
		return nil
	}

	kept := make([]Char, 0, len(s.Chars))
	for _, c := range s.Chars {
		if c.BBox.CoveredBy(rect) >= minCharCoverage {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	clipped := &TextSpan{Style: s.Style, Flags: s.Flags}
	clipped.setChars(kept)
	return clipped
}

// Emit adds the text as a single run.
func (s *TextSpan) Emit(p Paragraph) error {
	p.AddText(s.text, s.Style)
	return nil
}

// Store serializes the span; chars are omitted.
func (s *TextSpan) Store() map[string]interface{} {
	flags := s.Flags
	if s.Style.Bold {
		flags |= FlagBold
	}
	if s.Style.Italic {
		flags |= FlagItalic
	}
	return map[string]interface{}{
		"bbox":         s.Box.Rect(),
		"text":         s.text,
		"font":         s.Style.FontName,
		"size":         s.Style.FontSize,
		"color":        s.Style.Color.Int(),
		"flags":        flags,
		"underline":    record.Flag(s.Style.Underline),
		"char_spacing": s.Style.CharSpacing,
	}
}

func (s *TextSpan) Clone() Span {
	c := *s
	if s.Chars != nil {
		c.Chars = make([]Char, len(s.Chars))
		copy(c.Chars, s.Chars)
	}
	return &c
}

func (s *TextSpan) setChars(chars []Char) {
	var sb strings.Builder
	for i, c := range chars {
		sb.WriteRune(c.C)
		if i == 0 {
			s.Box = c.BBox
		} else {
			s.Box = s.Box.Union(c.BBox)
		}
	}
	s.text = sb.String()
	s.Chars = chars
}

// SplitTail separates the last two words of the span's text so they can be
// rendered at normal spacing. head gets CharSpacing 0; tail keeps the
// original style. head.Text()+tail.Text() is always the original text.
// Either part may be empty.
func (s *TextSpan) SplitTail() (head, tail *TextSpan) {
	headText, tailText := splitLastWords(s.text, 2)

	head = s.Clone().(*TextSpan)
	head.SetText(headText)
	head.Style.CharSpacing = 0

	tail = s.Clone().(*TextSpan)
	tail.SetText(tailText)
	return head, tail
}

// splitLastWords cuts text before the last n space-separated words of its
// trimmed form, including the space that precedes them. Lengths are
// counted in runes.
func splitLastWords(text string, n int) (string, string) {
	words := strings.Split(strings.TrimSpace(text), " ")
	if len(words) > n {
		words = words[len(words)-n:]
	}
	cut := len([]rune(strings.Join(words, " "))) + 1

	runes := []rune(text)
	at := len(runes) - cut
	if at < 0 {
		at = 0
	}
	return string(runes[:at]), string(runes[at:])
}
