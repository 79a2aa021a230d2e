package relayout

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/relayout/docx"
	"github.com/tsawler/relayout/htmldoc"
	"github.com/tsawler/relayout/layout"
	"github.com/tsawler/relayout/model"
)

// Converter provides a fluent interface for converting a page record.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source
	filename string
	data     []byte

	// Configuration
	options convertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		data:     c.data,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Rotation overrides the page rotation in degrees. Line directions are
// mapped through it.
func (c *Converter) Rotation(degrees int) *Converter {
	n := c.clone()
	n.options.rotation = &degrees
	return n
}

// Clip keeps only the content inside rect. Lines fully inside are kept
// whole; others are clipped span by span.
func (c *Converter) Clip(rect model.BBox) *Converter {
	n := c.clone()
	n.options.clip = &rect
	return n
}

// KeepWhiteSpace keeps blank spans at line ends and whitespace-only lines.
func (c *Converter) KeepWhiteSpace() *Converter {
	n := c.clone()
	n.options.keepWhiteSpace = true
	return n
}

// Title sets the title of rendered HTML documents.
func (c *Converter) Title(title string) *Converter {
	n := c.clone()
	n.options.title = title
	return n
}

// DescribeImages sets the source of alt text for pictures written to DOCX,
// such as an *ocr.Client.
func (c *Converter) DescribeImages(d docx.ImageDescriber) *Converter {
	n := c.clone()
	n.options.describer = d
	return n
}

// Logger sets the logger for conversion events. Nothing is logged by
// default.
func (c *Converter) Logger(l logrus.FieldLogger) *Converter {
	n := c.clone()
	if l == nil {
		l = discardLogger()
	}
	n.options.logger = l
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Lines builds the page's lines in reading order. Lines carry their block
// index as parent id.
func (c *Converter) Lines() (layout.Lines, []Warning, error) {
	page, err := c.load()
	if err != nil {
		return nil, nil, err
	}

	log := c.logger()
	var warnings []Warning
	warn := func(block, line int, msg string) {
		warnings = append(warnings, Warning{Block: block, Line: line, Message: msg})
		log.WithFields(logrus.Fields{"block": block, "line": line}).Warn(msg)
	}

	rotation := page.Rotation
	if c.options.rotation != nil {
		rotation = *c.options.rotation
	}
	cfg := layout.DefaultLineConfig()
	cfg.Rotation = model.PageRotation(rotation)

	var lines layout.Lines
	for bi, raw := range page.Blocks {
		block, skipped, err := layout.NewBlockFromRecord(raw, bi, cfg)
		if err != nil {
			warn(bi, -1, err.Error())
			continue
		}
		for _, le := range skipped {
			warn(bi, le.Line, le.Err.Error())
		}
		lines = append(lines, block.Lines...)
	}
	for li, raw := range page.Lines {
		line, err := layout.NewLineFromRecord(raw, cfg)
		if err != nil {
			warn(-1, li, err.Error())
			continue
		}
		if err := line.SetParentID(raw["block"]); err != nil {
			warn(-1, li, err.Error())
		}
		lines = append(lines, line)
	}

	built := len(lines)
	if c.options.clip != nil {
		lines = lines.Intersects(*c.options.clip)
	}
	if !c.options.keepWhiteSpace {
		lines = lines.Strip()
	}

	log.WithFields(logrus.Fields{
		"rotation": rotation,
		"built":    built,
		"kept":     len(lines),
	}).Debug("built lines")

	return lines, warnings, nil
}

// Paragraphs groups the page's lines into paragraphs, one per run of lines
// from the same block.
func (c *Converter) Paragraphs() ([]layout.Lines, []Warning, error) {
	lines, warnings, err := c.Lines()
	if err != nil {
		return nil, warnings, err
	}
	return lines.GroupBySourceParent(), warnings, nil
}

// Text returns the page text with paragraphs separated by newlines.
func (c *Converter) Text() (string, []Warning, error) {
	paragraphs, warnings, err := c.Paragraphs()
	if err != nil {
		return "", warnings, err
	}

	texts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "\n"), warnings, nil
}

// WriteDOCX writes the page as a .docx package.
func (c *Converter) WriteDOCX(w io.Writer) ([]Warning, error) {
	paragraphs, warnings, err := c.Paragraphs()
	if err != nil {
		return warnings, err
	}

	var opts []docx.Option
	if c.options.describer != nil {
		opts = append(opts, docx.WithImageDescriber(c.options.describer))
	}
	doc := docx.New(opts...)
	for i, p := range paragraphs {
		if err := p.Emit(doc.AddParagraph()); err != nil {
			warnings = append(warnings, c.emitWarning(i, p, err))
		}
	}
	for _, dw := range doc.Warnings() {
		warnings = append(warnings, Warning{Block: -1, Line: -1, Message: dw.Error()})
		c.logger().WithError(dw).Warn("describing picture")
	}

	if err := doc.Write(w); err != nil {
		return warnings, fmt.Errorf("writing DOCX: %w", err)
	}
	return warnings, nil
}

// WriteHTML writes the page as an HTML document.
func (c *Converter) WriteHTML(w io.Writer) ([]Warning, error) {
	paragraphs, warnings, err := c.Paragraphs()
	if err != nil {
		return warnings, err
	}

	doc := htmldoc.New(c.options.title)
	for i, p := range paragraphs {
		if err := p.Emit(doc.AddParagraph()); err != nil {
			warnings = append(warnings, c.emitWarning(i, p, err))
		}
	}

	if err := doc.Render(w); err != nil {
		return warnings, fmt.Errorf("writing HTML: %w", err)
	}
	return warnings, nil
}

// load reads and decodes the page record.
func (c *Converter) load() (pageRecord, error) {
	if c.err != nil {
		return pageRecord{}, c.err
	}
	data := c.data
	if data == nil {
		if c.filename == "" {
			return pageRecord{}, fmt.Errorf("no page record specified")
		}
		var err error
		data, err = os.ReadFile(c.filename)
		if err != nil {
			return pageRecord{}, fmt.Errorf("reading page record: %w", err)
		}
	}
	return parsePage(data)
}

func (c *Converter) logger() logrus.FieldLogger {
	if c.filename == "" {
		return c.options.logger
	}
	return c.options.logger.WithField("page", c.filename)
}

// emitWarning reports a paragraph that was emitted only up to a failing
// span.
func (c *Converter) emitWarning(index int, p layout.Lines, err error) Warning {
	block := -1
	if len(p) > 0 {
		if id, ok := p[0].ParentID(); ok {
			block = id
		}
	}
	msg := fmt.Sprintf("paragraph %d: %v", index, err)
	c.logger().WithFields(logrus.Fields{"block": block, "paragraph": index}).WithError(err).Warn("emitting paragraph")
	return Warning{Block: block, Line: -1, Message: msg}
}
