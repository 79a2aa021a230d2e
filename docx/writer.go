package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/span"
)

// emuPerPoint converts points to English Metric Units used by DrawingML.
const emuPerPoint = 12700

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	nsContentTypes        = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels         = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypeMain       = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	contentTypeRels       = "application/vnd.openxmlformats-package.relationships+xml"
	graphicDataPicture    = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// ImageDescriber produces alt text for a picture, for example by OCR.
type ImageDescriber interface {
	Describe(data []byte) (string, error)
}

// Option configures a Document
type Option func(*Document)

// WithImageDescriber sets the source of alt text for pictures.
func WithImageDescriber(d ImageDescriber) Option {
	return func(doc *Document) {
		doc.describer = d
	}
}

// Document is a WordprocessingML document being written.
type Document struct {
	paragraphs []*Paragraph
	media      []mediaPart
	describer  ImageDescriber
	warnings   []error
}

// mediaPart is a picture stored under word/media.
type mediaPart struct {
	relID  string
	name   string
	format model.ImageFormat
	data   []byte
}

// New creates an empty document
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddParagraph appends an empty paragraph and returns it for filling.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{doc: d}
	d.paragraphs = append(d.paragraphs, p)
	return p
}

// Paragraphs returns the paragraphs added so far
func (d *Document) Paragraphs() []*Paragraph {
	return d.paragraphs
}

// Warnings returns non-fatal problems met while building, such as failed
// alt text recognition.
func (d *Document) Warnings() []error {
	return d.warnings
}

// Paragraph is a paragraph of a Document. It implements span.Paragraph.
type Paragraph struct {
	doc  *Document
	runs []wRun
	text strings.Builder
}

var _ span.Paragraph = (*Paragraph)(nil)

// AddText appends a styled text run.
func (p *Paragraph) AddText(text string, style model.TextStyle) {
	p.runs = append(p.runs, wRun{
		Props: runProps(style),
		Text:  &wText{Space: "preserve", Value: text},
	})
	p.text.WriteString(text)
}

// AddTab appends a tab run.
func (p *Paragraph) AddTab() {
	p.runs = append(p.runs, wRun{Tab: &wEmpty{}})
	p.text.WriteByte('\t')
}

// AddBreak appends a line break run.
func (p *Paragraph) AddBreak() {
	p.runs = append(p.runs, wRun{Break: &wEmpty{}})
	p.text.WriteByte('\n')
}

// AddImage stores the picture as a media part and appends an inline drawing.
func (p *Paragraph) AddImage(img span.ImageRun) error {
	d := p.doc
	if len(img.Data) == 0 {
		return fmt.Errorf("adding image: %w", span.ErrImageData)
	}

	n := len(d.media) + 1
	part := mediaPart{
		relID:  "rId" + strconv.Itoa(n),
		name:   fmt.Sprintf("image%d.%s", n, img.Format.Extension()),
		format: img.Format,
		data:   img.Data,
	}
	d.media = append(d.media, part)

	var descr string
	if d.describer != nil {
		text, err := d.describer.Describe(img.Data)
		if err != nil {
			d.warnings = append(d.warnings, fmt.Errorf("describing %s: %w", part.name, err))
		} else {
			descr = text
		}
	}

	width, height := img.Width, img.Height
	if width <= 0 || height <= 0 {
		// no layout size, fall back to one point per pixel
		width, height = float64(img.PixelWidth), float64(img.PixelHeight)
	}
	ext := wExtent{CX: toEMU(width), CY: toEMU(height)}
	props := wDocPr{ID: n, Name: part.name, Descr: descr}

	p.runs = append(p.runs, wRun{Drawing: &wDrawing{Inline: wInline{
		Extent: ext,
		DocPr:  props,
		Graphic: wGraphic{Data: wGraphicData{
			URI: graphicDataPicture,
			Pic: wPic{
				NvPicPr:  wNvPicPr{CNvPr: props},
				BlipFill: wBlipFill{Blip: wBlip{Embed: part.relID}},
				SpPr: wSpPr{
					Xfrm:     wXfrm{Ext: ext},
					PrstGeom: wPrstGeom{Prst: "rect"},
				},
			},
		}},
	}}})
	p.text.WriteString(span.ImagePlaceholder)
	return nil
}

// Text returns the paragraph's text with tabs, breaks and image placeholders.
func (p *Paragraph) Text() string {
	return p.text.String()
}

// RunCount returns the number of runs in the paragraph
func (p *Paragraph) RunCount() int {
	return len(p.runs)
}

// Write stores the document as a .docx package.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	if err := writeXMLPart(zw, "[Content_Types].xml", d.contentTypes()); err != nil {
		return err
	}
	if err := writeXMLPart(zw, "_rels/.rels", relationshipsXML{
		Xmlns: nsPackageRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeOfficeDocument, Target: "word/document.xml"},
		},
	}); err != nil {
		return err
	}
	if err := writeXMLPart(zw, "word/document.xml", d.documentXML()); err != nil {
		return err
	}

	rels := relationshipsXML{Xmlns: nsPackageRels}
	for _, m := range d.media {
		rels.Relationships = append(rels.Relationships, relationshipXML{
			ID: m.relID, Type: relTypeImage, Target: "media/" + m.name,
		})
	}
	if err := writeXMLPart(zw, "word/_rels/document.xml.rels", rels); err != nil {
		return err
	}

	for _, m := range d.media {
		fw, err := zw.Create("word/media/" + m.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", m.name, err)
		}
		if _, err := fw.Write(m.data); err != nil {
			return fmt.Errorf("writing %s: %w", m.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing ZIP archive: %w", err)
	}
	return nil
}

func (d *Document) documentXML() wDocument {
	doc := wDocument{W: nsW, R: nsR, WP: nsWP, A: nsA, Pic: nsPic}
	for _, p := range d.paragraphs {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, wParagraph{Runs: p.runs})
	}
	return doc
}

func (d *Document) contentTypes() contentTypesXML {
	ct := contentTypesXML{
		Xmlns: nsContentTypes,
		Defaults: []contentTypeDefault{
			{Extension: "rels", ContentType: contentTypeRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []contentTypeOverride{
			{PartName: "/word/document.xml", ContentType: contentTypeMain},
		},
	}
	seen := make(map[string]bool)
	for _, m := range d.media {
		ext := m.format.Extension()
		if seen[ext] {
			continue
		}
		seen[ext] = true
		ct.Defaults = append(ct.Defaults, contentTypeDefault{Extension: ext, ContentType: m.format.MIMEType()})
	}
	return ct
}

func writeXMLPart(zw *zip.Writer, name string, v interface{}) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	data, err := xml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// runProps maps a text style to <w:rPr>, or nil when nothing is set.
func runProps(s model.TextStyle) *wRunProps {
	var rp wRunProps
	set := false
	if s.FontName != "" {
		rp.Fonts = &wFonts{ASCII: s.FontName, HAnsi: s.FontName}
		set = true
	}
	if s.Bold {
		rp.Bold = &wEmpty{}
		set = true
	}
	if s.Italic {
		rp.Italic = &wEmpty{}
		set = true
	}
	if s.Color != (model.Color{}) {
		rp.Color = &wVal{Val: s.Color.Hex()}
		set = true
	}
	if s.CharSpacing != 0 {
		// twentieths of a point
		rp.Spacing = &wVal{Val: strconv.Itoa(int(math.Round(s.CharSpacing * 20)))}
		set = true
	}
	if s.FontSize > 0 {
		// half points
		rp.Size = &wVal{Val: strconv.Itoa(int(math.Round(s.FontSize * 2)))}
		set = true
	}
	if s.Underline {
		rp.Underline = &wVal{Val: "single"}
		set = true
	}
	if !set {
		return nil
	}
	return &rp
}

func toEMU(points float64) int64 {
	return int64(math.Round(points * emuPerPoint))
}
