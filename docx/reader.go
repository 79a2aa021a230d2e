package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// ErrNoDocument is returned when a package has no word/document.xml.
var ErrNoDocument = errors.New("missing word/document.xml")

// Reader gives access to the paragraphs of a written DOCX package.
type Reader struct {
	zipReader  *zip.Reader
	closer     io.Closer
	rels       map[string]string // relationship ID -> part name
	paragraphs []ParsedParagraph
}

// ParsedParagraph holds the runs of one paragraph.
type ParsedParagraph struct {
	Runs []ParsedRun
}

// Text joins the runs the same way Paragraph.Text does.
func (p ParsedParagraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.String())
	}
	return sb.String()
}

// ParsedRun holds one run. Exactly one of Text, Tab, Break and Image is set.
type ParsedRun struct {
	Text  string
	Tab   bool
	Break bool
	Image bool

	// Picture details, when Image is set
	ImagePart string
	AltText   string

	Bold      bool
	Italic    bool
	Underline bool
	FontName  string
	FontSize  float64 // points
	Spacing   float64 // points
}

// String returns the run's text form: tabs as "\t", breaks as "\n" and
// pictures as the image placeholder.
func (r ParsedRun) String() string {
	switch {
	case r.Tab:
		return "\t"
	case r.Break:
		return "\n"
	case r.Image:
		return "<image>"
	default:
		return r.Text
	}
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads a DOCX package held in memory or any io.ReaderAt.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr, rels: make(map[string]string)}

	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// Paragraphs returns the parsed paragraphs in document order
func (r *Reader) Paragraphs() []ParsedParagraph {
	return r.paragraphs
}

// Text joins the paragraph texts with newlines
func (r *Reader) Text() string {
	texts := make([]string, 0, len(r.paragraphs))
	for _, p := range r.paragraphs {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "\n")
}

// Media returns the content of a part such as "word/media/image1.png".
func (r *Reader) Media(name string) ([]byte, error) {
	return r.getFileContent(name)
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		// Relationships file is optional
		return nil
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}
	for _, rel := range rels.Relationships {
		r.rels[rel.ID] = path.Join("word", rel.Target)
	}
	return nil
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return ErrNoDocument
	}

	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	if doc.Body == nil {
		return nil
	}

	for _, p := range doc.Body.Paragraphs {
		var parsed ParsedParagraph
		for _, run := range p.Runs {
			parsed.Runs = append(parsed.Runs, r.parseRun(run))
		}
		r.paragraphs = append(r.paragraphs, parsed)
	}
	return nil
}

// parseRun converts a run. Runs written by Document carry one content
// element each.
func (r *Reader) parseRun(run runXML) ParsedRun {
	props := run.Properties
	out := ParsedRun{
		Bold:      props.Bold != nil && props.Bold.Val != "0" && props.Bold.Val != "false",
		Italic:    props.Italic != nil && props.Italic.Val != "0" && props.Italic.Val != "false",
		Underline: props.Underline != nil && props.Underline.Val != "none",
		FontName:  props.Font.ASCII,
	}
	if halfPoints, err := strconv.Atoi(props.FontSize.Val); err == nil {
		out.FontSize = float64(halfPoints) / 2
	}
	if twips, err := strconv.Atoi(props.Spacing.Val); err == nil {
		out.Spacing = float64(twips) / 20
	}

	switch {
	case len(run.Tabs) > 0:
		out.Tab = true
	case len(run.Breaks) > 0:
		out.Break = true
	case len(run.Drawing) > 0:
		out.Image = true
		if inline := run.Drawing[0].Inline; inline != nil {
			out.AltText = inline.DocPr.Descr
			if inline.Blip != nil {
				out.ImagePart = r.rels[inline.Blip.Embed]
			}
		}
	default:
		var sb strings.Builder
		for _, t := range run.Text {
			sb.WriteString(t.Value)
		}
		out.Text = sb.String()
	}
	return out
}
