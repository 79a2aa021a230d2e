package htmldoc

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/span"
)

// tabClass marks the span holding a tab character.
const tabClass = "tab"

// Document is an HTML document being written.
type Document struct {
	title      string
	paragraphs []*Paragraph
}

// New creates an empty document with the given title.
func New(title string) *Document {
	return &Document{title: title}
}

// AddParagraph appends an empty paragraph and returns it for filling.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{node: element(atom.P)}
	d.paragraphs = append(d.paragraphs, p)
	return p
}

// Paragraphs returns the paragraphs added so far
func (d *Document) Paragraphs() []*Paragraph {
	return d.paragraphs
}

// Paragraph is a <p> element. It implements span.Paragraph.
type Paragraph struct {
	node *html.Node
	text strings.Builder
}

var _ span.Paragraph = (*Paragraph)(nil)

// AddText appends the text, wrapped in a styled <span> when the style sets
// anything.
func (p *Paragraph) AddText(text string, style model.TextStyle) {
	p.text.WriteString(text)
	content := &html.Node{Type: html.TextNode, Data: text}
	css := styleCSS(style)
	if css == "" {
		p.node.AppendChild(content)
		return
	}
	s := element(atom.Span, html.Attribute{Key: "style", Val: css})
	s.AppendChild(content)
	p.node.AppendChild(s)
}

// AddTab appends a tab character kept by white-space:pre.
func (p *Paragraph) AddTab() {
	p.text.WriteByte('\t')
	s := element(atom.Span,
		html.Attribute{Key: "class", Val: tabClass},
		html.Attribute{Key: "style", Val: "white-space:pre"},
	)
	s.AppendChild(&html.Node{Type: html.TextNode, Data: "\t"})
	p.node.AppendChild(s)
}

// AddBreak appends a <br>.
func (p *Paragraph) AddBreak() {
	p.text.WriteByte('\n')
	p.node.AppendChild(element(atom.Br))
}

// AddImage appends an <img> whose source embeds the picture.
func (p *Paragraph) AddImage(img span.ImageRun) error {
	if len(img.Data) == 0 {
		return fmt.Errorf("adding image: %w", span.ErrImageData)
	}

	width, height := img.Width, img.Height
	if width <= 0 || height <= 0 {
		width, height = float64(img.PixelWidth), float64(img.PixelHeight)
	}
	src := "data:" + img.Format.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	p.node.AppendChild(element(atom.Img,
		html.Attribute{Key: "src", Val: src},
		html.Attribute{Key: "alt", Val: span.ImagePlaceholder},
		html.Attribute{Key: "style", Val: "width:" + formatPt(width) + ";height:" + formatPt(height)},
	))
	p.text.WriteString(span.ImagePlaceholder)
	return nil
}

// Text returns the paragraph's text with tabs, breaks and image placeholders.
func (p *Paragraph) Text() string {
	return p.text.String()
}

// Render writes the document as HTML5.
func (d *Document) Render(w io.Writer) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlNode := element(atom.Html)
	root.AppendChild(htmlNode)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	if d.title != "" {
		title := element(atom.Title)
		title.AppendChild(&html.Node{Type: html.TextNode, Data: d.title})
		head.AppendChild(title)
	}
	htmlNode.AppendChild(head)

	body := element(atom.Body)
	for _, p := range d.paragraphs {
		// nodes can only have one parent; render a copy
		body.AppendChild(cloneNode(p.node))
	}
	htmlNode.AppendChild(body)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{Type: n.Type, DataAtom: n.DataAtom, Data: n.Data, Attr: append([]html.Attribute(nil), n.Attr...)}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

// styleCSS maps a text style to an inline CSS declaration list.
func styleCSS(s model.TextStyle) string {
	var decls []string
	if s.FontName != "" {
		decls = append(decls, "font-family:'"+strings.ReplaceAll(s.FontName, "'", "")+"'")
	}
	if s.FontSize > 0 {
		decls = append(decls, "font-size:"+formatPt(s.FontSize))
	}
	if s.Bold {
		decls = append(decls, "font-weight:bold")
	}
	if s.Italic {
		decls = append(decls, "font-style:italic")
	}
	if s.Underline {
		decls = append(decls, "text-decoration:underline")
	}
	if s.Color != (model.Color{}) {
		decls = append(decls, "color:#"+s.Color.Hex())
	}
	if s.CharSpacing != 0 {
		decls = append(decls, "letter-spacing:"+formatPt(s.CharSpacing))
	}
	return strings.Join(decls, ";")
}

func formatPt(v float64) string {
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}
