package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/relayout/span"
)

// Reader provides access to the paragraphs of an HTML document.
type Reader struct {
	doc        *html.Node
	title      string
	paragraphs []ParsedParagraph
}

// ParsedParagraph holds the content of one <p> element.
type ParsedParagraph struct {
	// Text has tabs as "\t", <br> as "\n" and pictures as the image
	// placeholder.
	Text string

	// Images holds the src attribute of each picture
	Images []string
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	if title := findElement(doc, "title"); title != nil {
		reader.title = strings.TrimSpace(textContent(title))
	}

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	reader.collectParagraphs(body)

	return reader, nil
}

// Title returns the document title
func (r *Reader) Title() string {
	return r.title
}

// Paragraphs returns the parsed paragraphs in document order
func (r *Reader) Paragraphs() []ParsedParagraph {
	return r.paragraphs
}

// Text joins the paragraph texts with newlines
func (r *Reader) Text() string {
	texts := make([]string, 0, len(r.paragraphs))
	for _, p := range r.paragraphs {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}

func (r *Reader) collectParagraphs(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "p" {
			var p ParsedParagraph
			var sb strings.Builder
			paragraphContent(n, &sb, &p)
			p.Text = sb.String()
			r.paragraphs = append(r.paragraphs, p)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.collectParagraphs(c)
	}
}

func paragraphContent(n *html.Node, sb *strings.Builder, p *ParsedParagraph) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode:
			switch {
			case shouldSkipElement(c.Data):
			case c.Data == "br":
				sb.WriteByte('\n')
			case c.Data == "img":
				sb.WriteString(span.ImagePlaceholder)
				p.Images = append(p.Images, getAttr(c, "src"))
			case hasClass(c, tabClass):
				sb.WriteByte('\t')
			default:
				paragraphContent(c, sb, p)
			}
		}
	}
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
