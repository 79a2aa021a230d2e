// Package htmldoc renders laid out lines as an HTML document and reads such
// documents back.
//
// Each Paragraph becomes a <p> element and implements span.Paragraph. Text
// runs become <span> elements carrying their style inline, tabs become a
// preformatted tab span, line breaks become <br> and pictures become <img>
// elements with a data URI.
package htmldoc
