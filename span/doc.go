// Package span provides the content units that make up a text line.
//
// Two variants implement the [Span] interface:
//
//   - [TextSpan] - styled text, optionally with per-char geometry
//   - [ImageSpan] - an inline picture
//
// A [Spans] collection keeps spans in reading order. Spans render themselves
// into any [Paragraph] implementation, such as the docx or htmldoc writers:
//
//	var spans span.Spans
//	spans.Append(span.NewTextSpan("Hello", box, style))
//	for _, s := range spans.All() {
//	    if err := s.Emit(p); err != nil {
//	        return err
//	    }
//	}
//
// Spans are stored as generic mappings; [Restore] picks the variant from
// the mapping's keys.
package span
