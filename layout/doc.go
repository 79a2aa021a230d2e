// Package layout provides text lines: rows of spans with a writing
// direction, clipping against regions and rendering into output paragraphs.
//
// # Building lines
//
// Lines are built from extracted records, whose "dir" vector is rotated
// into the final coordinate system:
//
//	cfg := layout.DefaultLineConfig()
//	cfg.Rotation = model.PageRotation(page.Rotation)
//	line, err := layout.NewLineFromRecord(raw, cfg)
//
// or restored from the mapping produced by [Line.Store] with [RestoreLine].
//
// # Identity
//
// Blocks are regrouped during analysis, so each line remembers the block it
// was extracted in. [Line.SetParentID] only takes effect once, and
// [Line.SameSourceParent] compares the recorded ids.
//
// # Clipping
//
// [Line.Intersects] returns a new line restricted to a rectangle, used to
// split lines across table cells or columns. Spans are copied, never shared.
//
// # Emission
//
// [Line.Emit] writes the line into any span.Paragraph. Text spans with
// condensed character spacing are split so that their last two words are
// rendered at normal spacing; the split never adds or drops characters.
package layout
