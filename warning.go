package relayout

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal problem met during conversion. The affected line
// or paragraph is skipped or emitted partially.
type Warning struct {
	Block   int // block index, -1 when not tied to a block
	Line    int // line index within the block, -1 when not tied to a line
	Message string
}

func (w Warning) String() string {
	switch {
	case w.Block >= 0 && w.Line >= 0:
		return fmt.Sprintf("block %d, line %d: %s", w.Block, w.Line, w.Message)
	case w.Block >= 0:
		return fmt.Sprintf("block %d: %s", w.Block, w.Message)
	case w.Line >= 0:
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	default:
		return w.Message
	}
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
