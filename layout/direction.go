package layout

import "github.com/tsawler/relayout/model"

// WritingMode is the flow of text within a line
type WritingMode int

const (
	Horizontal WritingMode = iota
	Vertical
)

// String returns "horizontal" or "vertical"
func (m WritingMode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// TextDirection is the reading direction of a line in the final coordinate
// system. Only the two directions a document writer can express are
// recognized.
type TextDirection int

const (
	DirectionIgnore TextDirection = iota
	DirectionLeftRight
	DirectionBottomTop
)

// String returns a string representation of the direction
func (d TextDirection) String() string {
	switch d {
	case DirectionLeftRight:
		return "left-right"
	case DirectionBottomTop:
		return "bottom-top"
	default:
		return "ignore"
	}
}

var (
	leftRight = model.Point{X: 1, Y: 0}
	bottomTop = model.Point{X: 0, Y: -1}
)

// ClassifyDirection maps a direction vector to a TextDirection by exact
// comparison. Vectors from off-axis rotations are DirectionIgnore.
func ClassifyDirection(dir model.Point) TextDirection {
	switch dir {
	case leftRight:
		return DirectionLeftRight
	case bottomTop:
		return DirectionBottomTop
	default:
		return DirectionIgnore
	}
}
