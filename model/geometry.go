package model

import (
	"fmt"
	"math"
)

// Point represents a 2D point or a direction vector
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Slice returns the point as a two element slice, the form used by stored records.
func (p Point) Slice() []float64 {
	return []float64{p.X, p.Y}
}

// BBox represents an axis-aligned rectangle.
// X and Y are the minimum corner in page coordinates.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from origin and size
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates a bounding box from two corner points
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// BBoxFromRect creates a bounding box from the (x0, y0, x1, y1) form used by
// extracted records.
func BBoxFromRect(r []float64) (BBox, error) {
	if len(r) != 4 {
		return BBox{}, fmt.Errorf("rect needs 4 coordinates, got %d", len(r))
	}
	return NewBBoxFromPoints(Point{r[0], r[1]}, Point{r[2], r[3]}), nil
}

// Rect returns the (x0, y0, x1, y1) form of the box.
func (b BBox) Rect() []float64 {
	return []float64{b.Left(), b.Bottom(), b.Right(), b.Top()}
}

// Left returns the minimum X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the maximum X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the minimum Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the maximum Y coordinate
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Bottom() && p.Y <= b.Top()
}

// ContainsBox checks if other lies entirely within b (edges included)
func (b BBox) ContainsBox(other BBox) bool {
	return other.Left() >= b.Left() && other.Right() <= b.Right() &&
		other.Bottom() >= b.Bottom() && other.Top() <= b.Top()
}

// Intersects checks if two bounding boxes touch or overlap
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Top() < other.Bottom() ||
		b.Bottom() > other.Top())
}

// Intersection returns the intersection of two bounding boxes
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Bottom(), other.Bottom())
	right := math.Min(b.Right(), other.Right())
	top := math.Min(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// Overlaps reports whether the two boxes share a region of positive area.
func (b BBox) Overlaps(other BBox) bool {
	return b.Intersection(other).IsValid()
}

// Union returns the smallest box enclosing both boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// CoveredBy returns the fraction (0..1) of b's area that lies inside rect.
// Degenerate boxes count as covered when they touch rect.
func (b BBox) CoveredBy(rect BBox) float64 {
	if !b.Intersects(rect) {
		return 0
	}
	area := b.Area()
	if area == 0 {
		return 1
	}
	return b.Intersection(rect).Area() / area
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the bounding box has positive dimensions
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}

// Matrix represents a 2D affine transformation matrix (a, b, c, d, e, f)
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformVector applies only the linear part of the matrix, so directions
// are not shifted by the translation.
func (m Matrix) TransformVector(v Point) Point {
	return Point{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// Multiply multiplies two matrices
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// PageRotation returns the pure rotation matrix for a page rotated by the
// given number of degrees. Multiples of 90 produce exact entries so rotated
// axis vectors compare equal to the canonical ones.
func PageRotation(degrees int) Matrix {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return Identity()
	case 90:
		return Matrix{0, 1, -1, 0, 0, 0}
	case 180:
		return Matrix{-1, 0, 0, -1, 0, 0}
	case 270:
		return Matrix{0, -1, 1, 0, 0, 0}
	default:
		return Rotate(float64(degrees) * math.Pi / 180)
	}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
