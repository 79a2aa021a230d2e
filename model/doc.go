// Package model provides the geometric and styling primitives shared by the
// span, layout and output packages.
//
// # Geometry
//
//   - [Point] - 2D point or direction vector
//   - [BBox] - axis-aligned rectangle with containment, intersection and
//     union
//   - [Matrix] - 2D affine transformation matrix
//
// Page rotation is expressed with [PageRotation], which returns exact
// matrices for quarter turns:
//
//	dir := model.PageRotation(270).TransformVector(model.Point{X: 1, Y: 0})
//	// dir == model.Point{X: 0, Y: -1}
//
// # Styling
//
// [TextStyle] and [Color] describe how a run of text is rendered;
// [ImageFormat] identifies the encoding of embedded pictures.
package model
