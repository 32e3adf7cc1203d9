package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Box boundary face markers. Cells clipped by the container box carry
// these in their neighbor buffer instead of a site id.
const (
	MarkerXMin = -1
	MarkerXMax = -2
	MarkerYMin = -3
	MarkerYMax = -4
	MarkerZMin = -5
	MarkerZMax = -6
)

// RawCell is the transient raw polytope an engine produces for one
// cell computation. All buffers are flat.
//
// Vertices holds 3 floats per vertex (x,y,z), expressed relative to
// the site position; consumers must add the site position back to
// obtain absolute coordinates. FaceData holds one group per face: a
// vertex count followed by that many vertex indices, with loop order
// encoding the outward winding. Neighbors holds one entry per face:
// the id of the site across the face, or a negative wall/box marker.
type RawCell struct {
	Volume    float64
	Vertices  []float64 // [x0,y0,z0, x1,y1,z1, ...] site-relative
	FaceData  []int     // [n0, i0..i(n0-1), n1, ...] count-prefixed loops
	Neighbors []int     // one id per face
	Centroid  v3.Vec    // centroid relative to the site position
}

// VertexCount returns the number of vertices.
func (c *RawCell) VertexCount() int {
	return len(c.Vertices) / 3
}

// FaceCount returns the number of faces.
func (c *RawCell) FaceCount() int {
	return len(c.Neighbors)
}
