package voronoi

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3 is a 3D point in the host-facing record format.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Point3) vec() v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

func fromVec(v v3.Vec) Point3 {
	return Point3{X: v.X, Y: v.Y, Z: v.Z}
}

// Periodic selects which box axes wrap around.
type Periodic struct {
	X bool `json:"x"`
	Y bool `json:"y"`
	Z bool `json:"z"`
}

// Cell is the host-consumable record of one Voronoi cell.
//
// Faces are index loops into Vertices; loop order preserves the
// outward winding the engine emitted. Edges holds every undirected
// vertex-index pair appearing between consecutive face vertices
// (including the wraparound pair), each exactly once, with the lower
// index first and pairs in ascending order. Neighbors is aligned to
// Faces: the id of the site across each face, or a negative wall/box
// marker for boundary faces.
type Cell struct {
	ID        int      `json:"id"`
	Position  Point3   `json:"position"`
	Volume    float64  `json:"volume"`
	Vertices  []Point3 `json:"vertices"`
	Faces     [][]int  `json:"faces"`
	Edges     [][2]int `json:"edges"`
	Neighbors []int    `json:"neighbors"`
}

// VertexCount returns the number of cell vertices.
func (c Cell) VertexCount() int {
	return len(c.Vertices)
}

// FaceCount returns the number of cell faces.
func (c Cell) FaceCount() int {
	return len(c.Faces)
}

// IsEmpty reports whether the record carries no geometry. Queries for
// unknown site ids return empty records rather than an error.
func (c Cell) IsEmpty() bool {
	return len(c.Vertices) == 0
}
