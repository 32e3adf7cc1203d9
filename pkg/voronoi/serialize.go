package voronoi

import (
	"sort"

	"github.com/chazu/voro3/pkg/kernel"
)

// serializeCell converts an engine raw cell into the host-facing
// record for the site with the given id and absolute position.
//
// The engine reports vertex coordinates relative to the site, so the
// site position is added back here. Face loops are split out of the
// count-prefixed buffer in emitted order; reordering them would break
// the outward winding and the face/neighbor alignment.
func serializeCell(raw *kernel.RawCell, id int, pos Point3) Cell {
	c := Cell{
		ID:       id,
		Position: pos,
		Volume:   raw.Volume,
	}

	c.Vertices = make([]Point3, 0, raw.VertexCount())
	for i := 0; i+2 < len(raw.Vertices); i += 3 {
		c.Vertices = append(c.Vertices, Point3{
			X: pos.X + raw.Vertices[i],
			Y: pos.Y + raw.Vertices[i+1],
			Z: pos.Z + raw.Vertices[i+2],
		})
	}

	for i := 0; i < len(raw.FaceData); {
		n := raw.FaceData[i]
		loop := make([]int, n)
		copy(loop, raw.FaceData[i+1:i+1+n])
		c.Faces = append(c.Faces, loop)
		i += n + 1
	}

	c.Edges = collectEdges(c.Faces)
	c.Neighbors = append([]int(nil), raw.Neighbors...)
	return c
}

// collectEdges derives the undirected edge set from the face loops:
// every consecutive index pair, including the wraparound last-to-
// first pair, canonicalized with the lower index first and
// deduplicated. The result is sorted so edge order is reproducible
// regardless of face order.
func collectEdges(faces [][]int) [][2]int {
	seen := make(map[[2]int]struct{})
	for _, loop := range faces {
		for j, a := range loop {
			b := loop[(j+1)%len(loop)]
			e := [2]int{a, b}
			if a > b {
				e = [2]int{b, a}
			}
			seen[e] = struct{}{}
		}
	}
	edges := make([][2]int, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}
