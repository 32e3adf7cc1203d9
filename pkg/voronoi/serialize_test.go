package voronoi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/chazu/voro3/pkg/kernel"
)

// cubeRaw builds the raw record of a unit cube centered on the site,
// the way the engine emits it: relative vertices, count-prefixed face
// loops, one neighbor per face.
func cubeRaw() *kernel.RawCell {
	return &kernel.RawCell{
		Volume: 1,
		Vertices: []float64{
			-0.5, -0.5, -0.5,
			0.5, -0.5, -0.5,
			0.5, 0.5, -0.5,
			-0.5, 0.5, -0.5,
			-0.5, -0.5, 0.5,
			0.5, -0.5, 0.5,
			0.5, 0.5, 0.5,
			-0.5, 0.5, 0.5,
		},
		FaceData: []int{
			4, 0, 4, 7, 3,
			4, 1, 2, 6, 5,
			4, 0, 1, 5, 4,
			4, 2, 3, 7, 6,
			4, 0, 3, 2, 1,
			4, 4, 5, 6, 7,
		},
		Neighbors: []int{
			kernel.MarkerXMin, kernel.MarkerXMax,
			kernel.MarkerYMin, kernel.MarkerYMax,
			kernel.MarkerZMin, kernel.MarkerZMax,
		},
	}
}

func TestSerializeCellAppliesSiteOffset(t *testing.T) {
	pos := Point3{X: 10, Y: 20, Z: 30}
	c := serializeCell(cubeRaw(), 7, pos)

	require.Equal(t, 7, c.ID)
	require.Equal(t, pos, c.Position)
	require.Equal(t, 1.0, c.Volume)
	require.Len(t, c.Vertices, 8)

	// First vertex is site + (-0.5,-0.5,-0.5).
	want := Point3{X: 9.5, Y: 19.5, Z: 29.5}
	if diff := cmp.Diff(want, c.Vertices[0]); diff != "" {
		t.Fatalf("vertex 0 mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeCellFaceOrderAndNeighbors(t *testing.T) {
	raw := cubeRaw()
	c := serializeCell(raw, 0, Point3{})

	wantFaces := [][]int{
		{0, 4, 7, 3},
		{1, 2, 6, 5},
		{0, 1, 5, 4},
		{2, 3, 7, 6},
		{0, 3, 2, 1},
		{4, 5, 6, 7},
	}
	if diff := cmp.Diff(wantFaces, c.Faces); diff != "" {
		t.Fatalf("faces mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(raw.Neighbors, c.Neighbors); diff != "" {
		t.Fatalf("neighbors mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, c.Neighbors, len(c.Faces))

	// Face indices stay within the vertex slice.
	for _, f := range c.Faces {
		for _, vi := range f {
			require.GreaterOrEqual(t, vi, 0)
			require.Less(t, vi, len(c.Vertices))
		}
	}
}

func TestSerializeCellEdges(t *testing.T) {
	c := serializeCell(cubeRaw(), 0, Point3{})

	// A cube has 12 undirected edges. Each pair is canonicalized low
	// index first and the list is sorted.
	require.Len(t, c.Edges, 12)
	for i, e := range c.Edges {
		require.Less(t, e[0], e[1], "edge %v not canonicalized", e)
		if i > 0 {
			prev := c.Edges[i-1]
			less := prev[0] < e[0] || (prev[0] == e[0] && prev[1] < e[1])
			require.True(t, less, "edges out of order at %d: %v then %v", i, prev, e)
		}
	}
}

func TestCollectEdgesDeduplicates(t *testing.T) {
	// Two triangles sharing edge 1-2, one listing it in each direction.
	faces := [][]int{
		{0, 1, 2},
		{2, 1, 3},
	}
	edges := collectEdges(faces)

	want := [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}
	if diff := cmp.Diff(want, edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeCellEmptyFaceBuffer(t *testing.T) {
	raw := &kernel.RawCell{Volume: 0}
	c := serializeCell(raw, 3, Point3{X: 1})

	require.Equal(t, 3, c.ID)
	require.Empty(t, c.Vertices)
	require.Empty(t, c.Faces)
	require.Empty(t, c.Edges)
	require.Equal(t, 0, c.VertexCount())
	require.Equal(t, 0, c.FaceCount())
}
