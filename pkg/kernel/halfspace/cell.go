package halfspace

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// clipEps scales the tolerance used to classify vertices against a
// cutting plane. Vertices within tolerance count as kept, so a plane
// grazing a face leaves the cell unchanged.
const clipEps = 1e-9

// cell is a convex polytope in absolute coordinates: a vertex list
// plus face loops wound outward. It is the plain representation used
// on the relaxation path, where face provenance does not matter.
type cell struct {
	verts []v3.Vec
	faces [][]int
}

// nbrCell extends cell with one marker per face recording what created
// the face: a neighboring site id, a box marker, or a wall id.
type nbrCell struct {
	cell
	markers []int
}

// clipOutcome reports what a cut did to the face list so that marker
// bookkeeping can be replayed by representations that track it.
type clipOutcome struct {
	changed  bool  // geometry was modified
	kept     []int // old face indices that survived, in order
	capAdded bool  // a cap face was appended after the kept faces
}

// Clip cuts the cell with the half-space n.x <= d. The marker is
// unused by the plain representation.
func (c *cell) Clip(n v3.Vec, d float64, marker int) bool {
	_, alive := c.cut(n, d)
	return alive
}

// Clip cuts the cell and keeps the face markers aligned, labelling a
// newly created cap face with marker.
func (c *nbrCell) Clip(n v3.Vec, d float64, marker int) bool {
	out, alive := c.cut(n, d)
	if !out.changed {
		return alive
	}
	if !alive {
		c.markers = c.markers[:0]
		return false
	}
	kept := make([]int, 0, len(out.kept)+1)
	for _, fi := range out.kept {
		kept = append(kept, c.markers[fi])
	}
	if out.capAdded {
		kept = append(kept, marker)
	}
	c.markers = kept
	return true
}

// cut performs the half-space clip shared by both representations.
// It returns what happened to the face list and whether the cell is
// still non-empty.
func (c *cell) cut(n v3.Vec, d float64) (clipOutcome, bool) {
	if len(c.verts) == 0 {
		return clipOutcome{}, false
	}
	nl := n.Length()
	if nl == 0 {
		return clipOutcome{}, true
	}

	maxAbs := 0.0
	for _, v := range c.verts {
		for _, x := range [3]float64{v.X, v.Y, v.Z} {
			if a := math.Abs(x); a > maxAbs {
				maxAbs = a
			}
		}
	}
	tol := clipEps * (nl*(maxAbs+1) + math.Abs(d))

	dist := make([]float64, len(c.verts))
	inside := make([]bool, len(c.verts))
	nIn := 0
	for i, v := range c.verts {
		dist[i] = v.Dot(n) - d
		inside[i] = dist[i] <= tol
		if inside[i] {
			nIn++
		}
	}

	if nIn == len(c.verts) {
		return clipOutcome{}, true
	}
	if nIn == 0 {
		c.verts = c.verts[:0]
		c.faces = c.faces[:0]
		return clipOutcome{changed: true}, false
	}

	newVerts := make([]v3.Vec, 0, len(c.verts))
	oldMap := make([]int, len(c.verts))
	for i := range oldMap {
		oldMap[i] = -1
	}
	remapOld := func(i int) int {
		if oldMap[i] < 0 {
			oldMap[i] = len(newVerts)
			newVerts = append(newVerts, c.verts[i])
		}
		return oldMap[i]
	}

	// Intersection vertices are keyed by the original edge so the two
	// faces sharing the edge reuse one welded vertex.
	cutVerts := make(map[[2]int]int)
	cutVert := func(a, b int) int {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if idx, ok := cutVerts[key]; ok {
			return idx
		}
		t := dist[a] / (dist[a] - dist[b])
		p := c.verts[a].Add(c.verts[b].Sub(c.verts[a]).MulScalar(t))
		idx := len(newVerts)
		newVerts = append(newVerts, p)
		cutVerts[key] = idx
		return idx
	}

	// capNext chains the plane edges contributed by each clipped face
	// in reverse, which yields the cap loop with outward winding.
	capNext := make(map[int]int)
	capStart := -1

	var out clipOutcome
	out.changed = true
	newFaces := make([][]int, 0, len(c.faces)+1)

	for fi, loop := range c.faces {
		var nf []int
		entry, exit := -1, -1
		for j, a := range loop {
			b := loop[(j+1)%len(loop)]
			if inside[a] {
				nf = append(nf, remapOld(a))
			}
			if inside[a] != inside[b] {
				x := cutVert(a, b)
				nf = append(nf, x)
				if inside[a] {
					exit = x
				} else {
					entry = x
				}
			}
		}
		if len(nf) >= 3 {
			newFaces = append(newFaces, nf)
			out.kept = append(out.kept, fi)
			if entry >= 0 && exit >= 0 && entry != exit {
				capNext[entry] = exit
				capStart = entry
			}
		}
	}

	if len(capNext) >= 3 {
		capLoop := []int{capStart}
		for next := capNext[capStart]; next != capStart; {
			capLoop = append(capLoop, next)
			if len(capLoop) > len(capNext) {
				break // open chain from a degenerate cut
			}
			next = capNext[next]
		}
		if len(capLoop) >= 3 && len(capLoop) <= len(capNext) {
			newFaces = append(newFaces, capLoop)
			out.capAdded = true
		}
	}

	c.verts = newVerts
	c.faces = newFaces

	if len(c.verts) < 4 || len(c.faces) < 4 {
		c.verts = c.verts[:0]
		c.faces = c.faces[:0]
		return out, false
	}
	return out, true
}

// volumeCentroid returns the signed volume and the absolute centroid
// of the cell, computed from tetrahedron fans anchored at the first
// vertex.
func (c *cell) volumeCentroid() (float64, v3.Vec) {
	if len(c.verts) == 0 || len(c.faces) == 0 {
		return 0, v3.Vec{}
	}
	ref := c.verts[0]
	var vol float64
	var acc v3.Vec
	for _, f := range c.faces {
		a := c.verts[f[0]].Sub(ref)
		for j := 1; j+1 < len(f); j++ {
			b := c.verts[f[j]].Sub(ref)
			cc := c.verts[f[j+1]].Sub(ref)
			v := a.Dot(b.Cross(cc)) / 6
			vol += v
			acc = acc.Add(a.Add(b).Add(cc).MulScalar(v / 4))
		}
	}
	if vol == 0 {
		return 0, ref
	}
	return vol, ref.Add(acc.DivScalar(vol))
}

// newBoxCell returns the axis-aligned box spanning lo..hi with
// outward-wound faces ordered x-min, x-max, y-min, y-max, z-min,
// z-max.
func newBoxCell(lo, hi v3.Vec) cell {
	verts := []v3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, // 0
		{X: hi.X, Y: lo.Y, Z: lo.Z}, // 1
		{X: hi.X, Y: hi.Y, Z: lo.Z}, // 2
		{X: lo.X, Y: hi.Y, Z: lo.Z}, // 3
		{X: lo.X, Y: lo.Y, Z: hi.Z}, // 4
		{X: hi.X, Y: lo.Y, Z: hi.Z}, // 5
		{X: hi.X, Y: hi.Y, Z: hi.Z}, // 6
		{X: lo.X, Y: hi.Y, Z: hi.Z}, // 7
	}
	faces := [][]int{
		{0, 4, 7, 3}, // x-min
		{1, 2, 6, 5}, // x-max
		{0, 1, 5, 4}, // y-min
		{2, 3, 7, 6}, // y-max
		{0, 3, 2, 1}, // z-min
		{4, 5, 6, 7}, // z-max
	}
	return cell{verts: verts, faces: faces}
}
