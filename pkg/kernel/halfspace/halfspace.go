// Package halfspace implements the kernel.Kernel engine interface by
// direct half-space clipping: every cell starts as the bounding box
// and is cut by the registered walls and by the bisector plane of
// every other site (and periodic image), nearest first.
package halfspace

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voro3/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Container)(nil)

// coincidentEps2 is the squared distance below which two sites are
// treated as coincident and no bisector plane is generated.
const coincidentEps2 = 1e-24

// Container is the half-space clipping engine. It owns the site store
// and the registered boundaries for one context and is not safe for
// concurrent use.
type Container struct {
	min, max v3.Vec
	periodic [3]bool
	sites    []kernel.Site
	index    map[int]int // site id -> position in sites
	walls    []kernel.Boundary
}

// New returns a container for the box min..max with per-axis
// periodicity. Box bounds are not validated; inverted bounds produce
// inverted cells.
func New(min, max v3.Vec, periodicX, periodicY, periodicZ bool) *Container {
	return &Container{
		min:      min,
		max:      max,
		periodic: [3]bool{periodicX, periodicY, periodicZ},
		index:    make(map[int]int),
	}
}

// Put inserts a site, overwriting the position of an existing site
// with the same id. Traversal order is first-insertion order.
func (c *Container) Put(id int, pos v3.Vec) {
	if i, ok := c.index[id]; ok {
		c.sites[i].Pos = pos
		return
	}
	c.index[id] = len(c.sites)
	c.sites = append(c.sites, kernel.Site{ID: id, Pos: pos})
}

// AddWall registers a boundary.
func (c *Container) AddWall(w kernel.Boundary) {
	c.walls = append(c.walls, w)
}

// Sites returns the registered sites in traversal order.
func (c *Container) Sites() []kernel.Site {
	out := make([]kernel.Site, len(c.sites))
	copy(out, c.sites)
	return out
}

// Total returns the number of registered sites.
func (c *Container) Total() int {
	return len(c.sites)
}

// Clear drops all sites and all registered walls.
func (c *Container) Clear() {
	c.sites = nil
	c.index = make(map[int]int)
	c.walls = nil
}

// span returns the box edge lengths.
func (c *Container) span() v3.Vec {
	return c.max.Sub(c.min)
}

// baseCell returns the starting polytope for the cell of the site at
// pos. Non-periodic axes are bounded by the box; periodic axes start
// one full period wide, and the site's own periodic images trim them
// back to half a period during bisector clipping.
func (c *Container) baseCell(pos v3.Vec, selfID int) nbrCell {
	sp := c.span()
	lo := c.min
	hi := c.max
	markers := []int{
		kernel.MarkerXMin, kernel.MarkerXMax,
		kernel.MarkerYMin, kernel.MarkerYMax,
		kernel.MarkerZMin, kernel.MarkerZMax,
	}
	if c.periodic[0] {
		lo.X, hi.X = pos.X-sp.X, pos.X+sp.X
		markers[0], markers[1] = selfID, selfID
	}
	if c.periodic[1] {
		lo.Y, hi.Y = pos.Y-sp.Y, pos.Y+sp.Y
		markers[2], markers[3] = selfID, selfID
	}
	if c.periodic[2] {
		lo.Z, hi.Z = pos.Z-sp.Z, pos.Z+sp.Z
		markers[4], markers[5] = selfID, selfID
	}
	return nbrCell{cell: newBoxCell(lo, hi), markers: markers}
}

// bisector is one candidate clipping plane derived from a neighboring
// site or periodic image.
type bisector struct {
	n     v3.Vec // plane normal, pointing at the neighbor
	d     float64
	id    int
	dist2 float64
}

// bisectors collects the clipping planes for the cell of s against
// every other site and every periodic image, sorted nearest first.
func (c *Container) bisectors(s kernel.Site) []bisector {
	sp := c.span()
	offsets := [3][]float64{{0}, {0}, {0}}
	spans := [3]float64{sp.X, sp.Y, sp.Z}
	for a := 0; a < 3; a++ {
		if c.periodic[a] {
			offsets[a] = []float64{-spans[a], 0, spans[a]}
		}
	}

	var planes []bisector
	for _, t := range c.sites {
		for _, ox := range offsets[0] {
			for _, oy := range offsets[1] {
				for _, oz := range offsets[2] {
					if t.ID == s.ID && ox == 0 && oy == 0 && oz == 0 {
						continue
					}
					p := t.Pos.Add(v3.Vec{X: ox, Y: oy, Z: oz})
					diff := p.Sub(s.Pos)
					d2 := diff.Length2()
					if d2 < coincidentEps2 {
						continue
					}
					planes = append(planes, bisector{
						n:     diff,
						d:     diff.Dot(s.Pos) + d2/2,
						id:    t.ID,
						dist2: d2,
					})
				}
			}
		}
	}
	sort.Slice(planes, func(i, j int) bool { return planes[i].dist2 < planes[j].dist2 })
	return planes
}

// construct builds the clipped cell of s in the given representation.
// It reports false when no cell exists: the site violates a wall's
// containment predicate or the cell is annihilated during clipping.
func (c *Container) construct(s kernel.Site, poly kernel.Polytope) bool {
	for _, w := range c.walls {
		if !w.PointInside(s.Pos) {
			return false
		}
		if !w.CutCell(poly, s.Pos) {
			return false
		}
	}
	for _, b := range c.bisectors(s) {
		if !poly.Clip(b.n, b.d, b.id) {
			return false
		}
	}
	return true
}

// ComputeCell constructs the cell of s with per-face neighbor
// tracking and exports it as a raw cell.
func (c *Container) ComputeCell(s kernel.Site) (*kernel.RawCell, bool) {
	nc := c.baseCell(s.Pos, s.ID)
	if !c.construct(s, &nc) {
		return nil, false
	}

	vol, centroid := nc.volumeCentroid()
	raw := &kernel.RawCell{
		Volume:    vol,
		Vertices:  make([]float64, 0, len(nc.verts)*3),
		Neighbors: append([]int(nil), nc.markers...),
		Centroid:  centroid.Sub(s.Pos),
	}
	for _, v := range nc.verts {
		rel := v.Sub(s.Pos)
		raw.Vertices = append(raw.Vertices, rel.X, rel.Y, rel.Z)
	}
	for _, f := range nc.faces {
		raw.FaceData = append(raw.FaceData, len(f))
		raw.FaceData = append(raw.FaceData, f...)
	}
	return raw, true
}

// ComputeCentroid constructs the cell of s without neighbor tracking
// and returns its centroid relative to the site position.
func (c *Container) ComputeCentroid(s kernel.Site) (v3.Vec, bool) {
	pc := c.baseCell(s.Pos, s.ID).cell
	if !c.construct(s, &pc) {
		return v3.Vec{}, false
	}
	_, centroid := pc.volumeCentroid()
	return centroid.Sub(s.Pos), true
}
