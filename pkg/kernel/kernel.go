// Package kernel defines the abstract computational-geometry engine
// interface for Voronoi cell construction. Implementations (halfspace)
// provide the site container and cell-cutting machinery behind this
// interface. The kernel abstraction allows swapping engines without
// changing the rest of the system.
package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Site is one registered generator point. IDs are caller-assigned and
// act as the unique key; re-inserting an id overwrites its position.
type Site struct {
	ID  int
	Pos v3.Vec
}

// Polytope is the operation a cell representation must expose so that
// boundary clipping can be written once, independent of whether the
// representation tracks per-face neighbors.
//
// Clip cuts the polytope with the half-space n.x <= d, labelling any
// newly created face with marker. It reports whether the polytope is
// still non-empty afterwards.
type Polytope interface {
	Clip(n v3.Vec, d float64, marker int) bool
}

// Boundary is the wall capability consumed during cell construction.
// Built-in geometric walls and host-supplied custom walls both satisfy
// it and participate uniformly in clipping.
type Boundary interface {
	// PointInside reports whether p lies on the kept side of the wall.
	PointInside(p v3.Vec) bool

	// CutCell clips c against the wall for the cell of the site at
	// pos. It reports whether the cell survived non-empty. Walls that
	// do not intersect the cell leave it untouched and report true.
	CutCell(c Polytope, pos v3.Vec) bool
}

// Kernel is the abstract engine interface. A kernel instance holds the
// site container and the registered boundaries for one context; it is
// single-threaded and exclusively owned by that context.
type Kernel interface {
	// Put inserts a site, overwriting the position of an existing site
	// with the same id.
	Put(id int, pos v3.Vec)

	// AddWall registers a boundary. Walls apply during cell
	// construction in registration order.
	AddWall(w Boundary)

	// Sites returns all registered sites in traversal order.
	Sites() []Site

	// Total returns the number of registered sites.
	Total() int

	// ComputeCell constructs the Voronoi cell of s with per-face
	// neighbor tracking. It reports false when no cell exists, for
	// example when s lies outside a registered wall.
	ComputeCell(s Site) (*RawCell, bool)

	// ComputeCentroid constructs the cell of s without neighbor
	// tracking and returns its centroid relative to the site position.
	ComputeCentroid(s Site) (v3.Vec, bool)

	// Clear drops all sites and all registered walls.
	Clear()
}
