package voronoi

import (
	"errors"
	"fmt"

	"github.com/chazu/voro3/pkg/kernel"
	"github.com/chazu/voro3/pkg/kernel/halfspace"
	"github.com/chazu/voro3/pkg/wall"
)

// ErrLengthMismatch is returned by AddPoints when the parallel input
// slices disagree in length.
var ErrLengthMismatch = errors.New("mismatched slice lengths")

// Context3D holds the sites and boundary walls of one tessellation
// and answers cell queries. It owns its engine instance and the
// registered walls exclusively; it is single-threaded, and concurrent
// use from multiple goroutines must be serialized by the caller.
type Context3D struct {
	engine kernel.Kernel
	walls  []*wall.Wall
}

// New returns a context for the box min..max with per-axis
// periodicity, backed by the half-space clipping engine. Box bounds
// are passed to the engine unvalidated.
func New(min, max Point3, periodic Periodic) *Context3D {
	return NewWithKernel(halfspace.New(min.vec(), max.vec(), periodic.X, periodic.Y, periodic.Z))
}

// NewWithKernel returns a context backed by the given engine. The
// context takes exclusive ownership of the engine.
func NewWithKernel(k kernel.Kernel) *Context3D {
	return &Context3D{engine: k}
}

// AddPoint inserts a site, overwriting the position of an existing
// site with the same id.
func (c *Context3D) AddPoint(id int, p Point3) {
	c.engine.Put(id, p.vec())
}

// AddPoints bulk-inserts sites from parallel slices. All four slices
// must have equal length; on mismatch an error wrapping
// ErrLengthMismatch is returned and no site is inserted (lengths are
// checked before the first insert).
func (c *Context3D) AddPoints(ids []int, xs, ys, zs []float64) error {
	if len(ids) != len(xs) || len(ids) != len(ys) || len(ids) != len(zs) {
		return fmt.Errorf("addPoints: ids=%d xs=%d ys=%d zs=%d: %w",
			len(ids), len(xs), len(ys), len(zs), ErrLengthMismatch)
	}
	for i, id := range ids {
		c.engine.Put(id, Point3{X: xs[i], Y: ys[i], Z: zs[i]}.vec())
	}
	return nil
}

// optionalID resolves the variadic wall id of the AddWall methods,
// defaulting to the reserved sentinel.
func optionalID(ids []int) int {
	if len(ids) > 0 {
		return ids[0]
	}
	return wall.DefaultID
}

// register transfers ownership of a wall to the context and the
// engine. Walls apply during cell construction in registration order.
func (c *Context3D) register(w *wall.Wall) {
	c.walls = append(c.walls, w)
	c.engine.AddWall(w)
}

// AddWallPlane registers a plane wall keeping normal.x <= displacement.
// The optional wallID labels faces the wall produces; it defaults to
// wall.DefaultID.
func (c *Context3D) AddWallPlane(normal Point3, displacement float64, wallID ...int) {
	c.register(wall.NewPlane(normal.vec(), displacement, optionalID(wallID)))
}

// AddWallSphere registers a spherical wall keeping the sphere interior.
func (c *Context3D) AddWallSphere(center Point3, radius float64, wallID ...int) {
	c.register(wall.NewSphere(center.vec(), radius, optionalID(wallID)))
}

// AddWallCylinder registers a cylindrical wall keeping points within
// radius of the axis through base along dir.
func (c *Context3D) AddWallCylinder(base, dir Point3, radius float64, wallID ...int) {
	c.register(wall.NewCylinder(base.vec(), dir.vec(), radius, optionalID(wallID)))
}

// AddWallCone registers a conical wall with the given apex, opening
// along dir, with half-angle in radians.
func (c *Context3D) AddWallCone(apex, dir Point3, halfAngle float64, wallID ...int) {
	c.register(wall.NewCone(apex.vec(), dir.vec(), halfAngle, optionalID(wallID)))
}

// AddWallCustom registers a wall backed by host-supplied callbacks.
// The callbacks are invoked synchronously during cell construction
// and must not call back into this context.
func (c *Context3D) AddWallCustom(h wall.Hooks, wallID ...int) {
	c.register(wall.NewCustom(h, optionalID(wallID)))
}

// WallCount returns the number of registered walls.
func (c *Context3D) WallCount() int {
	return len(c.walls)
}

// Cell computes the cell of the site with the given id. The site list
// is scanned linearly; there is no secondary id index. An unknown id
// returns an empty record (test with IsEmpty), not an error, and so
// does a site whose cell the engine cannot produce.
func (c *Context3D) Cell(id int) Cell {
	for _, s := range c.engine.Sites() {
		if s.ID != id {
			continue
		}
		raw, ok := c.engine.ComputeCell(s)
		if !ok {
			return Cell{}
		}
		return serializeCell(raw, s.ID, fromVec(s.Pos))
	}
	return Cell{}
}

// AllCells computes every site's cell in one traversal. Result order
// is the engine's traversal order, not insertion order of any one
// call. Sites the engine skips are omitted. An empty store yields an
// empty slice.
func (c *Context3D) AllCells() []Cell {
	cells := make([]Cell, 0, c.engine.Total())
	for _, s := range c.engine.Sites() {
		raw, ok := c.engine.ComputeCell(s)
		if !ok {
			continue
		}
		cells = append(cells, serializeCell(raw, s.ID, fromVec(s.Pos)))
	}
	return cells
}

// Relax performs one Lloyd-relaxation step: it returns the absolute
// centroid of every site's cell, suitable as the next generation of
// site positions.
//
// The result is indexed by site id and sized by the site count, so
// ids must form a dense 0..N-1 range; an id outside that range makes
// the indexing panic. Sites whose cell the engine cannot produce keep
// the zero value at their index.
func (c *Context3D) Relax() []Point3 {
	out := make([]Point3, c.engine.Total())
	for _, s := range c.engine.Sites() {
		centroid, ok := c.engine.ComputeCentroid(s)
		if !ok {
			continue
		}
		out[s.ID] = fromVec(s.Pos.Add(centroid))
	}
	return out
}

// Clear discards all sites and releases every registered wall. The
// context remains usable afterwards.
func (c *Context3D) Clear() {
	c.engine.Clear()
	c.walls = nil
}
