// Package wall implements boundary constraints for Voronoi cell
// construction. A wall is a tagged variant over the built-in geometric
// kinds (plane, sphere, cylinder, cone) plus a custom kind that
// forwards to host-supplied callbacks. Every kind is dispatched
// through the same capability pair: a containment predicate and a
// cell-clipping operation.
package wall

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voro3/pkg/kernel"
)

// DefaultID is the reserved wall id used when the caller does not
// assign one. Faces produced by such a wall carry this value in the
// cell's neighbor buffer.
const DefaultID = -99

// axisEps is the radial distance below which a curved wall has no
// well-defined tangent plane and the cut is skipped.
const axisEps = 1e-12

// Kind enumerates the wall variants.
type Kind int

const (
	KindPlane Kind = iota
	KindSphere
	KindCylinder
	KindCone
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	case KindCone:
		return "cone"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Compile-time capability check.
var _ kernel.Boundary = (*Wall)(nil)

// Wall is one boundary constraint. The zero value is not usable;
// construct walls with the New* functions. Once registered with a
// context the wall is owned by that context's boundary set.
type Wall struct {
	kind Kind
	id   int

	normal v3.Vec  // plane: unit normal
	disp   float64 // plane: displacement along normal

	center v3.Vec  // sphere center, cylinder base point, cone apex
	axis   v3.Vec  // cylinder/cone: unit axis direction
	radius float64 // sphere/cylinder radius
	angle  float64 // cone: half-opening angle, radians

	hooks Hooks // custom: host callbacks
}

// NewPlane returns a plane wall keeping the half-space
// normal.x <= displacement.
func NewPlane(normal v3.Vec, displacement float64, id int) *Wall {
	n := normal.Normalize()
	return &Wall{
		kind:   KindPlane,
		id:     id,
		normal: n,
		disp:   displacement / normal.Length(),
	}
}

// NewSphere returns a spherical wall keeping the interior of the
// sphere at center with the given radius.
func NewSphere(center v3.Vec, radius float64, id int) *Wall {
	return &Wall{kind: KindSphere, id: id, center: center, radius: radius}
}

// NewCylinder returns a cylindrical wall keeping points within radius
// of the infinite axis through base along dir.
func NewCylinder(base, dir v3.Vec, radius float64, id int) *Wall {
	return &Wall{
		kind:   KindCylinder,
		id:     id,
		center: base,
		axis:   dir.Normalize(),
		radius: radius,
	}
}

// NewCone returns a conical wall keeping the interior of the cone with
// the given apex, opening along dir, with half-angle in radians.
func NewCone(apex, dir v3.Vec, halfAngle float64, id int) *Wall {
	return &Wall{
		kind:   KindCone,
		id:     id,
		center: apex,
		axis:   dir.Normalize(),
		angle:  halfAngle,
	}
}

// NewCustom returns a wall backed by host-supplied callbacks.
func NewCustom(h Hooks, id int) *Wall {
	return &Wall{kind: KindCustom, id: id, hooks: h}
}

// ID returns the wall id recorded on faces this wall produces.
func (w *Wall) ID() int { return w.id }

// Kind returns the wall variant.
func (w *Wall) Kind() Kind { return w.kind }

// PointInside reports whether p lies on the kept side of the wall.
func (w *Wall) PointInside(p v3.Vec) bool {
	switch w.kind {
	case KindPlane:
		return p.Dot(w.normal) < w.disp
	case KindSphere:
		return p.Sub(w.center).Length2() < w.radius*w.radius
	case KindCylinder:
		q := p.Sub(w.center)
		radial := q.Sub(w.axis.MulScalar(q.Dot(w.axis)))
		return radial.Length2() < w.radius*w.radius
	case KindCone:
		q := p.Sub(w.center)
		axial := q.Dot(w.axis)
		if axial <= 0 {
			return false
		}
		radial := q.Sub(w.axis.MulScalar(axial))
		limit := axial * math.Tan(w.angle)
		return radial.Length2() < limit*limit
	case KindCustom:
		if w.hooks.Inside == nil {
			return true
		}
		return w.hooks.Inside(p.X, p.Y, p.Z)
	}
	return false
}

// CutCell clips c against the wall for the cell of the site at pos.
// Curved walls cut with the plane tangent to the surface nearest the
// site. It reports whether the cell survived non-empty; a wall that
// indicates no cut leaves the cell untouched and reports true.
func (w *Wall) CutCell(c kernel.Polytope, pos v3.Vec) bool {
	if w.kind == KindCustom {
		if w.hooks.Cut == nil {
			return true
		}
		p, ok := w.hooks.Cut(pos.X, pos.Y, pos.Z)
		if !ok {
			return true
		}
		return c.Clip(v3.Vec{X: p.Nx, Y: p.Ny, Z: p.Nz}, p.D, w.id)
	}

	n, d, ok := w.cutPlane(pos)
	if !ok {
		return true
	}
	return c.Clip(n, d, w.id)
}

// cutPlane derives the clipping half-space n.x <= d for the cell of
// the site at pos. ok is false when the wall cannot produce a
// well-defined plane for this site (site on a curved wall's axis).
func (w *Wall) cutPlane(pos v3.Vec) (n v3.Vec, d float64, ok bool) {
	switch w.kind {
	case KindPlane:
		return w.normal, w.disp, true

	case KindSphere:
		dv := pos.Sub(w.center)
		r := dv.Length()
		if r < axisEps {
			return v3.Vec{}, 0, false
		}
		n = dv.DivScalar(r)
		return n, n.Dot(w.center) + w.radius, true

	case KindCylinder:
		q := pos.Sub(w.center)
		radial := q.Sub(w.axis.MulScalar(q.Dot(w.axis)))
		rn := radial.Length()
		if rn < axisEps {
			return v3.Vec{}, 0, false
		}
		n = radial.DivScalar(rn)
		return n, n.Dot(pos) + w.radius - rn, true

	case KindCone:
		q := pos.Sub(w.center)
		axial := q.Dot(w.axis)
		radial := q.Sub(w.axis.MulScalar(axial))
		rn := radial.Length()
		if rn < axisEps {
			return v3.Vec{}, 0, false
		}
		rhat := radial.DivScalar(rn)
		sin, cos := math.Sincos(w.angle)
		// Every tangent plane of a cone contains the apex, so the
		// displacement reduces to n.apex.
		n = rhat.MulScalar(cos).Sub(w.axis.MulScalar(sin))
		return n, n.Dot(w.center), true
	}
	return v3.Vec{}, 0, false
}
