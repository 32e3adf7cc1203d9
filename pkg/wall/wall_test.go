package wall_test

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voro3/pkg/kernel"
	"github.com/chazu/voro3/pkg/wall"
)

// recordingPolytope captures Clip calls so tests can inspect the
// half-space a wall derived.
type recordingPolytope struct {
	clips []struct {
		n      v3.Vec
		d      float64
		marker int
	}
	survive bool
}

func (r *recordingPolytope) Clip(n v3.Vec, d float64, marker int) bool {
	r.clips = append(r.clips, struct {
		n      v3.Vec
		d      float64
		marker int
	}{n, d, marker})
	return r.survive
}

var _ kernel.Polytope = (*recordingPolytope)(nil)

func TestPlaneContainment(t *testing.T) {
	w := wall.NewPlane(v3.Vec{X: 2}, 10, wall.DefaultID) // x < 5 after normalization

	if !w.PointInside(v3.Vec{X: 4}) {
		t.Fatal("x=4 should be inside")
	}
	if w.PointInside(v3.Vec{X: 6}) {
		t.Fatal("x=6 should be outside")
	}
}

func TestPlaneCut(t *testing.T) {
	w := wall.NewPlane(v3.Vec{X: 2}, 10, -7)
	p := &recordingPolytope{survive: true}

	if !w.CutCell(p, v3.Vec{X: 1}) {
		t.Fatal("cell should survive")
	}
	if len(p.clips) != 1 {
		t.Fatalf("got %d clips, want 1", len(p.clips))
	}
	c := p.clips[0]
	if !c.n.Equals(v3.Vec{X: 1}, 1e-12) || math.Abs(c.d-5) > 1e-12 {
		t.Fatalf("clip plane n=%+v d=%g, want unit x-normal with d=5", c.n, c.d)
	}
	if c.marker != -7 {
		t.Fatalf("marker = %d, want -7", c.marker)
	}
}

func TestSphereContainmentAndCut(t *testing.T) {
	center := v3.Vec{X: 5, Y: 5, Z: 5}
	w := wall.NewSphere(center, 3, wall.DefaultID)

	if !w.PointInside(v3.Vec{X: 6, Y: 5, Z: 5}) {
		t.Fatal("interior point should be inside")
	}
	if w.PointInside(v3.Vec{X: 9, Y: 5, Z: 5}) {
		t.Fatal("exterior point should be outside")
	}

	// Tangent plane for a site one unit off center along +x.
	p := &recordingPolytope{survive: true}
	if !w.CutCell(p, v3.Vec{X: 6, Y: 5, Z: 5}) {
		t.Fatal("cell should survive")
	}
	c := p.clips[0]
	if !c.n.Equals(v3.Vec{X: 1}, 1e-12) {
		t.Fatalf("normal = %+v, want +x", c.n)
	}
	if math.Abs(c.d-8) > 1e-12 { // n.center + radius = 5 + 3
		t.Fatalf("d = %g, want 8", c.d)
	}
}

func TestSphereCenterSiteSkipsCut(t *testing.T) {
	center := v3.Vec{X: 5, Y: 5, Z: 5}
	w := wall.NewSphere(center, 3, wall.DefaultID)

	p := &recordingPolytope{survive: false}
	if !w.CutCell(p, center) {
		t.Fatal("a skipped cut must report survival")
	}
	if len(p.clips) != 0 {
		t.Fatalf("got %d clips, want none", len(p.clips))
	}
}

func TestCylinderCut(t *testing.T) {
	w := wall.NewCylinder(v3.Vec{}, v3.Vec{Z: 3}, 2, wall.DefaultID)

	if !w.PointInside(v3.Vec{X: 1, Z: 7}) {
		t.Fatal("radial distance 1 should be inside")
	}
	if w.PointInside(v3.Vec{X: 3, Z: 7}) {
		t.Fatal("radial distance 3 should be outside")
	}

	p := &recordingPolytope{survive: true}
	if !w.CutCell(p, v3.Vec{X: 1, Z: 7}) {
		t.Fatal("cell should survive")
	}
	c := p.clips[0]
	if !c.n.Equals(v3.Vec{X: 1}, 1e-12) {
		t.Fatalf("normal = %+v, want +x", c.n)
	}
	if math.Abs(c.d-2) > 1e-12 { // tangent plane at radius 2
		t.Fatalf("d = %g, want 2", c.d)
	}
}

func TestConeContainmentAndCut(t *testing.T) {
	apex := v3.Vec{X: 1, Y: 1, Z: 1}
	w := wall.NewCone(apex, v3.Vec{Z: 1}, math.Pi/4, wall.DefaultID)

	if !w.PointInside(apex.Add(v3.Vec{X: 1, Z: 2})) {
		t.Fatal("point within the 45-degree cone should be inside")
	}
	if w.PointInside(apex.Add(v3.Vec{X: 3, Z: 2})) {
		t.Fatal("point past the surface should be outside")
	}
	if w.PointInside(apex.Add(v3.Vec{Z: -1})) {
		t.Fatal("point behind the apex should be outside")
	}

	p := &recordingPolytope{survive: true}
	if !w.CutCell(p, apex.Add(v3.Vec{X: 1, Z: 2})) {
		t.Fatal("cell should survive")
	}
	c := p.clips[0]
	s := math.Sqrt2 / 2
	if !c.n.Equals(v3.Vec{X: s, Z: -s}, 1e-12) {
		t.Fatalf("normal = %+v, want (%g,0,%g)", c.n, s, -s)
	}
	// Every tangent plane of a cone passes through the apex.
	if math.Abs(c.d-c.n.Dot(apex)) > 1e-12 {
		t.Fatalf("d = %g, want plane through apex (%g)", c.d, c.n.Dot(apex))
	}
}

func TestCustomWallForwardsHooks(t *testing.T) {
	var insideArgs, cutArgs v3.Vec
	w := wall.NewCustom(wall.Hooks{
		Inside: func(x, y, z float64) bool {
			insideArgs = v3.Vec{X: x, Y: y, Z: z}
			return x < 5
		},
		Cut: func(x, y, z float64) (wall.Plane, bool) {
			cutArgs = v3.Vec{X: x, Y: y, Z: z}
			return wall.Plane{Nx: 1, D: 5}, true
		},
	}, -12)

	if !w.PointInside(v3.Vec{X: 2, Y: 3, Z: 4}) {
		t.Fatal("hook said inside")
	}
	if !insideArgs.Equals(v3.Vec{X: 2, Y: 3, Z: 4}, 0) {
		t.Fatalf("Inside called with %+v", insideArgs)
	}

	p := &recordingPolytope{survive: true}
	if !w.CutCell(p, v3.Vec{X: 2, Y: 3, Z: 4}) {
		t.Fatal("cell should survive")
	}
	if !cutArgs.Equals(v3.Vec{X: 2, Y: 3, Z: 4}, 0) {
		t.Fatalf("Cut called with %+v", cutArgs)
	}
	c := p.clips[0]
	if c.n.X != 1 || c.d != 5 || c.marker != -12 {
		t.Fatalf("clip = %+v", c)
	}
}

func TestCustomWallNoCutIsNoOp(t *testing.T) {
	w := wall.NewCustom(wall.Hooks{
		Cut: func(x, y, z float64) (wall.Plane, bool) {
			return wall.Plane{}, false
		},
	}, wall.DefaultID)

	p := &recordingPolytope{survive: false}
	if !w.CutCell(p, v3.Vec{}) {
		t.Fatal("no cut indicated: cell must be reported alive")
	}
	if len(p.clips) != 0 {
		t.Fatal("no cut indicated: polytope must be untouched")
	}
	// Nil hooks never exclude and never cut.
	if !w.PointInside(v3.Vec{X: 100}) {
		t.Fatal("nil Inside hook should contain every point")
	}
}

func TestCustomWallPropagatesAnnihilation(t *testing.T) {
	w := wall.NewCustom(wall.Hooks{
		Cut: func(x, y, z float64) (wall.Plane, bool) {
			return wall.Plane{Nz: 1, D: -1}, true
		},
	}, wall.DefaultID)

	p := &recordingPolytope{survive: false}
	if w.CutCell(p, v3.Vec{}) {
		t.Fatal("annihilation must propagate")
	}
}

func TestKindString(t *testing.T) {
	kinds := map[wall.Kind]string{
		wall.KindPlane:    "plane",
		wall.KindSphere:   "sphere",
		wall.KindCylinder: "cylinder",
		wall.KindCone:     "cone",
		wall.KindCustom:   "custom",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
	if wall.NewSphere(v3.Vec{}, 1, wall.DefaultID).Kind() != wall.KindSphere {
		t.Fatal("sphere constructor kind mismatch")
	}
	if wall.NewSphere(v3.Vec{}, 1, wall.DefaultID).ID() != wall.DefaultID {
		t.Fatal("default id not applied")
	}
}
