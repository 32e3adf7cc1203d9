package script

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/voro3/pkg/voronoi"
	"github.com/chazu/voro3/pkg/wall"
)

// scene accumulates the declarations a script makes; build turns it
// into a context once evaluation finishes.
type scene struct {
	hasBox   bool
	min, max voronoi.Point3
	periodic voronoi.Periodic
	apply    []func(*voronoi.Context3D) error
}

func (s *scene) build() *voronoi.Context3D {
	ctx := voronoi.New(s.min, s.max, s.periodic)
	for _, f := range s.apply {
		// Declaration errors surface during evaluation; by the time
		// build runs every step is known good.
		_ = f(ctx)
	}
	return ctx
}

// sexpVec3 wraps a point so it can be passed between builtins.
type sexpVec3 struct {
	p voronoi.Point3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.p.X, v.p.Y, v.p.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// toVec3 extracts a point from a sexpVec3.
func toVec3(s zygo.Sexp) (voronoi.Point3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.p, nil
	}
	return voronoi.Point3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// kwVec3 reads an optional vec3 keyword argument into dst.
func kwVec3(pa kwArgs, name string, dst *voronoi.Point3) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	p, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = p
	return nil
}

// kwFloat reads an optional numeric keyword argument into dst.
func kwFloat(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// kwWallID reads the optional :id keyword, defaulting to the wall
// sentinel.
func kwWallID(pa kwArgs) (int, error) {
	v, ok := pa.kw["id"]
	if !ok {
		return wall.DefaultID, nil
	}
	id, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("id: %w", err)
	}
	return id, nil
}

// floatList converts a Lisp list argument to a float slice.
func floatList(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		f, err := toFloat64(it)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// registerBuiltins installs the scene DSL into a zygomys environment.
// The builtins record declarations on sc during evaluation. Source
// must be preprocessed with preprocessSource first so :keyword tokens
// arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var p voronoi.Point3
		for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: arg %d: %w", i, err)
			}
			*dst = f
		}
		return &sexpVec3{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (box :min (vec3 0 0 0) :max (vec3 10 10 10) :periodic (list :x :z))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := kwVec3(pa, "min", &sc.min); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		if err := kwVec3(pa, "max", &sc.max); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		if v, ok := pa.kw["periodic"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: periodic: %w", err)
			}
			for _, it := range items {
				axis, err := toKeywordString(it)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("box: periodic: %w", err)
				}
				switch axis {
				case "x":
					sc.periodic.X = true
				case "y":
					sc.periodic.Y = true
				case "z":
					sc.periodic.Z = true
				default:
					return zygo.SexpNull, fmt.Errorf("box: periodic: invalid axis %q", axis)
				}
			}
		}
		sc.hasBox = true
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (site 0 1.0 2.0 3.0)
	// -----------------------------------------------------------------------
	env.AddFunction("site", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("site requires id x y z, got %d arguments", len(args))
		}
		id, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("site: id: %w", err)
		}
		var p voronoi.Point3
		for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
			f, err := toFloat64(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("site: coordinate %d: %w", i, err)
			}
			*dst = f
		}
		sc.apply = append(sc.apply, func(ctx *voronoi.Context3D) error {
			ctx.AddPoint(id, p)
			return nil
		})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (sites (list 0 1 2) (list x...) (list y...) (list z...))
	// -----------------------------------------------------------------------
	env.AddFunction("sites", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("sites requires ids xs ys zs lists, got %d arguments", len(args))
		}
		idItems, err := sexpListToSlice(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sites: ids: %w", err)
		}
		ids := make([]int, 0, len(idItems))
		for _, it := range idItems {
			id, err := toInt(it)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sites: ids: %w", err)
			}
			ids = append(ids, id)
		}
		coords := make([][]float64, 3)
		for i := 0; i < 3; i++ {
			fs, err := floatList(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sites: coordinate list %d: %w", i, err)
			}
			coords[i] = fs
		}
		// Validate here so length mismatches surface as script errors
		// with a line number instead of a silent no-op at build time.
		probe := voronoi.New(voronoi.Point3{}, voronoi.Point3{X: 1, Y: 1, Z: 1}, voronoi.Periodic{})
		if err := probe.AddPoints(ids, coords[0], coords[1], coords[2]); err != nil {
			return zygo.SexpNull, fmt.Errorf("sites: %w", err)
		}
		sc.apply = append(sc.apply, func(ctx *voronoi.Context3D) error {
			return ctx.AddPoints(ids, coords[0], coords[1], coords[2])
		})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (wall-plane :normal (vec3 0 0 1) :offset 5 :id -7)
	// -----------------------------------------------------------------------
	env.AddFunction("wall_plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var normal voronoi.Point3
		var offset float64
		if err := kwVec3(pa, "normal", &normal); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-plane: %w", err)
		}
		if err := kwFloat(pa, "offset", &offset); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-plane: %w", err)
		}
		id, err := kwWallID(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-plane: %w", err)
		}
		sc.apply = append(sc.apply, func(ctx *voronoi.Context3D) error {
			ctx.AddWallPlane(normal, offset, id)
			return nil
		})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (wall-sphere :center (vec3 5 5 5) :radius 4 :id -8)
	// -----------------------------------------------------------------------
	env.AddFunction("wall_sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var center voronoi.Point3
		var radius float64
		if err := kwVec3(pa, "center", &center); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-sphere: %w", err)
		}
		if err := kwFloat(pa, "radius", &radius); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-sphere: %w", err)
		}
		id, err := kwWallID(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-sphere: %w", err)
		}
		sc.apply = append(sc.apply, func(ctx *voronoi.Context3D) error {
			ctx.AddWallSphere(center, radius, id)
			return nil
		})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (wall-cylinder :base (vec3 5 5 0) :axis (vec3 0 0 1) :radius 4)
	// -----------------------------------------------------------------------
	env.AddFunction("wall_cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var base, axis voronoi.Point3
		var radius float64
		if err := kwVec3(pa, "base", &base); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cylinder: %w", err)
		}
		if err := kwVec3(pa, "axis", &axis); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cylinder: %w", err)
		}
		if err := kwFloat(pa, "radius", &radius); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cylinder: %w", err)
		}
		id, err := kwWallID(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cylinder: %w", err)
		}
		sc.apply = append(sc.apply, func(ctx *voronoi.Context3D) error {
			ctx.AddWallCylinder(base, axis, radius, id)
			return nil
		})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (wall-cone :apex (vec3 5 5 0) :axis (vec3 0 0 1) :angle 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("wall_cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var apex, axis voronoi.Point3
		var angle float64
		if err := kwVec3(pa, "apex", &apex); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cone: %w", err)
		}
		if err := kwVec3(pa, "axis", &axis); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cone: %w", err)
		}
		if err := kwFloat(pa, "angle", &angle); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cone: %w", err)
		}
		id, err := kwWallID(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wall-cone: %w", err)
		}
		sc.apply = append(sc.apply, func(ctx *voronoi.Context3D) error {
			ctx.AddWallCone(apex, axis, angle, id)
			return nil
		})
		return zygo.SexpNull, nil
	})
}
