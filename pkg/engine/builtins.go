package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/surfkit/pkg/curve"
	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/patch"
	"github.com/chazu/surfkit/pkg/scene"
	"github.com/chazu/surfkit/pkg/shapes"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a vecmath.Vec3.
type sexpVec3 struct {
	vec vecmath.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpPoint wraps a 2D curve control point.
type sexpPoint struct {
	vec vecmath.Vec2
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %g %g)", p.vec.X, p.vec.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpMesh wraps a base polygon mesh returned by the shape builtins.
type sexpMesh struct {
	mesh *kernel.Mesh
	kind string
}

func (m *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %dv %df)", m.kind, m.mesh.VertexCount(), m.mesh.FaceCount())
}
func (m *sexpMesh) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a kernel solid. It is meshed when handed to `mesh`.
type sexpSolid struct {
	solid kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	lo, hi := s.solid.BoundingBox()
	return fmt.Sprintf("(solid %.3gx%.3gx%.3g)", hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpCage wraps a Bézier control cage.
type sexpCage struct {
	cage *patch.ControlCage
}

func (c *sexpCage) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(cage %d patches)", len(c.cage.Patches))
}
func (c *sexpCage) Type() *zygo.RegisteredType { return nil }

// sexpSpline wraps a curve basis with its tension and sampling.
type sexpSpline struct {
	spline curve.Spline
}

func (s *sexpSpline) SexpString(ps *zygo.PrintState) string {
	if s.spline.Basis == curve.BSpline {
		return fmt.Sprintf("(bspline :samples %d)", s.spline.Samples)
	}
	return fmt.Sprintf("(catmull-rom :tension %g :samples %d)", s.spline.Tension, s.spline.Samples)
}
func (s *sexpSpline) Type() *zygo.RegisteredType { return nil }

// sexpPlaced pairs a mesh, solid or cage with a model transform. Placing
// an already placed value composes the transforms.
type sexpPlaced struct {
	shape     zygo.Sexp
	transform vecmath.Mat4
}

func (p *sexpPlaced) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(place %s)", p.shape.SexpString(ps))
}
func (p *sexpPlaced) Type() *zygo.RegisteredType { return nil }

// sexpItemRef refers to an item added to the scene.
type sexpItemRef struct {
	id   scene.ItemID
	kind scene.ItemKind
	name string
}

func (r *sexpItemRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", r.kind, r.name)
}
func (r *sexpItemRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
// A keyword always consumes the next argument; one at the very end is a
// flag and maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// floatArg reads the keyword name as a number, leaving *dst untouched when
// the keyword is absent.
func (a kwArgs) floatArg(fn, name string, dst *float64) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	*dst = f
	return nil
}

// intArg reads the keyword name as an integer.
func (a kwArgs) intArg(fn, name string, dst *int) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	*dst = n
	return nil
}

// boolArg reads the keyword name as a flag. A bare keyword means true.
func (a kwArgs) boolArg(fn, name string, dst *bool) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	*dst = b
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer. Floats are accepted when they are whole.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean. SexpNull, produced by a bare keyword flag,
// counts as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected boolean, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_bspline) and plain strings.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (vecmath.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vecmath.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toPoints flattens pt values and lists of pt values into one slice.
func toPoints(args []zygo.Sexp) ([]vecmath.Vec2, error) {
	var pts []vecmath.Vec2
	for _, a := range args {
		if p, ok := a.(*sexpPoint); ok {
			pts = append(pts, p.vec)
			continue
		}
		items, err := sexpListToSlice(a)
		if err != nil {
			return nil, fmt.Errorf("expected pt or list of pt, got %T (%s)", a, a.SexpString(nil))
		}
		inner, err := toPoints(items)
		if err != nil {
			return nil, err
		}
		pts = append(pts, inner...)
	}
	return pts, nil
}

// toSolid extracts a kernel solid from a sexpSolid.
func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// unplace strips any placement and returns the inner value and its model
// transform (the identity for unplaced values).
func unplace(s zygo.Sexp) (zygo.Sexp, vecmath.Mat4) {
	if p, ok := s.(*sexpPlaced); ok {
		return p.shape, p.transform
	}
	return s, vecmath.Identity()
}

// toMesh resolves a mesh or solid argument to a fresh polygon mesh plus its
// placement. Solids are meshed with k.
func toMesh(k kernel.Kernel, s zygo.Sexp) (*kernel.Mesh, vecmath.Mat4, error) {
	inner, t := unplace(s)
	switch v := inner.(type) {
	case *sexpMesh:
		return v.mesh.Clone(), t, nil
	case *sexpSolid:
		m, err := k.ToMesh(v.solid)
		if err != nil {
			return nil, t, err
		}
		return m, t, nil
	}
	return nil, t, fmt.Errorf("expected mesh or solid, got %T (%s)", s, s.SexpString(nil))
}

// toCage resolves a cage argument and its placement.
func toCage(s zygo.Sexp) (*patch.ControlCage, vecmath.Mat4, error) {
	inner, t := unplace(s)
	if c, ok := inner.(*sexpCage); ok {
		return c.cage, t, nil
	}
	return nil, t, fmt.Errorf("expected cage, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// mergeCages concatenates cages, moving each one's vertices by its
// placement and offsetting its patch indices.
func mergeCages(args []zygo.Sexp) (*patch.ControlCage, error) {
	out := &patch.ControlCage{}
	for i, a := range args {
		c, t, err := toCage(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		base := len(out.Vertices)
		for _, v := range c.Vertices {
			out.Vertices = append(out.Vertices, t.TransformPoint(v))
		}
		for _, idx := range c.Patches {
			for k := range idx {
				idx[k] += base
			}
			out.Patches = append(out.Patches, idx)
		}
	}
	return out, nil
}

// itemName validates the leading name argument of the item builtins.
func itemName(fn string, args []zygo.Sexp) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%s requires a name argument", fn)
	}
	name, err := toString(args[0])
	if err != nil {
		return "", fmt.Errorf("%s: name: %w", fn, err)
	}
	if name == "" {
		return "", fmt.Errorf("%s: name must not be empty", fn)
	}
	return name, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into a zygomys environment.
// The item builtins (mesh, surface, curve) add to s during evaluation;
// solids are built and meshed with k.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names match the underscore names registered here.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene, k kernel.Kernel) {
	registerValues(env)
	registerShapes(env)
	registerSolids(env, k)
	registerSurfaces(env)
	registerCurves(env, s)
	registerItems(env, s, k)
}

func registerValues(env *zygo.Zlisp) {
	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: vecmath.V3(c[0], c[1], c[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (pt 100 250)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: y: %w", err)
		}
		return &sexpPoint{vec: vecmath.V2(x, y)}, nil
	})

	// -----------------------------------------------------------------------
	// (place shape :at (vec3 0 1 0) :rotate 45 :axis (vec3 0 1 0) :scale 2)
	//
	// Applies scale, then rotation, then translation. :scale takes a number
	// or a vec3; :axis defaults to y.
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires exactly one shape argument, got %d", len(pa.positional))
		}
		inner, prior := unplace(pa.positional[0])
		switch inner.(type) {
		case *sexpMesh, *sexpSolid, *sexpCage:
		default:
			return zygo.SexpNull, fmt.Errorf("place: expected mesh, solid or cage, got %T (%s)",
				inner, inner.SexpString(nil))
		}

		t := vecmath.Identity()
		if v, ok := pa.kw["scale"]; ok {
			if f, err := toFloat64(v); err == nil {
				t = vecmath.Scale(f, f, f)
			} else if vec, err := toVec3(v); err == nil {
				t = vecmath.Scale(vec.X, vec.Y, vec.Z)
			} else {
				return zygo.SexpNull, fmt.Errorf("place: scale: expected number or vec3, got %s", v.SexpString(nil))
			}
		}
		if v, ok := pa.kw["rotate"]; ok {
			angle, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			axis := vecmath.V3(0, 1, 0)
			if av, ok := pa.kw["axis"]; ok {
				if axis, err = toVec3(av); err != nil {
					return zygo.SexpNull, fmt.Errorf("place: axis: %w", err)
				}
			}
			r, err := vecmath.Rotate(angle, axis.X, axis.Y, axis.Z)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: %w", err)
			}
			t = r.Mul(t)
		}
		if v, ok := pa.kw["at"]; ok {
			at, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			t = vecmath.Translate(at.X, at.Y, at.Z).Mul(t)
		}

		return &sexpPlaced{shape: inner, transform: t.Mul(prior)}, nil
	})
}

func registerShapes(env *zygo.Zlisp) {
	// -----------------------------------------------------------------------
	// (cube) (octahedron) (icosahedron) (arrowhead)
	// -----------------------------------------------------------------------
	for _, shape := range []string{"cube", "octahedron", "icosahedron", "arrowhead"} {
		env.AddFunction(shape, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 0 {
				return zygo.SexpNull, fmt.Errorf("%s takes no arguments, got %d", shape, len(args))
			}
			m, err := shapes.ByName(shape)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", shape, err)
			}
			return &sexpMesh{mesh: m, kind: shape}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (torus :rings 8 :sides 4 :radius 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("torus", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		rings, sides, radius := 8, 4, 0.5
		if err := pa.intArg("torus", "rings", &rings); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.intArg("torus", "sides", &sides); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.floatArg("torus", "radius", &radius); err != nil {
			return zygo.SexpNull, err
		}
		m, err := shapes.Torus(rings, sides, radius)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("torus: %w", err)
		}
		return &sexpMesh{mesh: m, kind: "torus"}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :slices 4 :stacks 3)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		slices, stacks := 4, 3
		if err := pa.intArg("sphere", "slices", &slices); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.intArg("sphere", "stacks", &stacks); err != nil {
			return zygo.SexpNull, err
		}
		m, err := shapes.Sphere(slices, stacks)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpMesh{mesh: m, kind: "sphere"}, nil
	})
}

func registerSolids(env *zygo.Zlisp, k kernel.Kernel) {
	// numbers reads exactly n positional numbers.
	numbers := func(fn string, args []zygo.Sexp, n int) ([]float64, error) {
		if len(args) != n {
			return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, n, len(args))
		}
		out := make([]float64, n)
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
			}
			out[i] = f
		}
		return out, nil
	}

	// -----------------------------------------------------------------------
	// (solid-box 2 1 1) (solid-sphere 1) (solid-cylinder 2 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("solid_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d, err := numbers("solid-box", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := k.Box(d[0], d[1], d[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid-box: %w", err)
		}
		return &sexpSolid{solid: s}, nil
	})
	env.AddFunction("solid_sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d, err := numbers("solid-sphere", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := k.Sphere(d[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid-sphere: %w", err)
		}
		return &sexpSolid{solid: s}, nil
	})
	env.AddFunction("solid_cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d, err := numbers("solid-cylinder", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := k.Cylinder(d[0], d[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid-cylinder: %w", err)
		}
		return &sexpSolid{solid: s}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...) (difference a b ...) (intersection a b ...)
	// -----------------------------------------------------------------------
	booleans := map[string]func(a, b kernel.Solid) kernel.Solid{
		"union":        k.Union,
		"difference":   k.Difference,
		"intersection": k.Intersection,
	}
	for op, combine := range booleans {
		env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 solids, got %d", op, len(args))
			}
			acc, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: argument 1: %w", op, err)
			}
			for i, a := range args[1:] {
				s, err := toSolid(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", op, i+2, err)
				}
				acc = combine(acc, s)
			}
			return &sexpSolid{solid: acc}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (move solid (vec3 1 0 0)) (turn solid (vec3 0 45 0))
	//
	// Transform the solid itself, before meshing. turn takes Euler angles
	// in degrees.
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("move requires a solid and a vec3, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		return &sexpSolid{solid: k.Translate(s, v.X, v.Y, v.Z)}, nil
	})
	env.AddFunction("turn", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("turn requires a solid and a vec3, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("turn: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("turn: %w", err)
		}
		return &sexpSolid{solid: k.Rotate(s, v.X, v.Y, v.Z)}, nil
	})
}

func registerSurfaces(env *zygo.Zlisp) {
	// -----------------------------------------------------------------------
	// (debug-patch)
	// -----------------------------------------------------------------------
	env.AddFunction("debug_patch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("debug-patch takes no arguments, got %d", len(args))
		}
		return &sexpCage{cage: patch.DebugCage()}, nil
	})

	// -----------------------------------------------------------------------
	// (patch v00 v01 ... v33) or (patch (list v00 ... v33))
	//
	// Sixteen vec3 control points in row-major order.
	// -----------------------------------------------------------------------
	env.AddFunction("patch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 1 {
			items, err := sexpListToSlice(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("patch: %w", err)
			}
			args = items
		}
		if len(args) != 16 {
			return zygo.SexpNull, fmt.Errorf("patch requires 16 control points, got %d", len(args))
		}
		c := &patch.ControlCage{Vertices: make([]vecmath.Vec3, 16)}
		var idx [16]int
		for i, a := range args {
			v, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("patch: point %d: %w", i, err)
			}
			c.Vertices[i] = v
			idx[i] = i
		}
		c.Patches = [][16]int{idx}
		return &sexpCage{cage: c}, nil
	})

	// -----------------------------------------------------------------------
	// (cage (patch ...) (place (debug-patch) :at ...) ...)
	//
	// Merges patches into one cage. Placements are baked into the vertices.
	// -----------------------------------------------------------------------
	env.AddFunction("cage", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("cage requires at least one patch")
		}
		c, err := mergeCages(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cage: %w", err)
		}
		return &sexpCage{cage: c}, nil
	})
}

func registerCurves(env *zygo.Zlisp, s *scene.Scene) {
	// -----------------------------------------------------------------------
	// (catmull-rom :tension 0.5 :samples 16) (bspline :samples 16)
	// -----------------------------------------------------------------------
	env.AddFunction("catmull_rom", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sp := curve.Spline{Basis: curve.CatmullRom, Tension: s.Defaults.Tension, Samples: s.Defaults.Samples}
		if err := pa.floatArg("catmull-rom", "tension", &sp.Tension); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.intArg("catmull-rom", "samples", &sp.Samples); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSpline{spline: sp}, nil
	})
	env.AddFunction("bspline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sp := curve.Spline{Basis: curve.BSpline, Samples: s.Defaults.Samples}
		if err := pa.intArg("bspline", "samples", &sp.Samples); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSpline{spline: sp}, nil
	})
}

func registerItems(env *zygo.Zlisp, s *scene.Scene, k kernel.Kernel) {
	add := func(kind scene.ItemKind, name string, t vecmath.Mat4, data scene.ItemData) zygo.Sexp {
		id := scene.NewItemID(name)
		s.Add(&scene.Item{ID: id, Kind: kind, Name: name, Transform: t, Data: data})
		return &sexpItemRef{id: id, kind: kind, name: name}
	}

	// -----------------------------------------------------------------------
	// (defaults :tension 0.5 :samples 16 :resolution 8 :tangent-length 50
	//           :max-levels 5)
	//
	// Affects items and splines created after it.
	// -----------------------------------------------------------------------
	env.AddFunction("defaults", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := s.Defaults
		if err := pa.floatArg("defaults", "tension", &d.Tension); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.intArg("defaults", "samples", &d.Samples); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.intArg("defaults", "resolution", &d.Resolution); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.floatArg("defaults", "tangent-length", &d.TangentLength); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.intArg("defaults", "max-levels", &d.MaxLevels); err != nil {
			return zygo.SexpNull, err
		}
		s.Defaults = d
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (mesh "name" shape :levels 2)
	// -----------------------------------------------------------------------
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		label, err := itemName("mesh", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args[1:])
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("mesh: expected one shape, got %d", len(pa.positional))
		}
		m, t, err := toMesh(k, pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
		}
		m.Name = label

		levels := 0
		if err := pa.intArg("mesh", "levels", &levels); err != nil {
			return zygo.SexpNull, err
		}
		return add(scene.ItemMesh, label, t, scene.MeshData{Mesh: m, Levels: levels}), nil
	})

	// -----------------------------------------------------------------------
	// (surface "name" cage :resolution 8 :show-cage true)
	// -----------------------------------------------------------------------
	env.AddFunction("surface", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		label, err := itemName("surface", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args[1:])
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("surface: expected one cage, got %d", len(pa.positional))
		}
		c, t, err := toCage(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: %w", err)
		}

		d := scene.CageData{Cage: c, Resolution: s.Defaults.Resolution}
		if err := pa.intArg("surface", "resolution", &d.Resolution); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.boolArg("surface", "show-cage", &d.ShowCage); err != nil {
			return zygo.SexpNull, err
		}
		return add(scene.ItemCage, label, t, d), nil
	})

	// -----------------------------------------------------------------------
	// (curve "name" (pt 0 0) (pt 50 80) ... :spline (bspline)
	//        :tension 0.3 :samples 24 :tangents true :tangent-length 40)
	//
	// Points may also be given as lists. :tension and :samples override the
	// spline's own settings.
	// -----------------------------------------------------------------------
	env.AddFunction("curve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		label, err := itemName("curve", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args[1:])
		pts, err := toPoints(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("curve: %w", err)
		}

		d := scene.CurveData{
			Points: pts,
			Spline: curve.Spline{
				Basis:   curve.CatmullRom,
				Tension: s.Defaults.Tension,
				Samples: s.Defaults.Samples,
			},
			TangentLength: s.Defaults.TangentLength,
		}
		if v, ok := pa.kw["spline"]; ok {
			sp, ok := v.(*sexpSpline)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("curve: spline: expected catmull-rom or bspline, got %s", v.SexpString(nil))
			}
			d.Spline = sp.spline
		}
		if v, ok := pa.kw["basis"]; ok {
			b, err := toKeywordString(v)
			if err == nil {
				d.Spline.Basis, err = curve.ParseBasis(b)
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("curve: basis: %w", err)
			}
		}
		if err := pa.floatArg("curve", "tension", &d.Spline.Tension); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.intArg("curve", "samples", &d.Spline.Samples); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.boolArg("curve", "tangents", &d.ShowTangents); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.floatArg("curve", "tangent-length", &d.TangentLength); err != nil {
			return zygo.SexpNull, err
		}
		return add(scene.ItemCurve, label, vecmath.Identity(), d), nil
	})
}
