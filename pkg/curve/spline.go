// Package curve evaluates interpolating cardinal (Catmull-Rom) splines and
// their uniform cubic B-spline counterpart over an ordered list of 2D control
// points, and provides the index-based editing state a curve editor needs.
//
// A segment is only defined for the interior of the control sequence: the
// segment between points i-1 and i uses points i-2 and i+1 as look-behind
// and look-ahead, so the first and last points never start a visible
// segment and a curve needs at least four points.
package curve

import (
	"fmt"

	"github.com/chazu/surfkit/pkg/vecmath"
)

const (
	// DefaultTension gives the classic Catmull-Rom spline.
	DefaultTension = 0.5

	// DefaultSamples is the number of parameter steps per interval.
	DefaultSamples = 16

	// MinPoints is the number of control points needed for one segment.
	MinPoints = 4
)

// Basis selects the blending functions used for each segment.
type Basis int

const (
	// CatmullRom is the cardinal spline; the curve passes through every
	// interior control point.
	CatmullRom Basis = iota

	// BSpline is the uniform cubic B-spline. It approximates the control
	// points instead of interpolating them and is C2 across joints.
	BSpline
)

func (b Basis) String() string {
	switch b {
	case CatmullRom:
		return "catmull-rom"
	case BSpline:
		return "bspline"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// ParseBasis returns the Basis named by s.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "catmull-rom", "catmull_rom", "cardinal":
		return CatmullRom, nil
	case "bspline", "b-spline":
		return BSpline, nil
	}
	return 0, fmt.Errorf("curve: unknown basis %q", s)
}

// EvaluateSegment evaluates the cardinal spline on the interval from on to
// next at parameter t in [0,1]. before and twoAhead shape the end tangents,
// which are scaled by tension. t=0 yields on and t=1 yields next.
func EvaluateSegment(before, on, next, twoAhead vecmath.Vec2, tension, t float64) vecmath.Vec2 {
	s := tension
	t2 := t * t
	t3 := t2 * t

	wb := -s*t + 2*s*t2 - s*t3
	won := 1 + (s-3)*t2 + (2-s)*t3
	wn := s*t + (3-2*s)*t2 + (s-2)*t3
	wa := -s*t2 + s*t3

	return before.Mul(wb).Add(on.Mul(won)).Add(next.Mul(wn)).Add(twoAhead.Mul(wa))
}

// EvaluateBSplineSegment evaluates the uniform cubic B-spline over the four
// control points at parameter t in [0,1].
func EvaluateBSplineSegment(p0, p1, p2, p3 vecmath.Vec2, t float64) vecmath.Vec2 {
	t2 := t * t
	t3 := t2 * t
	u := 1 - t

	b0 := u * u * u / 6
	b1 := (3*t3 - 6*t2 + 4) / 6
	b2 := (-3*t3 + 3*t2 + 3*t + 1) / 6
	b3 := t3 / 6

	return p0.Mul(b0).Add(p1.Mul(b1)).Add(p2.Mul(b2)).Add(p3.Mul(b3))
}

// Spline holds the per-curve configuration. It is read-only during
// evaluation, so a single value may be shared between goroutines.
type Spline struct {
	Basis   Basis
	Tension float64 // ignored by BSpline
	Samples int     // parameter steps per interval
}

// DefaultSpline returns a Catmull-Rom spline with tension 0.5 and 16 samples
// per interval.
func DefaultSpline() Spline {
	return Spline{Basis: CatmullRom, Tension: DefaultTension, Samples: DefaultSamples}
}

func (s Spline) samples() int {
	if s.Samples < 1 {
		return DefaultSamples
	}
	return s.Samples
}

// point evaluates the window starting at points[i-2].
func (s Spline) point(points []vecmath.Vec2, i int, t float64) vecmath.Vec2 {
	p0, p1, p2, p3 := points[i-2], points[i-1], points[i], points[i+1]
	if s.Basis == BSpline {
		return EvaluateBSplineSegment(p0, p1, p2, p3, t)
	}
	return EvaluateSegment(p0, p1, p2, p3, s.Tension, t)
}

// Segments samples every interior window (i-2, i-1, i, i+1) for i in
// 2..len(points)-2. Each segment holds Samples+1 points at t = j/Samples.
// Fewer than four control points yield nil.
func (s Spline) Segments(points []vecmath.Vec2) [][]vecmath.Vec2 {
	if len(points) < MinPoints {
		return nil
	}
	n := s.samples()
	segs := make([][]vecmath.Vec2, 0, len(points)-3)
	for i := 2; i < len(points)-1; i++ {
		seg := make([]vecmath.Vec2, n+1)
		for j := 0; j <= n; j++ {
			seg[j] = s.point(points, i, float64(j)/float64(n))
		}
		segs = append(segs, seg)
	}
	return segs
}

// Evaluate returns the curve as one polyline. Joints shared by consecutive
// segments appear once. Fewer than four control points yield an empty
// result.
func (s Spline) Evaluate(points []vecmath.Vec2) []vecmath.Vec2 {
	segs := s.Segments(points)
	if len(segs) == 0 {
		return nil
	}
	out := make([]vecmath.Vec2, 0, len(segs)*s.samples()+1)
	for i, seg := range segs {
		if i > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out
}
