package curve

import "github.com/chazu/surfkit/pkg/vecmath"

// DefaultTangentLength is the display length of tangent handles in pixels.
const DefaultTangentLength = 50

// Tangent is a displayable tangent handle starting at a control point.
type Tangent struct {
	Index  int // control point the handle belongs to
	Origin vecmath.Vec2
	End    vecmath.Vec2
}

// EstimateTangent returns the central-difference tangent (next-before)/2 at
// the point between before and next.
func EstimateTangent(before, _, next vecmath.Vec2) vecmath.Vec2 {
	return next.Sub(before).Mul(0.5)
}

// Tangents returns a handle of the given length for every interior control
// point. The first and last points have no tangent. When the neighbours
// coincide the tangent is undefined and the handle has zero length.
func Tangents(points []vecmath.Vec2, length float64) []Tangent {
	if len(points) < 3 {
		return nil
	}
	out := make([]Tangent, 0, len(points)-2)
	for i := 1; i < len(points)-1; i++ {
		on := points[i]
		dir := EstimateTangent(points[i-1], on, points[i+1]).Normalize()
		out = append(out, Tangent{
			Index:  i,
			Origin: on,
			End:    on.Add(dir.Mul(length)),
		})
	}
	return out
}
