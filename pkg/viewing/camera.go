package viewing

import (
	"math"

	"github.com/chazu/surfkit/pkg/vecmath"
)

const (
	// DragDegreesPerPixel converts mouse motion to camera rotation.
	DragDegreesPerPixel = 0.5

	MinDistance = 0.02
	MaxDistance = 100

	// DefaultDistance frames the unit-sized base meshes and patches.
	DefaultDistance = 5
)

// OrbitCamera looks at the origin from Distance units away, rotated by
// Pitch about x and Yaw about y (degrees).
type OrbitCamera struct {
	Pitch    float64
	Yaw      float64
	Distance float64
}

// NewOrbitCamera returns a camera at DefaultDistance looking down -z.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{Distance: DefaultDistance}
}

// View returns the world-to-eye transform
// translate(0,0,-Distance)·rotX(Pitch)·rotY(Yaw).
func (c *OrbitCamera) View() vecmath.Mat4 {
	return vecmath.Translate(0, 0, -c.Distance).
		Mul(vecmath.MustRotate(c.Pitch, 1, 0, 0)).
		Mul(vecmath.MustRotate(c.Yaw, 0, 1, 0))
}

// Placement returns the eye-to-world transform, the inverse of View, for
// use as the camera argument of Chain.
func (c *OrbitCamera) Placement() vecmath.Mat4 {
	return vecmath.MustRotate(-c.Yaw, 0, 1, 0).
		Mul(vecmath.MustRotate(-c.Pitch, 1, 0, 0)).
		Mul(vecmath.Translate(0, 0, c.Distance))
}

// Drag rotates the camera by a mouse motion in pixels. Pitch is clamped to
// [-90, 90]; yaw is unbounded.
func (c *OrbitCamera) Drag(dx, dy float64) {
	c.Pitch = math.Min(math.Max(c.Pitch+dy*DragDegreesPerPixel, -90), 90)
	c.Yaw += dx * DragDegreesPerPixel
}

// Zoom scales the distance by 2^(-0.01·dy), clamped to
// [MinDistance, MaxDistance].
func (c *OrbitCamera) Zoom(dy float64) {
	d := c.Distance * math.Pow(2, -0.01*dy)
	c.Distance = math.Min(math.Max(d, MinDistance), MaxDistance)
}
