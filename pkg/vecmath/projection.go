package vecmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFrustum is returned for degenerate projection parameters.
var ErrInvalidFrustum = errors.New("vecmath: invalid frustum")

// Viewport maps normalized device coordinates in [-1,1]x[-1,1] to pixel
// coordinates spanning [0,width]x[0,height]. z and w pass through.
func Viewport(width, height float64) Mat4 {
	return Mat4{
		width / 2, 0, 0, (width - 1) / 2,
		0, height / 2, 0, (height - 1) / 2,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Frustum returns the off-axis perspective projection for the view volume
// bounded by left, right, bottom, top on the near plane. The camera looks
// down -z, so eye-space z = -near maps to NDC z = -1 and z = -far to +1,
// and the resulting w is -z.
//
// near and far are distances and must be positive and distinct.
func Frustum(left, right, bottom, top, near, far float64) (Mat4, error) {
	switch {
	case near <= 0 || far <= 0:
		return Mat4{}, fmt.Errorf("%w: near=%g far=%g must be positive", ErrInvalidFrustum, near, far)
	case near == far:
		return Mat4{}, fmt.Errorf("%w: near and far are both %g", ErrInvalidFrustum, near)
	case left == right || bottom == top:
		return Mat4{}, fmt.Errorf("%w: zero-width volume", ErrInvalidFrustum)
	}

	return Mat4{
		2 * near / (right - left), 0, (right + left) / (right - left), 0,
		0, 2 * near / (top - bottom), (top + bottom) / (top - bottom), 0,
		0, 0, -(far + near) / (far - near), -2 * far * near / (far - near),
		0, 0, -1, 0,
	}, nil
}

// Perspective returns a symmetric frustum for a vertical field of view in
// degrees and an aspect ratio (width / height).
func Perspective(fov, aspect, near, far float64) (Mat4, error) {
	if fov <= 0 || fov >= 180 {
		return Mat4{}, fmt.Errorf("%w: fov %g out of range (0, 180)", ErrInvalidFrustum, fov)
	}
	if aspect <= 0 {
		return Mat4{}, fmt.Errorf("%w: aspect %g must be positive", ErrInvalidFrustum, aspect)
	}
	y := math.Tan(fov*math.Pi/360) * near
	x := y * aspect
	return Frustum(-x, x, -y, y, near, far)
}
