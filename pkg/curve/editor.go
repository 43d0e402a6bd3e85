package curve

import (
	"errors"
	"fmt"

	"github.com/chazu/surfkit/pkg/vecmath"
)

// ErrInvalidHandle is returned when a handle does not refer to a point.
var ErrInvalidHandle = errors.New("curve: invalid handle")

// DefaultPickRadius is the distance in pixels within which Pick selects a
// control point.
const DefaultPickRadius = 6

// Handle refers to a control point by its position in a ControlPolygon.
// Removing a point shifts the handles of the points after it.
type Handle int

// ControlPolygon is the editable control-point sequence of one curve. The
// zero value is an empty polygon ready to use. It is not safe for
// concurrent mutation; evaluation works on the copy returned by Points.
type ControlPolygon struct {
	points []vecmath.Vec2
}

// NewControlPolygon returns a polygon holding a copy of points.
func NewControlPolygon(points ...vecmath.Vec2) *ControlPolygon {
	return &ControlPolygon{points: append([]vecmath.Vec2(nil), points...)}
}

// Len returns the number of control points.
func (c *ControlPolygon) Len() int {
	return len(c.points)
}

// Add appends p and returns its handle.
func (c *ControlPolygon) Add(p vecmath.Vec2) Handle {
	c.points = append(c.points, p)
	return Handle(len(c.points) - 1)
}

// Point returns the position of h.
func (c *ControlPolygon) Point(h Handle) (vecmath.Vec2, error) {
	if err := c.check(h); err != nil {
		return vecmath.Vec2{}, err
	}
	return c.points[h], nil
}

// Move repositions the point referred to by h.
func (c *ControlPolygon) Move(h Handle, p vecmath.Vec2) error {
	if err := c.check(h); err != nil {
		return err
	}
	c.points[h] = p
	return nil
}

// Remove deletes the point referred to by h.
func (c *ControlPolygon) Remove(h Handle) error {
	if err := c.check(h); err != nil {
		return err
	}
	c.points = append(c.points[:h], c.points[h+1:]...)
	return nil
}

// Pick returns the first point within radius of p, in insertion order.
func (c *ControlPolygon) Pick(p vecmath.Vec2, radius float64) (Handle, bool) {
	for i, q := range c.points {
		if q.Distance(p) <= radius {
			return Handle(i), true
		}
	}
	return -1, false
}

// PickOrAdd selects the point under p, or appends p when there is none.
// It mirrors a mouse press in a curve editor.
func (c *ControlPolygon) PickOrAdd(p vecmath.Vec2, radius float64) Handle {
	if h, ok := c.Pick(p, radius); ok {
		return h
	}
	return c.Add(p)
}

// Points returns a copy of the control points.
func (c *ControlPolygon) Points() []vecmath.Vec2 {
	return append([]vecmath.Vec2(nil), c.points...)
}

func (c *ControlPolygon) check(h Handle) error {
	if h < 0 || int(h) >= len(c.points) {
		return fmt.Errorf("%w: %d (have %d points)", ErrInvalidHandle, h, len(c.points))
	}
	return nil
}
