package patch

import (
	"fmt"

	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// ControlCage is a shared vertex list plus patches given as 16 indices in
// row-major order (row m, column n at m*4+n).
type ControlCage struct {
	Vertices []vecmath.Vec3
	Patches  [][16]int
}

// Validate checks every patch index against the vertex list.
func (c *ControlCage) Validate() error {
	if len(c.Patches) == 0 {
		return fmt.Errorf("%w: no patches", ErrInvalidCage)
	}
	for i, idx := range c.Patches {
		for k, v := range idx {
			if v < 0 || v >= len(c.Vertices) {
				return fmt.Errorf("%w: patch %d corner %d references vertex %d (have %d)",
					ErrInvalidCage, i, k, v, len(c.Vertices))
			}
		}
	}
	return nil
}

// Patch returns a copy of the control points of patch i.
func (c *ControlCage) Patch(i int) (*Patch, error) {
	if i < 0 || i >= len(c.Patches) {
		return nil, fmt.Errorf("%w: patch %d out of range (have %d)", ErrInvalidCage, i, len(c.Patches))
	}
	var p Patch
	for k, v := range c.Patches[i] {
		if v < 0 || v >= len(c.Vertices) {
			return nil, fmt.Errorf("%w: patch %d corner %d references vertex %d (have %d)",
				ErrInvalidCage, i, k, v, len(c.Vertices))
		}
		p[k/4][k%4] = c.Vertices[v]
	}
	return &p, nil
}

// TessellateCage tessellates every patch of c and concatenates the
// results. Patches do not share vertices in the output.
func TessellateCage(c *ControlCage, resolution int) (*kernel.Mesh, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := &kernel.Mesh{}
	for i := range c.Patches {
		p, err := c.Patch(i)
		if err != nil {
			return nil, err
		}
		m, err := Tessellate(p, resolution)
		if err != nil {
			return nil, err
		}
		out = out.Append(m)
	}
	return out, nil
}

// WireCage returns the control net of c as a quad mesh: 16 vertices and
// 3x3 quads per patch.
func WireCage(c *ControlCage) (*kernel.Mesh, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := &kernel.Mesh{
		Vertices: make([]vecmath.Vec3, 0, 16*len(c.Patches)),
		Faces:    make([][]int, 0, 9*len(c.Patches)),
	}
	for _, idx := range c.Patches {
		base := len(out.Vertices)
		for m := 0; m < 3; m++ {
			for n := 0; n < 3; n++ {
				out.Faces = append(out.Faces, []int{
					base + m*4 + n,
					base + m*4 + n + 1,
					base + (m+1)*4 + n + 1,
					base + (m+1)*4 + n,
				})
			}
		}
		for _, v := range idx {
			out.Vertices = append(out.Vertices, c.Vertices[v])
		}
	}
	return out, nil
}

// DebugCage returns a single arched patch over [-1.5,1.5]², tilted by 25
// degrees about x after a 45 degree turn about y.
func DebugCage() *ControlCage {
	t := vecmath.MustRotate(25, 1, 0, 0).Mul(vecmath.MustRotate(45, 0, 1, 0))
	coords := [4]float64{-1.5, -0.5, 0.5, 1.5}
	height := [4]float64{0, 1, 1, 0}

	c := &ControlCage{Vertices: make([]vecmath.Vec3, 0, 16)}
	var idx [16]int
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			idx[i*4+j] = len(c.Vertices)
			c.Vertices = append(c.Vertices, t.TransformPoint(vecmath.V3(coords[i], height[i]*height[j], coords[j])))
		}
	}
	c.Patches = [][16]int{idx}
	return c
}
