// Package patch tessellates bicubic Bézier patches into quad meshes.
package patch

import (
	"errors"
	"fmt"

	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/vecmath"
)

var (
	// ErrInvalidResolution is returned for a tessellation resolution < 1.
	ErrInvalidResolution = errors.New("patch: resolution must be at least 1")

	// ErrInvalidCage is returned for control cages with bad indices.
	ErrInvalidCage = errors.New("patch: invalid control cage")
)

// Patch is a 4x4 grid of control points. Patch[i] is the i-th control
// curve, evaluated along u; the four resulting points are blended along v.
type Patch [4][4]vecmath.Vec3

// bernstein returns the cubic Bernstein weights at t.
func bernstein(t float64) [4]float64 {
	s := 1 - t
	return [4]float64{s * s * s, 3 * s * s * t, 3 * s * t * t, t * t * t}
}

func blend(p [4]vecmath.Vec3, w [4]float64) vecmath.Vec3 {
	return p[0].Mul(w[0]).Add(p[1].Mul(w[1])).Add(p[2].Mul(w[2])).Add(p[3].Mul(w[3]))
}

// Eval returns the surface point at (u, v): each control row is reduced
// along u, then the four intermediate points are blended along v.
func (p *Patch) Eval(u, v float64) vecmath.Vec3 {
	wu := bernstein(u)
	var rows [4]vecmath.Vec3
	for i := range p {
		rows[i] = blend(p[i], wu)
	}
	return blend(rows, bernstein(v))
}

// Tessellate samples p on a (resolution+1)² grid, vertex i*(resolution+1)+j
// at u = i/resolution and v = j/resolution, and emits resolution² quads
// (i,j), (i,j+1), (i+1,j+1), (i+1,j).
func Tessellate(p *Patch, resolution int) (*kernel.Mesh, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}
	r := resolution
	n := r + 1

	m := &kernel.Mesh{
		Vertices: make([]vecmath.Vec3, 0, n*n),
		Faces:    make([][]int, 0, r*r),
	}
	for i := 0; i <= r; i++ {
		u := float64(i) / float64(r)
		for j := 0; j <= r; j++ {
			m.Vertices = append(m.Vertices, p.Eval(u, float64(j)/float64(r)))
		}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			m.Faces = append(m.Faces, []int{
				i*n + j,
				i*n + j + 1,
				(i+1)*n + j + 1,
				(i+1)*n + j,
			})
		}
	}
	return m, nil
}
