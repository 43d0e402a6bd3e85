// Package viewing composes the model, view, projection and viewport
// transforms and projects meshes to screen-space line segments.
package viewing

import (
	"fmt"

	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// Chain returns viewport·projection·inverse(camera)·model. camera places
// the camera in the world, so its inverse maps world to eye space.
func Chain(viewport, projection, camera, model vecmath.Mat4) (vecmath.Mat4, error) {
	view, err := camera.Inverse()
	if err != nil {
		return vecmath.Mat4{}, fmt.Errorf("viewing: camera transform: %w", err)
	}
	return viewport.Mul(projection).Mul(view).Mul(model), nil
}

// Project maps p through m and performs the perspective divide. ok is
// false when the point lies on or behind the eye plane (w <= 0).
func Project(m vecmath.Mat4, p vecmath.Vec3) (vecmath.Vec2, bool) {
	h := m.MulVec4(p.Vec4(1))
	if h[3] <= 0 {
		return vecmath.Vec2{}, false
	}
	return vecmath.V2(h[0]/h[3], h[1]/h[3]), true
}

// Segment is a projected line in screen space.
type Segment struct {
	A, B vecmath.Vec2
}

// Wireframe projects every edge of positions through m. Edges with an
// endpoint behind the eye are dropped.
func Wireframe(m vecmath.Mat4, positions []vecmath.Vec3, edges [][2]int) ([]Segment, error) {
	segs := make([]Segment, 0, len(edges))
	for i, e := range edges {
		for _, idx := range e {
			if idx < 0 || idx >= len(positions) {
				return nil, fmt.Errorf("viewing: %w: edge %d references vertex %d (have %d)",
					kernel.ErrInvalidMesh, i, idx, len(positions))
			}
		}
		a, okA := Project(m, positions[e[0]])
		b, okB := Project(m, positions[e[1]])
		if !okA || !okB {
			continue
		}
		segs = append(segs, Segment{A: a, B: b})
	}
	return segs, nil
}

// MeshEdges returns the distinct edges of m for wireframe drawing.
func MeshEdges(m *kernel.Mesh) [][2]int {
	return m.Edges()
}

// MeshWireframe validates m and projects its edges through m.
func MeshWireframe(chain vecmath.Mat4, m *kernel.Mesh) ([]Segment, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("viewing: %w", err)
	}
	return Wireframe(chain, m.Vertices, MeshEdges(m))
}
