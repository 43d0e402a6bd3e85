// Package shapes builds the base polyhedra fed to subdivision: closed,
// shared-vertex meshes with faces wound counter-clockwise seen from
// outside.
package shapes

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// ErrInvalidParameter is returned for out-of-range shape parameters.
var ErrInvalidParameter = errors.New("shapes: invalid parameter")

// Cube returns the cube spanning [-1,1] on every axis: 8 vertices, 6 quads.
// Vertex i sits at x = ±1 by bit 0, y by bit 1 and z by bit 2.
func Cube() *kernel.Mesh {
	m := &kernel.Mesh{Name: "cube"}
	for i := 0; i < 8; i++ {
		m.Vertices = append(m.Vertices, vecmath.V3(
			float64(i&1)*2-1,
			float64(i>>1&1)*2-1,
			float64(i>>2&1)*2-1,
		))
	}
	m.Faces = [][]int{
		{0, 4, 6, 2}, // -x
		{1, 3, 7, 5}, // +x
		{0, 1, 5, 4}, // -y
		{2, 6, 7, 3}, // +y
		{0, 2, 3, 1}, // -z
		{4, 5, 7, 6}, // +z
	}
	return m
}

// Octahedron returns the unit octahedron: 6 vertices, 8 triangles.
func Octahedron() *kernel.Mesh {
	return &kernel.Mesh{
		Name: "octahedron",
		Vertices: []vecmath.Vec3{
			{X: 1}, {X: -1},
			{Y: 1}, {Y: -1},
			{Z: 1}, {Z: -1},
		},
		Faces: [][]int{
			{0, 2, 4}, {1, 4, 2}, {0, 4, 3}, {1, 3, 4},
			{0, 5, 2}, {1, 2, 5}, {0, 3, 5}, {1, 5, 3},
		},
	}
}

// Icosahedron returns the regular icosahedron inscribed in the unit
// sphere: 12 vertices, 20 triangles.
func Icosahedron() *kernel.Mesh {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []vecmath.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	m := &kernel.Mesh{Name: "icosahedron"}
	for _, v := range raw {
		m.Vertices = append(m.Vertices, v.Normalize())
	}
	m.Faces = [][]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	orientConvex(m)
	return m
}

// Torus returns a torus around the y axis with major radius 1. rings is the
// number of segments around the axis, sides the number around the tube.
// The mesh has rings*sides vertices and as many quads.
func Torus(rings, sides int, minorRadius float64) (*kernel.Mesh, error) {
	switch {
	case rings < 3 || sides < 3:
		return nil, fmt.Errorf("%w: torus needs at least 3 rings and sides, got %d and %d", ErrInvalidParameter, rings, sides)
	case !(minorRadius > 0 && minorRadius < 1):
		return nil, fmt.Errorf("%w: torus minor radius %g not in (0, 1)", ErrInvalidParameter, minorRadius)
	}

	m := &kernel.Mesh{Name: "torus"}
	for i := 0; i < rings; i++ {
		st, ct := math.Sincos(2 * math.Pi * float64(i) / float64(rings))
		for j := 0; j < sides; j++ {
			sp, cp := math.Sincos(2 * math.Pi * float64(j) / float64(sides))
			r := 1 + minorRadius*cp
			m.Vertices = append(m.Vertices, vecmath.V3(r*ct, minorRadius*sp, r*st))
		}
	}

	idx := func(i, j int) int { return (i%rings)*sides + j%sides }
	for i := 0; i < rings; i++ {
		for j := 0; j < sides; j++ {
			m.Faces = append(m.Faces, []int{idx(i, j), idx(i, j+1), idx(i+1, j+1), idx(i+1, j)})
		}
	}
	return m, nil
}

// Sphere returns a UV sphere of radius 1 around the y axis with the given
// number of slices (around) and stacks (pole to pole). The polar caps are
// triangle fans, the bands in between quads.
func Sphere(slices, stacks int) (*kernel.Mesh, error) {
	if slices < 3 || stacks < 2 {
		return nil, fmt.Errorf("%w: sphere needs at least 3 slices and 2 stacks, got %d and %d", ErrInvalidParameter, slices, stacks)
	}

	m := &kernel.Mesh{Name: "sphere"}
	m.Vertices = append(m.Vertices, vecmath.V3(0, 1, 0))
	for k := 1; k < stacks; k++ {
		sa, ca := math.Sincos(math.Pi * float64(k) / float64(stacks))
		for j := 0; j < slices; j++ {
			sb, cb := math.Sincos(2 * math.Pi * float64(j) / float64(slices))
			m.Vertices = append(m.Vertices, vecmath.V3(sa*cb, ca, sa*sb))
		}
	}
	bottom := len(m.Vertices)
	m.Vertices = append(m.Vertices, vecmath.V3(0, -1, 0))

	// ring k in 1..stacks-1
	ring := func(k, j int) int { return 1 + (k-1)*slices + j%slices }

	for j := 0; j < slices; j++ {
		m.Faces = append(m.Faces, []int{0, ring(1, j+1), ring(1, j)})
	}
	for k := 1; k < stacks-1; k++ {
		for j := 0; j < slices; j++ {
			m.Faces = append(m.Faces, []int{ring(k, j), ring(k, j+1), ring(k+1, j+1), ring(k+1, j)})
		}
	}
	for j := 0; j < slices; j++ {
		m.Faces = append(m.Faces, []int{bottom, ring(stacks-1, j), ring(stacks-1, j+1)})
	}
	return m, nil
}

// Arrowhead returns a small closed double pyramid shaped like an arrowhead:
// 6 vertices, 8 triangles.
func Arrowhead() *kernel.Mesh {
	return &kernel.Mesh{
		Name: "arrowhead",
		Vertices: []vecmath.Vec3{
			{X: 1, Y: 2}, {X: -1, Y: 2}, {Y: 0.7},
			{Y: -0.7}, {Z: 0.3}, {Z: -0.3},
		},
		Faces: [][]int{
			{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
			{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
		},
	}
}

// builders maps names to the default base meshes.
var builders = map[string]func() (*kernel.Mesh, error){
	"cube":        func() (*kernel.Mesh, error) { return Cube(), nil },
	"torus":       func() (*kernel.Mesh, error) { return Torus(8, 4, 0.5) },
	"sphere":      func() (*kernel.Mesh, error) { return Sphere(4, 3) },
	"icosahedron": func() (*kernel.Mesh, error) { return Icosahedron(), nil },
	"octahedron":  func() (*kernel.Mesh, error) { return Octahedron(), nil },
	"arrowhead":   func() (*kernel.Mesh, error) { return Arrowhead(), nil },
}

// Names returns the names accepted by ByName, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns a fresh base mesh with default parameters: the torus uses
// 8 rings, 4 sides and minor radius 0.5, the sphere 4 slices and 3 stacks.
func ByName(name string) (*kernel.Mesh, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidParameter, name)
	}
	return build()
}

// orientConvex flips every face of a convex mesh centered on the origin
// whose normal points inward.
func orientConvex(m *kernel.Mesh) {
	for f, face := range m.Faces {
		if kernel.FaceNormal(m, f).Dot(m.Centroid(f)) < 0 {
			for i, j := 0, len(face)-1; i < j; i, j = i+1, j-1 {
				face[i], face[j] = face[j], face[i]
			}
		}
	}
}
