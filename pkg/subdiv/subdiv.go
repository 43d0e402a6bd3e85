// Package subdiv implements Catmull-Clark subdivision on polygon meshes of
// arbitrary face arity. One step turns every k-gon into k quads, so the
// output can be fed straight back in.
package subdiv

import (
	"fmt"

	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// edgeKey identifies an undirected edge; lo <= hi.
type edgeKey struct {
	lo, hi int
}

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Subdivide returns the result of one Catmull-Clark step on m. m is
// validated first and never modified.
//
// The output keeps the original vertices at indices 0..V-1, followed by
// one face point per face, each immediately followed by the edge points
// first created while walking that face. Corner j of face f produces the
// quad (face point, edge(f[j], f[j+1]), f[j+1], edge(f[j+1], f[j+2])).
func Subdivide(m *kernel.Mesh) (*kernel.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("subdiv: %w", err)
	}

	out := linear(m)
	avg, count := averages(out)
	correct(out.Vertices, avg, count)
	return out, nil
}

// SubdivideN applies Subdivide levels times. levels == 0 returns a copy.
func SubdivideN(m *kernel.Mesh, levels int) (*kernel.Mesh, error) {
	if levels < 0 {
		return nil, fmt.Errorf("subdiv: negative level count %d", levels)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("subdiv: %w", err)
	}
	cur := m.Clone()
	for i := 0; i < levels; i++ {
		next, err := Subdivide(cur)
		if err != nil {
			return nil, fmt.Errorf("subdiv: level %d: %w", i+1, err)
		}
		cur = next
	}
	return cur, nil
}

// linear inserts face and edge points and builds the quad topology.
func linear(m *kernel.Mesh) *kernel.Mesh {
	arity := 0
	for _, face := range m.Faces {
		arity += len(face)
	}

	out := &kernel.Mesh{
		Name:     m.Name,
		Vertices: make([]vecmath.Vec3, len(m.Vertices), len(m.Vertices)+len(m.Faces)+arity),
		Faces:    make([][]int, 0, arity),
	}
	copy(out.Vertices, m.Vertices)

	edges := make(map[edgeKey]int, arity/2)
	edgePoint := func(a, b int) int {
		k := keyOf(a, b)
		if idx, ok := edges[k]; ok {
			return idx
		}
		idx := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices[a].Lerp(m.Vertices[b], 0.5))
		edges[k] = idx
		return idx
	}

	for f, face := range m.Faces {
		fp := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Centroid(f))

		n := len(face)
		for j := range face {
			v0, v1, v2 := face[j], face[(j+1)%n], face[(j+2)%n]
			out.Faces = append(out.Faces, []int{fp, edgePoint(v0, v1), v1, edgePoint(v1, v2)})
		}
	}
	return out
}

// averages returns, for every vertex, the mean centroid of the faces that
// reference it and the number of such references.
func averages(m *kernel.Mesh) ([]vecmath.Vec3, []int) {
	sum := make([]vecmath.Vec3, len(m.Vertices))
	count := make([]int, len(m.Vertices))
	for f, face := range m.Faces {
		c := m.Centroid(f)
		for _, idx := range face {
			sum[idx] = sum[idx].Add(c)
			count[idx]++
		}
	}
	for i, n := range count {
		if n > 0 {
			sum[i] = sum[i].Mul(1 / float64(n))
		}
	}
	return sum, count
}

// correct moves each referenced vertex toward its average with weight 4/n.
// Unreferenced vertices stay where they are.
func correct(verts, avg []vecmath.Vec3, count []int) {
	for i, n := range count {
		if n == 0 {
			continue
		}
		verts[i] = verts[i].Add(avg[i].Sub(verts[i]).Mul(4 / float64(n)))
	}
}
