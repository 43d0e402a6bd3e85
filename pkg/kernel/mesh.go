package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/surfkit/pkg/vecmath"
)

// ErrInvalidMesh is returned for faces with fewer than three corners,
// out-of-range vertex indices or non-finite vertex positions.
var ErrInvalidMesh = errors.New("kernel: invalid mesh")

// Mesh is a polygon mesh: an indexed vertex list plus faces of arbitrary
// arity (>= 3). Faces list vertex indices in counter-clockwise order seen
// from outside.
type Mesh struct {
	Name     string
	Vertices []vecmath.Vec3
	Faces    [][]int
}

// Validate checks that every face has at least three corners, every index
// is in range and every vertex is finite. It never reads out of bounds.
func (m *Mesh) Validate() error {
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d is not finite: %s", ErrInvalidMesh, i, v)
		}
	}
	for f, face := range m.Faces {
		if len(face) < 3 {
			return fmt.Errorf("%w: face %d has %d corners, need at least 3", ErrInvalidMesh, f, len(face))
		}
		for _, idx := range face {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d (have %d)", ErrInvalidMesh, f, idx, len(m.Vertices))
			}
		}
	}
	return nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Edges returns the distinct undirected edges in order of first
// appearance. Each edge is stored with the smaller index first.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{})
	var edges [][2]int
	for _, face := range m.Faces {
		for i, a := range face {
			e := edgeOf(a, face[(i+1)%len(face)])
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgeCount returns the number of distinct undirected edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges())
}

// EdgeFaces counts, for every distinct edge, the faces that use it. A
// closed manifold has exactly two faces per edge.
func (m *Mesh) EdgeFaces() map[[2]int]int {
	counts := make(map[[2]int]int)
	for _, face := range m.Faces {
		for i, a := range face {
			counts[edgeOf(a, face[(i+1)%len(face)])]++
		}
	}
	return counts
}

// IsQuadMesh reports whether every face has exactly four corners.
func (m *Mesh) IsQuadMesh() bool {
	for _, face := range m.Faces {
		if len(face) != 4 {
			return false
		}
	}
	return true
}

// Centroid returns the average of the corners of face f. f must be a valid
// face index.
func (m *Mesh) Centroid(f int) vecmath.Vec3 {
	var c vecmath.Vec3
	face := m.Faces[f]
	for _, idx := range face {
		c = c.Add(m.Vertices[idx])
	}
	return c.Mul(1 / float64(len(face)))
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: append([]vecmath.Vec3(nil), m.Vertices...),
		Faces:    make([][]int, len(m.Faces)),
	}
	for i, face := range m.Faces {
		out.Faces[i] = append([]int(nil), face...)
	}
	return out
}

// Transform returns a copy of m with every vertex mapped through t.
func (m *Mesh) Transform(t vecmath.Mat4) *Mesh {
	out := m.Clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = t.TransformPoint(v)
	}
	return out
}

// Append returns a new mesh holding the faces of m followed by those of o,
// with o's indices shifted past m's vertices.
func (m *Mesh) Append(o *Mesh) *Mesh {
	out := m.Clone()
	base := len(out.Vertices)
	out.Vertices = append(out.Vertices, o.Vertices...)
	for _, face := range o.Faces {
		shifted := make([]int, len(face))
		for i, idx := range face {
			shifted[i] = idx + base
		}
		out.Faces = append(out.Faces, shifted)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the vertices. An empty
// mesh yields two zero vectors.
func (m *Mesh) Bounds() (lo, hi vecmath.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = vecmath.V3(min(lo.X, v.X), min(lo.Y, v.Y), min(lo.Z, v.Z))
		hi = vecmath.V3(max(hi.X, v.X), max(hi.Y, v.Y), max(hi.Z, v.Z))
	}
	return lo, hi
}

func edgeOf(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
