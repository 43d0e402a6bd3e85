package kernel

import "github.com/chazu/surfkit/pkg/vecmath"

// TriMesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type TriMesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene item this came from
}

// VertexCount returns the number of vertices.
func (m *TriMesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *TriMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *TriMesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// FaceNormal returns the unit normal of face f using Newell's method, which
// is robust for non-planar and concave polygons. Degenerate faces yield the
// zero vector.
func FaceNormal(m *Mesh, f int) vecmath.Vec3 {
	var n vecmath.Vec3
	face := m.Faces[f]
	for i, idx := range face {
		a := m.Vertices[idx]
		b := m.Vertices[face[(i+1)%len(face)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// Triangulate fans every face of m into triangles with flat shading: each
// face gets its own copy of its corners carrying the face normal. m must be
// valid.
func Triangulate(m *Mesh) *TriMesh {
	out := &TriMesh{PartName: m.Name}
	for f, face := range m.Faces {
		n := FaceNormal(m, f)
		base := uint32(out.VertexCount())
		for _, idx := range face {
			out.appendVertex(m.Vertices[idx], n)
		}
		out.appendFan(base, len(face), nil)
	}
	return out
}

// TriangulateSmooth fans every face of m into triangles that share m's
// vertices. Vertex normals are the normalized sum of the unnormalized
// normals of the adjacent faces. m must be valid.
func TriangulateSmooth(m *Mesh) *TriMesh {
	normals := make([]vecmath.Vec3, len(m.Vertices))
	for f, face := range m.Faces {
		n := FaceNormal(m, f)
		for _, idx := range face {
			normals[idx] = normals[idx].Add(n)
		}
	}

	out := &TriMesh{PartName: m.Name}
	for i, v := range m.Vertices {
		out.appendVertex(v, normals[i].Normalize())
	}
	for _, face := range m.Faces {
		out.appendFan(0, len(face), face)
	}
	return out
}

func (m *TriMesh) appendVertex(v, n vecmath.Vec3) {
	m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
}

// appendFan emits the triangles (0, i, i+1) of an n-gon. Corner k maps to
// base+k, or to base+face[k] when face is given.
func (m *TriMesh) appendFan(base uint32, n int, face []int) {
	corner := func(k int) uint32 {
		if face != nil {
			return base + uint32(face[k])
		}
		return base + uint32(k)
	}
	for i := 1; i+1 < n; i++ {
		m.Indices = append(m.Indices, corner(0), corner(i), corner(i+1))
	}
}
