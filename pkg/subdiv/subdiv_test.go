package subdiv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/shapes"
	"github.com/chazu/surfkit/pkg/vecmath"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func mustShape(t *testing.T, name string) *kernel.Mesh {
	t.Helper()
	m, err := shapes.ByName(name)
	if err != nil {
		t.Fatalf("ByName(%q): %v", name, err)
	}
	return m
}

func TestSubdivideCounts(t *testing.T) {
	tests := []struct {
		shape        string
		verts, faces int
	}{
		{"cube", 26, 24},
		{"octahedron", 26, 24},
		{"icosahedron", 62, 60},
		{"torus", 128, 128},
		{"sphere", 42, 40},
		{"arrowhead", 26, 24},
	}
	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			in := mustShape(t, tt.shape)
			out, err := Subdivide(in)
			if err != nil {
				t.Fatalf("Subdivide: %v", err)
			}

			// V' = V + F + E and F' = sum of arities.
			arity := 0
			for _, f := range in.Faces {
				arity += len(f)
			}
			if want := in.VertexCount() + in.FaceCount() + in.EdgeCount(); out.VertexCount() != want {
				t.Errorf("vertices = %d, want V+F+E = %d", out.VertexCount(), want)
			}
			if out.FaceCount() != arity {
				t.Errorf("faces = %d, want %d", out.FaceCount(), arity)
			}
			if out.VertexCount() != tt.verts || out.FaceCount() != tt.faces {
				t.Errorf("got %d/%d, want %d/%d", out.VertexCount(), out.FaceCount(), tt.verts, tt.faces)
			}
			if !out.IsQuadMesh() {
				t.Error("output contains non-quad faces")
			}
			if err := out.Validate(); err != nil {
				t.Errorf("output invalid: %v", err)
			}
			if out.Name != in.Name {
				t.Errorf("Name = %q, want %q", out.Name, in.Name)
			}
		})
	}
}

func TestSubdivideCubePositions(t *testing.T) {
	out, err := Subdivide(shapes.Cube())
	if err != nil {
		t.Fatal(err)
	}

	// Original corners move to (±5/9, ±5/9, ±5/9).
	c := 5.0 / 9.0
	if d := cmp.Diff(vecmath.V3(c, c, c), out.Vertices[7], approx); d != "" {
		t.Errorf("corner 7:\n%s", d)
	}
	if d := cmp.Diff(vecmath.V3(-c, -c, -c), out.Vertices[0], approx); d != "" {
		t.Errorf("corner 0:\n%s", d)
	}

	// Face 0 (-x) gets face point 8, first edge point 9 on edge (0,4).
	if d := cmp.Diff(vecmath.V3(-1, 0, 0), out.Vertices[8], approx); d != "" {
		t.Errorf("face point:\n%s", d)
	}
	if d := cmp.Diff(vecmath.V3(-0.75, -0.75, 0), out.Vertices[9], approx); d != "" {
		t.Errorf("edge point:\n%s", d)
	}

	wantFaces := [][]int{{8, 9, 4, 10}, {8, 10, 6, 11}, {8, 11, 2, 12}, {8, 12, 0, 9}}
	if d := cmp.Diff(wantFaces, out.Faces[:4]); d != "" {
		t.Errorf("faces of the first input face (-want +got):\n%s", d)
	}
}

func TestSubdivideSharedEdge(t *testing.T) {
	in := &kernel.Mesh{
		Vertices: []vecmath.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
		},
		Faces: [][]int{{0, 1, 4, 3}, {1, 2, 5, 4}},
	}
	out, err := Subdivide(in)
	if err != nil {
		t.Fatal(err)
	}
	// 6 vertices + 2 face points + 7 distinct edges, not 8.
	if out.VertexCount() != 15 {
		t.Errorf("vertices = %d, want 15", out.VertexCount())
	}
	if out.FaceCount() != 8 {
		t.Errorf("faces = %d, want 8", out.FaceCount())
	}
	// Edge (1,4) is created while walking the first face and reused by
	// the second.
	if got := out.Faces[1][1]; got != 8 {
		t.Errorf("first face edge (1,4) = %d, want 8", got)
	}
	if got := out.Faces[6][3]; got != 8 {
		t.Errorf("second face edge (4,1) = %d, want 8", got)
	}
	if got := out.Faces[7][1]; got != 8 {
		t.Errorf("second face edge (4,1) = %d, want 8", got)
	}
}

func TestSubdivideDoesNotMutateInput(t *testing.T) {
	in := shapes.Icosahedron()
	before := in.Clone()
	if _, err := Subdivide(in); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(before, in); d != "" {
		t.Errorf("input changed (-before +after):\n%s", d)
	}
}

func TestSubdivideUnreferencedVertex(t *testing.T) {
	in := shapes.Cube()
	stray := vecmath.V3(10, 20, 30)
	in.Vertices = append(in.Vertices, stray)

	out, err := Subdivide(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Vertices[8]; got != stray {
		t.Errorf("unreferenced vertex moved to %s", got)
	}
	for i, v := range out.Vertices {
		if !v.IsFinite() {
			t.Errorf("vertex %d is not finite", i)
		}
	}
}

func TestSubdivideInvalid(t *testing.T) {
	tests := []struct {
		name string
		mesh *kernel.Mesh
	}{
		{"index out of range", &kernel.Mesh{Vertices: make([]vecmath.Vec3, 3), Faces: [][]int{{0, 1, 3}}}},
		{"negative index", &kernel.Mesh{Vertices: make([]vecmath.Vec3, 3), Faces: [][]int{{0, -1, 2}}}},
		{"degenerate face", &kernel.Mesh{Vertices: make([]vecmath.Vec3, 3), Faces: [][]int{{0, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Subdivide(tt.mesh); !errors.Is(err, kernel.ErrInvalidMesh) {
				t.Errorf("Subdivide error = %v, want ErrInvalidMesh", err)
			}
			if _, err := SubdivideN(tt.mesh, 2); !errors.Is(err, kernel.ErrInvalidMesh) {
				t.Errorf("SubdivideN error = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestSubdivideN(t *testing.T) {
	cube := shapes.Cube()

	same, err := SubdivideN(cube, 0)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(cube, same); d != "" {
		t.Errorf("level 0 differs from input:\n%s", d)
	}
	same.Vertices[0].X = 99
	if cube.Vertices[0].X == 99 {
		t.Error("level 0 result shares storage with the input")
	}

	// V, F, E for a closed quad mesh after each level: F *= 4,
	// E = 2F (each quad has 4 edges, each edge 2 faces), V = E - F + 2.
	f, v := 6, 8
	cur := cube
	for level := 1; level <= 4; level++ {
		cur, err = SubdivideN(cube, level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		e := 2 * f
		v, f = v+f+e, f*4
		if cur.VertexCount() != v || cur.FaceCount() != f || !cur.IsQuadMesh() {
			t.Errorf("level %d: %d/%d quads=%v, want %d/%d", level, cur.VertexCount(), cur.FaceCount(), cur.IsQuadMesh(), v, f)
		}
	}

	if _, err := SubdivideN(cube, -1); err == nil {
		t.Error("negative level accepted")
	}
}

func TestSubdivideShrinksTowardLimit(t *testing.T) {
	// Catmull-Clark limit surfaces lie inside the convex hull.
	out, err := SubdivideN(shapes.Cube(), 3)
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := out.Bounds()
	for _, c := range []float64{lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z} {
		if c < -1 || c > 1 {
			t.Errorf("bounds %s..%s leave the cube", lo, hi)
			break
		}
	}
}
