package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/surfkit/pkg/kernel"
)

func mustSolid(t *testing.T, s kernel.Solid, err error) kernel.Solid {
	t.Helper()
	if err != nil {
		t.Fatalf("primitive: %v", err)
	}
	return s
}

// checkMesh asserts the mesh is valid and that nearly every edge is shared
// by two faces. Marching cubes can leave a few ambiguous cells open.
func checkMesh(t *testing.T, m *kernel.Mesh) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	counts := m.EdgeFaces()
	bad := 0
	for _, n := range counts {
		if n != 2 {
			bad++
		}
	}
	if bad*20 > len(counts) {
		t.Errorf("%d of %d edges are not shared by exactly two faces", bad, len(counts))
	}
}

func TestBox(t *testing.T) {
	k := New(16)
	box := mustSolid(t, k.Box(10, 5, 2.5))
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.FaceCount() == 0 {
		t.Fatal("mesh is empty")
	}
	checkMesh(t, mesh)

	// Welding shares vertices: a closed triangle mesh has about half as
	// many vertices as faces.
	if mesh.VertexCount() >= mesh.FaceCount() {
		t.Errorf("%d vertices for %d faces; mesh was not welded", mesh.VertexCount(), mesh.FaceCount())
	}
	t.Logf("box: %d vertices, %d faces", mesh.VertexCount(), mesh.FaceCount())
}

func TestSphere(t *testing.T) {
	k := New(24)
	mesh, err := k.ToMesh(mustSolid(t, k.Sphere(2)))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	checkMesh(t, mesh)

	// Every vertex lies close to the surface.
	for i, v := range mesh.Vertices {
		if d := math.Abs(v.Length() - 2); d > 0.2 {
			t.Fatalf("vertex %d at distance %g from the sphere", i, d)
		}
	}
}

func TestCylinder(t *testing.T) {
	k := New(16)
	cyl := mustSolid(t, k.Cylinder(5, 1))
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.FaceCount() == 0 {
		t.Fatal("expected non-zero face count")
	}
	t.Logf("cylinder: %d faces", mesh.FaceCount())
}

func TestInvalidPrimitives(t *testing.T) {
	k := New(0)
	if k.cells != DefaultMeshCells {
		t.Errorf("cells = %d, want default %d", k.cells, DefaultMeshCells)
	}
	if _, err := k.Box(-1, 1, 1); err == nil {
		t.Error("negative box size accepted")
	}
	if _, err := k.Sphere(-1); err == nil {
		t.Error("negative sphere radius accepted")
	}
	if _, err := k.Cylinder(1, -1); err == nil {
		t.Error("negative cylinder radius accepted")
	}
}

func TestDifference(t *testing.T) {
	k := New(24)

	box := mustSolid(t, k.Box(10, 10, 10))
	boxMesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	cyl := mustSolid(t, k.Cylinder(12, 2))
	diffMesh, err := k.ToMesh(k.Difference(box, cyl))
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	// A box with a hole should have more faces than a plain box.
	if diffMesh.FaceCount() <= boxMesh.FaceCount() {
		t.Fatalf("difference (%d faces) should have more faces than box (%d faces)",
			diffMesh.FaceCount(), boxMesh.FaceCount())
	}
}

func TestUnion(t *testing.T) {
	k := New(16)
	box1 := mustSolid(t, k.Box(5, 5, 5))
	box2 := k.Translate(mustSolid(t, k.Box(5, 5, 5)), 3, 0, 0)
	mesh, err := k.ToMesh(k.Union(box1, box2))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	min, max := mesh.Bounds()
	if min.X > -2.4 || max.X < 5.4 {
		t.Errorf("union spans x in [%g, %g], want about [-2.5, 5.5]", min.X, max.X)
	}
}

func TestTranslate(t *testing.T) {
	k := New(16)
	translated := k.Translate(mustSolid(t, k.Box(10, 10, 10)), 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New(16)
	box := mustSolid(t, k.Box(100, 50, 25))
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestIntersection(t *testing.T) {
	k := New(16)
	box1 := mustSolid(t, k.Box(10, 10, 10))
	box2 := k.Translate(mustSolid(t, k.Box(10, 10, 10)), 5, 0, 0)
	mesh, err := k.ToMesh(k.Intersection(box1, box2))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.FaceCount() == 0 {
		t.Fatal("intersection mesh is empty")
	}
}

func TestRotate(t *testing.T) {
	k := New(16)
	box := mustSolid(t, k.Box(100, 10, 10))

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}
