package patch

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/surfkit/pkg/vecmath"
)

// twoPatchCage shares the middle column of control points between two
// patches.
func twoPatchCage() *ControlCage {
	c := &ControlCage{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 7; j++ {
			c.Vertices = append(c.Vertices, vecmath.V3(float64(j), float64(i), 0))
		}
	}
	var a, b [16]int
	for m := 0; m < 4; m++ {
		for n := 0; n < 4; n++ {
			a[m*4+n] = m*7 + n
			b[m*4+n] = m*7 + n + 3
		}
	}
	c.Patches = [][16]int{a, b}
	return c
}

func TestCagePatch(t *testing.T) {
	c := twoPatchCage()
	p, err := c.Patch(1)
	if err != nil {
		t.Fatal(err)
	}
	if p[0][0] != vecmath.V3(3, 0, 0) || p[3][3] != vecmath.V3(6, 3, 0) {
		t.Errorf("patch 1 corners %s, %s", p[0][0], p[3][3])
	}

	p[0][0] = vecmath.V3(99, 99, 99)
	if c.Vertices[3] == p[0][0] {
		t.Error("Patch returned shared storage")
	}

	for _, i := range []int{-1, 2} {
		if _, err := c.Patch(i); !errors.Is(err, ErrInvalidCage) {
			t.Errorf("Patch(%d) error = %v", i, err)
		}
	}
}

func TestTessellateCage(t *testing.T) {
	const r = 4
	m, err := TessellateCage(twoPatchCage(), r)
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 2*(r+1)*(r+1) || m.FaceCount() != 2*r*r {
		t.Fatalf("got %d vertices, %d faces", m.VertexCount(), m.FaceCount())
	}
	// The second patch's faces are offset past the first patch's vertices.
	first := m.Faces[r*r]
	if d := cmp.Diff([]int{25, 26, 31, 30}, first); d != "" {
		t.Errorf("first face of patch 1 (-want +got):\n%s", d)
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
	// The shared boundary is sampled identically by both patches.
	for j := 0; j <= r; j++ {
		a := m.Vertices[r*(r+1)+j]
		b := m.Vertices[25+j]
		if !a.Equals(b, 1e-12) {
			t.Errorf("seam sample %d: %s vs %s", j, a, b)
		}
	}
}

func TestWireCage(t *testing.T) {
	m, err := WireCage(twoPatchCage())
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 32 || m.FaceCount() != 18 {
		t.Fatalf("got %d vertices, %d faces; want 32, 18", m.VertexCount(), m.FaceCount())
	}
	if d := cmp.Diff([]int{0, 1, 5, 4}, m.Faces[0]); d != "" {
		t.Errorf("first quad (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{26, 27, 31, 30}, m.Faces[17]); d != "" {
		t.Errorf("last quad (-want +got):\n%s", d)
	}
	if m.Vertices[16] != vecmath.V3(3, 0, 0) {
		t.Errorf("second patch starts at %s", m.Vertices[16])
	}
}

func TestCageValidate(t *testing.T) {
	bad := twoPatchCage()
	bad.Patches[1][5] = 28
	if _, err := TessellateCage(bad, 2); !errors.Is(err, ErrInvalidCage) {
		t.Errorf("TessellateCage error = %v", err)
	}
	if _, err := WireCage(bad); !errors.Is(err, ErrInvalidCage) {
		t.Errorf("WireCage error = %v", err)
	}
	if _, err := bad.Patch(1); !errors.Is(err, ErrInvalidCage) {
		t.Errorf("Patch error = %v", err)
	}
	if err := (&ControlCage{}).Validate(); !errors.Is(err, ErrInvalidCage) {
		t.Errorf("empty cage error = %v", err)
	}
	if _, err := TessellateCage(twoPatchCage(), 0); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("resolution 0 error = %v", err)
	}
}

func TestDebugCage(t *testing.T) {
	c := DebugCage()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(c.Vertices) != 16 || len(c.Patches) != 1 {
		t.Fatalf("got %d vertices, %d patches", len(c.Vertices), len(c.Patches))
	}

	// Rotation preserves the distance from the origin.
	for i, coord := range []float64{-1.5, -0.5, 0.5, 1.5} {
		h := []float64{0, 1, 1, 0}
		for j, coord2 := range []float64{-1.5, -0.5, 0.5, 1.5} {
			want := vecmath.V3(coord, h[i]*h[j], coord2).Length()
			if got := c.Vertices[i*4+j].Length(); math.Abs(got-want) > 1e-12 {
				t.Errorf("vertex %d at distance %g, want %g", i*4+j, got, want)
			}
		}
	}

	tr := vecmath.MustRotate(25, 1, 0, 0).Mul(vecmath.MustRotate(45, 0, 1, 0))
	if got, want := c.Vertices[5], tr.TransformPoint(vecmath.V3(-0.5, 1, -0.5)); !got.Equals(want, 1e-12) {
		t.Errorf("vertex 5 = %s, want %s", got, want)
	}

	m, err := TessellateCage(c, 8)
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 81 || m.FaceCount() != 64 {
		t.Errorf("got %d/%d", m.VertexCount(), m.FaceCount())
	}
}
