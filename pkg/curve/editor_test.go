package curve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/surfkit/pkg/vecmath"
)

func TestControlPolygonEditing(t *testing.T) {
	var c ControlPolygon

	a := c.Add(vecmath.V2(10, 10))
	b := c.Add(vecmath.V2(50, 10))
	if a != 0 || b != 1 || c.Len() != 2 {
		t.Fatalf("handles %d, %d with %d points", a, b, c.Len())
	}

	if err := c.Move(b, vecmath.V2(60, 20)); err != nil {
		t.Fatalf("Move: %v", err)
	}
	p, err := c.Point(b)
	if err != nil || p != vecmath.V2(60, 20) {
		t.Errorf("Point(b) = %s, %v", p, err)
	}

	if err := c.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	want := []vecmath.Vec2{{X: 60, Y: 20}}
	if d := cmp.Diff(want, c.Points()); d != "" {
		t.Errorf("points after remove (-want +got):\n%s", d)
	}
}

func TestControlPolygonInvalidHandle(t *testing.T) {
	c := NewControlPolygon(vecmath.V2(0, 0))
	for _, h := range []Handle{-1, 1, 99} {
		if err := c.Move(h, vecmath.Vec2{}); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Move(%d) error = %v", h, err)
		}
		if err := c.Remove(h); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Remove(%d) error = %v", h, err)
		}
		if _, err := c.Point(h); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Point(%d) error = %v", h, err)
		}
	}
}

func TestPick(t *testing.T) {
	c := NewControlPolygon(vecmath.V2(0, 0), vecmath.V2(3, 0), vecmath.V2(100, 100))

	// Both of the first two points are in range; the first one wins.
	if h, ok := c.Pick(vecmath.V2(2, 0), DefaultPickRadius); !ok || h != 0 {
		t.Errorf("Pick = %d, %v; want 0, true", h, ok)
	}
	if h, ok := c.Pick(vecmath.V2(101, 99), DefaultPickRadius); !ok || h != 2 {
		t.Errorf("Pick = %d, %v; want 2, true", h, ok)
	}
	if _, ok := c.Pick(vecmath.V2(50, 50), DefaultPickRadius); ok {
		t.Error("Pick found a point in empty space")
	}

	if h := c.PickOrAdd(vecmath.V2(50, 50), DefaultPickRadius); h != 3 || c.Len() != 4 {
		t.Errorf("PickOrAdd added handle %d, len %d", h, c.Len())
	}
	if h := c.PickOrAdd(vecmath.V2(51, 51), DefaultPickRadius); h != 3 || c.Len() != 4 {
		t.Errorf("PickOrAdd on existing point returned %d, len %d", h, c.Len())
	}
}

func TestPointsIsCopy(t *testing.T) {
	c := NewControlPolygon(vecmath.V2(1, 1))
	p := c.Points()
	p[0] = vecmath.V2(9, 9)
	if got, _ := c.Point(0); got != vecmath.V2(1, 1) {
		t.Errorf("mutating Points() changed the polygon: %s", got)
	}
}
