package curve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/chazu/surfkit/pkg/vecmath"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func pts(xy ...float64) []vecmath.Vec2 {
	out := make([]vecmath.Vec2, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, vecmath.V2(xy[i], xy[i+1]))
	}
	return out
}

func TestEvaluateSegmentEndpoints(t *testing.T) {
	before, on, next, ahead := vecmath.V2(0, 0), vecmath.V2(1, 2), vecmath.V2(3, 3), vecmath.V2(4, 0)
	for _, s := range []float64{0, 0.25, 0.5, 1, 2} {
		if got := EvaluateSegment(before, on, next, ahead, s, 0); got != on {
			t.Errorf("tension %g: t=0 gave %s, want %s", s, got, on)
		}
		if got := EvaluateSegment(before, on, next, ahead, s, 1); !got.Equals(next, 1e-12) {
			t.Errorf("tension %g: t=1 gave %s, want %s", s, got, next)
		}
	}
}

func TestEvaluateSegmentCollinear(t *testing.T) {
	// Evenly spaced collinear points reproduce the line at constant speed
	// for the Catmull-Rom tension.
	p := pts(0, 0, 1, 1, 2, 2, 3, 3)
	for _, tt := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := EvaluateSegment(p[0], p[1], p[2], p[3], 0.5, tt)
		want := vecmath.V2(1+tt, 1+tt)
		if !got.Equals(want, 1e-12) {
			t.Errorf("t=%g: got %s, want %s", tt, got, want)
		}
	}
}

func TestEvaluateSegmentLocality(t *testing.T) {
	// Moving a control point outside the window has no effect.
	a := pts(0, 0, 1, 3, 2, -1, 4, 2, 6, 6)
	b := append([]vecmath.Vec2(nil), a...)
	b[4] = vecmath.V2(-50, 80)

	s := DefaultSpline()
	sa, sb := s.Segments(a), s.Segments(b)
	if diff := cmp.Diff(sa[0], sb[0]); diff != "" {
		t.Errorf("first segment changed (-a +b):\n%s", diff)
	}
	if cmp.Equal(sa[1], sb[1]) {
		t.Error("second segment did not change when its look-ahead moved")
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name     string
		points   []vecmath.Vec2
		wantSegs int
	}{
		{"empty", nil, 0},
		{"three points", pts(0, 0, 1, 1, 2, 0), 0},
		{"four points", pts(0, 0, 1, 1, 2, 0, 3, 1), 1},
		{"five points", pts(0, 0, 1, 1, 2, 0, 3, 1, 4, 0), 2},
		{"ten points", pts(0, 0, 1, 1, 2, 0, 3, 1, 4, 0, 5, 1, 6, 0, 7, 1, 8, 0, 9, 1), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Spline{Basis: CatmullRom, Tension: 0.5, Samples: 8}
			segs := s.Segments(tt.points)
			if len(segs) != tt.wantSegs {
				t.Fatalf("got %d segments, want %d", len(segs), tt.wantSegs)
			}
			for i, seg := range segs {
				if len(seg) != 9 {
					t.Errorf("segment %d has %d samples, want 9", i, len(seg))
				}
				// Segment i interpolates control points i+1 and i+2.
				if seg[0] != tt.points[i+1] {
					t.Errorf("segment %d starts at %s, want %s", i, seg[0], tt.points[i+1])
				}
				if !seg[8].Equals(tt.points[i+2], 1e-12) {
					t.Errorf("segment %d ends at %s, want %s", i, seg[8], tt.points[i+2])
				}
			}
		})
	}
}

func TestEvaluatePolyline(t *testing.T) {
	p := pts(0, 0, 1, 1, 2, 0, 3, 1, 4, 0)
	s := Spline{Tension: 0.5, Samples: 4}

	line := s.Evaluate(p)
	if len(line) != 2*4+1 {
		t.Fatalf("got %d points, want 9", len(line))
	}
	if line[0] != p[1] || !line[4].Equals(p[2], 1e-12) || !line[8].Equals(p[3], 1e-12) {
		t.Errorf("polyline does not pass through interior points: %v", line)
	}

	if got := s.Evaluate(p[:3]); len(got) != 0 {
		t.Errorf("three points produced %d samples, want none", len(got))
	}
}

func TestSamplesDefault(t *testing.T) {
	p := pts(0, 0, 1, 1, 2, 0, 3, 1)
	segs := Spline{Samples: 0}.Segments(p)
	if len(segs) != 1 || len(segs[0]) != DefaultSamples+1 {
		t.Errorf("zero Samples should fall back to %d", DefaultSamples)
	}
}

func TestBSpline(t *testing.T) {
	s := Spline{Basis: BSpline, Samples: 10}

	// The B-spline reproduces straight lines with even spacing.
	line := s.Evaluate(pts(0, 0, 1, 2, 2, 4, 3, 6, 4, 8))
	for _, q := range line {
		if d := q.Y - 2*q.X; d > 1e-12 || d < -1e-12 {
			t.Errorf("%s is off the line y = 2x", q)
		}
	}

	// It starts at the classic (p0 + 4p1 + p2)/6 blend, not at p1.
	p := pts(0, 0, 6, 6, 12, 0, 18, 6)
	seg := s.Segments(p)[0]
	diffVec(t, vecmath.V2(6, 4), seg[0])
	diffVec(t, vecmath.V2(12, 2), seg[len(seg)-1])

	// Consecutive segments join continuously.
	more := append(p, vecmath.V2(24, 0))
	segs := s.Segments(more)
	diffVec(t, segs[0][len(segs[0])-1], segs[1][0])
}

func TestBSplineWeightsSumToOne(t *testing.T) {
	one := vecmath.V2(1, 1)
	for i := 0; i <= 20; i++ {
		tt := float64(i) / 20
		diffVec(t, one, EvaluateBSplineSegment(one, one, one, one, tt))
		diffVec(t, one, EvaluateSegment(one, one, one, one, 0.7, tt))
	}
}

func TestParseBasis(t *testing.T) {
	for _, b := range []Basis{CatmullRom, BSpline} {
		got, err := ParseBasis(b.String())
		if err != nil || got != b {
			t.Errorf("ParseBasis(%q) = %v, %v", b.String(), got, err)
		}
	}
	if _, err := ParseBasis("nurbs"); err == nil {
		t.Error("expected an error for an unknown basis")
	}
}

func diffVec(t *testing.T, want, got vecmath.Vec2) {
	t.Helper()
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Error(d)
	}
}
