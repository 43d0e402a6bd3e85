// Package tessellate walks a scene and produces render buffers: triangle
// meshes for subdivision meshes and Bézier surfaces, wire outlines for
// control cages and sampled polylines for curves.
package tessellate

import (
	"fmt"

	"github.com/chazu/surfkit/pkg/curve"
	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/patch"
	"github.com/chazu/surfkit/pkg/scene"
	"github.com/chazu/surfkit/pkg/subdiv"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// Wire is a set of 3D line segments, used for control cages.
type Wire struct {
	Name     string
	Vertices []vecmath.Vec3
	Edges    [][2]int
}

// Polyline is a sampled 2D curve with its control polygon and optional
// tangent handles.
type Polyline struct {
	Name     string
	Control  []vecmath.Vec2
	Points   []vecmath.Vec2
	Tangents []curve.Tangent
}

// Output collects the buffers produced for one scene.
type Output struct {
	Meshes    []*kernel.TriMesh
	Wires     []Wire
	Polylines []Polyline
}

// Build walks the scene in draw order. Mesh items are subdivided Levels
// times, cage items are tessellated, and both are moved by the item
// transform and triangulated. Curve items are sampled with their spline.
// Build is read-only and never mutates the scene.
func Build(s *scene.Scene) (*Output, error) {
	out := &Output{}
	if s == nil {
		return out, nil
	}

	for _, it := range s.Ordered() {
		var err error
		switch d := it.Data.(type) {
		case scene.MeshData:
			err = buildMesh(out, it, d)
		case scene.CageData:
			err = buildCage(out, it, d)
		case scene.CurveData:
			buildCurve(out, it, d, s.Defaults)
		default:
			err = fmt.Errorf("unsupported data type %T", it.Data)
		}
		if err != nil {
			return nil, fmt.Errorf("tessellate: item %s (%s): %w", it.ID.Short(), partName(it), err)
		}
	}
	return out, nil
}

// partName prefers the item's name and falls back to its short ID.
func partName(it *scene.Item) string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID.Short()
}

func buildMesh(out *Output, it *scene.Item, d scene.MeshData) error {
	if d.Mesh == nil {
		return fmt.Errorf("%w: mesh is missing", kernel.ErrInvalidMesh)
	}
	m, err := subdiv.SubdivideN(d.Mesh, d.Levels)
	if err != nil {
		return err
	}
	m = m.Transform(it.Transform)

	var tm *kernel.TriMesh
	if d.Levels > 0 {
		tm = kernel.TriangulateSmooth(m)
	} else {
		tm = kernel.Triangulate(m)
	}
	tm.PartName = partName(it)
	out.Meshes = append(out.Meshes, tm)
	return nil
}

func buildCage(out *Output, it *scene.Item, d scene.CageData) error {
	if d.Cage == nil {
		return fmt.Errorf("%w: control cage is missing", patch.ErrInvalidCage)
	}
	m, err := patch.TessellateCage(d.Cage, d.Resolution)
	if err != nil {
		return err
	}
	tm := kernel.TriangulateSmooth(m.Transform(it.Transform))
	tm.PartName = partName(it)
	out.Meshes = append(out.Meshes, tm)

	if !d.ShowCage {
		return nil
	}
	wire, err := patch.WireCage(d.Cage)
	if err != nil {
		return err
	}
	wire = wire.Transform(it.Transform)
	out.Wires = append(out.Wires, Wire{
		Name:     partName(it) + "/cage",
		Vertices: wire.Vertices,
		Edges:    wire.Edges(),
	})
	return nil
}

// buildCurve moves the control points by the item transform in the z=0
// plane and samples the spline through them.
func buildCurve(out *Output, it *scene.Item, d scene.CurveData, defaults scene.Defaults) {
	control := make([]vecmath.Vec2, len(d.Points))
	for i, p := range d.Points {
		q := it.Transform.TransformPoint(vecmath.V3(p.X, p.Y, 0))
		control[i] = vecmath.V2(q.X, q.Y)
	}

	pl := Polyline{
		Name:    partName(it),
		Control: control,
		Points:  d.Spline.Evaluate(control),
	}
	if d.ShowTangents {
		length := d.TangentLength
		if length == 0 {
			length = defaults.TangentLength
		}
		pl.Tangents = curve.Tangents(control, length)
	}
	out.Polylines = append(out.Polylines, pl)
}
