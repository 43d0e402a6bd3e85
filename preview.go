package main

import (
	"fmt"

	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/vecmath"
	"github.com/chazu/surfkit/pkg/viewing"
)

// PreviewOptions configures the wireframe preview camera.
type PreviewOptions struct {
	Width, Height int
	FOV           float64 // vertical, degrees
	Pitch, Yaw    float64 // degrees
	Distance      float64
}

// DefaultPreviewOptions frames the unit-sized shapes in a 640x480 view.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Width:    640,
		Height:   480,
		FOV:      45,
		Pitch:    20,
		Yaw:      30,
		Distance: viewing.DefaultDistance,
	}
}

// SegmentData is one projected line in pixel coordinates.
type SegmentData struct {
	From [2]float64 `json:"from"`
	To   [2]float64 `json:"to"`
}

// LayerData is the projected wireframe of one mesh or cage.
type LayerData struct {
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Segments []SegmentData `json:"segments"`
}

// PreviewResult is a wireframe rendering of the 3D items of a scene.
type PreviewResult struct {
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Layers   []LayerData     `json:"layers"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// Preview evaluates source and projects every triangle mesh and control
// cage through an orbit camera. Curves are 2D and are left out.
func (a *App) Preview(source string, opts PreviewOptions) PreviewResult {
	result := newEvalResult()
	preview := PreviewResult{Width: opts.Width, Height: opts.Height, Layers: []LayerData{}}

	chain, err := previewChain(opts)
	if err != nil {
		preview.Errors = []EvalErrorData{{Message: err.Error()}}
		preview.Warnings = []EvalErrorData{}
		return preview
	}

	out := a.build(source, &result)
	preview.Errors, preview.Warnings = result.Errors, result.Warnings
	if out == nil {
		return preview
	}

	color := 0
	add := func(name string, segs []viewing.Segment) {
		layer := LayerData{
			Name:     name,
			Color:    colorPalette[color%len(colorPalette)],
			Segments: make([]SegmentData, len(segs)),
		}
		color++
		for i, s := range segs {
			layer.Segments[i] = SegmentData{
				From: [2]float64{s.A.X, s.A.Y},
				To:   [2]float64{s.B.X, s.B.Y},
			}
		}
		preview.Layers = append(preview.Layers, layer)
	}

	for _, m := range out.Meshes {
		positions, edges := triMeshEdges(m)
		segs, err := viewing.Wireframe(chain, positions, edges)
		if err != nil {
			preview.Errors = append(preview.Errors, EvalErrorData{Item: m.PartName, Message: err.Error()})
			continue
		}
		add(m.PartName, segs)
	}
	for _, w := range out.Wires {
		segs, err := viewing.Wireframe(chain, w.Vertices, w.Edges)
		if err != nil {
			preview.Errors = append(preview.Errors, EvalErrorData{Item: w.Name, Message: err.Error()})
			continue
		}
		add(w.Name, segs)
	}
	return preview
}

// previewChain builds viewport·projection·view for opts.
func previewChain(opts PreviewOptions) (vecmath.Mat4, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return vecmath.Mat4{}, fmt.Errorf("preview: invalid size %dx%d", opts.Width, opts.Height)
	}
	cam := &viewing.OrbitCamera{Pitch: opts.Pitch, Yaw: opts.Yaw, Distance: opts.Distance}
	if cam.Distance <= 0 {
		cam.Distance = viewing.DefaultDistance
	}

	w, h := float64(opts.Width), float64(opts.Height)
	proj, err := vecmath.Perspective(opts.FOV, w/h, 0.1, 1000)
	if err != nil {
		return vecmath.Mat4{}, fmt.Errorf("preview: %w", err)
	}
	// Screen y grows downward.
	flip := vecmath.Scale(1, -1, 1)
	return viewing.Chain(vecmath.Viewport(w, h).Mul(flip), proj, cam.Placement(), vecmath.Identity())
}

// triMeshEdges recovers positions and the distinct triangle edges from a
// flat render buffer.
func triMeshEdges(m *kernel.TriMesh) ([]vecmath.Vec3, [][2]int) {
	positions := make([]vecmath.Vec3, m.VertexCount())
	for i := range positions {
		positions[i] = vecmath.V3(
			float64(m.Vertices[3*i]),
			float64(m.Vertices[3*i+1]),
			float64(m.Vertices[3*i+2]),
		)
	}

	seen := make(map[[2]int]bool)
	var edges [][2]int
	for t := 0; t+2 < len(m.Indices); t += 3 {
		tri := [3]int{int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			if e := [2]int{a, b}; !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return positions, edges
}
