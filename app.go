package main

import (
	"log"

	"github.com/chazu/surfkit/pkg/engine"
	"github.com/chazu/surfkit/pkg/scene"
	"github.com/chazu/surfkit/pkg/tessellate"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// colorPalette is a default palette used to assign distinct colors to items.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App evaluates scene scripts into JSON-ready render buffers.
type App struct {
	engine *engine.Engine
}

// MeshData is the JSON-serializable triangle mesh format.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// WireData is a JSON-serializable line list, used for control cages.
type WireData struct {
	Name     string       `json:"name"`
	Vertices [][3]float64 `json:"vertices"`
	Edges    [][2]int     `json:"edges"`
	Color    string       `json:"color"`
}

// TangentData is one tangent handle as a screen-space segment.
type TangentData struct {
	Index int        `json:"index"`
	From  [2]float64 `json:"from"`
	To    [2]float64 `json:"to"`
}

// CurveData is a sampled curve with its control polygon.
type CurveData struct {
	Name     string        `json:"name"`
	Control  [][2]float64  `json:"control"`
	Points   [][2]float64  `json:"points"`
	Tangents []TangentData `json:"tangents"`
	Color    string        `json:"color"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Item    string `json:"item,omitempty"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Wires    []WireData      `json:"wires"`
	Curves   []CurveData     `json:"curves"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine backed by the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// Evaluate takes script source and returns render buffers plus errors.
func (a *App) Evaluate(source string) EvalResult {
	result := newEvalResult()
	out := a.build(source, &result)
	if out == nil {
		return result
	}

	// Colors follow draw order.
	color := 0
	next := func() string {
		c := colorPalette[color%len(colorPalette)]
		color++
		return c
	}
	for _, m := range out.Meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    next(),
		})
	}
	for _, w := range out.Wires {
		wd := WireData{Name: w.Name, Edges: w.Edges, Color: next()}
		for _, v := range w.Vertices {
			wd.Vertices = append(wd.Vertices, [3]float64{v.X, v.Y, v.Z})
		}
		result.Wires = append(result.Wires, wd)
	}
	for _, p := range out.Polylines {
		cd := CurveData{
			Name:     p.Name,
			Control:  points2(p.Control),
			Points:   points2(p.Points),
			Tangents: []TangentData{},
			Color:    next(),
		}
		for _, t := range p.Tangents {
			cd.Tangents = append(cd.Tangents, TangentData{
				Index: t.Index,
				From:  [2]float64{t.Origin.X, t.Origin.Y},
				To:    [2]float64{t.End.X, t.End.Y},
			})
		}
		result.Curves = append(result.Curves, cd)
	}

	return result
}

func newEvalResult() EvalResult {
	return EvalResult{
		Meshes:   []MeshData{},
		Wires:    []WireData{},
		Curves:   []CurveData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

// build runs the script, validates the scene and tessellates it. Findings
// are recorded in result; the output is nil when an error blocks rendering.
func (a *App) build(source string, result *EvalResult) *tessellate.Output {
	// Step 1: Evaluate the script into a scene.
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return nil
	}

	// Step 2: Convert eval errors.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return nil
	}

	// Step 3: Validate. Errors block tessellation, warnings do not.
	vr := scene.ValidateAll(s)
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Item:    itemLabel(s, w.ItemID),
			Message: w.Message,
		})
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Item:    itemLabel(s, e.ItemID),
				Message: e.Message,
			})
		}
		return nil
	}

	// Step 4: Tessellate the scene into render buffers.
	out, err := tessellate.Build(s)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return nil
	}
	return out
}

func points2(pts []vecmath.Vec2) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// itemLabel names the item behind a validation finding, falling back to
// its short ID.
func itemLabel(s *scene.Scene, id scene.ItemID) string {
	if id.IsZero() {
		return ""
	}
	if it := s.Get(id); it != nil && it.Name != "" {
		return it.Name
	}
	return id.Short()
}
