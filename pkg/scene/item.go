package scene

import (
	"github.com/chazu/surfkit/pkg/curve"
	"github.com/chazu/surfkit/pkg/kernel"
	"github.com/chazu/surfkit/pkg/patch"
	"github.com/chazu/surfkit/pkg/vecmath"
)

// ItemKind enumerates the kinds of scene items.
type ItemKind int

const (
	ItemMesh  ItemKind = iota // polygon mesh, optionally subdivided
	ItemCage                  // bicubic Bézier control cage
	ItemCurve                 // 2D control polygon drawn as a spline
)

func (k ItemKind) String() string {
	switch k {
	case ItemMesh:
		return "mesh"
	case ItemCage:
		return "cage"
	case ItemCurve:
		return "curve"
	default:
		return "unknown"
	}
}

// Item is a single drawable element of the scene.
type Item struct {
	ID        ItemID       `json:"id"`
	Kind      ItemKind     `json:"kind"`
	Name      string       `json:"name"`
	Transform vecmath.Mat4 `json:"transform"`
	Data      ItemData     `json:"data"`
}

// ItemData is the interface for kind-specific item payloads.
type ItemData interface {
	itemData() // marker method restricting implementations to this package
}

// MeshData holds a base polygon mesh and the number of Catmull-Clark steps
// to apply before drawing.
type MeshData struct {
	Mesh   *kernel.Mesh `json:"mesh"`
	Levels int          `json:"levels"`
}

func (MeshData) itemData() {}

// CageData holds a control cage and the per-patch grid resolution.
type CageData struct {
	Cage       *patch.ControlCage `json:"cage"`
	Resolution int                `json:"resolution"`
	ShowCage   bool               `json:"show_cage"`
}

func (CageData) itemData() {}

// CurveData holds a 2D control polygon and the spline used to draw it.
type CurveData struct {
	Points        []vecmath.Vec2 `json:"points"`
	Spline        curve.Spline   `json:"spline"`
	ShowTangents  bool           `json:"show_tangents"`
	TangentLength float64        `json:"tangent_length"`
}

func (CurveData) itemData() {}
