// Package kernel defines the polygon mesh shared by the surface packages,
// the flat triangle buffers handed to a renderer, and the abstract solid
// modeling interface. Solid backends (see pkg/kernel/sdfx) implement Kernel
// and hand their results back as polygon meshes, so solids can be refined
// like any other mesh.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid modeling interface. All primitives are
// centered on the origin.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToMesh converts s to a closed, shared-vertex polygon mesh.
	ToMesh(s Solid) (*Mesh, error)
}
