// Package scene defines the flat list of drawable items produced by script
// evaluation: polygon meshes to subdivide, Bézier control cages to
// tessellate and 2D control polygons to interpolate. Items carry their own
// model transform; there is no parent/child hierarchy.
package scene
