// Package geometry builds the triangle meshes drawn by the portfolio scene:
// the shared cube and the extruded text labels.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle mesh with per-vertex normals.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max mgl32.Vec3
}

// EmptyBox returns a box that contains nothing; Expand grows it.
func EmptyBox() Box3 {
	inf := float32(math.Inf(1))
	return Box3{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Box3) IsEmpty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z()
}

// Expand grows b to contain p.
func (b Box3) Expand(p mgl32.Vec3) Box3 {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Center returns the midpoint of the box.
func (b Box3) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis.
func (b Box3) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Positions) }

// BoundingBox recomputes the bounds of every vertex.
func (g *Geometry) BoundingBox() Box3 {
	b := EmptyBox()
	for _, p := range g.Positions {
		b = b.Expand(p)
	}
	return b
}

// Translate moves every vertex by d.
func (g *Geometry) Translate(d mgl32.Vec3) {
	for i := range g.Positions {
		g.Positions[i] = g.Positions[i].Add(d)
	}
}

// Center moves the geometry so the center of its bounding box sits at the
// local origin, and returns the translation that was applied.
func (g *Geometry) Center() mgl32.Vec3 {
	offset := g.BoundingBox().Center().Mul(-1)
	g.Translate(offset)
	return offset
}

// Interleaved returns position and normal packed as 6 floats per vertex,
// the layout the core matcap program expects.
func (g *Geometry) Interleaved() []float32 {
	out := make([]float32, 0, len(g.Positions)*6)
	for i, p := range g.Positions {
		n := g.Normals[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}

// addTriangle appends a flat-shaded triangle. The normal follows the
// counter-clockwise winding of a, b, c; fallback is used for degenerate input.
func (g *Geometry) addTriangle(a, b, c, fallback mgl32.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 1e-12 {
		n = n.Mul(1 / l)
	} else {
		n = fallback
	}
	base := uint32(len(g.Positions))
	g.Positions = append(g.Positions, a, b, c)
	g.Normals = append(g.Normals, n, n, n)
	g.Indices = append(g.Indices, base, base+1, base+2)
}
