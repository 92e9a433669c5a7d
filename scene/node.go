package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/toxichemicals/GO/holy-portfolio/assets"
	"github.com/toxichemicals/GO/holy-portfolio/geometry"
)

// Transform places a node relative to its parent. Rotation holds Euler
// angles in radians, applied in XYZ order.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Identity returns a transform that leaves its children where they are.
func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns T * Rx * Ry * Rz * S.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Quat returns the rotation part as a quaternion.
func (t Transform) Quat() mgl32.Quat {
	return mgl32.AnglesToQuat(t.Rotation.X(), t.Rotation.Y(), t.Rotation.Z(), mgl32.XYZ)
}

// Material shades meshes with a matcap texture. A material is shared by
// reference, so swapping Texture restyles every mesh using it.
type Material struct {
	Name    string
	Texture *assets.Texture
}

// Mesh draws one geometry with one material.
type Mesh struct {
	Name     string
	Geometry *geometry.Geometry
	Material *Material
	Transform
}

// Scene is the root of the portfolio graph. Its own transform is applied to
// every mesh; the render loop spins it around y.
type Scene struct {
	Transform
	Background colorful.Color
	Meshes     []*Mesh
}

func NewScene(background colorful.Color) *Scene {
	return &Scene{Transform: Identity(), Background: background}
}

func (s *Scene) Add(m ...*Mesh) {
	s.Meshes = append(s.Meshes, m...)
}

// World returns the model matrix of m including the scene rotation.
func (s *Scene) World(m *Mesh) mgl32.Mat4 {
	return s.Matrix().Mul4(m.Matrix())
}
