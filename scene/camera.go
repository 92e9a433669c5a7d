package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera. Target is the point it looks at.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	Fov    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera returns the portfolio camera: 75 degrees vertical field of view,
// three units in front of the origin and looking at it.
func NewCamera(aspect float32) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		Position: mgl32.Vec3{0, 0, 3},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      75,
		Aspect:   aspect,
		Near:     0.1,
		Far:      100,
	}
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// SetAspect updates the aspect ratio from a viewport size. Zero sizes, as
// reported for minimized windows, are ignored.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}
