// Package interaction turns pointer movement into camera motion.
package interaction

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"

	"github.com/toxichemicals/GO/holy-portfolio/scene"
	"github.com/toxichemicals/GO/holy-portfolio/tween"
)

const (
	// CameraKey identifies the camera position task in the tween runner.
	CameraKey = "camera.position"
	// Duration of one camera move, in seconds.
	Duration = 0.5
	// Reach scales normalized pointer coordinates into world units.
	Reach = 3
)

// NDC maps a pointer position in window pixels to normalized device
// coordinates: x grows to the right, y grows upwards, both in [-1, 1].
func NDC(x, y float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := x/float64(width)*2 - 1
	ny := -(y/float64(height))*2 + 1
	return float32(nx), float32(ny)
}

// Controller follows the pointer with the camera.
type Controller struct {
	camera *scene.Camera
	runner *tween.Runner
	origin mgl32.Vec3
}

func NewController(camera *scene.Camera, runner *tween.Runner) *Controller {
	return &Controller{camera: camera, runner: runner}
}

// PointerMove retargets the camera at the pointer. The move starts from the
// camera's current position, keeps its depth and replaces any move still in
// flight. Each step re-aims the camera at the origin.
func (c *Controller) PointerMove(x, y float64, width, height int) {
	nx, ny := NDC(x, y, width, height)
	from := c.camera.Position
	to := mgl32.Vec3{nx * Reach, ny * Reach, from.Z()}
	c.runner.Start(CameraKey, tween.Vec3(from, to, Duration, ease.OutQuad, func(p mgl32.Vec3) {
		c.camera.Position = p
		c.camera.LookAt(c.origin)
	}))
}
