// Package field scatters the decorative cubes around the labels.
package field

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Count is the number of cubes in the portfolio scene.
	Count = 330
	// CubeSize is the edge length of the shared cube geometry.
	CubeSize = 0.3
	// Spread is the edge of the cube-shaped volume positions are drawn from.
	Spread = 10
)

// Source yields uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// GlobalSource returns the process-wide, randomly seeded source.
func GlobalSource() Source { return globalSource{} }

// Instance is the placement of one cube. Rotation holds Euler angles in
// radians applied in XYZ order.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
}

// Generate draws n instances from src. Every instance consumes six draws in
// the order x, y, z position, x, y rotation, scale; nothing is rejected or
// redrawn, so cubes may overlap each other or the labels.
func Generate(n int, src Source) []Instance {
	if n <= 0 {
		return nil
	}
	if src == nil {
		src = GlobalSource()
	}
	out := make([]Instance, n)
	for i := range out {
		var in Instance
		for axis := 0; axis < 3; axis++ {
			in.Position[axis] = below((src.Float64()-0.5)*Spread, Spread/2)
		}
		in.Rotation[0] = below(src.Float64()*math.Pi, math.Pi)
		in.Rotation[1] = below(src.Float64()*math.Pi, math.Pi)
		in.Scale = below(src.Float64(), 1)
		out[i] = in
	}
	return out
}

// below narrows v to float32 and keeps it strictly under limit, which
// rounding to the nearest float32 would otherwise reach.
func below(v, limit float64) float32 {
	f := float32(v)
	if float64(f) >= limit {
		f = math.Nextafter32(float32(limit), 0)
		if float64(f) >= limit {
			f = math.Nextafter32(f, 0)
		}
	}
	return f
}
