package loop

import (
	"math"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toxichemicals/GO/holy-portfolio/scene"
)

func TestTimer(t *testing.T) {
	var tm Timer
	start := time.Unix(1000, 0)

	tm.Update(start)
	assert.Zero(t, tm.Delta())

	tm.Update(start.Add(16 * time.Millisecond))
	assert.InDelta(t, 0.016, tm.Delta(), 1e-9)

	tm.Update(start.Add(50 * time.Millisecond))
	assert.InDelta(t, 0.034, tm.Delta(), 1e-9)
	assert.InDelta(t, 0.05, tm.Elapsed(), 1e-9)

	// A clock going backwards never yields a negative delta.
	tm.Update(start)
	assert.Zero(t, tm.Delta())
}

func TestAdvance(t *testing.T) {
	s := scene.NewScene(colorful.Color{})
	Advance(s, 1)
	assert.InDelta(t, 0.03, s.Rotation.Y(), 1e-7)
	Advance(s, 0.5)
	assert.InDelta(t, 0.045, s.Rotation.Y(), 1e-7)
	Advance(s, 0)
	assert.InDelta(t, 0.045, s.Rotation.Y(), 1e-7)

	s.Rotation[1] = 2*math.Pi - 0.01
	Advance(s, 1)
	assert.InDelta(t, 0.02, s.Rotation.Y(), 1e-5)
	assert.Zero(t, s.Rotation.X())

	Advance(nil, 1)
}

func TestAdvanceTotalIgnoresFrameOrder(t *testing.T) {
	deltas := []float64{0.016, 0.5, 0.033, 0.1, 0.25}
	var sum float64
	for _, d := range deltas {
		sum += d
	}

	forward := scene.NewScene(colorful.Color{})
	for _, d := range deltas {
		Advance(forward, d)
	}
	backward := scene.NewScene(colorful.Color{})
	for i := len(deltas) - 1; i >= 0; i-- {
		Advance(backward, deltas[i])
	}

	assert.InDelta(t, RotationSpeed*sum, forward.Rotation.Y(), 1e-6)
	assert.InDelta(t, RotationSpeed*sum, backward.Rotation.Y(), 1e-6)
	assert.InDelta(t, forward.Rotation.Y(), backward.Rotation.Y(), 1e-6)
}

type fakeWindow struct {
	frames int
	limit  int
	polls  int
	drawn  []float32
}

func (w *fakeWindow) ShouldClose() bool { return w.frames >= w.limit }
func (w *fakeWindow) PollEvents()       { w.polls++ }
func (w *fakeWindow) Draw(s *scene.Scene) {
	w.frames++
	w.drawn = append(w.drawn, s.Rotation.Y())
}

func TestLoopRun(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	s := scene.NewScene(colorful.Color{})
	var deltas []float64
	l := &Loop{
		Scene: s,
		Timer: &Timer{Now: clock},
		Hooks: []Hook{func(d float64) { deltas = append(deltas, d) }},
	}
	w := &fakeWindow{limit: 3}
	l.Run(w)

	assert.Equal(t, 3, w.frames)
	assert.Equal(t, 3, w.polls)
	assert.Equal(t, []float64{0, 1, 1}, deltas)
	require.Len(t, w.drawn, 3)
	assert.InDelta(t, 0, w.drawn[0], 1e-7)
	assert.InDelta(t, 0.03, w.drawn[1], 1e-7)
	assert.InDelta(t, 0.06, w.drawn[2], 1e-7)
}
