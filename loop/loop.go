// Package loop drives the per-frame update and draw.
package loop

import (
	"math"
	"time"

	"github.com/toxichemicals/GO/holy-portfolio/scene"
)

// RotationSpeed is how far the scene turns around y per frame, scaled by the
// frame delta in seconds.
const RotationSpeed = 0.03

// Timer measures the time between frames.
type Timer struct {
	// Now is the clock; nil means time.Now.
	Now func() time.Time

	last    time.Time
	delta   float64
	elapsed float64
	started bool
}

// Update records now as the current frame time. The first update has a
// zero delta.
func (t *Timer) Update(now time.Time) {
	if t.started {
		t.delta = max(now.Sub(t.last).Seconds(), 0)
	} else {
		t.delta = 0
		t.started = true
	}
	t.elapsed += t.delta
	t.last = now
}

// Tick updates the timer from its clock.
func (t *Timer) Tick() {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	t.Update(now())
}

// Delta returns the seconds between the two most recent updates.
func (t *Timer) Delta() float64 { return t.delta }

// Elapsed returns the seconds since the first update.
func (t *Timer) Elapsed() float64 { return t.elapsed }

// Advance turns the scene around y by RotationSpeed * delta and wraps the
// angle into [0, 2π). The turn is incremental, so its rate follows the frame
// timing.
func Advance(s *scene.Scene, delta float64) {
	if s == nil {
		return
	}
	y := math.Mod(float64(s.Rotation.Y())+RotationSpeed*delta, 2*math.Pi)
	if y < 0 {
		y += 2 * math.Pi
	}
	s.Rotation[1] = float32(y)
}

// Window is what the loop needs from the platform layer.
type Window interface {
	ShouldClose() bool
	PollEvents()
	Draw(s *scene.Scene)
}

// Hook runs once per frame after events are polled, with the frame delta.
type Hook func(delta float64)

// Loop renders Scene until the window closes.
type Loop struct {
	Scene *scene.Scene
	Timer *Timer
	Hooks []Hook
}

// Run polls, updates and draws exactly once per iteration. There is no fixed
// step and no catch-up.
func (l *Loop) Run(w Window) {
	if l.Timer == nil {
		l.Timer = &Timer{}
	}
	for !w.ShouldClose() {
		w.PollEvents()
		l.Timer.Tick()
		delta := l.Timer.Delta()
		for _, h := range l.Hooks {
			h(delta)
		}
		Advance(l.Scene, delta)
		w.Draw(l.Scene)
	}
}
