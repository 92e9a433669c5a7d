package core

import (
	"fmt"
	"time"
)

// fpsCounter averages frames over one-second windows.
type fpsCounter struct {
	frames int
	since  time.Time
}

// tick counts a frame and, once a second has passed, returns the rate.
func (f *fpsCounter) tick(now time.Time) (float64, bool) {
	if f.since.IsZero() {
		f.since = now
	}
	f.frames++
	elapsed := now.Sub(f.since)
	if elapsed < time.Second {
		return 0, false
	}
	fps := float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.since = now
	return fps, true
}

func fpsTitle(title string, fps float64) string {
	return fmt.Sprintf("%s | FPS: %.2f", title, fps)
}

// pixelRatio is the framebuffer to window size ratio, 1 when unknown.
func pixelRatio(framebufferWidth, windowWidth int) float32 {
	if framebufferWidth <= 0 || windowWidth <= 0 {
		return 1
	}
	return float32(framebufferWidth) / float32(windowWidth)
}
