package core

import (
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toxichemicals/GO/holy-portfolio/panel"
)

func TestRasterizeTextMatchesPanelMetrics(t *testing.T) {
	img := rasterizeText("Matcap 3")
	assert.Equal(t, int(panel.CharWidth)*8, img.Bounds().Dx())
	assert.Equal(t, int(panel.TextHeight), img.Bounds().Dy())

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			lit++
		}
	}
	assert.Positive(t, lit)
}

func TestRasterizeEmptyText(t *testing.T) {
	img := rasterizeText("")
	assert.Equal(t, 1, img.Bounds().Dx())
	for i := 3; i < len(img.Pix); i += 4 {
		assert.Zero(t, img.Pix[i])
	}
}

func TestTextCacheFreesStringsNoLongerDrawn(t *testing.T) {
	var next uint32
	live := map[uint32]bool{}
	tc := newTextCache(
		func(*image.RGBA) uint32 {
			next++
			live[next] = true
			return next
		},
		func(id uint32) { delete(live, id) },
	)

	// A slider drag: the title stays put while the hex readout changes
	// every frame.
	for v := 0; v < 200; v++ {
		title := tc.get("Scene")
		tc.get(fmt.Sprintf("#%02x%02x%02x", v, v, v))
		tc.sweep()
		assert.Equal(t, uint32(1), title.id)
		assert.Equal(t, 2, tc.len())
		assert.Len(t, live, 2)
	}

	tc.sweep()
	assert.Zero(t, tc.len())
	assert.Empty(t, live)
}

func TestTextCacheReusesTextures(t *testing.T) {
	uploads := 0
	tc := newTextCache(func(*image.RGBA) uint32 { uploads++; return uint32(uploads) }, func(uint32) {})
	a := tc.get("Matcap 3")
	tc.sweep()
	b := tc.get("Matcap 3")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, uploads)
	assert.Equal(t, int(panel.CharWidth)*8, a.width)

	freed := 0
	tc.free = func(uint32) { freed++ }
	tc.get("Texture")
	tc.clear()
	assert.Equal(t, 2, freed)
	assert.Zero(t, tc.len())
}
