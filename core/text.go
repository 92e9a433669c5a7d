package core

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// uiFace is the bitmap face panel layout is measured against.
var uiFace = basicfont.Face7x13

// rasterizeText renders s in white onto a transparent image one glyph cell
// high. The shader tints it with the command color.
func rasterizeText(s string) *image.RGBA {
	width := font.MeasureString(uiFace, s).Ceil()
	height := uiFace.Height
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: uiFace,
		Dot:  fixed.P(0, uiFace.Ascent),
	}
	d.DrawString(s)
	return img
}

type textTexture struct {
	id            uint32
	width, height int
}

type textEntry struct {
	textTexture
	used bool
}

// textCache keeps one texture per string drawn by the panel. Entries not
// drawn since the previous sweep are freed, so strings that change every
// frame, like the hex readout during a slider drag, do not pile up.
type textCache struct {
	entries map[string]*textEntry
	upload  func(*image.RGBA) uint32
	free    func(uint32)
}

func newTextCache(upload func(*image.RGBA) uint32, free func(uint32)) *textCache {
	return &textCache{
		entries: make(map[string]*textEntry),
		upload:  upload,
		free:    free,
	}
}

// get returns the texture for s, uploading it on first use, and marks it
// as drawn this frame.
func (tc *textCache) get(s string) textTexture {
	e, ok := tc.entries[s]
	if !ok {
		img := rasterizeText(s)
		e = &textEntry{textTexture: textTexture{
			id:     tc.upload(img),
			width:  img.Bounds().Dx(),
			height: img.Bounds().Dy(),
		}}
		tc.entries[s] = e
	}
	e.used = true
	return e.textTexture
}

// sweep frees every entry not drawn since the last sweep.
func (tc *textCache) sweep() {
	for s, e := range tc.entries {
		if !e.used {
			tc.free(e.id)
			delete(tc.entries, s)
			continue
		}
		e.used = false
	}
}

func (tc *textCache) clear() {
	for s, e := range tc.entries {
		tc.free(e.id)
		delete(tc.entries, s)
	}
}

func (tc *textCache) len() int { return len(tc.entries) }
