package panel

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewport = 1280

var names = []string{"Matcap 1", "Matcap 2", "Matcap 3", "Matcap 4", "Matcap 5", "Matcap 6", "Matcap 7", "Matcap 8"}

type recorder struct {
	colors   []string
	textures []string
}

func newPanel(r *recorder) *Panel {
	return New(Options{
		Background: "#b8bec6",
		Textures:   names,
		Selected:   "Matcap 3",
		OnColor:    func(s string) { r.colors = append(r.colors, s) },
		OnTexture:  func(s string) { r.textures = append(r.textures, s) },
	})
}

func center(t *testing.T, d *DrawList, id string) (float32, float32) {
	t.Helper()
	c, ok := d.Find(id)
	require.True(t, ok, "no control %q", id)
	return c.X + c.W/2, c.Y + c.H/2
}

// click presses and releases over id, one frame each, and returns the list
// drawn on the release frame.
func click(t *testing.T, p *Panel, id string) *DrawList {
	t.Helper()
	x, y := center(t, p.Frame(Input{X: -1, Y: -1}, viewport), id)
	p.Frame(Input{X: x, Y: y, Pressed: true, Down: true}, viewport)
	return p.Frame(Input{X: x, Y: y, Released: true}, viewport)
}

func TestDefaults(t *testing.T) {
	p := newPanel(&recorder{})
	d := p.Frame(Input{}, viewport)

	assert.Equal(t, "#b8bec6", p.Color())
	assert.Equal(t, "Matcap 3", p.Selected())
	texts := d.Texts()
	assert.Contains(t, texts, "- Scene")
	assert.Contains(t, texts, "- Texture")
	assert.Contains(t, texts, "color")
	assert.Contains(t, texts, "texture")
	assert.Contains(t, texts, "#b8bec6")
	assert.Contains(t, texts, "Matcap 3")
	assert.NotContains(t, texts, "Matcap 1", "list starts closed")

	bg := d.Commands[0]
	assert.Equal(t, "panel", bg.ID)
	assert.Equal(t, float32(viewport)-Width-Padding, bg.X)
	assert.True(t, p.Contains(bg.X+1, bg.Y+1))
	assert.False(t, p.Contains(10, 10))
}

func TestPickTexture(t *testing.T) {
	r := &recorder{}
	p := newPanel(r)

	d := click(t, p, "texture.select")
	assert.Contains(t, d.Texts(), "Matcap 1")
	require.Empty(t, r.textures)

	click(t, p, "texture.item.Matcap 6")
	assert.Equal(t, []string{"Matcap 6"}, r.textures)
	assert.Equal(t, "Matcap 6", p.Selected())

	d = p.Frame(Input{}, viewport)
	assert.NotContains(t, d.Texts(), "Matcap 1", "list closes after a pick")
	assert.Contains(t, d.Texts(), "Matcap 6")
}

func TestReleaseElsewhereIsNoClick(t *testing.T) {
	r := &recorder{}
	p := newPanel(r)
	x, y := center(t, p.Frame(Input{}, viewport), "texture.select")

	p.Frame(Input{X: x, Y: y, Pressed: true, Down: true}, viewport)
	d := p.Frame(Input{X: 5, Y: 5, Released: true}, viewport)
	assert.NotContains(t, d.Texts(), "Matcap 1")

	// Pressing outside and releasing over the control does nothing either.
	p.Frame(Input{X: 5, Y: 5, Pressed: true, Down: true}, viewport)
	p.Frame(Input{X: x, Y: y, Down: true}, viewport)
	d = p.Frame(Input{X: x, Y: y, Released: true}, viewport)
	assert.NotContains(t, d.Texts(), "Matcap 1")
	assert.False(t, p.Dragging())
}

func TestSameFrameClick(t *testing.T) {
	p := newPanel(&recorder{})
	x, y := center(t, p.Frame(Input{}, viewport), "texture.select")
	p.Frame(Input{X: x, Y: y, Pressed: true, Released: true}, viewport)
	assert.Contains(t, p.Frame(Input{}, viewport).Texts(), "Matcap 1")
}

func TestColorPicker(t *testing.T) {
	r := &recorder{}
	p := newPanel(r)

	d := click(t, p, "color.swatch")
	track, ok := d.Find("color.v")
	require.True(t, ok, "picker opens on swatch click")

	// Drag value to zero: black.
	y := track.Y + track.H/2
	p.Frame(Input{X: track.X + 1, Y: y, Pressed: true, Down: true}, viewport)
	assert.True(t, p.Dragging())
	p.Frame(Input{X: track.X - 50, Y: y, Down: true}, viewport)
	p.Frame(Input{X: track.X - 50, Y: y, Released: true}, viewport)
	assert.False(t, p.Dragging())

	require.NotEmpty(t, r.colors)
	assert.Equal(t, "#000000", r.colors[len(r.colors)-1])
	assert.Equal(t, "#000000", p.Color())

	// Full value and zero saturation: white.
	d = p.Frame(Input{}, viewport)
	vTrack, _ := d.Find("color.v")
	sTrack, _ := d.Find("color.s")
	p.Frame(Input{X: vTrack.X + vTrack.W, Y: vTrack.Y + 1, Pressed: true, Down: true}, viewport)
	p.Frame(Input{X: vTrack.X + vTrack.W, Y: vTrack.Y + 1, Released: true}, viewport)
	p.Frame(Input{X: sTrack.X, Y: sTrack.Y + 1, Pressed: true, Down: true}, viewport)
	p.Frame(Input{X: sTrack.X, Y: sTrack.Y + 1, Released: true}, viewport)
	assert.Equal(t, "#ffffff", p.Color())

	for _, c := range r.colors {
		_, err := colorful.Hex(c)
		assert.NoError(t, err)
		assert.Len(t, c, 7)
	}
}

func TestFoldersCollapse(t *testing.T) {
	p := newPanel(&recorder{})
	d := click(t, p, "folder.scene")
	assert.Contains(t, d.Texts(), "+ Scene")

	d = p.Frame(Input{}, viewport)
	_, ok := d.Find("color.swatch")
	assert.False(t, ok)
	_, ok = d.Find("texture.select")
	assert.True(t, ok)

	click(t, p, "folder.texture")
	d = p.Frame(Input{}, viewport)
	_, ok = d.Find("texture.select")
	assert.False(t, ok)
	assert.Contains(t, d.Texts(), "+ Texture")

	click(t, p, "folder.scene")
	_, ok = p.Frame(Input{}, viewport).Find("color.swatch")
	assert.True(t, ok)
}

func TestNarrowViewport(t *testing.T) {
	p := newPanel(&recorder{})
	d := p.Frame(Input{}, 100)
	assert.Equal(t, Padding, d.Commands[0].X)
}
