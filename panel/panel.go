// Package panel is the immediate-mode control panel drawn over the scene.
// It owns layout, hit testing and widget state; core renders the DrawList
// it returns each frame.
package panel

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Layout in window pixels. CharWidth and TextHeight match the 7x13 bitmap
// face core draws text with.
const (
	Width      float32 = 245
	Padding    float32 = 6
	RowHeight  float32 = 22
	Spacing    float32 = 2
	LabelWidth float32 = 80
	CharWidth  float32 = 7
	TextHeight float32 = 13
)

var (
	panelColor  = mgl32.Vec4{0.1, 0.1, 0.1, 0.85}
	folderColor = mgl32.Vec4{0, 0, 0, 0.9}
	buttonColor = mgl32.Vec4{0.2, 0.2, 0.2, 1}
	hoverColor  = mgl32.Vec4{0.3, 0.3, 0.3, 1}
	pressColor  = mgl32.Vec4{0.12, 0.12, 0.12, 1}
	selectColor = mgl32.Vec4{0.18, 0.35, 0.55, 1}
	trackColor  = mgl32.Vec4{0.3, 0.3, 0.3, 1}
	knobColor   = mgl32.Vec4{0.6, 0.6, 0.6, 1}
	textColor   = mgl32.Vec4{0.92, 0.92, 0.92, 1}
	dimColor    = mgl32.Vec4{0.65, 0.65, 0.65, 1}
	darkText    = mgl32.Vec4{0.05, 0.05, 0.05, 1}
)

// Input is the pointer state for one frame.
type Input struct {
	X, Y float32
	// Pressed and Released report left button transitions since the last
	// frame; Down is the current button state.
	Pressed, Down, Released bool
}

// Options configures a new panel.
type Options struct {
	Background string // "#rrggbb"
	Textures   []string
	Selected   string
	OnColor    func(style string)
	OnTexture  func(name string)
}

// Panel holds widget state between frames.
type Panel struct {
	opts     Options
	hue      float64
	sat      float64
	val      float64
	hex      string
	selected string

	sceneOpen   bool
	textureOpen bool
	pickerOpen  bool
	listOpen    bool

	in     Input
	active string // control holding the pointer, "" if none
	list   *DrawList
	x      float32
	cursor float32
	bounds Command
}

func New(opts Options) *Panel {
	p := &Panel{
		opts:        opts,
		selected:    opts.Selected,
		sceneOpen:   true,
		textureOpen: true,
	}
	c, err := colorful.Hex(opts.Background)
	if err != nil {
		c = colorful.Color{}
	}
	p.hex = c.Clamped().Hex()
	p.hue, p.sat, p.val = c.Hsv()
	if p.selected == "" && len(opts.Textures) > 0 {
		p.selected = opts.Textures[0]
	}
	return p
}

// Color returns the picked background as "#rrggbb".
func (p *Panel) Color() string { return p.hex }

// Selected returns the picked texture name.
func (p *Panel) Selected() string { return p.selected }

// Contains reports whether the last frame's panel covers (x, y).
func (p *Panel) Contains(x, y float32) bool { return p.bounds.Contains(x, y) }

// Dragging reports whether a control holds the pointer.
func (p *Panel) Dragging() bool { return p.active != "" }

// Frame lays the panel out against the right edge of the viewport, applies
// the input and returns what to draw.
func (p *Panel) Frame(in Input, viewportWidth float32) *DrawList {
	p.in = in
	p.list = &DrawList{}
	p.x = max(viewportWidth-Width-Padding, Padding)
	top := Padding
	p.cursor = top + Padding

	if p.folder("folder.scene", "Scene", &p.sceneOpen) {
		p.colorControl()
	}
	if p.folder("folder.texture", "Texture", &p.textureOpen) {
		p.textureControl()
	}

	p.bounds = Command{Kind: KindRect, ID: "panel", X: p.x, Y: top, W: Width, H: p.cursor - top + Padding - Spacing, Color: panelColor}
	p.list.Commands = slices.Insert(p.list.Commands, 0, p.bounds)

	if in.Released || !in.Down {
		p.active = ""
	}
	return p.list
}

func (p *Panel) innerX() float32     { return p.x + Padding }
func (p *Panel) innerWidth() float32 { return Width - 2*Padding }

func (p *Panel) isMouseOver(x, y, w, h float32) bool {
	return p.in.X >= x && p.in.X <= x+w && p.in.Y >= y && p.in.Y <= y+h
}

// grab gives the pointer to id when the button goes down over it.
func (p *Panel) grab(id string, over bool) {
	if over && p.in.Pressed && p.active == "" {
		p.active = id
	}
}

// button draws a clickable box and reports a click. A click needs the press
// and the release over the same control.
func (p *Panel) button(id string, x, y, w, h float32, fill mgl32.Vec4) bool {
	over := p.isMouseOver(x, y, w, h)
	p.grab(id, over)
	switch {
	case p.active == id && over:
		fill = pressColor
	case over && p.active == "":
		fill = hoverColor
	}
	p.list.rect(id, x, y, w, h, fill)
	return over && p.in.Released && p.active == id
}

// slider draws a horizontal track for value in [0, 1] and reports whether
// dragging changed it.
func (p *Panel) slider(id string, x, y, w, h float32, value *float64) bool {
	over := p.isMouseOver(x, y, w, h)
	p.grab(id, over)
	changed := false
	if p.active == id && w > 0 {
		v := float64(mgl32.Clamp((p.in.X-x)/w, 0, 1))
		if v != *value {
			*value = v
			changed = true
		}
	}
	p.list.rect(id, x, y, w, h, trackColor)
	knob := h / 2
	kx := x + float32(*value)*w - knob/2
	kx = mgl32.Clamp(kx, x, x+w-knob)
	col := knobColor
	if over || p.active == id {
		col = textColor
	}
	p.list.rect(id+".knob", kx, y, knob, h, col)
	return changed
}

func (p *Panel) row() (y float32) {
	y = p.cursor
	p.cursor += RowHeight + Spacing
	return y
}

func (p *Panel) label(x, y float32, s string, col mgl32.Vec4) {
	p.list.text(x, y+(RowHeight-TextHeight)/2, s, col)
}

// folder draws a collapsible header and reports whether it is open.
func (p *Panel) folder(id, title string, open *bool) bool {
	y := p.row()
	if p.button(id, p.x, y, Width, RowHeight, folderColor) {
		*open = !*open
	}
	marker := "- "
	if !*open {
		marker = "+ "
	}
	p.label(p.innerX(), y, marker+title, textColor)
	return *open
}

func (p *Panel) colorControl() {
	x, w := p.innerX(), p.innerWidth()
	y := p.row()
	p.label(x, y, "color", textColor)

	c, _ := colorful.Hex(p.hex)
	fill := mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1}
	sx, sw := x+LabelWidth, w-LabelWidth
	over := p.isMouseOver(sx, y, sw, RowHeight)
	p.grab("color.swatch", over)
	p.list.rect("color.swatch", sx, y, sw, RowHeight, fill)
	if over && p.in.Released && p.active == "color.swatch" {
		p.pickerOpen = !p.pickerOpen
	}
	ink := textColor
	if c.R*0.299+c.G*0.587+c.B*0.114 > 0.6 {
		ink = darkText
	}
	p.label(sx+Padding, y, p.hex, ink)

	if !p.pickerOpen {
		return
	}
	changed := false
	channels := []struct {
		id, name string
		value    *float64
	}{
		{"color.h", "H", &p.hue},
		{"color.s", "S", &p.sat},
		{"color.v", "V", &p.val},
	}
	for _, ch := range channels {
		y := p.row()
		p.label(sx-2*CharWidth, y, ch.name, dimColor)
		if ch.id == "color.h" {
			h := p.hue / 360
			if p.slider(ch.id, sx, y, sw, RowHeight, &h) {
				p.hue = min(h*360, 359.999)
				changed = true
			}
			continue
		}
		if p.slider(ch.id, sx, y, sw, RowHeight, ch.value) {
			changed = true
		}
	}
	if !changed {
		return
	}
	hex := colorful.Hsv(p.hue, p.sat, p.val).Clamped().Hex()
	if hex == p.hex {
		return
	}
	p.hex = hex
	if p.opts.OnColor != nil {
		p.opts.OnColor(hex)
	}
}

func (p *Panel) textureControl() {
	x, w := p.innerX(), p.innerWidth()
	y := p.row()
	p.label(x, y, "texture", textColor)
	sx, sw := x+LabelWidth, w-LabelWidth
	if p.button("texture.select", sx, y, sw, RowHeight, buttonColor) {
		p.listOpen = !p.listOpen
	}
	p.label(sx+Padding, y, p.selected, textColor)

	if !p.listOpen {
		return
	}
	for _, name := range p.opts.Textures {
		y := p.row()
		fill := buttonColor
		if name == p.selected {
			fill = selectColor
		}
		if p.button("texture.item."+name, sx, y, sw, RowHeight, fill) {
			p.selected = name
			p.listOpen = false
			if p.opts.OnTexture != nil {
				p.opts.OnTexture(name)
			}
		}
		p.label(sx+Padding, y, name, textColor)
	}
}
