package panel

import "github.com/go-gl/mathgl/mgl32"

// Kind selects how a Command is drawn.
type Kind int

const (
	KindRect Kind = iota
	KindText
)

// Command is one primitive of the panel in window pixels, origin top left.
// Text commands place the top-left corner of the first glyph cell at X, Y.
type Command struct {
	Kind  Kind
	ID    string // control that emitted the rect, if any
	X, Y  float32
	W, H  float32
	Color mgl32.Vec4
	Text  string
}

// Contains reports whether (x, y) is inside the command's rectangle.
func (c Command) Contains(x, y float32) bool {
	return x >= c.X && x <= c.X+c.W && y >= c.Y && y <= c.Y+c.H
}

// DrawList is the output of one panel frame, in painter's order.
type DrawList struct {
	Commands []Command
}

func (d *DrawList) rect(id string, x, y, w, h float32, color mgl32.Vec4) {
	d.Commands = append(d.Commands, Command{Kind: KindRect, ID: id, X: x, Y: y, W: w, H: h, Color: color})
}

func (d *DrawList) text(x, y float32, s string, color mgl32.Vec4) {
	d.Commands = append(d.Commands, Command{
		Kind: KindText, X: x, Y: y,
		W: float32(len(s)) * CharWidth, H: TextHeight,
		Color: color, Text: s,
	})
}

// Find returns the first rect emitted by the control id.
func (d *DrawList) Find(id string) (Command, bool) {
	for _, c := range d.Commands {
		if c.Kind == KindRect && c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// Texts returns every string drawn, in order.
func (d *DrawList) Texts() []string {
	var out []string
	for _, c := range d.Commands {
		if c.Kind == KindText {
			out = append(out, c.Text)
		}
	}
	return out
}
