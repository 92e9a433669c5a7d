package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNoFont is returned when a label is requested without a font.
var ErrNoFont = errors.New("geometry: no font")

// contour is a closed polyline in label space (y up). The closing edge from
// the last point back to the first is implicit.
type contour []mgl64.Vec2

// signedArea is positive for counter-clockwise contours.
func (c contour) signedArea() float64 {
	var a float64
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	return a / 2
}

func (c contour) reversed() contour {
	out := make(contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// contains reports whether p lies inside c (even-odd rule).
func (c contour) contains(p mgl64.Vec2) bool {
	inside := false
	for i, j := 0, len(c)-1; i < len(c); j, i = i, i+1 {
		a, b := c[i], c[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) {
			x := (b.X()-a.X())*(p.Y()-a.Y())/(b.Y()-a.Y()) + a.X()
			if p.X() < x {
				inside = !inside
			}
		}
	}
	return inside
}

// outliner flattens glyph outlines from one font into contours.
type outliner struct {
	font     *sfnt.Font
	buf      sfnt.Buffer
	ppem     fixed.Int26_6
	scale    float64
	segments int
}

func newOutliner(f *sfnt.Font, size float64, curveSegments int) *outliner {
	upem := float64(f.UnitsPerEm())
	if upem <= 0 {
		upem = 1000
	}
	// Load glyphs at one pixel per font unit and scale afterwards so the
	// em square maps to size.
	return &outliner{
		font:     f,
		ppem:     fixed.I(int(upem)),
		scale:    size / upem,
		segments: max(curveSegments, 1),
	}
}

// text returns the contours for every glyph of s laid out on one line
// starting at the origin.
func (o *outliner) text(s string) ([]contour, error) {
	var (
		out  []contour
		penX float64
	)
	for _, r := range s {
		idx, err := o.font.GlyphIndex(&o.buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyph index for %q: %w", r, err)
		}
		if idx == 0 {
			// Missing glyph: advance like a space.
			penX += o.advance(idx)
			continue
		}
		segs, err := o.font.LoadGlyph(&o.buf, idx, o.ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("load glyph %q: %w", r, err)
		}
		out = append(out, o.flatten(segs, penX)...)
		penX += o.advance(idx)
	}
	return out, nil
}

func (o *outliner) advance(idx sfnt.GlyphIndex) float64 {
	adv, err := o.font.GlyphAdvance(&o.buf, idx, o.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / 64 * o.scale
}

// point converts a glyph coordinate (y down, 26.6) into label space (y up).
func (o *outliner) point(p fixed.Point26_6, penX float64) mgl64.Vec2 {
	return mgl64.Vec2{
		penX + float64(p.X)/64*o.scale,
		-float64(p.Y) / 64 * o.scale,
	}
}

func (o *outliner) flatten(segs sfnt.Segments, penX float64) []contour {
	var (
		out []contour
		cur contour
	)
	flush := func() {
		cur = cleanContour(cur)
		if len(cur) >= 3 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			cur = append(cur, o.point(seg.Args[0], penX))
		case sfnt.SegmentOpLineTo:
			cur = append(cur, o.point(seg.Args[0], penX))
		case sfnt.SegmentOpQuadTo:
			if len(cur) == 0 {
				continue
			}
			p0 := cur[len(cur)-1]
			p1 := o.point(seg.Args[0], penX)
			p2 := o.point(seg.Args[1], penX)
			for i := 1; i <= o.segments; i++ {
				t := float64(i) / float64(o.segments)
				u := 1 - t
				cur = append(cur, p0.Mul(u*u).Add(p1.Mul(2*u*t)).Add(p2.Mul(t*t)))
			}
		case sfnt.SegmentOpCubeTo:
			if len(cur) == 0 {
				continue
			}
			p0 := cur[len(cur)-1]
			p1 := o.point(seg.Args[0], penX)
			p2 := o.point(seg.Args[1], penX)
			p3 := o.point(seg.Args[2], penX)
			for i := 1; i <= o.segments; i++ {
				t := float64(i) / float64(o.segments)
				u := 1 - t
				cur = append(cur, p0.Mul(u*u*u).
					Add(p1.Mul(3*u*u*t)).
					Add(p2.Mul(3*u*t*t)).
					Add(p3.Mul(t*t*t)))
			}
		}
	}
	flush()
	return out
}

// cleanContour drops consecutive duplicates, including a closing point that
// repeats the first one.
func cleanContour(c contour) contour {
	const eps = 1e-9
	out := c[:0]
	for _, p := range c {
		if len(out) > 0 && p.ApproxEqualThreshold(out[len(out)-1], eps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].ApproxEqualThreshold(out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	return out
}
