package geometry

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// TextStyle controls label extrusion. Lengths are in world units.
type TextStyle struct {
	Size          float64
	Depth         float64
	CurveSegments int

	BevelEnabled   bool
	BevelThickness float64
	BevelSize      float64
	BevelOffset    float64
	BevelSegments  int
}

// DefaultTextStyle is the styling used for both portfolio labels.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		Size:           0.5,
		Depth:          0.2,
		CurveSegments:  5,
		BevelEnabled:   true,
		BevelThickness: 0.03,
		BevelSize:      0.02,
		BevelOffset:    0,
		BevelSegments:  5,
	}
}

// NewText builds an extruded, beveled label for s. The baseline starts at
// the origin and the text runs along +x with depth along +z; call Center to
// put the bounding box center on the origin instead.
func NewText(f *sfnt.Font, s string, style TextStyle) (*Geometry, error) {
	if f == nil {
		return nil, ErrNoFont
	}
	o := newOutliner(f, style.Size, style.CurveSegments)
	contours, err := o.text(s)
	if err != nil {
		return nil, fmt.Errorf("failed to outline %q: %w", s, err)
	}

	g := &Geometry{}
	for _, sh := range buildShapes(contours) {
		if err := extrude(g, sh, style); err != nil {
			return nil, fmt.Errorf("failed to extrude %q: %w", s, err)
		}
	}
	return g, nil
}
