package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rclancey/earcut"
)

// shape is one filled region: a counter-clockwise outer contour and any
// clockwise holes cut from it.
type shape struct {
	outer contour
	holes []contour
}

// contours returns outer followed by holes, the order used for vertex
// indexing by triangulate and extrude.
func (s shape) contours() []contour {
	return append([]contour{s.outer}, s.holes...)
}

// buildShapes groups glyph contours into shapes. A contour nested inside an
// odd number of others is a hole of the innermost outer contour around it.
// Orientation is normalized so it no longer depends on the font's winding.
func buildShapes(cs []contour) []shape {
	type info struct {
		c     contour
		area  float64
		depth int
	}
	infos := make([]info, len(cs))
	for i, c := range cs {
		infos[i] = info{c: c, area: math.Abs(c.signedArea())}
	}
	for i := range infos {
		for j := range infos {
			if i != j && infos[j].area > infos[i].area && infos[j].c.contains(infos[i].c[0]) {
				infos[i].depth++
			}
		}
	}

	var shapes []shape
	outerOf := make(map[int]int)
	for i, in := range infos {
		if in.depth%2 != 0 || in.area == 0 {
			continue
		}
		c := in.c
		if c.signedArea() < 0 {
			c = c.reversed()
		}
		outerOf[i] = len(shapes)
		shapes = append(shapes, shape{outer: c})
	}
	for _, in := range infos {
		if in.depth%2 == 0 || in.area == 0 {
			continue
		}
		// Innermost enclosing outer contour.
		best, bestArea := -1, math.Inf(1)
		for j, s := range outerOf {
			if infos[j].area > in.area && infos[j].area < bestArea && infos[j].c.contains(in.c[0]) {
				best, bestArea = s, infos[j].area
			}
		}
		if best < 0 {
			continue
		}
		c := in.c
		if c.signedArea() > 0 {
			c = c.reversed()
		}
		shapes[best].holes = append(shapes[best].holes, c)
	}
	return shapes
}

// triangulate returns triangle indices into the concatenation of
// s.contours(), counter-clockwise in label space. Zero-area triangles are
// dropped.
func triangulate(s shape) ([]int, error) {
	var (
		points []mgl64.Vec2
		data   []float64
		holes  []int
	)
	for i, c := range s.contours() {
		if i > 0 {
			holes = append(holes, len(points))
		}
		for _, p := range c {
			points = append(points, p)
			data = append(data, p.X(), p.Y())
		}
	}

	idx, err := earcut.Earcut(data, holes, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to triangulate shape: %w", err)
	}
	tris := make([]int, 0, len(idx))
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		switch x := cross2(points[a], points[b], points[c]); {
		case x > 0:
			tris = append(tris, a, b, c)
		case x < 0:
			tris = append(tris, a, c, b)
		}
	}
	return tris, nil
}

func cross2(o, a, b mgl64.Vec2) float64 {
	return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
}
