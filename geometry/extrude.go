package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// layer is one ring of the extrusion: every contour pushed outwards by
// offset and placed at depth z.
type layer struct {
	z, offset float64
}

// layers follows the three.js ExtrudeGeometry profile: a quarter-circle
// front bevel, a straight body, and the mirrored back bevel.
func layers(style TextStyle) []layer {
	if !style.BevelEnabled {
		return []layer{{0, 0}, {style.Depth, 0}}
	}
	segs := max(style.BevelSegments, 1)
	var out []layer
	for b := 0; b <= segs; b++ {
		t := float64(b) / float64(segs)
		out = append(out, layer{
			z:      -style.BevelThickness * math.Cos(t*math.Pi/2),
			offset: style.BevelSize*math.Sin(t*math.Pi/2) + style.BevelOffset,
		})
	}
	out = append(out, layer{z: style.Depth, offset: style.BevelSize + style.BevelOffset})
	for b := segs - 1; b >= 0; b-- {
		t := float64(b) / float64(segs)
		out = append(out, layer{
			z:      style.Depth + style.BevelThickness*math.Cos(t*math.Pi/2),
			offset: style.BevelSize*math.Sin(t*math.Pi/2) + style.BevelOffset,
		})
	}
	return out
}

// bevelVectors returns, per vertex, the direction that moves the contour
// edges outward by one unit. For the counter-clockwise outer contour that is
// away from the fill; holes are clockwise so the same rule grows them into
// the hole.
func bevelVectors(c contour) []mgl64.Vec2 {
	n := len(c)
	out := make([]mgl64.Vec2, n)
	for i := range c {
		prev, cur, next := c[(i+n-1)%n], c[i], c[(i+1)%n]
		n1 := edgeNormal(prev, cur)
		n2 := edgeNormal(cur, next)
		sum := n1.Add(n2)
		denom := 1 + n1.Dot(n2)
		if denom < 1e-6 || sum.LenSqr() < 1e-12 {
			out[i] = n1
			continue
		}
		v := sum.Mul(1 / denom)
		// Cap sharp corners like three.js does.
		if l := v.Len(); l > math.Sqrt2 {
			v = v.Mul(math.Sqrt2 / l)
		}
		out[i] = v
	}
	return out
}

// edgeNormal is the unit right-hand normal of a->b.
func edgeNormal(a, b mgl64.Vec2) mgl64.Vec2 {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{d.Y() / l, -d.X() / l}
}

func vec3(p mgl64.Vec2, z float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X()), float32(p.Y()), float32(z)}
}

// extrude appends the caps and side walls of s to g.
func extrude(g *Geometry, s shape, style TextStyle) error {
	cs := s.contours()
	ls := layers(style)

	// Rings per contour per layer.
	rings := make([][][]mgl64.Vec2, len(cs))
	for ci, c := range cs {
		bv := bevelVectors(c)
		rings[ci] = make([][]mgl64.Vec2, len(ls))
		for li, l := range ls {
			ring := make([]mgl64.Vec2, len(c))
			for i, p := range c {
				ring[i] = p.Add(bv[i].Mul(l.offset))
			}
			rings[ci][li] = ring
		}
	}

	tris, err := triangulate(s)
	if err != nil {
		return err
	}
	last := len(ls) - 1
	front, back := ls[0], ls[last]
	for i := 0; i+2 < len(tris); i += 3 {
		// Front cap faces -z, so its winding is reversed.
		g.addTriangle(
			vec3(offsetAt(cs, rings, tris[i], 0), front.z),
			vec3(offsetAt(cs, rings, tris[i+2], 0), front.z),
			vec3(offsetAt(cs, rings, tris[i+1], 0), front.z),
			mgl32.Vec3{0, 0, -1},
		)
		g.addTriangle(
			vec3(offsetAt(cs, rings, tris[i], last), back.z),
			vec3(offsetAt(cs, rings, tris[i+1], last), back.z),
			vec3(offsetAt(cs, rings, tris[i+2], last), back.z),
			mgl32.Vec3{0, 0, 1},
		)
	}

	for ci, c := range cs {
		n := len(c)
		for li := 0; li+1 < len(ls); li++ {
			lo, hi := rings[ci][li], rings[ci][li+1]
			zlo, zhi := ls[li].z, ls[li+1].z
			for i := 0; i < n; i++ {
				j := (i + 1) % n
				a := vec3(lo[i], zlo)
				b := vec3(lo[j], zlo)
				cc := vec3(hi[j], zhi)
				d := vec3(hi[i], zhi)
				en := edgeNormal(c[i], c[j])
				fallback := mgl32.Vec3{float32(en.X()), float32(en.Y()), 0}
				g.addTriangle(a, b, cc, fallback)
				g.addTriangle(a, cc, d, fallback)
			}
		}
	}
	return nil
}

// offsetAt resolves a flat vertex index to its position on layer li.
func offsetAt(cs []contour, rings [][][]mgl64.Vec2, flatIndex, li int) mgl64.Vec2 {
	for ci, c := range cs {
		if flatIndex < len(c) {
			return rings[ci][li][flatIndex]
		}
		flatIndex -= len(c)
	}
	return mgl64.Vec2{}
}
