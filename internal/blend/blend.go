// Package blend implements the fixed set of compositing formulas applied
// per fragment after the depth test passes. The alpha mode is the same
// source-over derivation gogpu-gg's 2D Porter-Duff blend used
// (outA = a + dst.a*(1-a), premultiply-then-divide for color), generalized
// here to the rasterizer's Vec4 fragment type.
package blend

import "github.com/gogpu/swrast/geom"

// Mode identifies a blend formula. It mirrors swrast.BlendMode; kept as a
// distinct type so this package has no dependency on the root package.
type Mode uint32

const (
	Off Mode = iota
	Alpha
	PremultipliedAlpha
	Additive
	Screen
)

// Apply composites source s over destination d per and clamps
// the result to [0,1] componentwise (the caller is responsible for the
// subsequent color-format cast).
func Apply(mode Mode, s, d geom.Vec4) geom.Vec4 {
	switch mode {
	case Alpha:
		return alphaBlend(s, d)
	case PremultipliedAlpha:
		return geom.Clamp01(premultipliedBlend(s, d))
	case Additive:
		return geom.Clamp01(additiveBlend(s, d))
	case Screen:
		return geom.Clamp01(screenBlend(s, d))
	default:
		return geom.Clamp01(s)
	}
}

// alphaBlend implements: d' = (s*a + d*m*d.a) / (a + m*d.a), d'.a = a + m*d.a
// where a = s.a, m = 1-a.
func alphaBlend(s, d geom.Vec4) geom.Vec4 {
	a := s.W
	m := 1 - a
	outA := a + m*d.W

	if outA == 0 {
		return geom.Vec4{}
	}

	num := func(sc, dc float64) float64 {
		return sc*a + dc*m*d.W
	}
	return geom.Vec4{
		X: clamp01(num(s.X, d.X) / outA),
		Y: clamp01(num(s.Y, d.Y) / outA),
		Z: clamp01(num(s.Z, d.Z) / outA),
		W: clamp01(outA),
	}
}

// premultipliedBlend implements: d' = s + d*m, m = 1 - s.a.
func premultipliedBlend(s, d geom.Vec4) geom.Vec4 {
	m := 1 - s.W
	return geom.Vec4{
		X: s.X + d.X*m,
		Y: s.Y + d.Y*m,
		Z: s.Z + d.Z*m,
		W: s.W + d.W*m,
	}
}

// additiveBlend implements: d' = d + s*a.
func additiveBlend(s, d geom.Vec4) geom.Vec4 {
	a := s.W
	return geom.Vec4{
		X: d.X + s.X*a,
		Y: d.Y + s.Y*a,
		Z: d.Z + s.Z*a,
		W: d.W + s.W*a,
	}
}

// screenBlend implements: d' = s*a + d*m, m = 1 - a.
func screenBlend(s, d geom.Vec4) geom.Vec4 {
	a := s.W
	m := 1 - a
	return geom.Vec4{
		X: s.X*a + d.X*m,
		Y: s.Y*a + d.Y*m,
		Z: s.Z*a + d.Z*m,
		W: s.W*a + d.W*m,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
