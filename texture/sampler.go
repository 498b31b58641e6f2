package texture

import (
	"math"

	"github.com/gogpu/swrast/geom"
)

// WrapMode controls how out-of-[0,1] texture coordinates are handled,
// per the fixed-function contract.
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapClamp
	WrapEdge
	WrapBorder
)

// FilterMode selects nearest-neighbor or bilinear sampling.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Sampler reads a View with a configured wrap mode, filter, and (for
// WrapBorder) border color.
type Sampler struct {
	Wrap WrapMode
	Filter FilterMode
	BorderColor geom.Vec4
}

// wrapCoord maps a texture coordinate in [0,1] (or outside it) to a
// coordinate usable for texel lookup, per the wrap-mode formulas of
//. ok is false only for WrapBorder coordinates outside [0,1],
// signaling the caller to return BorderColor instead of sampling.
func (s *Sampler) wrapCoord(u float64, size int) (coord float64, ok bool) {
	switch s.Wrap {
	case WrapRepeat:
		f := math.Mod(u, 1)
		if f < 0 {
			f += 1
		}
		return f, true
	case WrapClamp:
		return clamp01(u), true
	case WrapEdge:
		half := 0.5 / float64(size)
		return clamp01WithBounds(u, half, 1-half), true
	case WrapBorder:
		if u < 0 || u > 1 {
			return 0, false
		}
		return u, true
	}
	return u, true
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

func clamp01WithBounds(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sample reads view at normalized coordinates (u,v) using the sampler's
// wrap and filter settings.
func (s *Sampler) Sample(view *View, u, v float64) geom.Vec4 {
	uc, ok := s.wrapCoord(u, int(view.Width))
	if !ok {
		return s.BorderColor
	}
	vc, ok := s.wrapCoord(v, int(view.Height))
	if !ok {
		return s.BorderColor
	}

	switch s.Filter {
	case FilterBilinear:
		return s.sampleBilinear(view, uc, vc)
	default:
		return s.sampleNearest(view, uc, vc)
	}
}

func (s *Sampler) sampleNearest(view *View, u, v float64) geom.Vec4 {
	x := texelIndex(u, int(view.Width))
	y := texelIndex(v, int(view.Height))
	return view.Texel2D(x, y)
}

func texelIndex(coord float64, size int) int {
	idx := int(coord * float64(size))
	if idx >= size {
		idx = size - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// sampleBilinear fetches the four texels around (u,v) and mixes them with
// (fract_u, fract_v).
func (s *Sampler) sampleBilinear(view *View, u, v float64) geom.Vec4 {
	w, h := float64(view.Width), float64(view.Height)

	fx := u*w - 0.5
	fy := v*h - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1

	fracU := fx - float64(x0)
	fracV := fy - float64(y0)

	x0 = wrapIndex(x0, int(view.Width), s.Wrap)
	x1 = wrapIndex(x1, int(view.Width), s.Wrap)
	y0 = wrapIndex(y0, int(view.Height), s.Wrap)
	y1 = wrapIndex(y1, int(view.Height), s.Wrap)

	c00 := view.Texel2D(x0, y0)
	c10 := view.Texel2D(x1, y0)
	c01 := view.Texel2D(x0, y1)
	c11 := view.Texel2D(x1, y1)

	top := mixVec4(c00, c10, fracU)
	bot := mixVec4(c01, c11, fracU)
	return mixVec4(top, bot, fracV)
}

func mixVec4(a, b geom.Vec4, t float64) geom.Vec4 {
	return geom.Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
}

func wrapIndex(idx, size int, mode WrapMode) int {
	switch mode {
	case WrapRepeat:
		idx %= size
		if idx < 0 {
			idx += size
		}
		return idx
	default: // clamp, edge, border all clamp neighbor fetches to the edge texel
		if idx < 0 {
			return 0
		}
		if idx >= size {
			return size - 1
		}
		return idx
	}
}
