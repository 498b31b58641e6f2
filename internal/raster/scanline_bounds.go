// Package raster implements the three fragment-stage rasterizers (point,
// line, triangle) and their shared fragment-flush path. The scanline-
// bounds step is grounded on gogpu-gg's Edge/XAtY slope precomputation
// (its internal/raster/edge.go ActiveEdgeTable), generalized from a
// generic path-fill active-edge-table to the triangle-specific
// three-slope contract.
package raster

import "math"

// TriVert is a sorted-by-y triangle vertex in screen space (x, y only;
// the caller supplies depth/varyings separately).
type TriVert struct {
	X, Y float64
}

// ScanlineBounds precomputes the three slopes from a
// triangle whose vertices are already sorted p0.y <= p1.y <= p2.y.
type ScanlineBounds struct {
	p0, p1, p2 TriVert
	p20y float64 // 1 / (p2.y - p0.y)
	p20x float64 // p2.x - p0.x
	p21xy float64 // (p2.x - p1.x) / (p2.y - p1.y)
	p10xy float64 // (p1.x - p0.x) / (p1.y - p0.y)
}

// SortTriVerts returns p0, p1, p2 sorted ascending by Y using a
// branchless-style pairwise swap.
func SortTriVerts(a, b, c TriVert) (TriVert, TriVert, TriVert) {
	if a.Y > b.Y {
		a, b = b, a
	}
	if b.Y > c.Y {
		b, c = c, b
	}
	if a.Y > b.Y {
		a, b = b, a
	}
	return a, b, c
}

// NewScanlineBounds builds the precomputed slopes for a sorted triangle.
func NewScanlineBounds(p0, p1, p2 TriVert) ScanlineBounds {
	sb := ScanlineBounds{p0: p0, p1: p1, p2: p2}
	if dy := p2.Y - p0.Y; dy != 0 {
		sb.p20y = 1 / dy
	}
	sb.p20x = p2.X - p0.X
	if dy := p2.Y - p1.Y; dy != 0 {
		sb.p21xy = (p2.X - p1.X) / dy
	}
	if dy := p1.Y - p0.Y; dy != 0 {
		sb.p10xy = (p1.X - p0.X) / dy
	}
	return sb
}

// YBounds returns the integer scanline range [yMin, yMax) to walk.
func (sb ScanlineBounds) YBounds() (yMin, yMax int) {
	lo := math.Min(sb.p0.Y, math.Min(sb.p1.Y, sb.p2.Y))
	hi := math.Max(sb.p0.Y, math.Max(sb.p1.Y, sb.p2.Y))
	return int(math.Floor(lo)), int(math.Ceil(hi))
}

// RowBounds computes [xMin, xMax] for scanline y. The top-left fill
// convention is realized by floor(min) / ceil(max).
func (sb ScanlineBounds) RowBounds(y float64) (xMin, xMax int) {
	alpha := (y - sb.p0.Y) * sb.p20y
	xLo := sb.p0.X + sb.p20x*alpha

	var xHi float64
	if y < sb.p1.Y {
		xHi = sb.p0.X + sb.p10xy*(y-sb.p0.Y)
	} else {
		xHi = sb.p1.X + sb.p21xy*(y-sb.p1.Y)
	}

	lo, hi := xLo, xHi
	if lo > hi {
		lo, hi = hi, lo
	}
	return int(math.Floor(lo)), int(math.Ceil(hi))
}

// ScanlineOffset returns the offset from yMin of the row within
// [yMin, yMin+numThreads) that thread threadId owns first, so that the
// owned rows are yMin+offset, yMin+offset+numThreads,....
func ScanlineOffset(numThreads, threadId, yMin int) int {
	m := ((yMin % numThreads) + numThreads) % numThreads
	offset := threadId - m
	if offset < 0 {
		offset += numThreads
	}
	return offset
}
