package raster

import (
	"math"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/binqueue"
	"github.com/gogpu/swrast/shader"
)

// RasterizeLine implements a Bresenham integer DDA from
// (x0,y0) to (x1,y1), emitting only rows owned by threadId. Each emitted
// pixel's interpolation parameter t = |p-p0| / |p1-p0| is carried in
// QueuedFrag.BaryOrT.X and used for linear (not perspective-correct)
// varying interpolation and for depth mix.
func RasterizeLine(p *Params, bin binqueue.Bin, numThreads, threadId int) {
	v0, v1 := bin.ScreenCoords[0], bin.ScreenCoords[1]
	x0, y0 := int(math.Round(v0.X)), int(math.Round(v0.Y))
	x1, y1 := int(math.Round(v1.X)), int(math.Round(v1.Y))

	totalLen := math.Hypot(v1.X-v0.X, v1.Y-v0.Y)
	if totalLen == 0 {
		totalLen = 1
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	p.InterpVaryings = func(f QueuedFrag, out *[shader.MaxVaryingVectors]geom.Vec4) {
		t := f.BaryOrT.X
		for i := 0; i < shader.MaxVaryingVectors; i++ {
			out[i] = geom.Lerp(bin.Varyings[0][i], bin.Varyings[1][i], t)
		}
	}

	var batch []QueuedFrag
	x, y := x0, y0
	for {
		if normMod(y, numThreads) == threadId {
			t := math.Hypot(float64(x-x0), float64(y-y0)) / totalLen
			if t > 1 {
				t = 1
			}
			depth := v0.Z + (v1.Z-v0.Z)*t

			emit := true
			if p.FB.Depth != nil {
				existing := p.FB.LoadDepth(x, y)
				emit = p.DepthTest.Passes(depth, existing)
			}
			if emit {
				batch = append(batch, QueuedFrag{X: x, Y: y, Depth: depth, BaryOrT: geom.Vec4{X: t}})
				if len(batch) == MaxQueuedFrags {
					FlushFragments(p, batch)
					batch = batch[:0]
				}
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	if len(batch) > 0 {
		FlushFragments(p, batch)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
