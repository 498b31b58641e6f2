package raster

import (
	"math"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/binqueue"
	"github.com/gogpu/swrast/shader"
)

// RasterizePoint emits exactly one fragment at (floor(x), floor(y)) if
// that row belongs to threadId, performing the depth test before invoking
// the shader. Varyings are copied verbatim.
func RasterizePoint(p *Params, bin binqueue.Bin, numThreads, threadId int) {
	v := bin.ScreenCoords[0]
	x := int(math.Floor(v.X))
	y := int(math.Floor(v.Y))
	if normMod(y, numThreads) != threadId {
		return
	}

	depth := v.Z
	if p.FB.Depth != nil {
		existing := p.FB.LoadDepth(x, y)
		if !p.DepthTest.Passes(depth, existing) {
			return
		}
	}

	p.InterpVaryings = func(f QueuedFrag, out *[shader.MaxVaryingVectors]geom.Vec4) {
		*out = bin.Varyings[0]
	}
	FlushFragments(p, []QueuedFrag{{X: x, Y: y, Depth: depth}})
}

func normMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
