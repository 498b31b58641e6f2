package raster

import (
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/binqueue"
	"github.com/gogpu/swrast/shader"
)

// RasterizeTriangle walks each owned row, computes [xMin,xMax] via
// ScanlineBounds, evaluates the bin's precomputed barycentric gradients
// (λ = λ0 + x·dλ/dx + y·dλ/dy, per vertex weight), depth-tests, and queues
// surviving fragments for FlushFragments.
// bin.Wireframe restricts emission to the row's left/right edge pixels
// only ("Wireframe triangle mode").
func RasterizeTriangle(p *Params, bin binqueue.Bin, numThreads, threadId int) {
	v0, v1, v2 := bin.ScreenCoords[0], bin.ScreenCoords[1], bin.ScreenCoords[2]
	p0, p1, p2 := SortTriVerts(TriVert{v0.X, v0.Y}, TriVert{v1.X, v1.Y}, TriVert{v2.X, v2.Y})
	sb := NewScanlineBounds(p0, p1, p2)

	yMin, yMax := sb.YBounds()
	offset := ScanlineOffset(numThreads, threadId, yMin)

	dλdx := bin.BarycentricCoords[0]
	dλdy := bin.BarycentricCoords[1]
	λ0 := bin.BarycentricCoords[2]
	invW := [3]float64{1 / v0.W, 1 / v1.W, 1 / v2.W}

	p.InterpVaryings = func(f QueuedFrag, out *[shader.MaxVaryingVectors]geom.Vec4) {
		bc := f.BaryOrT
		weights := [3]float64{bc.X, bc.Y, bc.Z}
		sum := weights[0]*invW[0] + weights[1]*invW[1] + weights[2]*invW[2]
		if sum == 0 {
			sum = 1
		}
		for i := 0; i < shader.MaxVaryingVectors; i++ {
			var acc geom.Vec4
			for k := 0; k < 3; k++ {
				w := weights[k] * invW[k] / sum
				acc = acc.Add(bin.Varyings[k][i].Mul(w))
			}
			out[i] = acc
		}
	}

	var batch []QueuedFrag
	flush := func() {
		if len(batch) > 0 {
			FlushFragments(p, batch)
			batch = batch[:0]
		}
	}

	emitPixel := func(x int, y float64) {
		cx, cy := float64(x)+0.5, y
		l0 := λ0.X + cx*dλdx.X + cy*dλdy.X
		l1 := λ0.Y + cx*dλdx.Y + cy*dλdy.Y
		l2 := λ0.Z + cx*dλdx.Z + cy*dλdy.Z
		if l0 < 0 || l1 < 0 || l2 < 0 {
			return
		}
		depth := l0*v0.Z + l1*v1.Z + l2*v2.Z

		if p.FB.Depth != nil {
			existing := p.FB.LoadDepth(x, int(y))
			if !p.DepthTest.Passes(depth, existing) {
				return
			}
		}
		batch = append(batch, QueuedFrag{
			X: x, Y: int(y), Depth: depth,
			BaryOrT: geom.Vec4{X: l0, Y: l1, Z: l2},
		})
		if len(batch) == MaxQueuedFrags {
			flush()
		}
	}

	for row := yMin + offset; row < yMax; row += numThreads {
		y := float64(row) + 0.5
		xMin, xMax := sb.RowBounds(y)

		if bin.Wireframe {
			emitPixel(xMin, y)
			if xMax-1 != xMin {
				emitPixel(xMax-1, y)
			}
		} else {
			for x := xMin; x < xMax; x++ {
				emitPixel(x, y)
			}
		}
	}
	flush()
}
