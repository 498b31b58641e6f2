// Package clearblit implements the clear and blit processors, each
// partitioning its work across a fixed thread count the same way the
// fragment rasterizers partition framebuffer rows. Grounded on
// original_source/softlight's texel-count thread-slicing for clear rather
// than gogpu-gg's row-based 2D fill, since a 3D framebuffer clear has no
// scanline structure to exploit.
package clearblit

import (
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/texture"
)

// Clear fills every texel of view with c; a depth view is cleared by
// passing the depth value in c.X. Clear partitions [0, width*height*depth)
// evenly by texel count across numThreads threads (original_source's
// thread-slicing, not a row split) and fills threadId's slice.
func Clear(view *texture.View, c geom.Vec4, threadId, numThreads int) {
	total := int(view.Width) * int(view.Height) * int(view.Depth)
	start, end := partition(total, numThreads, threadId)

	w, h := int(view.Width), int(view.Height)
	for i := start; i < end; i++ {
		z := i / (w * h)
		rem := i % (w * h)
		y := rem / w
		x := rem % w
		view.SetTexel(x, y, z, c)
	}
}

// partition splits [0,total) into numThreads contiguous, nearly-equal
// shares and returns threadId's [start,end).
func partition(total, numThreads, threadId int) (start, end int) {
	if numThreads <= 0 {
		numThreads = 1
	}
	base := total / numThreads
	rem := total % numThreads
	start = threadId*base + min(threadId, rem)
	extra := 0
	if threadId < rem {
		extra = 1
	}
	end = start + base + extra
	return
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
