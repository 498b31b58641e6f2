package clearblit

import "github.com/gogpu/swrast/texture"

// Rect is an integer screen-space rectangle (x,y,w,h).
type Rect struct {
	X, Y, W, H int
}

// Blit performs a nearest-neighbor blit from src within srcRect to dst
// within dstRect, using 16.16 fixed-point source-coordinate mapping with a
// vertical flip, partitioned across numThreads by destination row
// (y % numThreads == threadId), converting texel formats via the
// pixelfmt-backed View.Texel/SetTexel round trip.
func Blit(dst, src *texture.View, dstRect, srcRect Rect, threadId, numThreads int) {
	if dstRect.W <= 0 || dstRect.H <= 0 || srcRect.W <= 0 || srcRect.H <= 0 {
		return
	}
	const fixedShift = 16
	foutW := (srcRect.W << fixedShift) / dstRect.W
	foutH := (srcRect.H << fixedShift) / dstRect.H

	for y := 0; y < dstRect.H; y++ {
		dy := dstRect.Y + y
		if normMod(dy, numThreads) != threadId {
			continue
		}
		// Vertical flip: the last destination row samples the first
		// source row and vice versa.
		srcY := srcRect.Y + srcRect.H - 1 - ((y * foutH) >> fixedShift)
		if srcY < srcRect.Y {
			srcY = srcRect.Y
		}
		if srcY >= srcRect.Y+srcRect.H {
			srcY = srcRect.Y + srcRect.H - 1
		}

		for x := 0; x < dstRect.W; x++ {
			srcX := srcRect.X + ((x * foutW) >> fixedShift)
			if srcX >= srcRect.X+srcRect.W {
				srcX = srcRect.X + srcRect.W - 1
			}
			c := src.Texel2D(srcX, srcY)
			dst.SetTexel2D(dstRect.X+x, dy, c)
		}
	}
}

func normMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
