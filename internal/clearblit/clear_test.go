package clearblit

import (
	"testing"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/pixelfmt"
	"github.com/gogpu/swrast/texture"
)

// TestClearFillsCompletely fills every texel exactly once across a
// simulated thread pool, with no gaps or double-writes at partition
// boundaries.
func TestClearFillsCompletely(t *testing.T) {
	tex := texture.NewTexture()
	if err := tex.Init(pixelfmt.RGBA_U8, 5, 5, 1); err != nil {
		t.Fatal(err)
	}
	view := tex.View()

	const numThreads = 3
	c := geom.Vec4{X: 1, Y: 0.5, Z: 0.25, W: 1}
	for tid := 0; tid < numThreads; tid++ {
		Clear(view, c, tid, numThreads)
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			got := view.Texel2D(x, y)
			if got.X < 0.99 || got.Y < 0.49 || got.Y > 0.51 {
				t.Fatalf("texel (%d,%d) = %v, want ~%v", x, y, got, c)
			}
		}
	}
}

func TestPartitionCoversRangeExactlyOnce(t *testing.T) {
	const total = 17
	const numThreads = 5
	seen := make([]bool, total)
	for tid := 0; tid < numThreads; tid++ {
		start, end := partition(total, numThreads, tid)
		for i := start; i < end; i++ {
			if seen[i] {
				t.Fatalf("index %d covered by more than one thread", i)
			}
			seen[i] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d not covered by any thread", i)
		}
	}
}
