package raster

import (
	"testing"

	"github.com/gogpu/swrast/framebuffer"
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/binqueue"
	"github.com/gogpu/swrast/pixelfmt"
	"github.com/gogpu/swrast/shader"
	"github.com/gogpu/swrast/texture"
)

func newTestFB(t *testing.T, w, h int, withDepth bool) *framebuffer.Framebuffer {
	t.Helper()
	colorTex := texture.NewTexture()
	if err := colorTex.Init(pixelfmt.RGBA_U8, uint16(w), uint16(h), 1); err != nil {
		t.Fatal(err)
	}
	fb := &framebuffer.Framebuffer{}
	fb.SetColorAttachment(0, colorTex.View())
	if withDepth {
		depthTex := texture.NewTexture()
		if err := depthTex.Init(pixelfmt.R_F32, uint16(w), uint16(h), 1); err != nil {
			t.Fatal(err)
		}
		if err := fb.SetDepthAttachment(depthTex.View()); err != nil {
			t.Fatal(err)
		}
	}
	return fb
}

func constColorProgram(c geom.Vec4) *shader.Program {
	return &shader.Program{
		Fragment: func(fp *shader.FragmentParam) bool {
			fp.Outputs[0] = c
			return true
		},
	}
}

func TestRasterizePointWritesOwnedRow(t *testing.T) {
	fb := newTestFB(t, 4, 4, false)
	red := geom.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	p := &Params{FB: fb, Prog: constColorProgram(red), NumTargets: 1, DepthMask: true}

	bin := binOf(geom.Vec4{X: 2, Y: 1, Z: 0.5, W: 1})

	const numThreads = 2
	for tid := 0; tid < numThreads; tid++ {
		RasterizePoint(p, bin, numThreads, tid)
	}

	got := fb.LoadColor(0, 2, 1)
	if got.X < 0.99 || got.Y > 0.01 {
		t.Fatalf("point color = %v, want red", got)
	}
}

func TestRasterizePointSkipsUnownedRow(t *testing.T) {
	fb := newTestFB(t, 4, 4, false)
	red := geom.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	p := &Params{FB: fb, Prog: constColorProgram(red), NumTargets: 1, DepthMask: true}

	bin := binOf(geom.Vec4{X: 2, Y: 1, Z: 0.5, W: 1})

	// threadId 0 of 2 never owns row y=1.
	RasterizePoint(p, bin, 2, 0)

	got := fb.LoadColor(0, 2, 1)
	if got.X != 0 {
		t.Fatalf("point color = %v, want untouched (black)", got)
	}
}

func TestRasterizePointDepthTestRejectsFartherFragment(t *testing.T) {
	fb := newTestFB(t, 4, 4, true)
	fb.StoreDepth(2, 0, 0.1)

	p := &Params{
		FB: fb,
		Prog: constColorProgram(geom.Vec4{X: 1, W: 1}),
		NumTargets: 1,
		DepthMask: true,
		DepthTest: DepthLess,
	}
	bin := binOf(geom.Vec4{X: 2, Y: 0, Z: 0.9, W: 1})

	RasterizePoint(p, bin, 1, 0)

	got := fb.LoadColor(0, 2, 0)
	if got.X != 0 {
		t.Fatalf("point color = %v, want untouched since depth test should fail", got)
	}
}

func binOf(v geom.Vec4) binqueue.Bin {
	return binqueue.Bin{
		NumVerts: 1,
		ScreenCoords: [3]geom.Vec4{v},
	}
}
