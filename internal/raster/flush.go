package raster

import (
	"github.com/gogpu/swrast/framebuffer"
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/blend"
	"github.com/gogpu/swrast/shader"
)

// MaxQueuedFrags is a representative SL_SHADER_MAX_QUEUED_FRAGS.
const MaxQueuedFrags = 32

// QueuedFrag is one entry of the per-thread FragCoord batch:
// a screen coordinate plus either a triangle barycentric weight vector or
// a line interpolation scalar (carried in the same Vec4 slot, X used for
// lines).
type QueuedFrag struct {
	X, Y int
	Depth float64
	BaryOrT geom.Vec4
}

// DepthTest mirrors swrast.DepthTest without importing the root package
// (avoiding an import cycle); Passes implements the same comparison rules.
type DepthTest uint8

const (
	DepthOff DepthTest = iota
	DepthLess
	DepthLessEqual
	DepthGreater
	DepthGreaterEqual
	DepthEqual
	DepthNotEqual
)

// Passes reports whether incoming passes against existing per this test.
func (d DepthTest) Passes(incoming, existing float64) bool {
	switch d {
	case DepthOff:
		return true
	case DepthLess:
		return incoming < existing
	case DepthLessEqual:
		return incoming <= existing
	case DepthGreater:
		return incoming > existing
	case DepthGreaterEqual:
		return incoming >= existing
	case DepthEqual:
		return incoming == existing
	case DepthNotEqual:
		return incoming != existing
	}
	return true
}

// Params bundles the per-draw state the flush path and all three
// rasterizers need, avoiding a long repeated argument list.
type Params struct {
	FB *framebuffer.Framebuffer
	Prog *shader.Program
	DepthTest DepthTest
	DepthMask bool
	BlendMode blend.Mode
	BlendOn bool
	NumTargets int
	NumVaryings int
	// InterpVaryings produces the interpolated varyings for one queued
	// fragment: for triangles, a perspective-correct barycentric blend of
	// the bin's three vertex varyings; for lines, a linear lerp.
	InterpVaryings func(f QueuedFrag, out *[shader.MaxVaryingVectors]geom.Vec4)
}

// FlushFragments runs the shared per-fragment path: interpolate varyings,
// invoke the fragment shader, blend-or-write color, and conditionally
// write depth, over a batch of queued fragments from a single bin. The
// depth test is not repeated here: the rasterizers apply it before a
// fragment is queued.
func FlushFragments(p *Params, batch []QueuedFrag) {
	var fp shader.FragmentParam
	fp.Uniforms = p.Prog.Uniforms

	for _, f := range batch {
		p.InterpVaryings(f, &fp.Varyings)
		fp.X, fp.Y, fp.Depth = f.X, f.Y, f.Depth
		fp.Outputs = [4]geom.Vec4{}

		ok := p.Prog.Fragment(&fp)
		if ok {
			for t := 0; t < p.NumTargets; t++ {
				if p.BlendOn {
					dst := p.FB.LoadColor(t, f.X, f.Y)
					out := blend.Apply(p.BlendMode, fp.Outputs[t], dst)
					p.FB.StoreColor(t, f.X, f.Y, out)
				} else {
					p.FB.StoreColor(t, f.X, f.Y, geom.Clamp01(fp.Outputs[t]))
				}
			}
		}
		if p.DepthMask && ok {
			p.FB.StoreDepth(f.X, f.Y, f.Depth)
		}
	}
}
