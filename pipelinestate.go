package swrast

// CullMode selects which winding of triangle is discarded before
// rasterization. Point and line primitives ignore cull mode.
type CullMode uint32

const (
	CullBack CullMode = iota
	CullFront
	CullOff
)

// DepthTest selects the comparison function used against the depth
// attachment. Off always passes; Equal/NotEqual use exact float equality
// with no epsilon, per the fixed-function contract.
type DepthTest uint32

const (
	DepthOff DepthTest = iota
	DepthLess
	DepthLessEqual
	DepthGreater
	DepthGreaterEqual
	DepthEqual
	DepthNotEqual
)

// Passes reports whether a fragment's depth value d passes against the
// currently stored depth value stored, under this test function.
func (dt DepthTest) Passes(d, stored float64) bool {
	switch dt {
	case DepthOff:
		return true
	case DepthLess:
		return d < stored
	case DepthLessEqual:
		return d <= stored
	case DepthGreater:
		return d > stored
	case DepthGreaterEqual:
		return d >= stored
	case DepthEqual:
		return d == stored
	case DepthNotEqual:
		return d != stored
	}
	return false
}

// BlendMode selects the compositing formula applied to each fragment's
// output against the framebuffer, per the fixed-function contract.
type BlendMode uint32

const (
	BlendOff BlendMode = iota
	BlendAlpha
	BlendPremultipliedAlpha
	BlendAdditive
	BlendScreen
)

// Field widths and shift offsets for the packed 32-bit pipeline state
// word: cullMode(2) | depthTest(3) | depthMask(1) | blendMode(3)
// | numVaryings(3) | numTargets(3).
const (
	cullModeShift = 0
	cullModeBits = 2
	cullModeMask = (1 << cullModeBits) - 1
	depthTestShift = cullModeShift + cullModeBits
	depthTestBits = 3
	depthTestMask = (1 << depthTestBits) - 1
	depthMaskShift = depthTestShift + depthTestBits
	depthMaskBits = 1
	depthMaskMask = (1 << depthMaskBits) - 1
	blendModeShift = depthMaskShift + depthMaskBits
	blendModeBits = 3
	blendModeMask = (1 << blendModeBits) - 1
	varyingsShift = blendModeShift + blendModeBits
	varyingsBits = 3
	varyingsMask = (1 << varyingsBits) - 1
	targetsShift = varyingsShift + varyingsBits
	targetsBits = 3
	targetsMask = (1 << targetsBits) - 1
)

// MaxVaryingVectors is SL_SHADER_MAX_VARYING_VECTORS, the fixed number of
// vec4 varying slots a FragmentBin carries per vertex.
const MaxVaryingVectors = 4

// MaxRenderTargets is the number of color attachments a Framebuffer may
// have.
const MaxRenderTargets = 4

// PipelineState is the packed 32-bit pipeline configuration word. Setters
// use mask+OR, getters use shift+mask, matching the bitfield contract
// exactly so the packed representation is a stable ABI.
type PipelineState uint32

// NewPipelineState returns a PipelineState with the defaults:
// cull=back, depth=less-than, depth-mask=on, blend=off, varyings=0,
// targets=1.
func NewPipelineState() PipelineState {
	var p PipelineState
	p = p.WithCullMode(CullBack)
	p = p.WithDepthTest(DepthLess)
	p = p.WithDepthMask(true)
	p = p.WithBlendMode(BlendOff)
	p = p.WithNumVaryings(0)
	p = p.WithNumTargets(1)
	return p
}

// Reset restores p to the defaults.
func (p PipelineState) Reset() PipelineState { return NewPipelineState() }

func setField(p PipelineState, shift uint, mask, value uint32) PipelineState {
	cleared := uint32(p) &^ (mask << shift)
	return PipelineState(cleared | (value&mask)<<shift)
}

func getField(p PipelineState, shift uint, mask uint32) uint32 {
	return (uint32(p) >> shift) & mask
}

func (p PipelineState) CullMode() CullMode {
	return CullMode(getField(p, cullModeShift, cullModeMask))
}

func (p PipelineState) WithCullMode(c CullMode) PipelineState {
	return setField(p, cullModeShift, cullModeMask, uint32(c))
}

func (p PipelineState) DepthTest() DepthTest {
	return DepthTest(getField(p, depthTestShift, depthTestMask))
}

func (p PipelineState) WithDepthTest(d DepthTest) PipelineState {
	return setField(p, depthTestShift, depthTestMask, uint32(d))
}

func (p PipelineState) DepthMask() bool {
	return getField(p, depthMaskShift, depthMaskMask) != 0
}

func (p PipelineState) WithDepthMask(on bool) PipelineState {
	var v uint32
	if on {
		v = 1
	}
	return setField(p, depthMaskShift, depthMaskMask, v)
}

func (p PipelineState) BlendMode() BlendMode {
	return BlendMode(getField(p, blendModeShift, blendModeMask))
}

func (p PipelineState) WithBlendMode(b BlendMode) PipelineState {
	return setField(p, blendModeShift, blendModeMask, uint32(b))
}

func (p PipelineState) NumVaryings() int {
	return int(getField(p, varyingsShift, varyingsMask))
}

func (p PipelineState) WithNumVaryings(n int) PipelineState {
	return setField(p, varyingsShift, varyingsMask, uint32(n))
}

func (p PipelineState) NumTargets() int {
	return int(getField(p, targetsShift, targetsMask))
}

func (p PipelineState) WithNumTargets(n int) PipelineState {
	return setField(p, targetsShift, targetsMask, uint32(n))
}
