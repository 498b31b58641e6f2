// Package shader defines the shader-program contract: plain Go functions
// for the vertex and fragment stages and an opaque uniform buffer.
// Pipeline state is not defined here. Grounded on gogpu-gg's
// paint/brush callback pattern (options.go), which also threads
// user-supplied pure functions through the rendering pipeline rather than
// building a virtual-dispatch shader object graph.
package shader

import "github.com/gogpu/swrast/geom"

// MaxVaryingVectors is SL_SHADER_MAX_VARYING_VECTORS.
const MaxVaryingVectors = 4

// UBO is an opaque, user-defined uniform block. Its interpretation is the
// caller's responsibility; the core only hands the pointer to shaders.
type UBO struct {
	Data []byte
}

// NewUBO wraps data (copied) as a uniform buffer.
func NewUBO(data []byte) *UBO {
	return &UBO{Data: append([]byte(nil), data...)}
}

// VertexParam is the input to a VertexFunc: per-vertex identity, the
// uniform block, and a varying output slice the shader must fill.
type VertexParam struct {
	VertexID uint32
	InstanceID uint32
	Uniforms *UBO
	Attribs [8][4]float64
	Varyings [MaxVaryingVectors]geom.Vec4
}

// VertexFunc is a user vertex shader: reads VertexParam.Attribs and
// Uniforms, writes VertexParam.Varyings, and returns the clip-space
// position.
type VertexFunc func(*VertexParam) geom.Vec4

// FragmentParam is the input/output of a FragmentFunc: the interpolated
// fragment coordinate, the uniform block, interpolated varyings, and the
// per-render-target color outputs the shader must fill.
type FragmentParam struct {
	X, Y int
	Depth float64
	Uniforms *UBO
	Varyings [MaxVaryingVectors]geom.Vec4
	Outputs [4]geom.Vec4
}

// FragmentFunc is a user fragment shader. Returning false discards the
// fragment: no color write, and no depth write either, regardless of
// depthMask.
type FragmentFunc func(*FragmentParam) bool

// Program bundles the vertex/fragment callbacks with the uniforms they run
// under. It holds no pipeline state; the Context stores that beside the
// program when the shader is created.
type Program struct {
	Vertex VertexFunc
	Fragment FragmentFunc
	Uniforms *UBO
}
