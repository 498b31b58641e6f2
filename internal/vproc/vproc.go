// Package vproc implements the vertex-stage driver: per-thread primitive
// fetch, vertex shading, clipping, culling, perspective divide, viewport
// transform, and FragmentBin construction. Grounded on gogpu-gg's
// painter.go driver loop, which also walks a flat element range and
// dispatches to user-supplied callbacks per element; generalized here to
// the three-primitive-type vertex pipeline.
package vproc

import (
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/binqueue"
	"github.com/gogpu/swrast/mesh"
	"github.com/gogpu/swrast/shader"
)

// CullMode mirrors swrast.CullMode without importing the root package.
type CullMode uint8

const (
	CullBack CullMode = iota
	CullFront
	CullOff
)

// Viewport is the subset of swrast.ViewportState the vertex stage needs:
// the screen-space rectangle to map NDC into.
type Viewport struct {
	X, Y, W, H int32
}

// Input bundles everything ProcessRange needs to fetch and shade one
// thread's share of a mesh's primitives.
type Input struct {
	Mesh *mesh.Mesh
	VAO *mesh.VertexArray
	Buffers []*mesh.VertexBuffer
	Indices *mesh.IndexBuffer
	Prog *shader.Program
	Cull CullMode
	Viewport Viewport
	NumVaryings int
}

// PrimIndexSource hands out the monotonically increasing FragmentBin
// submission sequence number; callers own one per draw and share it
// across threads via atomic increment (see the field's doc at the call
// site in package swrast).
type PrimIndexSource interface {
	Next() uint64
}

// ProcessRange runs the vertex stage over primitive indices
// [begin, end) of in.Mesh, reserving a bin per surviving primitive via
// queue.Reserve. Reserve failures (ErrOverflow) are reported through
// onOverflow so the caller can flush/flip/retry; the current primitive is
// retried after onOverflow returns.
func ProcessRange(in *Input, queue *binqueue.Queue, primIdx PrimIndexSource, begin, end uint32, onOverflow func()) {
	vpp := in.Mesh.Mode.VerticesPerPrimitive()
	if vpp == 0 {
		return
	}

	for p := begin; p < end; p++ {
		verts := fetchPrimitiveVerts(in, p, vpp)
		shaded := shadeVerts(in, verts)

		switch in.Mesh.Mode {
		case mesh.Points:
			emitPoint(in, queue, primIdx, shaded[0], onOverflow)
		case mesh.Lines:
			emitLine(in, queue, primIdx, shaded[0], shaded[1], onOverflow)
		case mesh.Triangles, mesh.TriangleWire:
			emitTriangle(in, queue, primIdx, shaded[0], shaded[1], shaded[2], in.Mesh.Mode == mesh.TriangleWire, onOverflow)
		}
	}
}

func fetchPrimitiveVerts(in *Input, primIndex uint32, vpp int) []uint32 {
	out := make([]uint32, vpp)
	base := primIndex * uint32(vpp)
	for i := 0; i < vpp; i++ {
		if in.Mesh.Indexed {
			out[i] = in.Indices.At(int(base) + i)
		} else {
			out[i] = base + uint32(i)
		}
	}
	return out
}

func shadeVerts(in *Input, vertIDs []uint32) []clipVertex {
	out := make([]clipVertex, len(vertIDs))
	for i, vid := range vertIDs {
		var vp shader.VertexParam
		vp.VertexID = vid
		vp.Uniforms = in.Prog.Uniforms
		for a := 0; a < mesh.MaxAttribs; a++ {
			vp.Attribs[a] = in.VAO.Fetch(in.Buffers, a, vid)
		}
		clip := in.Prog.Vertex(&vp)
		out[i] = clipVertex{pos: clip, vry: vp.Varyings}
	}
	return out
}

func emitPoint(in *Input, queue *binqueue.Queue, primIdx PrimIndexSource, v clipVertex, onOverflow func()) {
	if !v.pos.InClipBounds() {
		return
	}
	screen := toScreen(v, in.Viewport)
	bin := binqueue.Bin{
		NumVerts: 1,
		ScreenCoords: [3]geom.Vec4{screen},
		Varyings: [3][4]geom.Vec4{v.vry},
		PrimIndex: primIdx.Next(),
	}
	reserveWithRetry(queue, bin, onOverflow)
}

func emitLine(in *Input, queue *binqueue.Queue, primIdx PrimIndexSource, a, b clipVertex, onOverflow func()) {
	ca, cb, ok := clipLineNearFar(a, b)
	if !ok {
		return
	}
	sa := toScreen(ca, in.Viewport)
	sb := toScreen(cb, in.Viewport)
	bin := binqueue.Bin{
		NumVerts: 2,
		ScreenCoords: [3]geom.Vec4{sa, sb},
		Varyings: [3][4]geom.Vec4{ca.vry, cb.vry},
		PrimIndex: primIdx.Next(),
	}
	reserveWithRetry(queue, bin, onOverflow)
}

func emitTriangle(in *Input, queue *binqueue.Queue, primIdx PrimIndexSource, a, b, c clipVertex, wireframe bool, onOverflow func()) {
	poly := clipTriangleNearPlane([3]clipVertex{a, b, c})
	tris := fanTriangles(poly)

	for _, tri := range tris {
		v0, v1, v2 := tri[0], tri[1], tri[2]

		s0 := toScreen(v0, in.Viewport)
		s1 := toScreen(v1, in.Viewport)
		s2 := toScreen(v2, in.Viewport)

		area := signedArea2D(s0, s1, s2)
		switch in.Cull {
		case CullBack:
			if area < 0 {
				continue
			}
		case CullFront:
			if area > 0 {
				continue
			}
		}
		if area == 0 {
			continue
		}

		dx, dy, base := barycentricGradients(s0, s1, s2)
		bin := binqueue.Bin{
			NumVerts: 3,
			ScreenCoords: [3]geom.Vec4{s0, s1, s2},
			BarycentricCoords: [3]geom.Vec4{dx, dy, base},
			Varyings: [3][4]geom.Vec4{v0.vry, v1.vry, v2.vry},
			PrimIndex: primIdx.Next(),
			Wireframe: wireframe,
		}
		reserveWithRetry(queue, bin, onOverflow)
	}
}

func reserveWithRetry(queue *binqueue.Queue, bin binqueue.Bin, onOverflow func()) {
	for {
		if err := queue.Reserve(bin); err == nil {
			return
		}
		onOverflow()
	}
}

// toScreen performs the perspective divide and viewport transform,
// returning (x_screen, y_screen, z_ndc in [0,1], w_clip).
func toScreen(v clipVertex, vp Viewport) geom.Vec4 {
	ndc, w := v.pos.PerspectiveDivide()
	x := (ndc.X*0.5 + 0.5)*float64(vp.W) + float64(vp.X)
	y := (ndc.Y*0.5 + 0.5)*float64(vp.H) + float64(vp.Y)
	z := ndc.Z*0.5 + 0.5
	return geom.Vec4{X: x, Y: y, Z: z, W: w}
}
