// Package swrast is a CPU-only, bin-based, multi-threaded software 3D
// rasterizer modeled on the OpenGL fixed-function pipeline.
//
// # Overview
//
// swrast takes vertex buffers, index buffers, and a shader program (plain
// Go vertex/fragment functions) and rasterizes points, lines, and
// triangles into a Framebuffer, entirely on the CPU. It targets the same
// niche as software renderers used for headless testing, fallback
// rendering, and deterministic reference images: no GPU driver, no
// platform window, just bytes in and bytes out.
//
// # Quick Start
//
//	import "github.com/gogpu/swrast"
//
//	ctx := swrast.NewContext(0) // 0 = runtime.GOMAXPROCS
//	tex, _ := ctx.CreateTexture(pixelfmt.RGBA_U8, 256, 256, 1)
//	fb := ctx.CreateFramebuffer()
//	ctx.SetFramebufferColor(fb, 0, tex)
//	shaderHandle, _ := ctx.CreateShader(myVertexFunc, myFragmentFunc, state, 0)
//	ctx.ClearFramebuffer(fb, 0, geom.Vec4{W: 1}, 1)
//	ctx.Draw(mesh, vao, indices, shaderHandle, fb)
//
// # Architecture
//
// - Public API: Context, PipelineState, ViewportState, Handle
// - Resource types: texture, framebuffer, mesh, shader, pixelfmt, geom
// - Pipeline internals: internal/vproc (vertex stage), internal/binqueue
// (bin queue), internal/raster (rasterization + fragment flush),
// internal/blend (compositing), internal/clearblit (clear/blit),
// internal/parallel (worker pool)
//
// # Coordinate System
//
// Clip space is the standard OpenGL convention: x/y/z in [-w,w] before the
// perspective divide, NDC depth remapped to [0,1] for storage. Screen
// space has its origin at the viewport's top-left corner.
//
// # Concurrency
//
// Every draw, clear, and blit partitions its work across a fixed-size
// worker pool and blocks until all workers finish; a Context is safe for
// concurrent use by multiple caller goroutines, but a single Draw/Clear/
// Blit call does not overlap with itself.
package swrast
