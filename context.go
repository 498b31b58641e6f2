// Package swrast implements a CPU-only, bin-based, multi-threaded software
// rasterizer modeled on the OpenGL fixed-function pipeline: a Context owns
// GPU-like resources (textures, vertex/index buffers, framebuffers, shader
// programs) behind dense handle tables and exposes Draw/Clear/Blit entry
// points that fan work out across a fixed worker pool.
package swrast

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gogpu/swrast/framebuffer"
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/internal/binqueue"
	"github.com/gogpu/swrast/internal/blend"
	"github.com/gogpu/swrast/internal/clearblit"
	"github.com/gogpu/swrast/internal/parallel"
	"github.com/gogpu/swrast/internal/raster"
	"github.com/gogpu/swrast/internal/vproc"
	"github.com/gogpu/swrast/mesh"
	"github.com/gogpu/swrast/pixelfmt"
	"github.com/gogpu/swrast/shader"
	"github.com/gogpu/swrast/texture"
)

// Handle is an opaque reference into one of a Context's dense resource
// tables, index 0 is a permanent sentinel meaning "invalid";
// live resources occupy indices 1..N.
type Handle uint32

const invalidHandle Handle = 0

// shaderEntry bundles a shader program with the pipeline state it runs
// under, so Draw can read cull/depth/blend/varying/target configuration
// from the same handle the caller bound.
type shaderEntry struct {
	prog *shader.Program
	state PipelineState
}

// Context owns every GPU-like resource a draw call touches: textures,
// vertex/index buffers, vertex array bindings, framebuffers, shader
// programs, and uniform blocks, each behind its own dense handle table.
// Built on internal/parallel.WorkerPool for the fixed-size goroutine pool
// that every Draw/Clear/Blit call fans out across; a Context is safe for
// concurrent use by multiple goroutines.
type Context struct {
	mu sync.RWMutex
	// drawMu serializes Draw/DrawMultiple calls, which share one bin queue.
	drawMu sync.Mutex

	textures []*texture.Texture
	vbos []*mesh.VertexBuffer
	ibos []*mesh.IndexBuffer
	vaos []*mesh.VertexArray
	framebuffers []*framebuffer.Framebuffer
	shaders []*shaderEntry
	ubos []*shader.UBO

	queue *binqueue.Queue
	pool *parallel.WorkerPool

	primSeq atomic.Uint64
}

// NewContext creates a Context with numThreads worker goroutines (0 or
// negative uses runtime.GOMAXPROCS) and a process-wide bin queue sized to
// binqueue.DefaultCapacity.
func NewContext(numThreads int) *Context {
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}
	return &Context{
		textures: []*texture.Texture{nil},
		vbos: []*mesh.VertexBuffer{nil},
		ibos: []*mesh.IndexBuffer{nil},
		vaos: []*mesh.VertexArray{nil},
		framebuffers: []*framebuffer.Framebuffer{nil},
		shaders: []*shaderEntry{nil},
		ubos: []*shader.UBO{nil},
		queue: binqueue.New(binqueue.DefaultCapacity),
		pool: parallel.NewWorkerPool(numThreads),
	}
}

// SetNumThreads replaces the worker pool with one sized to n (0 or
// negative uses runtime.GOMAXPROCS), draining and closing the previous
// pool first. Changing the thread count mid-draw is not supported; callers
// must not call Draw concurrently with SetNumThreads.
func (c *Context) SetNumThreads(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	next := parallel.NewWorkerPool(n)

	c.mu.Lock()
	old := c.pool
	c.pool = next
	c.mu.Unlock()

	old.Close()
	Logger().Info("swrast: thread count changed", "threads", n)
}

// NumThreads reports the current worker pool size.
func (c *Context) NumThreads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool.Workers()
}

// primIndexSource hands out the monotonically increasing FragmentBin
// submission sequence number a draw needs, shared
// across vertex-stage worker goroutines via atomic increment.
type primIndexSource struct {
	seq *atomic.Uint64
}

func (p primIndexSource) Next() uint64 { return p.seq.Add(1) - 1 }

// CreateTexture allocates a texture of the given format and dimensions and
// returns its handle. A failing Init returns the invalid handle and the
// underlying error.
func (c *Context) CreateTexture(format pixelfmt.ColorDataType, w, h, d uint16) (Handle, error) {
	tex := texture.NewTexture()
	if err := tex.Init(format, w, h, d); err != nil {
		if err == texture.ErrAllocationFailure {
			err = fmt.Errorf("%w: %w", ErrAllocationFailure, err)
		}
		return invalidHandle, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.textures = append(c.textures, tex)
	return Handle(len(c.textures) - 1), nil
}

// DestroyTexture releases the texture at h. Destroying an invalid or
// already-destroyed handle is a no-op.
func (c *Context) DestroyTexture(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(h) > 0 && int(h) < len(c.textures) {
		c.textures[h] = nil
	}
}

func (c *Context) texture(h Handle) *texture.Texture {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(h) <= 0 || int(h) >= len(c.textures) {
		return nil
	}
	return c.textures[h]
}

// CreateVBO copies data into a new vertex buffer and returns its handle.
func (c *Context) CreateVBO(data []byte) Handle {
	vb := mesh.NewVertexBuffer(data)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vbos = append(c.vbos, vb)
	return Handle(len(c.vbos) - 1)
}

// DestroyVBO releases the vertex buffer at h.
func (c *Context) DestroyVBO(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(h) > 0 && int(h) < len(c.vbos) {
		c.vbos[h] = nil
	}
}

func (c *Context) vbo(h Handle) *mesh.VertexBuffer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(h) <= 0 || int(h) >= len(c.vbos) {
		return nil
	}
	return c.vbos[h]
}

// CreateIBO copies data into a new index buffer of element type t and
// returns its handle.
func (c *Context) CreateIBO(data []byte, t mesh.IndexType) Handle {
	ib := mesh.NewIndexBuffer(data, t)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ibos = append(c.ibos, ib)
	return Handle(len(c.ibos) - 1)
}

// DestroyIBO releases the index buffer at h.
func (c *Context) DestroyIBO(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(h) > 0 && int(h) < len(c.ibos) {
		c.ibos[h] = nil
	}
}

func (c *Context) ibo(h Handle) *mesh.IndexBuffer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(h) <= 0 || int(h) >= len(c.ibos) {
		return nil
	}
	return c.ibos[h]
}

// CreateVAO allocates an empty vertex array (attribute binding table) and
// returns its handle.
func (c *Context) CreateVAO() Handle {
	va := &mesh.VertexArray{}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vaos = append(c.vaos, va)
	return Handle(len(c.vaos) - 1)
}

// DestroyVAO releases the vertex array at h.
func (c *Context) DestroyVAO(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(h) > 0 && int(h) < len(c.vaos) {
		c.vaos[h] = nil
	}
}

func (c *Context) vao(h Handle) *mesh.VertexArray {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(h) <= 0 || int(h) >= len(c.vaos) {
		return nil
	}
	return c.vaos[h]
}

// SetVAOAttrib binds attribute index i of vao to a region of buffer,
// returning ErrInvalidHandle if either handle is unknown.
func (c *Context) SetVAOAttrib(vao Handle, i int, buffer Handle, b mesh.AttribBinding) error {
	va := c.vao(vao)
	if va == nil {
		return ErrInvalidHandle
	}
	if c.vbo(buffer) == nil {
		return ErrInvalidHandle
	}
	b.BufferIndex = int(buffer)
	va.SetAttrib(i, b)
	return nil
}

// SetVAOVertexCount records how many vertices vao's buffers hold, used for
// non-indexed draws.
func (c *Context) SetVAOVertexCount(vao Handle, n int) error {
	va := c.vao(vao)
	if va == nil {
		return ErrInvalidHandle
	}
	va.VertexCount = n
	return nil
}

// CreateFramebuffer allocates an empty framebuffer and returns its handle.
// Bind color/depth attachments with SetFramebufferColor/SetFramebufferDepth
// before drawing into it.
func (c *Context) CreateFramebuffer() Handle {
	fb := &framebuffer.Framebuffer{}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.framebuffers = append(c.framebuffers, fb)
	return Handle(len(c.framebuffers) - 1)
}

// DestroyFramebuffer releases the framebuffer at h. Bound texture storage
// is not freed; destroy the owning textures separately.
func (c *Context) DestroyFramebuffer(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(h) > 0 && int(h) < len(c.framebuffers) {
		c.framebuffers[h] = nil
	}
}

func (c *Context) framebuffer(h Handle) *framebuffer.Framebuffer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(h) <= 0 || int(h) >= len(c.framebuffers) {
		return nil
	}
	return c.framebuffers[h]
}

// SetFramebufferColor binds textureHandle's view as color attachment index
// i of fb.
func (c *Context) SetFramebufferColor(fb Handle, i int, textureHandle Handle) error {
	f := c.framebuffer(fb)
	if f == nil {
		return ErrInvalidHandle
	}
	tex := c.texture(textureHandle)
	if tex == nil {
		return ErrInvalidHandle
	}
	f.SetColorAttachment(i, tex.View())
	return nil
}

// SetFramebufferDepth binds textureHandle's view as fb's depth attachment.
func (c *Context) SetFramebufferDepth(fb Handle, textureHandle Handle) error {
	f := c.framebuffer(fb)
	if f == nil {
		return ErrInvalidHandle
	}
	tex := c.texture(textureHandle)
	if tex == nil {
		return ErrInvalidHandle
	}
	return f.SetDepthAttachment(tex.View())
}

// CreateUBO copies data into a new uniform buffer and returns its handle.
func (c *Context) CreateUBO(data []byte) Handle {
	u := shader.NewUBO(data)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ubos = append(c.ubos, u)
	return Handle(len(c.ubos) - 1)
}

// DestroyUBO releases the uniform buffer at h.
func (c *Context) DestroyUBO(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(h) > 0 && int(h) < len(c.ubos) {
		c.ubos[h] = nil
	}
}

func (c *Context) ubo(h Handle) *shader.UBO {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(h) <= 0 || int(h) >= len(c.ubos) {
		return nil
	}
	return c.ubos[h]
}

// CreateShader binds a vertex/fragment function pair to a pipeline state
// and (optionally) a uniform block, returning the resulting program's
// handle. uboHandle may be invalidHandle for a shader with no uniforms.
func (c *Context) CreateShader(vertex shader.VertexFunc, fragment shader.FragmentFunc, state PipelineState, uboHandle Handle) (Handle, error) {
	if vertex == nil || fragment == nil {
		return invalidHandle, fmt.Errorf("swrast: shader requires non-nil vertex and fragment functions")
	}
	var u *shader.UBO
	if uboHandle != invalidHandle {
		u = c.ubo(uboHandle)
		if u == nil {
			return invalidHandle, ErrInvalidHandle
		}
	}
	entry := &shaderEntry{
		prog: &shader.Program{Vertex: vertex, Fragment: fragment, Uniforms: u},
		state: state,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.shaders = append(c.shaders, entry)
	return Handle(len(c.shaders) - 1), nil
}

// DestroyShader releases the shader program at h.
func (c *Context) DestroyShader(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(h) > 0 && int(h) < len(c.shaders) {
		c.shaders[h] = nil
	}
}

func (c *Context) shader(h Handle) *shaderEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(h) <= 0 || int(h) >= len(c.shaders) {
		return nil
	}
	return c.shaders[h]
}

// dispatchRows runs fn once per worker with that worker's (threadId,
// numThreads) pair and blocks until every worker has returned, using
// internal/parallel's WorkerPool.ExecuteAll barrier.
func (c *Context) dispatchRows(fn func(threadId, numThreads int)) {
	c.mu.RLock()
	pool := c.pool
	c.mu.RUnlock()

	n := pool.Workers()
	work := make([]func(), n)
	for tid := 0; tid < n; tid++ {
		tid := tid
		work[tid] = func() { fn(tid, n) }
	}
	pool.ExecuteAll(work)
}

// ClearFramebuffer clears color attachment colorIndex of fb to rgba and,
// when fb has a depth attachment, that attachment to depth. A negative
// colorIndex clears only the depth attachment. Each clear partitions the
// attachment's texels across the worker pool.
func (c *Context) ClearFramebuffer(fb Handle, colorIndex int, rgba geom.Vec4, depth float64) error {
	f := c.framebuffer(fb)
	if f == nil {
		return ErrInvalidHandle
	}

	if colorIndex < 0 {
		if f.Depth == nil {
			return nil
		}
		d := geom.Vec4{X: depth}
		c.dispatchRows(func(tid, n int) { clearblit.Clear(f.Depth, d, tid, n) })
		return nil
	}
	if colorIndex >= framebuffer.MaxColorAttachments || f.Color[colorIndex] == nil {
		return nil
	}
	view := f.Color[colorIndex]
	c.dispatchRows(func(tid, n int) { clearblit.Clear(view, rgba, tid, n) })
	if f.Depth != nil {
		d := geom.Vec4{X: depth}
		c.dispatchRows(func(tid, n int) { clearblit.Clear(f.Depth, d, tid, n) })
	}
	return nil
}

// Blit performs a nearest-neighbor copy from one framebuffer's color
// attachment to another's, partitioning destination rows across the
// worker pool.
func (c *Context) Blit(dstFB Handle, dstColorIndex int, dstRect Rect, srcFB Handle, srcColorIndex int, srcRect Rect) error {
	dst := c.framebuffer(dstFB)
	src := c.framebuffer(srcFB)
	if dst == nil || src == nil {
		return ErrInvalidHandle
	}
	if dstColorIndex >= framebuffer.MaxColorAttachments || srcColorIndex >= framebuffer.MaxColorAttachments {
		return ErrInvalidHandle
	}
	dv, sv := dst.Color[dstColorIndex], src.Color[srcColorIndex]
	if dv == nil || sv == nil {
		return nil
	}
	dr := clearblit.Rect{X: dstRect.X, Y: dstRect.Y, W: dstRect.W, H: dstRect.H}
	sr := clearblit.Rect{X: srcRect.X, Y: srcRect.Y, W: srcRect.W, H: srcRect.H}
	c.dispatchRows(func(tid, n int) { clearblit.Blit(dv, sv, dr, sr, tid, n) })
	return nil
}

// drawTarget bundles the resolved resources one Draw/DrawMultiple call
// needs, so the shared implementation doesn't re-resolve handles per mesh.
type drawTarget struct {
	entry *shaderEntry
	fb *framebuffer.Framebuffer
}

func (c *Context) resolveDrawTarget(shaderHandle, fboHandle Handle) (drawTarget, error) {
	entry := c.shader(shaderHandle)
	if entry == nil {
		return drawTarget{}, ErrInvalidHandle
	}
	fb := c.framebuffer(fboHandle)
	if fb == nil {
		return drawTarget{}, ErrInvalidHandle
	}
	if err := fb.Validate(); err != nil {
		return drawTarget{}, fmt.Errorf("%w: %w", ErrInvalidFramebuffer, err)
	}
	return drawTarget{entry: entry, fb: fb}, nil
}

// Draw renders one mesh into fboHandle using shaderHandle. An
// invalid shader or framebuffer handle, or a framebuffer that fails
// Validate, is a no-op returning the error; it never panics.
// indexHandle is ignored unless m.Indexed is set, in which case it names
// the Context's index buffer backing the draw.
func (c *Context) Draw(m *mesh.Mesh, vaoHandle, indexHandle, shaderHandle, fboHandle Handle) error {
	return c.DrawMultiple([]*mesh.Mesh{m}, []Handle{vaoHandle}, []Handle{indexHandle}, shaderHandle, fboHandle)
}

// DrawMultiple renders several meshes sharing one shader and framebuffer in
// a single bin-queue pass, amortizing the vertex/fragment phase barrier
// across all of them.
func (c *Context) DrawMultiple(meshes []*mesh.Mesh, vaoHandles, indexHandles []Handle, shaderHandle, fboHandle Handle) error {
	if len(meshes) != len(vaoHandles) || len(meshes) != len(indexHandles) {
		return fmt.Errorf("swrast: meshes, vaoHandles, and indexHandles must have equal length")
	}
	target, err := c.resolveDrawTarget(shaderHandle, fboHandle)
	if err != nil {
		return err
	}

	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	c.mu.RLock()
	pool := c.pool
	buffersSnapshot := append([]*mesh.VertexBuffer(nil), c.vbos...)
	c.mu.RUnlock()
	numThreads := pool.Workers()

	vp := vproc.Viewport{X: 0, Y: 0, W: int32(target.fb.Width()), H: int32(target.fb.Height())}
	primIdx := primIndexSource{seq: &c.primSeq}

	var flushMu sync.Mutex
	onOverflow := func() {
		flushMu.Lock()
		defer flushMu.Unlock()
		if len(c.queue.ActiveBins()) < c.queue.Capacity() {
			return
		}
		c.rasterizeActiveBank(target, numThreads, pool)
		c.queue.Flip()
	}

	for i, m := range meshes {
		vao := c.vao(vaoHandles[i])
		var indices *mesh.IndexBuffer
		if m.Indexed {
			indices = c.ibo(indexHandles[i])
		}

		in := &vproc.Input{
			Mesh: m,
			VAO: vao,
			Buffers: buffersSnapshot,
			Indices: indices,
			Prog: target.entry.prog,
			Cull: vproc.CullMode(target.entry.state.CullMode()),
			Viewport: vp,
			NumVaryings: target.entry.state.NumVaryings(),
		}

		vpp := m.Mode.VerticesPerPrimitive()
		if vpp == 0 {
			continue
		}
		primBegin := m.ElementBegin / uint32(vpp)
		primEnd := m.ElementEnd / uint32(vpp)

		span := (primEnd - primBegin + uint32(numThreads) - 1) / uint32(numThreads)
		if span == 0 {
			span = 1
		}
		work := make([]func(), numThreads)
		for tid := 0; tid < numThreads; tid++ {
			begin := primBegin + uint32(tid)*span
			end := begin + span
			if begin > primEnd {
				begin = primEnd
			}
			if end > primEnd {
				end = primEnd
			}
			b, e := begin, end
			work[tid] = func() { vproc.ProcessRange(in, c.queue, primIdx, b, e, onOverflow) }
		}
		pool.ExecuteAll(work)
	}

	c.rasterizeActiveBank(target, numThreads, pool)
	c.queue.Flip()
	return nil
}

// rasterizeActiveBank sorts the active bin bank (ascending by averageW
// when blending is off, submission order when blending is on) and runs the fragment stage across the worker pool,
// each worker owning every Nth framebuffer row.
func (c *Context) rasterizeActiveBank(target drawTarget, numThreads int, pool *parallel.WorkerPool) {
	bins := c.queue.ActiveBins()
	if len(bins) == 0 {
		return
	}

	state := target.entry.state
	ordered := append([]binqueue.Bin(nil), bins...)
	if state.BlendMode() == BlendOff {
		sort.SliceStable(ordered, func(i, j int) bool {
			return averageW(ordered[i]) < averageW(ordered[j])
		})
	} else {
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].PrimIndex < ordered[j].PrimIndex })
	}

	work := make([]func(), numThreads)
	for tid := 0; tid < numThreads; tid++ {
		tid := tid
		work[tid] = func() {
			p := &raster.Params{
				FB: target.fb,
				Prog: target.entry.prog,
				DepthTest: raster.DepthTest(state.DepthTest()),
				DepthMask: state.DepthMask(),
				BlendMode: blend.Mode(state.BlendMode()),
				BlendOn: state.BlendMode() != BlendOff,
				NumTargets: state.NumTargets(),
				NumVaryings: state.NumVaryings(),
			}
			for _, bin := range ordered {
				switch bin.NumVerts {
				case 1:
					raster.RasterizePoint(p, bin, numThreads, tid)
				case 2:
					raster.RasterizeLine(p, bin, numThreads, tid)
				case 3:
					raster.RasterizeTriangle(p, bin, numThreads, tid)
				}
			}
		}
	}
	pool.ExecuteAll(work)
}

// averageW returns the mean clip-space w of a bin's three vertex slots,
// the key opaque bins are sorted by front-to-back (smaller w is nearer the
// eye under a standard perspective projection). Points and lines leave
// the unused slots at w=0, which count toward the mean.
func averageW(b binqueue.Bin) float64 {
	return (b.ScreenCoords[0].W + b.ScreenCoords[1].W + b.ScreenCoords[2].W) / 3
}
