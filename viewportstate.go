package swrast

import "github.com/gogpu/swrast/geom"

// viewportClampMin and viewportClampMax bound viewport and scissor setters,
// per the fixed-function contract.
const (
	viewportClampMin = -65536
	viewportClampMax = 65535
)

// Rect is an integer rectangle (x, y, width, height) in screen pixels.
type Rect struct {
	X, Y, W, H int
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ViewportState holds the viewport and scissor rectangles.
type ViewportState struct {
	viewport Rect
	scissor Rect
}

// NewViewportState returns a ViewportState with both rectangles set to
// cover the given framebuffer dimensions.
func NewViewportState(fboW, fboH int) ViewportState {
	full := Rect{0, 0, fboW, fboH}
	return ViewportState{viewport: full, scissor: full}
}

// SetViewport sets the viewport rectangle, clamping each component to
// [-65536, 65535].
func (vs *ViewportState) SetViewport(x, y, w, h int) {
	vs.viewport = Rect{
		X: clampInt(x, viewportClampMin, viewportClampMax),
		Y: clampInt(y, viewportClampMin, viewportClampMax),
		W: clampInt(w, viewportClampMin, viewportClampMax),
		H: clampInt(h, viewportClampMin, viewportClampMax),
	}
}

// SetScissor sets the scissor rectangle, with the same clamping as
// SetViewport.
func (vs *ViewportState) SetScissor(x, y, w, h int) {
	vs.scissor = Rect{
		X: clampInt(x, viewportClampMin, viewportClampMax),
		Y: clampInt(y, viewportClampMin, viewportClampMax),
		W: clampInt(w, viewportClampMin, viewportClampMax),
		H: clampInt(h, viewportClampMin, viewportClampMax),
	}
}

// Viewport returns the configured viewport rectangle.
func (vs *ViewportState) Viewport() Rect { return vs.viewport }

// Scissor returns the configured scissor rectangle.
func (vs *ViewportState) Scissor() Rect { return vs.scissor }

// ViewportRect returns the intersection of the viewport, scissor, and
// framebuffer rectangles in screen pixels, per the fixed-function contract.
func (vs *ViewportState) ViewportRect(fboW, fboH int) Rect {
	fb := Rect{0, 0, fboW, fboH}
	return intersectRects(intersectRects(vs.viewport, vs.scissor), fb)
}

func intersectRects(a, b Rect) Rect {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.W, b.X+b.W)
	y2 := min(a.Y+a.H, b.Y+b.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// ScissorMatrix returns the 4x4 matrix that maps the scissor
// rectangle to [-1,1] in NDC, given the framebuffer's dimensions.
func (vs *ViewportState) ScissorMatrix(fboW, fboH int) geom.Mat4 {
	s := vs.scissor
	if s.W <= 0 || s.H <= 0 {
		return geom.Identity4()
	}
	return geom.ScissorMatrix(s.X, s.Y, s.W, s.H, fboW, fboH)
}
