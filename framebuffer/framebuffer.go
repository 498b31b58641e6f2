// Package framebuffer implements the render-target object:
// up to 4 color attachments plus one depth attachment, all non-owning
// views into Textures, dispatched through the color-format codec table in
// package pixelfmt (the "pixel-store dispatch tables keyed by format").
package framebuffer

import (
	"errors"
	"math"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/pixelfmt"
	"github.com/gogpu/swrast/texture"
)

// MaxColorAttachments matches swrast.MaxRenderTargets.
const MaxColorAttachments = 4

// DepthFormat enumerates the three attachment formats the depth buffer may
// use, per the fixed-function contract.
type DepthFormat uint8

const (
	DepthFormatU16 DepthFormat = iota
	DepthFormatF32
	DepthFormatF64
)

// depthMax16 is the scale factor for R_U16 depth encode/decode.
const depthMax16 = 65535

// Framebuffer holds up to 4 color attachments and one depth attachment.
// All attachments are non-owning *texture.View values; the Context that
// owns the backing Textures must outlive the Framebuffer.
type Framebuffer struct {
	Color [MaxColorAttachments]*texture.View
	NumColor int
	Depth *texture.View
	DepthKind DepthFormat
}

// ErrNoColorAttachments is returned by Validate when NumColor is zero.
var ErrNoColorAttachments = errors.New("swrast/framebuffer: zero color attachments")

// ErrDimensionMismatch is returned by Validate when attachments disagree
// in width or height.
var ErrDimensionMismatch = errors.New("swrast/framebuffer: attachment dimensions disagree")

// ErrUnsupportedDepthFormat is returned when the depth attachment's pixel
// format is not one of R_U16, R_F32, R_F64.
var ErrUnsupportedDepthFormat = errors.New("swrast/framebuffer: unsupported depth format")

// SetColorAttachment binds view as color attachment index i (0..3).
func (fb *Framebuffer) SetColorAttachment(i int, view *texture.View) {
	fb.Color[i] = view
	count := 0
	for _, c := range fb.Color {
		if c != nil {
			count++
		}
	}
	fb.NumColor = count
}

// SetDepthAttachment binds view as the depth attachment, inferring the
// DepthFormat from its pixel format.
func (fb *Framebuffer) SetDepthAttachment(view *texture.View) error {
	switch view.Format {
	case pixelfmt.R_U16:
		fb.DepthKind = DepthFormatU16
	case pixelfmt.R_F32:
		fb.DepthKind = DepthFormatF32
	case pixelfmt.R_F64:
		fb.DepthKind = DepthFormatF64
	default:
		return ErrUnsupportedDepthFormat
	}
	fb.Depth = view
	return nil
}

// Validate checks the invariants: at least one color
// attachment and all attachments matching dimensions. The depth format is
// checked by SetDepthAttachment, not here.
func (fb *Framebuffer) Validate() error {
	if fb.NumColor == 0 {
		return ErrNoColorAttachments
	}
	var w, h int
	first := true
	for _, c := range fb.Color {
		if c == nil {
			continue
		}
		if first {
			w, h = int(c.Width), int(c.Height)
			first = false
			continue
		}
		if int(c.Width) != w || int(c.Height) != h {
			return ErrDimensionMismatch
		}
	}
	if fb.Depth != nil && (int(fb.Depth.Width) != w || int(fb.Depth.Height) != h) {
		return ErrDimensionMismatch
	}
	return nil
}

// Width and Height report the framebuffer's pixel dimensions, taken from
// the first bound color attachment.
func (fb *Framebuffer) Width() int {
	for _, c := range fb.Color {
		if c != nil {
			return int(c.Width)
		}
	}
	return 0
}

func (fb *Framebuffer) Height() int {
	for _, c := range fb.Color {
		if c != nil {
			return int(c.Height)
		}
	}
	return 0
}

// StoreColor writes c (normalized RGBA) to color attachment target t at
// (x,y) using that attachment's format codec.
func (fb *Framebuffer) StoreColor(t, x, y int, c geom.Vec4) {
	view := fb.Color[t]
	if view == nil {
		return
	}
	view.SetTexel2D(x, y, c)
}

// LoadColor reads the normalized RGBA color at (x,y) from attachment t.
func (fb *Framebuffer) LoadColor(t, x, y int) geom.Vec4 {
	view := fb.Color[t]
	if view == nil {
		return geom.Vec4{}
	}
	return view.Texel2D(x, y)
}

// StoreDepth writes NDC depth d in [0,1] to the depth attachment at (x,y).
// R_U16 rounds to round(d*65535); R_F32 and R_F64 store d directly.
func (fb *Framebuffer) StoreDepth(x, y int, d float64) {
	if fb.Depth == nil {
		return
	}
	bytes := fb.Depth.TexelBytes(x, y, 0)
	switch fb.DepthKind {
	case DepthFormatU16:
		v := uint16(math.Floor(d*depthMax16 + 0.5))
		bytes[0] = byte(v)
		bytes[1] = byte(v >> 8)
	case DepthFormatF32:
		bits := math.Float32bits(float32(d))
		bytes[0] = byte(bits)
		bytes[1] = byte(bits >> 8)
		bytes[2] = byte(bits >> 16)
		bytes[3] = byte(bits >> 24)
	case DepthFormatF64:
		bits := math.Float64bits(d)
		for i := 0; i < 8; i++ {
			bytes[i] = byte(bits >> (8 * i))
		}
	}
}

// LoadDepth reads the NDC depth value at (x,y) from the depth attachment.
func (fb *Framebuffer) LoadDepth(x, y int) float64 {
	if fb.Depth == nil {
		return 0
	}
	bytes := fb.Depth.TexelBytes(x, y, 0)
	switch fb.DepthKind {
	case DepthFormatU16:
		v := uint16(bytes[0]) | uint16(bytes[1])<<8
		return float64(v) / depthMax16
	case DepthFormatF32:
		bits := uint32(bytes[0]) | uint32(bytes[1])<<8 | uint32(bytes[2])<<16 | uint32(bytes[3])<<24
		return float64(math.Float32frombits(bits))
	case DepthFormatF64:
		var bits uint64
		for i := 0; i < 8; i++ {
			bits |= uint64(bytes[i]) << (8 * i)
		}
		return math.Float64frombits(bits)
	}
	return 0
}
