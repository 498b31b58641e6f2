// Package texture implements the typed, strided pixel array (TextureView),
// its owning Texture, and the Sampler used to read it with wrapping and
// filtering.
package texture

import (
	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/pixelfmt"
)

// View is a typed, strided 2D/3D pixel array. It does not own Texels; the
// owning Texture's storage backs it. A View created from a Texture becomes
// invalid once that Texture is re-initialized (Init) or discarded.
type View struct {
	Format pixelfmt.ColorDataType
	BytesPerTexel int
	Width uint16
	Height uint16
	Depth uint16
	NumChannels uint8
	Texels []byte
}

// offset returns the byte offset of texel (x,y,z):
// (x + width*(y + height*z)) * bytesPerTexel.
func (v *View) offset(x, y, z int) int {
	return (x + int(v.Width)*(y+int(v.Height)*z)) * v.BytesPerTexel
}

// InBounds reports whether (x,y,z) addresses a valid texel.
func (v *View) InBounds(x, y, z int) bool {
	return x >= 0 && x < int(v.Width) &&
		y >= 0 && y < int(v.Height) &&
		z >= 0 && z < int(v.Depth)
}

// TexelBytes returns the raw bytes backing texel (x,y,z). The caller must
// ensure the coordinates are in bounds.
func (v *View) TexelBytes(x, y, z int) []byte {
	off := v.offset(x, y, z)
	return v.Texels[off: off+v.BytesPerTexel]
}

// Texel decodes texel (x,y,z) (z defaults to 0 for 2D views via Texel2D) as
// a normalized RGBA color.
func (v *View) Texel(x, y, z int) geom.Vec4 {
	return pixelfmt.DecodeNorm(v.Format, v.TexelBytes(x, y, z))
}

// Texel2D is the common 2D-view accessor.
func (v *View) Texel2D(x, y int) geom.Vec4 { return v.Texel(x, y, 0) }

// SetTexel encodes c into texel (x,y,z).
func (v *View) SetTexel(x, y, z int, c geom.Vec4) {
	pixelfmt.EncodeNorm(v.Format, c, v.TexelBytes(x, y, z))
}

// SetTexel2D is the common 2D-view mutator.
func (v *View) SetTexel2D(x, y int, c geom.Vec4) { v.SetTexel(x, y, 0, c) }
