package framebuffer

import (
	"testing"

	"github.com/gogpu/swrast/geom"
	"github.com/gogpu/swrast/pixelfmt"
	"github.com/gogpu/swrast/texture"
)

func newColorTex(t *testing.T, w, h uint16) *texture.View {
	t.Helper()
	tex := texture.NewTexture()
	if err := tex.Init(pixelfmt.RGBA_U8, w, h, 1); err != nil {
		t.Fatal(err)
	}
	return tex.View()
}

func newDepthTex(t *testing.T, format pixelfmt.ColorDataType, w, h uint16) *texture.View {
	t.Helper()
	tex := texture.NewTexture()
	if err := tex.Init(format, w, h, 1); err != nil {
		t.Fatal(err)
	}
	return tex.View()
}

// TestClearAndReadBackRoundTrip clears a color+depth framebuffer to known
// values and reads every texel back through both the normalized and raw
// encoding paths.
func TestClearAndReadBackRoundTrip(t *testing.T) {
	var fb Framebuffer
	fb.SetColorAttachment(0, newColorTex(t, 4, 4))
	if err := fb.SetDepthAttachment(newDepthTex(t, pixelfmt.R_U16, 4, 4)); err != nil {
		t.Fatal(err)
	}
	if err := fb.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			fb.StoreColor(0, x, y, geom.Vec4{X: 1.0, Y: 0.5, Z: 0.25, W: 1.0})
			fb.StoreDepth(x, y, 0.75)
		}
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := fb.LoadColor(0, x, y)
			bytes := fb.Color[0].TexelBytes(x, y, 0)
			if bytes[0] != 255 || bytes[1] != 128 || bytes[2] != 64 || bytes[3] != 255 {
				t.Fatalf("(%d,%d) raw bytes = %v, want [255 128 64 255]", x, y, bytes)
			}
			_ = c
			d := fb.LoadDepth(x, y)
			if d < 0.7499 || d > 0.7501 {
				t.Fatalf("depth at (%d,%d) = %v", x, y, d)
			}
			rawBits := fb.Depth.TexelBytes(x, y, 0)
			v := uint16(rawBits[0]) | uint16(rawBits[1])<<8
			if v != 49151 {
				t.Fatalf("raw u16 depth = %d, want 49151", v)
			}
		}
	}
}

func TestValidateDimensionMismatch(t *testing.T) {
	var fb Framebuffer
	fb.SetColorAttachment(0, newColorTex(t, 4, 4))
	fb.SetColorAttachment(1, newColorTex(t, 8, 8))
	if err := fb.Validate(); err != ErrDimensionMismatch {
		t.Errorf("Validate() = %v, want ErrDimensionMismatch", err)
	}
}

func TestValidateNoColorAttachments(t *testing.T) {
	var fb Framebuffer
	if err := fb.Validate(); err != ErrNoColorAttachments {
		t.Errorf("Validate() = %v, want ErrNoColorAttachments", err)
	}
}

func TestDepthFormatsRoundTrip(t *testing.T) {
	for _, format := range []pixelfmt.ColorDataType{pixelfmt.R_U16, pixelfmt.R_F32, pixelfmt.R_F64} {
		var fb Framebuffer
		fb.SetColorAttachment(0, newColorTex(t, 2, 2))
		if err := fb.SetDepthAttachment(newDepthTex(t, format, 2, 2)); err != nil {
			t.Fatal(err)
		}
		fb.StoreDepth(0, 0, 0.3333)
		got := fb.LoadDepth(0, 0)
		if format == pixelfmt.R_U16 {
			if got < 0.332 || got > 0.335 {
				t.Errorf("format %v: depth = %v", format, got)
			}
		} else if got < 0.3332 || got > 0.3334 {
			t.Errorf("format %v: depth = %v", format, got)
		}
	}
}
