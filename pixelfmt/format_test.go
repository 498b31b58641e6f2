package pixelfmt

import (
	"math"
	"testing"

	"github.com/gogpu/swrast/geom"
)

func TestIntScalarCastRoundTrip(t *testing.T) {
	// Widen then narrow must losslessly recover the source value, for
	// every value representable in the narrower width.
	widths := []int{8, 16, 32}
	for _, srcBits := range widths {
		for _, dstBits := range widths {
			if dstBits <= srcBits {
				continue
			}
			srcMax := scalarMaxForBits(srcBits)
			for _, v := range []uint64{0, 1, srcMax / 2, srcMax} {
				wide := IntScalarCast(v, srcBits, dstBits)
				back := IntScalarCast(wide, dstBits, srcBits)
				if back != v {
					t.Errorf("widen(%d bits->%d bits) then narrow: v=%d got %d", srcBits, dstBits, v, back)
				}
			}
		}
	}
}

func TestColorCastFloatRoundTrip(t *testing.T) {
	// Round-tripping a normalized color through U8 must stay within one
	// U8 quantization step: |decode(encode(c, U8)) - c| <= 1/255.
	buf := make([]byte, 4)
	for _, c := range []float64{0, 0.1, 0.5, 0.756863, 0.999, 1.0} {
		v := geom.Vec4{X: c, Y: c, Z: c, W: 1}
		EncodeNorm(R_U8, v, buf[:1])
		back := DecodeNorm(R_U8, buf[:1])
		if math.Abs(back.X-c) > 1.0/255.0+1e-9 {
			t.Errorf("round trip through U8: c=%v got %v diff=%v", c, back.X, math.Abs(back.X-c))
		}
	}
}

func TestRGB332RoundTrip(t *testing.T) {
	buf := make([]byte, 1)
	c := geom.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	EncodeNorm(RGB332, c, buf)
	got := DecodeNorm(RGB332, buf)
	if got.X != 1 || got.Y != 1 || got.Z != 1 {
		t.Errorf("RGB332 white round trip = %+v", got)
	}
}

func TestRGB565Ranges(t *testing.T) {
	if BytesPerTexel(RGB565) != 2 {
		t.Fatalf("RGB565 BytesPerTexel = %d, want 2", BytesPerTexel(RGB565))
	}
	buf := make([]byte, 2)
	EncodeNorm(RGB565, geom.Vec4{X: 0, Y: 1, Z: 0, W: 1}, buf)
	got := DecodeNorm(RGB565, buf)
	if got.Y != 1 {
		t.Errorf("RGB565 pure green decode = %+v", got)
	}
}

func TestRGB9E5RoundTrip(t *testing.T) {
	r, g, b := 0.165053, 0.301649, 0.756863
	packed := PackRGB9E5(r, g, b)
	ur, ug, ub := UnpackRGB9E5(packed)

	check := func(name string, orig, got float64) {
		rel := math.Abs(got-orig) / orig
		if rel > 1.0/512.0+1e-9 {
			t.Errorf("%s: relative error %v exceeds 1/512 (orig=%v got=%v)", name, rel, orig, got)
		}
	}
	check("r", r, ur)
	check("g", g, ug)
	check("b", b, ub)
}

func TestRGB9E5Saturates(t *testing.T) {
	huge := maxRGB9E5 * 1000
	packed := PackRGB9E5(huge, huge, huge)
	r, g, b := UnpackRGB9E5(packed)
	if r > maxRGB9E5*1.01 || g > maxRGB9E5*1.01 || b > maxRGB9E5*1.01 {
		t.Errorf("PackRGB9E5 did not saturate: got (%v,%v,%v), max=%v", r, g, b, maxRGB9E5)
	}
}

func TestBytesPerTexelAllFormats(t *testing.T) {
	tests := []struct {
		t ColorDataType
		want int
	}{
		{R_U8, 1}, {RGBA_U8, 4}, {RGBA_F64, 32}, {RGB332, 1}, {RGB565, 2},
		{RGBA5551, 2}, {RGBA4444, 2}, {RGBA1010102, 4}, {RGB9E5, 4},
	}
	for _, tt := range tests {
		if got := BytesPerTexel(tt.t); got != tt.want {
			t.Errorf("BytesPerTexel(%d) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestS1ClearColorValues(t *testing.T) {
	buf := make([]byte, 4)
	EncodeNorm(RGBA_U8, geom.Vec4{X: 1.0, Y: 0.5, Z: 0.25, W: 1.0}, buf)
	want := []byte{255, 128, 64, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}
