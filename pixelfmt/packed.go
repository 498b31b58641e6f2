package pixelfmt

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/swrast/geom"
)

// The packed formats store channels MSB-to-LSB in the layouts documented
// with each decode/encode pair below. All multi-byte packed values are
// little-endian at the byte level (the word itself is LE; the bit layout
// within the word is as given below), stored little-endian wherever the
// packed format fits a native word.

func decodeRGB332(src []byte) geom.Vec4 {
	b := src[0]
	r := (b >> 5) & 0x7
	g := (b >> 2) & 0x7
	bl := b & 0x3
	return geom.Vec4{
		X: float64(r) / 7,
		Y: float64(g) / 7,
		Z: float64(bl) / 3,
		W: 1,
	}
}

func encodeRGB332(c geom.Vec4, dst []byte) {
	r := byte(floorHalf(c.X*7)) & 0x7
	g := byte(floorHalf(c.Y*7)) & 0x7
	b := byte(floorHalf(c.Z*3)) & 0x3
	dst[0] = r<<5 | g<<2 | b
}

func decodeRGB565(src []byte) geom.Vec4 {
	v := binary.LittleEndian.Uint16(src)
	r := (v >> 11) & 0x1F
	g := (v >> 5) & 0x3F
	b := v & 0x1F
	return geom.Vec4{
		X: float64(r) / 31,
		Y: float64(g) / 63,
		Z: float64(b) / 31,
		W: 1,
	}
}

func encodeRGB565(c geom.Vec4, dst []byte) {
	r := uint16(floorHalf(c.X*31)) & 0x1F
	g := uint16(floorHalf(c.Y*63)) & 0x3F
	b := uint16(floorHalf(c.Z*31)) & 0x1F
	binary.LittleEndian.PutUint16(dst, r<<11|g<<5|b)
}

func decodeRGBA5551(src []byte) geom.Vec4 {
	v := binary.LittleEndian.Uint16(src)
	r := (v >> 11) & 0x1F
	g := (v >> 6) & 0x1F
	b := (v >> 1) & 0x1F
	a := v & 0x1
	return geom.Vec4{
		X: float64(r) / 31,
		Y: float64(g) / 31,
		Z: float64(b) / 31,
		W: float64(a),
	}
}

func encodeRGBA5551(c geom.Vec4, dst []byte) {
	r := uint16(floorHalf(c.X*31)) & 0x1F
	g := uint16(floorHalf(c.Y*31)) & 0x1F
	b := uint16(floorHalf(c.Z*31)) & 0x1F
	a := uint16(floorHalf(c.W*1)) & 0x1
	binary.LittleEndian.PutUint16(dst, r<<11|g<<6|b<<1|a)
}

func decodeRGBA4444(src []byte) geom.Vec4 {
	v := binary.LittleEndian.Uint16(src)
	r := (v >> 12) & 0xF
	g := (v >> 8) & 0xF
	b := (v >> 4) & 0xF
	a := v & 0xF
	return geom.Vec4{
		X: float64(r) / 15,
		Y: float64(g) / 15,
		Z: float64(b) / 15,
		W: float64(a) / 15,
	}
}

func encodeRGBA4444(c geom.Vec4, dst []byte) {
	r := uint16(floorHalf(c.X*15)) & 0xF
	g := uint16(floorHalf(c.Y*15)) & 0xF
	b := uint16(floorHalf(c.Z*15)) & 0xF
	a := uint16(floorHalf(c.W*15)) & 0xF
	binary.LittleEndian.PutUint16(dst, r<<12|g<<8|b<<4|a)
}

func decodeRGBA1010102(src []byte) geom.Vec4 {
	v := binary.LittleEndian.Uint32(src)
	r := (v >> 22) & 0x3FF
	g := (v >> 12) & 0x3FF
	b := (v >> 2) & 0x3FF
	a := v & 0x3
	return geom.Vec4{
		X: float64(r) / 1023,
		Y: float64(g) / 1023,
		Z: float64(b) / 1023,
		W: float64(a) / 3,
	}
}

func encodeRGBA1010102(c geom.Vec4, dst []byte) {
	r := uint32(floorHalf(c.X*1023)) & 0x3FF
	g := uint32(floorHalf(c.Y*1023)) & 0x3FF
	b := uint32(floorHalf(c.Z*1023)) & 0x3FF
	a := uint32(floorHalf(c.W*3)) & 0x3
	binary.LittleEndian.PutUint32(dst, r<<22|g<<12|b<<2|a)
}

// RGB9E5 is the 9-9-9-5 shared-exponent format (a scalar, not normalized
// [0,1]; it stores HDR-range RGB). It gets its own Pack/Unpack entry points
// in addition to the Codec table (DecodeNorm/EncodeNorm clamp to [0,1] for
// callers that only want LDR color, matching every other format's [0,1]
// contract); PackRGB9E5/UnpackRGB9E5 below expose the full range for
// callers that need it, e.g. HDR texture authoring in tests.

const (
	rgb9e5ExpBias = 15
	rgb9e5MantBits = 9
	rgb9e5ExpBits = 5
	rgb9e5MaxExp = 1<<rgb9e5ExpBits - 1 // 31
	rgb9e5MantMax = 1<<rgb9e5MantBits - 1
)

// maxRGB9E5 is the largest representable channel value:
// (2^9 - 1)/2^9 * 2^(31-15).
var maxRGB9E5 = float64(rgb9e5MantMax) / float64(1<<rgb9e5MantBits) * math.Pow(2, float64(rgb9e5MaxExp-rgb9e5ExpBias))

// PackRGB9E5 packs an (r,g,b) triple into the 9-9-9-5 shared-exponent
// layout. Inputs above maxRGB9E5 saturate.
func PackRGB9E5(r, g, b float64) uint32 {
	r = clampRange(r, 0, maxRGB9E5)
	g = clampRange(g, 0, maxRGB9E5)
	b = clampRange(b, 0, maxRGB9E5)

	m := math.Max(r, math.Max(g, b))

	expShared := math.Max(float64(-rgb9e5ExpBias-1), math.Floor(log2(m))) + 1 + rgb9e5ExpBias
	denom := math.Pow(2, expShared-rgb9e5ExpBias-rgb9e5MantBits)

	maxMantissa := math.Floor(m/denom + 0.5)
	if maxMantissa == float64(1<<rgb9e5MantBits) {
		denom *= 2
		expShared++
	}
	if expShared > rgb9e5MaxExp {
		// Saturating per open-question resolution: clamp the
		// shared exponent instead of overflowing into a sentinel.
		expShared = rgb9e5MaxExp
		denom = math.Pow(2, expShared-rgb9e5ExpBias-rgb9e5MantBits)
	}

	rm := uint32(math.Floor(r/denom+0.5)) & rgb9e5MantMax
	gm := uint32(math.Floor(g/denom+0.5)) & rgb9e5MantMax
	bm := uint32(math.Floor(b/denom+0.5)) & rgb9e5MantMax
	e := uint32(expShared) & rgb9e5MaxExp

	return rm<<23 | gm<<14 | bm<<5 | e
}

// UnpackRGB9E5 reverses PackRGB9E5.
func UnpackRGB9E5(packed uint32) (r, g, b float64) {
	e := packed & rgb9e5MaxExp
	rm := (packed >> 23) & rgb9e5MantMax
	gm := (packed >> 14) & rgb9e5MantMax
	bm := (packed >> 5) & rgb9e5MantMax

	scale := math.Pow(2, float64(e)-rgb9e5ExpBias-rgb9e5MantBits)
	return float64(rm) * scale, float64(gm) * scale, float64(bm) * scale
}

func decodeRGB9E5Vec(src []byte) geom.Vec4 {
	packed := binary.LittleEndian.Uint32(src)
	r, g, b := UnpackRGB9E5(packed)
	return geom.Vec4{X: clampRange(r, 0, 1), Y: clampRange(g, 0, 1), Z: clampRange(b, 0, 1), W: 1}
}

func encodeRGB9E5Vec(c geom.Vec4, dst []byte) {
	binary.LittleEndian.PutUint32(dst, PackRGB9E5(c.X, c.Y, c.Z))
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func log2(x float64) float64 {
	if x <= 0 {
		return -rgb9e5ExpBias - 1
	}
	return math.Log2(x)
}
