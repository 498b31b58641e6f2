// Package pixelfmt implements the color and pixel-format codecs of the
// rasterizer: the 24 uncompressed {R,RG,RGB,RGBA} x {u8,u16,u32,u64,f32,f64}
// formats plus the six packed formats (RGB332, RGB565, RGBA5551, RGBA4444,
// RGBA1010102, RGB9E5).
//
// Per the "template-per-format codec explosion" design note, conversions
// are not implemented as one generic function with a type switch on every
// call; instead each ColorDataType gets one entry in a dispatch table built
// once at init, and the rasterizer's hot paths index that table instead of
// branching per pixel.
package pixelfmt

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/swrast/geom"
)

// ColorDataType enumerates every pixel format the framebuffer, texture, and
// sampler subsystems understand.
type ColorDataType uint8

const (
	R_U8 ColorDataType = iota
	R_U16
	R_U32
	R_U64
	R_F32
	R_F64
	RG_U8
	RG_U16
	RG_U32
	RG_U64
	RG_F32
	RG_F64
	RGB_U8
	RGB_U16
	RGB_U32
	RGB_U64
	RGB_F32
	RGB_F64
	RGBA_U8
	RGBA_U16
	RGBA_U32
	RGBA_U64
	RGBA_F32
	RGBA_F64

	RGB332
	RGB565
	RGBA5551
	RGBA4444
	RGBA1010102
	RGB9E5

	numColorDataTypes
)

// scalarKind identifies the per-channel storage type of an uncompressed
// format. Packed formats do not use this; they have bespoke codecs.
type scalarKind uint8

const (
	kindU8 scalarKind = iota
	kindU16
	kindU32
	kindU64
	kindF32
	kindF64
)

func (k scalarKind) size() int {
	switch k {
	case kindU8:
		return 1
	case kindU16:
		return 2
	case kindU32, kindF32:
		return 4
	case kindU64, kindF64:
		return 8
	}
	return 0
}

// intMax returns the maximum representable integer value for an integer
// scalarKind. Floats have no fixed max and must not call this.
func (k scalarKind) intMax() uint64 {
	switch k {
	case kindU8:
		return 1<<8 - 1
	case kindU16:
		return 1<<16 - 1
	case kindU32:
		return 1<<32 - 1
	case kindU64:
		return math.MaxUint64
	}
	return 0
}

// Codec is the per-format function-pointer table entry. Decode produces a
// normalized [0,1] RGBA vector (extra channels beyond the format's channel
// count are implicitly 1 for alpha, 0 otherwise, mirroring texture-sampling
// swizzle defaults); Encode is its inverse.
type Codec struct {
	BytesPerTexel int
	NumChannels int
	Decode func(src []byte) geom.Vec4
	Encode func(c geom.Vec4, dst []byte)
}

var codecs [numColorDataTypes]Codec

func init() {
	uncompressed := []struct {
		tag ColorDataType
		channels int
		kind scalarKind
	}{
		{R_U8, 1, kindU8}, {R_U16, 1, kindU16}, {R_U32, 1, kindU32}, {R_U64, 1, kindU64}, {R_F32, 1, kindF32}, {R_F64, 1, kindF64},
		{RG_U8, 2, kindU8}, {RG_U16, 2, kindU16}, {RG_U32, 2, kindU32}, {RG_U64, 2, kindU64}, {RG_F32, 2, kindF32}, {RG_F64, 2, kindF64},
		{RGB_U8, 3, kindU8}, {RGB_U16, 3, kindU16}, {RGB_U32, 3, kindU32}, {RGB_U64, 3, kindU64}, {RGB_F32, 3, kindF32}, {RGB_F64, 3, kindF64},
		{RGBA_U8, 4, kindU8}, {RGBA_U16, 4, kindU16}, {RGBA_U32, 4, kindU32}, {RGBA_U64, 4, kindU64}, {RGBA_F32, 4, kindF32}, {RGBA_F64, 4, kindF64},
	}

	for _, u := range uncompressed {
		channels, kind := u.channels, u.kind
		bpt := channels * kind.size()
		codecs[u.tag] = Codec{
			BytesPerTexel: bpt,
			NumChannels: channels,
			Decode: func(src []byte) geom.Vec4 { return decodeUncompressed(src, channels, kind) },
			Encode: func(c geom.Vec4, dst []byte) { encodeUncompressed(c, dst, channels, kind) },
		}
	}

	codecs[RGB332] = Codec{1, 3, decodeRGB332, encodeRGB332}
	codecs[RGB565] = Codec{2, 3, decodeRGB565, encodeRGB565}
	codecs[RGBA5551] = Codec{2, 4, decodeRGBA5551, encodeRGBA5551}
	codecs[RGBA4444] = Codec{2, 4, decodeRGBA4444, encodeRGBA4444}
	codecs[RGBA1010102] = Codec{4, 4, decodeRGBA1010102, encodeRGBA1010102}
	codecs[RGB9E5] = Codec{4, 3, decodeRGB9E5Vec, encodeRGB9E5Vec}
}

// Lookup returns the codec for a format. Callers on hot paths should cache
// the returned Codec rather than re-indexing per pixel.
func Lookup(t ColorDataType) Codec { return codecs[t] }

// BytesPerTexel returns the storage size in bytes of one texel of format t.
func BytesPerTexel(t ColorDataType) int { return codecs[t].BytesPerTexel }

// NumChannels returns the channel count of format t.
func NumChannels(t ColorDataType) int { return codecs[t].NumChannels }

// channelDefault fills unused channels: alpha defaults to 1 (opaque), color
// channels default to 0.
func channelDefault(v geom.Vec4, channels int) geom.Vec4 {
	switch channels {
	case 1:
		return geom.Vec4{X: v.X, Y: 0, Z: 0, W: 1}
	case 2:
		return geom.Vec4{X: v.X, Y: v.Y, Z: 0, W: 1}
	case 3:
		return geom.Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}
	default:
		return v
	}
}

func decodeUncompressed(src []byte, channels int, kind scalarKind) geom.Vec4 {
	sz := kind.size()
	var out [4]float64
	for i := 0; i < channels; i++ {
		chunk := src[i*sz: i*sz+sz]
		switch kind {
		case kindU8:
			out[i] = float64(chunk[0]) / float64(kindU8.intMax())
		case kindU16:
			out[i] = float64(binary.LittleEndian.Uint16(chunk)) / float64(kindU16.intMax())
		case kindU32:
			out[i] = float64(binary.LittleEndian.Uint32(chunk)) / float64(kindU32.intMax())
		case kindU64:
			out[i] = float64(binary.LittleEndian.Uint64(chunk)) / float64(kindU64.intMax())
		case kindF32:
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
		case kindF64:
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk))
		}
	}
	return channelDefault(geom.Vec4{X: out[0], Y: out[1], Z: out[2], W: out[3]}, channels)
}

func encodeUncompressed(c geom.Vec4, dst []byte, channels int, kind scalarKind) {
	sz := kind.size()
	vals := [4]float64{c.X, c.Y, c.Z, c.W}
	for i := 0; i < channels; i++ {
		chunk := dst[i*sz: i*sz+sz]
		switch kind {
		case kindU8:
			chunk[0] = byte(floorHalf(vals[i] * float64(kindU8.intMax())))
		case kindU16:
			binary.LittleEndian.PutUint16(chunk, uint16(floorHalf(vals[i]*float64(kindU16.intMax()))))
		case kindU32:
			binary.LittleEndian.PutUint32(chunk, uint32(floorHalf(vals[i]*float64(kindU32.intMax()))))
		case kindU64:
			binary.LittleEndian.PutUint64(chunk, uint64(floorHalf(vals[i]*float64(kindU64.intMax()))))
		case kindF32:
			binary.LittleEndian.PutUint32(chunk, math.Float32bits(float32(vals[i])))
		case kindF64:
			binary.LittleEndian.PutUint64(chunk, math.Float64bits(vals[i]))
		}
	}
}

// floorHalf implements the float->integer rounding rule:
// floor(c * max + 0.5). Negative inputs clamp to 0; values above max are
// not clamped here.
func floorHalf(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Floor(x + 0.5)
}

// DecodeNorm decodes one texel of format t at src into a normalized RGBA
// vector in [0,1] per channel (channel components beyond the format's
// count use the defaults documented on Codec.Decode).
func DecodeNorm(t ColorDataType, src []byte) geom.Vec4 {
	return codecs[t].Decode(src)
}

// EncodeNorm encodes a normalized RGBA vector into one texel of format t at
// dst. Out-of-range components should be clamped by the caller (see
// geom.Clamp01); EncodeNorm itself only clamps the lower bound to avoid
// integer underflow on negative input.
func EncodeNorm(t ColorDataType, c geom.Vec4, dst []byte) {
	codecs[t].Encode(c, dst)
}
