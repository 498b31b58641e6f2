package mesh

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFetchF32Attrib(t *testing.T) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(-2.5))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(0.25))

	vb := NewVertexBuffer(buf)
	var va VertexArray
	va.SetAttrib(0, AttribBinding{BufferIndex: 0, Offset: 0, Stride: 12, Dimension: 3, DataType: AttribF32})

	got := va.Fetch([]*VertexBuffer{vb}, 0, 0)
	want := [4]float64{1.5, -2.5, 0.25, 0}
	if got != want {
		t.Fatalf("Fetch() = %v, want %v", got, want)
	}
}

func TestFetchU8Attrib(t *testing.T) {
	vb := NewVertexBuffer([]byte{10, 20, 30, 40, 255, 0, 0, 0})
	var va VertexArray
	va.SetAttrib(0, AttribBinding{Offset: 0, Stride: 4, Dimension: 4, DataType: AttribU8})

	got := va.Fetch([]*VertexBuffer{vb}, 0, 1)
	want := [4]float64{255, 0, 0, 0}
	if got != want {
		t.Fatalf("Fetch() = %v, want %v", got, want)
	}
}

func TestFetchDisabledAttribIsZero(t *testing.T) {
	var va VertexArray
	got := va.Fetch(nil, 3, 0)
	if got != ([4]float64{}) {
		t.Fatalf("Fetch() on disabled attrib = %v, want zero", got)
	}
}

func TestF16ToF32(t *testing.T) {
	cases := []struct {
		bits uint16
		want float32
	}{
		{0x3C00, 1.0},
		{0xC000, -2.0},
		{0x0000, 0.0},
	}
	for _, c := range cases {
		got := f16tof32(c.bits)
		if got != c.want {
			t.Errorf("f16tof32(%#04x) = %v, want %v", c.bits, got, c.want)
		}
	}
}

func TestIndexBufferAt(t *testing.T) {
	raw := make([]byte, 6)
	binary.LittleEndian.PutUint16(raw[0:], 5)
	binary.LittleEndian.PutUint16(raw[2:], 300)
	binary.LittleEndian.PutUint16(raw[4:], 65535)

	ib := NewIndexBuffer(raw, IndexU16)
	if ib.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ib.Len())
	}
	want := []uint32{5, 300, 65535}
	for i, w := range want {
		if got := ib.At(i); got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestPrimitiveModeVerticesPerPrimitive(t *testing.T) {
	cases := map[PrimitiveMode]int{
		Points: 1,
		Lines: 2,
		Triangles: 3,
		TriangleWire: 3,
	}
	for mode, want := range cases {
		if got := mode.VerticesPerPrimitive(); got != want {
			t.Errorf("%v.VerticesPerPrimitive() = %d, want %d", mode, got, want)
		}
	}
}
