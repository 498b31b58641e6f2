package mesh

import "encoding/binary"

// IndexType enumerates the index buffer element type.
type IndexType uint8

const (
	IndexU8 IndexType = iota
	IndexU16
	IndexU32
)

// IndexBuffer holds the raw element indices of an indexed draw.
type IndexBuffer struct {
	Data []byte
	Type IndexType
}

// NewIndexBuffer allocates an IndexBuffer backed by a copy of data.
func NewIndexBuffer(data []byte, t IndexType) *IndexBuffer {
	return &IndexBuffer{Data: append([]byte(nil), data...), Type: t}
}

func elemSize(t IndexType) int {
	switch t {
	case IndexU8:
		return 1
	case IndexU16:
		return 2
	case IndexU32:
		return 4
	}
	return 0
}

// Len reports the number of indices stored.
func (ib *IndexBuffer) Len() int {
	sz := elemSize(ib.Type)
	if sz == 0 {
		return 0
	}
	return len(ib.Data) / sz
}

// At returns the vertex index at position i.
func (ib *IndexBuffer) At(i int) uint32 {
	switch ib.Type {
	case IndexU8:
		return uint32(ib.Data[i])
	case IndexU16:
		return uint32(binary.LittleEndian.Uint16(ib.Data[i*2:]))
	case IndexU32:
		return binary.LittleEndian.Uint32(ib.Data[i*4:])
	}
	return 0
}
