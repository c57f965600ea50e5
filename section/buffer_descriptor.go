package section

import (
	"github.com/colvex/colvex/endian"
	"github.com/colvex/colvex/errs"
)

// BufferDescriptor locates one physical buffer inside a message body: a byte
// offset relative to the body start and a byte length. Descriptors are stored
// after the field nodes in slot order, 16 bytes each.
type BufferDescriptor struct {
	// Offset is the byte offset of the buffer relative to the body start.
	//
	// Offset: 0, Size: 8 bytes
	Offset int64

	// Length is the byte length of the buffer region, including the
	// decompressed-length prefix when stream compression is enabled.
	//
	// Offset: 8, Size: 8 bytes
	Length int64
}

// WriteToSlice writes the descriptor to a pre-allocated slice and returns the
// next write position.
func (d BufferDescriptor) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], uint64(d.Offset))
	engine.PutUint64(data[offset+8:offset+16], uint64(d.Length))

	return offset + BufferDescriptorSize
}

// ParseBufferDescriptor parses a BufferDescriptor from a byte slice.
func ParseBufferDescriptor(data []byte, engine endian.EndianEngine) (BufferDescriptor, error) {
	if len(data) < BufferDescriptorSize {
		return BufferDescriptor{}, errs.ErrInvalidHeaderSize
	}

	return BufferDescriptor{
		Offset: int64(engine.Uint64(data[0:8])),
		Length: int64(engine.Uint64(data[8:16])),
	}, nil
}
