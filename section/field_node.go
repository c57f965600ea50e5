package section

import (
	"github.com/colvex/colvex/endian"
	"github.com/colvex/colvex/errs"
)

// FieldNode is the per-array metadata record: the declared element count and
// null count of one array in the message. Nodes are stored after the header
// in schema preorder, 16 bytes each.
type FieldNode struct {
	// Length is the declared element count.
	//
	// Offset: 0, Size: 8 bytes
	Length int64

	// NullCount is the declared number of null elements. Zero means the
	// validity bitmap slot may be empty.
	//
	// Offset: 8, Size: 8 bytes
	NullCount int64
}

// WriteToSlice writes the node to a pre-allocated slice and returns the next
// write position.
func (n FieldNode) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], uint64(n.Length))
	engine.PutUint64(data[offset+8:offset+16], uint64(n.NullCount))

	return offset + FieldNodeSize
}

// ParseFieldNode parses a FieldNode from a byte slice.
func ParseFieldNode(data []byte, engine endian.EndianEngine) (FieldNode, error) {
	if len(data) < FieldNodeSize {
		return FieldNode{}, errs.ErrInvalidHeaderSize
	}

	return FieldNode{
		Length:    int64(engine.Uint64(data[0:8])),
		NullCount: int64(engine.Uint64(data[8:16])),
	}, nil
}
