package array

import (
	"fmt"
	"unsafe"

	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/buffer"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
)

// VarBinary is a variable-length byte array (utf8 or opaque binary) with
// offsets of type O delimiting each element inside a shared data buffer.
type VarBinary[O buffer.Offset] struct {
	baseArray
	offsets buffer.Buffer[O]
	data    []byte
}

// NewVarBinary creates a variable-length binary array.
//
// Enforced invariants:
//   - dtype is utf8/binary with an offset width matching O
//   - offsets holds element count + 1 entries (at least one)
//   - offsets are non-decreasing and non-negative
//   - the final offset does not exceed the data buffer length
//
// offsets[0] need not be zero: an array sliced out of a larger buffer keeps
// the parent's data buffer and a shifted offsets window.
func NewVarBinary[O buffer.Offset](dtype datatype.DataType, offsets buffer.Buffer[O], data []byte, validity *bitmap.Bitmap) (*VarBinary[O], error) {
	if err := checkVarBinaryType[O](dtype); err != nil {
		return nil, err
	}
	if err := checkOffsets(offsets, int64(len(data))); err != nil {
		return nil, fmt.Errorf("%s: %w", dtype, err)
	}

	base, err := newBase(dtype, offsets.Len()-1, validity)
	if err != nil {
		return nil, err
	}

	return &VarBinary[O]{baseArray: base, offsets: offsets, data: data}, nil
}

func checkVarBinaryType[O buffer.Offset](dtype datatype.DataType) error {
	var zero O
	wide := unsafe.Sizeof(zero) == 8

	switch dtype.ID() {
	case datatype.UTF8, datatype.BINARY:
		if !wide {
			return nil
		}
	case datatype.LARGE_UTF8, datatype.LARGE_BINARY:
		if wide {
			return nil
		}
	}

	return fmt.Errorf("%w: %s cannot carry %d-byte offsets", errs.ErrSchemaMismatch, dtype, unsafe.Sizeof(zero))
}

// checkOffsets validates the shared offsets invariants: at least one entry,
// non-negative, non-decreasing, final entry within the referenced region.
func checkOffsets[O buffer.Offset](offsets buffer.Buffer[O], regionLen int64) error {
	if offsets.Len() == 0 {
		return fmt.Errorf("%w: offsets buffer is empty", errs.ErrInvalidOffsets)
	}

	vals := offsets.Values()
	if vals[0] < 0 {
		return fmt.Errorf("%w: first offset %d is negative", errs.ErrInvalidOffsets, vals[0])
	}
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1] {
			return fmt.Errorf("%w: offset %d decreases from %d to %d",
				errs.ErrInvalidOffsets, i, vals[i-1], vals[i])
		}
	}
	if last := int64(vals[len(vals)-1]); last > regionLen {
		return fmt.Errorf("%w: final offset %d exceeds region of %d elements",
			errs.ErrInvalidOffsets, last, regionLen)
	}

	return nil
}

// Offsets returns the offsets slice. The slice must not be modified.
func (a *VarBinary[O]) Offsets() []O { return a.offsets.Values() }

// Data returns the shared data buffer. The slice must not be modified.
func (a *VarBinary[O]) Data() []byte { return a.data }

// Value returns the i-th element's bytes. The returned slice aliases the
// shared data buffer and must not be modified.
func (a *VarBinary[O]) Value(i int) []byte {
	return a.data[a.offsets.At(i):a.offsets.At(i+1)]
}

// ValueString returns the i-th element as a string.
func (a *VarBinary[O]) ValueString(i int) string {
	return string(a.Value(i))
}
