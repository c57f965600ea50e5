package array

import (
	"fmt"
	"unsafe"

	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/buffer"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
)

// Primitive is a fixed-width scalar array backed by one data buffer.
type Primitive[T buffer.Scalar] struct {
	baseArray
	values buffer.Buffer[T]
}

// NewPrimitive creates a primitive array. The element width of T must match
// the declared byte width of dtype, and the validity bitmap, when present,
// must cover exactly values.Len() elements.
func NewPrimitive[T buffer.Scalar](dtype datatype.FixedWidth, values buffer.Buffer[T], validity *bitmap.Bitmap) (*Primitive[T], error) {
	var zero T
	if int(unsafe.Sizeof(zero)) != dtype.ByteWidth() {
		return nil, fmt.Errorf("%w: %s declares %d-byte elements, buffer holds %d-byte elements",
			errs.ErrSchemaMismatch, dtype, dtype.ByteWidth(), unsafe.Sizeof(zero))
	}

	base, err := newBase(dtype, values.Len(), validity)
	if err != nil {
		return nil, err
	}

	return &Primitive[T]{baseArray: base, values: values}, nil
}

// Values returns the backing element slice. The slice must not be modified.
func (a *Primitive[T]) Values() []T { return a.values.Values() }

// Value returns the i-th element. The value of a null element is unspecified.
func (a *Primitive[T]) Value(i int) T { return a.values.At(i) }
