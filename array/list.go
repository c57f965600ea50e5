package array

import (
	"fmt"
	"unsafe"

	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/buffer"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
)

// List is a variable-length list array: offsets of type O delimit each
// element's slice of a single shared child array.
type List[O buffer.Offset] struct {
	baseArray
	offsets buffer.Buffer[O]
	child   Array
}

// NewList creates a list array.
//
// Enforced invariants:
//   - dtype is list/large_list with an offset width matching O
//   - the child's type equals the declared element type exactly
//   - offsets holds element count + 1 entries, non-decreasing, and the final
//     offset does not exceed the child length
func NewList[O buffer.Offset](dtype datatype.DataType, offsets buffer.Buffer[O], child Array, validity *bitmap.Bitmap) (*List[O], error) {
	elem, err := listElemField[O](dtype)
	if err != nil {
		return nil, err
	}
	if !datatype.TypeEqual(elem.Type, child.DataType()) {
		return nil, fmt.Errorf("%w: %s declares child %s, got %s",
			errs.ErrSchemaMismatch, dtype, elem.Type, child.DataType())
	}
	if err := checkOffsets(offsets, int64(child.Len())); err != nil {
		return nil, fmt.Errorf("%s: %w", dtype, err)
	}

	base, err := newBase(dtype, offsets.Len()-1, validity)
	if err != nil {
		return nil, err
	}

	return &List[O]{baseArray: base, offsets: offsets, child: child}, nil
}

func listElemField[O buffer.Offset](dtype datatype.DataType) (datatype.Field, error) {
	var zero O
	wide := unsafe.Sizeof(zero) == 8

	switch dt := dtype.(type) {
	case *datatype.ListType:
		if !wide {
			return dt.Elem(), nil
		}
	case *datatype.LargeListType:
		if wide {
			return dt.Elem(), nil
		}
	}

	return datatype.Field{}, fmt.Errorf("%w: %s cannot carry %d-byte offsets",
		errs.ErrSchemaMismatch, dtype, unsafe.Sizeof(zero))
}

// Offsets returns the offsets slice. The slice must not be modified.
func (a *List[O]) Offsets() []O { return a.offsets.Values() }

// Values returns the shared child array.
func (a *List[O]) Values() Array { return a.child }

// ValueOffsets returns the child index range [start, end) of the i-th list.
func (a *List[O]) ValueOffsets(i int) (int64, int64) {
	return int64(a.offsets.At(i)), int64(a.offsets.At(i + 1))
}

// ValueLen returns the length of the i-th list.
func (a *List[O]) ValueLen(i int) int {
	start, end := a.ValueOffsets(i)
	return int(end - start)
}
