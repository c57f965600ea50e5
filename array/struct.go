package array

import (
	"fmt"

	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
)

// Struct is a nested array with one child array per declared field. All
// children share the struct's length.
type Struct struct {
	baseArray
	children []Array
}

// NewStruct creates a struct array of the given length.
//
// Enforced invariants:
//   - the type declares at least one field
//   - children count equals the declared field count
//   - every child's type equals its declared field type exactly
//   - every child's length equals length
func NewStruct(dtype *datatype.StructType, length int, children []Array, validity *bitmap.Bitmap) (*Struct, error) {
	fields := dtype.Fields()
	if len(fields) == 0 {
		return nil, errs.ErrEmptyStruct
	}
	if len(children) != len(fields) {
		return nil, fmt.Errorf("%w: %d declared fields, %d children",
			errs.ErrSchemaMismatch, len(fields), len(children))
	}

	for i, child := range children {
		if !datatype.TypeEqual(fields[i].Type, child.DataType()) {
			return nil, fmt.Errorf("%w: field %q declares %s, child has %s",
				errs.ErrSchemaMismatch, fields[i].Name, fields[i].Type, child.DataType())
		}
		if child.Len() != length {
			return nil, fmt.Errorf("%w: field %q has length %d, struct has length %d",
				errs.ErrLengthMismatch, fields[i].Name, child.Len(), length)
		}
	}

	base, err := newBase(dtype, length, validity)
	if err != nil {
		return nil, err
	}

	return &Struct{baseArray: base, children: children}, nil
}

// NumFields returns the number of child arrays.
func (a *Struct) NumFields() int { return len(a.children) }

// Field returns the i-th child array.
func (a *Struct) Field(i int) Array { return a.children[i] }
