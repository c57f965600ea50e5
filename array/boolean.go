package array

import (
	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/datatype"
)

// Boolean is a bit-packed boolean array.
type Boolean struct {
	baseArray
	values *bitmap.Bitmap
}

// NewBoolean creates a boolean array from a bit-packed value bitmap. The
// validity bitmap, when present, must cover exactly values.Len() elements.
func NewBoolean(values *bitmap.Bitmap, validity *bitmap.Bitmap) (*Boolean, error) {
	base, err := newBase(datatype.Boolean, values.Len(), validity)
	if err != nil {
		return nil, err
	}

	return &Boolean{baseArray: base, values: values}, nil
}

// Value returns the i-th element. The value of a null element is unspecified.
func (a *Boolean) Value(i int) bool { return a.values.Get(i) }

// Values returns the bit-packed value bitmap.
func (a *Boolean) Values() *bitmap.Bitmap { return a.values }
