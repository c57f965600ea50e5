// Package bitmap provides the immutable bit vector used for validity
// tracking and bit-packed boolean values.
//
// A nil *Bitmap means "no bitmap": for validity this is semantically
// "all elements valid", which is distinct from an allocated bitmap with every
// bit set. Callers must preserve that distinction.
package bitmap

import (
	"math/bits"

	"github.com/colvex/colvex/errs"
)

// Bitmap is an immutable fixed-length bit vector. The zero value is an empty
// bitmap of length 0.
type Bitmap struct {
	data   []byte
	length int
}

// New creates a bitmap of length bits backed by data. data must hold at
// least (length+7)/8 bytes; the bitmap takes ownership and callers must not
// modify data afterwards.
func New(data []byte, length int) (*Bitmap, error) {
	if length < 0 || len(data) < ByteCount(length) {
		return nil, errs.ErrInvalidValidity
	}

	return &Bitmap{data: data, length: length}, nil
}

// FromBools builds a bitmap with one bit per element of vals.
func FromBools(vals []bool) *Bitmap {
	data := make([]byte, ByteCount(len(vals)))
	for i, v := range vals {
		if v {
			data[i/8] |= 1 << uint(i%8)
		}
	}

	return &Bitmap{data: data, length: len(vals)}
}

// ByteCount returns the number of bytes needed to hold length bits.
func ByteCount(length int) int {
	return (length + 7) / 8
}

// Len returns the number of bits.
func (b *Bitmap) Len() int { return b.length }

// Get returns the i-th bit. It panics when i is out of range, matching slice
// indexing semantics.
func (b *Bitmap) Get(i int) bool {
	if i < 0 || i >= b.length {
		panic("bitmap: index out of range")
	}

	return b.data[i/8]&(1<<uint(i%8)) != 0
}

// Bytes returns the backing bytes. The slice must not be modified.
func (b *Bitmap) Bytes() []byte { return b.data }

// SetCount returns the number of set bits.
func (b *Bitmap) SetCount() int {
	if b.length == 0 {
		return 0
	}

	count := 0
	full := b.length / 8
	for _, v := range b.data[:full] {
		count += bits.OnesCount8(v)
	}

	// Mask the trailing partial byte so padding bits do not count.
	if rem := b.length % 8; rem != 0 {
		mask := byte(1<<uint(rem)) - 1
		count += bits.OnesCount8(b.data[full] & mask)
	}

	return count
}

// UnsetCount returns the number of clear bits. For a validity bitmap this is
// the null count.
func (b *Bitmap) UnsetCount() int {
	return b.length - b.SetCount()
}
