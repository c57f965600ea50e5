package bitmap

// Builder accumulates bits one at a time and produces an immutable Bitmap.
// The zero value is ready to use.
type Builder struct {
	data   []byte
	length int
}

// Append adds one bit.
func (b *Builder) Append(v bool) {
	if b.length%8 == 0 {
		b.data = append(b.data, 0)
	}
	if v {
		b.data[b.length/8] |= 1 << uint(b.length%8)
	}
	b.length++
}

// AppendN adds n copies of v.
func (b *Builder) AppendN(n int, v bool) {
	for i := 0; i < n; i++ {
		b.Append(v)
	}
}

// Len returns the number of bits appended so far.
func (b *Builder) Len() int { return b.length }

// Finish returns the accumulated bitmap and resets the builder.
func (b *Builder) Finish() *Bitmap {
	bm := &Bitmap{data: b.data, length: b.length}
	b.data = nil
	b.length = 0

	return bm
}
