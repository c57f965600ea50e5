package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	bb.WriteByteValue('!')

	require.Equal(t, 6, bb.Len())
	require.Equal(t, []byte("hello!"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	_, _ = bb.Write([]byte{1, 2})

	region := bb.ExtendOrGrow(8)
	require.Len(t, region, 8)
	require.Equal(t, make([]byte, 8), region)
	require.Equal(t, 10, bb.Len())

	// In-place writes land in the buffer.
	region[0] = 0xAA
	require.Equal(t, byte(0xAA), bb.Bytes()[2])
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", out.String())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	reused := p.Get()
	require.Equal(t, 0, reused.Len())

	// Oversized buffers are dropped rather than pooled.
	huge := NewByteBuffer(8)
	huge.B = make([]byte, 0, 128)
	p.Put(huge)

	p.Put(nil) // must not panic
}

func TestMessageBufferPool(t *testing.T) {
	bb := GetMessageBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	PutMessageBuffer(bb)
}
