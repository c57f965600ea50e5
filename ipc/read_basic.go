package ipc

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/colvex/colvex/bitmap"
	"github.com/colvex/colvex/buffer"
	"github.com/colvex/colvex/compress"
	"github.com/colvex/colvex/endian"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
	"github.com/colvex/colvex/section"
)

// decodeContext is the mutable state threaded by reference through one
// message's recursive decode: the metadata cursor, the body reader, and the
// message-level flags. It is not safe for concurrent use; independent
// messages get independent contexts.
type decodeContext struct {
	cur         *cursor
	r           io.ReadSeeker
	blockOffset int64
	bodyLen     int64
	engine      endian.EndianEngine
	sameOrder   bool
	codec       compress.Codec // nil when the message declares no compression
	version     format.Version
	dicts       *Dictionaries
}

func newDecodeContext(msg *Message, dicts *Dictionaries, r io.ReadSeeker, blockOffset int64) (*decodeContext, error) {
	engine := msg.Header.Flag.GetEndianEngine()

	var codec compress.Codec
	if ct := msg.Header.Flag.GetCompression(); ct != format.CompressionNone {
		c, err := compress.CreateCodec(ct, "message body")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, ct)
		}
		codec = c
	}

	return &decodeContext{
		cur:         newCursor(msg.Nodes, msg.Buffers),
		r:           r,
		blockOffset: blockOffset,
		bodyLen:     int64(len(msg.Body)),
		engine:      engine,
		sameOrder:   endian.CompareNativeEndian(engine),
		codec:       codec,
		version:     msg.Header.Flag.GetVersion(),
		dicts:       dicts,
	}, nil
}

// readRegion reads the raw bytes a descriptor points at: absolute position
// blockOffset + desc.Offset, desc.Length bytes. The returned slice is a
// fresh allocation owned by the caller.
func (ctx *decodeContext) readRegion(desc section.BufferDescriptor) ([]byte, error) {
	if desc.Offset < 0 || desc.Length < 0 || desc.Length > ctx.bodyLen || desc.Offset > ctx.bodyLen-desc.Length {
		return nil, fmt.Errorf("%w: offset %d, length %d, body %d bytes",
			errs.ErrBufferOutOfBounds, desc.Offset, desc.Length, ctx.bodyLen)
	}
	if desc.Length == 0 {
		return nil, nil
	}

	if _, err := ctx.r.Seek(ctx.blockOffset+desc.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to buffer at %d: %s", errs.ErrCorrupted, desc.Offset, err)
	}

	data := make([]byte, desc.Length)
	if _, err := io.ReadFull(ctx.r, data); err != nil {
		return nil, fmt.Errorf("%w: read buffer of %d bytes at %d: %s",
			errs.ErrCorrupted, desc.Length, desc.Offset, err)
	}

	return data, nil
}

// readBytes consumes the next buffer descriptor and returns exactly need
// payload bytes, undoing stream compression when configured.
//
// With compression enabled, the region's first 8 bytes hold the signed
// decompressed length; -1 marks this particular buffer as stored raw even
// though the stream is compressed. Zero-length regions carry no prefix.
func (ctx *decodeContext) readBytes(need int) ([]byte, error) {
	desc, err := ctx.cur.popBuffer()
	if err != nil {
		return nil, err
	}

	raw, err := ctx.readRegion(desc)
	if err != nil {
		return nil, err
	}

	payload := raw
	if ctx.codec != nil && len(raw) > 0 {
		if len(raw) < 8 {
			return nil, fmt.Errorf("%w: compressed buffer of %d bytes has no length prefix",
				errs.ErrCorrupted, len(raw))
		}

		declared := int64(ctx.engine.Uint64(raw[:8]))
		if declared == rawBufferSentinel {
			payload = raw[8:]
		} else {
			payload, err = ctx.codec.Decompress(raw[8:])
			if err != nil {
				return nil, fmt.Errorf("%w: %s", errs.ErrCompression, err)
			}
			if int64(len(payload)) != declared || len(payload) < need {
				return nil, fmt.Errorf("%w: got %d bytes, declared %d, need %d",
					errs.ErrDecompressedSize, len(payload), declared, need)
			}
		}
	}

	if len(payload) < need {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, need %d",
			errs.ErrCorrupted, len(payload), need)
	}

	return payload[:need], nil
}

// rawBufferSentinel in the decompressed-length prefix marks a buffer stored
// uncompressed inside a compressed message. A variable rather than a
// constant: its negative bit pattern must convert to the unsigned prefix
// field, which constant expressions reject.
var rawBufferSentinel = int64(-1)

// readBuffer consumes one descriptor and decodes count elements of type T,
// byte-swapping when the message byte order disagrees with the host.
func readBuffer[T buffer.Scalar](ctx *decodeContext, count int) (buffer.Buffer[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))

	data, err := ctx.readBytes(count * elemSize)
	if err != nil {
		return buffer.Buffer[T]{}, err
	}
	if !ctx.sameOrder {
		endian.SwapInPlace(data, elemSize)
	}

	out := make([]T, count)
	if count > 0 {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), count*elemSize)
		copy(dst, data)
	}

	return buffer.FromSlice(out), nil
}

// readBitmapBuffer consumes one descriptor and decodes a bit-packed region of
// length bits. Bit-packed buffers are byte sequences and need no swapping.
func (ctx *decodeContext) readBitmapBuffer(length int) (*bitmap.Bitmap, error) {
	data, err := ctx.readBytes(bitmap.ByteCount(length))
	if err != nil {
		return nil, err
	}

	return bitmap.New(data, length)
}

// readValidity consumes the validity buffer slot, which the format reserves
// unconditionally, and decodes it only when the node declares nulls. A nil
// result means every element is valid.
func (ctx *decodeContext) readValidity(node section.FieldNode) (*bitmap.Bitmap, error) {
	if node.NullCount == 0 {
		// The slot is consumed even when the bitmap is skipped.
		if _, err := ctx.cur.popBuffer(); err != nil {
			return nil, err
		}

		return nil, nil
	}

	return ctx.readBitmapBuffer(int(node.Length))
}
