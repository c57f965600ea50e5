// Package errs defines the sentinel errors shared across colvex packages.
//
// Errors are grouped by failure class. Callers match them with errors.Is;
// packages wrap them with fmt.Errorf("%w: ...") to attach context.
// Refinements of stream corruption (bad magic, checksum mismatch, truncated
// records) wrap ErrCorrupted so errors.Is(err, ErrCorrupted) matches every
// corruption flavor.
package errs

import (
	"errors"
	"fmt"
)

// Stream corruption. Any deviation between the declared metadata and the
// bytes actually present is corruption, never a recoverable condition.
var (
	ErrCorrupted = errors.New("corrupted message")

	ErrInvalidMagicNumber = fmt.Errorf("%w: invalid magic number", ErrCorrupted)
	ErrInvalidHeaderSize  = fmt.Errorf("%w: invalid header size", ErrCorrupted)
	ErrInvalidVersion     = fmt.Errorf("%w: invalid format version", ErrCorrupted)
	ErrInvalidMessageKind = fmt.Errorf("%w: invalid message kind", ErrCorrupted)
	ErrChecksumMismatch   = fmt.Errorf("%w: body checksum mismatch", ErrCorrupted)
	ErrNoFieldNodes       = fmt.Errorf("%w: field node queue exhausted", ErrCorrupted)
	ErrNoBuffers          = fmt.Errorf("%w: buffer descriptor queue exhausted", ErrCorrupted)
	ErrQueueNotDrained    = fmt.Errorf("%w: leftover field nodes or buffers after decode", ErrCorrupted)
	ErrBufferOutOfBounds  = fmt.Errorf("%w: buffer descriptor exceeds message body", ErrCorrupted)
)

// Schema and type errors.
var (
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrUnsupportedType = errors.New("unsupported data type")
)

// Compression errors.
var (
	ErrCompression            = errors.New("compression error")
	ErrInvalidCompressionType = fmt.Errorf("%w: invalid compression type", ErrCompression)
	ErrDecompressedSize       = fmt.Errorf("%w: decompressed size mismatch", ErrCompression)
)

// Dictionary errors.
var (
	ErrDictionaryNotFound      = errors.New("dictionary id not found")
	ErrDeltaDictionary         = errors.New("delta dictionary batches are not supported")
	ErrDictionaryKeyOutOfRange = errors.New("dictionary key out of range")
)

// Array construction invariants.
var (
	ErrInvalidOffsets  = errors.New("invalid offsets buffer")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrInvalidValidity = errors.New("validity length mismatch")
	ErrEmptyStruct     = errors.New("struct type must declare at least one field")
)
