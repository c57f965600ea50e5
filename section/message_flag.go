package section

import (
	"github.com/colvex/colvex/endian"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
)

// MessageFlag is the packed flag block at the front of a message header.
type MessageFlag struct {
	// Options is a packed field: bit 0 endianness (0=little, 1=big), bit 1
	// checksum enabled, bits 2-3 reserved, bits 4-15 magic number.
	Options uint16

	// Version is the format version gating legacy decode behavior.
	Version uint8
	// Kind identifies the message as a record batch or dictionary batch.
	Kind uint8
	// Compression is the stream-level compression applied to every buffer in
	// the message body.
	Compression uint8
	// DictFlags carries dictionary batch flags (bit 0: delta batch).
	DictFlags uint8
}

// NewMessageFlag creates a MessageFlag with default settings: little-endian,
// no checksum, current version, no compression.
func NewMessageFlag(kind format.MessageKind) MessageFlag {
	return MessageFlag{
		Options:     MagicMessageOpt,
		Version:     uint8(format.Version2),
		Kind:        uint8(kind),
		Compression: uint8(format.CompressionNone),
	}
}

// Validate checks the magic number, reserved bits, and enum ranges.
func (f MessageFlag) Validate() error {
	if f.Options&MagicNumberMask != MagicMessageOpt {
		return errs.ErrInvalidMagicNumber
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidMagicNumber
	}

	switch format.Version(f.Version) {
	case format.Version1, format.Version2:
	default:
		return errs.ErrInvalidVersion
	}

	switch format.MessageKind(f.Kind) {
	case format.KindRecordBatch, format.KindDictionaryBatch:
	default:
		return errs.ErrInvalidMessageKind
	}

	switch format.CompressionType(f.Compression) {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return errs.ErrInvalidCompressionType
	}

	return nil
}

// GetEndianEngine returns the endian engine for the message body per the
// endianness bit.
func (f MessageFlag) GetEndianEngine() endian.EndianEngine {
	if f.Options&EndiannessMask != 0 {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// IsLittleEndian reports whether the body is stored little-endian.
func (f MessageFlag) IsLittleEndian() bool {
	return f.Options&EndiannessMask == 0
}

// WithLittleEndian marks the body as little-endian.
func (f *MessageFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian marks the body as big-endian.
func (f *MessageFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// HasChecksum reports whether the body checksum field is populated.
func (f MessageFlag) HasChecksum() bool {
	return f.Options&ChecksumMask != 0
}

// WithChecksum enables the body checksum.
func (f *MessageFlag) WithChecksum() {
	f.Options |= ChecksumMask
}

// WithoutChecksum disables the body checksum.
func (f *MessageFlag) WithoutChecksum() {
	f.Options &^= ChecksumMask
}

// GetVersion returns the format version.
func (f MessageFlag) GetVersion() format.Version {
	return format.Version(f.Version)
}

// GetKind returns the message kind.
func (f MessageFlag) GetKind() format.MessageKind {
	return format.MessageKind(f.Kind)
}

// GetCompression returns the stream-level compression type.
func (f MessageFlag) GetCompression() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// IsDelta reports whether a dictionary batch appends to a previously
// registered id instead of replacing it.
func (f MessageFlag) IsDelta() bool {
	return f.DictFlags&DictDeltaMask != 0
}

// WithDelta marks a dictionary batch as a delta batch.
func (f *MessageFlag) WithDelta() {
	f.DictFlags |= DictDeltaMask
}
