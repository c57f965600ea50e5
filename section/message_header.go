package section

import (
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
)

// MessageHeader is the fixed-size header at the start of every message.
//
// Byte layout (multi-byte fields use the endianness declared by the flag
// block; the flag block itself is always little-endian):
//
//	0-1   Options (magic, endianness bit, checksum bit)
//	2     Version
//	3     Kind
//	4     Compression
//	5     DictFlags
//	6-7   reserved, zero
//	8-15  DictionaryID (dictionary batches; zero otherwise)
//	16-19 NodeCount
//	20-23 BufferCount
//	24-31 BodyLength
//	32-39 Checksum (xxHash64 of the body; zero when disabled)
type MessageHeader struct {
	Flag         MessageFlag
	DictionaryID int64
	NodeCount    uint32
	BufferCount  uint32
	BodyLength   uint64
	Checksum     uint64
}

// NewMessageHeader creates a header for the given message kind with default
// flags. Counts and lengths are filled in by the writer.
func NewMessageHeader(kind format.MessageKind) *MessageHeader {
	return &MessageHeader{
		Flag: NewMessageFlag(kind),
	}
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
func (h *MessageHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options word is always little-endian; it carries the endianness bit
	// governing the rest of the header.
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Version = data[2]
	h.Flag.Kind = data[3]
	h.Flag.Compression = data[4]
	h.Flag.DictFlags = data[5]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.DictionaryID = int64(engine.Uint64(data[8:16]))
	h.NodeCount = engine.Uint32(data[16:20])
	h.BufferCount = engine.Uint32(data[20:24])
	h.BodyLength = engine.Uint64(data[24:32])
	h.Checksum = engine.Uint64(data[32:40])

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *MessageHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Version
	b[3] = h.Flag.Kind
	b[4] = h.Flag.Compression
	b[5] = h.Flag.DictFlags

	engine := h.Flag.GetEndianEngine()
	engine.PutUint64(b[8:16], uint64(h.DictionaryID))
	engine.PutUint32(b[16:20], h.NodeCount)
	engine.PutUint32(b[20:24], h.BufferCount)
	engine.PutUint64(b[24:32], h.BodyLength)
	engine.PutUint64(b[32:40], h.Checksum)

	return b
}

// ParseMessageHeader parses a MessageHeader from the front of data.
func ParseMessageHeader(data []byte) (MessageHeader, error) {
	if len(data) < HeaderSize {
		return MessageHeader{}, errs.ErrInvalidHeaderSize
	}

	h := MessageHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return MessageHeader{}, err
	}

	return h, nil
}
