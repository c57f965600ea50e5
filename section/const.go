package section

// Bit layout of the packed options word (bytes 0-1 of every message header,
// always stored little-endian so the endianness bit can be read before the
// engine is known).
const (
	EndiannessMask   = 0x0001 // bit 0: 0=little-endian body, 1=big-endian body
	ChecksumMask     = 0x0002 // bit 1: body checksum present
	ReservedBitsMask = 0x000C // bits 2-3: reserved, must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15: magic number

	// MagicMessageOpt identifies a colvex message header (bits 4-15).
	MagicMessageOpt = 0xCE10
)

// Dictionary flag bits (header byte 5, dictionary batch messages only).
const (
	DictDeltaMask = 0x01 // bit 0: batch appends to a previously registered id
)

// Fixed record sizes in bytes.
const (
	HeaderSize           = 40 // fixed message header size
	FieldNodeSize        = 16 // per-array metadata record
	BufferDescriptorSize = 16 // per-buffer metadata record
)
