package format

type (
	Version         uint8
	MessageKind     uint8
	CompressionType uint8
)

const (
	// Version1 is the legacy format version. Streams written by version 1
	// producers may omit the offsets buffer of empty variable-length arrays.
	Version1 Version = 0x1
	// Version2 is the current format version.
	Version2 Version = 0x2

	KindRecordBatch     MessageKind = 0x1 // KindRecordBatch carries one batch of column arrays.
	KindDictionaryBatch MessageKind = 0x2 // KindDictionaryBatch registers a dictionary values array.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "V1"
	case Version2:
		return "V2"
	default:
		return "Unknown"
	}
}

func (k MessageKind) String() string {
	switch k {
	case KindRecordBatch:
		return "RecordBatch"
	case KindDictionaryBatch:
		return "DictionaryBatch"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
