// Package format defines the small, shared value types used across the
// vertical block packages: the column encoding tag and the transport
// envelope's compression tag.
package format

// EncodingType identifies the on-disk encoding of a single column stream.
// It is stored as a single byte alongside the column's size in a section
// header descriptor.
type EncodingType uint8

const (
	// Plain stores values back-to-back with no transformation: repeated
	// (length, bytes) for byte columns, fixed-width little-endian
	// integers for integer columns.
	Plain EncodingType = 0
	// Length stores a byte column as an offset table followed by the
	// concatenated payload, enabling O(1) random access.
	Length EncodingType = 1
	// Bitpack stores a u32 column as a bit-width-prefixed packed stream.
	Bitpack EncodingType = 2
	// Runlength stores a column as repeated (value, count) runs. The
	// count is a fixed uint32 for the type column and a varint for the
	// varint run-length variant.
	Runlength EncodingType = 3
)

func (e EncodingType) String() string {
	switch e {
	case Plain:
		return "Plain"
	case Length:
		return "Length"
	case Bitpack:
		return "Bitpack"
	case Runlength:
		return "Runlength"
	default:
		return "Unknown"
	}
}

// CompressionType identifies the codec used by the transport envelope to
// compress a finished block buffer. It has no bearing on the block's own
// byte layout, which is never compressed internally.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0
	CompressionZstd CompressionType = 1
	CompressionS2   CompressionType = 2
	CompressionLZ4  CompressionType = 3
)

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

// MagicNumber is the fixed 32-bit constant written to the last four bytes
// of every block trailer. A reader rejects any block whose trailing four
// bytes do not match.
const MagicNumber uint32 = 0x564c4b31 // "VLK1"
