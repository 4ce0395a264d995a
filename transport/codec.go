// Package transport wraps a finished block buffer in a compression and
// checksum envelope. It sits above the core block layout (§1: "out of
// scope ... compression of the serialized block (orthogonal; applied
// above this layer)") and never influences the block's own byte layout.
package transport

import (
	"fmt"

	"github.com/colsm/vblock/format"
)

// Compressor compresses a finished block buffer before it is persisted.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions for one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// GetCodec returns the built-in Codec for the given compression type.
func GetCodec(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NoOpCompressor{}, nil
	case format.CompressionZstd:
		return ZstdCompressor{}, nil
	case format.CompressionS2:
		return S2Compressor{}, nil
	case format.CompressionLZ4:
		return LZ4Compressor{}, nil
	default:
		return nil, fmt.Errorf("transport: unsupported compression type: %s", t)
	}
}
