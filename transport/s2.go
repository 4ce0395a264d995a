package transport

import "github.com/klauspost/compress/s2"

// S2Compressor compresses with S2, a Snappy-compatible codec tuned for
// speed over ratio (format.CompressionS2).
type S2Compressor struct{}

var _ Codec = S2Compressor{}

// Compress compresses data with S2.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2-compressed data.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
