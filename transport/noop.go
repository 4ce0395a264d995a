package transport

// NoOpCompressor passes data through unchanged (format.CompressionNone).
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// Compress returns data unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data unchanged.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }
