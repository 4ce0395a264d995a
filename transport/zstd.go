package transport

// ZstdCompressor compresses with Zstandard, favoring compression ratio
// over speed (format.CompressionZstd). Best for cold-storage blocks
// that are written once and read rarely.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}
