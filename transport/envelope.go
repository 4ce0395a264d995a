package transport

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/colsm/vblock/format"
)

// envelopeVersion is the current wire version of the transport envelope.
const envelopeVersion uint8 = 1

// headerSize is the fixed byte length of an envelope header:
// version:u8, codec:u8, checksum:u64, len:u32.
const headerSize = 1 + 1 + 8 + 4

// Checksum returns the xxHash64 content checksum of a finished block
// buffer, computed over the bytes exactly as the builder produced them.
func Checksum(block []byte) uint64 {
	return xxhash.Sum64(block)
}

// Wrap compresses a finished block buffer with codec and wraps it in an
// envelope carrying the codec tag, a content checksum, and the
// uncompressed length, so a reader can validate integrity before
// decompressing.
func Wrap(block []byte, codec format.CompressionType) ([]byte, error) {
	c, err := GetCodec(codec)
	if err != nil {
		return nil, err
	}
	compressed, err := c.Compress(block)
	if err != nil {
		return nil, fmt.Errorf("transport: compress: %w", err)
	}

	out := make([]byte, headerSize+len(compressed))
	out[0] = envelopeVersion
	out[1] = uint8(codec)
	binary.LittleEndian.PutUint64(out[2:10], Checksum(block))
	binary.LittleEndian.PutUint32(out[10:14], uint32(len(block)))
	copy(out[headerSize:], compressed)

	return out, nil
}

// Unwrap validates and decompresses an envelope produced by Wrap,
// returning the original block buffer. It returns an error if the
// envelope is truncated, carries an unsupported codec tag, or the
// decompressed content's checksum does not match the stored one.
func Unwrap(envelope []byte) ([]byte, error) {
	if len(envelope) < headerSize {
		return nil, fmt.Errorf("transport: envelope shorter than header")
	}
	version := envelope[0]
	if version != envelopeVersion {
		return nil, fmt.Errorf("transport: unsupported envelope version %d", version)
	}
	codec := format.CompressionType(envelope[1])
	wantChecksum := binary.LittleEndian.Uint64(envelope[2:10])
	wantLen := binary.LittleEndian.Uint32(envelope[10:14])

	c, err := GetCodec(codec)
	if err != nil {
		return nil, err
	}
	block, err := c.Decompress(envelope[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("transport: decompress: %w", err)
	}
	if uint32(len(block)) != wantLen {
		return nil, fmt.Errorf("transport: decompressed length %d does not match stored length %d", len(block), wantLen)
	}
	if got := Checksum(block); got != wantChecksum {
		return nil, fmt.Errorf("transport: checksum mismatch: got %x, want %x", got, wantChecksum)
	}

	return block, nil
}
