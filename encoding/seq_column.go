package encoding

import (
	"encoding/binary"

	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/internal/pool"
)

// SeqEncoder encodes the sequence-number column as plain little-endian
// u64 values (§4.3: "sequence (PLAIN u64)").
type SeqEncoder struct {
	buf *pool.ByteBuffer
}

// NewSeqEncoder creates a sequence-number column encoder.
func NewSeqEncoder() *SeqEncoder {
	return &SeqEncoder{buf: pool.GetColumnBuffer()}
}

// Add appends one sequence number.
func (e *SeqEncoder) Add(seq uint64) {
	e.buf.Grow(8)
	start := e.buf.Len()
	e.buf.ExtendOrGrow(8)
	binary.LittleEndian.PutUint64(e.buf.Slice(start, start+8), seq)
}

// Len returns the number of values added so far.
func (e *SeqEncoder) Len() int { return e.buf.Len() / 8 }

// Close is a no-op for the plain encoding; it exists so SeqEncoder
// satisfies the same open/add/close/dump shape as every other column
// encoder.
func (e *SeqEncoder) Close() {}

// EstimateSize returns the exact byte length Dump will write.
func (e *SeqEncoder) EstimateSize() uint32 { return uint32(e.buf.Len()) }

// Dump copies the encoded bytes into out, which must be at least
// EstimateSize() bytes.
func (e *SeqEncoder) Dump(out []byte) {
	copy(out, e.buf.Bytes())
}

// Reset clears the encoder for reuse.
func (e *SeqEncoder) Reset() { e.buf.Reset() }

// Release returns the encoder's backing buffer to the pool.
func (e *SeqEncoder) Release() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
}

// SeqDecoder decodes the plain u64 sequence-number column.
type SeqDecoder struct {
	data  []byte
	index int
}

// Attach binds the decoder to a section's sequence column sub-slice.
func (d *SeqDecoder) Attach(src []byte, count int) {
	d.data = src
	d.index = 0
}

// EncodingTag reports the column encoding tag this decoder implements.
func (d *SeqDecoder) EncodingTag() format.EncodingType { return format.Plain }

// Skip advances the logical read position by n entries.
func (d *SeqDecoder) Skip(n int) { d.index += n }

// DecodeU64 returns the value at the current logical position and
// advances it by one.
func (d *SeqDecoder) DecodeU64() uint64 {
	off := d.index * 8
	v := binary.LittleEndian.Uint64(d.data[off : off+8])
	d.index++

	return v
}

// At decodes the value at the given logical index without disturbing the
// decoder's current sequential position.
func (d *SeqDecoder) At(index int) uint64 {
	off := index * 8

	return binary.LittleEndian.Uint64(d.data[off : off+8])
}
