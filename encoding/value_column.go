package encoding

import (
	"encoding/binary"

	"github.com/colsm/vblock/errs"
	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/internal/pool"
)

// ValuePlainEncoder encodes the value column as repeated (length:u32,
// bytes) entries (§4.2 catalog: "bytes / PLAIN").
type ValuePlainEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewValuePlainEncoder creates a PLAIN bytes column encoder.
func NewValuePlainEncoder() *ValuePlainEncoder {
	return &ValuePlainEncoder{buf: pool.GetColumnBuffer()}
}

// Add appends one value.
func (e *ValuePlainEncoder) Add(v []byte) error {
	if uint64(len(v)) > 1<<32-1 {
		return errs.ErrValueTooLarge
	}

	e.buf.Grow(4 + len(v))
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
	e.buf.MustWrite(lenBuf[:])
	e.buf.MustWrite(v)
	e.count++

	return nil
}

// Len returns the number of values added so far.
func (e *ValuePlainEncoder) Len() int { return e.count }

// Close is a no-op; PLAIN values require no finalization.
func (e *ValuePlainEncoder) Close() {}

// EstimateSize returns the exact byte length Dump will write.
func (e *ValuePlainEncoder) EstimateSize() uint32 { return uint32(e.buf.Len()) }

// Dump copies the encoded values into out.
func (e *ValuePlainEncoder) Dump(out []byte) { copy(out, e.buf.Bytes()) }

// Reset clears the encoder for reuse.
func (e *ValuePlainEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Release returns the encoder's backing buffer to the pool.
func (e *ValuePlainEncoder) Release() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
}

// ValuePlainDecoder decodes a PLAIN bytes column.
type ValuePlainDecoder struct {
	data  []byte
	index int
	// offsets[i] is the byte offset of the i-th value's length prefix;
	// built lazily on first Skip/Decode so Attach stays O(1).
	offsets []int
	built   bool
}

// Attach binds the decoder to a section's value column sub-slice.
func (d *ValuePlainDecoder) Attach(src []byte, count int) {
	d.data = src
	d.index = 0
	d.built = false
	d.offsets = d.offsets[:0]
}

// EncodingTag reports the column encoding tag this decoder implements.
func (d *ValuePlainDecoder) EncodingTag() format.EncodingType { return format.Plain }

func (d *ValuePlainDecoder) ensureBuilt() {
	if d.built {
		return
	}
	off := 0
	for off < len(d.data) {
		d.offsets = append(d.offsets, off)
		l := binary.LittleEndian.Uint32(d.data[off : off+4])
		off += 4 + int(l)
	}
	d.built = true
}

// Skip advances the logical read position by n entries.
func (d *ValuePlainDecoder) Skip(n int) {
	d.ensureBuilt()
	d.index += n
}

// DecodeBytes returns the value at the current logical position and
// advances it by one. The returned slice aliases the section buffer and
// must not be retained past the section's lifetime.
func (d *ValuePlainDecoder) DecodeBytes() []byte {
	d.ensureBuilt()
	off := d.offsets[d.index]
	l := binary.LittleEndian.Uint32(d.data[off : off+4])
	d.index++

	return d.data[off+4 : off+4+int(l)]
}

// At decodes the value at the given logical index without disturbing the
// decoder's current sequential position. This is O(n) for PLAIN since the
// offset table must be scanned; use LENGTH encoding for O(1) random
// access (§4.2: "LENGTH bytes decoder ... enabling random skip in O(1)").
func (d *ValuePlainDecoder) At(index int) []byte {
	d.ensureBuilt()
	off := d.offsets[index]
	l := binary.LittleEndian.Uint32(d.data[off : off+4])

	return d.data[off+4 : off+4+int(l)]
}

// ValueLengthEncoder encodes the value column as an offset table followed
// by concatenated payload bytes (§4.2 catalog: "bytes / LENGTH"),
// enabling O(1) random access on read.
type ValueLengthEncoder struct {
	offsets []uint32 // N+1 offsets, offsets[0]=0, last=total payload length
	payload *pool.ByteBuffer
}

// NewValueLengthEncoder creates a LENGTH bytes column encoder.
func NewValueLengthEncoder() *ValueLengthEncoder {
	return &ValueLengthEncoder{
		offsets: []uint32{0},
		payload: pool.GetColumnBuffer(),
	}
}

// Add appends one value.
func (e *ValueLengthEncoder) Add(v []byte) error {
	if uint64(len(v)) > 1<<32-1 {
		return errs.ErrValueTooLarge
	}

	e.payload.MustWrite(v)
	e.offsets = append(e.offsets, uint32(e.payload.Len()))

	return nil
}

// Len returns the number of values added so far.
func (e *ValueLengthEncoder) Len() int { return len(e.offsets) - 1 }

// Close is a no-op; the offset table is already complete after every Add.
func (e *ValueLengthEncoder) Close() {}

// EstimateSize returns the exact byte length Dump will write:
// total_offset_table_bytes:u32, (N+1) offsets, then the payload.
func (e *ValueLengthEncoder) EstimateSize() uint32 {
	return 4 + uint32(len(e.offsets)*4) + uint32(e.payload.Len())
}

// Dump writes the offset-table byte length, the (N+1) offsets, then the
// concatenated payload into out.
func (e *ValueLengthEncoder) Dump(out []byte) {
	tableBytes := uint32(len(e.offsets) * 4)
	binary.LittleEndian.PutUint32(out[0:4], tableBytes)

	pos := 4
	for _, off := range e.offsets {
		binary.LittleEndian.PutUint32(out[pos:pos+4], off)
		pos += 4
	}
	copy(out[pos:], e.payload.Bytes())
}

// Reset clears the encoder for reuse.
func (e *ValueLengthEncoder) Reset() {
	e.offsets = e.offsets[:1]
	e.payload.Reset()
}

// Release returns the encoder's backing buffer to the pool.
func (e *ValueLengthEncoder) Release() {
	if e.payload != nil {
		pool.PutColumnBuffer(e.payload)
		e.payload = nil
	}
}

// ValueLengthDecoder decodes a LENGTH bytes column, using the offset
// table to translate a logical index to a byte range in O(1).
type ValueLengthDecoder struct {
	offsets []byte // raw (N+1)*4 byte offset table
	payload []byte
	index   int
}

// Attach binds the decoder to a section's value column sub-slice.
func (d *ValueLengthDecoder) Attach(src []byte, count int) {
	tableBytes := binary.LittleEndian.Uint32(src[0:4])
	d.offsets = src[4 : 4+tableBytes]
	d.payload = src[4+tableBytes:]
	d.index = 0
}

// EncodingTag reports the column encoding tag this decoder implements.
func (d *ValueLengthDecoder) EncodingTag() format.EncodingType { return format.Length }

func (d *ValueLengthDecoder) offsetAt(i int) uint32 {
	return binary.LittleEndian.Uint32(d.offsets[i*4 : i*4+4])
}

// Skip advances the logical read position by n entries. This is O(1):
// the offset table makes every index directly addressable.
func (d *ValueLengthDecoder) Skip(n int) { d.index += n }

// DecodeBytes returns the value at the current logical position and
// advances it by one.
func (d *ValueLengthDecoder) DecodeBytes() []byte {
	v := d.At(d.index)
	d.index++

	return v
}

// At decodes the value at the given logical index in O(1), without
// disturbing the decoder's current sequential position.
func (d *ValueLengthDecoder) At(index int) []byte {
	start := d.offsetAt(index)
	end := d.offsetAt(index + 1)

	return d.payload[start:end]
}
