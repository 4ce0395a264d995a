package encoding

import (
	"encoding/binary"

	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/internal/pool"
)

// TypeVarintEncoder is the RUNLENGTH-VARINT variant of the u8 run-length
// codec (§4.2 catalog): identical run-merging semantics to TypeEncoder,
// but each run's count is a varint instead of a fixed uint32. It is part
// of the general codec catalog; the section's type column always uses
// the fixed-count TypeEncoder (§4.3, §6 mandate RUNLENGTH, tag 3, for a
// section's type column), so this variant is available for callers
// outside the block format that want a more compact encoding for
// columns with many short runs.
type TypeVarintEncoder struct {
	buf        *pool.ByteBuffer
	runVal     uint8
	runCount   uint64
	haveRun    bool
	totalCount int
	closed     bool
}

// NewTypeVarintEncoder creates a RUNLENGTH-VARINT u8 column encoder.
func NewTypeVarintEncoder() *TypeVarintEncoder {
	return &TypeVarintEncoder{buf: pool.GetColumnBuffer()}
}

// Add appends one value, extending the current run or starting a new one.
func (e *TypeVarintEncoder) Add(v uint8) {
	e.totalCount++
	if !e.haveRun {
		e.runVal, e.runCount, e.haveRun = v, 1, true
		return
	}
	if v == e.runVal {
		e.runCount++
		return
	}
	e.flushRun()
	e.runVal, e.runCount = v, 1
}

func (e *TypeVarintEncoder) flushRun() {
	var varintBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(varintBuf[:], e.runCount)
	e.buf.MustWrite([]byte{e.runVal})
	e.buf.MustWrite(varintBuf[:n])
}

// Len returns the number of values added so far.
func (e *TypeVarintEncoder) Len() int { return e.totalCount }

// Close flushes the in-progress run, if any.
func (e *TypeVarintEncoder) Close() {
	if e.closed {
		return
	}
	if e.haveRun {
		e.flushRun()
		e.haveRun = false
	}
	e.closed = true
}

// EstimateSize returns the exact byte length Dump will write.
func (e *TypeVarintEncoder) EstimateSize() uint32 { return uint32(e.buf.Len()) }

// Dump copies the encoded run sequence into out.
func (e *TypeVarintEncoder) Dump(out []byte) { copy(out, e.buf.Bytes()) }

// Reset clears the encoder for reuse.
func (e *TypeVarintEncoder) Reset() {
	e.buf.Reset()
	e.runVal, e.runCount, e.haveRun, e.totalCount, e.closed = 0, 0, false, 0, false
}

// Release returns the encoder's backing buffer to the pool.
func (e *TypeVarintEncoder) Release() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
}

// TypeVarintDecoder decodes a RUNLENGTH-VARINT u8 column.
type TypeVarintDecoder struct {
	data   []byte
	offset int

	curVal  uint8
	curLeft uint64
}

// Attach binds the decoder to a column sub-slice.
func (d *TypeVarintDecoder) Attach(src []byte, count int) {
	d.data = src
	d.offset = 0
	d.loadRun()
}

// EncodingTag reports the column encoding tag this decoder implements.
func (d *TypeVarintDecoder) EncodingTag() format.EncodingType { return format.Runlength }

func (d *TypeVarintDecoder) loadRun() {
	if d.offset >= len(d.data) {
		d.curLeft = 0
		return
	}
	d.curVal = d.data[d.offset]
	d.offset++
	count, n := binary.Uvarint(d.data[d.offset:])
	d.curLeft = count
	d.offset += n
}

// Skip advances the logical read position by n entries.
func (d *TypeVarintDecoder) Skip(n int) {
	left := uint64(n)
	for left > 0 {
		if left < d.curLeft {
			d.curLeft -= left
			return
		}
		left -= d.curLeft
		d.loadRun()
	}
}

// DecodeU8 returns the value at the current logical position and
// advances it by one.
func (d *TypeVarintDecoder) DecodeU8() uint8 {
	v := d.curVal
	d.curLeft--
	if d.curLeft == 0 {
		d.loadRun()
	}

	return v
}
