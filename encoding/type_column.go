package encoding

import (
	"encoding/binary"

	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/internal/pool"
)

// TypeEncoder run-length encodes the record-type column as repeated
// (value:u8, count:u32) pairs (§4.2 catalog: "u8 / RUNLENGTH"). A new
// value is merged into the current run iff it equals the run's value;
// Close flushes the final run.
type TypeEncoder struct {
	buf        *pool.ByteBuffer
	runVal     uint8
	runCount   uint32
	haveRun    bool
	totalCount int
	closed     bool
}

// NewTypeEncoder creates a record-type column encoder.
func NewTypeEncoder() *TypeEncoder {
	return &TypeEncoder{buf: pool.GetColumnBuffer()}
}

// Add appends one record type, extending the current run or starting a
// new one.
func (e *TypeEncoder) Add(v uint8) {
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

func (e *TypeEncoder) flushRun() {
	var hdr [5]byte
	hdr[0] = e.runVal
	binary.LittleEndian.PutUint32(hdr[1:], e.runCount)
	e.buf.MustWrite(hdr[:])
}

// Len returns the number of values added so far (not the number of runs).
func (e *TypeEncoder) Len() int { return e.totalCount }

// Close flushes the in-progress run, if any. It must be called before
// EstimateSize/Dump.
func (e *TypeEncoder) Close() {
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
func (e *TypeEncoder) EstimateSize() uint32 { return uint32(e.buf.Len()) }

// Dump copies the encoded run sequence into out.
func (e *TypeEncoder) Dump(out []byte) { copy(out, e.buf.Bytes()) }

// Reset clears the encoder for reuse.
func (e *TypeEncoder) Reset() {
	e.buf.Reset()
	e.runVal, e.runCount, e.haveRun, e.totalCount, e.closed = 0, 0, false, 0, false
}

// Release returns the encoder's backing buffer to the pool.
func (e *TypeEncoder) Release() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
}

// TypeDecoder decodes a run-length-encoded u8 column. It reads one run at
// Attach and whenever the current run's remaining count reaches zero
// (§4.2: "RLE decoders read one run at attach, decrement the count on
// each decode, and read the next run when the count reaches zero").
type TypeDecoder struct {
	data   []byte
	offset int

	curVal   uint8
	curLeft  uint32
	attached bool
}

// Attach binds the decoder to a section's type column sub-slice.
func (d *TypeDecoder) Attach(src []byte, count int) {
	d.data = src
	d.offset = 0
	d.attached = false
	d.loadRun()
}

// EncodingTag reports the column encoding tag this decoder implements.
func (d *TypeDecoder) EncodingTag() format.EncodingType { return format.Runlength }

func (d *TypeDecoder) loadRun() {
	if d.offset >= len(d.data) {
		d.curLeft = 0
		return
	}
	d.curVal = d.data[d.offset]
	d.curLeft = binary.LittleEndian.Uint32(d.data[d.offset+1 : d.offset+5])
	d.offset += 5
	d.attached = true
}

// Skip advances the logical read position by n entries, walking runs and
// subtracting their counts (§4.2).
func (d *TypeDecoder) Skip(n int) {
	for n > 0 {
		if uint32(n) < d.curLeft {
			d.curLeft -= uint32(n)
			return
		}
		n -= int(d.curLeft)
		d.loadRun()
	}
}

// DecodeU8 returns the value at the current logical position and
// advances it by one, rolling over to the next run when the current
// run's count reaches zero.
func (d *TypeDecoder) DecodeU8() uint8 {
	v := d.curVal
	d.curLeft--
	if d.curLeft == 0 {
		d.loadRun()
	}

	return v
}
