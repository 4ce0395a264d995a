package encoding

import (
	"github.com/colsm/vblock/bitpack"
	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/internal/pool"
)

// KeyEncoder accumulates a section's key-delta column (user_key[i] minus
// the section's start_value) and bit-packs it on Close. It is the only
// encoding the key column ever uses (§4.3: "key (always BITPACK)").
type KeyEncoder struct {
	deltas  []uint32
	release func([]uint32)
	bitW    uint8
	closed  bool
}

// NewKeyEncoder creates a key-column encoder ready to accept deltas.
func NewKeyEncoder() *KeyEncoder {
	deltas, release := pool.GetUint32Slice(64)

	return &KeyEncoder{deltas: deltas, release: release}
}

// Add appends one key delta. Deltas must be supplied in non-decreasing
// order; the builder above this encoder is responsible for that
// invariant (§4.3).
func (e *KeyEncoder) Add(delta uint32) {
	e.deltas = append(e.deltas, delta)
}

// Len returns the number of deltas added so far.
func (e *KeyEncoder) Len() int { return len(e.deltas) }

// Close finalizes the bit width for the accumulated deltas. After Close,
// EstimateSize and Dump reflect the final encoding.
func (e *KeyEncoder) Close() {
	if e.closed {
		return
	}
	e.bitW = bitpack.BitWidth(e.deltas)
	e.closed = true
}

// BitWidth returns the bit width computed by Close.
func (e *KeyEncoder) BitWidth() uint8 { return e.bitW }

// EstimateSize returns the exact number of bytes Dump will write: one
// bit-width byte followed by the packed stream.
func (e *KeyEncoder) EstimateSize() uint32 {
	return 1 + uint32(bitpack.PackedSize(len(e.deltas), e.bitW))
}

// Dump writes the bit width byte followed by the packed delta stream
// into out, which must be at least EstimateSize() bytes.
func (e *KeyEncoder) Dump(out []byte) {
	out[0] = e.bitW
	bitpack.Pack(e.deltas, e.bitW, out[1:e.EstimateSize()])
}

// Reset clears the encoder so it can be reused for a new section,
// returning its scratch slice to the pool.
func (e *KeyEncoder) Reset() {
	if e.release != nil {
		e.release(e.deltas)
	}
	e.deltas, e.release = pool.GetUint32Slice(64)
	e.bitW = 0
	e.closed = false
}

// Release returns the encoder's scratch slice to the pool. Call this
// instead of Reset when the encoder itself is being discarded.
func (e *KeyEncoder) Release() {
	if e.release != nil {
		e.release(e.deltas)
		e.release = nil
	}
}

// KeyDecoder decodes a bit-packed key-delta column attached to a section
// buffer. It keeps a cached decoded group of 8 values and an index within
// it, reloading the group lazily whenever Skip/Decode crosses a group
// boundary (§4.2, §9: unifying the group-0 special case into a single
// seek-then-lazily-reload policy).
type KeyDecoder struct {
	data  []byte // packed stream only, bit-width byte already consumed
	bitW  uint8
	n     int
	index int // logical index of the next value to decode

	group      [8]uint32
	groupIndex int // group currently cached in `group`, or -1 if none
}

// Attach binds the decoder to a section's key column sub-slice, which
// must start with the bit-width byte as written by KeyEncoder.Dump, and
// sets the column's logical record count.
func (d *KeyDecoder) Attach(src []byte, count int) {
	d.bitW = src[0]
	d.data = src[1:]
	d.n = count
	d.index = 0
	d.groupIndex = -1
}

// EncodingTag reports the column encoding tag this decoder implements.
func (d *KeyDecoder) EncodingTag() format.EncodingType { return format.Bitpack }

// Skip advances the logical read position by n entries. DecodeU32 after
// Skip(n) returns the value at the new position, exactly as if n
// sequential DecodeU32 calls had been made.
func (d *KeyDecoder) Skip(n int) {
	d.index += n
}

// DecodeU32 returns the value at the current logical position and
// advances it by one.
func (d *KeyDecoder) DecodeU32() uint32 {
	group := d.index / 8
	within := d.index % 8

	if group != d.groupIndex {
		d.group = bitpack.UnpackGroup8(d.data, group, d.bitW)
		d.groupIndex = group
	}

	d.index++

	return d.group[within]
}

// At decodes the value at the given logical index without disturbing the
// decoder's current sequential position. Section.Find / Section.FindStart
// do not use it; they search the packed stream obtained from Raw.
func (d *KeyDecoder) At(index int) uint32 {
	return bitpack.At(d.data, index, d.bitW)
}

// Raw returns the packed stream (without the bit-width byte) and its bit
// width, for direct use by bitpack.EqSearch / bitpack.GeqSearch.
func (d *KeyDecoder) Raw() (data []byte, bitWidth uint8) {
	return d.data, d.bitW
}

// Len returns the column's record count.
func (d *KeyDecoder) Len() int { return d.n }
