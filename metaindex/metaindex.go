// Package metaindex implements the block meta region: a bit-packed
// sorted sequence of section start-keys alongside a parallel array of
// section offsets (§3, §4.4, §6).
package metaindex

import (
	"encoding/binary"
	"fmt"

	"github.com/colsm/vblock/bitpack"
	"github.com/colsm/vblock/errs"
)

// FixedSize is the byte length of the meta region excluding the
// per-section offsets and the packed start-delta stream:
// num_section:u32, start_min:i32, start_bitwidth:u8.
const FixedSize = 4 + 4 + 1

// Builder accumulates (offset, start_value) pairs, one per section, and
// finalizes them into the bit-packed meta region (§4.4).
type Builder struct {
	offsets     []uint64
	startValues []int32
	startMin    int32
	haveMin     bool
	maxDelta    uint32

	startDeltas []uint32
	bitWidth    uint8
	finished    bool
}

// NewBuilder creates an empty meta index builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSection records one section's byte offset (within the sections
// region) and first user key (§4.4: "add_section(offset, start_value):
// if first, sets start_min = start_value; appends
// (start_value - start_min) to the start-deltas and offset to the
// offsets").
func (b *Builder) AddSection(offset uint64, startValue int32) {
	if !b.haveMin {
		b.startMin = startValue
		b.haveMin = true
	}
	b.offsets = append(b.offsets, offset)
	b.startValues = append(b.startValues, startValue)

	delta := uint32(startValue - b.startMin)
	if delta > b.maxDelta {
		b.maxDelta = delta
	}
}

// NumSection returns the number of sections recorded so far.
func (b *Builder) NumSection() int { return len(b.offsets) }

// Finish computes the start-delta sequence and its bit width. It must
// be called before EstimateSize/Dump.
func (b *Builder) Finish() {
	if b.finished {
		return
	}
	b.startDeltas = make([]uint32, len(b.startValues))
	for i, sv := range b.startValues {
		b.startDeltas[i] = uint32(sv - b.startMin)
	}
	b.bitWidth = bitpack.BitWidthFromMax(b.maxDelta)
	b.finished = true
}

// EstimateSize returns the exact byte length Dump will write
// (§4.4: "9 + 8*N + ceil(start_bitwidth*N / 8) rounded up to the
// encoder's pack granularity"). Safe to call before Finish: the bit
// width is derived from the running maximum delta seen so far, which
// Finish will recompute identically once every section has been added.
func (b *Builder) EstimateSize() uint32 {
	n := len(b.offsets)
	bw := b.bitWidth
	if !b.finished {
		bw = bitpack.BitWidthFromMax(b.maxDelta)
	}

	return uint32(FixedSize) + uint32(n*8) + uint32(bitpack.PackedSize(n, bw))
}

// Dump writes the meta region into out, which must be at least
// EstimateSize() bytes. Finish must be called first.
func (b *Builder) Dump(out []byte) {
	n := len(b.offsets)
	binary.LittleEndian.PutUint32(out[0:4], uint32(n))
	pos := 4
	for _, off := range b.offsets {
		binary.LittleEndian.PutUint64(out[pos:pos+8], off)
		pos += 8
	}
	binary.LittleEndian.PutUint32(out[pos:pos+4], uint32(b.startMin))
	pos += 4
	out[pos] = b.bitWidth
	pos++

	bitpack.Pack(b.startDeltas, b.bitWidth, out[pos:pos+bitpack.PackedSize(n, b.bitWidth)])
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.offsets = b.offsets[:0]
	b.startValues = b.startValues[:0]
	b.startDeltas = b.startDeltas[:0]
	b.startMin = 0
	b.haveMin = false
	b.maxDelta = 0
	b.bitWidth = 0
	b.finished = false
}

// Reader parses a meta region produced by Builder and exposes Search.
type Reader struct {
	numSection    uint32
	offsetsRaw    []byte
	startMin      int32
	startBitwidth uint8
	startDeltas   []byte
}

// Read parses the meta region at the start of src.
func (r *Reader) Read(src []byte) error {
	if len(src) < FixedSize {
		return fmt.Errorf("%w: meta region truncated", errs.ErrCorruptBlock)
	}
	n := binary.LittleEndian.Uint32(src[0:4])
	pos := 4
	offsetsLen := int(n) * 8
	if len(src) < pos+offsetsLen+FixedSize-4 {
		return fmt.Errorf("%w: meta offsets truncated", errs.ErrCorruptBlock)
	}
	r.numSection = n
	r.offsetsRaw = src[pos : pos+offsetsLen]
	pos += offsetsLen

	r.startMin = int32(binary.LittleEndian.Uint32(src[pos : pos+4]))
	pos += 4
	r.startBitwidth = src[pos]
	pos++

	packedLen := bitpack.PackedSize(int(n), r.startBitwidth)
	if len(src) < pos+packedLen {
		return fmt.Errorf("%w: meta start-delta stream truncated", errs.ErrCorruptBlock)
	}
	r.startDeltas = src[pos : pos+packedLen]
	pos += packedLen

	if pos != len(src) {
		return fmt.Errorf("%w: computed meta size %d disagrees with trailer", errs.ErrMetaSizeMismatch, pos)
	}

	if err := r.validate(); err != nil {
		return err
	}

	return nil
}

func (r *Reader) validate() error {
	var prevOffset uint64
	var prevDelta uint32
	for i := 0; i < int(r.numSection); i++ {
		off := r.Offset(i)
		if i > 0 && off <= prevOffset {
			return fmt.Errorf("%w: section offsets not strictly increasing", errs.ErrCorruptBlock)
		}
		prevOffset = off

		delta := bitpack.At(r.startDeltas, i, r.startBitwidth)
		if i > 0 && delta < prevDelta {
			return fmt.Errorf("%w: start-delta sequence not non-decreasing", errs.ErrCorruptBlock)
		}
		prevDelta = delta
	}

	return nil
}

// NumSection returns the number of sections indexed.
func (r *Reader) NumSection() int { return int(r.numSection) }

// Offset returns the i-th section's byte offset within the sections
// region.
func (r *Reader) Offset(i int) uint64 {
	return binary.LittleEndian.Uint64(r.offsetsRaw[i*8 : i*8+8])
}

// StartValue returns the i-th section's first user key.
func (r *Reader) StartValue(i int) int32 {
	return r.startMin + int32(bitpack.At(r.startDeltas, i, r.startBitwidth))
}

// Search returns the index of the section that may contain value
// (§4.4: "search(value) returns geq_search(start_deltas, N,
// start_bitwidth, value - start_min)"). Edge cases: a value below
// start_min returns section 0; a value above every start returns the
// last section. The caller must still verify presence within that
// section via Section.Find.
func (r *Reader) Search(value int32) uint32 {
	delta := int64(value) - int64(r.startMin)
	if delta < 0 {
		return 0
	}
	if delta > 1<<32-1 {
		delta = 1<<32 - 1
	}

	return bitpack.GeqSearch(r.startDeltas, int(r.numSection), r.startBitwidth, uint32(delta))
}
