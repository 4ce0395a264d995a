package section

import (
	"fmt"

	"github.com/colsm/vblock/bitpack"
	"github.com/colsm/vblock/encoding"
	"github.com/colsm/vblock/errs"
	"github.com/colsm/vblock/format"
)

// Reader parses a section header then attaches each column decoder to
// its sub-slice (§4.3: "read(src) parses the header then attaches each
// column decoder to the appropriate sub-slice").
type Reader struct {
	Header Header

	keyDec  encoding.KeyDecoder
	seqDec  encoding.SeqDecoder
	typeDec encoding.TypeDecoder

	valuePlainDec  encoding.ValuePlainDecoder
	valueLengthDec encoding.ValueLengthDecoder
}

// Read parses the section header at the start of src and binds every
// column decoder to its payload sub-slice.
func (r *Reader) Read(src []byte) error {
	if len(src) < HeaderSize {
		return fmt.Errorf("%w: section header truncated", errs.ErrCorruptBlock)
	}
	h := Decode(src)
	if h.KeyEnc != format.Bitpack {
		return fmt.Errorf("%w: section key column encoding %s, want BITPACK", errs.ErrInvalidKeyEncoding, h.KeyEnc)
	}
	r.Header = h

	pos := HeaderSize
	n := int(h.NumEntry)

	r.keyDec.Attach(src[pos:pos+int(h.KeySize)], n)
	pos += int(h.KeySize)

	r.seqDec.Attach(src[pos:pos+int(h.SeqSize)], n)
	pos += int(h.SeqSize)

	r.typeDec.Attach(src[pos:pos+int(h.TypeSize)], n)
	pos += int(h.TypeSize)

	valueSrc := src[pos : pos+int(h.ValueSize)]
	switch h.ValueEnc {
	case format.Length:
		r.valueLengthDec.Attach(valueSrc, n)
	default:
		r.valuePlainDec.Attach(valueSrc, n)
	}

	return nil
}

// Find returns the entry index whose user key equals target, or -1 if
// absent (§4.3: "find(target) calls eq_search on the key column's
// bit-packed stream with target - start_value").
func (r *Reader) Find(target int32) int32 {
	delta := int64(target) - int64(r.Header.StartValue)
	if delta < 0 || delta > 1<<32-1 {
		return -1
	}
	data, bitWidth := r.keyDec.Raw()

	return int32(bitpack.EqSearch(data, int(r.Header.NumEntry), bitWidth, uint32(delta)))
}

// FindStart returns the last entry index whose user key is <= target
// (§4.3: "find_start(target) calls geq_search").
func (r *Reader) FindStart(target int32) uint32 {
	delta := int64(target) - int64(r.Header.StartValue)
	if delta < 0 {
		return 0
	}
	data, bitWidth := r.keyDec.Raw()
	if delta > 1<<32-1 {
		delta = 1<<32 - 1
	}

	return bitpack.GeqSearch(data, int(r.Header.NumEntry), bitWidth, uint32(delta))
}

// SkipTo advances every column decoder to entry index i, discarding the
// intervening entries.
func (r *Reader) SkipTo(i uint32) {
	r.keyDec.Skip(int(i))
	r.seqDec.Skip(int(i))
	r.typeDec.Skip(int(i))
	if r.Header.ValueEnc == format.Length {
		r.valueLengthDec.Skip(int(i))
	} else {
		r.valuePlainDec.Skip(int(i))
	}
}

// DecodeUserKey decodes the next entry's user key (start_value plus the
// decoded delta) and advances the key column decoder by one.
func (r *Reader) DecodeUserKey() uint32 {
	return uint32(r.Header.StartValue) + r.keyDec.DecodeU32()
}

// DecodeSequence decodes the next entry's sequence number and advances
// the sequence column decoder by one.
func (r *Reader) DecodeSequence() uint64 { return r.seqDec.DecodeU64() }

// DecodeType decodes the next entry's record type and advances the
// type column decoder by one.
func (r *Reader) DecodeType() uint8 { return r.typeDec.DecodeU8() }

// DecodeValue decodes the next entry's value and advances the value
// column decoder by one. The returned slice aliases the section buffer.
func (r *Reader) DecodeValue() []byte {
	if r.Header.ValueEnc == format.Length {
		return r.valueLengthDec.DecodeBytes()
	}

	return r.valuePlainDec.DecodeBytes()
}

// NumEntry returns the section's record count.
func (r *Reader) NumEntry() uint32 { return r.Header.NumEntry }

// StartValue returns the section's first user key.
func (r *Reader) StartValue() int32 { return r.Header.StartValue }
