package section

import (
	"github.com/colsm/vblock/encoding"
	"github.com/colsm/vblock/errs"
	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/internalkey"
)

// ValueEncoding selects the column codec used for the value stream
// (§6: "value_encoding (PLAIN or LENGTH; builder input)").
type ValueEncoding uint8

const (
	ValuePlain  ValueEncoding = ValueEncoding(format.Plain)
	ValueLength ValueEncoding = ValueEncoding(format.Length)
)

// Builder accumulates records into one section's four column streams
// (§4.3: "open(start_value) resets counts and opens all four column
// encoders").
type Builder struct {
	valueEncoding ValueEncoding

	keyEnc  *encoding.KeyEncoder
	seqEnc  *encoding.SeqEncoder
	typeEnc *encoding.TypeEncoder

	valuePlainEnc  *encoding.ValuePlainEncoder
	valueLengthEnc *encoding.ValueLengthEncoder

	startValue int32
	numEntry   uint32
	opened     bool
	closed     bool
}

// NewBuilder creates a section builder using the given value column
// encoding.
func NewBuilder(valueEncoding ValueEncoding) *Builder {
	b := &Builder{valueEncoding: valueEncoding}
	b.allocate()

	return b
}

func (b *Builder) allocate() {
	b.keyEnc = encoding.NewKeyEncoder()
	b.seqEnc = encoding.NewSeqEncoder()
	b.typeEnc = encoding.NewTypeEncoder()
	if b.valueEncoding == ValueLength {
		b.valueLengthEnc = encoding.NewValueLengthEncoder()
	} else {
		b.valuePlainEnc = encoding.NewValuePlainEncoder()
	}
}

// Open records startValue, the section's first user key, against which
// every key added in this section is delta-encoded, and zeroes the entry
// count. It does not clear column data already added; Reset does that.
func (b *Builder) Open(startValue int32) {
	b.startValue = startValue
	b.numEntry = 0
	b.opened = true
	b.closed = false
}

// Empty reports whether any record has been added since Open.
func (b *Builder) Empty() bool { return b.numEntry == 0 }

// Add encodes one record into the section's four column streams
// (§4.3: "add(internal_record, value) encodes user_key - start_value
// to the key encoder, sequence to the seq encoder, type to the type
// encoder, value to the value encoder, and increments num_entry").
func (b *Builder) Add(rec internalkey.Record, value []byte) error {
	if !b.opened {
		b.Open(int32(rec.UserKey))
	}

	delta := rec.UserKey - uint32(b.startValue)
	b.keyEnc.Add(delta)
	b.seqEnc.Add(rec.Sequence)
	b.typeEnc.Add(rec.Type)

	var err error
	if b.valueEncoding == ValueLength {
		err = b.valueLengthEnc.Add(value)
	} else {
		err = b.valuePlainEnc.Add(value)
	}
	if err != nil {
		return err
	}

	b.numEntry++

	return nil
}

// EstimateSize returns the exact byte length Dump will write once Close
// has been called: the 28-byte header plus each encoder's size.
func (b *Builder) EstimateSize() uint32 {
	return HeaderSize + b.keyEnc.EstimateSize() + b.seqEnc.EstimateSize() +
		b.typeEnc.EstimateSize() + b.valueEstimateSize()
}

func (b *Builder) valueEstimateSize() uint32 {
	if b.valueEncoding == ValueLength {
		return b.valueLengthEnc.EstimateSize()
	}

	return b.valuePlainEnc.EstimateSize()
}

// Close finalizes all four column encoders. It returns ErrEmptySection
// if called before Open or before any record was added since Open.
func (b *Builder) Close() error {
	if b.closed {
		return nil
	}
	if !b.opened || b.numEntry == 0 {
		return errs.ErrEmptySection
	}
	b.keyEnc.Close()
	b.seqEnc.Close()
	b.typeEnc.Close()
	if b.valueEncoding == ValueLength {
		b.valueLengthEnc.Close()
	} else {
		b.valuePlainEnc.Close()
	}
	b.closed = true

	return nil
}

// StartValue returns the section's first user key.
func (b *Builder) StartValue() int32 { return b.startValue }

// NumEntry returns the number of records added since Open.
func (b *Builder) NumEntry() uint32 { return b.numEntry }

// Dump writes the section header then each column payload, in fixed
// order (key, seq, type, value), into out, which must be at least
// EstimateSize() bytes. Close must be called first.
func (b *Builder) Dump(out []byte) {
	h := Header{
		NumEntry:   b.numEntry,
		StartValue: b.startValue,
		KeySize:    b.keyEnc.EstimateSize(),
		KeyEnc:     format.Bitpack,
		SeqSize:    b.seqEnc.EstimateSize(),
		SeqEnc:     format.Plain,
		TypeSize:   b.typeEnc.EstimateSize(),
		TypeEnc:    format.Runlength,
		ValueSize:  b.valueEstimateSize(),
		ValueEnc:   format.EncodingType(b.valueEncoding),
	}
	Encode(out[:HeaderSize], h)

	pos := HeaderSize
	b.keyEnc.Dump(out[pos : pos+int(h.KeySize)])
	pos += int(h.KeySize)
	b.seqEnc.Dump(out[pos : pos+int(h.SeqSize)])
	pos += int(h.SeqSize)
	b.typeEnc.Dump(out[pos : pos+int(h.TypeSize)])
	pos += int(h.TypeSize)

	if b.valueEncoding == ValueLength {
		b.valueLengthEnc.Dump(out[pos : pos+int(h.ValueSize)])
	} else {
		b.valuePlainEnc.Dump(out[pos : pos+int(h.ValueSize)])
	}
}

// Reset clears the builder for reuse, returning scratch buffers to
// their pools and reallocating encoders for the next section.
func (b *Builder) Reset() {
	b.keyEnc.Release()
	b.seqEnc.Release()
	b.typeEnc.Release()
	if b.valueEncoding == ValueLength {
		b.valueLengthEnc.Release()
	} else {
		b.valuePlainEnc.Release()
	}
	b.allocate()
	b.startValue = 0
	b.numEntry = 0
	b.opened = false
	b.closed = false
}
