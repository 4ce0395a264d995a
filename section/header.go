// Package section implements the vertical block's horizontal record
// slice: a fixed header plus four parallel column streams (key,
// sequence, type, value), per §3 and §4.3.
package section

import (
	"encoding/binary"

	"github.com/colsm/vblock/format"
)

// HeaderSize is the fixed byte length of a section header: num_entry:u32,
// start_value:i32, then four (size:u32, enc_tag:u8) column descriptors
// (§3: "header (28 bytes: 4 + 4 + 4*(4+1))").
const HeaderSize = 4 + 4 + 4*(4+1)

// Header is the parsed form of a section's fixed-size prefix.
type Header struct {
	NumEntry   uint32
	StartValue int32

	KeySize  uint32
	KeyEnc   format.EncodingType
	SeqSize  uint32
	SeqEnc   format.EncodingType
	TypeSize uint32
	TypeEnc  format.EncodingType

	ValueSize uint32
	ValueEnc  format.EncodingType
}

// Encode writes h into out, which must be at least HeaderSize bytes.
func Encode(out []byte, h Header) {
	binary.LittleEndian.PutUint32(out[0:4], h.NumEntry)
	binary.LittleEndian.PutUint32(out[4:8], uint32(h.StartValue))

	putDescriptor(out[8:13], h.KeySize, h.KeyEnc)
	putDescriptor(out[13:18], h.SeqSize, h.SeqEnc)
	putDescriptor(out[18:23], h.TypeSize, h.TypeEnc)
	putDescriptor(out[23:28], h.ValueSize, h.ValueEnc)
}

func putDescriptor(out []byte, size uint32, enc format.EncodingType) {
	binary.LittleEndian.PutUint32(out[0:4], size)
	out[4] = uint8(enc)
}

// Decode parses a section header from the start of src.
func Decode(src []byte) Header {
	var h Header
	h.NumEntry = binary.LittleEndian.Uint32(src[0:4])
	h.StartValue = int32(binary.LittleEndian.Uint32(src[4:8]))

	h.KeySize, h.KeyEnc = getDescriptor(src[8:13])
	h.SeqSize, h.SeqEnc = getDescriptor(src[13:18])
	h.TypeSize, h.TypeEnc = getDescriptor(src[18:23])
	h.ValueSize, h.ValueEnc = getDescriptor(src[23:28])

	return h
}

func getDescriptor(src []byte) (uint32, format.EncodingType) {
	return binary.LittleEndian.Uint32(src[0:4]), format.EncodingType(src[4])
}

// BodySize returns the total byte length of the four column payloads
// described by h.
func (h Header) BodySize() uint32 {
	return h.KeySize + h.SeqSize + h.TypeSize + h.ValueSize
}
