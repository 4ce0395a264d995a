// Package internalkey implements the composite internal key exposed by
// the block iterator: a 12-byte little-endian encoding of a record's
// user key, sequence number, and record type (§3, §6).
package internalkey

import "encoding/binary"

// Size is the fixed byte length of an encoded composite internal key.
const Size = 12

// Record is the parsed composite internal key: a user key paired with
// the sequence/type tag. The value bytes are passed alongside it, not
// stored in it.
type Record struct {
	UserKey  uint32
	Sequence uint64
	Type     uint8
}

// Encode writes the composite internal key for r into out, which must be
// at least Size bytes: user_key:u32 || ((sequence<<8)|type):u64, LE.
func Encode(out []byte, r Record) {
	binary.LittleEndian.PutUint32(out[0:4], r.UserKey)
	tag := (r.Sequence << 8) | uint64(r.Type)
	binary.LittleEndian.PutUint64(out[4:12], tag)
}

// Decode parses a 12-byte composite internal key produced by Encode.
func Decode(src []byte) Record {
	userKey := binary.LittleEndian.Uint32(src[0:4])
	tag := binary.LittleEndian.Uint64(src[4:12])

	return Record{
		UserKey:  userKey,
		Sequence: tag >> 8,
		Type:     uint8(tag),
	}
}

// DecodeUserKey reads only the leading 4-byte user key from a seek
// target, interpreted as an i32 per §4.5 ("interpret the first 4 bytes
// as target_key: i32").
func DecodeUserKey(src []byte) int32 {
	return int32(binary.LittleEndian.Uint32(src[0:4]))
}

// UserKeyRegresses reports whether next's user key sorts strictly
// before prev's. The builder requires a non-decreasing UserKey
// sequence so the key column's bit-packed deltas stay binary
// searchable; records sharing a UserKey may be added in any order and
// are distinguished by sequence alone (§4.5 "Ordering and tie-breaks").
func UserKeyRegresses(prev, next Record) bool {
	return next.UserKey < prev.UserKey
}
