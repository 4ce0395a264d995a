package block

import (
	"fmt"

	"github.com/colsm/vblock/errs"
	"github.com/colsm/vblock/internalkey"
	"github.com/colsm/vblock/section"
)

const invalidEntryIndex = -1

// Iterator is a forward-only seeking iterator over a Reader's sections
// (§4.5). It supports point seek and forward scan only; seek_to_first,
// seek_to_last, and prev are not supported by design (§1 Non-goals).
type Iterator struct {
	reader *Reader

	sectionIndex int // -1 before any seek
	entryIndex   int // invalidEntryIndex until a valid position is set

	sec section.Reader

	keyBuf [internalkey.Size]byte
	value  []byte

	status error
}

// NewIterator creates a forward iterator over r, initially invalid.
func NewIterator(r *Reader) *Iterator {
	return &Iterator{reader: r, sectionIndex: -1, entryIndex: invalidEntryIndex}
}

func (it *Iterator) loadSection(idx int) error {
	if err := it.reader.readSection(idx, &it.sec); err != nil {
		return err
	}
	it.sectionIndex = idx

	return nil
}

// Seek positions the iterator at the first entry whose user key equals
// the 4-byte little-endian key encoded in the first 4 bytes of target
// (§4.5: "interpret the first 4 bytes as target_key: i32").
func (it *Iterator) Seek(target []byte) {
	it.status = nil
	targetKey := internalkey.DecodeUserKey(target)

	newSec := int(it.reader.meta.Search(targetKey))
	// The section is re-read even when it is already loaded, so every
	// column decoder starts from entry 0 before SkipTo.
	if err := it.loadSection(newSec); err != nil {
		it.status = err
		it.entryIndex = invalidEntryIndex

		return
	}

	idx := it.sec.Find(targetKey)
	if idx < 0 {
		it.status = fmt.Errorf("%w: key=%d", errs.ErrNotFound, targetKey)
		it.entryIndex = invalidEntryIndex

		return
	}

	it.sec.SkipTo(uint32(idx))
	it.entryIndex = int(idx)
	it.decodeCurrent()
}

func (it *Iterator) decodeCurrent() {
	userKey := it.sec.DecodeUserKey()
	seq := it.sec.DecodeSequence()
	typ := it.sec.DecodeType()
	it.value = it.sec.DecodeValue()

	internalkey.Encode(it.keyBuf[:], internalkey.Record{UserKey: userKey, Sequence: seq, Type: typ})
}

// Next advances to the following entry, rolling over into the next
// section when the current one is exhausted (§4.5).
func (it *Iterator) Next() {
	it.entryIndex++
	if it.entryIndex >= int(it.sec.NumEntry()) {
		nextSec := it.sectionIndex + 1
		if nextSec >= it.reader.NumSection() {
			it.entryIndex = invalidEntryIndex

			return
		}
		if err := it.loadSection(nextSec); err != nil {
			it.status = err
			it.entryIndex = invalidEntryIndex

			return
		}
		it.entryIndex = 0
	}
	it.decodeCurrent()
}

// SeekToFirst is not supported by this iterator (§1 Non-goals, §4.5,
// §7). The iterator's state is left unchanged; Status reports
// *not-supported*.
func (it *Iterator) SeekToFirst() { it.status = errs.ErrNotSupported }

// SeekToLast is not supported by this iterator. See SeekToFirst.
func (it *Iterator) SeekToLast() { it.status = errs.ErrNotSupported }

// Prev is not supported by this iterator. See SeekToFirst.
func (it *Iterator) Prev() { it.status = errs.ErrNotSupported }

// Valid reports whether Key/Value currently refer to a live entry.
func (it *Iterator) Valid() bool {
	return it.entryIndex != invalidEntryIndex
}

// Key returns the composite internal key at the current position
// (§6: 12 bytes, user_key:u32 || ((sequence<<8)|type):u64, LE). The
// returned slice is owned by the iterator and invalidated by the next
// Seek/Next call.
func (it *Iterator) Key() []byte { return it.keyBuf[:] }

// Value returns the value at the current position. The returned slice
// aliases the block buffer and is invalidated by the next Seek/Next
// call that crosses a section boundary.
func (it *Iterator) Value() []byte { return it.value }

// Status returns the error from the most recent operation, or nil if
// the iterator is healthy.
func (it *Iterator) Status() error { return it.status }
