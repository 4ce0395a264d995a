// Package errs defines the sentinel errors shared across the vertical
// block packages. Callers compare against these with errors.Is; the
// concrete errors returned by the packages wrap one of these sentinels
// with fmt.Errorf("%w: ...", errs.ErrX) to add context.
package errs

import "errors"

var (
	// ErrCorruptBlock reports a structural problem found while parsing a
	// block (a truncated buffer, meta region or section header, or a
	// non-monotone meta index) that has no more specific sentinel below.
	// The specific sentinels do not wrap it.
	ErrCorruptBlock = errors.New("vblock: corrupt block")

	// ErrMagicMismatch means the trailing four bytes of the block did
	// not match format.MagicNumber.
	ErrMagicMismatch = errors.New("vblock: magic number mismatch")

	// ErrMetaSizeMismatch means the meta size recorded in the trailer
	// disagrees with the size computed while parsing the meta region.
	ErrMetaSizeMismatch = errors.New("vblock: meta size mismatch")

	// ErrInvalidKeyEncoding means a section header claims a key-column
	// encoding other than Bitpack.
	ErrInvalidKeyEncoding = errors.New("vblock: key column is not bit-packed")

	// ErrOffsetOutOfRange means a section offset recorded in the meta
	// region falls outside the sections region of the block.
	ErrOffsetOutOfRange = errors.New("vblock: section offset out of range")

	// ErrNotFound is reported by Iterator.Seek when the target key is
	// absent from the block.
	ErrNotFound = errors.New("vblock: key not found")

	// ErrNotSupported is reported by the reverse-iteration operations
	// the iterator does not implement (SeekToFirst, SeekToLast, Prev).
	ErrNotSupported = errors.New("vblock: operation not supported")

	// ErrEmptySection is returned by operations that require at least
	// one record to have been added to the current section.
	ErrEmptySection = errors.New("vblock: section is empty")

	// ErrIndexOutOfRange is returned when a requested section index is
	// outside the block's sections. Column decoders do not check their
	// indices and never return it.
	ErrIndexOutOfRange = errors.New("vblock: index out of range")

	// ErrOutOfOrder is returned by Builder.Add when the incoming record's
	// user key is smaller than the previously added record's. Records
	// with equal user keys are accepted in any sequence/type order.
	ErrOutOfOrder = errors.New("vblock: records must be added in sorted order")

	// ErrValueTooLarge is returned when a value's length cannot be
	// represented in the column's length prefix.
	ErrValueTooLarge = errors.New("vblock: value exceeds maximum column length")
)
