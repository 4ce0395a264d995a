// Package vblock provides the top-level entry points for building and
// reading vertical blocks: a columnar block format for a log-structured
// merge key-value store (§1, §2).
package vblock

import (
	"github.com/colsm/vblock/block"
	"github.com/colsm/vblock/section"
)

// ValueEncoding selects the column codec used for the value stream.
type ValueEncoding = section.ValueEncoding

const (
	ValuePlain  = section.ValuePlain
	ValueLength = section.ValueLength
)

// BuilderOption configures a Builder at construction time.
type BuilderOption = block.BuilderOption

// WithSectionLimit sets the maximum number of records per section.
func WithSectionLimit(n int) BuilderOption { return block.WithSectionLimit(n) }

// WithValueEncoding selects the value column's codec.
func WithValueEncoding(ve ValueEncoding) BuilderOption { return block.WithValueEncoding(ve) }

// Builder streams sorted records into sections and assembles a finished
// block buffer.
type Builder = block.Builder

// NewBuilder creates a block builder.
func NewBuilder(opts ...BuilderOption) *Builder { return block.NewBuilder(opts...) }

// Reader parses a finished block buffer.
type Reader = block.Reader

// NewReader parses buf as a vertical block. buf must outlive every
// iterator derived from the returned reader.
func NewReader(buf []byte) (*Reader, error) { return block.NewReader(buf) }

// Iterator is a forward-only seeking iterator over a Reader's sections.
type Iterator = block.Iterator

// NewIterator creates a forward iterator over r, initially invalid.
func NewIterator(r *Reader) *Iterator { return block.NewIterator(r) }
