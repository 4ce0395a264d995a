// Package block implements the vertical block builder, reader, and
// iterator: the top-level assembly of sections and the meta index into
// one self-contained byte buffer (§2, §4.5, §4.6, §6).
package block

import (
	"fmt"

	"github.com/colsm/vblock/errs"
	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/internal/pool"
	"github.com/colsm/vblock/internalkey"
	"github.com/colsm/vblock/metaindex"
	"github.com/colsm/vblock/section"
)

// DefaultSectionLimit is the default number of records per section when
// no SectionLimit option is supplied.
const DefaultSectionLimit = 256

// metaEntryAllowance is the conservative per-pending-section allowance
// used by CurrentSizeEstimate (§4.6: "an allowance for the pending
// section's eventual meta entry, conservatively 16 bytes").
const metaEntryAllowance = 16

// trailerSize is the byte length of the block trailer: meta_size:u32
// plus magic:u32.
const trailerSize = 8

// BuilderOption configures a Builder at construction time.
type BuilderOption func(*builderConfig)

type builderConfig struct {
	sectionLimit  int
	valueEncoding section.ValueEncoding
}

// WithSectionLimit sets the maximum number of records per section.
func WithSectionLimit(n int) BuilderOption {
	return func(c *builderConfig) { c.sectionLimit = n }
}

// WithValueEncoding selects the value column's codec.
func WithValueEncoding(ve section.ValueEncoding) BuilderOption {
	return func(c *builderConfig) { c.valueEncoding = ve }
}

// Builder streams records into sections, cutting a new section whenever
// the current one reaches sectionLimit, then finalizes the meta index
// and emits one byte buffer (§4.6).
type Builder struct {
	cfg builderConfig

	buf     *pool.ByteBuffer
	meta    *metaindex.Builder
	current *section.Builder

	haveLast bool
	last     internalkey.Record

	finished bool
}

// NewBuilder creates a block builder. Defaults: DefaultSectionLimit
// records per section, PLAIN value encoding.
func NewBuilder(opts ...BuilderOption) *Builder {
	cfg := builderConfig{
		sectionLimit:  DefaultSectionLimit,
		valueEncoding: section.ValuePlain,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Builder{
		cfg:     cfg,
		buf:     pool.GetColumnBuffer(),
		meta:    metaindex.NewBuilder(),
		current: section.NewBuilder(cfg.valueEncoding),
	}
}

// Add parses key into its composite internal-key fields and appends
// (parsed, value) to the current section, dumping it when the section
// limit is reached (§4.6: "add(key, value)"). The UserKey sequence must
// be non-decreasing (§4.5 "Ordering and tie-breaks"); a regression
// returns ErrOutOfOrder.
func (b *Builder) Add(key []byte, value []byte) error {
	rec := internalkey.Decode(key)

	if b.haveLast && internalkey.UserKeyRegresses(b.last, rec) {
		return fmt.Errorf("%w: user_key=%d", errs.ErrOutOfOrder, rec.UserKey)
	}
	b.last = rec
	b.haveLast = true

	if err := b.current.Add(rec, value); err != nil {
		return err
	}

	if int(b.current.NumEntry()) >= b.cfg.sectionLimit {
		b.dumpSection()
	}

	return nil
}

func (b *Builder) dumpSection() {
	if err := b.current.Close(); err != nil {
		// unreachable: dumpSection is only called with a non-empty current section.
		return
	}
	offset := uint64(b.buf.Len())
	size := b.current.EstimateSize()
	b.meta.AddSection(offset, b.current.StartValue())

	b.buf.Grow(int(size))
	start := b.buf.Len()
	b.buf.ExtendOrGrow(int(size))
	b.current.Dump(b.buf.Slice(start, start+int(size)))

	b.current.Reset()
}

// CurrentSizeEstimate returns a conservative upper bound on the byte
// length Finish would currently produce (§4.6).
func (b *Builder) CurrentSizeEstimate() uint32 {
	total := uint32(b.buf.Len())
	if !b.current.Empty() {
		total += b.current.EstimateSize()
	}
	total += b.meta.EstimateSize() + metaEntryAllowance
	total += trailerSize

	return total
}

// Finish dumps any pending section, finalizes the meta index, and
// returns the complete block buffer. The returned slice aliases the
// builder's internal buffer and is invalidated by the next Add/Reset.
func (b *Builder) Finish() []byte {
	if !b.current.Empty() {
		b.dumpSection()
	}
	b.meta.Finish()

	metaSize := b.meta.EstimateSize()
	b.buf.Grow(int(metaSize) + trailerSize)
	start := b.buf.Len()
	b.buf.ExtendOrGrow(int(metaSize) + trailerSize)
	metaRegion := b.buf.Slice(start, start+int(metaSize))
	b.meta.Dump(metaRegion)

	trailer := b.buf.Slice(start+int(metaSize), start+int(metaSize)+trailerSize)
	putUint32(trailer[0:4], metaSize)
	putUint32(trailer[4:8], format.MagicNumber)

	b.finished = true

	return b.buf.Bytes()
}

// Reset clears the builder so it can build a new block, reusing
// allocations.
func (b *Builder) Reset() {
	b.buf.Reset()
	b.meta.Reset()
	b.current.Reset()
	b.haveLast = false
	b.finished = false
}

func putUint32(out []byte, v uint32) {
	out[0] = byte(v)
	out[1] = byte(v >> 8)
	out[2] = byte(v >> 16)
	out[3] = byte(v >> 24)
}
