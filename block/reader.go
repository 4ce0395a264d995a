package block

import (
	"encoding/binary"
	"fmt"

	"github.com/colsm/vblock/errs"
	"github.com/colsm/vblock/format"
	"github.com/colsm/vblock/metaindex"
	"github.com/colsm/vblock/section"
)

// Reader parses a finished block buffer's trailer and meta region and
// retains a view over the sections region (§4.5: "BlockReader::new(buf)
// parses the meta region ..., then retains a pointer to the sections
// region").
type Reader struct {
	buf      []byte
	sections []byte
	meta     metaindex.Reader
}

// NewReader parses buf as a vertical block. buf must outlive every
// iterator derived from this reader. Returns a *corrupt-block* error
// (§7) if the trailer magic doesn't match, the meta size disagrees, or
// an offset is out of range.
func NewReader(buf []byte) (*Reader, error) {
	if len(buf) < trailerSize {
		return nil, fmt.Errorf("%w: buffer shorter than trailer", errs.ErrCorruptBlock)
	}
	trailer := buf[len(buf)-trailerSize:]
	metaSize := binary.LittleEndian.Uint32(trailer[0:4])
	magic := binary.LittleEndian.Uint32(trailer[4:8])
	if magic != format.MagicNumber {
		return nil, fmt.Errorf("%w", errs.ErrMagicMismatch)
	}

	metaStart := len(buf) - trailerSize - int(metaSize)
	if metaStart < 0 {
		return nil, fmt.Errorf("%w: meta_size exceeds buffer", errs.ErrMetaSizeMismatch)
	}

	r := &Reader{buf: buf, sections: buf[:metaStart]}
	if err := r.meta.Read(buf[metaStart : metaStart+int(metaSize)]); err != nil {
		return nil, err
	}
	for i := 0; i < r.meta.NumSection(); i++ {
		if r.meta.Offset(i) >= uint64(len(r.sections)) {
			return nil, fmt.Errorf("%w: section %d offset out of range", errs.ErrOffsetOutOfRange, i)
		}
	}

	return r, nil
}

func (r *Reader) readSection(idx int, s *section.Reader) error {
	n := r.meta.NumSection()
	if idx < 0 || idx >= n {
		return fmt.Errorf("%w: section index %d out of range", errs.ErrIndexOutOfRange, idx)
	}
	off := r.meta.Offset(idx)
	if off > uint64(len(r.sections)) {
		return fmt.Errorf("%w: section offset out of range", errs.ErrOffsetOutOfRange)
	}

	var end uint64
	if idx+1 < n {
		end = r.meta.Offset(idx + 1)
	} else {
		end = uint64(len(r.sections))
	}
	if end > uint64(len(r.sections)) || end < off {
		return fmt.Errorf("%w: section offset out of range", errs.ErrOffsetOutOfRange)
	}

	return s.Read(r.sections[off:end])
}

// NumSection returns the number of sections in the block.
func (r *Reader) NumSection() int { return r.meta.NumSection() }
