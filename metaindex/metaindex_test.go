package metaindex

import (
	"testing"

	"github.com/colsm/vblock/errs"
	"github.com/stretchr/testify/require"
)

func TestMetaIndexRoundTripS2(t *testing.T) {
	// S2: 3 sections with start values 0, 40, 80 at offsets 0, 100, 200.
	b := NewBuilder()
	b.AddSection(0, 0)
	b.AddSection(100, 40)
	b.AddSection(200, 80)
	b.Finish()

	buf := make([]byte, b.EstimateSize())
	b.Dump(buf)

	var r Reader
	require.NoError(t, r.Read(buf))
	require.Equal(t, 3, r.NumSection())
	require.Equal(t, uint64(0), r.Offset(0))
	require.Equal(t, uint64(100), r.Offset(1))
	require.Equal(t, uint64(200), r.Offset(2))
	require.Equal(t, int32(0), r.StartValue(0))
	require.Equal(t, int32(40), r.StartValue(1))
	require.Equal(t, int32(80), r.StartValue(2))

	require.Equal(t, uint32(1), r.Search(50))
	require.Equal(t, uint32(0), r.Search(-10))
	require.Equal(t, uint32(2), r.Search(1000))
}

func TestMetaIndexSingleSection(t *testing.T) {
	b := NewBuilder()
	b.AddSection(0, 7)
	b.Finish()

	buf := make([]byte, b.EstimateSize())
	b.Dump(buf)

	var r Reader
	require.NoError(t, r.Read(buf))
	require.Equal(t, uint32(0), r.Search(7))
	require.Equal(t, uint32(0), r.Search(1000))
}

func TestMetaIndexEstimateSizeBeforeFinish(t *testing.T) {
	b := NewBuilder()
	b.AddSection(0, 0)
	before := b.EstimateSize()

	// A large start value pushes the bit width from 1 to 11 bits; the
	// pre-Finish estimate must account for it immediately, not lag
	// behind until Finish recomputes the bit width from scratch.
	b.AddSection(100, 2000)
	after := b.EstimateSize()
	require.Greater(t, after, before)

	b.Finish()
	require.Equal(t, after, b.EstimateSize())

	buf := make([]byte, b.EstimateSize())
	b.Dump(buf)
	require.Len(t, buf, int(after))
}

func TestMetaIndexReadDetectsTrailingGarbage(t *testing.T) {
	b := NewBuilder()
	b.AddSection(0, 0)
	b.AddSection(100, 40)
	b.Finish()

	buf := make([]byte, b.EstimateSize()+1)
	b.Dump(buf)

	var r Reader
	require.ErrorIs(t, r.Read(buf), errs.ErrMetaSizeMismatch)
}

func TestMetaIndexMonotone(t *testing.T) {
	b := NewBuilder()
	starts := []int32{0, 10, 20, 20, 55}
	for i, s := range starts {
		b.AddSection(uint64(i*100), s)
	}
	b.Finish()

	buf := make([]byte, b.EstimateSize())
	b.Dump(buf)

	var r Reader
	require.NoError(t, r.Read(buf))
	prev := int32(-1)
	for i := 0; i < r.NumSection(); i++ {
		sv := r.StartValue(i)
		require.GreaterOrEqual(t, sv, prev)
		prev = sv
	}
}
