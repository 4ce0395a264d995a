package block

import (
	"testing"

	"github.com/colsm/vblock/errs"
	"github.com/colsm/vblock/internalkey"
	"github.com/stretchr/testify/require"
)

func seekKey(userKey uint32) []byte {
	buf := make([]byte, 4)
	buf[0] = byte(userKey)
	buf[1] = byte(userKey >> 8)
	buf[2] = byte(userKey >> 16)
	buf[3] = byte(userKey >> 24)

	return buf
}

func buildKey(userKey uint32, seq uint64, typ uint8) []byte {
	buf := make([]byte, internalkey.Size)
	internalkey.Encode(buf, internalkey.Record{UserKey: userKey, Sequence: seq, Type: typ})

	return buf
}

func TestBlockRoundTripS1(t *testing.T) {
	b := NewBuilder(WithSectionLimit(16))
	records := []struct {
		key   uint32
		value string
	}{
		{1, "a"}, {2, "b"}, {3, "c"},
	}
	for _, r := range records {
		require.NoError(t, b.Add(buildKey(r.key, 1, 1), []byte(r.value)))
	}
	buf := b.Finish()

	r, err := NewReader(buf)
	require.NoError(t, err)
	require.Equal(t, 1, r.NumSection())

	it := NewIterator(r)
	it.Seek(seekKey(1))
	require.True(t, it.Valid())
	require.Equal(t, []byte("a"), it.Value())

	it.Seek(seekKey(2))
	require.True(t, it.Valid())
	require.Equal(t, []byte("b"), it.Value())

	it.Seek(seekKey(4))
	require.False(t, it.Valid())
	require.ErrorIs(t, it.Status(), errs.ErrNotFound)
}

func TestBlockSortedScanS1(t *testing.T) {
	b := NewBuilder(WithSectionLimit(16))
	records := []struct {
		key   uint32
		value string
	}{
		{1, "a"}, {2, "b"}, {3, "c"},
	}
	for _, r := range records {
		require.NoError(t, b.Add(buildKey(r.key, 1, 1), []byte(r.value)))
	}
	buf := b.Finish()

	r, err := NewReader(buf)
	require.NoError(t, err)

	it := NewIterator(r)
	it.Seek(seekKey(1))
	var got []string
	for it.Valid() {
		got = append(got, string(it.Value()))
		it.Next()
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestBlockTwoSectionsS2(t *testing.T) {
	b := NewBuilder(WithSectionLimit(4))
	for i := 0; i < 10; i++ {
		key := uint32(i * 10)
		require.NoError(t, b.Add(buildKey(key, 1, 1), []byte{byte(i)}))
	}
	buf := b.Finish()

	r, err := NewReader(buf)
	require.NoError(t, err)
	require.Equal(t, 3, r.NumSection())

	it := NewIterator(r)
	it.Seek(seekKey(50))
	require.True(t, it.Valid())
	require.Equal(t, []byte{5}, it.Value())
}

func TestBlockBuilderSizeEstimateNeverUnderestimates(t *testing.T) {
	// 2000 records at section_limit=4 produces 500 sections, growing the
	// meta start-delta bit width from 1 bit up to 11 bits as the block
	// is built; this exercises CurrentSizeEstimate called before the
	// final bit width is known (§8 property 9).
	b := NewBuilder(WithSectionLimit(4))
	const n = 2000
	for i := 0; i < n; i++ {
		require.NoError(t, b.Add(buildKey(uint32(i), 1, 1), []byte("value")))
	}
	preFinishEstimate := b.CurrentSizeEstimate()
	buf := b.Finish()
	require.LessOrEqual(t, len(buf), int(preFinishEstimate))
	require.LessOrEqual(t, int(preFinishEstimate)-len(buf), 16)
}

func TestBlockDuplicateUserKeyBySequenceS3(t *testing.T) {
	b := NewBuilder(WithSectionLimit(16))
	require.NoError(t, b.Add(buildKey(5, 2, 1), []byte("x")))
	require.NoError(t, b.Add(buildKey(5, 1, 1), []byte("y")))
	buf := b.Finish()

	r, err := NewReader(buf)
	require.NoError(t, err)

	it := NewIterator(r)
	it.Seek(seekKey(5))
	require.True(t, it.Valid())
	firstKey := append([]byte(nil), it.Key()...)
	firstVal := append([]byte(nil), it.Value()...)
	it.Next()
	require.True(t, it.Valid())
	require.NotEqual(t, firstKey, it.Key())
	require.Equal(t, []byte("x"), firstVal)
	require.Equal(t, []byte("y"), it.Value())
}

func TestBlockCorruptMagic(t *testing.T) {
	b := NewBuilder(WithSectionLimit(16))
	require.NoError(t, b.Add(buildKey(1, 1, 1), []byte("a")))
	buf := append([]byte(nil), b.Finish()...)
	buf[len(buf)-1] ^= 0xff

	_, err := NewReader(buf)
	require.Error(t, err)
}

func TestBlockAddRejectsOutOfOrderUserKey(t *testing.T) {
	b := NewBuilder(WithSectionLimit(16))
	require.NoError(t, b.Add(buildKey(5, 1, 1), []byte("a")))
	require.NoError(t, b.Add(buildKey(5, 2, 1), []byte("b")))

	err := b.Add(buildKey(4, 1, 1), []byte("c"))
	require.ErrorIs(t, err, errs.ErrOutOfOrder)
}

func TestBlockNotSupportedOperations(t *testing.T) {
	b := NewBuilder(WithSectionLimit(16))
	require.NoError(t, b.Add(buildKey(1, 1, 1), []byte("a")))
	buf := b.Finish()

	r, err := NewReader(buf)
	require.NoError(t, err)

	it := NewIterator(r)
	it.Seek(seekKey(1))
	require.True(t, it.Valid())

	it.SeekToFirst()
	require.True(t, it.Valid())
	require.Error(t, it.Status())

	it.SeekToLast()
	require.Error(t, it.Status())

	it.Prev()
	require.Error(t, it.Status())
}
