package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyColumnRoundTrip(t *testing.T) {
	enc := NewKeyEncoder()
	deltas := []uint32{0, 1, 2, 5, 9, 9, 20}
	for _, d := range deltas {
		enc.Add(d)
	}
	enc.Close()

	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec KeyDecoder
	dec.Attach(buf, len(deltas))
	for _, want := range deltas {
		require.Equal(t, want, dec.DecodeU32())
	}
}

func TestKeyColumnSkipEqualsDecode(t *testing.T) {
	enc := NewKeyEncoder()
	deltas := []uint32{0, 3, 4, 4, 10, 11, 50, 51, 52, 60}
	for _, d := range deltas {
		enc.Add(d)
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var a, b KeyDecoder
	a.Attach(buf, len(deltas))
	b.Attach(buf, len(deltas))

	for i := 0; i < len(deltas); i++ {
		a.DecodeU32()
	}
	b.Skip(len(deltas) - 1)

	a.Attach(buf, len(deltas))
	a.Skip(5)
	b.Attach(buf, len(deltas))
	for i := 0; i < 5; i++ {
		b.DecodeU32()
	}
	require.Equal(t, b.DecodeU32(), a.DecodeU32())
}

func TestSeqColumnRoundTrip(t *testing.T) {
	enc := NewSeqEncoder()
	seqs := []uint64{1, 1, 2, 100, 1 << 40}
	for _, s := range seqs {
		enc.Add(s)
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec SeqDecoder
	dec.Attach(buf, len(seqs))
	for _, want := range seqs {
		require.Equal(t, want, dec.DecodeU64())
	}
}

func TestTypeColumnRLES5(t *testing.T) {
	// S5: runs (1,3),(2,2),(1,2).
	enc := NewTypeEncoder()
	values := []uint8{1, 1, 1, 2, 2, 1, 1}
	for _, v := range values {
		enc.Add(v)
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec TypeDecoder
	dec.Attach(buf, len(values))
	for _, want := range values {
		require.Equal(t, want, dec.DecodeU8())
	}
}

func TestTypeColumnSingleValueRuns(t *testing.T) {
	enc := NewTypeEncoder()
	values := []uint8{1, 2, 3, 4, 5}
	for _, v := range values {
		enc.Add(v)
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec TypeDecoder
	dec.Attach(buf, len(values))
	for _, want := range values {
		require.Equal(t, want, dec.DecodeU8())
	}
}

func TestTypeColumnSkip(t *testing.T) {
	enc := NewTypeEncoder()
	values := []uint8{1, 1, 1, 2, 2, 3, 3, 3, 3}
	for _, v := range values {
		enc.Add(v)
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec TypeDecoder
	dec.Attach(buf, len(values))
	dec.Skip(4)
	require.Equal(t, uint8(2), dec.DecodeU8())
	require.Equal(t, uint8(3), dec.DecodeU8())
}

func TestTypeVarintColumnRLE(t *testing.T) {
	enc := NewTypeVarintEncoder()
	values := []uint8{7, 7, 7, 7, 8, 9, 9}
	for _, v := range values {
		enc.Add(v)
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec TypeVarintDecoder
	dec.Attach(buf, len(values))
	for _, want := range values {
		require.Equal(t, want, dec.DecodeU8())
	}
}

func TestValuePlainColumn(t *testing.T) {
	enc := NewValuePlainEncoder()
	values := [][]byte{[]byte("a"), []byte("bb"), []byte(""), []byte("cccc")}
	for _, v := range values {
		require.NoError(t, enc.Add(v))
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec ValuePlainDecoder
	dec.Attach(buf, len(values))
	for i, want := range values {
		require.Equal(t, want, dec.At(i))
	}

	dec.Attach(buf, len(values))
	for _, want := range values {
		require.Equal(t, want, dec.DecodeBytes())
	}
}

func TestValueLengthColumnS6(t *testing.T) {
	// S6: values ["", "ab", "c"] => offset table [0,0,2,3], payload "abc";
	// random skip to index 2 decodes "c".
	enc := NewValueLengthEncoder()
	values := [][]byte{[]byte(""), []byte("ab"), []byte("c")}
	for _, v := range values {
		require.NoError(t, enc.Add(v))
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec ValueLengthDecoder
	dec.Attach(buf, len(values))
	require.Equal(t, []byte("c"), dec.At(2))
	require.Equal(t, []byte(""), dec.At(0))
	require.Equal(t, []byte("ab"), dec.At(1))

	dec.Attach(buf, len(values))
	dec.Skip(2)
	require.Equal(t, []byte("c"), dec.DecodeBytes())
}

func TestValueLengthRandomAccess(t *testing.T) {
	enc := NewValueLengthEncoder()
	values := [][]byte{[]byte("hello"), []byte(""), []byte("world"), []byte("x")}
	for _, v := range values {
		require.NoError(t, enc.Add(v))
	}
	enc.Close()
	buf := make([]byte, enc.EstimateSize())
	enc.Dump(buf)

	var dec ValueLengthDecoder
	for i := len(values) - 1; i >= 0; i-- {
		dec.Attach(buf, len(values))
		require.Equal(t, values[i], dec.At(i))
	}
}
