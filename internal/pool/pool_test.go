package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferGrowAndWrite(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("hello"))
	require.Equal(t, []byte("hello"), bb.Bytes())
	require.Equal(t, 5, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBufferExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.ExtendOrGrow(10)
	require.Equal(t, 10, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 10)
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 16)
	bb := p.Get()
	bb.Grow(100)
	bb.SetLength(100)
	p.Put(bb)

	fresh := p.Get()
	require.Less(t, fresh.Cap(), 100)
}

func TestGetColumnBufferRoundTrip(t *testing.T) {
	bb := GetColumnBuffer()
	bb.MustWrite([]byte("data"))
	PutColumnBuffer(bb)
}

func TestGetUint32Slice(t *testing.T) {
	s, release := GetUint32Slice(4)
	require.Equal(t, 0, len(s))
	require.GreaterOrEqual(t, cap(s), 4)
	s = append(s, 1, 2, 3)
	release(s)

	s2, release2 := GetUint32Slice(2)
	require.Equal(t, 0, len(s2))
	release2(s2)
}

func TestGetUint64Slice(t *testing.T) {
	s, release := GetUint64Slice(4)
	require.Equal(t, 0, len(s))
	s = append(s, 1, 2)
	release(s)
}
