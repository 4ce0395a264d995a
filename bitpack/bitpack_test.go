package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitWidth(t *testing.T) {
	require.Equal(t, uint8(1), BitWidth(nil))
	require.Equal(t, uint8(1), BitWidth([]uint32{0, 0, 0}))
	require.Equal(t, uint8(2), BitWidth([]uint32{0, 1, 2, 3}))
	require.Equal(t, uint8(32), BitWidth([]uint32{0xFFFFFFFF}))
}

func TestBitWidthFromMax(t *testing.T) {
	require.Equal(t, uint8(1), BitWidthFromMax(0))
	require.Equal(t, uint8(2), BitWidthFromMax(3))
	require.Equal(t, uint8(11), BitWidthFromMax(2000))
	require.Equal(t, uint8(32), BitWidthFromMax(0xFFFFFFFF))
	require.Equal(t, BitWidth([]uint32{0, 5, 2000}), BitWidthFromMax(2000))
}

func TestPackUnpackFidelity(t *testing.T) {
	cases := [][]uint32{
		{0, 1, 2, 3},
		{100, 101, 102, 103},
		{0},
		{0, 0, 0, 0, 0, 0, 0, 0, 1},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 9},
	}

	for _, values := range cases {
		bw := BitWidth(values)
		out := make([]byte, PackedSize(len(values), bw))
		Pack(values, bw, out)

		got := Unpack(out, len(values), bw)
		require.Equal(t, values, got)
	}
}

func TestPackS4Layout(t *testing.T) {
	// S4: user_keys [100,101,102,103] => deltas [0,1,2,3] => bit_width=2
	// packed byte 0b11_10_01_00 = 0xE4, followed by padding.
	deltas := []uint32{0, 1, 2, 3}
	bw := BitWidth(deltas)
	require.Equal(t, uint8(2), bw)

	out := make([]byte, PackedSize(len(deltas), bw))
	Pack(deltas, bw, out)
	require.Equal(t, byte(0xE4), out[0])
}

func TestUnpackGroup8(t *testing.T) {
	values := make([]uint32, 16)
	for i := range values {
		values[i] = uint32(i * 3)
	}
	bw := BitWidth(values)
	out := make([]byte, PackedSize(len(values), bw))
	Pack(values, bw, out)

	g0 := UnpackGroup8(out, 0, bw)
	g1 := UnpackGroup8(out, 1, bw)
	for i := 0; i < 8; i++ {
		require.Equal(t, values[i], g0[i])
		require.Equal(t, values[8+i], g1[i])
	}
}

func TestEqSearch(t *testing.T) {
	values := []uint32{0, 10, 20, 30, 40, 50}
	bw := BitWidth(values)
	out := make([]byte, PackedSize(len(values), bw))
	Pack(values, bw, out)

	for i, v := range values {
		require.Equal(t, i, EqSearch(out, len(values), bw, v))
	}
	require.Equal(t, -1, EqSearch(out, len(values), bw, 25))
	require.Equal(t, -1, EqSearch(out, len(values), bw, 999))
}

func TestGeqSearch(t *testing.T) {
	values := []uint32{0, 10, 20, 30, 40, 50}
	bw := BitWidth(values)
	out := make([]byte, PackedSize(len(values), bw))
	Pack(values, bw, out)

	require.Equal(t, uint32(0), GeqSearch(out, len(values), bw, 0))
	require.Equal(t, uint32(2), GeqSearch(out, len(values), bw, 25))
	require.Equal(t, uint32(5), GeqSearch(out, len(values), bw, 999))
	require.Equal(t, uint32(0), GeqSearch(out, len(values), bw, 0))
}

func TestBitWidthUpToThirtyTwo(t *testing.T) {
	for w := uint8(1); w <= 32; w++ {
		var max uint32
		if w == 32 {
			max = 0xFFFFFFFF
		} else {
			max = uint32(1)<<w - 1
		}
		values := []uint32{0, max / 2, max}
		bw := BitWidth(values)
		require.LessOrEqual(t, bw, w)

		out := make([]byte, PackedSize(len(values), bw))
		Pack(values, bw, out)
		got := Unpack(out, len(values), bw)
		require.Equal(t, values, got)
	}
}
