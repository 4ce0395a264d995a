package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingTypeString(t *testing.T) {
	require.Equal(t, "Plain", Plain.String())
	require.Equal(t, "Length", Length.String())
	require.Equal(t, "Bitpack", Bitpack.String())
	require.Equal(t, "Runlength", Runlength.String())
	require.Equal(t, "Unknown", EncodingType(99).String())
}

func TestCompressionTypeString(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(99).String())
}
