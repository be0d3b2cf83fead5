package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexBase17RoundTrip(t *testing.T) {
	testCases := []string{
		"00",
		"ff",
		"0123456789abcdef",
		"329f873f147f8e50d50e92508236a09e95cc0d154605173f6e5f8e47c11192c5"[:64],
	}
	for _, hexStr := range testCases {
		hexStr := hexStr
		t.Run(hexStr, func(t *testing.T) {
			b17, err := HexToBase17(hexStr)
			require.NoError(t, err)

			back, err := Base17ToHex(b17, len(hexStr))
			require.NoError(t, err)
			require.Equal(t, hexStr, back)
		})
	}
}

func TestHexToBase17Alphabet(t *testing.T) {
	b17, err := HexToBase17("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	for _, c := range b17 {
		require.Contains(t, base17Alphabet, string(c))
	}
}

func TestHexBase256RoundTrip(t *testing.T) {
	hexStr := "deadbeef0102030405"
	b, err := HexToBase256(hexStr)
	require.NoError(t, err)
	require.Equal(t, hexStr, Base256ToHex(b))
}

func TestHexToBase256OddLength(t *testing.T) {
	_, err := HexToBase256("abc")
	require.Error(t, err)
}

func TestBase17ToHexInvalidDigit(t *testing.T) {
	_, err := Base17ToHex("zzz", 4)
	require.Error(t, err)
}
