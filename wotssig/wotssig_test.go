package wotssig

import (
	"strings"
	"testing"

	"github.com/btcsuite/molwallet/wallet"
	"github.com/stretchr/testify/require"
)

// TestNormalizeSumsToZero pins spec §8 property 2 and the concrete
// scenario in §8: a fixed molecular hash's enumerated/normalized sequence
// must sum to zero with every element in [-8, +8].
func TestNormalizeSumsToZero(t *testing.T) {
	hash := "329f873f147f8e50d50e92508236a09e95cc0d154605173f6e5f8e47c11192c5"[:64]
	digits, err := Enumerate(hash)
	require.NoError(t, err)
	require.Len(t, digits, 64)

	norm := Normalize(digits)
	sum := 0
	for _, v := range norm {
		require.GreaterOrEqual(t, v, -8)
		require.LessOrEqual(t, v, 8)
		sum += v
	}
	require.Equal(t, 0, sum)
}

func TestEnumerateMapsHexDigits(t *testing.T) {
	digits, err := Enumerate("0af")
	require.NoError(t, err)
	require.Equal(t, []int{-8, 2, 7}, digits)
}

func TestEnumerateRejectsInvalidDigit(t *testing.T) {
	_, err := Enumerate("0z")
	require.Error(t, err)
}

func testHash() string {
	return strings.Repeat("3", 63) + "a"
}

func testKeyMaterial() *wallet.KeyMaterial {
	km := &wallet.KeyMaterial{}
	for i := range km.ChainSeeds {
		for j := range km.ChainSeeds[i] {
			km.ChainSeeds[i][j] = byte(i*7 + j)
		}
	}
	return km
}

func TestSignProducesFullLengthFragment(t *testing.T) {
	km := testKeyMaterial()
	frag, err := Sign(testHash(), km)
	require.NoError(t, err)
	require.Len(t, frag, FragmentHexLen)
}

func TestDistributeAndReassembleRoundTrip(t *testing.T) {
	km := testKeyMaterial()
	frag, err := Sign(testHash(), km)
	require.NoError(t, err)

	parts, err := DistributeFragments(frag, 3)
	require.NoError(t, err)
	require.Len(t, parts, 3)
	// FragmentHexLen isn't a multiple of 3: first part absorbs the remainder.
	require.Equal(t, FragmentHexLen/3+FragmentHexLen%3, len(parts[0]))

	require.Equal(t, frag, ReassembleFragments(parts))
}

func TestVerifyRoundTripsWithDerivedAddress(t *testing.T) {
	km := testKeyMaterial()
	hash := testHash()
	frag, err := Sign(hash, km)
	require.NoError(t, err)

	address, err := DeriveAddress(hash, frag)
	require.NoError(t, err)
	require.Len(t, address, 64)

	require.NoError(t, Verify(hash, frag, address))
}

func TestVerifyDetectsTamperedFragment(t *testing.T) {
	km := testKeyMaterial()
	hash := testHash()
	frag, err := Sign(hash, km)
	require.NoError(t, err)
	address, err := DeriveAddress(hash, frag)
	require.NoError(t, err)

	tampered := []byte(frag)
	if tampered[0] == '0' {
		tampered[0] = '1'
	} else {
		tampered[0] = '0'
	}

	err = Verify(hash, string(tampered), address)
	require.Error(t, err)
}

func TestDeriveAddressRejectsWrongLength(t *testing.T) {
	_, err := DeriveAddress(testHash(), "abcd")
	require.Error(t, err)
}
