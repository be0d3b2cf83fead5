package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd")
}

// TestDerivationDeterministic pins spec §8 property 1: identical
// (secret, token, position) triples always yield identical address and
// bundle.
func TestDerivationDeterministic(t *testing.T) {
	secret := testSecret()
	w1, km1, err := New(secret, "USER", "", DefaultKeyWidthBits)
	require.NoError(t, err)
	defer km1.Zero()

	w2, km2, err := New(secret, w1.Token, w1.Position, DefaultKeyWidthBits)
	require.NoError(t, err)
	defer km2.Zero()

	require.Equal(t, w1.Address, w2.Address)
	require.Equal(t, w1.Bundle, w2.Bundle)
	require.Len(t, w1.Address, 64)
	require.Len(t, w1.Bundle, 64)
	require.Equal(t, km1.ChainSeeds, km2.ChainSeeds)
}

func TestDerivationIndependentOnInputChange(t *testing.T) {
	secret := testSecret()
	w1, km1, err := New(secret, "USER", "", DefaultKeyWidthBits)
	require.NoError(t, err)
	defer km1.Zero()

	w2, km2, err := New(secret, "CRZY", w1.Position, DefaultKeyWidthBits)
	require.NoError(t, err)
	defer km2.Zero()

	require.NotEqual(t, w1.Address, w2.Address)
	// Bundle depends only on the secret.
	require.Equal(t, w1.Bundle, w2.Bundle)
}

func TestDerivationRejectsEmptyToken(t *testing.T) {
	_, _, err := New(testSecret(), "", "", DefaultKeyWidthBits)
	require.Error(t, err)
	var we WalletError
	require.ErrorAs(t, err, &we)
	require.Equal(t, ErrEmptyToken, we.ErrorCode)
}

func TestDerivationRejectsMalformedPosition(t *testing.T) {
	_, _, err := New(testSecret(), "USER", "not-hex", DefaultKeyWidthBits)
	require.Error(t, err)
	var we WalletError
	require.ErrorAs(t, err, &we)
	require.Equal(t, ErrInvalidPosition, we.ErrorCode)
}

func TestDerivationRejectsEmptySecret(t *testing.T) {
	_, _, err := New(nil, "USER", "", DefaultKeyWidthBits)
	require.Error(t, err)
}

func TestKeyMaterialZero(t *testing.T) {
	_, km, err := New(testSecret(), "USER", "", DefaultKeyWidthBits)
	require.NoError(t, err)

	km.Zero()
	var zeroSeed [ChainSegmentLen]byte
	for _, seed := range km.ChainSeeds {
		require.Equal(t, zeroSeed, seed)
	}
}

func TestNextPositionDeterministic(t *testing.T) {
	pos := strings.Repeat("0", 63) + "a"
	hash := strings.Repeat("1", 63) + "b"

	a, err := NextPosition(pos, hash)
	require.NoError(t, err)
	b, err := NextPosition(pos, hash)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 64)
	require.NotEqual(t, pos, a)
}

func TestNextPositionRejectsMalformedPosition(t *testing.T) {
	_, err := NextPosition("nothex", "aa")
	require.Error(t, err)
}
