package atom

import (
	"testing"

	"github.com/btcsuite/molwallet/value"
	"github.com/stretchr/testify/require"
)

func TestAddMetaDuplicateKey(t *testing.T) {
	a := New("pos", "addr", IsotopeMeta, "")
	require.NoError(t, a.AddMeta("k", "v1"))
	err := a.AddMeta("k", "v2")
	require.Error(t, err)
	var ae AtomError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, ErrDuplicateMetaKey, ae.ErrorCode)
}

func TestEqual(t *testing.T) {
	a1 := New("pos", "addr", IsotopeValue, "USER")
	v, _ := value.Parse("100")
	a1.WithValue(v)
	a1.CreatedAt = "1700000000000"
	a1.Index = 0

	a2 := New("pos", "addr", IsotopeValue, "USER")
	a2.WithValue(v)
	a2.CreatedAt = "1700000000000"
	a2.Index = 0

	require.True(t, a1.Equal(a2))

	a2.Index = 1
	require.False(t, a1.Equal(a2))
}

func TestToCanonicalForcesEmptyOTSFragment(t *testing.T) {
	a := New("pos", "addr", IsotopeMeta, "")
	a.OTSFragment = "abcd"
	c := a.ToCanonical()
	require.Empty(t, c.OTSFragment)
}

func TestValidateValueAtomRequiresValue(t *testing.T) {
	a := New("pos", "addr", IsotopeValue, "USER")
	err := Validate(a)
	require.Error(t, err)
	var ae AtomError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, ErrUnexpectedValue, ae.ErrorCode)
}

func TestValidateMetaAtomRejectsValue(t *testing.T) {
	a := New("pos", "addr", IsotopeMeta, "")
	v, _ := value.Parse("1")
	a.WithValue(v)
	err := Validate(a)
	require.Error(t, err)
}

func TestValidateTokenRequiresPositiveValueAndMeta(t *testing.T) {
	a := New("pos", "addr", IsotopeToken, "CRZY")
	err := Validate(a)
	require.Error(t, err)

	v, _ := value.Parse("1000")
	a.WithValue(v)
	require.NoError(t, a.AddMeta("name", "Crazy Coin"))
	require.NoError(t, a.AddMeta("fungibility", "fungible"))
	require.NoError(t, a.AddMeta("supply", "1000000"))
	require.NoError(t, a.AddMeta("decimals", "2"))
	require.NoError(t, Validate(a))
}

func TestValidateUnknownIsotope(t *testing.T) {
	a := New("pos", "addr", Isotope("Z"), "")
	err := Validate(a)
	require.Error(t, err)
	var ae AtomError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, ErrUnknownIsotope, ae.ErrorCode)
}
