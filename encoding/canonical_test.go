package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeOrderedFields(t *testing.T) {
	atoms := []CanonicalAtom{
		{
			Position:      strPad("a", 64),
			WalletAddress: strPad("b", 64),
			Isotope:       "V",
			Token:         "USER",
			Value:         "-100",
			Meta:          nil,
			IndexSet:      true,
			Index:         0,
			CreatedAt:     "1700000000000",
		},
	}
	s, err := Serialize(atoms)
	require.NoError(t, err)
	require.Contains(t, s, `"V"`)
	require.Contains(t, s, `"USER"`)
	require.Contains(t, s, `"-100"`)
	require.Contains(t, s, `""`) // batchId/metaType/metaId/otsFragment
}

func TestSerializeOTSFragmentAlwaysEmpty(t *testing.T) {
	atoms := []CanonicalAtom{{
		Position:      strPad("a", 64),
		WalletAddress: strPad("b", 64),
		Isotope:       "V",
		Token:         "USER",
		Value:         "100",
		OTSFragment:   "deadbeef",
		IndexSet:      true,
		CreatedAt:     "1700000000000",
	}}
	s, err := Serialize(atoms)
	require.NoError(t, err)
	require.NotContains(t, s, "deadbeef")
}

func TestSerializeMetaFlattened(t *testing.T) {
	atoms := []CanonicalAtom{{
		Position:      strPad("a", 64),
		WalletAddress: strPad("b", 64),
		Isotope:       "M",
		Meta: []MetaPair{
			{Key: "k1", Value: "v1"},
			{Key: "k2", Value: "v2"},
		},
		IndexSet:  true,
		CreatedAt: "1700000000000",
	}}
	s, err := Serialize(atoms)
	require.NoError(t, err)
	require.Contains(t, s, `["k1","v1","k2","v2"]`)
}

func TestSerializeEscaping(t *testing.T) {
	atoms := []CanonicalAtom{{
		Position:      strPad("a", 64),
		WalletAddress: strPad("b", 64),
		Isotope:       "M",
		Meta: []MetaPair{
			{Key: "note", Value: "line1\nline2\t\"quoted\"\\slash"},
		},
		IndexSet:  true,
		CreatedAt: "1700000000000",
	}}
	s, err := Serialize(atoms)
	require.NoError(t, err)
	require.Contains(t, s, `line1\nline2\t\"quoted\"\\slash`)
}

func TestSerializeEmptyAtomList(t *testing.T) {
	_, err := Serialize(nil)
	require.Error(t, err)
	var ee EncodingError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, ErrEmptyAtomList, ee.ErrorCode)
}

func TestSerializeDeterministic(t *testing.T) {
	atoms := []CanonicalAtom{{
		Position:      strPad("1", 64),
		WalletAddress: strPad("2", 64),
		Isotope:       "V",
		Token:         "CRZY",
		Value:         "900",
		IndexSet:      true,
		Index:         2,
		CreatedAt:     "1700000000000",
	}}
	a, err := Serialize(atoms)
	require.NoError(t, err)
	b, err := Serialize(atoms)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func strPad(s string, n int) string {
	for len(s) < n {
		s += s
	}
	return s[:n]
}
