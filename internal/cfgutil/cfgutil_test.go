package cfgutil

import (
	"testing"

	"github.com/btcsuite/molwallet/value"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name        string
		addr        string
		defaultPort string
		expected    string
		expectErr   bool
	}{
		{name: "no port uses default", addr: "node.example.com", defaultPort: "9090", expected: "node.example.com:9090"},
		{name: "existing port kept", addr: "node.example.com:1234", defaultPort: "9090", expected: "node.example.com:1234"},
		{name: "invalid host errors", addr: "node.example.com:1234:5678", defaultPort: "9090", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.addr, tt.defaultPort)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeAddressesDropsDuplicates(t *testing.T) {
	got, err := NormalizeAddresses([]string{"a.example.com", "a.example.com:9090", "b.example.com"}, "9090")
	require.NoError(t, err)
	require.Equal(t, []string{"a.example.com:9090", "b.example.com:9090"}, got)
}

func TestFileExists(t *testing.T) {
	exists, err := FileExists("/nonexistent/path/for/test")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestExplicitStringTracksWhetherSet(t *testing.T) {
	e := NewExplicitString("default")
	require.False(t, e.ExplicitlySet())

	require.NoError(t, e.UnmarshalFlag("override"))
	require.True(t, e.ExplicitlySet())
	require.Equal(t, "override", e.Value)

	s, err := e.MarshalFlag()
	require.NoError(t, err)
	require.Equal(t, "override", s)
}

func TestAmountFlagRoundTrip(t *testing.T) {
	zero := value.Zero()
	a := NewAmountFlag(zero)

	require.NoError(t, a.UnmarshalFlag("12.5"))
	s, err := a.MarshalFlag()
	require.NoError(t, err)
	require.Equal(t, "12.5", s)

	require.Error(t, a.UnmarshalFlag("not-a-number"))
}

func TestAppDataDirIsNonEmpty(t *testing.T) {
	require.NotEmpty(t, AppDataDir("molctl"))
}
