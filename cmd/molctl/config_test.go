package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrimTrailingNewline(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "no trailing newline", in: "abc", expected: "abc"},
		{name: "unix newline", in: "abc\n", expected: "abc"},
		{name: "windows newline", in: "abc\r\n", expected: "abc"},
		{name: "multiple trailing newlines", in: "abc\n\n", expected: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, string(trimTrailingNewline([]byte(tt.in))))
		})
	}
}

func TestReadSecretRequiresSecretFile(t *testing.T) {
	cfg := defaultConfig()
	_, err := readSecret(&cfg)
	require.Error(t, err)
}

func TestReadSecretReadsAndTrimsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.hex")
	require.NoError(t, os.WriteFile(path, []byte("0123456789abcdef\n"), 0600))

	cfg := defaultConfig()
	cfg.SecretFile = path

	secret, err := readSecret(&cfg)
	require.NoError(t, err)
	require.Equal(t, "0123456789abcdef", string(secret))
}

func TestDefaultConfigSetsExpectedDefaults(t *testing.T) {
	cfg := defaultConfig()
	require.True(t, cfg.CompressedSignature)
	require.Equal(t, defaultKeyWidthBits, cfg.KeyWidthBits)
	require.Equal(t, defaultCellSlug, cfg.CellSlug)
}
