// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nonce

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/btcsuite/btcwallet/walletdb"
	_ "github.com/btcsuite/btcwallet/walletdb/bdb"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	dbPath := filepath.Join(t.TempDir(), "nonce.db")
	db, err := walletdb.Create("bdb", dbPath, false, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := Create(db)
	require.NoError(t, err)
	return s
}

func TestIsUsedFalseForUnseenPosition(t *testing.T) {
	s := openTestStore(t)

	used, err := s.IsUsed("bundle", "TOKEN", "pos1")
	require.NoError(t, err)
	require.False(t, used)
}

func TestMarkUsedThenIsUsed(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.MarkUsed("bundle", "TOKEN", "pos1"))
	used, err := s.IsUsed("bundle", "TOKEN", "pos1")
	require.NoError(t, err)
	require.True(t, used)

	used, err = s.IsUsed("bundle", "TOKEN", "pos2")
	require.NoError(t, err)
	require.False(t, used)
}

func TestCheckAndMarkUsedRejectsSecondUse(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.CheckAndMarkUsed("bundle", "TOKEN", "pos1"))

	err := s.CheckAndMarkUsed("bundle", "TOKEN", "pos1")
	require.Error(t, err)

	var se StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, ErrPositionReused, se.ErrorCode)
}

func TestOpenExistingStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nonce.db")
	db, err := walletdb.Create("bdb", dbPath, false, time.Minute)
	require.NoError(t, err)
	defer db.Close()

	_, err = Create(db)
	require.NoError(t, err)

	reopened, err := Open(db)
	require.NoError(t, err)
	require.NoError(t, reopened.MarkUsed("bundle", "TOKEN", "pos1"))
}
