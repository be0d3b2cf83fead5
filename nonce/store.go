// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nonce

import (
	"errors"
	"time"

	"github.com/btcsuite/btcwallet/walletdb"
)

var nonceNamespaceKey = []byte("noncemgr")

// Store records, per (bundle, token, position) triple, whether this
// client has already signed a molecule with that wallet's one-time key
// pair. Spec §9 names this local record as strategy (a) of its
// position-reuse discipline: safer than strategy (b)'s query-the-node
// check, since it survives the node being briefly unreachable.
type Store struct {
	db walletdb.DB
}

// Create initializes db's nonce namespace bucket and returns a Store
// backed by it. Call this exactly once against a freshly created
// database; use Open against one that already has the bucket.
func Create(db walletdb.DB) (*Store, error) {
	err := walletdb.Update(db, func(tx walletdb.ReadWriteTx) error {
		_, err := tx.CreateTopLevelBucket(nonceNamespaceKey)
		return err
	})
	if err != nil {
		return nil, storeError(ErrDatabase, "failed to create nonce namespace", err)
	}
	return &Store{db: db}, nil
}

// Open returns a Store backed by db's existing nonce namespace bucket.
func Open(db walletdb.DB) (*Store, error) {
	err := walletdb.View(db, func(tx walletdb.ReadTx) error {
		if tx.ReadBucket(nonceNamespaceKey) == nil {
			return storeError(ErrDatabase, "nonce namespace bucket does not exist", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// key builds the flat lookup key for one (bundle, token, position)
// triple. The NUL separator cannot appear in any of the three fields
// (bundle/position are hex, token is validated elsewhere), so the
// concatenation is unambiguous.
func key(bundle, token, position string) []byte {
	return []byte(bundle + "\x00" + token + "\x00" + position)
}

// IsUsed reports whether a molecule has already been signed with the
// one-time key pair at (bundle, token, position).
func (s *Store) IsUsed(bundle, token, position string) (bool, error) {
	var used bool
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		ns := tx.ReadBucket(nonceNamespaceKey)
		used = ns.Get(key(bundle, token, position)) != nil
		return nil
	})
	if err != nil {
		return false, storeError(ErrDatabase, "failed to read nonce record", err)
	}
	return used, nil
}

// MarkUsed records that (bundle, token, position) has now had a
// molecule signed with its key pair. Callers should call this
// immediately after Molecule.Sign succeeds, before releasing the
// molecule to a node client, so a crash between signing and submission
// can never result in the same key pair being reused.
func (s *Store) MarkUsed(bundle, token, position string) error {
	stamp := []byte(nowRFC3339())
	err := walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		ns := tx.ReadWriteBucket(nonceNamespaceKey)
		return ns.Put(key(bundle, token, position), stamp)
	})
	if err != nil {
		return storeError(ErrDatabase, "failed to write nonce record", err)
	}
	return nil
}

// CheckAndMarkUsed atomically rejects a reused position, or records it
// as used if this is its first use. Preferred over a separate
// IsUsed/MarkUsed pair, which would race under concurrent callers.
func (s *Store) CheckAndMarkUsed(bundle, token, position string) error {
	stamp := []byte(nowRFC3339())
	err := walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		ns := tx.ReadWriteBucket(nonceNamespaceKey)
		k := key(bundle, token, position)
		if ns.Get(k) != nil {
			return storeError(ErrPositionReused,
				"position has already been used to sign a molecule", nil)
		}
		return ns.Put(k, stamp)
	})
	if err != nil {
		var se StoreError
		if errors.As(err, &se) {
			return se
		}
		return storeError(ErrDatabase, "failed to check and write nonce record", err)
	}
	log.Debugf("nonce: marked %s/%s/%s used", bundle, token, position)
	return nil
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
