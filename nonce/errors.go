// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package nonce implements spec §9's position-reuse discipline: a
// local record of every wallet position this client has already
// signed a molecule with, so a crashed or restarted client can refuse
// to reuse a WOTS+ one-time key pair rather than silently leaking half
// of it a second time. It is backed by walletdb the way waddrmgr backs
// its address-reuse bookkeeping.
package nonce

import "fmt"

// ErrorCode identifies a kind of StoreError.
type ErrorCode int

const (
	// ErrDatabase indicates the underlying walletdb transaction failed.
	ErrDatabase ErrorCode = iota

	// ErrPositionReused indicates the requested (bundle, token,
	// position) triple was already recorded as spent.
	ErrPositionReused
)

var errorCodeStrings = map[ErrorCode]string{
	ErrDatabase:       "ErrDatabase",
	ErrPositionReused: "ErrPositionReused",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// StoreError provides a single type for errors raised while reading or
// writing the position-reuse store.
type StoreError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e StoreError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e StoreError) Unwrap() error { return e.Err }

func storeError(c ErrorCode, desc string, err error) StoreError {
	return StoreError{ErrorCode: c, Description: desc, Err: err}
}
