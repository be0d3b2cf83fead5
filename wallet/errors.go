// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import "fmt"

// ErrorCode identifies a kind of WalletError.
type ErrorCode int

const (
	// ErrEmptyToken indicates an empty token slug was supplied.
	ErrEmptyToken ErrorCode = iota

	// ErrInvalidPosition indicates a supplied position is not 64 hex
	// characters.
	ErrInvalidPosition

	// ErrEmptySecret indicates an empty secret was supplied.
	ErrEmptySecret

	// ErrInvalidKeyWidth indicates a keyWidthBits value that is not
	// a positive multiple of 8192 (16 chains x 512-byte segments).
	ErrInvalidKeyWidth
)

var errorCodeStrings = map[ErrorCode]string{
	ErrEmptyToken:      "ErrEmptyToken",
	ErrInvalidPosition: "ErrInvalidPosition",
	ErrEmptySecret:     "ErrEmptySecret",
	ErrInvalidKeyWidth: "ErrInvalidKeyWidth",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// WalletError provides a single type for errors that can happen during
// wallet derivation. It is similar in shape to wtxmgr.TxStoreError.
type WalletError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e WalletError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e WalletError) Unwrap() error { return e.Err }

func walletError(c ErrorCode, desc string, err error) WalletError {
	return WalletError{ErrorCode: c, Description: desc, Err: err}
}
