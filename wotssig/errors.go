// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wotssig

import "fmt"

// ErrorCode identifies a kind of SignatureError.
type ErrorCode int

const (
	// ErrBadFragmentLength indicates a signature's reassembled fragment
	// string is not 16384 hex characters.
	ErrBadFragmentLength ErrorCode = iota

	// ErrHashMismatch indicates the recomputed molecular hash does not
	// match the hash the signature was produced against.
	ErrHashMismatch

	// ErrAddressMismatch indicates the recomputed chain-head digest does
	// not match the signing wallet's address.
	ErrAddressMismatch
)

var errorCodeStrings = map[ErrorCode]string{
	ErrBadFragmentLength: "ErrBadFragmentLength",
	ErrHashMismatch:      "ErrHashMismatch",
	ErrAddressMismatch:   "ErrAddressMismatch",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// SignatureError provides a single type for errors from signing or
// verifying a molecule's WOTS+ signature.
type SignatureError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e SignatureError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e SignatureError) Unwrap() error { return e.Err }

func sigError(c ErrorCode, desc string, err error) SignatureError {
	return SignatureError{ErrorCode: c, Description: desc, Err: err}
}
