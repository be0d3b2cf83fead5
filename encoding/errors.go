// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encoding

import "fmt"

// ErrorCode identifies a kind of EncodingError.
type ErrorCode int

const (
	// ErrUnencodableField indicates a field contains bytes that cannot be
	// represented in the canonical wire format.
	ErrUnencodableField ErrorCode = iota

	// ErrInvalidDigit indicates a base-conversion input contains a digit
	// outside the alphabet of its claimed base.
	ErrInvalidDigit

	// ErrEmptyAtomList indicates an attempt to canonically serialize a
	// molecule with no atoms.
	ErrEmptyAtomList
)

var errorCodeStrings = map[ErrorCode]string{
	ErrUnencodableField: "ErrUnencodableField",
	ErrInvalidDigit:     "ErrInvalidDigit",
	ErrEmptyAtomList:     "ErrEmptyAtomList",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// EncodingError provides a single type for errors that can happen while
// canonically serializing an atom list or converting between numeral
// bases.
type EncodingError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e EncodingError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e EncodingError) Unwrap() error { return e.Err }

func encodingError(c ErrorCode, desc string, err error) EncodingError {
	return EncodingError{ErrorCode: c, Description: desc, Err: err}
}
