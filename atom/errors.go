// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package atom

import "fmt"

// ErrorCode identifies a kind of AtomError.
type ErrorCode int

const (
	// ErrUnknownIsotope indicates an isotope outside the alphabet in
	// spec §6.
	ErrUnknownIsotope ErrorCode = iota

	// ErrMissingMeta indicates a required meta key is absent for the
	// atom's isotope.
	ErrMissingMeta

	// ErrDuplicateMetaKey indicates meta contains the same key twice.
	ErrDuplicateMetaKey

	// ErrUnexpectedValue indicates a value was set on an isotope that
	// must not carry one, or is missing on one that must.
	ErrUnexpectedValue
)

var errorCodeStrings = map[ErrorCode]string{
	ErrUnknownIsotope:   "ErrUnknownIsotope",
	ErrMissingMeta:      "ErrMissingMeta",
	ErrDuplicateMetaKey: "ErrDuplicateMetaKey",
	ErrUnexpectedValue:  "ErrUnexpectedValue",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// AtomError provides a single type for errors that can happen while
// building or validating an atom.
type AtomError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e AtomError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e AtomError) Unwrap() error { return e.Err }

func atomError(c ErrorCode, desc string, err error) AtomError {
	return AtomError{ErrorCode: c, Description: desc, Err: err}
}
