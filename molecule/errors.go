// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package molecule

import "fmt"

// ErrorCode identifies a kind of MoleculeError.
type ErrorCode int

const (
	// ErrAlreadySigned indicates a builder method was called on a
	// molecule that has already been signed.
	ErrAlreadySigned ErrorCode = iota

	// ErrEmptyAtoms indicates an operation required at least one atom
	// and the molecule has none.
	ErrEmptyAtoms

	// ErrIndexConflict indicates AddAtom was given an atom whose index
	// was already assigned to a different atom.
	ErrIndexConflict

	// ErrUnknownIsotope indicates an atom outside the stable isotope
	// alphabet was added to the molecule.
	ErrUnknownIsotope

	// ErrValueImbalance indicates a molecule's V atoms do not sum to
	// zero.
	ErrValueImbalance

	// ErrMissingMeta indicates a required meta key is absent for an
	// atom's isotope.
	ErrMissingMeta
)

var errorCodeStrings = map[ErrorCode]string{
	ErrAlreadySigned:  "ErrAlreadySigned",
	ErrEmptyAtoms:     "ErrEmptyAtoms",
	ErrIndexConflict:  "ErrIndexConflict",
	ErrUnknownIsotope: "ErrUnknownIsotope",
	ErrValueImbalance: "ErrValueImbalance",
	ErrMissingMeta:    "ErrMissingMeta",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// MoleculeError provides a single type for errors raised while building
// or inspecting a molecule.
type MoleculeError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e MoleculeError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e MoleculeError) Unwrap() error { return e.Err }

func moleculeError(c ErrorCode, desc string, err error) MoleculeError {
	return MoleculeError{ErrorCode: c, Description: desc, Err: err}
}

// CheckErrorCode identifies which invariant Check found violated.
type CheckErrorCode int

const (
	// ErrHashMismatch indicates the recomputed molecular hash does not
	// match the stored one.
	ErrHashMismatch CheckErrorCode = iota

	// ErrAddressMismatch indicates the recomputed signing address does
	// not match the source wallet's address.
	ErrAddressMismatch

	// ErrValueNotConserved indicates the V atoms do not sum to zero.
	ErrValueNotConserved

	// ErrInvariantMissingMeta indicates a required meta key is absent.
	ErrInvariantMissingMeta

	// ErrIndexNotMonotonic indicates atom indexes are not strictly
	// increasing in atom order.
	ErrIndexNotMonotonic

	// ErrEmptyField indicates an atom's position or walletAddress is
	// empty.
	ErrEmptyField

	// ErrCreatedAtNotMonotonic indicates atom createdAt timestamps are
	// not non-decreasing in atom order.
	ErrCreatedAtNotMonotonic

	// ErrNotSigned indicates Check was called on a molecule that has
	// not been signed.
	ErrNotSigned
)

var checkErrorCodeStrings = map[CheckErrorCode]string{
	ErrHashMismatch:          "ErrHashMismatch",
	ErrAddressMismatch:       "ErrAddressMismatch",
	ErrValueNotConserved:     "ErrValueNotConserved",
	ErrInvariantMissingMeta:  "ErrInvariantMissingMeta",
	ErrIndexNotMonotonic:     "ErrIndexNotMonotonic",
	ErrEmptyField:            "ErrEmptyField",
	ErrCreatedAtNotMonotonic: "ErrCreatedAtNotMonotonic",
	ErrNotSigned:             "ErrNotSigned",
}

func (e CheckErrorCode) String() string {
	if s := checkErrorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown CheckErrorCode (%d)", int(e))
}

// CheckError names the first invariant Check found violated, per spec
// §4.6 step F and §7: it wraps the lower-level error (an
// encoding.EncodingError, wotssig.SignatureError, or MoleculeError) that
// detected the problem.
type CheckError struct {
	CheckErrorCode CheckErrorCode
	Description    string
	Err            error
}

func (e CheckError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e CheckError) Unwrap() error { return e.Err }

func checkError(c CheckErrorCode, desc string, err error) CheckError {
	return CheckError{CheckErrorCode: c, Description: desc, Err: err}
}
