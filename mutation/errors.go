// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mutation provides spec §4.7's thin factory functions: each
// one fills a draft Molecule with the atoms for one named operation,
// signs it, and checks it, leaving the caller to hand the result to a
// node client for submission (MutationProposeMolecule itself is that
// submission step, and lives in the node package since it moves bytes
// rather than building them).
package mutation

import "fmt"

// ErrorCode identifies a kind of MutationError.
type ErrorCode int

const (
	// ErrInvalidParams indicates a required parameter was missing or
	// malformed before any atoms were built.
	ErrInvalidParams ErrorCode = iota

	// ErrBuildFailed indicates the underlying Molecule builder call
	// failed; Err carries the wrapped cause.
	ErrBuildFailed

	// ErrSignFailed indicates Molecule.Sign failed.
	ErrSignFailed

	// ErrCheckFailed indicates the post-sign Molecule.Check failed.
	ErrCheckFailed
)

var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidParams: "ErrInvalidParams",
	ErrBuildFailed:   "ErrBuildFailed",
	ErrSignFailed:    "ErrSignFailed",
	ErrCheckFailed:   "ErrCheckFailed",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// MutationError provides a single type for errors raised while
// building, signing, or checking a mutation's molecule.
type MutationError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e MutationError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e MutationError) Unwrap() error { return e.Err }

func mutationError(c ErrorCode, desc string, err error) MutationError {
	return MutationError{ErrorCode: c, Description: desc, Err: err}
}
