// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rules provides the data-only condition/callback/policy shapes
// the R isotope's meta carries (SUPPLEMENTAL FEATURES, grounded on
// original_source's rules/condition.rs, callback.rs, and rule.rs). It
// performs no remote evaluation; that is the out-of-scope server-side
// validator's job.
package rules

import "fmt"

// ErrorCode identifies a kind of RuleError.
type ErrorCode int

const (
	// ErrMissingField indicates a required Condition or Callback field
	// was empty.
	ErrMissingField ErrorCode = iota

	// ErrInvalidAmount indicates a Callback amount was not a numeric
	// string.
	ErrInvalidAmount
)

var errorCodeStrings = map[ErrorCode]string{
	ErrMissingField:  "ErrMissingField",
	ErrInvalidAmount: "ErrInvalidAmount",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError provides a single type for errors raised while building a
// Condition, Callback, or Policy.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

func (e RuleError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

func (e RuleError) Unwrap() error { return e.Err }

func ruleError(c ErrorCode, desc string, err error) RuleError {
	return RuleError{ErrorCode: c, Description: desc, Err: err}
}
