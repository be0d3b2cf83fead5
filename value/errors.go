// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package value

import "fmt"

// ErrorCode identifies a kind of value error.
type ErrorCode int

const (
	// ErrInvalidDecimal indicates a decimal string could not be parsed.
	ErrInvalidDecimal ErrorCode = iota
)

var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidDecimal: "ErrInvalidDecimal",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error reports a malformed decimal value.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

func (e Error) Error() string { return e.Description }

func valueError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
