// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package xof provides the single extendable-output hash primitive the
// molecular transaction engine builds on. Every width the engine needs —
// the 256-bit bundle/address digest, the 512-bit WOTS+ chain step, and the
// 8192-bit intermediate key — is produced by the same SHAKE-256 sponge,
// just squeezed for a different number of output bytes. There is no salt
// and no personalization string; determinism across SDKs in other
// languages depends on that.
package xof

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// ErrorCode identifies a kind of xof error.
type ErrorCode int

const (
	// ErrInvalidBitLength indicates a requested output width is not a
	// positive multiple of 8 bits.
	ErrInvalidBitLength ErrorCode = iota
)

var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidBitLength: "ErrInvalidBitLength",
}

func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error is returned for malformed width requests. Hashing itself never
// fails.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

func (e Error) Error() string { return e.Description }

func xofError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// Sum squeezes n bits of SHAKE-256 output from msg and returns the raw
// bytes. n must be a positive multiple of 8.
func Sum(msg []byte, n int) ([]byte, error) {
	if n <= 0 || n%8 != 0 {
		return nil, xofError(ErrInvalidBitLength,
			fmt.Sprintf("width must be a positive multiple of 8 bits, got %d", n))
	}

	out := make([]byte, n/8)
	h := sha3.NewShake256()
	// Shake hash.Hash Write never returns an error.
	_, _ = h.Write(msg)
	if _, err := h.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

// SumHex is Sum with the result rendered as lowercase hex, matching the
// wire format used for bundle, address, and molecular-hash fields.
func SumHex(msg []byte, n int) (string, error) {
	b, err := Sum(msg, n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MustSum panics on a malformed width; it exists for call sites where the
// width is a compile-time constant and an error can never occur.
func MustSum(msg []byte, n int) []byte {
	b, err := Sum(msg, n)
	if err != nil {
		panic(err)
	}
	return b
}
