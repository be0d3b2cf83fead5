// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package encoding

import (
	"math"
	"math/big"
	"strings"
)

// base17Alphabet is the digit alphabet spec §4.2 pins for base-17: 0..9
// then a..g, big-endian, matching Go's own base-36 digit ordering for the
// first 17 symbols.
const base17Alphabet = "0123456789abcdefg"

// HexToBase17 reinterprets a hex-encoded big-endian integer in base 17,
// zero-padded to the digit count needed to hold any value representable by
// len(hexStr) hex digits. This keeps the mapping total and round-trippable:
// Base17ToHex(HexToBase17(s)) == s for any even-length lowercase hex string.
func HexToBase17(hexStr string) (string, error) {
	n := new(big.Int)
	if _, ok := n.SetString(hexStr, 16); !ok {
		return "", encodingError(ErrInvalidDigit,
			"input is not a valid hex string", nil)
	}

	width := digitsNeeded(len(hexStr), 16, 17)
	s := n.Text(17)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s, nil
}

// Base17ToHex is the inverse of HexToBase17, zero-padded back to
// hexLen hex digits.
func Base17ToHex(base17Str string, hexLen int) (string, error) {
	n := new(big.Int)
	if _, ok := n.SetString(base17Str, 17); !ok {
		return "", encodingError(ErrInvalidDigit,
			"input is not a valid base-17 string", nil)
	}

	s := n.Text(16)
	if len(s) > hexLen {
		return "", encodingError(ErrInvalidDigit,
			"value does not fit in the requested hex width", nil)
	}
	if len(s) < hexLen {
		s = strings.Repeat("0", hexLen-len(s)) + s
	}
	return s, nil
}

// HexToBase256 decodes a hex string into its raw big-endian byte
// representation ("base 256").
func HexToBase256(hexStr string) ([]byte, error) {
	if len(hexStr)%2 != 0 {
		return nil, encodingError(ErrInvalidDigit,
			"hex string must have an even number of digits", nil)
	}
	out := make([]byte, len(hexStr)/2)
	for i := 0; i < len(out); i++ {
		hi, err := hexDigit(hexStr[2*i])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(hexStr[2*i+1])
		if err != nil {
			return nil, err
		}
		out[i] = byte(hi<<4 | lo)
	}
	return out, nil
}

// Base256ToHex is the inverse of HexToBase256.
func Base256ToHex(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[2*i] = hexDigits[v>>4]
		out[2*i+1] = hexDigits[v&0xf]
	}
	return string(out)
}

func hexDigit(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, nil
	default:
		return 0, encodingError(ErrInvalidDigit,
			"invalid hex digit", nil)
	}
}

// digitsNeeded returns how many base-toBase digits are required to
// represent any value expressible in digitCount base-fromBase digits.
func digitsNeeded(digitCount, fromBase, toBase int) int {
	bits := float64(digitCount) * math.Log2(float64(fromBase))
	digits := bits / math.Log2(float64(toBase))
	return int(math.Ceil(digits))
}
