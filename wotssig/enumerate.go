// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wotssig implements spec §4.6's enumerate/normalize pipeline and
// the WOTS+ chain iteration it drives: turning a molecular hash into a
// signed-integer sequence, walking each of the wallet's sixteen hash
// chains to produce a signature fragment, distributing fragments across
// a molecule's atoms, and recomputing everything a verifier needs to
// check a signed molecule against its signing wallet's address.
package wotssig

import "fmt"

// CharsPerChain is the number of hex characters (equivalently, normalized
// integers) each of the sixteen WOTS+ chains consumes from an enumerated
// molecular hash. 16 chains * 4 chars = 64, the length of a molecular hash.
const CharsPerChain = 4

// Enumerate maps each hex character of s to a signed integer in [-8, +8]
// per spec §4.6 step B: decimal value of the digit, minus 8. Also accepts
// base-17 strings (digits 0-16, where 16 maps to +8) for callers working
// with the base-17 representation described in §4.2/§4.6.
func Enumerate(s string) ([]int, error) {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		v, err := digitValue(s[i])
		if err != nil {
			return nil, err
		}
		out[i] = v - 8
	}
	return out, nil
}

// Normalize adjusts an enumerated sequence so it sums to exactly zero,
// per spec §4.6 step C: while the sum is positive, decrement the first
// element greater than -8; while negative, increment the first element
// less than +8. The input is not modified.
func Normalize(seq []int) []int {
	out := append([]int(nil), seq...)

	sum := 0
	for _, v := range out {
		sum += v
	}

	for sum > 0 {
		for i := range out {
			if out[i] > -8 {
				out[i]--
				sum--
				break
			}
		}
	}
	for sum < 0 {
		for i := range out {
			if out[i] < 8 {
				out[i]++
				sum++
				break
			}
		}
	}
	return out
}

func digitValue(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	case c == 'g':
		return 16, nil
	default:
		return 0, fmt.Errorf("wotssig: invalid digit %q", c)
	}
}
