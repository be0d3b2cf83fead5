// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package value provides the signed rational type atoms and wallets use
// for balances and transfer amounts. It is modeled on the fee-rate types
// in pkg/unit/rates.go: a thin wrapper around math/big.Rat so arithmetic
// stays exact, with a String method that always renders a plain decimal
// string instead of the slash-fraction form big.Rat.String uses, since
// the wire format (spec §6) requires decimal strings to avoid the
// binary-float drift that would break cross-SDK hash equality.
package value

import (
	"math/big"
	"strings"
)

// Value is a signed rational number, exact to arbitrary precision.
type Value struct {
	r *big.Rat
}

// Zero is the additive identity.
func Zero() Value { return Value{r: new(big.Rat)} }

// FromInt64 builds a Value from a whole number.
func FromInt64(n int64) Value { return Value{r: big.NewRat(n, 1)} }

// Parse reads a decimal string ("-100", "900", "12.5") into a Value.
// Empty string parses as an error; callers representing "no value" use a
// nil *Value instead of Parse("").
func Parse(s string) (Value, error) {
	r := new(big.Rat)
	if _, ok := r.SetString(s); !ok {
		return Value{}, valueError(ErrInvalidDecimal,
			"not a valid decimal string: "+s)
	}
	return Value{r: r}, nil
}

// String renders the value as a plain decimal string with no exponent and
// no unnecessary trailing zeros, matching the reference SDKs' wire form.
func (v Value) String() string {
	if v.r == nil {
		return "0"
	}
	if v.r.IsInt() {
		return v.r.RatString()
	}
	s := v.r.FloatString(maxDecimals(v.r))
	return trimTrailingZeros(s)
}

// Add returns v + other.
func (v Value) Add(other Value) Value {
	out := new(big.Rat).Add(v.ratOrZero(), other.ratOrZero())
	return Value{r: out}
}

// Neg returns -v.
func (v Value) Neg() Value {
	out := new(big.Rat).Neg(v.ratOrZero())
	return Value{r: out}
}

// Sign returns -1, 0, or +1.
func (v Value) Sign() int { return v.ratOrZero().Sign() }

// IsZero reports whether v is exactly zero.
func (v Value) IsZero() bool { return v.Sign() == 0 }

// Cmp compares v to other the way big.Rat.Cmp does.
func (v Value) Cmp(other Value) int { return v.ratOrZero().Cmp(other.ratOrZero()) }

func (v Value) ratOrZero() *big.Rat {
	if v.r == nil {
		return new(big.Rat)
	}
	return v.r
}

// Sum adds a slice of values, returning the additive identity for an
// empty slice. Used for the value-conservation check across a molecule's
// V atoms (spec §3, §4.6 step F.5).
func Sum(values []Value) Value {
	out := Zero()
	for _, v := range values {
		out = out.Add(v)
	}
	return out
}

func maxDecimals(r *big.Rat) int {
	// 34 decimal digits comfortably exceeds any denominator the engine
	// constructs from decimal-string inputs; FloatString truncates rather
	// than rounds away real precision since trimTrailingZeros only strips
	// zeros, never significant digits.
	return 34
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
