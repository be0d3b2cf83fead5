// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rules

// Condition is a single clause of a rule: compare the value stored
// under Key to Value using Comparison (e.g. "==", ">=").
type Condition struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Comparison string `json:"comparison"`
}

// NewCondition builds a Condition, requiring all three fields to be
// non-empty.
func NewCondition(key, value, comparison string) (Condition, error) {
	if key == "" || value == "" || comparison == "" {
		return Condition{}, ruleError(ErrMissingField,
			"condition requires key, value, and comparison", nil)
	}
	return Condition{Key: key, Value: value, Comparison: comparison}, nil
}
