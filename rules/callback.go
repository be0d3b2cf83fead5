// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rules

import "strconv"

// Callback describes the action a rule's evaluator should take once
// its conditions hold: collect funds, burn a token, reject the
// molecule, and so on. Only Action is required; the remaining fields
// are action-specific and left empty when unused.
type Callback struct {
	Action     string            `json:"action"`
	MetaType   string            `json:"metaType,omitempty"`
	MetaID     string            `json:"metaId,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	Address    string            `json:"address,omitempty"`
	Token      string            `json:"token,omitempty"`
	Amount     string            `json:"amount,omitempty"`
	Comparison string            `json:"comparison,omitempty"`
}

// NewCallback builds a Callback. action must be non-empty; amount, if
// non-empty, must parse as a decimal number.
func NewCallback(action, amount string) (Callback, error) {
	if action == "" {
		return Callback{}, ruleError(ErrMissingField,
			`callback requires a non-empty "action"`, nil)
	}
	if amount != "" {
		if _, err := strconv.ParseFloat(amount, 64); err != nil {
			return Callback{}, ruleError(ErrInvalidAmount,
				"callback amount must be a numeric string", err)
		}
	}
	return Callback{Action: action, Amount: amount}, nil
}

// IsReject reports whether this callback's action is "reject",
// case-insensitively.
func (c Callback) IsReject() bool { return isAction(c.Action, "reject") }

// IsCollect reports whether this callback is a fully-populated
// "collect" action (address, token, amount, and comparison all set).
func (c Callback) IsCollect() bool {
	return isAction(c.Action, "collect") &&
		c.Address != "" && c.Token != "" && c.Amount != "" && c.Comparison != ""
}

// IsBurn reports whether this callback is a fully-populated "burn"
// action (token, amount, and comparison all set).
func (c Callback) IsBurn() bool {
	return isAction(c.Action, "burn") &&
		c.Token != "" && c.Amount != "" && c.Comparison != ""
}

func isAction(action, want string) bool {
	if len(action) != len(want) {
		return false
	}
	for i := 0; i < len(action); i++ {
		a, w := action[i], want[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != w {
			return false
		}
	}
	return true
}
