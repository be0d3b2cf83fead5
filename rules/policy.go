// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rules

import (
	"encoding/json"

	"github.com/btcsuite/molwallet/atom"
)

// Policy is a rule's full condition/callback set, the document the R
// isotope's meta carries (spec §4.4's "R | Rule | meta (policy)").
type Policy struct {
	Conditions []Condition
	Callbacks  []Callback
}

// NewPolicy builds an empty Policy ready for AddCondition/AddCallback.
func NewPolicy() Policy {
	return Policy{}
}

// AddCondition appends a condition to the policy.
func (p *Policy) AddCondition(c Condition) {
	p.Conditions = append(p.Conditions, c)
}

// AddCallback appends a callback to the policy.
func (p *Policy) AddCallback(c Callback) {
	p.Callbacks = append(p.Callbacks, c)
}

// IsEmpty reports whether the policy has neither conditions nor
// callbacks.
func (p Policy) IsEmpty() bool {
	return len(p.Conditions) == 0 && len(p.Callbacks) == 0
}

// ToMeta flattens the policy into the meta pairs an R atom carries:
// one "condition" entry and one "callback" entry, each a JSON-encoded
// array, mirroring how the reference SDK serializes a rule's condition
// and callback arrays into the molecule's meta before hashing.
func (p Policy) ToMeta() ([]atom.MetaPair, error) {
	conditionJSON, err := json.Marshal(p.Conditions)
	if err != nil {
		return nil, ruleError(ErrMissingField, "failed to encode conditions", err)
	}
	callbackJSON, err := json.Marshal(p.Callbacks)
	if err != nil {
		return nil, ruleError(ErrMissingField, "failed to encode callbacks", err)
	}
	return []atom.MetaPair{
		{Key: "condition", Value: string(conditionJSON)},
		{Key: "callback", Value: string(callbackJSON)},
	}, nil
}

// FromMeta reconstructs a Policy from an R atom's meta pairs, the
// inverse of ToMeta.
func FromMeta(meta []atom.MetaPair) (Policy, error) {
	var p Policy
	for _, pair := range meta {
		switch pair.Key {
		case "condition":
			if err := json.Unmarshal([]byte(pair.Value), &p.Conditions); err != nil {
				return Policy{}, ruleError(ErrMissingField, "failed to decode conditions", err)
			}
		case "callback":
			if err := json.Unmarshal([]byte(pair.Value), &p.Callbacks); err != nil {
				return Policy{}, ruleError(ErrMissingField, "failed to decode callbacks", err)
			}
		}
	}
	return p, nil
}
