// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConditionRejectsMissingField(t *testing.T) {
	_, err := NewCondition("", "10", "==")
	require.Error(t, err)

	c, err := NewCondition("balance", "10", ">=")
	require.NoError(t, err)
	require.Equal(t, "balance", c.Key)
}

func TestNewCallbackRejectsMissingAction(t *testing.T) {
	_, err := NewCallback("", "")
	require.Error(t, err)
}

func TestNewCallbackRejectsNonNumericAmount(t *testing.T) {
	_, err := NewCallback("collect", "not-a-number")
	require.Error(t, err)

	cb, err := NewCallback("collect", "12.5")
	require.NoError(t, err)
	require.Equal(t, "12.5", cb.Amount)
}

func TestCallbackPredicates(t *testing.T) {
	reject, err := NewCallback("Reject", "")
	require.NoError(t, err)
	require.True(t, reject.IsReject())
	require.False(t, reject.IsCollect())

	collect := Callback{
		Action:     "collect",
		Address:    "addr",
		Token:      "TOK",
		Amount:     "5",
		Comparison: ">=",
	}
	require.True(t, collect.IsCollect())

	incomplete := Callback{Action: "collect", Token: "TOK"}
	require.False(t, incomplete.IsCollect())

	burn := Callback{Action: "burn", Token: "TOK", Amount: "5", Comparison: "=="}
	require.True(t, burn.IsBurn())
}

func TestPolicyIsEmpty(t *testing.T) {
	var p Policy
	require.True(t, p.IsEmpty())

	cond, err := NewCondition("balance", "10", ">=")
	require.NoError(t, err)
	p.AddCondition(cond)
	require.False(t, p.IsEmpty())
}

func TestPolicyToMetaAndFromMetaRoundTrip(t *testing.T) {
	cond, err := NewCondition("balance", "10", ">=")
	require.NoError(t, err)
	cb, err := NewCallback("collect", "10")
	require.NoError(t, err)

	var p Policy
	p.AddCondition(cond)
	p.AddCallback(cb)

	meta, err := p.ToMeta()
	require.NoError(t, err)
	require.Len(t, meta, 2)

	keys := map[string]string{}
	for _, pair := range meta {
		keys[pair.Key] = pair.Value
	}
	require.Contains(t, keys, "condition")
	require.Contains(t, keys, "callback")

	roundTripped, err := FromMeta(meta)
	require.NoError(t, err)
	require.Equal(t, p.Conditions, roundTripped.Conditions)
	require.Equal(t, p.Callbacks, roundTripped.Callbacks)
}

func TestPolicyToMetaEmptyPolicyStillProducesArrays(t *testing.T) {
	var p Policy
	meta, err := p.ToMeta()
	require.NoError(t, err)
	require.Len(t, meta, 2)
}
