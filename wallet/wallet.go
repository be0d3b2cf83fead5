// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet implements the deterministic derivation pipeline of
// spec §4.3: a (secret, token, position) triple maps to a stable identity
// bundle, a position-scoped address, and the sixteen WOTS+ chain seeds
// the signer consumes to produce a one-time signature. Derivation is
// grounded on the same idiom waddrmgr.Manager.deriveKey uses for HD
// children — derive, hand the result to the caller, zero the
// intermediate material — generalized from hdkeychain's BIP32 tree to
// the flat 16-chain WOTS+ construction this engine actually signs with.
//
// A Wallet is a pure value: it carries no database handle and no
// back-pointer to the molecules it signs, matching spec §9's "wallets
// are pure values ... No back-pointers."
package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"

	"github.com/btcsuite/molwallet/internal/zero"
	"github.com/btcsuite/molwallet/value"
	"github.com/btcsuite/molwallet/xof"
)

// DefaultKeyWidthBits is the canonical intermediate-key width fixed by
// spec §9's resolution of the 4096-char/8192-bit ambiguity: 8192 bits
// (1024 bytes), split into 16 chains of 128 bytes each.
const DefaultKeyWidthBits = 8192

// NumChains is the number of WOTS+ hash chains composing a signing key.
const NumChains = 16

// ChainSegmentLen is the length in bytes of a single chain's private
// seed, and of each of the four per-character segments a chain
// contributes to a signature fragment.
const ChainSegmentLen = 128

// chainStepBits is the XOF width of a single WOTS+ chain hop. Spec §4.6
// step D describes a signature fragment as "four resulting segments ->
// 512 bytes -> 1024 hex chars" — 128 bytes per segment — while spec
// §4.3 step 4 keeps "the final 128 bytes" of each chain. Both only hold
// together if a chain hop produces a 128-byte (1024-bit) output; see
// DESIGN.md for why this supersedes §4.1's parenthetical "512 bits per
// chunk", which is inconsistent with the pinned byte counts elsewhere.
const chainStepBits = ChainSegmentLen * 8

var positionPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Wallet is the derived identity for a single (secret, token, position)
// triple. Balance is tracked client-side only; the server remains
// authoritative per spec §3.
type Wallet struct {
	Token    string
	Position string
	Address  string
	Bundle   string
	Balance  value.Value
	BatchID  *string
}

// KeyMaterial holds the sixteen private WOTS+ chain seeds derived for one
// molecule signature. It must never be cached or reused across molecules
// (spec §5, §9) and must be zeroed with Zero as soon as signing completes.
type KeyMaterial struct {
	ChainSeeds [NumChains][ChainSegmentLen]byte
}

// Zero wipes every chain seed in place.
func (k *KeyMaterial) Zero() {
	for i := range k.ChainSeeds {
		zero.Bytea128(&k.ChainSeeds[i])
	}
}

// Bundle derives the 64-hex identity root from a secret alone (spec §4.3
// step 1). Two wallets sharing a secret always share a bundle regardless
// of token or position.
func Bundle(secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", walletError(ErrEmptySecret, "secret must not be empty", nil)
	}
	return xof.SumHex(secret, 256)
}

// New derives a Wallet and its one-shot signing key material for the
// given (secret, token, position) triple. If position is empty, a fresh
// random 64-hex position is generated. keyWidthBits selects the
// intermediate-key width; pass 0 to use DefaultKeyWidthBits.
//
// The returned *KeyMaterial is raw private key material: callers must
// call Zero() on it as soon as signing is complete.
func New(secret []byte, token, position string, keyWidthBits int) (*Wallet, *KeyMaterial, error) {
	if len(secret) == 0 {
		return nil, nil, walletError(ErrEmptySecret, "secret must not be empty", nil)
	}
	if token == "" {
		return nil, nil, walletError(ErrEmptyToken, "token must not be empty", nil)
	}
	if keyWidthBits == 0 {
		keyWidthBits = DefaultKeyWidthBits
	}
	if keyWidthBits <= 0 || keyWidthBits%(NumChains*8) != 0 {
		return nil, nil, walletError(ErrInvalidKeyWidth,
			"keyWidthBits must be a positive multiple of 128 bits", nil)
	}

	if position == "" {
		var err error
		position, err = randomPosition()
		if err != nil {
			return nil, nil, err
		}
	} else if !positionPattern.MatchString(position) {
		return nil, nil, walletError(ErrInvalidPosition,
			"position must be 64 lowercase hex characters", nil)
	}

	bundle, err := Bundle(secret)
	if err != nil {
		return nil, nil, err
	}

	km, address, err := deriveKeyMaterial(secret, token, position, keyWidthBits)
	if err != nil {
		return nil, nil, err
	}

	w := &Wallet{
		Token:    token,
		Position: position,
		Address:  address,
		Bundle:   bundle,
		Balance:  value.Zero(),
	}
	return w, km, nil
}

// deriveKeyMaterial runs spec §4.3 steps 2-5: derive the intermediate
// key, split it into chain seeds, walk each chain to its public head,
// and hash the concatenated heads into the address.
func deriveKeyMaterial(secret []byte, token, position string, keyWidthBits int) (*KeyMaterial, string, error) {
	msg := make([]byte, 0, len(secret)+len(token)+len(position))
	msg = append(msg, secret...)
	msg = append(msg, token...)
	msg = append(msg, position...)

	intermediate, err := xof.Sum(msg, keyWidthBits)
	if err != nil {
		return nil, "", err
	}
	defer zero.Bytes(intermediate)

	chunkLen := len(intermediate) / NumChains
	if chunkLen != ChainSegmentLen {
		log.Warnf("intermediate key chunk length %d differs from the "+
			"canonical chain segment length %d; proceeding with the "+
			"configured key width", chunkLen, ChainSegmentLen)
	}

	km := &KeyMaterial{}
	heads := make([]byte, 0, NumChains*chunkLen)
	for i := 0; i < NumChains; i++ {
		chunk := intermediate[i*chunkLen : (i+1)*chunkLen]
		if chunkLen == ChainSegmentLen {
			copy(km.ChainSeeds[i][:], chunk)
		}

		head := append([]byte(nil), chunk...)
		for step := 0; step < NumChains; step++ {
			head, err = xof.Sum(head, chainStepBits)
			if err != nil {
				return nil, "", err
			}
		}
		heads = append(heads, head...)
	}

	address, err := xof.SumHex(heads, 256)
	if err != nil {
		return nil, "", err
	}
	return km, address, nil
}

// NextPosition derives a fresh position from the previous one and the
// molecular hash of the molecule it just signed, implementing spec §9's
// strategy (b) for the one-time-use discipline: a caller chaining
// ContinuID atoms advances to NextPosition instead of risking reuse of a
// consumed position.
func NextPosition(position, molecularHash string) (string, error) {
	if !positionPattern.MatchString(position) {
		return "", walletError(ErrInvalidPosition,
			"position must be 64 lowercase hex characters", nil)
	}
	return xof.SumHex([]byte(position+molecularHash), 256)
}

func randomPosition() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", walletError(ErrInvalidPosition, "failed to generate random position", err)
	}
	return hex.EncodeToString(b), nil
}
