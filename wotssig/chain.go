// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wotssig

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/molwallet/wallet"
	"github.com/btcsuite/molwallet/xof"
)

// chainStepBits is the XOF width of a single WOTS+ chain hop, matching
// the width wallet.deriveKeyMaterial uses to walk a chain to its head.
const chainStepBits = wallet.ChainSegmentLen * 8

// segmentHexLen is the hex-encoded length of one signature segment: one
// chain hop's output, ChainSegmentLen bytes.
const segmentHexLen = wallet.ChainSegmentLen * 2

// FragmentHexLen is the hex-encoded length of the full, compressed
// signature: NumChains chains, each CharsPerChain segments of
// segmentHexLen hex characters.
const FragmentHexLen = wallet.NumChains * CharsPerChain * segmentHexLen

// Sign walks every WOTS+ chain in km the number of hops spec §4.6 step D
// derives from molecularHash, and returns the concatenated, compressed
// signature fragment (FragmentHexLen hex characters, §4.6 step D/E).
func Sign(molecularHash string, km *wallet.KeyMaterial) (string, error) {
	norm, err := normalizedDigits(molecularHash)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.Grow(FragmentHexLen)
	for chain := 0; chain < wallet.NumChains; chain++ {
		seed := km.ChainSeeds[chain][:]
		for j := 0; j < CharsPerChain; j++ {
			n := norm[chain*CharsPerChain+j]
			seg, err := hashChain(seed, 8-n)
			if err != nil {
				return "", err
			}
			buf.WriteString(hex.EncodeToString(seg))
		}
	}
	log.Debugf("wotssig: signed molecular hash %s across %d chains", molecularHash, wallet.NumChains)
	return buf.String(), nil
}

// DistributeFragments splits a full signature fragment across atomCount
// atoms, per spec §4.6 step E: the first atom absorbs any remainder when
// FragmentHexLen does not divide evenly by atomCount.
func DistributeFragments(fragment string, atomCount int) ([]string, error) {
	if atomCount <= 0 {
		return nil, sigError(ErrBadFragmentLength,
			"atomCount must be positive", nil)
	}
	total := len(fragment)
	base := total / atomCount
	rem := total % atomCount

	out := make([]string, atomCount)
	pos := 0
	for i := 0; i < atomCount; i++ {
		n := base
		if i == 0 {
			n += rem
		}
		out[i] = fragment[pos : pos+n]
		pos += n
	}
	return out, nil
}

// ReassembleFragments concatenates per-atom signature slices, in atom
// order, back into the full signature fragment (§4.6 step F.2).
func ReassembleFragments(fragments []string) string {
	return strings.Join(fragments, "")
}

// DeriveAddress recomputes the sixteen chain public values a signature
// implies and hashes them into the address the signing wallet must own,
// per spec §4.6 step F.3/F.4.
func DeriveAddress(molecularHash, fragment string) (string, error) {
	if len(fragment) != FragmentHexLen {
		return "", sigError(ErrBadFragmentLength,
			"signature fragment has the wrong length", nil)
	}
	norm, err := normalizedDigits(molecularHash)
	if err != nil {
		return "", err
	}

	heads := make([]byte, 0, wallet.NumChains*wallet.ChainSegmentLen)
	for chain := 0; chain < wallet.NumChains; chain++ {
		chainHex := fragment[chain*CharsPerChain*segmentHexLen : (chain+1)*CharsPerChain*segmentHexLen]

		var chainHead []byte
		for j := 0; j < CharsPerChain; j++ {
			segHex := chainHex[j*segmentHexLen : (j+1)*segmentHexLen]
			seg, err := hex.DecodeString(segHex)
			if err != nil {
				return "", sigError(ErrBadFragmentLength,
					"signature fragment is not valid hex", err)
			}

			n := norm[chain*CharsPerChain+j]
			head, err := hashChain(seg, 8+n)
			if err != nil {
				return "", err
			}

			if chainHead == nil {
				chainHead = head
			} else if !bytes.Equal(chainHead, head) {
				return "", sigError(ErrAddressMismatch,
					"chain segments disagree on the chain's public value", nil)
			}
		}
		heads = append(heads, chainHead...)
	}

	return xof.SumHex(heads, 256)
}

// Verify recomputes the signing wallet's address from molecularHash and
// fragment and compares it to wantAddress, returning ErrAddressMismatch
// if they differ.
func Verify(molecularHash, fragment, wantAddress string) error {
	got, err := DeriveAddress(molecularHash, fragment)
	if err != nil {
		return err
	}
	if got != wantAddress {
		return sigError(ErrAddressMismatch,
			"recomputed address does not match the signing wallet's address", nil)
	}
	return nil
}

// normalizedDigits enumerates and normalizes a molecular hash, and
// checks the result has exactly NumChains*CharsPerChain elements.
func normalizedDigits(molecularHash string) ([]int, error) {
	if len(molecularHash) != wallet.NumChains*CharsPerChain {
		return nil, sigError(ErrHashMismatch,
			"molecular hash has the wrong length for enumeration", nil)
	}
	digits, err := Enumerate(molecularHash)
	if err != nil {
		return nil, sigError(ErrHashMismatch, "molecular hash is not valid hex", err)
	}
	return Normalize(digits), nil
}

// hashChain applies the XOF steps times, starting from seed, and returns
// the final ChainSegmentLen-byte output. steps == 0 returns seed itself.
func hashChain(seed []byte, steps int) ([]byte, error) {
	cur := seed
	for i := 0; i < steps; i++ {
		next, err := xof.Sum(cur, chainStepBits)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	out := make([]byte, len(cur))
	copy(out, cur)
	return out, nil
}
