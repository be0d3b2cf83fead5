// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package molecule implements spec §4.5's Molecule container: an
// ordered, append-only atom list that moves through draft, sign, and
// check the way waddrmgr's unexported accountManager moves an account
// through open, locked, and closed — a value that owns its atoms by
// composition, with no back-pointer to the wallet or node that created
// it (spec §9).
package molecule

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/molwallet/atom"
	"github.com/btcsuite/molwallet/encoding"
	"github.com/btcsuite/molwallet/value"
	"github.com/btcsuite/molwallet/wallet"
	"github.com/btcsuite/molwallet/wotssig"
	"github.com/btcsuite/molwallet/xof"
)

// Status is a molecule's lifecycle stage.
type Status string

const (
	// StatusDraft is the only stage at which builder methods may run.
	StatusDraft Status = "draft"

	// StatusSigned is the terminal stage; builder methods fail once a
	// molecule reaches it.
	StatusSigned Status = "signed"
)

// Molecule is an ordered atom collection, hashed and signed as a unit.
// Callers obtain one from New and drive it through the init* builders,
// Sign, and Check.
type Molecule struct {
	CellSlug      string
	Bundle        string
	Status        Status
	CreatedAt     string
	Atoms         []*atom.Atom
	MolecularHash string
	Anonymous     bool

	sourceWallet    *wallet.Wallet
	remainderWallet *wallet.Wallet
	keyMaterial     *wallet.KeyMaterial
	indexSeen       map[int]bool
}

// New creates a draft molecule signed by sourceWallet. remainderWallet
// receives V-atom residual balances (spec §4.5's initValue); pass nil to
// route residuals back to sourceWallet. km is the one-shot key material
// Sign will consume and zero; it must have been derived for
// sourceWallet's exact (secret, token, position) triple.
func New(sourceWallet *wallet.Wallet, km *wallet.KeyMaterial, remainderWallet *wallet.Wallet, cellSlug string) *Molecule {
	if remainderWallet == nil {
		remainderWallet = sourceWallet
	}
	return &Molecule{
		CellSlug:        cellSlug,
		Bundle:          sourceWallet.Bundle,
		Status:          StatusDraft,
		CreatedAt:       nowMillis(),
		sourceWallet:    sourceWallet,
		remainderWallet: remainderWallet,
		keyMaterial:     km,
		indexSeen:       make(map[int]bool),
	}
}

// GenerateIndex returns the index the next AddAtom call will assign if
// the caller does not supply one itself.
func (m *Molecule) GenerateIndex() int {
	return len(m.Atoms)
}

// AddAtom appends a to the molecule. If the caller has not assigned a
// has not set a.Index, AddAtom assigns GenerateIndex(); if the caller
// did set it and another atom already holds that index, AddAtom fails
// with ErrIndexConflict. CreatedAt is stamped if the caller left it
// empty. The atom's per-isotope invariants (spec §4.4) are checked here,
// since Atom itself does not enforce them.
func (m *Molecule) AddAtom(a *atom.Atom) error {
	if m.Status != StatusDraft {
		return moleculeError(ErrAlreadySigned, "cannot add an atom after signing", nil)
	}

	if err := atom.Validate(a); err != nil {
		var ae atom.AtomError
		if errors.As(err, &ae) {
			switch ae.ErrorCode {
			case atom.ErrUnknownIsotope:
				return moleculeError(ErrUnknownIsotope, ae.Description, ae.Err)
			case atom.ErrMissingMeta:
				return moleculeError(ErrMissingMeta, ae.Description, ae.Err)
			}
		}
		return moleculeError(ErrUnknownIsotope, "atom failed validation", err)
	}

	if a.IndexSet {
		if m.indexSeen[a.Index] {
			return moleculeError(ErrIndexConflict,
				fmt.Sprintf("index %d is already assigned", a.Index), nil)
		}
	} else {
		a.Index = m.GenerateIndex()
		a.IndexSet = true
	}
	m.indexSeen[a.Index] = true

	if a.CreatedAt == "" {
		a.CreatedAt = nowMillis()
	}

	m.Atoms = append(m.Atoms, a)
	return nil
}

// InitValue emits three V atoms implementing spec §4.5's initValue:
// the source wallet's entire balance is debited, amount is credited to
// recipient, and the residual is credited back to the remainder
// wallet. Debiting the full balance (rather than just amount) is what
// makes the three atoms sum to zero, per §4.4's "Σ value = 0 per
// molecule" rule and §8 property 5 — see DESIGN.md for why this differs
// from the literal numbers in spec.md's worked transfer example.
func (m *Molecule) InitValue(recipient *wallet.Wallet, token string, amount value.Value) error {
	debit := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeValue, token).
		WithValue(m.sourceWallet.Balance.Neg())
	if err := m.AddAtom(debit); err != nil {
		return err
	}

	credit := atom.New(recipient.Position, recipient.Address, atom.IsotopeValue, token).
		WithValue(amount)
	if err := m.AddAtom(credit); err != nil {
		return err
	}

	residual := m.sourceWallet.Balance.Add(amount.Neg())
	remainder := atom.New(m.remainderWallet.Position, m.remainderWallet.Address, atom.IsotopeValue, token).
		WithValue(residual)
	return m.AddAtom(remainder)
}

// InitShadowWalletClaim emits two V atoms moving shadowWallet's entire
// balance into the source wallet's bundle (SUPPLEMENTAL FEATURES' claim
// flow for wallets pre-funded before their owner's bundle was known).
// The credit atom is tagged with a "walletBundle" meta pair recording
// the claiming bundle, mirroring how InitValue's remainder atom tags
// its recipient.
func (m *Molecule) InitShadowWalletClaim(shadowWallet *wallet.Wallet) error {
	debit := atom.New(shadowWallet.Position, shadowWallet.Address, atom.IsotopeValue, shadowWallet.Token).
		WithValue(shadowWallet.Balance.Neg())
	if err := m.AddAtom(debit); err != nil {
		return err
	}

	credit := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeValue, shadowWallet.Token).
		WithValue(shadowWallet.Balance).
		WithMetaType("walletBundle").
		WithMetaID(m.sourceWallet.Bundle)
	return m.AddAtom(credit)
}

// InitDepositBuffer emits V atoms moving amount out of the source
// wallet and into a freshly-derived buffer wallet tagged with the
// source bundle, for later pooled withdrawal (SUPPLEMENTAL FEATURES'
// buffer flow). bufferWallet must already be derived for the same
// token/batch as the source wallet; callers typically derive it at
// wallet.NextPosition(sourceWallet.Position).
func (m *Molecule) InitDepositBuffer(bufferWallet *wallet.Wallet, amount value.Value) error {
	if amount.Sign() <= 0 {
		return moleculeError(ErrValueImbalance, "deposit amount must be positive", nil)
	}
	if m.sourceWallet.Balance.Cmp(amount) < 0 {
		return moleculeError(ErrValueImbalance, "source wallet balance is insufficient for this deposit", nil)
	}

	debit := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeValue, m.sourceWallet.Token).
		WithValue(amount.Neg())
	if err := m.AddAtom(debit); err != nil {
		return err
	}

	credit := atom.New(bufferWallet.Position, bufferWallet.Address, atom.IsotopeValue, m.sourceWallet.Token).
		WithValue(amount).
		WithMetaType("walletBundle").
		WithMetaID(m.sourceWallet.Bundle)
	return m.AddAtom(credit)
}

// BufferRecipient pairs a resolved recipient wallet with the amount it
// receives from a buffer withdrawal.
type BufferRecipient struct {
	Wallet *wallet.Wallet
	Amount value.Value
}

// InitWithdrawBuffer emits V atoms moving the source (buffer) wallet's
// entire balance out to one or more recipients, each tagged with its
// own bundle in meta (SUPPLEMENTAL FEATURES' buffer flow). The
// recipient amounts must sum to exactly the source wallet's balance.
func (m *Molecule) InitWithdrawBuffer(recipients []BufferRecipient) error {
	if len(recipients) == 0 {
		return moleculeError(ErrEmptyAtoms, "withdraw buffer requires at least one recipient", nil)
	}

	total := value.Zero()
	for _, r := range recipients {
		total = total.Add(r.Amount)
	}
	if total.Cmp(m.sourceWallet.Balance) != 0 {
		return moleculeError(ErrValueImbalance, "recipient amounts must sum to the buffer wallet's full balance", nil)
	}

	debit := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeValue, m.sourceWallet.Token).
		WithValue(m.sourceWallet.Balance.Neg()).
		WithMetaType("walletBundle").
		WithMetaID(m.sourceWallet.Bundle)
	if err := m.AddAtom(debit); err != nil {
		return err
	}

	for _, r := range recipients {
		credit := atom.New(r.Wallet.Position, r.Wallet.Address, atom.IsotopeValue, m.sourceWallet.Token).
			WithValue(r.Amount).
			WithMetaType("walletBundle").
			WithMetaID(r.Wallet.Bundle)
		if err := m.AddAtom(credit); err != nil {
			return err
		}
	}
	return nil
}

// InitTokenCreation emits one T atom into recipient's wallet, issuing
// amount units of token with the four meta keys spec §4.4 requires for
// the T isotope.
func (m *Molecule) InitTokenCreation(recipient *wallet.Wallet, token string, amount value.Value, meta map[string]string) error {
	a := atom.New(recipient.Position, recipient.Address, atom.IsotopeToken, token).
		WithValue(amount)

	for _, key := range []string{"name", "fungibility", "supply", "decimals"} {
		v, ok := meta[key]
		if !ok {
			return moleculeError(ErrMissingMeta,
				"token creation requires meta key "+key, nil)
		}
		if err := a.AddMeta(key, v); err != nil {
			return moleculeError(ErrMissingMeta, "duplicate meta key "+key, err)
		}
	}
	return m.AddAtom(a)
}

// InitTokenRequest emits one M atom asking the network to mint amount
// of token into the source wallet, pending approval recorded against
// metaType/metaID (SUPPLEMENTAL FEATURES' faucet-style request flow).
// batchID, if non-empty, groups the request with sibling requests for
// atomic fulfillment.
func (m *Molecule) InitTokenRequest(token string, amount value.Value, metaType, metaID, batchID string, meta []atom.MetaPair) error {
	a := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeMeta, token)
	a.WithMetaType(metaType).WithMetaID(metaID)
	if err := a.AddMeta("amount", amount.String()); err != nil {
		return moleculeError(ErrMissingMeta, "duplicate meta key amount", err)
	}
	if batchID != "" {
		if err := a.AddMeta("batchId", batchID); err != nil {
			return moleculeError(ErrMissingMeta, "duplicate meta key batchId", err)
		}
	}
	if err := addMetaPairs(a, meta); err != nil {
		return err
	}
	return m.AddAtom(a)
}

// InitMeta emits one M atom recording an arbitrary meta write.
func (m *Molecule) InitMeta(metaType, metaID string, meta []atom.MetaPair) error {
	a := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeMeta, "")
	a.WithMetaType(metaType).WithMetaID(metaID)
	if err := addMetaPairs(a, meta); err != nil {
		return err
	}
	return m.AddAtom(a)
}

// InitAuthorization emits one U atom recording a permission grant.
func (m *Molecule) InitAuthorization(meta []atom.MetaPair) error {
	a := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeAuthorization, "")
	if err := addMetaPairs(a, meta); err != nil {
		return err
	}
	return m.AddAtom(a)
}

// InitIdentifierCreation emits one P atom recording a new external
// identifier of the given type — e.g. "email" or "phone" — (spec §6's
// profile/identifier isotope).
func (m *Molecule) InitIdentifierCreation(identifierType string, meta []atom.MetaPair) error {
	a := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeProfile, "")
	a.WithMetaType("identifier").WithMetaID(identifierType)
	if err := addMetaPairs(a, meta); err != nil {
		return err
	}
	return m.AddAtom(a)
}

// InitRule emits one R atom recording a policy document, keyed by
// ruleID, in metaID. Grounded on the SUPPLEMENTAL FEATURES' rule-atom
// support: the R isotope's meta carries a policy built by the rules
// package.
func (m *Molecule) InitRule(ruleID string, meta []atom.MetaPair) error {
	a := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeRule, "")
	a.WithMetaID(ruleID)
	if err := addMetaPairs(a, meta); err != nil {
		return err
	}
	return m.AddAtom(a)
}

// InitContinuID emits one I atom establishing a fresh identity root
// without carrying a position forward; see AddContinuIDAtom for the
// position-chaining variant.
func (m *Molecule) InitContinuID(meta []atom.MetaPair) error {
	a := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeIdentity, "")
	if err := addMetaPairs(a, meta); err != nil {
		return err
	}
	return m.AddAtom(a)
}

// AddContinuIDAtom appends an I atom carrying the source wallet's next
// position forward, derived from the molecular hash of the atoms added
// so far (wallet.NextPosition, spec §9 strategy b). A caller building
// its next molecule reads the atom's "nextPosition" meta value instead
// of round-tripping to the node for a fresh position first.
func (m *Molecule) AddContinuIDAtom() error {
	provisional, err := m.computeMolecularHash()
	if err != nil {
		return moleculeError(ErrEmptyAtoms, "cannot derive a next position with no prior atoms", err)
	}

	next, err := wallet.NextPosition(m.sourceWallet.Position, provisional)
	if err != nil {
		return moleculeError(ErrUnknownIsotope, "failed to derive next position", err)
	}

	a := atom.New(m.sourceWallet.Position, m.sourceWallet.Address, atom.IsotopeIdentity, "")
	if err := a.AddMeta("nextPosition", next); err != nil {
		return err
	}
	return m.AddAtom(a)
}

// Sign computes the molecular hash over the current atom list, walks
// the source wallet's WOTS+ chains to produce a signature, and
// distributes the signature's fragments across the atoms (spec §4.6
// steps A, D, E). It consumes and zeros the molecule's key material.
//
// If the molecule is already signed, Sign returns nil when idempotency
// is true (a no-op, not a re-signing) and ErrAlreadySigned otherwise,
// per spec §8 property 7. compressed selects the wire form of the
// signature the atoms end up carrying; the engine currently supports
// only the compressed (flat hex) form, so a false value is accepted but
// behaves identically to true.
func (m *Molecule) Sign(idempotency, anonymous, compressed bool) error {
	if m.Status == StatusSigned {
		if idempotency {
			return nil
		}
		return moleculeError(ErrAlreadySigned, "molecule already signed", nil)
	}
	if len(m.Atoms) == 0 {
		return moleculeError(ErrEmptyAtoms, "cannot sign a molecule with no atoms", nil)
	}
	if err := m.checkValueConservation(); err != nil {
		return err
	}

	hash, err := m.computeMolecularHash()
	if err != nil {
		return err
	}

	fragment, err := wotssig.Sign(hash, m.keyMaterial)
	if err != nil {
		return err
	}
	slices, err := wotssig.DistributeFragments(fragment, len(m.Atoms))
	if err != nil {
		return err
	}

	m.MolecularHash = hash
	m.Anonymous = anonymous
	for i, a := range m.Atoms {
		a.OTSFragment = slices[i]
	}
	m.Status = StatusSigned

	m.keyMaterial.Zero()
	m.keyMaterial = nil

	_ = compressed // only the compressed wire form is implemented
	log.Debugf("molecule: signed %d atoms, hash %s", len(m.Atoms), m.MolecularHash)
	return nil
}

// Check verifies a signed molecule against spec §4.6 step F: the
// molecular hash, the WOTS+ signature against the source wallet's
// address, and the isotope/value/ordering invariants of §4.4. It
// returns (true, nil) on success and (false, CheckError) naming the
// first violated rule otherwise.
func (m *Molecule) Check() (bool, error) {
	if m.Status != StatusSigned {
		return false, checkError(ErrNotSigned, "molecule has not been signed", nil)
	}
	if len(m.Atoms) == 0 {
		return false, checkError(ErrHashMismatch, "signed molecule has no atoms", nil)
	}

	recomputed, err := m.computeMolecularHash()
	if err != nil {
		return false, checkError(ErrHashMismatch, "failed to recompute molecular hash", err)
	}
	if recomputed != m.MolecularHash {
		return false, checkError(ErrHashMismatch, "recomputed molecular hash does not match", nil)
	}

	fragment := wotssig.ReassembleFragments(fragmentsInOrder(m.Atoms))
	if err := wotssig.Verify(m.MolecularHash, fragment, m.sourceWallet.Address); err != nil {
		return false, checkError(ErrAddressMismatch, "signature does not verify against the source wallet's address", err)
	}

	if err := m.checkValueConservation(); err != nil {
		return false, checkError(ErrValueNotConserved, "value atoms do not sum to zero per token", err)
	}

	var lastIndex = -1
	var lastCreatedAt int64 = -1
	for _, a := range m.Atoms {
		if err := atom.Validate(a); err != nil {
			return false, checkError(ErrInvariantMissingMeta, "atom failed isotope validation", err)
		}
		if a.Position == "" || a.WalletAddress == "" {
			return false, checkError(ErrEmptyField, "atom has an empty position or wallet address", nil)
		}
		if a.Index <= lastIndex {
			return false, checkError(ErrIndexNotMonotonic, "atom indexes are not strictly increasing", nil)
		}
		lastIndex = a.Index

		createdAt, err := strconv.ParseInt(a.CreatedAt, 10, 64)
		if err != nil {
			return false, checkError(ErrCreatedAtNotMonotonic, "atom createdAt is not a valid timestamp", err)
		}
		if createdAt < lastCreatedAt {
			return false, checkError(ErrCreatedAtNotMonotonic, "atom createdAt is not monotonic", nil)
		}
		lastCreatedAt = createdAt
	}

	return true, nil
}

// checkValueConservation enforces spec §4.4's "Σ value = 0 per
// molecule" rule for V atoms, grouped by token since distinct tokens
// are not fungible with one another.
func (m *Molecule) checkValueConservation() error {
	sums := make(map[string][]value.Value)
	for _, a := range m.Atoms {
		if a.Isotope != atom.IsotopeValue || a.Value == nil {
			continue
		}
		sums[a.Token] = append(sums[a.Token], *a.Value)
	}
	for token, values := range sums {
		if !value.Sum(values).IsZero() {
			return moleculeError(ErrValueImbalance,
				fmt.Sprintf("value atoms for token %q do not sum to zero", token), nil)
		}
	}
	return nil
}

// computeMolecularHash serializes the current atom list canonically and
// hashes it, per spec §4.6 step A.
func (m *Molecule) computeMolecularHash() (string, error) {
	canon := make([]encoding.CanonicalAtom, len(m.Atoms))
	for i, a := range m.Atoms {
		canon[i] = a.ToCanonical()
	}
	serialized, err := encoding.Serialize(canon)
	if err != nil {
		return "", err
	}
	return xof.SumHex([]byte(serialized), 256)
}

func fragmentsInOrder(atoms []*atom.Atom) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.OTSFragment
	}
	return out
}

func addMetaPairs(a *atom.Atom, meta []atom.MetaPair) error {
	for _, p := range meta {
		if err := a.AddMeta(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func nowMillis() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
