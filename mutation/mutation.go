package mutation

import (
	"github.com/btcsuite/molwallet/atom"
	"github.com/btcsuite/molwallet/molecule"
	"github.com/btcsuite/molwallet/rules"
	"github.com/btcsuite/molwallet/value"
	"github.com/btcsuite/molwallet/wallet"
)

// finalize signs and checks m, the step every factory below ends with
// (matches the reference SDKs' fillMolecule-then-sign({})-then-check()
// sequence).
func finalize(m *molecule.Molecule) error {
	if err := m.Sign(false, false, true); err != nil {
		return mutationError(ErrSignFailed, "failed to sign molecule", err)
	}
	if ok, err := m.Check(); err != nil || !ok {
		return mutationError(ErrCheckFailed, "molecule failed post-sign check", err)
	}
	return nil
}

// TransferTokens fills m with a token transfer to recipient and
// finalizes it (spec §4.7's MutationTransferTokens).
func TransferTokens(m *molecule.Molecule, recipient *wallet.Wallet, token string, amount value.Value) error {
	if err := m.InitValue(recipient, token, amount); err != nil {
		return mutationError(ErrBuildFailed, "failed to build transfer atoms", err)
	}
	return finalize(m)
}

// CreateToken fills m with a new token's issuance atom and finalizes
// it (spec §4.7's MutationCreateToken).
func CreateToken(m *molecule.Molecule, recipient *wallet.Wallet, token string, amount value.Value, meta map[string]string) error {
	if err := m.InitTokenCreation(recipient, token, amount, meta); err != nil {
		return mutationError(ErrBuildFailed, "failed to build token creation atom", err)
	}
	return finalize(m)
}

// RequestTokens fills m with a pending mint request against token and
// finalizes it (SUPPLEMENTAL FEATURES' faucet-style request flow).
func RequestTokens(m *molecule.Molecule, token string, amount value.Value, metaType, metaID, batchID string, meta []atom.MetaPair) error {
	if err := m.InitTokenRequest(token, amount, metaType, metaID, batchID, meta); err != nil {
		return mutationError(ErrBuildFailed, "failed to build token request atom", err)
	}
	return finalize(m)
}

// RequestAuthorization fills m with an authorization request and
// finalizes it (spec §4.7's MutationRequestAuthorization).
func RequestAuthorization(m *molecule.Molecule, meta []atom.MetaPair) error {
	if err := m.InitAuthorization(meta); err != nil {
		return mutationError(ErrBuildFailed, "failed to build authorization atom", err)
	}
	return finalize(m)
}

// CreateIdentifier fills m with a new external identifier's creation
// atom and finalizes it (spec §4.7's MutationCreateIdentifier).
// identifierType selects the meta ID, matching the reference SDKs'
// fillMolecule({ type, contact, code }).
func CreateIdentifier(m *molecule.Molecule, identifierType, contact, code string) error {
	if identifierType == "" {
		return mutationError(ErrInvalidParams, "identifier type must not be empty", nil)
	}
	meta := []atom.MetaPair{
		{Key: "contact", Value: contact},
		{Key: "code", Value: code},
	}
	if err := m.InitIdentifierCreation(identifierType, meta); err != nil {
		return mutationError(ErrBuildFailed, "failed to build identifier creation atom", err)
	}
	return finalize(m)
}

// CreateRule fills m with a policy document for ruleID and finalizes
// it (SUPPLEMENTAL FEATURES' rule-atom support, spec §4.7's
// MutationCreateRule).
func CreateRule(m *molecule.Molecule, ruleID string, policy rules.Policy) error {
	meta, err := policy.ToMeta()
	if err != nil {
		return mutationError(ErrInvalidParams, "failed to flatten policy to meta", err)
	}
	if err := m.InitRule(ruleID, meta); err != nil {
		return mutationError(ErrBuildFailed, "failed to build rule atom", err)
	}
	return finalize(m)
}

// ClaimShadowWallet fills m with the atoms claiming shadowWallet's
// balance into m's source bundle and finalizes it (SUPPLEMENTAL
// FEATURES' shadow-wallet claim flow, spec §4.7's
// MutationClaimShadowWallet).
func ClaimShadowWallet(m *molecule.Molecule, shadowWallet *wallet.Wallet) error {
	if err := m.InitShadowWalletClaim(shadowWallet); err != nil {
		return mutationError(ErrBuildFailed, "failed to build shadow wallet claim atoms", err)
	}
	return finalize(m)
}

// DepositBufferToken fills m with atoms moving amount from the source
// wallet into bufferWallet and finalizes it (SUPPLEMENTAL FEATURES'
// buffer flow, spec §4.7's MutationDepositBufferToken).
func DepositBufferToken(m *molecule.Molecule, bufferWallet *wallet.Wallet, amount value.Value) error {
	if err := m.InitDepositBuffer(bufferWallet, amount); err != nil {
		return mutationError(ErrBuildFailed, "failed to build deposit buffer atoms", err)
	}
	return finalize(m)
}

// WithdrawBufferToken fills m with atoms paying out a buffer wallet's
// full balance to recipients and finalizes it (SUPPLEMENTAL FEATURES'
// buffer flow, spec §4.7's MutationWithdrawBufferToken).
func WithdrawBufferToken(m *molecule.Molecule, recipients []molecule.BufferRecipient) error {
	if err := m.InitWithdrawBuffer(recipients); err != nil {
		return mutationError(ErrBuildFailed, "failed to build withdraw buffer atoms", err)
	}
	return finalize(m)
}
