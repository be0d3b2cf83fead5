// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"

	"github.com/btcsuite/molwallet/atom"
	"github.com/btcsuite/molwallet/molecule"
)

// proposeMoleculeMutation names the mutation every other mutation
// builder ultimately submits through: unlike TransferTokens,
// CreateToken, and the rest of the mutation package, ProposeMolecule
// does not build new atom content — it serializes an already-signed
// Molecule and hands it to the node as-is.
const proposeMoleculeMutation = "ProposeMolecule"

// ProposeMolecule submits m, which must already be signed and checked,
// to the node named by c. The returned Response carries the node's
// acceptance status (height, depth, receivedAt, and so on) under
// resp.Data["ProposeMolecule"].
func ProposeMolecule(ctx context.Context, c Client, m *molecule.Molecule) (*Response, error) {
	if m.Status != molecule.StatusSigned {
		return nil, transportError(ErrInvokeFailed, "molecule must be signed before proposal", nil)
	}

	variables := map[string]interface{}{
		"molecule": moleculeVariables(m),
	}

	resp, err := c.ExecuteMutation(ctx, proposeMoleculeMutation, variables)
	if err != nil {
		return nil, transportError(ErrInvokeFailed, "ProposeMolecule failed", err)
	}
	return resp, nil
}

// moleculeVariables converts m into the GraphQL-style nested map the
// node's MoleculeInput expects: the molecule's own scalar fields plus
// an ordered list of its atoms' scalar fields.
func moleculeVariables(m *molecule.Molecule) map[string]interface{} {
	atoms := make([]interface{}, len(m.Atoms))
	for i, a := range m.Atoms {
		atoms[i] = atomVariables(a)
	}

	return map[string]interface{}{
		"molecularHash": m.MolecularHash,
		"cellSlug":      m.CellSlug,
		"bundle":        m.Bundle,
		"status":        string(m.Status),
		"createdAt":     m.CreatedAt,
		"atoms":         atoms,
	}
}

func atomVariables(a *atom.Atom) map[string]interface{} {
	v := map[string]interface{}{
		"position":      a.Position,
		"walletAddress": a.WalletAddress,
		"isotope":       string(a.Isotope),
		"token":         a.Token,
		"metaType":      a.MetaType,
		"metaId":        a.MetaID,
		"index":         a.Index,
		"createdAt":     a.CreatedAt,
		"otsFragment":   a.OTSFragment,
	}
	if a.Value != nil {
		v["value"] = a.Value.String()
	}
	if a.BatchID != nil {
		v["batchId"] = *a.BatchID
	}
	if len(a.Meta) > 0 {
		meta := make([]interface{}, len(a.Meta))
		for i, p := range a.Meta {
			meta[i] = map[string]interface{}{"key": p.Key, "value": p.Value}
		}
		v["meta"] = meta
	}
	return v
}
