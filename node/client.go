// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import "context"

// Response is the decoded result of one ExecuteMutation/ExecuteQuery
// call: the named operation's data payload plus any server-reported
// errors that did not abort the transport call itself.
type Response struct {
	Data   map[string]interface{}
	Errors []string
}

// Client is the external collaborator spec §6 names: something that
// can execute a named mutation or query against a node and return its
// response. The engine — Molecule, Wallet, wotssig — never depends on
// this interface; only the mutation and cmd/molctl packages do, so a
// caller can swap GRPCClient for an in-memory fake in tests without
// touching the signing/hashing core.
type Client interface {
	// ExecuteMutation submits a named mutation (e.g. "ProposeMolecule",
	// "CreateToken") with its GraphQL-style variables and returns the
	// decoded response.
	ExecuteMutation(ctx context.Context, name string, variables map[string]interface{}) (*Response, error)

	// ExecuteQuery submits a named, read-only query with its variables
	// and returns the decoded response.
	ExecuteQuery(ctx context.Context, name string, variables map[string]interface{}) (*Response, error)
}
