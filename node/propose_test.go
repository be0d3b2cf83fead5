package node

import (
	"context"
	"testing"

	"github.com/btcsuite/molwallet/molecule"
	"github.com/btcsuite/molwallet/value"
	"github.com/btcsuite/molwallet/wallet"
	"github.com/stretchr/testify/require"
)

func newSignedTestMolecule(t *testing.T) *molecule.Molecule {
	secret := []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd")
	source, km, err := wallet.New(secret, "USER", "", wallet.DefaultKeyWidthBits)
	require.NoError(t, err)
	source.Balance = value.FromInt64(1000)

	recipient, _, err := wallet.New(secret, "USER", "", wallet.DefaultKeyWidthBits)
	require.NoError(t, err)

	m := molecule.New(source, km, nil, "testcell")
	amount, err := value.Parse("100")
	require.NoError(t, err)
	require.NoError(t, m.InitValue(recipient, "USER", amount))
	require.NoError(t, m.Sign(false, false, true))

	ok, err := m.Check()
	require.NoError(t, err)
	require.True(t, ok)
	return m
}

type fakeClient struct {
	lastName      string
	lastVariables map[string]interface{}
	response      *Response
	err           error
}

func (f *fakeClient) ExecuteMutation(ctx context.Context, name string, variables map[string]interface{}) (*Response, error) {
	f.lastName = name
	f.lastVariables = variables
	return f.response, f.err
}

func (f *fakeClient) ExecuteQuery(ctx context.Context, name string, variables map[string]interface{}) (*Response, error) {
	return f.ExecuteMutation(ctx, name, variables)
}

func TestProposeMoleculeRejectsUnsignedMolecule(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd")
	source, km, err := wallet.New(secret, "USER", "", wallet.DefaultKeyWidthBits)
	require.NoError(t, err)
	m := molecule.New(source, km, nil, "testcell")

	_, err = ProposeMolecule(context.Background(), &fakeClient{}, m)
	require.Error(t, err)

	var te TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, ErrInvokeFailed, te.ErrorCode)
}

func TestProposeMoleculeSubmitsMoleculeVariables(t *testing.T) {
	m := newSignedTestMolecule(t)
	fc := &fakeClient{response: &Response{Data: map[string]interface{}{"ProposeMolecule": map[string]interface{}{"status": "accepted"}}}}

	resp, err := ProposeMolecule(context.Background(), fc, m)
	require.NoError(t, err)
	require.Equal(t, "ProposeMolecule", fc.lastName)

	molVars, ok := fc.lastVariables["molecule"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, m.MolecularHash, molVars["molecularHash"])
	require.Equal(t, string(molecule.StatusSigned), molVars["status"])

	atoms, ok := molVars["atoms"].([]interface{})
	require.True(t, ok)
	require.Len(t, atoms, len(m.Atoms))

	require.Equal(t, "accepted", resp.Data["ProposeMolecule"].(map[string]interface{})["status"])
}

func TestProposeMoleculePropagatesTransportFailure(t *testing.T) {
	m := newSignedTestMolecule(t)
	fc := &fakeClient{err: transportError(ErrInvokeFailed, "boom", nil)}

	_, err := ProposeMolecule(context.Background(), fc, m)
	require.Error(t, err)
}
