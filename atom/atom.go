// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package atom implements the immutable-once-signed operation record
// described in spec §4.4: one isotope-typed entry in a molecule, carrying
// its own canonical field order and its own slice of the molecule's
// one-time signature once signing assigns it.
package atom

import (
	"strconv"

	"github.com/btcsuite/molwallet/encoding"
	"github.com/btcsuite/molwallet/value"
)

// Isotope is the one-letter tag categorizing an atom's operation. The
// alphabet is stable per spec §6; vendor-reserved codes outside this set
// are accepted by the type but rejected by Validate unless added to
// isotopeRules.
type Isotope string

const (
	IsotopeValue         Isotope = "V" // Value transfer
	IsotopeCreate        Isotope = "C" // Wallet creation
	IsotopeMeta          Isotope = "M" // Meta write
	IsotopeToken         Isotope = "T" // Token issuance
	IsotopeAuthorization Isotope = "U" // Authorization
	IsotopeIdentity      Isotope = "I" // Identity / ContinuID
	IsotopeRule          Isotope = "R" // Rule
	IsotopeProfile       Isotope = "P" // Profile / identifier
)

// MetaPair is an ordered (key, value) entry of an atom's meta list. Keys
// are unique within a single atom.
type MetaPair struct {
	Key   string
	Value string
}

// Atom is a single operation record. Position, WalletAddress, Isotope,
// and Token are set at construction time; the remaining fields are
// populated by builder methods before the enclosing molecule is signed.
// Atoms become immutable, by molecule-enforced convention, once their
// molecule has been signed (spec §4.5's AlreadySigned policy; Atom
// itself has no signed flag since mutability is a molecule-level
// concern).
type Atom struct {
	Position      string
	WalletAddress string
	Isotope       Isotope
	Token         string
	Value         *value.Value
	BatchID       *string
	MetaType      string
	MetaID        string
	Meta          []MetaPair
	OTSFragment   string
	Index         int
	IndexSet      bool // set by the enclosing Molecule's AddAtom
	CreatedAt     string
}

// New constructs an atom with its four immutable identity fields. All
// other fields start at their zero value and are filled in by the
// builder setters below or directly by a mutation builder.
func New(position, walletAddress string, isotope Isotope, token string) *Atom {
	return &Atom{
		Position:      position,
		WalletAddress: walletAddress,
		Isotope:       isotope,
		Token:         token,
	}
}

// WithValue sets the atom's signed value.
func (a *Atom) WithValue(v value.Value) *Atom {
	a.Value = &v
	return a
}

// WithBatchID sets the atom's batch identifier.
func (a *Atom) WithBatchID(batchID string) *Atom {
	a.BatchID = &batchID
	return a
}

// WithMetaType sets the atom's meta type discriminator.
func (a *Atom) WithMetaType(metaType string) *Atom {
	a.MetaType = metaType
	return a
}

// WithMetaID sets the atom's meta identifier.
func (a *Atom) WithMetaID(metaID string) *Atom {
	a.MetaID = metaID
	return a
}

// AddMeta appends a (key, value) pair to the atom's meta list. It
// returns ErrDuplicateMetaKey if key is already present.
func (a *Atom) AddMeta(key, val string) error {
	for _, p := range a.Meta {
		if p.Key == key {
			return atomError(ErrDuplicateMetaKey,
				"duplicate meta key: "+key, nil)
		}
	}
	a.Meta = append(a.Meta, MetaPair{Key: key, Value: val})
	return nil
}

// MetaValue returns the value associated with key and whether it was
// found.
func (a *Atom) MetaValue(key string) (string, bool) {
	for _, p := range a.Meta {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Equal reports whether two atoms are equal in every canonical field,
// including the signature fragment (which ToCanonical always omits,
// since that method feeds hash computation rather than equality).
func (a *Atom) Equal(other *Atom) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.OTSFragment != other.OTSFragment {
		return false
	}
	return canonicalKey(a.ToCanonical()) == canonicalKey(other.ToCanonical())
}

// canonicalKey collapses a CanonicalAtom's slice field into a comparable
// value so Equal can use ==.
func canonicalKey(c encoding.CanonicalAtom) string {
	s := c.Position + "\x00" + c.WalletAddress + "\x00" + c.Isotope + "\x00" +
		c.Token + "\x00" + c.Value + "\x00" + c.BatchID + "\x00" +
		c.MetaType + "\x00" + c.MetaID + "\x00" + c.CreatedAt + "\x00" +
		strconv.Itoa(c.Index) + "\x00" + strconv.FormatBool(c.IndexSet)
	for _, p := range c.Meta {
		s += "\x00" + p.Key + "\x00" + p.Value
	}
	return s
}

// ToCanonical converts the atom to its encoding.CanonicalAtom tuple for
// hashing. The signature fragment is never included; callers that need
// the signed wire form should read OTSFragment directly.
func (a *Atom) ToCanonical() encoding.CanonicalAtom {
	c := encoding.CanonicalAtom{
		Position:      a.Position,
		WalletAddress: a.WalletAddress,
		Isotope:       string(a.Isotope),
		Token:         a.Token,
		MetaType:      a.MetaType,
		MetaID:        a.MetaID,
		Index:         a.Index,
		IndexSet:      a.IndexSet,
		CreatedAt:     a.CreatedAt,
	}
	if a.Value != nil {
		c.Value = a.Value.String()
	}
	if a.BatchID != nil {
		c.BatchID = *a.BatchID
	}
	for _, p := range a.Meta {
		c.Meta = append(c.Meta, encoding.MetaPair{Key: p.Key, Value: p.Value})
	}
	return c
}
