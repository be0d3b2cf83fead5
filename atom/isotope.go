// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package atom

// knownIsotopes is the stable alphabet from spec §6. Vendor-reserved
// future codes outside this set are left for Molecule to reject with
// MoleculeError::UnknownIsotope rather than Atom rejecting them here,
// since what counts as "known" can grow without this package changing.
var knownIsotopes = map[Isotope]bool{
	IsotopeValue:         true,
	IsotopeCreate:        true,
	IsotopeMeta:          true,
	IsotopeToken:         true,
	IsotopeAuthorization: true,
	IsotopeIdentity:      true,
	IsotopeRule:          true,
	IsotopeProfile:       true,
}

// IsKnown reports whether iso is part of the stable isotope alphabet.
func IsKnown(iso Isotope) bool { return knownIsotopes[iso] }

// requiredMetaKeys lists the meta keys spec §4.4's table requires for
// each isotope. Isotopes not listed here have no required meta keys.
var requiredMetaKeys = map[Isotope][]string{
	IsotopeToken: {"name", "fungibility", "supply", "decimals"},
}

// Validate enforces the per-isotope constraints of spec §4.4's table.
// It is called by the constructing Molecule, not by Atom's own setters,
// matching the table's "enforced by the constructing Molecule" note.
func Validate(a *Atom) error {
	if !IsKnown(a.Isotope) {
		return atomError(ErrUnknownIsotope, "unknown isotope: "+string(a.Isotope), nil)
	}

	switch a.Isotope {
	case IsotopeValue:
		if a.Value == nil {
			return atomError(ErrUnexpectedValue,
				"V atoms require a value", nil)
		}
	case IsotopeCreate, IsotopeMeta, IsotopeAuthorization, IsotopeIdentity, IsotopeRule:
		if a.Value != nil {
			return atomError(ErrUnexpectedValue,
				string(a.Isotope)+" atoms must not carry a value", nil)
		}
	case IsotopeToken:
		if a.Value == nil || a.Value.Sign() <= 0 {
			return atomError(ErrUnexpectedValue,
				"T atoms require a positive value", nil)
		}
	}

	for _, key := range requiredMetaKeys[a.Isotope] {
		if _, ok := a.MetaValue(key); !ok {
			return atomError(ErrMissingMeta,
				string(a.Isotope)+" atoms require meta key "+key, nil)
		}
	}

	return nil
}
