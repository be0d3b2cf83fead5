// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cfgutil provides small config-parsing helpers shared by
// cmd/molctl's flag and config-file handling.
package cfgutil

import (
	"net"
	"os"

	"github.com/btcsuite/molwallet/value"
)

// NormalizeAddress returns the normalized form of addr, adding
// defaultPort if addr does not already carry one. An error is returned
// if addr, even without a port, is not a valid host.
func NormalizeAddress(addr, defaultPort string) (string, error) {
	host, port, origErr := net.SplitHostPort(addr)
	if origErr == nil {
		return net.JoinHostPort(host, port), nil
	}
	addr = net.JoinHostPort(addr, defaultPort)
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", origErr
	}
	return addr, nil
}

// NormalizeAddresses normalizes every address in addrs with
// defaultPort, dropping duplicates while preserving order.
func NormalizeAddresses(addrs []string, defaultPort string) ([]string, error) {
	normalized := make([]string, 0, len(addrs))
	seen := make(map[string]struct{})

	for _, addr := range addrs {
		n, err := NormalizeAddress(addr, defaultPort)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[n]; !ok {
			normalized = append(normalized, n)
			seen[n] = struct{}{}
		}
	}
	return normalized, nil
}

// FileExists reports whether the named file or directory exists.
func FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ExplicitString is a string value implementing the go-flags
// Marshaler/Unmarshaler interfaces, recording whether it was set
// explicitly by the user rather than left at its default.
type ExplicitString struct {
	Value         string
	explicitlySet bool
}

// NewExplicitString creates an ExplicitString with the given default.
func NewExplicitString(defaultValue string) *ExplicitString {
	return &ExplicitString{Value: defaultValue}
}

// ExplicitlySet reports whether UnmarshalFlag has been called.
func (e *ExplicitString) ExplicitlySet() bool { return e.explicitlySet }

// MarshalFlag implements the flags.Marshaler interface.
func (e *ExplicitString) MarshalFlag() (string, error) { return e.Value, nil }

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (e *ExplicitString) UnmarshalFlag(value string) error {
	e.Value = value
	e.explicitlySet = true
	return nil
}

// AmountFlag embeds a value.Value and implements the go-flags
// Marshaler/Unmarshaler interfaces so a CLI-supplied decimal amount can
// be used directly as a config struct field, the way the teacher's
// AmountFlag wraps a btcutil.Amount.
type AmountFlag struct {
	value.Value
}

// NewAmountFlag creates an AmountFlag with the given default value.
func NewAmountFlag(defaultValue value.Value) *AmountFlag {
	return &AmountFlag{defaultValue}
}

// MarshalFlag implements the flags.Marshaler interface.
func (a *AmountFlag) MarshalFlag() (string, error) {
	return a.Value.String(), nil
}

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (a *AmountFlag) UnmarshalFlag(s string) error {
	v, err := value.Parse(s)
	if err != nil {
		return err
	}
	a.Value = v
	return nil
}

// AppDataDir returns the default per-user application data directory
// for the named application, creating no directories itself.
func AppDataDir(appName string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "." + appName
	}
	return home + string(os.PathSeparator) + "." + appName
}
