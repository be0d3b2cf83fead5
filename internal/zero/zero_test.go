// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zero_test

import (
	"fmt"
	"testing"

	. "github.com/btcsuite/molwallet/internal/zero"
)

func makeOneBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 1
	}
	return b
}

func checkZeroBytes(b []byte) error {
	for i, v := range b {
		if v != 0 {
			return fmt.Errorf("b[%d] = %d", i, v)
		}
	}
	return nil
}

func TestBytes(t *testing.T) {
	tests := []int{0, 31, 32, 33, 127, 128, 129, 255, 256, 257, 1024, 1025}

	for i, n := range tests {
		b := makeOneBytes(n)
		Bytes(b)
		if err := checkZeroBytes(b); err != nil {
			t.Errorf("Test %d (n=%d) failed: %v", i, n, err)
		}
	}
}

func TestBytea32(t *testing.T) {
	const sz = 32
	var b [sz]byte
	copy(b[:], makeOneBytes(sz))

	Bytea32(&b)

	if err := checkZeroBytes(b[:]); err != nil {
		t.Error(err)
	}
}

func TestBytea64(t *testing.T) {
	const sz = 64
	var b [sz]byte
	copy(b[:], makeOneBytes(sz))

	Bytea64(&b)

	if err := checkZeroBytes(b[:]); err != nil {
		t.Error(err)
	}
}

func TestBytea128(t *testing.T) {
	const sz = 128
	var b [sz]byte
	copy(b[:], makeOneBytes(sz))

	Bytea128(&b)

	if err := checkZeroBytes(b[:]); err != nil {
		t.Error(err)
	}
}
