// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015 The Decred developers
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that the above
// copyright notice and this permission notice appear in all copies.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
// WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
// ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
// WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
// ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
// OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.

// Package zero contains functions to clear data from byte slices and
// arrays. The molecular transaction engine uses it to wipe the user
// secret, the derived intermediate key, and each WOTS+ chain seed as soon
// as it is no longer needed, per spec §9's zeroization requirement.
package zero

// Bytes sets all bytes in the passed slice to zero. Used for
// variable-length sensitive material such as the raw secret buffer and
// the 1024-byte intermediate key.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Bytea32 clears the 32-byte array by filling it with the zero value.
func Bytea32(b *[32]byte) {
	*b = [32]byte{}
}

// Bytea64 clears the 64-byte array by filling it with the zero value.
func Bytea64(b *[64]byte) {
	*b = [64]byte{}
}

// Bytea128 clears a 128-byte array, the size of a single WOTS+ chain
// seed or chain segment, by filling it with the zero value.
func Bytea128(b *[128]byte) {
	*b = [128]byte{}
}
