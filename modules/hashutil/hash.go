// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package hashutil provides the digest and byte-classification primitives
// every other package in this module builds on: SHA-256 object identity,
// the binary/text heuristic used by the diff kernel and the object store,
// and small UTF-8 helpers.
package hashutil

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"unicode/utf8"
)

// DigestSize is the length in bytes of a SHA-256 digest.
const DigestSize = sha256.Size

// HexSize is the length of a digest rendered as lower-case hex.
const HexSize = DigestSize * 2

// SHA256 returns the raw 32-byte SHA-256 digest of b.
func SHA256(b []byte) [DigestSize]byte {
	return sha256.Sum256(b)
}

// SHA256Hex returns the lower-case hex SHA-256 digest of b, matching the
// canonical storage-key form required by spec §3.
func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ValidHashHex reports whether s is a syntactically valid 64-char lower-hex
// digest. It does not check that any object with that hash exists.
func ValidHashHex(s string) bool {
	if len(s) != HexSize {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// HexToDigest decodes a 64-char lower-hex digest into its raw 32 bytes, for
// the binary record encodings of modules/object §4.5.
func HexToDigest(s string) ([DigestSize]byte, error) {
	var out [DigestSize]byte
	if !ValidHashHex(s) {
		return out, fmt.Errorf("hashutil: invalid hash hex %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// DigestToHex renders a raw 32-byte digest as lower-case hex.
func DigestToHex(d [DigestSize]byte) string {
	return hex.EncodeToString(d[:])
}

// ConstantTimeEqual compares two byte slices in constant time, avoiding a
// timing oracle for callers that compare attacker-influenced digests.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// UTF8Encode returns s as its UTF-8 byte representation (a no-op conversion
// kept for symmetry with UTF8Decode and to give callers one place to add
// normalization later).
func UTF8Encode(s string) []byte {
	return []byte(s)
}

// UTF8Decode returns b as a string with its bytes unchanged (invalid
// sequences are not replaced) and reports whether b was valid UTF-8.
func UTF8Decode(b []byte) (string, bool) {
	return string(b), utf8.Valid(b)
}
