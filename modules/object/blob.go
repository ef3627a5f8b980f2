// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

// Blob is raw byte content of one file version. Its canonical encoding is
// identity: the bytes themselves, with no framing at all (spec §4.5). Any
// delta framing used to store a blob efficiently lives one layer down in
// modules/odb and is reversed before a Blob ever exists at this layer.
type Blob struct {
	Hash Hash
	Data []byte
}

// NewBlob wraps data as a Blob, computing its canonical hash.
func NewBlob(data []byte) *Blob {
	return &Blob{Hash: HashBytes(data), Data: data}
}

// Encode returns the canonical bytes of b, which for a blob is simply its
// content.
func (b *Blob) Encode() []byte {
	return b.Data
}

// DecodeBlob reconstructs a Blob from canonical bytes previously produced
// by Encode.
func DecodeBlob(data []byte) *Blob {
	return NewBlob(data)
}
