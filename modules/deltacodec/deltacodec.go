// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package deltacodec implements the delta codec of spec §4.3: a compact
// edit script that reproduces new bytes from a base ("old") byte sequence.
// The codec is policy-free by design (spec: "policy, not algorithm") — it
// only has to satisfy apply(old, encode(old, new)) == new byte-exactly and
// be deterministic. It is a block-matching copy/insert differ in the style
// of the teacher's framed object encodings
// (modules/zeta/backend/{encode,decode}.go use the same "self-describing
// frame" idea for on-disk records); size-floor and similarity-ratio policy
// live one layer up, in modules/odb, which is the component spec §4.3
// says owns that decision.
package deltacodec

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Magic identifies a deltacodec frame; odb wraps this together with the
// base hash to form the self-describing "delta record" of spec §4.4.
var Magic = [4]byte{'W', 'D', 'V', 'D'}

const version = 1

const (
	opCopy   = 0x01
	opInsert = 0x02
)

// blockSize is the granularity at which matches against the base are
// sought. Smaller values find more matches at the cost of a larger
// instruction stream; 16 bytes is a reasonable middle ground for the file
// sizes this engine targets.
const blockSize = 16

var ErrBadFrame = errors.New("deltacodec: malformed delta frame")
var ErrBadOffset = errors.New("deltacodec: copy instruction out of range")

// Encode produces a deterministic delta frame that Apply(old, frame)
// reproduces as new. The frame is self-delimiting: Magic, version, a
// varint of len(new), then a stream of COPY/INSERT instructions.
func Encode(old, newData []byte) []byte {
	index := indexBlocks(old)

	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.WriteByte(version)
	writeUvarint(&buf, uint64(len(newData)))

	literalStart := 0
	flushLiteral := func(end int) {
		if end <= literalStart {
			return
		}
		buf.WriteByte(opInsert)
		writeUvarint(&buf, uint64(end-literalStart))
		buf.Write(newData[literalStart:end])
	}

	i := 0
	for i < len(newData) {
		if i+blockSize > len(newData) {
			i++
			continue
		}
		key := string(newData[i : i+blockSize])
		offsets, ok := index[key]
		if !ok {
			i++
			continue
		}
		offset, length := bestMatch(old, newData, offsets, i)
		if length < blockSize {
			i++
			continue
		}
		flushLiteral(i)
		buf.WriteByte(opCopy)
		writeUvarint(&buf, uint64(offset))
		writeUvarint(&buf, uint64(length))
		i += length
		literalStart = i
	}
	flushLiteral(len(newData))
	return buf.Bytes()
}

// Apply reconstructs new bytes from old and a delta frame produced by
// Encode. It returns ErrBadFrame for malformed input and ErrBadOffset if a
// COPY instruction references bytes outside old.
func Apply(old, delta []byte) ([]byte, error) {
	if len(delta) < 5 || !bytes.Equal(delta[:4], Magic[:]) || delta[4] != version {
		return nil, ErrBadFrame
	}
	r := bytes.NewReader(delta[5:])
	newLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, ErrBadFrame
	}
	out := make([]byte, 0, newLen)
	for r.Len() > 0 {
		op, err := r.ReadByte()
		if err != nil {
			return nil, ErrBadFrame
		}
		switch op {
		case opCopy:
			offset, err1 := binary.ReadUvarint(r)
			length, err2 := binary.ReadUvarint(r)
			if err1 != nil || err2 != nil {
				return nil, ErrBadFrame
			}
			if offset+length > uint64(len(old)) {
				return nil, ErrBadOffset
			}
			out = append(out, old[offset:offset+length]...)
		case opInsert:
			length, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, ErrBadFrame
			}
			lit := make([]byte, length)
			if _, err := r.Read(lit); err != nil {
				return nil, ErrBadFrame
			}
			out = append(out, lit...)
		default:
			return nil, ErrBadFrame
		}
	}
	if uint64(len(out)) != newLen {
		return nil, ErrBadFrame
	}
	return out, nil
}

// indexBlocks builds a map from a blockSize-byte window to every offset in
// old where that window occurs, used to seed candidate matches.
func indexBlocks(old []byte) map[string][]int {
	index := make(map[string][]int)
	if len(old) < blockSize {
		return index
	}
	for i := 0; i+blockSize <= len(old); i++ {
		key := string(old[i : i+blockSize])
		index[key] = append(index[key], i)
	}
	return index
}

// bestMatch extends each candidate offset as far as it agrees with
// newData starting at pos, and returns the longest such match.
func bestMatch(old, newData []byte, offsets []int, pos int) (offset, length int) {
	best := 0
	bestOffset := 0
	for _, off := range offsets {
		l := matchLength(old, newData, off, pos)
		if l > best {
			best = l
			bestOffset = off
		}
	}
	return bestOffset, best
}

func matchLength(old, newData []byte, oldPos, newPos int) int {
	n := 0
	for oldPos+n < len(old) && newPos+n < len(newData) && old[oldPos+n] == newData[newPos+n] {
		n++
	}
	return n
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}
