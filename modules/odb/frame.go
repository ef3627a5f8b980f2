// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/antgroup/webdvcs/modules/deltacodec"
	"github.com/antgroup/webdvcs/modules/hashutil"
)

// Frame is the "self-describing frame" spec §4.4 requires the data column
// to carry: a one-byte tag telling a reader whether the payload is full
// content or a delta against another stored object, framed so a reader
// never has to consult a side channel to know which.
const (
	frameFull  byte = 0x01
	frameDelta byte = 0x02
)

// encodeFrame wraps raw object bytes (full storage) in a frame tag and
// zstd-compresses the result, the same "compress at the edge" shape as the
// teacher's streamio zstd pool.
func encodeFrame(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(frameFull)
	buf.Write(data)
	return compress(buf.Bytes())
}

// encodeDeltaFrame wraps a deltacodec edit script together with its base
// hash (ASCII hex, fixed width) so decodeFrame can find the base without
// a separate lookup table.
func encodeDeltaFrame(baseHash string, delta []byte) ([]byte, error) {
	if len(baseHash) != hashutil.HexSize {
		return nil, fmt.Errorf("odb: base hash %q is not %d hex chars", baseHash, hashutil.HexSize)
	}
	var buf bytes.Buffer
	buf.WriteByte(frameDelta)
	buf.WriteString(baseHash)
	buf.Write(delta)
	return compress(buf.Bytes())
}

// decodedFrame is the parsed, decompressed form of a data column value.
type decodedFrame struct {
	isDelta  bool
	baseHash string // valid only when isDelta
	payload  []byte // raw content, or the deltacodec frame when isDelta
}

func decodeFrame(stored []byte) (*decodedFrame, error) {
	raw, err := decompress(stored)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("odb: empty object frame")
	}
	switch raw[0] {
	case frameFull:
		return &decodedFrame{payload: raw[1:]}, nil
	case frameDelta:
		if len(raw) < 1+hashutil.HexSize {
			return nil, fmt.Errorf("odb: truncated delta frame")
		}
		return &decodedFrame{
			isDelta:  true,
			baseHash: string(raw[1 : 1+hashutil.HexSize]),
			payload:  raw[1+hashutil.HexSize:],
		}, nil
	default:
		return nil, fmt.Errorf("odb: unknown frame tag 0x%02x", raw[0])
	}
}

var encoderLevel = zstd.WithEncoderLevel(zstd.SpeedDefault)

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, encoderLevel)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("odb: decompress: %w", err)
	}
	return out, nil
}

// applyDeltaChain reconstructs new bytes from a delta frame's
// deltacodec-encoded payload against its base's already-resolved bytes.
func applyDeltaChain(basePayload, deltaPayload []byte) ([]byte, error) {
	out, err := deltacodec.Apply(basePayload, deltaPayload)
	if err != nil {
		return nil, err
	}
	return out, nil
}
