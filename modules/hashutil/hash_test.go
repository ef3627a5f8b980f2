// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package hashutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA256Hex(t *testing.T) {
	sum := sha256.Sum256([]byte("hello\n"))
	require.Equal(t, hex.EncodeToString(sum[:]), SHA256Hex([]byte("hello\n")))
	require.Len(t, SHA256Hex(nil), HexSize)
}

func TestValidHashHex(t *testing.T) {
	require.True(t, ValidHashHex(strings.Repeat("a", HexSize)))
	require.False(t, ValidHashHex(strings.Repeat("a", HexSize-1)))
	require.False(t, ValidHashHex(strings.Repeat("z", HexSize)))
}

func TestIsBinaryNulByte(t *testing.T) {
	data := append([]byte("hello"), 0x00, 'w', 'o', 'r', 'l', 'd')
	require.True(t, IsBinary(data, "file.txt"))
}

func TestIsBinaryTextHeuristic(t *testing.T) {
	require.False(t, IsBinary([]byte("the quick brown fox\njumps over\n"), "a.txt"))
	noisy := bytes.Repeat([]byte{0x01, 0x02, 0x03, 'a'}, 100)
	require.True(t, IsBinary(noisy, "a.bin"))
}

func TestIsBinaryEmpty(t *testing.T) {
	require.False(t, IsBinary(nil, "empty.txt"))
}

func TestConstantTimeEqual(t *testing.T) {
	require.True(t, ConstantTimeEqual([]byte("abc"), []byte("abc")))
	require.False(t, ConstantTimeEqual([]byte("abc"), []byte("abd")))
	require.False(t, ConstantTimeEqual([]byte("abc"), []byte("ab")))
}
