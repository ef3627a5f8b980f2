// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlobRoundTrip(t *testing.T) {
	b := NewBlob([]byte("hello world"))
	got := DecodeBlob(b.Encode())
	require.Equal(t, b.Hash, got.Hash)
	require.Equal(t, b.Data, got.Data)
}

func TestTreeRoundTripAndOrdering(t *testing.T) {
	fileHash := HashBytes([]byte("file contents"))
	tr := NewTree([]TreeEntry{
		{Name: "zeta.txt", Type: EntryFile, Hash: fileHash, Mode: 0o644, Size: 13},
		{Name: "alpha.txt", Type: EntryFile, Hash: fileHash, Mode: 0o644, Size: 13},
	})
	require.Equal(t, "alpha.txt", tr.Entries[0].Name)
	require.Equal(t, "zeta.txt", tr.Entries[1].Name)

	decoded, err := DecodeTree(tr.Encode())
	require.NoError(t, err)
	require.Equal(t, tr.Hash, decoded.Hash)
	require.Equal(t, tr.Entries, decoded.Entries)
}

func TestTreeHashIsDeterministic(t *testing.T) {
	h := HashBytes([]byte("x"))
	a := NewTree([]TreeEntry{{Name: "a", Type: EntryFile, Hash: h, Size: 1}})
	b := NewTree([]TreeEntry{{Name: "a", Type: EntryFile, Hash: h, Size: 1}})
	require.Equal(t, a.Hash, b.Hash)
}

func TestTreeFind(t *testing.T) {
	h := HashBytes([]byte("x"))
	tr := NewTree([]TreeEntry{{Name: "a.txt", Type: EntryFile, Hash: h, Size: 1}})
	e, ok := tr.Find("a.txt")
	require.True(t, ok)
	require.Equal(t, h, e.Hash)
	_, ok = tr.Find("missing")
	require.False(t, ok)
}

func TestCommitRoundTrip(t *testing.T) {
	treeHash := HashBytes([]byte("tree"))
	c := NewCommit(treeHash, nil, "Ada Lovelace", "ada@example.com", 1700000000, "initial commit")
	decoded, err := DecodeCommit(c.Encode())
	require.NoError(t, err)
	require.Equal(t, c.Hash, decoded.Hash)
	require.Equal(t, c.Tree, decoded.Tree)
	require.Equal(t, c.Author, decoded.Author)
	require.Equal(t, c.Email, decoded.Email)
	require.Equal(t, c.Timestamp, decoded.Timestamp)
	require.Equal(t, c.Message, decoded.Message)
	require.Empty(t, decoded.Parents)
}

func TestCommitWithParents(t *testing.T) {
	treeHash := HashBytes([]byte("tree"))
	c := NewCommit(treeHash, []Hash{HashBytes([]byte("p1")), HashBytes([]byte("p2"))}, "A", "a@x.com", 1, "merge")
	decoded, err := DecodeCommit(c.Encode())
	require.NoError(t, err)
	require.Equal(t, c.Parents, decoded.Parents)
	require.Equal(t, c.Parent(), decoded.Parents[0])
}

func TestCommitMultiWordAuthor(t *testing.T) {
	c := NewCommit(HashBytes([]byte("t")), nil, "Grace Brewster Hopper", "grace@example.com", 5, "msg")
	decoded, err := DecodeCommit(c.Encode())
	require.NoError(t, err)
	require.Equal(t, "Grace Brewster Hopper", decoded.Author)
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("blob")
	require.NoError(t, err)
	require.Equal(t, TypeBlob, typ)
	_, err = ParseType("nonsense")
	require.Error(t, err)
}
