// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antgroup/webdvcs/modules/object"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repo.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutObjectIdempotent(t *testing.T) {
	s := openTestStore(t)
	data := []byte("hello world")
	r1, err := s.PutObject(data, object.TypeBlob)
	require.NoError(t, err)
	require.True(t, r1.IsNew)

	r2, err := s.PutObject(data, object.TypeBlob)
	require.NoError(t, err)
	require.False(t, r2.IsNew)
	require.Equal(t, r1.Hash, r2.Hash)
}

func TestPutObjectGetObjectRoundTrip(t *testing.T) {
	s := openTestStore(t)
	data := []byte("round trip content")
	r, err := s.PutObject(data, object.TypeBlob)
	require.NoError(t, err)

	rec, err := s.GetObject(r.Hash)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, data, rec.Data)
	require.Equal(t, object.TypeBlob, rec.Type)
}

func TestGetObjectMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	rec, err := s.GetObject(strings.Repeat("0", 64))
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestStoreBlobWithDeltaNoBaseHash(t *testing.T) {
	s := openTestStore(t)
	res, err := s.StoreBlobWithDelta([]byte(strings.Repeat("x", 1000)), "")
	require.NoError(t, err)
	require.False(t, res.UsedDelta)
	require.Equal(t, ReasonNoBaseHash, res.Reason)
}

func TestStoreBlobWithDeltaTooSmall(t *testing.T) {
	s := openTestStore(t)
	base := []byte(strings.Repeat("y", 1000))
	baseRes, err := s.PutObject(base, object.TypeBlob)
	require.NoError(t, err)

	res, err := s.StoreBlobWithDelta([]byte("tiny"), baseRes.Hash)
	require.NoError(t, err)
	require.False(t, res.UsedDelta)
	require.Equal(t, ReasonFileTooSmall, res.Reason)
}

func TestStoreBlobWithDeltaBaseNotFound(t *testing.T) {
	s := openTestStore(t)
	res, err := s.StoreBlobWithDelta([]byte(strings.Repeat("z", 1000)), strings.Repeat("0", 64))
	require.NoError(t, err)
	require.False(t, res.UsedDelta)
	require.Equal(t, ReasonBaseNotFound, res.Reason)
}

func TestStoreBlobWithDeltaSucceeds(t *testing.T) {
	s := openTestStore(t)
	base := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 30))
	baseRes, err := s.PutObject(base, object.TypeBlob)
	require.NoError(t, err)

	changed := append([]byte("PREFIX\n"), base...)
	res, err := s.StoreBlobWithDelta(changed, baseRes.Hash)
	require.NoError(t, err)
	require.True(t, res.UsedDelta)
	require.Equal(t, ReasonOKDelta, res.Reason)

	rec, err := s.GetObject(res.Hash)
	require.NoError(t, err)
	require.Equal(t, changed, rec.Data)
}

func TestStoreBlobWithDeltaInsufficientSimilarity(t *testing.T) {
	s := openTestStore(t)
	base := []byte(strings.Repeat("a", 1000))
	baseRes, err := s.PutObject(base, object.TypeBlob)
	require.NoError(t, err)

	unrelated := []byte(strings.Repeat("b", 1000))
	res, err := s.StoreBlobWithDelta(unrelated, baseRes.Hash)
	require.NoError(t, err)
	require.False(t, res.UsedDelta)
	require.Equal(t, ReasonInsufficientSimilar, res.Reason)
}

func TestHasObjectAndRemoveObject(t *testing.T) {
	s := openTestStore(t)
	r, err := s.PutObject([]byte("to be removed"), object.TypeBlob)
	require.NoError(t, err)

	has, err := s.HasObject(r.Hash)
	require.NoError(t, err)
	require.True(t, has)

	require.NoError(t, s.RemoveObject(r.Hash))

	has, err = s.HasObject(r.Hash)
	require.NoError(t, err)
	require.False(t, has)
}

func TestRefsCRUD(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SetRef("refs/heads/main", strings.Repeat("a", 64), RefBranch))

	ref, err := s.GetRef("refs/heads/main")
	require.NoError(t, err)
	require.NotNil(t, ref)
	require.Equal(t, RefBranch, ref.Kind)

	require.NoError(t, s.SetRef("refs/heads/main", strings.Repeat("b", 64), RefBranch))
	ref, err = s.GetRef("refs/heads/main")
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("b", 64), ref.Hash)

	refs, err := s.ListRefs()
	require.NoError(t, err)
	require.Len(t, refs, 1)

	require.NoError(t, s.RemoveRef("refs/heads/main"))
	ref, err = s.GetRef("refs/heads/main")
	require.NoError(t, err)
	require.Nil(t, ref)
}

func TestMetadataCRUD(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SetMeta("author.name", "Ada"))
	v, ok, err := s.GetMeta("author.name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Ada", v)

	require.NoError(t, s.DeleteMeta("author.name"))
	_, ok, err = s.GetMeta("author.name")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReachableFromBlobTree(t *testing.T) {
	s := openTestStore(t)
	blob, err := s.PutObject([]byte("file contents"), object.TypeBlob)
	require.NoError(t, err)

	tree := object.NewTree([]object.TreeEntry{
		{Name: "f.txt", Type: object.EntryFile, Hash: blob.Hash, Size: 13},
	})
	_, err = s.PutObject(tree.Encode(), object.TypeTree)
	require.NoError(t, err)

	reachable, err := s.ReachableFrom(tree.Hash)
	require.NoError(t, err)
	require.True(t, reachable[tree.Hash])
	require.True(t, reachable[blob.Hash])
}

func TestComputeStats(t *testing.T) {
	s := openTestStore(t)
	_, err := s.PutObject([]byte("a"), object.TypeBlob)
	require.NoError(t, err)
	_, err = s.PutObject([]byte("bb"), object.TypeBlob)
	require.NoError(t, err)

	stats, err := s.ComputeStats()
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.ObjectCount)
	require.Equal(t, int64(2), stats.BlobCount)
}

func TestExportBytesProducesValidImage(t *testing.T) {
	s := openTestStore(t)
	put, err := s.PutObject([]byte("exported"), object.TypeBlob)
	require.NoError(t, err)

	data, err := s.ExportBytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	tmp := filepath.Join(t.TempDir(), "imported.db")
	require.NoError(t, os.WriteFile(tmp, data, 0o644))

	reopened, err := Open(tmp)
	require.NoError(t, err)
	defer reopened.Close()

	rec, err := reopened.GetObject(put.Hash)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, []byte("exported"), rec.Data)
}
