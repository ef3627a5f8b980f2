// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/refs"
)

func openTestStore(t *testing.T) *odb.Store {
	t.Helper()
	s, err := odb.Open(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func commitWithFile(t *testing.T, store *odb.Store, path, content string, parent object.Hash) object.Hash {
	t.Helper()
	blob, err := store.PutObject([]byte(content), object.TypeBlob)
	require.NoError(t, err)
	tree := object.NewTree([]object.TreeEntry{{Name: path, Type: object.EntryFile, Hash: blob.Hash, Size: uint64(len(content))}})
	_, err = store.PutObject(tree.Encode(), object.TypeTree)
	require.NoError(t, err)
	var parents []object.Hash
	if parent != "" {
		parents = []object.Hash{parent}
	}
	c := object.NewCommit(tree.Hash, parents, "A", "a@x.com", 1, "m")
	_, err = store.PutObject(c.Encode(), object.TypeCommit)
	require.NoError(t, err)
	return c.Hash
}

func TestExportImportRoundTrip(t *testing.T) {
	source := openTestStore(t)
	main := commitWithFile(t, source, "main.txt", "main content", "")
	require.NoError(t, source.SetRef(refs.BranchRefName("main"), main, odb.RefBranch))

	feature := commitWithFile(t, source, "feature.txt", "feature content", main)
	require.NoError(t, source.SetRef(refs.BranchRefName("feature"), feature, odb.RefBranch))

	image, err := Export(source, "feature", []string{main})
	require.NoError(t, err)
	require.NotEmpty(t, image)

	dest := openTestStore(t)
	result, err := Import(dest, image, Fail)
	require.NoError(t, err)
	require.Equal(t, "feature", result.Branch)
	require.True(t, result.ObjectsImported > 0)
	require.Equal(t, 0, result.ObjectsSkipped)

	ref, err := dest.GetRef(refs.BranchRefName("feature"))
	require.NoError(t, err)
	require.NotNil(t, ref)
	require.Equal(t, feature, ref.Hash)

	// Re-importing is idempotent: nothing new, and a same-name branch
	// without Overwrite fails.
	_, err = Import(dest, image, Fail)
	require.Error(t, err)

	result2, err := Import(dest, image, Overwrite)
	require.NoError(t, err)
	require.Equal(t, 0, result2.ObjectsImported)
}

func TestExportEmptyBails(t *testing.T) {
	source := openTestStore(t)
	main := commitWithFile(t, source, "main.txt", "content", "")
	require.NoError(t, source.SetRef(refs.BranchRefName("main"), main, odb.RefBranch))

	_, err := Export(source, "main", []string{main})
	require.Error(t, err)
}
