// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package refs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/odb"
)

func openTestStore(t *testing.T) *odb.Store {
	t.Helper()
	s, err := odb.Open(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func commitChain(t *testing.T, store *odb.Store, n int) []string {
	t.Helper()
	var hashes []string
	var parent object.Hash
	for i := 0; i < n; i++ {
		tree := object.NewTree(nil)
		_, err := store.PutObject(tree.Encode(), object.TypeTree)
		require.NoError(t, err)
		var parents []object.Hash
		if parent != "" {
			parents = []object.Hash{parent}
		}
		c := object.NewCommit(tree.Hash, parents, "A", "a@x.com", int64(i), "msg")
		_, err = store.PutObject(c.Encode(), object.TypeCommit)
		require.NoError(t, err)
		hashes = append(hashes, c.Hash)
		parent = c.Hash
	}
	return hashes
}

func TestCurrentBranchDefaultsToMain(t *testing.T) {
	s := openTestStore(t)
	branch, err := CurrentBranch(s)
	require.NoError(t, err)
	require.Equal(t, DefaultBranch, branch)
}

func TestResolveHeadEmptyRepo(t *testing.T) {
	s := openTestStore(t)
	hash, err := Resolve(s, "HEAD")
	require.NoError(t, err)
	require.Empty(t, hash)
}

func TestResolveHeadAndTilde(t *testing.T) {
	s := openTestStore(t)
	hashes := commitChain(t, s, 3)
	require.NoError(t, s.SetRef(BranchRefName(DefaultBranch), hashes[2], odb.RefBranch))

	head, err := Resolve(s, "HEAD")
	require.NoError(t, err)
	require.Equal(t, hashes[2], head)

	one, err := Resolve(s, "HEAD~1")
	require.NoError(t, err)
	require.Equal(t, hashes[1], one)

	two, err := Resolve(s, "HEAD~2")
	require.NoError(t, err)
	require.Equal(t, hashes[0], two)
}

func TestResolveHashPassthrough(t *testing.T) {
	s := openTestStore(t)
	hash := strings.Repeat("a", 64)
	resolved, err := Resolve(s, hash)
	require.NoError(t, err)
	require.Equal(t, hash, resolved)
}

func TestResolveInvalidRef(t *testing.T) {
	s := openTestStore(t)
	_, err := Resolve(s, "not-a-ref")
	require.Error(t, err)
}

func TestResolveTildeTooFar(t *testing.T) {
	s := openTestStore(t)
	hashes := commitChain(t, s, 1)
	require.NoError(t, s.SetRef(BranchRefName(DefaultBranch), hashes[0], odb.RefBranch))
	_, err := Resolve(s, "HEAD~5")
	require.Error(t, err)
}
