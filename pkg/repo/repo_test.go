// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antgroup/webdvcs/pkg/config"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := Init(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// S1 — Stage, commit, retrieve.
func TestStageCommitRetrieve(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()

	_, err := r.Add("a.txt", []byte("hello\n"), nil)
	require.NoError(t, err)

	result, err := r.Commit("m", "A", "a@x", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, result.CommitHash)

	data, err := r.GetFile("a.txt", "")
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(data))

	entries, err := r.Log("HEAD", 10, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	status, err := r.Status()
	require.NoError(t, err)
	require.Equal(t, "main", status.CurrentBranch)
	require.Empty(t, status.Staged)
}

func TestCommitEmptyStagingFails(t *testing.T) {
	r := openTestRepo(t)
	_, err := r.Commit("m", "A", "a@x", config.Default())
	require.Error(t, err)
}

// S3 — Branching.
func TestBranching(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()

	_, err := r.Add("a.txt", []byte("hello\n"), nil)
	require.NoError(t, err)
	_, err = r.Commit("m", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.CreateBranch("feature", ""))
	require.NoError(t, r.SwitchBranch("feature"))

	_, err = r.Add("b.txt", []byte("hi"), nil)
	require.NoError(t, err)
	_, err = r.Commit("m2", "A", "a@x", cfg)
	require.NoError(t, err)

	branches, err := r.ListBranches()
	require.NoError(t, err)
	names := map[string]string{}
	for _, b := range branches {
		names[b.Name] = b.Head
	}
	require.Contains(t, names, "main")
	require.Contains(t, names, "feature")
	require.NotEqual(t, names["main"], names["feature"])

	require.NoError(t, r.SwitchBranch("main"))
	_, err = r.GetFile("b.txt", "")
	require.Error(t, err)
}

func TestUnstage(t *testing.T) {
	r := openTestRepo(t)
	_, err := r.Add("a.txt", []byte("x"), nil)
	require.NoError(t, err)

	action, err := r.Unstage("a.txt")
	require.NoError(t, err)
	require.Equal(t, Unstaged, action)

	action, err = r.Unstage("a.txt")
	require.NoError(t, err)
	require.Equal(t, NotFound, action)
}

func TestRmAndUnremove(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("x"), nil)
	require.NoError(t, err)
	_, err = r.Commit("m", "A", "a@x", cfg)
	require.NoError(t, err)

	n, err := r.Rm([]string{"a.txt"})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	action, err := r.Unstage("a.txt")
	require.NoError(t, err)
	require.Equal(t, Unremoved, action)
}

func TestResetModes(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("x"), nil)
	require.NoError(t, err)
	first, err := r.Commit("m1", "A", "a@x", cfg)
	require.NoError(t, err)

	_, err = r.Add("b.txt", []byte("y"), nil)
	require.NoError(t, err)
	_, err = r.Commit("m2", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.Reset(ResetSoft, first.CommitHash))
	status, err := r.Status()
	require.NoError(t, err)
	require.Equal(t, first.CommitHash, status.Head)
}

func TestCheckoutPopulatesStaging(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("one"), nil)
	require.NoError(t, err)
	first, err := r.Commit("m1", "A", "a@x", cfg)
	require.NoError(t, err)

	result, err := r.Checkout(first.CommitHash, "", false)
	require.NoError(t, err)
	require.Equal(t, []byte("one"), result.Files["a.txt"])

	status, err := r.Status()
	require.NoError(t, err)
	require.Contains(t, status.Staged, "a.txt")
}

func TestDiffAddedRemovedModified(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("one\ntwo\n"), nil)
	require.NoError(t, err)
	_, err = r.Add("c.txt", []byte("gone"), nil)
	require.NoError(t, err)
	first, err := r.Commit("m1", "A", "a@x", cfg)
	require.NoError(t, err)

	_, err = r.Add("a.txt", []byte("one\nTWO\n"), nil)
	require.NoError(t, err)
	_, err = r.Add("b.txt", []byte("new"), nil)
	require.NoError(t, err)
	_, err = r.Rm([]string{"c.txt"})
	require.NoError(t, err)
	second, err := r.Commit("m2", "A", "a@x", cfg)
	require.NoError(t, err)

	diffs, err := r.Diff(first.CommitHash, second.CommitHash)
	require.NoError(t, err)
	byFile := map[string]FileDiff{}
	for _, d := range diffs {
		byFile[d.File] = d
	}
	require.Equal(t, Modified, byFile["a.txt"].Type)
	require.Equal(t, Added, byFile["b.txt"].Type)
	require.Equal(t, Removed, byFile["c.txt"].Type)
}

func TestGarbageCollect(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("x"), nil)
	require.NoError(t, err)
	_, err = r.Commit("m", "A", "a@x", cfg)
	require.NoError(t, err)

	result, err := r.GarbageCollect(nil)
	require.NoError(t, err)
	require.Equal(t, result.TotalObjects, result.Reachable)
	require.Equal(t, 0, result.Deleted)
}

func TestStatsAndSizeSummary(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("hello world"), nil)
	require.NoError(t, err)
	_, err = r.Commit("m", "A", "a@x", cfg)
	require.NoError(t, err)

	stats, err := r.Stats()
	require.NoError(t, err)
	require.True(t, stats.ObjectCount > 0)

	summary, err := r.SizeSummary()
	require.NoError(t, err)
	require.NotEmpty(t, summary.Headline)
}

func TestDeleteBranchRefusesCurrent(t *testing.T) {
	r := openTestRepo(t)
	err := r.DeleteBranch("main", false)
	require.Error(t, err)
}

func TestCreateBranchRequiresCommit(t *testing.T) {
	r := openTestRepo(t)
	err := r.CreateBranch("feature", "")
	require.Error(t, err)
}
