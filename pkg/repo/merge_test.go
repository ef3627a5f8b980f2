// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antgroup/webdvcs/modules/merge"
	"github.com/antgroup/webdvcs/pkg/config"
)

func TestMergeFastForward(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()

	_, err := r.Add("a.txt", []byte("base"), nil)
	require.NoError(t, err)
	_, err = r.Commit("base", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.CreateBranch("feature", ""))
	require.NoError(t, r.SwitchBranch("feature"))
	_, err = r.Add("b.txt", []byte("new"), nil)
	require.NoError(t, err)
	_, err = r.Commit("feature commit", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.SwitchBranch("main"))
	result, err := r.Merge("feature", "A", "a@x", cfg)
	require.NoError(t, err)
	require.Equal(t, merge.FastForward, result.Type)

	data, err := r.GetFile("b.txt", "")
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestMergeThreeWay(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()

	_, err := r.Add("a.txt", []byte("base"), nil)
	require.NoError(t, err)
	_, err = r.Commit("base", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.CreateBranch("feature", ""))
	require.NoError(t, r.SwitchBranch("feature"))
	_, err = r.Add("b.txt", []byte("from feature"), nil)
	require.NoError(t, err)
	_, err = r.Commit("feature commit", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.SwitchBranch("main"))
	_, err = r.Add("c.txt", []byte("from main"), nil)
	require.NoError(t, err)
	_, err = r.Commit("main commit", "A", "a@x", cfg)
	require.NoError(t, err)

	result, err := r.Merge("feature", "A", "a@x", cfg)
	require.NoError(t, err)
	require.Equal(t, merge.ThreeWay, result.Type)

	dataB, err := r.GetFile("b.txt", "")
	require.NoError(t, err)
	require.Equal(t, "from feature", string(dataB))
	dataC, err := r.GetFile("c.txt", "")
	require.NoError(t, err)
	require.Equal(t, "from main", string(dataC))
}

func TestMergeConflict(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()

	_, err := r.Add("a.txt", []byte("base"), nil)
	require.NoError(t, err)
	_, err = r.Commit("base", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.CreateBranch("feature", ""))
	require.NoError(t, r.SwitchBranch("feature"))
	_, err = r.Add("a.txt", []byte("feature edit"), nil)
	require.NoError(t, err)
	_, err = r.Commit("feature commit", "A", "a@x", cfg)
	require.NoError(t, err)

	require.NoError(t, r.SwitchBranch("main"))
	_, err = r.Add("a.txt", []byte("main edit"), nil)
	require.NoError(t, err)
	mainCommit, err := r.Commit("main commit", "A", "a@x", cfg)
	require.NoError(t, err)

	result, err := r.Merge("feature", "A", "a@x", cfg)
	require.NoError(t, err)
	require.Equal(t, merge.ConflictRes, result.Type)
	require.NotEmpty(t, result.Conflicts)

	status, err := r.Status()
	require.NoError(t, err)
	require.Equal(t, mainCommit.CommitHash, status.Head)
}

func TestMergeMissingBranch(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("base"), nil)
	require.NoError(t, err)
	_, err = r.Commit("base", "A", "a@x", cfg)
	require.NoError(t, err)

	_, err = r.Merge("does-not-exist", "A", "a@x", cfg)
	require.Error(t, err)
}
