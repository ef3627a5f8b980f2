// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antgroup/webdvcs/pkg/config"
)

func TestLogPathFilter(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()

	_, err := r.Add("a.txt", []byte("v1"), nil)
	require.NoError(t, err)
	_, err = r.Commit("add a", "A", "a@x", cfg)
	require.NoError(t, err)

	_, err = r.Add("b.txt", []byte("v1"), nil)
	require.NoError(t, err)
	_, err = r.Commit("add b", "A", "a@x", cfg)
	require.NoError(t, err)

	_, err = r.Add("a.txt", []byte("v2"), nil)
	require.NoError(t, err)
	_, err = r.Commit("change a", "A", "a@x", cfg)
	require.NoError(t, err)

	full, err := r.Log("HEAD", 0, "")
	require.NoError(t, err)
	require.Len(t, full, 3)

	filtered, err := r.Log("HEAD", 0, "a.txt")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	require.Equal(t, "change a", filtered[0].Message)
	require.Equal(t, "add a", filtered[1].Message)
}

func TestLogLimit(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	for i := 0; i < 3; i++ {
		_, err := r.Add("a.txt", []byte{byte(i)}, nil)
		require.NoError(t, err)
		_, err = r.Commit("commit", "A", "a@x", cfg)
		require.NoError(t, err)
	}
	entries, err := r.Log("HEAD", 2, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestShowAndCatFile(t *testing.T) {
	r := openTestRepo(t)
	cfg := config.Default()
	_, err := r.Add("a.txt", []byte("hello"), nil)
	require.NoError(t, err)
	result, err := r.Commit("m", "A", "a@x", cfg)
	require.NoError(t, err)

	show, err := r.Show(result.CommitHash)
	require.NoError(t, err)
	require.Equal(t, "commit", show.Type)
	require.NotNil(t, show.Commit)

	data, typ, err := r.CatFile(result.CommitHash)
	require.NoError(t, err)
	require.Equal(t, "commit", typ)
	require.NotEmpty(t, data)
}

func TestShowMissingObject(t *testing.T) {
	r := openTestRepo(t)
	_, err := r.Show("deadbeef")
	require.Error(t, err)
}
