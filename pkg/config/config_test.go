// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{
		Author: Author{Name: "Ada Lovelace", Email: "ada@example.com"},
		UI:     UI{Color: false, Progress: true},
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadFillsMissingAuthorFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, &Config{UI: UI{Color: true}}))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultAuthorName, got.Author.Name)
	require.Equal(t, DefaultAuthorEmail, got.Author.Email)
}
