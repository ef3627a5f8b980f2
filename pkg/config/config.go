// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the CLI-facing defaults that spec §6 layers on top
// of the core: `author.name`/`author.email` fallbacks for commit, and
// display preferences for the command layer. It follows the teacher's
// modules/zeta/config package's TOML-via-BurntSushi/toml shape, narrowed
// to the handful of settings this engine actually has an opinion about.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultAuthorName and DefaultAuthorEmail are the fallback authorship
// values spec §6 specifies for commit() when neither the caller nor
// config supplies them.
const (
	DefaultAuthorName  = "Unknown"
	DefaultAuthorEmail = "unknown@example.com"
)

// Author holds the commit authorship defaults.
type Author struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// UI holds CLI display preferences.
type UI struct {
	Color    bool `toml:"color"`
	Progress bool `toml:"progress"`
}

// Config is the parsed form of a webdvcs config TOML file.
type Config struct {
	Author Author `toml:"author"`
	UI     UI     `toml:"ui"`
}

// Default returns a Config with spec-mandated authorship fallbacks and
// color/progress enabled, the sensible interactive-terminal defaults.
func Default() *Config {
	return &Config{
		Author: Author{Name: DefaultAuthorName, Email: DefaultAuthorEmail},
		UI:     UI{Color: true, Progress: true},
	}
}

// Load reads and decodes a TOML config file at path. A missing file is
// not an error: Load returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Author.Name == "" {
		cfg.Author.Name = DefaultAuthorName
	}
	if cfg.Author.Email == "" {
		cfg.Author.Email = DefaultAuthorEmail
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating or truncating the file.
func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
