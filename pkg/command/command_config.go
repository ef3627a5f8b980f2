// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/antgroup/webdvcs/pkg/config"
)

// Config gets or sets the CLI config file's author/UI settings (spec §6's
// config layer): `webdvcs config author.name Jane`, or with no value,
// `webdvcs config author.name` to print the current one.
type Config struct {
	List bool     `name:"list" short:"l" help:"List all config keys and values"`
	Args []string `arg:"" optional:"" name:"args" help:"<key> or <key> <value>"`
}

func configGet(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "author.name":
		return cfg.Author.Name, true
	case "author.email":
		return cfg.Author.Email, true
	case "ui.color":
		return fmt.Sprintf("%t", cfg.UI.Color), true
	case "ui.progress":
		return fmt.Sprintf("%t", cfg.UI.Progress), true
	default:
		return "", false
	}
}

func configSet(cfg *config.Config, key, value string) bool {
	switch key {
	case "author.name":
		cfg.Author.Name = value
	case "author.email":
		cfg.Author.Email = value
	case "ui.color":
		cfg.UI.Color = value == "true"
	case "ui.progress":
		cfg.UI.Progress = value == "true"
	default:
		return false
	}
	return true
}

func (c *Config) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		diev("config: %v", err)
		return err
	}

	if c.List {
		fmt.Printf("author.name=%s\n", cfg.Author.Name)
		fmt.Printf("author.email=%s\n", cfg.Author.Email)
		fmt.Printf("ui.color=%t\n", cfg.UI.Color)
		fmt.Printf("ui.progress=%t\n", cfg.UI.Progress)
		return nil
	}

	if len(c.Args) == 0 {
		diev("config: key required")
		return ErrArgRequired
	}
	key := c.Args[0]
	if len(c.Args) == 1 {
		value, ok := configGet(cfg, key)
		if !ok {
			diev("config: unknown key %q", key)
			return ErrArgRequired
		}
		fmt.Println(value)
		return nil
	}

	value := strings.Join(c.Args[1:], " ")
	if !configSet(cfg, key, value) {
		diev("config: unknown key %q", key)
		return ErrArgRequired
	}
	if err := saveConfig(g.ConfigPath, cfg); err != nil {
		diev("config: %v", err)
		return err
	}
	return nil
}
