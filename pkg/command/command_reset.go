// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/antgroup/webdvcs/pkg/repo"
)

// Reset moves the current branch's ref and optionally clears staging
// (spec §4.6's reset()).
type Reset struct {
	Revision string `arg:"" optional:"" name:"commit" help:"Commit to reset the current branch to"`
	Soft     bool   `name:"soft" help:"Reset only the branch ref"`
	Mixed    bool   `name:"mixed" help:"Reset the branch ref and clear staging (default)"`
	Hard     bool   `name:"hard" help:"Reset the branch ref and discard staged changes"`
}

func (c *Reset) mode() repo.ResetMode {
	switch {
	case c.Soft:
		return repo.ResetSoft
	case c.Hard:
		return repo.ResetHard
	default:
		return repo.ResetMixed
	}
}

func (c *Reset) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("reset: %v", err)
		return err
	}
	defer r.Close() // nolint

	if err := r.Reset(c.mode(), c.Revision); err != nil {
		describeErr("reset", err)
		return err
	}
	fmt.Println("HEAD is now at", c.Revision)
	return nil
}
