// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/antgroup/webdvcs/modules/merge"
)

// Merge joins targetBranch into the current branch (spec §4.7).
type Merge struct {
	Branch string `arg:"" name:"branch" help:"Branch to merge into the current branch"`
	Author string `name:"author" help:"Override the committer's name" placeholder:"<name>"`
	Email  string `name:"email" help:"Override the committer's email" placeholder:"<email>"`
}

func (c *Merge) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("merge: %v", err)
		return err
	}
	defer r.Close() // nolint

	cfg, err := g.loadConfig()
	if err != nil {
		diev("merge: %v", err)
		return err
	}

	result, err := r.Merge(c.Branch, c.Author, c.Email, cfg)
	if err != nil {
		describeErr("merge", err)
		return err
	}

	switch result.Type {
	case merge.UpToDate:
		fmt.Println("Already up to date.")
	case merge.FastForward:
		fmt.Printf("Fast-forward to %s\n", result.CommitHash[:12])
	case merge.ThreeWay:
		fmt.Printf("Merge made by the three-way strategy, commit %s\n", result.CommitHash[:12])
	case merge.ConflictRes:
		fmt.Println("Automatic merge failed; fix conflicts and commit the result.")
		for _, conflict := range result.Conflicts {
			fmt.Printf("CONFLICT (%s): %s\n", conflict.Type, conflict.Path)
		}
	}
	return nil
}
