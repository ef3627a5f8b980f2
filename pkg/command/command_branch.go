// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import "fmt"

// Branch lists, creates, or deletes branches (spec §4.6's create_branch /
// delete_branch / list_branches).
type Branch struct {
	Create string `name:"create" short:"c" help:"Create a new branch" placeholder:"<name>"`
	From   string `name:"from" help:"Commit the new branch starts from" default:"HEAD" placeholder:"<rev>"`
	Delete string `name:"delete" short:"d" help:"Delete a branch" placeholder:"<name>"`
	GC     bool   `name:"gc" help:"Run garbage collection after deleting a branch"`
}

func (b *Branch) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("branch: %v", err)
		return err
	}
	defer r.Close() // nolint

	switch {
	case b.Create != "":
		if err := r.CreateBranch(b.Create, b.From); err != nil {
			describeErr("branch", err)
			return err
		}
		fmt.Printf("created branch %s from %s\n", b.Create, b.From)
		return nil
	case b.Delete != "":
		if err := r.DeleteBranch(b.Delete, b.GC); err != nil {
			describeErr("branch", err)
			return err
		}
		fmt.Printf("deleted branch %s\n", b.Delete)
		return nil
	}

	branches, err := r.ListBranches()
	if err != nil {
		describeErr("branch", err)
		return err
	}
	for _, br := range branches {
		fmt.Printf("  %-30s %s\n", br.Name, br.Head)
	}
	return nil
}
