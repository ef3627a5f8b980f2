// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import "fmt"

// Remove stages paths for removal from the next commit (spec §4.6's
// rm(paths)).
type Remove struct {
	Paths []string `arg:"" name:"path" help:"Paths to remove"`
}

func (c *Remove) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("rm: %v", err)
		return err
	}
	defer r.Close() // nolint

	count, err := r.Rm(c.Paths)
	if err != nil {
		describeErr("rm", err)
		return err
	}
	fmt.Printf("removed %d file(s)\n", count)
	return nil
}
