// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import "fmt"

// Switch makes an existing branch current and clears staging (spec §4.6's
// switch_branch()).
type Switch struct {
	Name string `arg:"" name:"branch" help:"Branch to switch to"`
}

func (s *Switch) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("switch: %v", err)
		return err
	}
	defer r.Close() // nolint

	if err := r.SwitchBranch(s.Name); err != nil {
		describeErr("switch", err)
		return err
	}
	fmt.Printf("switched to branch '%s'\n", s.Name)
	return nil
}
