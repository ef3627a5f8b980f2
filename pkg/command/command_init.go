// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"

	"github.com/antgroup/webdvcs/pkg/repo"
)

// Init creates a new repository database file (spec §4.6's init_repo).
type Init struct{}

func (c *Init) Run(g *Globals) error {
	if _, err := os.Stat(g.Path); err == nil {
		diev("'%s' already exists", g.Path)
		return ErrFlagsIncompatible
	}
	r, err := repo.Init(g.Path)
	if err != nil {
		diev("init: %v", err)
		return err
	}
	defer r.Close() // nolint
	r.SetDebug(g.Verbose)
	fmt.Printf("Initialized empty webdvcs repository in %s\n", g.Path)
	return nil
}
