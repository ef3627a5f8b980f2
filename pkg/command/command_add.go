// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"
)

// Add stages one or more files' current on-disk contents (spec §4.6's
// stage(path, data)). The core never reads a filesystem itself (spec §1's
// Non-goals); the command layer is what resolves paths to bytes before
// handing them to the repository controller.
type Add struct {
	Paths []string `arg:"" name:"path" help:"Files to stage"`
}

func (c *Add) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("add: %v", err)
		return err
	}
	defer r.Close() // nolint

	for _, path := range c.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			diev("add: %v", err)
			return err
		}
		result, err := r.Add(path, data, nil)
		if err != nil {
			describeErr("add", err)
			return err
		}
		g.DbgPrint("staged %s (%s)", result.Path, result.Hash[:12])
	}
	fmt.Printf("staged %d file(s)\n", len(c.Paths))
	return nil
}
