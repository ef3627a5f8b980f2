// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"

	"github.com/antgroup/webdvcs/modules/transfer"
)

// Import applies an export image produced by Export, failing on an
// existing branch unless Overwrite is set (spec §4.8).
type Import struct {
	Input     string `arg:"" name:"input" help:"Path to an export image"`
	Overwrite bool   `name:"overwrite" help:"Repoint an existing branch instead of failing"`
}

func (c *Import) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("import: %v", err)
		return err
	}
	defer r.Close() // nolint

	image, err := os.ReadFile(c.Input)
	if err != nil {
		diev("import: %v", err)
		return err
	}

	policy := transfer.Fail
	if c.Overwrite {
		policy = transfer.Overwrite
	}

	result, err := transfer.Import(r.Store(), image, policy)
	if err != nil {
		describeErr("import", err)
		return err
	}
	fmt.Printf("imported branch %s: %d object(s) imported, %d skipped (differential=%t)\n",
		result.Branch, result.ObjectsImported, result.ObjectsSkipped, result.Differential)
	return nil
}
