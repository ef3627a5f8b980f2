// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"

	"github.com/antgroup/webdvcs/modules/transfer"
)

// Export ships one branch's commits unique relative to a set of other
// heads as a standalone database image (spec §4.8's differential
// export/import protocol).
type Export struct {
	Branch  string   `arg:"" name:"branch" help:"Branch to export"`
	Against []string `name:"against" help:"Exclude everything reachable from these branches/commits" placeholder:"<ref>"`
	Output  string   `arg:"" name:"output" help:"Path to write the export image to"`
}

func (c *Export) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("export: %v", err)
		return err
	}
	defer r.Close() // nolint

	against := make([]string, 0, len(c.Against))
	for _, ref := range c.Against {
		hash, err := r.ResolveRef(ref)
		if err != nil {
			describeErr("export", err)
			return err
		}
		against = append(against, hash)
	}

	image, err := transfer.Export(r.Store(), c.Branch, against)
	if err != nil {
		describeErr("export", err)
		return err
	}
	if err := os.WriteFile(c.Output, image, 0o644); err != nil {
		diev("export: %v", err)
		return err
	}
	fmt.Printf("exported branch %s to %s (%d bytes)\n", c.Branch, c.Output, len(image))
	return nil
}
