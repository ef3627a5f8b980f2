// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/antgroup/webdvcs/pkg/repo"
)

// GC deletes every object unreachable from any branch ref (spec §4.6,
// §4.9's object-graph invariant).
type GC struct {
	Quiet bool `name:"quiet" short:"q" help:"Do not report progress"`
}

func (c *GC) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("gc: %v", err)
		return err
	}
	defer r.Close() // nolint

	result, err := r.GarbageCollect(&repo.GCOptions{Quiet: c.Quiet})
	if err != nil {
		describeErr("gc", err)
		return err
	}
	if !c.Quiet {
		fmt.Printf("%d objects, %d reachable, %d deleted (%dms)\n",
			result.TotalObjects, result.Reachable, result.Deleted, result.DurationMS)
	}
	return nil
}
