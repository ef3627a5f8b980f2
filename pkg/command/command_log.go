// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"time"
)

// Log walks first-parent history from a revision, optionally filtered to
// commits that touched one path (spec §4.6's supplemented history walk).
type Log struct {
	Revision string `arg:"" optional:"" name:"revision" help:"Revision to start from" default:"HEAD"`
	Limit    int    `name:"limit" short:"n" help:"Maximum number of commits to show (0 means unbounded)"`
	Path     string `name:"path" help:"Only show commits that changed this path" placeholder:"<path>"`
}

func (c *Log) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("log: %v", err)
		return err
	}
	defer r.Close() // nolint

	entries, err := r.Log(c.Revision, c.Limit, c.Path)
	if err != nil {
		describeErr("log", err)
		return err
	}
	for _, e := range entries {
		fmt.Printf("commit %s\n", e.Hash)
		fmt.Printf("Author: %s <%s>\n", e.Author, e.Email)
		fmt.Printf("Date:   %s\n\n", time.Unix(e.Timestamp, 0).Format(time.RFC1123Z))
		fmt.Printf("    %s\n\n", e.Message)
	}
	return nil
}
