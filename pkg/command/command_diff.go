// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/antgroup/webdvcs/modules/diferenco"
	"github.com/antgroup/webdvcs/modules/diferenco/color"
	"github.com/antgroup/webdvcs/pkg/repo"
)

// Diff renders the per-file differences between two commits, or between
// HEAD and the current working overlay when To is omitted (spec §4.6's
// show_changes()).
type Diff struct {
	From     string `arg:"" optional:"" name:"from" help:"Commit to diff from" default:"HEAD"`
	To       string `arg:"" optional:"" name:"to" help:"Commit to diff to (defaults to the working overlay)"`
	NameOnly bool   `name:"name-only" help:"Show only the names of changed files"`
}

func (c *Diff) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("diff: %v", err)
		return err
	}
	defer r.Close() // nolint

	diffs, err := r.Diff(c.From, c.To)
	if err != nil {
		describeErr("diff", err)
		return err
	}

	cc := color.Plain()
	if g.colorize() {
		cc = color.Default()
	}

	for _, fd := range diffs {
		if c.NameOnly {
			fmt.Println(fd.File)
			continue
		}
		fmt.Printf("diff --webdvcs a/%s b/%s\n", fd.File, fd.File)
		switch fd.Type {
		case repo.Added:
			fmt.Printf("new file, hash %s\n", fd.HashB)
		case repo.Removed:
			fmt.Printf("deleted file, hash %s\n", fd.HashA)
		case repo.Modified:
			fmt.Printf("index %s..%s\n", fd.HashA[:12], fd.HashB[:12])
		}
		if fd.Binary {
			fmt.Println("Binary files differ")
			continue
		}
		if fd.Diff != nil {
			fmt.Print(renderUnified(fd, cc))
		}
	}
	return nil
}

func renderUnified(fd repo.FileDiff, cc color.Config) string {
	fromPath, toPath := "a/"+fd.File, "b/"+fd.File
	if fd.Type == repo.Added {
		fromPath = "/dev/null"
	}
	if fd.Type == repo.Removed {
		toPath = "/dev/null"
	}
	return diferenco.Unified(fd.Diff.Items, fromPath, toPath, cc)
}
