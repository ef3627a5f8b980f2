// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"
	"path/filepath"
)

// Checkout restores a commit's tree (or one path within it) into staging,
// optionally writing the restored bytes to disk (spec §4.6's checkout()).
// The core never touches a filesystem itself (spec §1's Non-goals); Write
// is what lets this command materialize the result.
type Checkout struct {
	Ref   string `arg:"" name:"revision" help:"Commit or ref to check out" default:"HEAD"`
	Path  string `name:"path" help:"Restore only this path" placeholder:"<path>"`
	Write bool   `name:"write" short:"w" help:"Write restored files to the working directory"`
}

func (c *Checkout) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("checkout: %v", err)
		return err
	}
	defer r.Close() // nolint

	result, err := r.Checkout(c.Ref, c.Path, c.Write)
	if err != nil {
		describeErr("checkout", err)
		return err
	}

	for name, data := range result.Files {
		if c.Write {
			if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
				diev("checkout: %v", err)
				return err
			}
			if err := os.WriteFile(name, data, 0o644); err != nil {
				diev("checkout: %v", err)
				return err
			}
		}
		g.DbgPrint("restored %s", name)
	}
	fmt.Printf("checked out %d file(s) from %s\n", len(result.Files), c.Ref)
	return nil
}
