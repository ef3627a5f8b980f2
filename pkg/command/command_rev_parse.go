// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import "fmt"

// RevParse resolves a ref — HEAD, HEAD~N, or a full hash — to its commit
// hash (spec §4.6's resolve_ref()).
type RevParse struct {
	Ref string `arg:"" name:"ref" help:"Ref to resolve" default:"HEAD"`
}

func (c *RevParse) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("rev-parse: %v", err)
		return err
	}
	defer r.Close() // nolint

	hash, err := r.ResolveRef(c.Ref)
	if err != nil {
		describeErr("rev-parse", err)
		return err
	}
	fmt.Println(hash)
	return nil
}
