// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"

	"github.com/antgroup/webdvcs/modules/object"
)

// HashObject computes the canonical hash a blob's bytes would get if
// staged, without touching the repository (spec §4.1's content-addressed
// naming, supplemented as a standalone introspection command).
type HashObject struct {
	Stdin bool   `name:"stdin" help:"Read content from stdin"`
	Path  string `name:"path" help:"Hash this file's content" placeholder:"<file>"`
}

func (c *HashObject) Run(g *Globals) error {
	var data []byte
	var err error
	switch {
	case c.Stdin:
		data, err = io.ReadAll(os.Stdin)
	case c.Path != "":
		data, err = os.ReadFile(c.Path)
	default:
		diev("hash-object: --stdin or --path required")
		return ErrArgRequired
	}
	if err != nil {
		diev("hash-object: %v", err)
		return err
	}
	fmt.Println(object.HashBytes(data))
	return nil
}
