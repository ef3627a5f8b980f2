// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"
	"time"

	"github.com/antgroup/webdvcs/modules/object"
)

// Show pretty-prints a stored object by hash — a blob's size, a tree's
// entries, or a commit's metadata (spec §4.6's supplemented introspection
// surface). Raw dumps the object's reconstructed bytes verbatim instead,
// the equivalent of `cat-file -p`.
type Show struct {
	Hash string `arg:"" name:"object" help:"Object hash to show"`
	Raw  bool   `name:"raw" help:"Print the object's raw bytes instead of a summary"`
}

func (c *Show) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("show: %v", err)
		return err
	}
	defer r.Close() // nolint

	if c.Raw {
		data, _, err := r.CatFile(c.Hash)
		if err != nil {
			describeErr("show", err)
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	result, err := r.Show(c.Hash)
	if err != nil {
		describeErr("show", err)
		return err
	}
	fmt.Printf("object %s\ntype %s\n", result.Hash, result.Type)
	switch {
	case result.Blob != nil:
		fmt.Printf("size %d\n", len(result.Blob.Data))
	case result.Tree != nil:
		for _, e := range result.Tree.Entries {
			kind := "blob"
			if e.Type == object.EntryTree {
				kind = "tree"
			}
			fmt.Printf("%06o %s %s\t%s\n", e.Mode, kind, e.Hash, e.Name)
		}
	case result.Commit != nil:
		fmt.Printf("tree %s\n", result.Commit.Tree)
		for _, p := range result.Commit.Parents {
			fmt.Printf("parent %s\n", p)
		}
		fmt.Printf("author %s <%s> %s\n\n%s\n", result.Commit.Author, result.Commit.Email,
			time.Unix(result.Commit.Timestamp, 0).Format(time.RFC1123Z), result.Commit.Message)
	}
	return nil
}
