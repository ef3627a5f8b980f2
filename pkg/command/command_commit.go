// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import "fmt"

// Commit records the current staging set as a new commit on the current
// branch (spec §4.6's commit()).
type Commit struct {
	Message []string `arg:"" name:"message" help:"Commit message"`
	Author  string   `name:"author" help:"Override the committer's name" placeholder:"<name>"`
	Email   string   `name:"email" help:"Override the committer's email" placeholder:"<email>"`
}

func (c *Commit) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("commit: %v", err)
		return err
	}
	defer r.Close() // nolint

	cfg, err := g.loadConfig()
	if err != nil {
		diev("commit: %v", err)
		return err
	}

	message := ""
	for i, part := range c.Message {
		if i > 0 {
			message += "\n\n"
		}
		message += part
	}

	result, err := r.Commit(message, c.Author, c.Email, cfg)
	if err != nil {
		describeErr("commit", err)
		return err
	}
	fmt.Printf("[%s] %s\n %s <%s>\n", result.Branch, result.CommitHash[:12], result.Author, result.Email)
	return nil
}
