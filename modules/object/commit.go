// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Commit is one node of the commit DAG: a tree snapshot, zero or more
// parents, and authorship (spec §3). This engine records a single parent
// per spec §4.7's merge contract and §9's Open Question resolution —
// reachability from refs, not parent-list shape, is what the core
// guarantees.
type Commit struct {
	Hash      Hash
	Tree      Hash
	Parents   []Hash
	Author    string
	Email     string
	Timestamp int64
	Message   string
}

// NewCommit computes the canonical hash of a commit and returns it.
func NewCommit(tree Hash, parents []Hash, author, email string, timestamp int64, message string) *Commit {
	c := &Commit{
		Tree:      tree,
		Parents:   parents,
		Author:    author,
		Email:     email,
		Timestamp: timestamp,
		Message:   message,
	}
	c.Hash = HashBytes(c.Encode())
	return c
}

// Parent returns the first parent, or "" for a root commit.
func (c *Commit) Parent() Hash {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// Encode renders the commit as header lines (tree, parent*, author),
// a blank line, then the raw message — spec §4.5's commit format.
func (c *Commit) Encode() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "tree %s\n", c.Tree)
	for _, p := range c.Parents {
		fmt.Fprintf(&b, "parent %s\n", p)
	}
	fmt.Fprintf(&b, "author %s %s %d\n", c.Author, c.Email, c.Timestamp)
	b.WriteByte('\n')
	b.WriteString(c.Message)
	return []byte(b.String())
}

// DecodeCommit parses canonical commit bytes produced by Encode.
func DecodeCommit(data []byte) (*Commit, error) {
	text := string(data)
	headerEnd := strings.Index(text, "\n\n")
	if headerEnd < 0 {
		return nil, fmt.Errorf("object: commit missing header/message separator")
	}
	header := text[:headerEnd]
	message := text[headerEnd+2:]

	c := &Commit{Message: message}
	for _, line := range strings.Split(header, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "tree "):
			c.Tree = strings.TrimPrefix(line, "tree ")
		case strings.HasPrefix(line, "parent "):
			c.Parents = append(c.Parents, strings.TrimPrefix(line, "parent "))
		case strings.HasPrefix(line, "author "):
			fields := strings.Fields(strings.TrimPrefix(line, "author "))
			if len(fields) < 3 {
				return nil, fmt.Errorf("object: malformed author line %q", line)
			}
			ts, err := strconv.ParseInt(fields[len(fields)-1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("object: malformed author timestamp: %w", err)
			}
			c.Email = fields[len(fields)-2]
			c.Author = strings.Join(fields[:len(fields)-2], " ")
			c.Timestamp = ts
		default:
			return nil, fmt.Errorf("object: unknown commit header line %q", line)
		}
	}
	if c.Tree == "" {
		return nil, fmt.Errorf("object: commit missing tree")
	}
	c.Hash = HashBytes(data)
	return c, nil
}
