// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"github.com/antgroup/webdvcs/modules/refs"
)

// LogEntry is one commit returned by Log.
type LogEntry struct {
	Hash      string
	Tree      string
	Parents   []string
	Author    string
	Email     string
	Timestamp int64
	Message   string
}

// Log walks first-parent history from ref, stopping after limit commits
// (limit <= 0 means unbounded). When path is non-empty, only commits that
// changed path are returned — supplemented from the teacher's
// commit_walker_limit.go/commit_walker_path.go pair, since S1's
// `log(10).length == 1` requires some form of history walk that spec.md's
// component table never spells out as its own operation.
func (r *Repository) Log(ref string, limit int, path string) ([]LogEntry, error) {
	path = trimTrailingSlash(path)

	head, err := refs.Resolve(r.store, ref)
	if err != nil {
		return nil, err
	}

	var out []LogEntry
	current := head
	for current != "" {
		if limit > 0 && len(out) >= limit {
			break
		}
		commit, err := r.loadCommit(current)
		if err != nil {
			return nil, err
		}
		include := true
		if path != "" {
			tree, err := r.loadTree(current)
			if err != nil {
				return nil, err
			}
			entry, ok := tree[path]
			parentTree, err := r.loadTree(commit.Parent())
			if err != nil {
				return nil, err
			}
			parentEntry, parentOK := parentTree[path]
			include = ok != parentOK || (ok && parentOK && entry.Hash != parentEntry.Hash)
		}
		if include {
			out = append(out, LogEntry{
				Hash:      commit.Hash,
				Tree:      commit.Tree,
				Parents:   commit.Parents,
				Author:    commit.Author,
				Email:     commit.Email,
				Timestamp: commit.Timestamp,
				Message:   commit.Message,
			})
		}
		current = commit.Parent()
	}
	return out, nil
}
