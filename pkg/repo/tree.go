// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// loadTree resolves a commit hash to a name-keyed map of its tree entries.
// An empty commitHash (an unborn branch) is treated as an empty tree.
func (r *Repository) loadTree(commitHash string) (map[string]object.TreeEntry, error) {
	if commitHash == "" {
		return map[string]object.TreeEntry{}, nil
	}
	commit, err := r.loadCommit(commitHash)
	if err != nil {
		return nil, err
	}
	treeRec, err := r.store.GetObject(commit.Tree)
	if err != nil {
		return nil, err
	}
	if treeRec == nil {
		return nil, vcserr.New(vcserr.IntegrityError, "tree %s for commit %s not found", commit.Tree, commitHash)
	}
	tree, err := object.DecodeTree(treeRec.Data)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.IntegrityError, err, "decode tree %s", commit.Tree)
	}
	out := make(map[string]object.TreeEntry, len(tree.Entries))
	for _, e := range tree.Entries {
		out[e.Name] = e
	}
	return out, nil
}

func (r *Repository) loadCommit(hash string) (*object.Commit, error) {
	rec, err := r.store.GetObject(hash)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, vcserr.New(vcserr.NotFound, "commit %s not found", hash)
	}
	c, err := object.DecodeCommit(rec.Data)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.IntegrityError, err, "decode commit %s", hash)
	}
	return c, nil
}

// nextTree computes `(HEAD_tree \ removed \ staged) ∪ staged`, the
// tree-algebra invariant of spec §3, given a base tree (typically the
// current HEAD's) and this repository's in-memory staging/removal sets.
func (r *Repository) nextTree(base map[string]object.TreeEntry) []object.TreeEntry {
	next := make(map[string]object.TreeEntry, len(base))
	for name, e := range base {
		if r.removed[name] {
			continue
		}
		if _, staged := r.staged[name]; staged {
			continue
		}
		next[name] = e
	}
	for name, e := range r.staged {
		next[name] = object.TreeEntry{
			Name:   name,
			Type:   object.EntryFile,
			Hash:   e.Hash,
			Mode:   0o100644,
			Size:   uint64(e.Size),
			Binary: e.Binary,
		}
	}
	entries := make([]object.TreeEntry, 0, len(next))
	for _, e := range next {
		entries = append(entries, e)
	}
	return entries
}
