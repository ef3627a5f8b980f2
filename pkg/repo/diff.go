// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"sort"

	"github.com/antgroup/webdvcs/modules/diferenco"
	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/refs"
)

// ChangeType names the kind of change one diff entry represents.
type ChangeType string

const (
	Added    ChangeType = "added"
	Removed  ChangeType = "removed"
	Modified ChangeType = "modified"
)

// FileDiff is one changed path between two trees (spec §4.6).
type FileDiff struct {
	File   string
	Type   ChangeType
	HashA  string // "" when Type == Added
	HashB  string // "" when Type == Removed
	Diff   *diferenco.Result
	Binary bool
}

// Diff compares two commit trees and reports per-file changes. An empty
// toCommit compares fromCommit's tree against this repository's current
// working overlay (HEAD plus staging minus removals) — the core's
// equivalent of `show_changes()`.
func (r *Repository) Diff(fromCommit, toCommit string) ([]FileDiff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fromHash, err := refs.Resolve(r.store, fromCommit)
	if err != nil {
		return nil, err
	}
	treeA, err := r.loadTree(fromHash)
	if err != nil {
		return nil, err
	}

	var treeB map[string]object.TreeEntry
	if toCommit == "" {
		entries := r.nextTree(treeA)
		treeB = make(map[string]object.TreeEntry, len(entries))
		for _, e := range entries {
			treeB[e.Name] = e
		}
	} else {
		toHash, err := refs.Resolve(r.store, toCommit)
		if err != nil {
			return nil, err
		}
		treeB, err = r.loadTree(toHash)
		if err != nil {
			return nil, err
		}
	}

	return r.diffTrees(treeA, treeB)
}

// ShowChanges diffs HEAD against the current working overlay, the
// shorthand spec §4.6 calls `show_changes()`.
func (r *Repository) ShowChanges() ([]FileDiff, error) {
	return r.Diff("HEAD", "")
}

func (r *Repository) diffTrees(a, b map[string]object.TreeEntry) ([]FileDiff, error) {
	names := make(map[string]bool, len(a)+len(b))
	for n := range a {
		names[n] = true
	}
	for n := range b {
		names[n] = true
	}
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	var out []FileDiff
	for _, name := range sorted {
		ea, inA := a[name]
		eb, inB := b[name]
		switch {
		case !inA && inB:
			out = append(out, FileDiff{File: name, Type: Added, HashB: eb.Hash, Binary: eb.Binary})
		case inA && !inB:
			out = append(out, FileDiff{File: name, Type: Removed, HashA: ea.Hash, Binary: ea.Binary})
		case inA && inB && ea.Hash != eb.Hash:
			fd := FileDiff{File: name, Type: Modified, HashA: ea.Hash, HashB: eb.Hash, Binary: ea.Binary || eb.Binary}
			if !fd.Binary {
				dataA, err := r.readBlob(ea.Hash)
				if err != nil {
					return nil, err
				}
				dataB, err := r.readBlob(eb.Hash)
				if err != nil {
					return nil, err
				}
				fd.Diff = diferenco.Lines(dataA, dataB)
			}
			out = append(out, fd)
		}
	}
	return out, nil
}
