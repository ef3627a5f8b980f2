// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// ResultType names the outcome of Merge.
type ResultType string

const (
	UpToDate    ResultType = "up_to_date"
	FastForward ResultType = "fast_forward"
	ThreeWay    ResultType = "three_way"
	ConflictRes ResultType = "conflict"
)

// Result is returned by Merge.
type Result struct {
	Type       ResultType
	CommitHash string // valid for FastForward and ThreeWay
	Conflicts  []FileConflict
}

// Merge runs spec §4.7's algorithm: trivial up-to-date/fast-forward
// checks, merge-base discovery, then a three-way merge over the union of
// file names across (base, current, target). On ThreeWay it writes the
// merged tree and a merge commit with a single parent (current), per
// this repository's Open Question resolution — merge-base and target are
// recoverable by walking history, not by a second parent pointer.
func Merge(store *odb.Store, current, target string, author, email string, timestamp int64, message string) (*Result, error) {
	if current == target {
		return &Result{Type: UpToDate}, nil
	}
	if current == "" {
		return &Result{Type: FastForward, CommitHash: target}, nil
	}

	base, err := Base(store, current, target)
	if err != nil {
		return nil, err
	}
	if base == current {
		return &Result{Type: FastForward, CommitHash: target}, nil
	}
	if base == target {
		return &Result{Type: UpToDate}, nil
	}

	treeO, err := treeOf(store, base)
	if err != nil {
		return nil, err
	}
	treeA, err := treeOf(store, current)
	if err != nil {
		return nil, err
	}
	treeB, err := treeOf(store, target)
	if err != nil {
		return nil, err
	}

	names := unionNames(treeO, treeA, treeB)
	var entries []object.TreeEntry
	var conflicts []FileConflict
	for _, name := range names {
		res := resolveEntry(name, entryPtr(treeO, name), entryPtr(treeA, name), entryPtr(treeB, name))
		if res.conflict != nil {
			conflicts = append(conflicts, *res.conflict)
			continue
		}
		if res.deleted || res.entry == nil {
			continue
		}
		entries = append(entries, *res.entry)
	}

	if len(conflicts) > 0 {
		return &Result{Type: ConflictRes, Conflicts: conflicts}, nil
	}

	mergedTree := object.NewTree(entries)
	if _, err := store.PutObject(mergedTree.Encode(), object.TypeTree); err != nil {
		return nil, err
	}
	commit := object.NewCommit(mergedTree.Hash, []object.Hash{current}, author, email, timestamp, message)
	if _, err := store.PutObject(commit.Encode(), object.TypeCommit); err != nil {
		return nil, err
	}
	return &Result{Type: ThreeWay, CommitHash: commit.Hash}, nil
}

// treeOf resolves a commit hash to its tree entries. An empty commit hash
// (base == "") is treated as an empty tree.
func treeOf(store *odb.Store, commitHash string) (map[string]object.TreeEntry, error) {
	if commitHash == "" {
		return map[string]object.TreeEntry{}, nil
	}
	rec, err := store.GetObject(commitHash)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, vcserr.New(vcserr.NotFound, "commit %s not found", commitHash)
	}
	c, err := object.DecodeCommit(rec.Data)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.IntegrityError, err, "decode commit %s", commitHash)
	}
	treeRec, err := store.GetObject(c.Tree)
	if err != nil {
		return nil, err
	}
	if treeRec == nil {
		return nil, vcserr.New(vcserr.IntegrityError, "tree %s for commit %s not found", c.Tree, commitHash)
	}
	tree, err := object.DecodeTree(treeRec.Data)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.IntegrityError, err, "decode tree %s", c.Tree)
	}
	out := make(map[string]object.TreeEntry, len(tree.Entries))
	for _, e := range tree.Entries {
		out[e.Name] = e
	}
	return out, nil
}

func entryPtr(m map[string]object.TreeEntry, name string) *object.TreeEntry {
	if e, ok := m[name]; ok {
		return &e
	}
	return nil
}

func unionNames(maps ...map[string]object.TreeEntry) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range maps {
		for name := range m {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
