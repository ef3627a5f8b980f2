// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package refs resolves the commit-reference syntax of spec §6 (`HEAD`,
// `HEAD~N`, a 64-char hash) and the branch namespace of spec §3
// (`refs/heads/<name>`, the `current_branch` metadata key) on top of
// modules/odb. It narrows the teacher's modules/zeta/refs.DB — which
// models symbolic references, tags, remote-tracking branches and a
// multi-rule shortname resolver — to the one symbolic name this engine
// has (HEAD) and the single reference kind (branch) spec §3 defines,
// following the same Lookup/Resolve split shape.
package refs

import (
	"strconv"
	"strings"

	"github.com/antgroup/webdvcs/modules/hashutil"
	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// DefaultBranch is the branch a freshly initialised repository starts on.
const DefaultBranch = "main"

// HeadsPrefix namespaces every branch reference, per spec §3.
const HeadsPrefix = "refs/heads/"

// metaCurrentBranch is the metadata key naming the active branch.
const metaCurrentBranch = "current_branch"

// BranchRefName returns the fully qualified reference name for a branch.
func BranchRefName(name string) string {
	return HeadsPrefix + name
}

// BranchShortName strips the refs/heads/ namespace, or returns refname
// unchanged if it doesn't carry the prefix.
func BranchShortName(refname string) string {
	return strings.TrimPrefix(refname, HeadsPrefix)
}

// CurrentBranch returns the active branch name, defaulting to
// DefaultBranch if unset (a freshly opened, never-committed repository).
func CurrentBranch(store *odb.Store) (string, error) {
	v, ok, err := store.GetMeta(metaCurrentBranch)
	if err != nil {
		return "", err
	}
	if !ok {
		return DefaultBranch, nil
	}
	return v, nil
}

// SetCurrentBranch records the active branch.
func SetCurrentBranch(store *odb.Store, name string) error {
	return store.SetMeta(metaCurrentBranch, name)
}

// HeadCommit resolves the commit hash the current branch points at, or ""
// if the branch has no commits yet.
func HeadCommit(store *odb.Store) (string, error) {
	branch, err := CurrentBranch(store)
	if err != nil {
		return "", err
	}
	ref, err := store.GetRef(BranchRefName(branch))
	if err != nil {
		return "", err
	}
	if ref == nil {
		return "", nil
	}
	return ref.Hash, nil
}

// Resolve implements the commit-reference syntax of spec §6: `HEAD`,
// `HEAD~N`, or a 64-char lower-hex hash. It returns "" (not an error) for
// a HEAD reference on a branch with no commits yet.
func Resolve(store *odb.Store, ref string) (string, error) {
	if ref == "HEAD" {
		return HeadCommit(store)
	}
	if rest, ok := strings.CutPrefix(ref, "HEAD~"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return "", vcserr.New(vcserr.InvalidArgument, "invalid ref %q", ref)
		}
		head, err := HeadCommit(store)
		if err != nil {
			return "", err
		}
		if head == "" {
			return "", nil
		}
		return walkBack(store, head, n)
	}
	if hashutil.ValidHashHex(ref) {
		return ref, nil
	}
	return "", vcserr.New(vcserr.InvalidArgument, "invalid ref %q", ref)
}

// walkBack follows first-parent links n times from start.
func walkBack(store *odb.Store, start string, n int) (string, error) {
	current := start
	for i := 0; i < n; i++ {
		rec, err := store.GetObject(current)
		if err != nil {
			return "", err
		}
		if rec == nil {
			return "", vcserr.New(vcserr.NotFound, "commit %s not found while resolving HEAD~%d", current, n)
		}
		c, err := object.DecodeCommit(rec.Data)
		if err != nil {
			return "", vcserr.Wrap(vcserr.IntegrityError, err, "decode commit %s", current)
		}
		if c.Parent() == "" {
			return "", vcserr.New(vcserr.NotFound, "ref has fewer than %d ancestors", n)
		}
		current = c.Parent()
	}
	return current, nil
}

// ListBranches returns every branch reference.
func ListBranches(store *odb.Store) ([]odb.Ref, error) {
	all, err := store.ListRefs()
	if err != nil {
		return nil, err
	}
	var branches []odb.Ref
	for _, r := range all {
		if r.Kind == odb.RefBranch {
			branches = append(branches, r)
		}
	}
	return branches, nil
}
