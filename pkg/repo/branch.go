// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// BranchInfo names one branch and the commit its head points at.
type BranchInfo struct {
	Name string
	Head string
}

// ListBranches returns every branch, ordered by name.
func (r *Repository) ListBranches() ([]BranchInfo, error) {
	branches, err := refs.ListBranches(r.store)
	if err != nil {
		return nil, err
	}
	out := make([]BranchInfo, 0, len(branches))
	for _, b := range branches {
		out = append(out, BranchInfo{Name: refs.BranchShortName(b.Name), Head: b.Hash})
	}
	return out, nil
}

// CreateBranch points a new branch at from (default HEAD). It fails
// Conflict if the branch already exists and PreconditionFailed if the
// resolved source has no commits yet.
func (r *Repository) CreateBranch(name, from string) error {
	refName := refs.BranchRefName(name)
	existing, err := r.store.GetRef(refName)
	if err != nil {
		return err
	}
	if existing != nil {
		return vcserr.New(vcserr.Conflict, "branch %q already exists", name)
	}

	if from == "" {
		from = "HEAD"
	}
	target, err := refs.Resolve(r.store, from)
	if err != nil {
		return err
	}
	if target == "" {
		return vcserr.New(vcserr.PreconditionFailed, "%q has no commits to branch from", from)
	}
	return r.store.SetRef(refName, target, odb.RefBranch)
}

// SwitchBranch makes name the current branch and clears staging, per spec
// §4.6 ("switch_branch(name) clears staging").
func (r *Repository) SwitchBranch(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.store.GetRef(refs.BranchRefName(name))
	if err != nil {
		return err
	}
	if ref == nil {
		return vcserr.New(vcserr.NotFound, "branch %q does not exist", name)
	}
	if err := refs.SetCurrentBranch(r.store, name); err != nil {
		return err
	}
	return r.clearStaging()
}

// DeleteBranch removes a branch, refusing to delete the current one.
// When runGC is set, it runs GarbageCollect afterward to reclaim any
// objects the branch alone kept reachable.
func (r *Repository) DeleteBranch(name string, runGC bool) error {
	current, err := refs.CurrentBranch(r.store)
	if err != nil {
		return err
	}
	if name == current {
		return vcserr.New(vcserr.Conflict, "cannot delete the current branch %q", name)
	}
	refName := refs.BranchRefName(name)
	existing, err := r.store.GetRef(refName)
	if err != nil {
		return err
	}
	if existing == nil {
		return vcserr.New(vcserr.NotFound, "branch %q does not exist", name)
	}
	if err := r.store.RemoveRef(refName); err != nil {
		return err
	}
	if runGC {
		if _, err := r.GarbageCollect(nil); err != nil {
			return err
		}
	}
	return nil
}

// ResolveRef handles HEAD, HEAD~N, and a 64-char hash (spec §4.6).
func (r *Repository) ResolveRef(ref string) (string, error) {
	return refs.Resolve(r.store, ref)
}
