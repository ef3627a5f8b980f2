// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// ResetMode names one of the three reset depths of spec §4.6.
type ResetMode string

const (
	ResetSoft  ResetMode = "soft"
	ResetMixed ResetMode = "mixed"
	ResetHard  ResetMode = "hard"
)

// Reset moves the current branch to ref (when non-empty) and, depending
// on mode, clears staging (mixed, hard) and the removal set (hard).
func (r *Repository) Reset(mode ResetMode, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch mode {
	case ResetSoft, ResetMixed, ResetHard:
	default:
		return vcserr.New(vcserr.InvalidArgument, "unknown reset mode %q", mode)
	}

	if ref != "" {
		target, err := refs.Resolve(r.store, ref)
		if err != nil {
			return err
		}
		if target == "" {
			return vcserr.New(vcserr.NotFound, "ref %q does not resolve to a commit", ref)
		}
		branch, err := refs.CurrentBranch(r.store)
		if err != nil {
			return err
		}
		if err := r.store.SetRef(refs.BranchRefName(branch), target, odb.RefBranch); err != nil {
			return err
		}
	}

	if mode == ResetMixed || mode == ResetHard {
		if err := r.clearStaging(); err != nil {
			return err
		}
	}
	if mode == ResetHard {
		if err := r.clearRemovals(); err != nil {
			return err
		}
	}
	return nil
}
