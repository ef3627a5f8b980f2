// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"time"

	"github.com/antgroup/webdvcs/modules/merge"
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/modules/vcserr"
	"github.com/antgroup/webdvcs/pkg/config"
)

// Merge merges targetBranch into the current branch (spec §4.7), moving
// the current branch ref forward on fast-forward or three-way success.
// Conflicts never mutate refs.
func (r *Repository) Merge(targetBranch, author, email string, cfg *config.Config) (*merge.Result, error) {
	currentBranchName, err := refs.CurrentBranch(r.store)
	if err != nil {
		return nil, err
	}
	currentHead, err := refs.HeadCommit(r.store)
	if err != nil {
		return nil, err
	}
	targetRef, err := r.store.GetRef(refs.BranchRefName(targetBranch))
	if err != nil {
		return nil, err
	}
	if targetRef == nil {
		return nil, vcserr.New(vcserr.NotFound, "branch %q does not exist", targetBranch)
	}

	if author == "" || email == "" {
		defName, defEmail, err := r.Author(cfg)
		if err != nil {
			return nil, err
		}
		if author == "" {
			author = defName
		}
		if email == "" {
			email = defEmail
		}
	}

	result, err := merge.Merge(r.store, currentHead, targetRef.Hash, author, email, time.Now().Unix(), "Merge branch '"+targetBranch+"'")
	if err != nil {
		return nil, err
	}

	switch result.Type {
	case merge.FastForward, merge.ThreeWay:
		if err := r.store.SetRef(refs.BranchRefName(currentBranchName), result.CommitHash, odb.RefBranch); err != nil {
			return nil, err
		}
	}
	return result, nil
}
