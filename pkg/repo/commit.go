// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"time"

	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/modules/vcserr"
	"github.com/antgroup/webdvcs/pkg/config"
)

// CommitResult is returned by Commit.
type CommitResult struct {
	CommitHash string
	TreeHash   string
	Message    string
	Author     string
	Email      string
	Timestamp  int64
	Branch     string
}

// Commit builds the next tree by overlaying staging onto HEAD minus
// removals, writes the tree and commit objects, advances the current
// branch, and clears staging (spec §4.6). It fails PreconditionFailed
// when both the staging and removal sets are empty.
func (r *Repository) Commit(message, author, email string, cfg *config.Config) (CommitResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.staged) == 0 && len(r.removed) == 0 {
		return CommitResult{}, vcserr.New(vcserr.PreconditionFailed, "nothing staged or removed to commit")
	}

	headHash, err := refs.HeadCommit(r.store)
	if err != nil {
		return CommitResult{}, err
	}
	headTree, err := r.loadTree(headHash)
	if err != nil {
		return CommitResult{}, err
	}

	entries := r.nextTree(headTree)
	tree := object.NewTree(entries)
	if _, err := r.store.PutObject(tree.Encode(), object.TypeTree); err != nil {
		return CommitResult{}, err
	}

	if author == "" || email == "" {
		defName, defEmail, err := r.Author(cfg)
		if err != nil {
			return CommitResult{}, err
		}
		if author == "" {
			author = defName
		}
		if email == "" {
			email = defEmail
		}
	}

	var parents []object.Hash
	if headHash != "" {
		parents = []object.Hash{headHash}
	}
	timestamp := time.Now().Unix()
	commit := object.NewCommit(tree.Hash, parents, author, email, timestamp, message)
	if _, err := r.store.PutObject(commit.Encode(), object.TypeCommit); err != nil {
		return CommitResult{}, err
	}

	branch, err := refs.CurrentBranch(r.store)
	if err != nil {
		return CommitResult{}, err
	}
	if err := r.store.SetRef(refs.BranchRefName(branch), commit.Hash, odb.RefBranch); err != nil {
		return CommitResult{}, err
	}
	if err := r.clearStaging(); err != nil {
		return CommitResult{}, err
	}
	if err := r.clearRemovals(); err != nil {
		return CommitResult{}, err
	}

	r.log.WithFields(map[string]any{"commit": commit.Hash, "tree": tree.Hash, "branch": branch}).Debug("created commit")
	return CommitResult{
		CommitHash: commit.Hash,
		TreeHash:   tree.Hash,
		Message:    message,
		Author:     author,
		Email:      email,
		Timestamp:  timestamp,
		Branch:     branch,
	}, nil
}
