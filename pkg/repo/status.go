// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"sort"

	"github.com/antgroup/webdvcs/modules/refs"
)

// StatusResult is returned by Status.
type StatusResult struct {
	CurrentBranch string
	Head          string // "" for an unborn branch
	Staged        []string
	Deleted       []string
	ObjectCount   int64
}

// Status reports the current branch, HEAD, and the pending staging and
// removal sets, per spec §4.6.
func (r *Repository) Status() (StatusResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	branch, err := refs.CurrentBranch(r.store)
	if err != nil {
		return StatusResult{}, err
	}
	head, err := refs.HeadCommit(r.store)
	if err != nil {
		return StatusResult{}, err
	}
	stats, err := r.store.ComputeStats()
	if err != nil {
		return StatusResult{}, err
	}

	staged := make([]string, 0, len(r.staged))
	for path := range r.staged {
		staged = append(staged, path)
	}
	sort.Strings(staged)

	deleted := make([]string, 0, len(r.removed))
	for path := range r.removed {
		deleted = append(deleted, path)
	}
	sort.Strings(deleted)

	return StatusResult{
		CurrentBranch: branch,
		Head:          head,
		Staged:        staged,
		Deleted:       deleted,
		ObjectCount:   stats.ObjectCount,
	}, nil
}
