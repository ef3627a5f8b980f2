// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"time"

	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/pkg/progress"
)

// GCResult is returned by GarbageCollect.
type GCResult struct {
	TotalObjects int
	Reachable    int
	Deleted      int
	DurationMS   int64
}

// GCOptions controls GarbageCollect's progress reporting.
type GCOptions struct {
	Quiet bool
}

// GarbageCollect computes the union of reachable_from across every
// branch ref and deletes every object outside it (spec §4.6, §4.9's
// "object graph" invariant). opts may be nil to run quietly.
func (r *Repository) GarbageCollect(opts *GCOptions) (GCResult, error) {
	if opts == nil {
		opts = &GCOptions{Quiet: true}
	}
	start := time.Now()

	branches, err := refs.ListBranches(r.store)
	if err != nil {
		return GCResult{}, err
	}
	heads := make([]string, 0, len(branches))
	for _, b := range branches {
		heads = append(heads, b.Hash)
	}

	reachable, err := r.store.ReachableFromAll(heads)
	if err != nil {
		return GCResult{}, err
	}
	all, err := r.store.AllObjectHashes()
	if err != nil {
		return GCResult{}, err
	}

	var unreachable []string
	for _, h := range all {
		if !reachable[h.Hash] {
			unreachable = append(unreachable, h.Hash)
		}
	}

	bar := progress.New("collecting garbage", int64(len(unreachable)), opts.Quiet)
	last := 0
	if err := r.store.RemoveObjects(unreachable, func(done int) {
		bar.Increment(done - last)
		last = done
	}); err != nil {
		return GCResult{}, err
	}
	bar.Done()

	r.log.WithFields(map[string]any{
		"objects":     len(all),
		"reachable":   len(reachable),
		"deleted":     len(unreachable),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("garbage collection complete")

	return GCResult{
		TotalObjects: len(all),
		Reachable:    len(reachable),
		Deleted:      len(unreachable),
		DurationMS:   time.Since(start).Milliseconds(),
	}, nil
}
