// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package merge implements the merge-base discovery and three-way merge
// of spec §4.7, on top of modules/odb and modules/object. The bidirectional
// BFS frontier here is the same shape as the teacher's
// modules/zeta/object/commit_walker_bfs.go breadth-first commit iterator,
// run from both sides at once and stopped the moment either frontier
// touches a hash the other side has already visited.
package merge

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/odb"
)

func parentsOf(store *odb.Store, hash string) ([]string, error) {
	rec, err := store.GetObject(hash)
	if err != nil || rec == nil {
		return nil, err
	}
	c, err := object.DecodeCommit(rec.Data)
	if err != nil {
		return nil, err
	}
	return c.Parents, nil
}

// Base finds the nearest common ancestor of a and b by expanding a BFS
// frontier from each side in lock-step, stopping as soon as one side's
// newly discovered hash is already visited by the other. Returns "" with
// no error if the two histories share no ancestor.
func Base(store *odb.Store, a, b string) (string, error) {
	if a == "" || b == "" {
		return "", nil
	}
	if a == b {
		return a, nil
	}

	visitedA := hashset.New(a)
	visitedB := hashset.New(b)
	frontierA := []string{a}
	frontierB := []string{b}

	for len(frontierA) > 0 || len(frontierB) > 0 {
		if found, err := expand(store, &frontierA, visitedA, visitedB); err != nil || found != "" {
			return found, err
		}
		if found, err := expand(store, &frontierB, visitedB, visitedA); err != nil || found != "" {
			return found, err
		}
	}
	return "", nil
}

// expand walks one level of frontier's parents, marking them in mine and
// reporting the first one already present in other as the common ancestor.
func expand(store *odb.Store, frontier *[]string, mine, other *hashset.Set) (string, error) {
	var next []string
	for _, h := range *frontier {
		parents, err := parentsOf(store, h)
		if err != nil {
			return "", err
		}
		for _, p := range parents {
			if other.Contains(p) {
				return p, nil
			}
			if !mine.Contains(p) {
				mine.Add(p)
				next = append(next, p)
			}
		}
	}
	*frontier = next
	return "", nil
}
