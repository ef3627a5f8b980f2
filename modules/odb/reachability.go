// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"github.com/emirpasic/gods/sets/hashset"
	"golang.org/x/sync/errgroup"

	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// ReachableFrom computes the transitive closure of objects reachable from
// rootHash, following commit→parent, commit→tree, and tree→entries (spec
// §4.4). rootHash may name a commit, tree or blob; non-commit roots are
// walked as their own subgraph.
func (s *Store) ReachableFrom(rootHash string) (map[string]bool, error) {
	seen := hashset.New()
	queue := []string{rootHash}

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h == "" || seen.Contains(h) {
			continue
		}
		seen.Add(h)

		rec, err := s.GetObject(h)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// A dangling reference; the caller's integrity checks, not
			// this walk, are responsible for flagging it.
			continue
		}
		switch rec.Type {
		case object.TypeCommit:
			c, err := object.DecodeCommit(rec.Data)
			if err != nil {
				return nil, vcserr.Wrap(vcserr.IntegrityError, err, "decode commit %s", h)
			}
			queue = append(queue, c.Tree)
			queue = append(queue, c.Parents...)
		case object.TypeTree:
			t, err := object.DecodeTree(rec.Data)
			if err != nil {
				return nil, vcserr.Wrap(vcserr.IntegrityError, err, "decode tree %s", h)
			}
			for _, e := range t.Entries {
				queue = append(queue, e.Hash)
			}
		case object.TypeBlob:
			// leaf
		}
	}

	out := make(map[string]bool, seen.Size())
	for _, v := range seen.Values() {
		out[v.(string)] = true
	}
	return out, nil
}

// ReachableFromAll unions ReachableFrom across every given root, computing
// each root's closure concurrently via errgroup (the roots are typically
// one per branch/tag during garbage collection).
func (s *Store) ReachableFromAll(roots []string) (map[string]bool, error) {
	results := make([]map[string]bool, len(roots))
	var g errgroup.Group
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			set, err := s.ReachableFrom(root)
			if err != nil {
				return err
			}
			results[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	union := make(map[string]bool)
	for _, set := range results {
		for h := range set {
			union[h] = true
		}
	}
	return union, nil
}
