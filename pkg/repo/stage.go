// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"github.com/antgroup/webdvcs/modules/hashutil"
	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/refs"
)

// AddResult is returned by Add.
type AddResult struct {
	Path   string
	Hash   string
	Binary bool
	Size   int64
	IsNew  bool
}

// Add stores data as a blob — delta-encoded against HEAD's version of
// path when one exists — and queues path for the next commit (spec
// §4.6). forceBinary, when non-nil, overrides the sniffed binary/text
// classification.
func (r *Repository) Add(path string, data []byte, forceBinary *bool) (AddResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	binary := hashutil.IsBinary(data, path)
	if forceBinary != nil {
		binary = *forceBinary
	}

	hash := object.HashBytes(data)
	existed, err := r.store.HasObject(hash)
	if err != nil {
		return AddResult{}, err
	}

	baseHash, err := r.headBlobHash(path)
	if err != nil {
		return AddResult{}, err
	}
	if _, err := r.store.StoreBlobWithDelta(data, baseHash); err != nil {
		return AddResult{}, err
	}

	entry := StageEntry{Hash: hash, Size: int64(len(data)), Binary: binary}
	r.staged[path] = entry
	delete(r.removed, path)
	if err := r.persistStage(path, entry); err != nil {
		return AddResult{}, err
	}
	if err := r.forgetRemoval(path); err != nil {
		return AddResult{}, err
	}

	r.log.WithFields(map[string]any{"path": path, "hash": hash, "is_new": !existed}).Debug("staged file")
	return AddResult{Path: path, Hash: hash, Binary: binary, Size: int64(len(data)), IsNew: !existed}, nil
}

// headBlobHash returns the blob hash HEAD currently records for path, or
// "" if HEAD has no such entry (a fresh add rather than a modification).
func (r *Repository) headBlobHash(path string) (string, error) {
	head, err := refs.HeadCommit(r.store)
	if err != nil {
		return "", err
	}
	if head == "" {
		return "", nil
	}
	tree, err := r.loadTree(head)
	if err != nil {
		return "", err
	}
	if e, ok := tree[path]; ok {
		return e.Hash, nil
	}
	return "", nil
}

// Rm marks paths for deletion relative to HEAD, provided each is tracked
// either in HEAD's tree or the current staging set. It returns the count
// actually marked.
func (r *Repository) Rm(paths []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	head, err := refs.HeadCommit(r.store)
	if err != nil {
		return 0, err
	}
	headTree, err := r.loadTree(head)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, path := range paths {
		_, inHead := headTree[path]
		_, inStage := r.staged[path]
		if !inHead && !inStage {
			continue
		}
		if inStage {
			delete(r.staged, path)
			if err := r.forgetStage(path); err != nil {
				return count, err
			}
		}
		if inHead {
			r.removed[path] = true
			if err := r.persistRemoval(path); err != nil {
				return count, err
			}
		}
		count++
	}
	return count, nil
}

// UnstageAction names the outcome of Unstage.
type UnstageAction string

const (
	Unstaged  UnstageAction = "unstaged"
	Unremoved UnstageAction = "unremoved"
	NotFound  UnstageAction = "not_found"
)

// Unstage undoes a pending Add or Rm for path, whichever applies.
func (r *Repository) Unstage(path string) (UnstageAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.staged[path]; ok {
		delete(r.staged, path)
		if err := r.forgetStage(path); err != nil {
			return "", err
		}
		return Unstaged, nil
	}
	if r.removed[path] {
		delete(r.removed, path)
		if err := r.forgetRemoval(path); err != nil {
			return "", err
		}
		return Unremoved, nil
	}
	return NotFound, nil
}
