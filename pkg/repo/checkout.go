// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"strings"

	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// CheckoutResult is returned by Checkout: the byte content of every
// restored path plus its tree metadata. The core never writes to a real
// filesystem (spec §1's Non-goals); callers decide what to do with Files.
type CheckoutResult struct {
	Files         map[string][]byte
	FilesMetadata map[string]StageEntry
}

// Checkout resolves ref to a commit and populates the staging set from
// its tree — the whole tree, or just the entry named by path when path is
// non-empty — per spec §4.6. write is accepted for API symmetry with the
// source but is a caller concern; the core never touches a filesystem.
func (r *Repository) Checkout(ref, path string, write bool) (CheckoutResult, error) {
	_ = write
	r.mu.Lock()
	defer r.mu.Unlock()

	commitHash, err := refs.Resolve(r.store, ref)
	if err != nil {
		return CheckoutResult{}, err
	}
	if commitHash == "" {
		return CheckoutResult{}, vcserr.New(vcserr.NotFound, "ref %q has no commit", ref)
	}
	tree, err := r.loadTree(commitHash)
	if err != nil {
		return CheckoutResult{}, err
	}

	var targets []object.TreeEntry
	if path == "" {
		for _, e := range tree {
			targets = append(targets, e)
		}
	} else {
		e, ok := tree[path]
		if !ok {
			return CheckoutResult{}, vcserr.New(vcserr.NotFound, "path %q not found in %s", path, ref)
		}
		targets = []object.TreeEntry{e}
	}

	result := CheckoutResult{
		Files:         make(map[string][]byte, len(targets)),
		FilesMetadata: make(map[string]StageEntry, len(targets)),
	}
	for _, e := range targets {
		rec, err := r.store.GetObject(e.Hash)
		if err != nil {
			return CheckoutResult{}, err
		}
		if rec == nil {
			return CheckoutResult{}, vcserr.New(vcserr.IntegrityError, "blob %s for %q not found", e.Hash, e.Name)
		}
		entry := StageEntry{Hash: e.Hash, Size: int64(e.Size), Binary: e.Binary}
		r.staged[e.Name] = entry
		delete(r.removed, e.Name)
		if err := r.persistStage(e.Name, entry); err != nil {
			return CheckoutResult{}, err
		}
		if err := r.forgetRemoval(e.Name); err != nil {
			return CheckoutResult{}, err
		}
		result.Files[e.Name] = rec.Data
		result.FilesMetadata[e.Name] = entry
	}
	return result, nil
}

// GetFile resolves path's content, checking commit (if given), then
// staging, then HEAD, in that order (spec §4.6). A path absent from all
// three fails NotFound.
func (r *Repository) GetFile(path string, commit string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if commit != "" {
		commitHash, err := refs.Resolve(r.store, commit)
		if err != nil {
			return nil, err
		}
		tree, err := r.loadTree(commitHash)
		if err != nil {
			return nil, err
		}
		e, ok := tree[path]
		if !ok {
			return nil, vcserr.New(vcserr.NotFound, "%q not staged", path)
		}
		return r.readBlob(e.Hash)
	}

	if e, ok := r.staged[path]; ok {
		return r.readBlob(e.Hash)
	}

	head, err := refs.HeadCommit(r.store)
	if err != nil {
		return nil, err
	}
	tree, err := r.loadTree(head)
	if err != nil {
		return nil, err
	}
	if e, ok := tree[path]; ok && !r.removed[path] {
		return r.readBlob(e.Hash)
	}
	return nil, vcserr.New(vcserr.NotFound, "%q not staged", path)
}

func (r *Repository) readBlob(hash string) ([]byte, error) {
	rec, err := r.store.GetObject(hash)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, vcserr.New(vcserr.IntegrityError, "blob %s not found", hash)
	}
	return rec.Data, nil
}

// trimTrailingSlash normalizes path-filter arguments the CLI may pass
// with a trailing separator.
func trimTrailingSlash(path string) string {
	return strings.TrimSuffix(path, "/")
}
