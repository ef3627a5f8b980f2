// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// ShowResult pretty-prints a single object of any kind, a debugging
// surface over C4/C5 grounded on the teacher's object Pretty helpers
// (supplemented: spec.md's Non-goals never exclude introspection).
type ShowResult struct {
	Hash string
	Type string
	Blob *object.Blob
	Tree *object.Tree
	Commit *object.Commit
}

// Show resolves hash to its stored object and decodes it by type.
func (r *Repository) Show(hash string) (ShowResult, error) {
	rec, err := r.store.GetObject(hash)
	if err != nil {
		return ShowResult{}, err
	}
	if rec == nil {
		return ShowResult{}, vcserr.New(vcserr.NotFound, "object %s not found", hash)
	}
	result := ShowResult{Hash: hash, Type: rec.Type.String()}
	switch rec.Type {
	case object.TypeBlob:
		result.Blob = object.NewBlob(rec.Data)
	case object.TypeTree:
		tree, err := object.DecodeTree(rec.Data)
		if err != nil {
			return ShowResult{}, vcserr.Wrap(vcserr.IntegrityError, err, "decode tree %s", hash)
		}
		result.Tree = tree
	case object.TypeCommit:
		commit, err := object.DecodeCommit(rec.Data)
		if err != nil {
			return ShowResult{}, vcserr.Wrap(vcserr.IntegrityError, err, "decode commit %s", hash)
		}
		result.Commit = commit
	}
	return result, nil
}

// CatFile returns an object's raw reconstructed bytes, the C4/C5
// equivalent of `git cat-file -p`.
func (r *Repository) CatFile(hash string) ([]byte, string, error) {
	rec, err := r.store.GetObject(hash)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", vcserr.New(vcserr.NotFound, "object %s not found", hash)
	}
	return rec.Data, rec.Type.String(), nil
}
