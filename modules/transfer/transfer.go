// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package transfer implements the differential branch export/import
// protocol of spec §4.8: shipping only the objects a receiver doesn't
// already have, as a secondary embedded-database image. The "ship a
// self-contained packfile of exactly the missing objects" idea is the
// same one behind the teacher's modules/zeta/backend/pack.Packfile, here
// built as a second SQLite image (modules/odb.Store) rather than a git
// packfile, since that is this engine's one wire format (spec §6).
package transfer

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// ExistingPolicy controls Import's behaviour when the image's branch name
// already exists in the receiver.
type ExistingPolicy string

const (
	// Fail refuses the import, per spec §4.8's stated default.
	Fail ExistingPolicy = "fail"
	// Overwrite repoints the existing branch at the imported head.
	Overwrite ExistingPolicy = "overwrite"
)

// ImportResult is returned by Import.
type ImportResult struct {
	Branch          string
	ObjectsImported int
	ObjectsSkipped  int
	Differential    bool
}

const metaExportType = "export_type"
const exportTypeDifferential = "differential"

// Export computes the commits unique to branch (relative to the union of
// everything reachable from otherHeads), the closure of trees and blobs
// they reference, and ships that closure plus a single branch ref as a
// standalone database image (spec §4.8).
func Export(store *odb.Store, branch string, otherHeads []string) ([]byte, error) {
	branchRef := refs.BranchRefName(branch)
	ref, err := store.GetRef(branchRef)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, vcserr.New(vcserr.NotFound, "branch %q has no head", branch)
	}

	excluded, err := store.ReachableFromAll(otherHeads)
	if err != nil {
		return nil, err
	}

	uniqueCommits, err := commitsUnique(store, ref.Hash, excluded)
	if err != nil {
		return nil, err
	}
	if len(uniqueCommits) == 0 {
		return nil, vcserr.New(vcserr.PreconditionFailed, "branch %q has nothing unique to export", branch)
	}

	included := make(map[string]bool)
	for _, commitHash := range uniqueCommits {
		reach, err := store.ReachableFrom(commitHash)
		if err != nil {
			return nil, err
		}
		for h := range reach {
			if !excluded[h] {
				included[h] = true
			}
		}
	}
	if len(included) == 0 {
		return nil, vcserr.New(vcserr.PreconditionFailed, "branch %q has nothing unique to export", branch)
	}

	scratchPath, err := scratchFile()
	if err != nil {
		return nil, err
	}
	defer os.Remove(scratchPath)

	scratch, err := odb.Open(scratchPath)
	if err != nil {
		return nil, err
	}
	defer scratch.Close()

	for hash := range included {
		rec, err := store.GetObject(hash)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		if _, err := scratch.PutObject(rec.Data, rec.Type); err != nil {
			return nil, err
		}
	}
	if err := scratch.SetRef(branchRef, ref.Hash, odb.RefBranch); err != nil {
		return nil, err
	}
	if err := scratch.SetMeta(metaExportType, exportTypeDifferential); err != nil {
		return nil, err
	}

	return scratch.ExportBytes()
}

// Import folds every object from a branch-transfer image into store by
// digest (skipping ones already present) and installs the image's branch
// reference last, so a failure mid-import leaves at worst unreferenced
// objects collectable by garbage collection.
func Import(store *odb.Store, image []byte, onExisting ExistingPolicy) (ImportResult, error) {
	scratchPath, err := scratchFile()
	if err != nil {
		return ImportResult{}, err
	}
	defer os.Remove(scratchPath)
	if err := os.WriteFile(scratchPath, image, 0o600); err != nil {
		return ImportResult{}, vcserr.Wrap(vcserr.StorageError, err, "write import image to scratch file")
	}

	scratch, err := odb.Open(scratchPath)
	if err != nil {
		return ImportResult{}, err
	}
	defer scratch.Close()

	handles, err := scratch.AllObjectHashes()
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Differential: true}
	for _, h := range handles {
		has, err := store.HasObject(h.Hash)
		if err != nil {
			return ImportResult{}, err
		}
		if has {
			result.ObjectsSkipped++
			continue
		}
		typ, err := object.ParseType(h.Type)
		if err != nil {
			return ImportResult{}, vcserr.Wrap(vcserr.IntegrityError, err, "import object %s", h.Hash)
		}
		rec, err := scratch.GetObject(h.Hash)
		if err != nil {
			return ImportResult{}, err
		}
		if rec == nil {
			return ImportResult{}, vcserr.New(vcserr.IntegrityError, "import image missing object %s", h.Hash)
		}
		if _, err := store.PutObject(rec.Data, typ); err != nil {
			return ImportResult{}, err
		}
		result.ObjectsImported++
	}

	imageRefs, err := scratch.ListRefs()
	if err != nil {
		return ImportResult{}, err
	}
	if len(imageRefs) != 1 {
		return ImportResult{}, vcserr.New(vcserr.IntegrityError, "import image carries %d refs, want 1", len(imageRefs))
	}
	branchRef := imageRefs[0]
	result.Branch = refs.BranchShortName(branchRef.Name)

	existing, err := store.GetRef(branchRef.Name)
	if err != nil {
		return ImportResult{}, err
	}
	if existing != nil && onExisting != Overwrite {
		return ImportResult{}, vcserr.New(vcserr.Conflict, "branch %q already exists", result.Branch)
	}

	if err := store.SetRef(branchRef.Name, branchRef.Hash, branchRef.Kind); err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// commitsUnique walks the commit history from head, stopping as soon as a
// commit already in excluded is reached, collecting everything seen
// before that point.
func commitsUnique(store *odb.Store, head string, excluded map[string]bool) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	queue := []string{head}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h == "" || seen[h] || excluded[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)

		rec, err := store.GetObject(h)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		c, err := object.DecodeCommit(rec.Data)
		if err != nil {
			return nil, vcserr.Wrap(vcserr.IntegrityError, err, "decode commit %s", h)
		}
		queue = append(queue, c.Parents...)
	}
	return out, nil
}

func scratchFile() (string, error) {
	return filepath.Join(os.TempDir(), "webdvcs-"+uuid.NewString()+".db"), nil
}
