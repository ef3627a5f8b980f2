// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package merge

import "github.com/antgroup/webdvcs/modules/object"

// ConflictType names one row of the three-way resolution table in spec
// §4.7.
type ConflictType string

const (
	BothAdded       ConflictType = "both-added"
	DeletedModified ConflictType = "deleted-modified"
	ModifiedDeleted ConflictType = "modified-deleted"
	BothModified    ConflictType = "both-modified"
)

// FileConflict is one unresolved entry from a three-way merge.
type FileConflict struct {
	Path string
	Type ConflictType
}

// resolution is the outcome of resolving one path across (O, A, B).
type resolution struct {
	deleted  bool
	entry    *object.TreeEntry
	conflict *FileConflict
}

// resolveEntry applies the exact O/A/B resolution table of spec §4.7 to
// one path. o/a/b are nil when the path is absent from that tree.
func resolveEntry(path string, o, a, b *object.TreeEntry) resolution {
	switch {
	case o == nil:
		switch {
		case a == nil && b != nil:
			return resolution{entry: b}
		case a != nil && b == nil:
			return resolution{entry: a}
		case a != nil && b != nil:
			if a.Hash == b.Hash {
				return resolution{entry: a}
			}
			return resolution{conflict: &FileConflict{Path: path, Type: BothAdded}}
		default:
			return resolution{deleted: true}
		}
	default: // o != nil
		switch {
		case a == nil && b == nil:
			return resolution{deleted: true}
		case a == nil && b != nil:
			if b.Hash == o.Hash {
				return resolution{deleted: true}
			}
			return resolution{conflict: &FileConflict{Path: path, Type: DeletedModified}}
		case a != nil && b == nil:
			if a.Hash == o.Hash {
				return resolution{deleted: true}
			}
			return resolution{conflict: &FileConflict{Path: path, Type: ModifiedDeleted}}
		default: // a != nil && b != nil
			aChanged := a.Hash != o.Hash
			bChanged := b.Hash != o.Hash
			switch {
			case !aChanged && !bChanged:
				return resolution{entry: a}
			case !aChanged && bChanged:
				return resolution{entry: b}
			case aChanged && !bChanged:
				return resolution{entry: a}
			case a.Hash == b.Hash:
				return resolution{entry: a}
			default:
				return resolution{conflict: &FileConflict{Path: path, Type: BothModified}}
			}
		}
	}
}
