// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"database/sql"
	"errors"

	"github.com/antgroup/webdvcs/modules/vcserr"
)

// RefKind distinguishes a branch head from a tag.
type RefKind string

const (
	RefBranch RefKind = "branch"
	RefTag    RefKind = "tag"
)

// Ref is one row of the refs table: a named pointer to a commit.
type Ref struct {
	Name      string
	Hash      string
	Kind      RefKind
	UpdatedAt int64
}

// SetRef creates or repoints a reference.
func (s *Store) SetRef(name, hash string, kind RefKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO refs(name, hash, kind, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET hash = excluded.hash, kind = excluded.kind, updated_at = excluded.updated_at`,
		name, hash, string(kind), now(),
	)
	if err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "set ref %q", name)
	}
	return nil
}

// GetRef looks up a single reference by name.
func (s *Store) GetRef(name string) (*Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var r Ref
	var kind string
	err := s.db.QueryRow(`SELECT name, hash, kind, updated_at FROM refs WHERE name = ?`, name).
		Scan(&r.Name, &r.Hash, &kind, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "get ref %q", name)
	}
	r.Kind = RefKind(kind)
	return &r, nil
}

// ListRefs returns every reference, ordered by name.
func (s *Store) ListRefs() ([]Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.Query(`SELECT name, hash, kind, updated_at FROM refs ORDER BY name`)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "list refs")
	}
	defer rows.Close()
	var out []Ref
	for rows.Next() {
		var r Ref
		var kind string
		if err := rows.Scan(&r.Name, &r.Hash, &kind, &r.UpdatedAt); err != nil {
			return nil, vcserr.Wrap(vcserr.StorageError, err, "scan ref row")
		}
		r.Kind = RefKind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RemoveRef deletes a reference.
func (s *Store) RemoveRef(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM refs WHERE name = ?`, name); err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "remove ref %q", name)
	}
	return nil
}
