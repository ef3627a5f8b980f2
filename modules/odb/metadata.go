// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"database/sql"
	"errors"

	"github.com/antgroup/webdvcs/modules/vcserr"
)

// SetMeta stores a scalar key/value pair, used for current_branch,
// author.name/email and the persisted staging mirror (spec §3).
func (s *Store) SetMeta(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO metadata(key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "set metadata %q", key)
	}
	return nil
}

// GetMeta returns a key's value and whether it was present.
func (s *Store) GetMeta(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var value string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, vcserr.Wrap(vcserr.StorageError, err, "get metadata %q", key)
	}
	return value, true, nil
}

// DeleteMeta removes a key.
func (s *Store) DeleteMeta(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "delete metadata %q", key)
	}
	return nil
}

// ListMetaPrefix returns every key/value pair whose key starts with
// prefix, used by the repository controller to restore the staging
// mirror on reopen.
func (s *Store) ListMetaPrefix(prefix string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.Query(`SELECT key, value FROM metadata WHERE key LIKE ? || '%'`, prefix)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "list metadata prefix %q", prefix)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, vcserr.Wrap(vcserr.StorageError, err, "scan metadata row")
		}
		out[k] = v
	}
	return out, rows.Err()
}
