// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package odb implements the object store of spec §4.4: a content-addressed
// table of typed records (blob/tree/commit) backed by an embedded,
// server-less SQL engine, plus the refs and metadata tables that round out
// the persistent format of spec §6. Structurally this follows the
// teacher's modules/zeta/backend.Database — an Option-configured handle
// guarding one storage connection behind a mutex, with an LRU decode cache
// — but the teacher's filesystem-plus-pack storage layer is replaced
// wholesale with a single modernc.org/sqlite database, the concrete
// "embedded SQL engine" spec §6 requires (the teacher's own
// go-sql-driver/mysql is a client/server driver and cannot serve that
// role; see DESIGN.md).
package odb

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	_ "modernc.org/sqlite"

	"github.com/antgroup/webdvcs/modules/vcserr"
)

const schema = `
CREATE TABLE IF NOT EXISTS objects (
	hash        TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	size        INTEGER NOT NULL,
	data        BLOB NOT NULL,
	compression TEXT NOT NULL,
	is_delta    INTEGER NOT NULL DEFAULT 0,
	base_hash   TEXT,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_objects_type ON objects(type);

CREATE TABLE IF NOT EXISTS refs (
	name       TEXT PRIMARY KEY,
	hash       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_refs_kind ON refs(kind);

CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is a handle onto one repository's embedded database. It owns a
// single SQL connection, per spec §5's "the repository owns one SQL
// connection" resource rule — the pool is capped at one open connection
// so transactions behave as the spec's single-logical-writer model
// expects.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.RWMutex

	decodeCache *ristretto.Cache[string, []byte]
}

// Option configures a Store at construction.
type Option func(*Store)

// WithDecodeCache enables an in-process ristretto cache of reconstructed (post-delta,
// post-compression) object bytes, mirroring the teacher's metaLRU.
func WithDecodeCache(enabled bool) Option {
	return func(s *Store) {
		if !enabled {
			return
		}
		cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
			NumCounters: 100000,
			MaxCost:     64 << 20,
			BufferItems: 64,
		})
		if err == nil {
			s.decodeCache = cache
		}
	}
}

// Open opens (creating if absent) the SQLite-backed store at path and
// ensures its schema exists.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "open object store")
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, vcserr.Wrap(vcserr.StorageError, err, "initialize object store schema")
	}
	s := &Store{path: path, db: db}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// OpenMemory opens a transient in-memory store, used for building the
// scratch export/import images of modules/transfer.
func OpenMemory() (*Store, error) {
	return Open("file::memory:?cache=shared")
}

// Path returns the filesystem path this store was opened from.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying SQL connection.
func (s *Store) Close() error {
	if s.decodeCache != nil {
		s.decodeCache.Close()
	}
	if err := s.db.Close(); err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "close object store")
	}
	return nil
}

// WithTx wraps fn in BEGIN/COMMIT/ROLLBACK, per spec §5's transaction
// requirement for multi-statement sequences (commit, merge, import, GC).
func (s *Store) WithTx(fn func(*sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "commit transaction")
	}
	return nil
}

// ExportBytes serialises the whole store as a byte image, the format
// modules/transfer ships between repositories (spec §4.8, §6).
func (s *Store) ExportBytes() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmp, err := os.CreateTemp("", "webdvcs-export-*.db")
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "create export scratch file")
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	if _, err := s.db.Exec(fmt.Sprintf("VACUUM INTO '%s'", tmpPath)); err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "vacuum export image")
	}
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "read export image")
	}
	return data, nil
}

func now() int64 {
	return time.Now().Unix()
}
