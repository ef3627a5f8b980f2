// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package repo implements the repository controller of spec §4.6: the
// staging set, removal set, branch bookkeeping, commit construction,
// checkout, reset, and garbage collection built on top of modules/odb,
// modules/object, modules/refs, and modules/merge. It plays the role the
// teacher gives pkg/zeta's repository façade — one owned object-store
// handle with staging state and a debug-controlled logger threaded
// through every operation.
package repo

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/antgroup/webdvcs/modules/odb"
	"github.com/antgroup/webdvcs/modules/refs"
	"github.com/antgroup/webdvcs/modules/vcserr"
	"github.com/antgroup/webdvcs/pkg/config"
)

const (
	stagePrefix  = "stage:"
	removePrefix = "remove:"

	metaAuthorName  = "author.name"
	metaAuthorEmail = "author.email"
)

// StageEntry is one path queued for the next commit.
type StageEntry struct {
	Hash   string `json:"hash"`
	Size   int64  `json:"size"`
	Binary bool   `json:"binary"`
}

// Repository is the controller of spec §4.6: one object store, a staging
// set, a removal set, and a logger, all scoped to a single embedded
// database file.
type Repository struct {
	store *odb.Store
	log   *logrus.Entry

	mu      sync.Mutex
	staged  map[string]StageEntry
	removed map[string]bool
}

// Open opens (creating if absent) the repository at path and rehydrates
// its staging/removal sets from the metadata table, per spec §9's
// "Staging persistence" design note.
func Open(path string) (*Repository, error) {
	store, err := odb.Open(path, odb.WithDecodeCache(true))
	if err != nil {
		return nil, err
	}
	r := &Repository{
		store:   store,
		log:     newLogger(),
		staged:  make(map[string]StageEntry),
		removed: make(map[string]bool),
	}
	if err := r.rehydrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return r, nil
}

// Init opens path, ensuring the schema exists and the current branch
// defaults to main — the entry point for the CLI's `init` command.
func Init(path string) (*Repository, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	branch, err := refs.CurrentBranch(r.store)
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	if err := refs.SetCurrentBranch(r.store, branch); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func newLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l.WithField("component", "repo")
}

// SetDebug raises or lowers the repository's log level, the single debug
// flag spec §4.6 says the controller holds.
func (r *Repository) SetDebug(debug bool) {
	if debug {
		r.log.Logger.SetLevel(logrus.DebugLevel)
		return
	}
	r.log.Logger.SetLevel(logrus.WarnLevel)
}

// Close releases the underlying object store.
func (r *Repository) Close() error {
	return r.store.Close()
}

// Store exposes the underlying object store for modules/merge and
// modules/transfer, who borrow it for the duration of one call per spec
// §9's "Shared mutable handle" design note.
func (r *Repository) Store() *odb.Store {
	return r.store
}

func (r *Repository) rehydrate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged, err := r.store.ListMetaPrefix(stagePrefix)
	if err != nil {
		return err
	}
	for key, raw := range staged {
		var e StageEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue // a corrupt persisted entry is dropped, not fatal
		}
		has, err := r.store.HasObject(e.Hash)
		if err != nil {
			return err
		}
		if !has {
			continue // the blob it pointed at is gone; drop the stale entry
		}
		r.staged[strings.TrimPrefix(key, stagePrefix)] = e
	}

	removed, err := r.store.ListMetaPrefix(removePrefix)
	if err != nil {
		return err
	}
	for key := range removed {
		r.removed[strings.TrimPrefix(key, removePrefix)] = true
	}
	return nil
}

func (r *Repository) persistStage(path string, e StageEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "encode stage entry for %q", path)
	}
	return r.store.SetMeta(stagePrefix+path, string(raw))
}

func (r *Repository) forgetStage(path string) error {
	return r.store.DeleteMeta(stagePrefix + path)
}

func (r *Repository) persistRemoval(path string) error {
	return r.store.SetMeta(removePrefix+path, "1")
}

func (r *Repository) forgetRemoval(path string) error {
	return r.store.DeleteMeta(removePrefix + path)
}

// clearStaging empties the in-memory staging set and its metadata mirror.
func (r *Repository) clearStaging() error {
	for path := range r.staged {
		if err := r.forgetStage(path); err != nil {
			return err
		}
	}
	r.staged = make(map[string]StageEntry)
	return nil
}

// clearRemovals empties the in-memory removal set and its metadata mirror.
func (r *Repository) clearRemovals() error {
	for path := range r.removed {
		if err := r.forgetRemoval(path); err != nil {
			return err
		}
	}
	r.removed = make(map[string]bool)
	return nil
}

// Author returns the authorship defaults recorded in the metadata table,
// falling back to cfg's CLI-level defaults when the repository has never
// had an author configured (spec §6's authorship-metadata fallback chain).
func (r *Repository) Author(cfg *config.Config) (name, email string, err error) {
	name, ok, err := r.store.GetMeta(metaAuthorName)
	if err != nil {
		return "", "", err
	}
	if !ok {
		name = cfg.Author.Name
	}
	email, ok, err = r.store.GetMeta(metaAuthorEmail)
	if err != nil {
		return "", "", err
	}
	if !ok {
		email = cfg.Author.Email
	}
	return name, email, nil
}

// SetAuthor persists repository-level authorship defaults.
func (r *Repository) SetAuthor(name, email string) error {
	if err := r.store.SetMeta(metaAuthorName, name); err != nil {
		return err
	}
	return r.store.SetMeta(metaAuthorEmail, email)
}
