// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"database/sql"
	"errors"

	"github.com/antgroup/webdvcs/modules/deltacodec"
	"github.com/antgroup/webdvcs/modules/hashutil"
	"github.com/antgroup/webdvcs/modules/object"
	"github.com/antgroup/webdvcs/modules/vcserr"
)

// Delta policy constants from spec §4.3.
const (
	// Kd is the maximum delta/new-content size ratio for a delta to be
	// worth storing; at or above it the store falls back to full bytes.
	Kd = 0.9
	// Tmin is the minimum content size eligible for delta storage.
	Tmin = 256
	// Dmax is the maximum delta-chain depth before a write must
	// materialise full content instead of extending the chain.
	Dmax = 16
)

// Reason explains why store_blob_with_delta chose full or delta storage.
type Reason string

const (
	ReasonOKFull               Reason = "ok_full"
	ReasonOKDelta              Reason = "ok_delta"
	ReasonFileTooSmall         Reason = "file_too_small"
	ReasonInsufficientSimilar  Reason = "insufficient_similarity"
	ReasonBaseNotFound         Reason = "base_not_found"
	ReasonNoBaseHash           Reason = "no_base_hash"
)

// PutResult is returned by PutObject.
type PutResult struct {
	Hash  string
	IsNew bool
}

// DeltaResult is returned by StoreBlobWithDelta.
type DeltaResult struct {
	Hash             string
	UsedDelta        bool
	DeltaSize        int
	CompressionRatio float64
	Reason           Reason
}

// ObjectRecord is a fully reconstructed, delta-resolved object as read
// back by GetObject.
type ObjectRecord struct {
	Hash        string
	Type        object.Type
	Size        int64
	Data        []byte
	Compression string
}

// PutObject stores data as a full (non-delta) record of the given type,
// computing its digest and skipping the write if already present (spec
// §4.4: "computes digest, inserts if absent, returns existence flag").
func (s *Store) PutObject(data []byte, typ object.Type) (PutResult, error) {
	hash := object.HashBytes(data)
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.hasObjectLocked(hash)
	if err != nil {
		return PutResult{}, err
	}
	if exists {
		return PutResult{Hash: hash, IsNew: false}, nil
	}
	frame, err := encodeFrame(data)
	if err != nil {
		return PutResult{}, vcserr.Wrap(vcserr.StorageError, err, "encode object frame")
	}
	if _, err := s.db.Exec(
		`INSERT INTO objects(hash, type, size, data, compression, is_delta, base_hash, created_at)
		 VALUES (?, ?, ?, ?, 'zstd', 0, NULL, ?)`,
		hash, typ.String(), len(data), frame, now(),
	); err != nil {
		return PutResult{}, vcserr.Wrap(vcserr.StorageError, err, "insert object")
	}
	return PutResult{Hash: hash, IsNew: true}, nil
}

// StoreBlobWithDelta stores data as a blob, optionally delta-encoded
// against baseHash, applying the §4.3 size-floor and similarity-ratio
// policy. baseHash == "" always stores full content.
func (s *Store) StoreBlobWithDelta(data []byte, baseHash string) (DeltaResult, error) {
	hash := object.HashBytes(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.hasObjectLocked(hash)
	if err != nil {
		return DeltaResult{}, err
	}
	if exists {
		return DeltaResult{Hash: hash, Reason: ReasonOKFull}, nil
	}

	if baseHash == "" {
		return s.storeFullLocked(hash, data, ReasonNoBaseHash)
	}
	if len(data) < Tmin {
		return s.storeFullLocked(hash, data, ReasonFileTooSmall)
	}

	base, err := s.getObjectLocked(baseHash, 0)
	if err != nil {
		return DeltaResult{}, err
	}
	if base == nil {
		return s.storeFullLocked(hash, data, ReasonBaseNotFound)
	}

	depth, err := s.deltaChainDepthLocked(baseHash)
	if err != nil {
		return DeltaResult{}, err
	}
	if depth+1 > Dmax {
		return s.storeFullLocked(hash, data, ReasonInsufficientSimilar)
	}

	delta := deltacodec.Encode(base.Data, data)
	effectiveSize := hashutil.HexSize + len(delta)
	if float64(effectiveSize) >= Kd*float64(len(data)) {
		return s.storeFullLocked(hash, data, ReasonInsufficientSimilar)
	}

	frame, err := encodeDeltaFrame(baseHash, delta)
	if err != nil {
		return DeltaResult{}, vcserr.Wrap(vcserr.StorageError, err, "encode delta frame")
	}
	if _, err := s.db.Exec(
		`INSERT INTO objects(hash, type, size, data, compression, is_delta, base_hash, created_at)
		 VALUES (?, 'blob', ?, ?, 'zstd', 1, ?, ?)`,
		hash, len(data), frame, baseHash, now(),
	); err != nil {
		return DeltaResult{}, vcserr.Wrap(vcserr.StorageError, err, "insert delta object")
	}
	return DeltaResult{
		Hash:             hash,
		UsedDelta:        true,
		DeltaSize:        effectiveSize,
		CompressionRatio: float64(effectiveSize) / float64(len(data)),
		Reason:           ReasonOKDelta,
	}, nil
}

func (s *Store) storeFullLocked(hash string, data []byte, reason Reason) (DeltaResult, error) {
	frame, err := encodeFrame(data)
	if err != nil {
		return DeltaResult{}, vcserr.Wrap(vcserr.StorageError, err, "encode object frame")
	}
	if _, err := s.db.Exec(
		`INSERT INTO objects(hash, type, size, data, compression, is_delta, base_hash, created_at)
		 VALUES (?, 'blob', ?, ?, 'zstd', 0, NULL, ?)`,
		hash, len(data), frame, now(),
	); err != nil {
		return DeltaResult{}, vcserr.Wrap(vcserr.StorageError, err, "insert object")
	}
	return DeltaResult{
		Hash:             hash,
		UsedDelta:        false,
		DeltaSize:        len(frame),
		CompressionRatio: float64(len(frame)) / float64(max(len(data), 1)),
		Reason:           reason,
	}, nil
}

// deltaChainDepthLocked walks base_hash pointers to find how many delta
// hops lie under baseHash already, so a new delta on top of it can be
// checked against Dmax.
func (s *Store) deltaChainDepthLocked(hash string) (int, error) {
	depth := 0
	current := hash
	for depth <= Dmax {
		var isDelta int
		var base sql.NullString
		err := s.db.QueryRow(`SELECT is_delta, base_hash FROM objects WHERE hash = ?`, current).Scan(&isDelta, &base)
		if errors.Is(err, sql.ErrNoRows) {
			return depth, nil
		}
		if err != nil {
			return 0, vcserr.Wrap(vcserr.StorageError, err, "walk delta chain")
		}
		if isDelta == 0 || !base.Valid {
			return depth, nil
		}
		depth++
		current = base.String
	}
	return depth, nil
}

// GetObject reconstructs full object bytes, transparently walking any
// delta chain. A missing object, missing base, or corrupt frame all
// return (nil, nil) per spec §4.4's "Failure semantics".
func (s *Store) GetObject(hash string) (*ObjectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getObjectLocked(hash, 0)
}

func (s *Store) getObjectLocked(hash string, depth int) (*ObjectRecord, error) {
	if depth > Dmax {
		return nil, nil
	}
	if s.decodeCache != nil {
		if cached, ok := s.decodeCache.Get(hash); ok {
			rec, err := s.objectMetaLocked(hash)
			if err != nil || rec == nil {
				return rec, err
			}
			rec.Data = cached
			return rec, nil
		}
	}

	var typeStr, compression string
	var size int64
	var data []byte
	err := s.db.QueryRow(
		`SELECT type, size, data, compression FROM objects WHERE hash = ?`, hash,
	).Scan(&typeStr, &size, &data, &compression)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "read object")
	}

	frame, err := decodeFrame(data)
	if err != nil {
		return nil, nil // corrupted frame: treat as absent per §4.4
	}

	var payload []byte
	if !frame.isDelta {
		payload = frame.payload
	} else {
		base, err := s.getObjectLocked(frame.baseHash, depth+1)
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, nil
		}
		payload, err = applyDeltaChain(base.Data, frame.payload)
		if err != nil {
			return nil, nil
		}
	}

	typ, err := object.ParseType(typeStr)
	if err != nil {
		return nil, nil
	}
	if s.decodeCache != nil {
		s.decodeCache.Set(hash, payload, int64(len(payload)))
	}
	return &ObjectRecord{Hash: hash, Type: typ, Size: size, Data: payload, Compression: compression}, nil
}

func (s *Store) objectMetaLocked(hash string) (*ObjectRecord, error) {
	var typeStr, compression string
	var size int64
	err := s.db.QueryRow(
		`SELECT type, size, compression FROM objects WHERE hash = ?`, hash,
	).Scan(&typeStr, &size, &compression)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "read object metadata")
	}
	typ, err := object.ParseType(typeStr)
	if err != nil {
		return nil, nil
	}
	return &ObjectRecord{Hash: hash, Type: typ, Size: size, Compression: compression}, nil
}

// HasObject reports whether hash is present, without reconstructing it.
func (s *Store) HasObject(hash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasObjectLocked(hash)
}

func (s *Store) hasObjectLocked(hash string) (bool, error) {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM objects WHERE hash = ?`, hash).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, vcserr.Wrap(vcserr.StorageError, err, "check object existence")
	}
	return true, nil
}

// RemoveObject deletes an object row outright; callers (GC) are
// responsible for only removing unreachable objects.
func (s *Store) RemoveObject(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM objects WHERE hash = ?`, hash); err != nil {
		return vcserr.Wrap(vcserr.StorageError, err, "remove object")
	}
	return nil
}

// RemoveObjects deletes every hash in one BEGIN/COMMIT/ROLLBACK
// transaction, the multi-statement-sequence guarantee spec §5 requires
// for garbage collection: a failure partway through leaves every object
// row untouched rather than half-deleted.
func (s *Store) RemoveObjects(hashes []string, onProgress func(done int)) error {
	return s.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`DELETE FROM objects WHERE hash = ?`)
		if err != nil {
			return vcserr.Wrap(vcserr.StorageError, err, "prepare bulk object delete")
		}
		defer stmt.Close()
		for i, hash := range hashes {
			if _, err := stmt.Exec(hash); err != nil {
				return vcserr.Wrap(vcserr.StorageError, err, "remove object %s", hash)
			}
			if onProgress != nil {
				onProgress(i + 1)
			}
		}
		return nil
	})
}
