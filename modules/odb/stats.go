// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import "github.com/antgroup/webdvcs/modules/vcserr"

// Stats is the raw aggregate the store can answer directly from its own
// tables; pkg/repo's status/stats component (C9) adds the
// human-readable framing on top.
type Stats struct {
	ObjectCount       int64
	BlobCount         int64
	TreeCount         int64
	CommitCount       int64
	DeltaCount        int64
	UniqueBases       int64
	TotalUncompressed int64
	TotalStored       int64
	DeltaStored       int64 // stored bytes of delta-encoded rows only
}

// ComputeStats runs the aggregate queries backing spec §4.9's status/stats
// component directly against the objects table.
func (s *Store) ComputeStats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	row := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN type = 'blob' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'tree' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'commit' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(is_delta), 0),
			COALESCE(SUM(size), 0),
			COALESCE(SUM(LENGTH(data)), 0),
			COALESCE(SUM(CASE WHEN is_delta = 1 THEN LENGTH(data) ELSE 0 END), 0)
		FROM objects`)
	if err := row.Scan(
		&st.ObjectCount, &st.BlobCount, &st.TreeCount, &st.CommitCount,
		&st.DeltaCount, &st.TotalUncompressed, &st.TotalStored, &st.DeltaStored,
	); err != nil {
		return Stats{}, vcserr.Wrap(vcserr.StorageError, err, "compute object stats")
	}

	if err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT base_hash) FROM objects WHERE is_delta = 1`,
	).Scan(&st.UniqueBases); err != nil {
		return Stats{}, vcserr.Wrap(vcserr.StorageError, err, "compute unique base count")
	}
	return st, nil
}

// AverageDeltaSize reports the mean stored size of delta-encoded objects,
// or 0 when none exist.
func (st Stats) AverageDeltaSize() float64 {
	if st.DeltaCount == 0 {
		return 0
	}
	return float64(st.DeltaStored) / float64(st.DeltaCount)
}

// CompressionRatio is stored/uncompressed, or 1.0 when there is nothing
// stored yet.
func (st Stats) CompressionRatio() float64 {
	if st.TotalUncompressed == 0 {
		return 1.0
	}
	return float64(st.TotalStored) / float64(st.TotalUncompressed)
}

// ObjectHandle names one stored object without reconstructing its bytes,
// used by modules/transfer to walk every row of a scratch export/import
// image.
type ObjectHandle struct {
	Hash string
	Type string
}

// AllObjectHashes lists every object's hash and type tag.
func (s *Store) AllObjectHashes() ([]ObjectHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.Query(`SELECT hash, type FROM objects`)
	if err != nil {
		return nil, vcserr.Wrap(vcserr.StorageError, err, "list object hashes")
	}
	defer rows.Close()
	var out []ObjectHandle
	for rows.Next() {
		var h ObjectHandle
		if err := rows.Scan(&h.Hash, &h.Type); err != nil {
			return nil, vcserr.Wrap(vcserr.StorageError, err, "scan object handle")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
