// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// RepoStats is the human-facing form of odb.Stats (spec §4.9).
type RepoStats struct {
	ObjectCount       int64
	BlobCount         int64
	TreeCount         int64
	CommitCount       int64
	DeltaCount        int64
	UniqueBases       int64
	TotalUncompressed int64
	TotalStored       int64
	CompressionRatio  float64
	AverageDeltaSize  float64
}

// Stats computes the aggregate object/compression statistics of spec
// §4.9 directly from the object store.
func (r *Repository) Stats() (RepoStats, error) {
	st, err := r.store.ComputeStats()
	if err != nil {
		return RepoStats{}, err
	}
	return RepoStats{
		ObjectCount:       st.ObjectCount,
		BlobCount:         st.BlobCount,
		TreeCount:         st.TreeCount,
		CommitCount:       st.CommitCount,
		DeltaCount:        st.DeltaCount,
		UniqueBases:       st.UniqueBases,
		TotalUncompressed: st.TotalUncompressed,
		TotalStored:       st.TotalStored,
		CompressionRatio:  st.CompressionRatio(),
		AverageDeltaSize:  st.AverageDeltaSize(),
	}, nil
}

// SizeSummary is the narrative form of RepoStats, flagging when storage
// overhead suggests the repository would benefit from garbage collection.
type SizeSummary struct {
	Headline          string
	NeedsOptimisation bool
	OverheadFraction  float64
}

// SizeSummary reports a short human-readable assessment of repository
// size and flags "needs optimisation" when the part of the embedded
// database's on-disk size not taken by stored object bytes is more than
// 10% of that on-disk size (spec §4.9's `db_overhead`).
func (r *Repository) SizeSummary() (SizeSummary, error) {
	st, err := r.Stats()
	if err != nil {
		return SizeSummary{}, err
	}
	if st.TotalUncompressed == 0 {
		return SizeSummary{Headline: "empty repository"}, nil
	}

	var overhead float64
	if fi, err := os.Stat(r.store.Path()); err == nil && fi.Size() > 0 {
		diff := fi.Size() - st.TotalStored
		if diff > 0 {
			overhead = float64(diff) / float64(fi.Size())
		}
	}
	needsOpt := overhead > 0.10
	headline := fmt.Sprintf(
		"%s objects, %s stored (%s uncompressed), %.1f%% db overhead",
		humanize.Comma(st.ObjectCount),
		humanize.Bytes(uint64(st.TotalStored)),
		humanize.Bytes(uint64(st.TotalUncompressed)),
		overhead*100,
	)
	if needsOpt {
		headline += " — run garbage collection to reclaim space"
	}
	return SizeSummary{Headline: headline, NeedsOptimisation: needsOpt, OverheadFraction: overhead}, nil
}
