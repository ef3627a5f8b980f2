// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diferenco implements the line-diff kernel (spec §4.2): an
// LCS-exact Myers differ over line sequences, a unified-diff formatter and
// a change summary. The algorithm is ported from the teacher's
// modules/diferenco/myers.go; the teacher's multi-algorithm menu
// (histogram/patience/ONP/diffmatchpatch) is dropped since spec §4.2 only
// calls for one correct LCS-style differ, and spec §9's Design Notes flags
// a real LCS implementation as preferable to the source's greedy pass.
package diferenco

import (
	"github.com/antgroup/webdvcs/modules/hashutil"
)

// Kind tags one line of a diff result.
type Kind int8

const (
	Context Kind = 0
	Removed Kind = -1
	Added   Kind = 1
)

func (k Kind) String() string {
	switch k {
	case Removed:
		return "removed"
	case Added:
		return "added"
	default:
		return "context"
	}
}

// Item is one tagged line of a diff.
type Item struct {
	Kind   Kind
	Line   string
	LineNo int // 1-based line number in the side the line came from
}

// Summary reports aggregate counts across a diff result.
type Summary struct {
	Added   int
	Removed int
	Context int
	Changed int // Added + Removed
}

// Result is the outcome of diffing two byte sequences.
type Result struct {
	Identical bool
	Binary    bool
	SizeA     int64
	SizeB     int64
	Items     []Item
}

// Change is one Myers edit-script entry: Del lines starting at seq1[P1] are
// removed, Ins lines starting at seq2[P2] are inserted in their place.
type Change struct {
	P1  int
	P2  int
	Del int
	Ins int
}

// Lines diffs two byte sequences at line granularity. A byte-equal check
// precedes line decoding (spec §4.2: "identical inputs return the
// `identical` shape; byte-equal check precedes line decoding"); binary
// detection short-circuits to a byte-size comparison result.
func Lines(a, b []byte) *Result {
	if bytesEqual(a, b) {
		return &Result{Identical: true, SizeA: int64(len(a)), SizeB: int64(len(b))}
	}
	if hashutil.IsBinary(a, "") || hashutil.IsBinary(b, "") {
		return &Result{Binary: true, SizeA: int64(len(a)), SizeB: int64(len(b))}
	}
	linesA := splitLines(a)
	linesB := splitLines(b)
	changes := MyersDiff(linesA, linesB)
	return &Result{
		SizeA: int64(len(a)),
		SizeB: int64(len(b)),
		Items: changesToItems(changes, linesA, linesB),
	}
}

// Summarize computes aggregate counts over a Result's items.
func Summarize(r *Result) Summary {
	var s Summary
	for _, it := range r.Items {
		switch it.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		default:
			s.Context++
		}
	}
	s.Changed = s.Added + s.Removed
	return s
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// splitLines splits data on '\n', keeping the trailing newline attached to
// each line so a missing final newline is preserved and reproducible.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			lines = append(lines, string(data[start:i+1]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

func changesToItems(changes []Change, a, b []string) []Item {
	var items []Item
	pos1, pos2 := 0, 0
	for _, c := range changes {
		for pos1 < c.P1 {
			items = append(items, Item{Kind: Context, Line: a[pos1], LineNo: pos1 + 1})
			pos1++
			pos2++
		}
		for i := 0; i < c.Del; i++ {
			items = append(items, Item{Kind: Removed, Line: a[c.P1+i], LineNo: c.P1 + i + 1})
		}
		for i := 0; i < c.Ins; i++ {
			items = append(items, Item{Kind: Added, Line: b[c.P2+i], LineNo: c.P2 + i + 1})
		}
		pos1 = c.P1 + c.Del
		pos2 = c.P2 + c.Ins
	}
	for pos1 < len(a) {
		items = append(items, Item{Kind: Context, Line: a[pos1], LineNo: pos1 + 1})
		pos1++
		pos2++
	}
	return items
}
