// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Adapted from the teacher's modules/diferenco/unified.go, trimmed to the
// single algorithm this package implements and rewired to
// diferenco.Result instead of a second independent code path.

package diferenco

import (
	"fmt"
	"strings"

	"github.com/antgroup/webdvcs/modules/diferenco/color"
)

// DefaultContextLines is the number of unchanged lines of surrounding
// context kept around each change when rendering a unified diff.
const DefaultContextLines = 3

// Hunk is a contiguous run of diff items sharing one @@ header.
type Hunk struct {
	FromLine int
	ToLine   int
	Items    []Item
}

// ToUnified groups a flat diff into hunks, keeping context lines only when
// they sit within contextLines of a change (spec §4.2: "retaining context
// lines only when adjacent to a change").
func ToUnified(items []Item, contextLines int) []Hunk {
	if len(items) == 0 {
		return nil
	}
	changed := make([]bool, len(items))
	for i, it := range items {
		if it.Kind != Context {
			changed[i] = true
		}
	}
	keep := make([]bool, len(items))
	for i, isChange := range changed {
		if !isChange {
			continue
		}
		lo := max(0, i-contextLines)
		hi := min(len(items)-1, i+contextLines)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var hunks []Hunk
	fromLine, toLine := 1, 1
	i := 0
	for i < len(items) {
		if !keep[i] {
			if items[i].Kind != Added {
				fromLine++
			}
			if items[i].Kind != Removed {
				toLine++
			}
			i++
			continue
		}
		start := i
		hunkFrom, hunkTo := fromLine, toLine
		for i < len(items) && keep[i] {
			if items[i].Kind != Added {
				fromLine++
			}
			if items[i].Kind != Removed {
				toLine++
			}
			i++
		}
		hunks = append(hunks, Hunk{FromLine: hunkFrom, ToLine: hunkTo, Items: items[start:i]})
	}
	return hunks
}

// Unified renders items as a standard unified diff against fromPath and
// toPath, optionally colorized via cc (pass color.Plain() for none).
func Unified(items []Item, fromPath, toPath string, cc color.Config) string {
	hunks := ToUnified(items, DefaultContextLines)
	if len(hunks) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintln(&b, cc.Paint(color.Meta, "--- "+fromPath))
	fmt.Fprintln(&b, cc.Paint(color.Meta, "+++ "+toPath))
	for _, h := range hunks {
		fromCount, toCount := 0, 0
		for _, it := range h.Items {
			switch it.Kind {
			case Removed:
				fromCount++
			case Added:
				toCount++
			default:
				fromCount++
				toCount++
			}
		}
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.FromLine, fromCount, h.ToLine, toCount)
		fmt.Fprintln(&b, cc.Paint(color.Frag, header))
		for _, it := range h.Items {
			line := strings.TrimSuffix(it.Line, "\n")
			switch it.Kind {
			case Removed:
				fmt.Fprintln(&b, cc.Paint(color.Old, "-"+line))
			case Added:
				fmt.Fprintln(&b, cc.Paint(color.New, "+"+line))
			default:
				fmt.Fprintln(&b, cc.Paint(color.Context, " "+line))
			}
		}
	}
	return b.String()
}
