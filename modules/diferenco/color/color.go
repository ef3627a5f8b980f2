// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package color wires the unified-diff printer's four semantic colors
// (meta, fragment header, removed, added) to ANSI sequences.
package color

import "github.com/mgutz/ansi"

// Key identifies one semantic slot in a rendered diff.
type Key string

const (
	Meta    Key = "meta"    // "--- a/..." / "+++ b/..." lines
	Frag    Key = "frag"    // "@@ ... @@" hunk headers
	Old     Key = "old"     // removed lines
	New     Key = "new"     // added lines
	Context Key = "context" // unchanged lines
)

// Config maps each Key to an ansi.ColorFunc. A nil Config (or a missing
// key) renders with no color.
type Config map[Key]func(string) string

// Default returns the color scheme used by `webdvcs diff` when stdout is a
// terminal, matching the conventional git palette (bold meta, cyan
// fragments, red removals, green additions).
func Default() Config {
	return Config{
		Meta:    ansi.ColorFunc("white+b"),
		Frag:    ansi.ColorFunc("cyan"),
		Old:     ansi.ColorFunc("red"),
		New:     ansi.ColorFunc("green"),
		Context: noColor,
	}
}

// Plain returns a Config that never colorizes, used when output is not a
// terminal or the caller passed --no-color.
func Plain() Config {
	return Config{}
}

func noColor(s string) string { return s }

// Paint renders s in the color assigned to key, or unchanged if cc is nil
// or has no function for key.
func (cc Config) Paint(key Key, s string) string {
	if cc == nil {
		return s
	}
	if fn, ok := cc[key]; ok && fn != nil {
		return fn(s)
	}
	return s
}
