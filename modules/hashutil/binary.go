// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package hashutil

import (
	"bytes"
	"path/filepath"
	"strings"
)

// sniffLen mirrors the teacher's own text/binary sniff window
// (modules/zeta/object/text.go).
const sniffLen = 8 * 1024

// nonPrintableRatio is the fraction of non-printable bytes (outside
// \t \n \r) in the sniff window above which content is declared binary.
const nonPrintableRatio = 0.30

// textExtensions is an advisory allow-list: a file whose name carries one
// of these extensions is treated as text even if the non-printable-byte
// ratio would otherwise flag it. Per spec Design Notes this list is
// advisory only — the NUL-byte rule below always wins.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".go": true, ".py": true, ".js": true,
	".ts": true, ".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".xml": true, ".html": true, ".css": true, ".csv": true, ".sh": true,
	".c": true, ".h": true, ".cpp": true, ".hpp": true, ".java": true,
	".rs": true, ".rb": true,
}

// IsBinary applies the heuristic of spec §4.1: scan up to the first 8 KiB,
// declare binary if a NUL byte appears anywhere in that window (this rule
// is authoritative and cannot be overridden), otherwise declare binary if
// the fraction of non-printable bytes outside {\t,\n,\r} exceeds 30%,
// unless name carries an allow-listed text extension.
func IsBinary(data []byte, name string) bool {
	window := data
	if len(window) > sniffLen {
		window = window[:sniffLen]
	}
	if bytes.IndexByte(window, 0) != -1 {
		return true
	}
	if len(window) == 0 {
		return false
	}
	nonPrintable := 0
	for _, b := range window {
		if isPrintableOrAllowed(b) {
			continue
		}
		nonPrintable++
	}
	ratio := float64(nonPrintable) / float64(len(window))
	if ratio <= nonPrintableRatio {
		return false
	}
	if name != "" && textExtensions[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	return true
}

func isPrintableOrAllowed(b byte) bool {
	if b == '\t' || b == '\n' || b == '\r' {
		return true
	}
	return b >= 0x20 && b != 0x7f
}
