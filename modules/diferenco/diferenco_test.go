// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diferenco

import (
	"testing"

	"github.com/antgroup/webdvcs/modules/diferenco/color"
	"github.com/stretchr/testify/require"
)

func TestLinesIdentical(t *testing.T) {
	r := Lines([]byte("a\nb\nc\n"), []byte("a\nb\nc\n"))
	require.True(t, r.Identical)
	require.Empty(t, r.Items)
}

func TestLinesBinaryShortCircuit(t *testing.T) {
	a := append([]byte("hdr"), 0x00, 'x')
	b := append([]byte("hdr"), 0x00, 'y', 'z')
	r := Lines(a, b)
	require.True(t, r.Binary)
	require.Equal(t, int64(len(a)), r.SizeA)
	require.Equal(t, int64(len(b)), r.SizeB)
}

func TestLinesSimpleEdit(t *testing.T) {
	a := []byte("one\ntwo\nthree\n")
	b := []byte("one\nTWO\nthree\nfour\n")
	r := Lines(a, b)
	require.False(t, r.Identical)
	require.False(t, r.Binary)
	sum := Summarize(r)
	require.Equal(t, 1, sum.Removed)
	require.Equal(t, 2, sum.Added)
	require.Equal(t, 2, sum.Context)
}

func TestMyersDiffEmptySides(t *testing.T) {
	require.Equal(t, []Change{{Ins: 2}}, MyersDiff([]string{}, []string{"a", "b"}))
	require.Equal(t, []Change{{Del: 2}}, MyersDiff([]string{"a", "b"}, []string{}))
	require.Nil(t, MyersDiff([]string{}, []string{}))
}

func TestMyersDiffReconstructs(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"a", "x", "c", "d", "y", "e"}
	changes := MyersDiff(a, b)
	got := apply(a, b, changes)
	require.Equal(t, b, got)
}

func apply(a, b []string, changes []Change) []string {
	var out []string
	pos1 := 0
	for _, c := range changes {
		out = append(out, a[pos1:c.P1]...)
		out = append(out, b[c.P2:c.P2+c.Ins]...)
		pos1 = c.P1 + c.Del
	}
	out = append(out, a[pos1:]...)
	return out
}

func TestUnifiedRendersHunks(t *testing.T) {
	a := []byte("one\ntwo\nthree\nfour\nfive\n")
	b := []byte("one\ntwo\nTHREE\nfour\nfive\n")
	r := Lines(a, b)
	out := Unified(r.Items, "a/f.txt", "b/f.txt", color.Plain())
	require.Contains(t, out, "--- a/f.txt")
	require.Contains(t, out, "+++ b/f.txt")
	require.Contains(t, out, "-three")
	require.Contains(t, out, "+THREE")
}

func TestUnifiedEmptyWhenNoChanges(t *testing.T) {
	r := Lines([]byte("a\n"), []byte("a\n"))
	require.Empty(t, Unified(r.Items, "a", "b", color.Plain()))
}
