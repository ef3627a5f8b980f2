// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package progress wraps github.com/vbauerster/mpb/v8 for the opt-in
// progress reporting of long operations. Garbage collection is its only
// caller; differential import reports no progress. It follows the same decorator layout as the
// teacher's pkg/zeta/transfer.go download/upload bars, narrowed to a
// single counting bar since this engine's long operations are a flat
// object count, not a multi-file transfer with per-object sub-bars.
package progress

import (
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar is a single counting progress bar, or a no-op when quiet.
type Bar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// New starts a bar titled description counting up to total. A quiet bar
// tracks nothing and every method is a no-op, so callers never need to
// branch on quiet themselves.
func New(description string, total int64, quiet bool) *Bar {
	if quiet {
		return &Bar{}
	}
	p := mpb.New(mpb.WithOutput(os.Stderr), mpb.WithAutoRefresh())
	bar := p.New(total,
		mpb.BarStyle().Filler("#").Padding(" "),
		mpb.PrependDecorators(decor.Name(description, decor.WC{W: len(description) + 1, C: decor.DindentRight})),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)
	return &Bar{p: p, bar: bar}
}

// Increment advances the bar by n units.
func (b *Bar) Increment(n int) {
	if b.bar == nil {
		return
	}
	b.bar.IncrBy(n)
}

// Done marks the bar complete and blocks until mpb has finished rendering
// its final frame.
func (b *Bar) Done() {
	if b.bar == nil {
		return
	}
	b.bar.SetTotal(-1, true)
	b.p.Wait()
}
