// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package progress

import "testing"

func TestQuietBarIsNoOp(t *testing.T) {
	b := New("gc", 10, true)
	b.Increment(5)
	b.Done()
}

func TestBarIncrementAndDone(t *testing.T) {
	b := New("gc", 3, false)
	b.Increment(1)
	b.Increment(2)
	b.Done()
}
