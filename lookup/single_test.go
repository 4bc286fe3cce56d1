// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lookup

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosurf/vecd"
)

// Test_single01 checks Single's push-back/swap-remove bookkeeping, the same
// bidirectional invariant Multi holds but with one list and no list id.
func Test_single01(tst *testing.T) {

	chk.PrintTitle("single01")

	s := NewSingle(vecd.Of[uint32](4, 4), vecd.Of[int32](0, 0))

	a := vecd.Of[int32](0, 0)
	b := vecd.Of[int32](1, 2)
	c := vecd.Of[int32](3, 3)

	chk.IntAssert(btoi(s.Track(a)), 1)
	chk.IntAssert(btoi(s.Track(b)), 1)
	chk.IntAssert(btoi(s.Track(c)), 1)
	chk.IntAssert(btoi(s.Track(a)), 0)
	chk.IntAssert(s.Len(), 3)

	s.Untrack(b) // middle removal swaps c into b's slot
	chk.IntAssert(s.Len(), 2)
	if s.IsTracked(b) {
		tst.Fatal("b should no longer be tracked")
	}
	if !s.IsTracked(a) || !s.IsTracked(c) {
		tst.Fatal("a and c should still be tracked after removing b")
	}

	s.Reset()
	chk.IntAssert(s.Len(), 0)
	if s.IsTracked(a) || s.IsTracked(c) {
		tst.Fatal("Reset should untrack everything")
	}
}
