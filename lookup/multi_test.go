// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lookup

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosurf/vecd"
)

// Test_multi01 checks the bidirectional invariant (§8 invariant 4):
// Track/Untrack keep cell membership and list contents in agreement,
// including the swap-with-last-then-pop removal in the middle of a list.
func Test_multi01(tst *testing.T) {

	chk.PrintTitle("multi01")

	m := NewMulti(vecd.Of[uint32](4, 4), vecd.Of[int32](0, 0), 2)

	a := vecd.Of[int32](0, 0)
	b := vecd.Of[int32](1, 0)
	c := vecd.Of[int32](2, 0)

	chk.IntAssert(btoi(m.Track(a, 0)), 1)
	chk.IntAssert(btoi(m.Track(b, 0)), 1)
	chk.IntAssert(btoi(m.Track(c, 0)), 1)
	chk.IntAssert(btoi(m.Track(a, 0)), 0) // already a member

	chk.IntAssert(m.ListLen(0), 3)
	if !m.IsTracked(b, 0) {
		tst.Fatal("b should be tracked in list 0")
	}
	if m.IsTracked(b, 1) {
		tst.Fatal("b should not be tracked in list 1")
	}

	m.Untrack(a, 0) // removes the first entry, swapping c into its slot
	chk.IntAssert(m.ListLen(0), 2)
	if m.IsTracked(a, 0) {
		tst.Fatal("a should no longer be tracked")
	}
	if !m.IsTracked(b, 0) || !m.IsTracked(c, 0) {
		tst.Fatal("b and c should still be tracked after the swap-remove")
	}

	found := map[[2]int32]bool{}
	for _, p := range m.List(0) {
		found[[2]int32{p[0], p[1]}] = true
	}
	if !found[[2]int32{1, 0}] || !found[[2]int32{2, 0}] {
		tst.Fatal("list(0) should contain exactly {b, c} after removing a")
	}
}

// Test_multi02 checks AnyTracked/AllEmpty/Reset.
func Test_multi02(tst *testing.T) {

	chk.PrintTitle("multi02")

	m := NewMulti(vecd.Of[uint32](3, 3), vecd.Of[int32](0, 0), 3)
	p := vecd.Of[int32](1, 1)

	if !m.AllEmpty() {
		tst.Fatal("fresh Multi should be all empty")
	}
	m.Track(p, 1)
	if m.AllEmpty() {
		tst.Fatal("Multi should no longer be all empty")
	}
	if !m.AnyTracked(p) {
		tst.Fatal("p should be tracked in some list")
	}
	m.Reset(1)
	if !m.AllEmpty() {
		tst.Fatal("Reset should empty list 1, and it was the only non-empty list")
	}
	if m.AnyTracked(p) {
		tst.Fatal("p should no longer be tracked after Reset")
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
