// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosurf/vecd"
)

// Test_dense01 checks Dense's paired value/lookup Track/Untrack.
func Test_dense01(tst *testing.T) {

	chk.PrintTitle("dense01")

	d := NewDense[float32](vecd.Of[uint32](3, 3), vecd.Of[int32](0, 0), -1, 2)
	p := vecd.Of[int32](1, 1)

	chk.Scalar(tst, "background", 1e-15, float64(d.Get(p)), -1)

	d.Track(p, 2.5, 0)
	chk.Scalar(tst, "value after Track", 1e-15, float64(d.Get(p)), 2.5)
	if !d.U.IsTracked(p, 0) {
		tst.Fatal("p should be tracked in list 0")
	}

	d.Untrack(p, -1, 0)
	chk.Scalar(tst, "value after Untrack", 1e-15, float64(d.Get(p)), -1)
	if d.U.IsTracked(p, 0) {
		tst.Fatal("p should no longer be tracked after Untrack")
	}
}

// Test_lazy01 checks the C5 lazily-activated contract (§4.2): an inactive
// Lazy reports Background and no membership; Activate/Deactivate toggle
// storage; AllEmpty reflects every list across a round trip.
func Test_lazy01(tst *testing.T) {

	chk.PrintTitle("lazy01")

	size := vecd.Of[uint32](2, 2)
	offset := vecd.Of[int32](0, 0)
	t := NewLazy[float32](size, offset, -1, 2)
	p := vecd.Of[int32](0, 0)

	if t.Active() {
		tst.Fatal("fresh Lazy should be inactive")
	}
	chk.Scalar(tst, "background before activate", 1e-15, float64(t.Get(p)), -1)
	if !t.AllEmpty() {
		tst.Fatal("inactive Lazy should report AllEmpty")
	}

	t.Activate()
	if !t.Active() {
		tst.Fatal("Lazy should be active after Activate")
	}
	chk.Scalar(tst, "background after activate", 1e-15, float64(t.Get(p)), -1)
	if !t.AllEmpty() {
		tst.Fatal("just-activated Lazy should still be AllEmpty")
	}

	t.Track(p, 4, 1)
	if t.AllEmpty() {
		tst.Fatal("Lazy should not be AllEmpty once a list has a member")
	}
	chk.Scalar(tst, "value after Track", 1e-15, float64(t.Get(p)), 4)

	t.Untrack(p, -1, 1)
	if !t.AllEmpty() {
		tst.Fatal("Lazy should be AllEmpty again after Untrack empties the only list")
	}

	t.Deactivate(-2)
	if t.Active() {
		tst.Fatal("Lazy should be inactive after Deactivate")
	}
	chk.Scalar(tst, "background after deactivate", 1e-15, float64(t.Get(p)), -2)
}
