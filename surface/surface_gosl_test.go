// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosurf/vecd"
)

// Test_seed01 checks Seed's city-block (Manhattan) distance pyramid against
// the 5×5, L=2 layout worked through by hand: a centred seed produces
// |dx|+|dy| at every point within L1 distance 2, nothing beyond it.
func Test_seed01(tst *testing.T) {

	chk.PrintTitle("seed01")

	s := NewSurface(vecd.Of[int32](5, 5), vecd.Splat[uint32](2, 8))
	s.Seed(vecd.Of[int32](0, 0))

	expected := [5][5]float64{
		{3, 3, 2, 3, 3},
		{3, 2, 1, 2, 3},
		{2, 1, 0, 1, 2},
		{3, 2, 1, 2, 3},
		{3, 3, 2, 3, 3},
	}
	for yi := int32(0); yi < 5; yi++ {
		for xi := int32(0); xi < 5; xi++ {
			pos := vecd.Of[int32](xi-2, yi-2)
			got := float64(s.Iso().Get(pos))
			want := expected[yi][xi]
			if want > float64(s.L) {
				want = float64(s.L + 1)
			}
			io.Pforan("pos=%v got=%v want=%v\n", pos, got, want)
			chk.Scalar(tst, io.Sf("iso(%v)", pos), 1e-15, got, want)
		}
	}
}

// Test_roundLayer01 checks the half-integer tie-bias (§9: round(val+ε)).
func Test_roundLayer01(tst *testing.T) {

	chk.PrintTitle("roundLayer01")

	chk.IntAssert(roundLayer(0.0), 0)
	chk.IntAssert(roundLayer(0.49), 0)
	chk.IntAssert(roundLayer(0.5), 1)
	chk.IntAssert(roundLayer(-0.49), 0)
	chk.IntAssert(roundLayer(-0.5), 0)
	chk.IntAssert(roundLayer(-0.51), -1)
	chk.IntAssert(roundLayer(1.5), 2)
}
