// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosurf/vecd"
)

// Test_dense01 checks that every cell starts at fill, Set/Get round-trip,
// and PosOf inverts Index across a non-zero offset.
func Test_dense01(tst *testing.T) {

	chk.PrintTitle("dense01")

	size := vecd.Of[uint32](3, 4)
	offset := vecd.Of[int32](-1, -2)
	g := NewDense[float32](size, offset, 9)

	for _, c := range g.Buf {
		chk.Scalar(tst, "fill", 1e-15, float64(c), 9)
	}

	p := vecd.Of[int32](1, 0)
	g.Set(p, 3.5)
	chk.Scalar(tst, "get after set", 1e-15, float64(g.Get(p)), 3.5)

	idx := g.Index(p)
	chk.Vector(tst, "PosOf(Index(p)) == p", 1e-15,
		[]float64{float64(g.PosOf(idx)[0]), float64(g.PosOf(idx)[1])},
		[]float64{float64(p[0]), float64(p[1])})
}

// Test_dense02 checks Inside's half-open box boundary in both directions.
func Test_dense02(tst *testing.T) {

	chk.PrintTitle("dense02")

	g := NewDense[int32](vecd.Of[uint32](2, 2), vecd.Of[int32](0, 0), 0)

	if !g.Inside(vecd.Of[int32](0, 0)) {
		tst.Fatal("(0,0) should be inside")
	}
	if !g.Inside(vecd.Of[int32](1, 1)) {
		tst.Fatal("(1,1) should be inside")
	}
	if g.Inside(vecd.Of[int32](2, 0)) {
		tst.Fatal("(2,0) should be outside")
	}
	if g.Inside(vecd.Of[int32](0, -1)) {
		tst.Fatal("(0,-1) should be outside")
	}
}

// Test_dense03 checks that Index panics (OutOfBounds) outside the box.
func Test_dense03(tst *testing.T) {

	chk.PrintTitle("dense03")

	defer func() {
		if recover() == nil {
			tst.Fatal("expected a panic indexing outside the box")
		}
	}()

	g := NewDense[int32](vecd.Of[uint32](2, 2), vecd.Of[int32](0, 0), 0)
	g.Index(vecd.Of[int32](5, 5))
}

// Test_dense04 checks Fill overwrites every cell.
func Test_dense04(tst *testing.T) {

	chk.PrintTitle("dense04")

	g := NewDense[int32](vecd.Of[uint32](2, 2), vecd.Of[int32](0, 0), 0)
	g.Fill(7)
	for _, c := range g.Buf {
		chk.IntAssert(int(c), 7)
	}
}
