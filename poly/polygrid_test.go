// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosurf/surface"
	"github.com/cpmech/gosurf/vecd"
)

// Test_emitSquare01 is scenario S6: a single square with corner mask 0b0010
// (corner 1 outside, i.e. iso > 0) must emit exactly one line simplex whose
// endpoints lie on the two edges adjacent to that corner.
func Test_emitSquare01(tst *testing.T) {

	chk.PrintTitle("emitSquare01")

	s := surface.NewSurface(vecd.Of[int32](4, 4), vecd.Splat[uint32](4, 4))
	// corners of the square at min=(0,0): (0,0) (1,0) (0,1) (1,1), bit0=x,bit1=y
	s.Iso().Track(vecd.Of[int32](0, 0), -1, s.ZeroList())
	s.Iso().Track(vecd.Of[int32](1, 0), 1, s.ZeroList()+1) // corner 1: outside
	s.Iso().Track(vecd.Of[int32](0, 1), -1, s.ZeroList())
	s.Iso().Track(vecd.Of[int32](1, 1), -1, s.ZeroList())

	pg := NewPolyGrid(s.Iso(), s.ZeroList(), s.Dim, s.Dx)
	cp := pg.childPoly(vecd.Of[uint32](0, 0))
	pg.emitSquare(cp, vecd.Of[int32](0, 0))

	io.Pforan("spxs=%v\n", cp.Spxs)
	chk.IntAssert(len(cp.Spxs), 1)
	chk.IntAssert(len(cp.Spxs[0]), 2)
}

// Test_notify01 exercises the notify/march flow against the update protocol
// directly (the demo's own wiring), checking that a Surface.Update call
// marks its Children dirty and March produces a non-empty polygonisation.
// The seed is expanded once before the first March: a bare seed's zero layer
// is a single point, whose simplices all collapse onto it and are dropped.
func Test_notify01(tst *testing.T) {

	chk.PrintTitle("notify01")

	s := surface.NewSurface(vecd.Of[int32](9, 9), vecd.Splat[uint32](2, 9))
	s.Seed(vecd.Of[int32](0, 0))
	s.Update(func(pos vecd.VecD[int32]) float32 { return -0.6 })

	pg := NewPolyGrid(s.Iso(), s.ZeroList(), s.Dim, s.Dx)
	pg.Invalidate()
	if len(pg.Changes()) == 0 {
		tst.Fatal("Invalidate should mark the seeded Child dirty")
	}

	pg.March()
	if len(pg.Changes()) != 0 {
		tst.Fatal("March should clear the dirty set")
	}

	cp := pg.Poly(vecd.Of[uint32](0, 0))
	if cp == nil || len(cp.Spxs) == 0 {
		tst.Fatal("marching the expanded zero layer should produce at least one simplex")
	}

	s.Update(func(pos vecd.VecD[int32]) float32 { return -0.6 })
	pg.Notify(s)
	if len(pg.Changes()) == 0 {
		tst.Fatal("Notify should mark the updated Child dirty again")
	}
}

// Test_s5 is scenario S5 (spec.md §8): in a 15-wide 3D grid partitioned
// into 5-wide Children, seed + two expand-by-(-1) updates. Partitioning is
// purely a storage/iteration scheme (part.Grid.locate always resolves a
// leaf position to the same value regardless of Child boundaries), so the
// set of zero-layer points owned by the central Child must be exactly the
// zero-layer points of a monolithic (single-partition) run that fall in the
// same box — the grounded, partition-independent half of what §8 calls
// "the polygonisation of the central partition equals that of a monolithic
// polygonisation restricted to that partition". March is then exercised on
// both to confirm the central partition actually produces geometry from
// that point set.
func Test_s5(tst *testing.T) {

	chk.PrintTitle("s5")

	run := func(partitionSize vecd.VecD[uint32]) *surface.Surface {
		s := surface.NewSurface(vecd.Of[int32](15, 15, 15), partitionSize)
		s.Seed(vecd.Of[int32](0, 0, 0))
		for i := 0; i < 2; i++ {
			s.Update(func(pos vecd.VecD[int32]) float32 { return -1 })
		}
		return s
	}

	partitioned := run(vecd.Splat[uint32](3, 5))
	monolithic := run(vecd.Splat[uint32](3, 15))

	// the central Child of the 5-wide-partition grid is the one covering
	// leaf positions [-2,2] along every axis (offset=-7, childOffset =
	// -7+k*5 = -2 at k=1), which is where the seed at the origin lands.
	centralPos := vecd.Of[uint32](1, 1, 1)
	centralChild := partitioned.Iso().ChildByPos(centralPos)
	centralZero := append([]vecd.VecD[int32]{}, centralChild.U.List(partitioned.ZeroList())...)

	monoZero := withinBox(monolithic.Iso().ChildByPos(vecd.Of[uint32](0, 0, 0)).U.List(monolithic.ZeroList()),
		vecd.Of[int32](-2, -2, -2), vecd.Of[int32](2, 2, 2))

	io.Pforan("central zero-layer points=%d  monolithic zero-layer points in the same box=%d\n", len(centralZero), len(monoZero))
	chk.IntAssert(len(centralZero), len(monoZero))
	for _, p := range centralZero {
		if !containsPos(monoZero, p) {
			tst.Fatalf("central Child's zero-layer point %v missing from the monolithic grid's same box", p)
		}
	}

	pgPartitioned := NewPolyGrid(partitioned.Iso(), partitioned.ZeroList(), partitioned.Dim, partitioned.Dx)
	pgPartitioned.Invalidate()
	pgPartitioned.March()
	central := pgPartitioned.Poly(centralPos)
	if central == nil || len(central.Spxs) == 0 {
		tst.Fatal("central partition should produce at least one simplex")
	}
}

func withinBox(pts []vecd.VecD[int32], lo, hi vecd.VecD[int32]) []vecd.VecD[int32] {
	var out []vecd.VecD[int32]
	for _, p := range pts {
		ok := true
		for i := range p {
			if p[i] < lo[i] || p[i] > hi[i] {
				ok = false
			}
		}
		if ok {
			out = append(out, p)
		}
	}
	return out
}

func containsPos(pts []vecd.VecD[int32], p vecd.VecD[int32]) bool {
	for _, q := range pts {
		if q.Eq(p) {
			return true
		}
	}
	return false
}
