// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"sync"

	"github.com/cpmech/gosurf/lookup"
	"github.com/cpmech/gosurf/part"
	"github.com/cpmech/gosurf/surface"
	"github.com/cpmech/gosurf/vecd"
)

// PolyGrid is the polygonisation engine (C10): it owns one ChildPoly per
// partition of an iso field and re-marches only the partitions a Surface
// update has marked dirty via Notify, per SPEC_FULL.md §4.5.
type PolyGrid struct {
	dim      int
	dx       float32
	zeroList int
	iso      *part.Grid[float32]

	mu      sync.Mutex
	changes *lookup.Single // dirty Child positions (keyed in Child-position space)
	polys   map[int]*ChildPoly
}

// NewPolyGrid builds a polygonisation engine over iso. zeroList is the
// tracking-list id (within iso's own Child tracked grids) that holds the
// zero layer's positions; the Surface driving iso is responsible for
// keeping that list current and for calling Notify whenever a Child's zero
// layer changes.
func NewPolyGrid(iso *part.Grid[float32], zeroList, dim int, dx float32) *PolyGrid {
	dims := iso.ChildrenDims()
	return &PolyGrid{
		dim:      dim,
		dx:       dx,
		zeroList: zeroList,
		iso:      iso,
		changes:  lookup.NewSingle(dims, vecd.Splat[int32](dim, 0)),
		polys:    make(map[int]*ChildPoly),
	}
}

func childKey(childPos vecd.VecD[uint32]) vecd.VecD[int32] {
	return vecd.Cast[uint32, int32](childPos, func(x uint32) int32 { return int32(x) })
}

func childPosOf(key vecd.VecD[int32]) vecd.VecD[uint32] {
	return vecd.Cast[int32, uint32](key, func(x int32) uint32 { return uint32(x) })
}

// Notify implements §4.5/§6's notify(&surface), called after every
// Surface.update_end: union into `changes` every iso-Child that appears in
// s.DeltaChildren() (iso.delta's layer-0 children list) or
// s.StatusZeroChildren() (iso.status's layer-0 children list), then drop
// any Child whose zero layer is now empty and whose ChildPoly currently
// holds zero simplices — it was never dirty in a way March needs to act
// on (no surface to clear, nothing new to draw).
func (pg *PolyGrid) Notify(s *surface.Surface) {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	for _, childPos := range s.DeltaChildren() {
		pg.changes.Track(childKey(childPos))
	}
	for _, childPos := range s.StatusZeroChildren() {
		pg.changes.Track(childKey(childPos))
	}
	for _, key := range append([]vecd.VecD[int32]{}, pg.changes.List()...) {
		childPos := childPosOf(key)
		child := pg.iso.ChildByPos(childPos)
		zeroEmpty := !child.Active() || child.U.ListLen(pg.zeroList) == 0
		simplexCount := 0
		if cp, ok := pg.polys[pg.iso.ChildFlatIndex(childPos)]; ok {
			simplexCount = len(cp.Spxs)
		}
		if zeroEmpty && simplexCount == 0 {
			pg.changes.Untrack(key)
		}
	}
}

// Invalidate implements §4.5's invalidate(): mark every iso Child with a
// non-empty zero layer as changed, for callers that mutated the surface
// without calling Notify.
func (pg *PolyGrid) Invalidate() {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	for _, childPos := range pg.iso.ChildPositions(pg.zeroList) {
		pg.changes.Track(childKey(childPos))
	}
}

// Changes exposes the Child position indices currently marked dirty, per
// §6's changes() accessor, for downstream renderers to enumerate.
func (pg *PolyGrid) Changes() []vecd.VecD[uint32] {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	keys := pg.changes.List()
	out := make([]vecd.VecD[uint32], len(keys))
	for i, key := range keys {
		out[i] = childPosOf(key)
	}
	return out
}

// March re-polygonises every Child marked dirty since the last call and
// clears the dirty set.
func (pg *PolyGrid) March() {
	pg.mu.Lock()
	dirty := append([]vecd.VecD[int32]{}, pg.changes.List()...)
	pg.mu.Unlock()
	for _, key := range dirty {
		childPos := childPosOf(key)
		pg.march(childPos)
		pg.mu.Lock()
		pg.changes.Untrack(key)
		pg.mu.Unlock()
	}
}

// Poly returns the current polygonisation of the Child at childPos, or nil
// if it has never been marched.
func (pg *PolyGrid) Poly(childPos vecd.VecD[uint32]) *ChildPoly {
	return pg.polys[pg.iso.ChildFlatIndex(childPos)]
}

func (pg *PolyGrid) childPoly(childPos vecd.VecD[uint32]) *ChildPoly {
	flat := pg.iso.ChildFlatIndex(childPos)
	cp, ok := pg.polys[flat]
	if !ok {
		cp = newChildPoly(pg.dim)
		pg.polys[flat] = cp
	}
	return cp
}

func (pg *PolyGrid) march(childPos vecd.VecD[uint32]) {
	cp := pg.childPoly(childPos)
	cp.invalidate()
	child := pg.iso.ChildByPos(childPos)
	if !child.Active() {
		return
	}
	zeroPts := child.U.List(pg.zeroList)
	if pg.dim == 2 {
		pg.march2D(cp, zeroPts)
	} else {
		pg.march3D(cp, zeroPts)
	}
}

func posKey3(p vecd.VecD[int32]) [3]int32 {
	var k [3]int32
	for i, c := range p {
		k[i] = c
	}
	return k
}

func (pg *PolyGrid) march2D(cp *ChildPoly, zeroPts []vecd.VecD[int32]) {
	done := make(map[[3]int32]bool)
	for _, p := range zeroPts {
		for dy := int32(0); dy <= 1; dy++ {
			for dx := int32(0); dx <= 1; dx++ {
				min := vecd.Of[int32](p[0]-dx, p[1]-dy)
				key := posKey3(min)
				if done[key] {
					continue
				}
				done[key] = true
				pg.emitSquare(cp, min)
			}
		}
	}
}

func (pg *PolyGrid) emitSquare(cp *ChildPoly, min vecd.VecD[int32]) {
	corners := [4]vecd.VecD[int32]{
		vecd.Of[int32](min[0], min[1]),
		vecd.Of[int32](min[0]+1, min[1]),
		vecd.Of[int32](min[0], min[1]+1),
		vecd.Of[int32](min[0]+1, min[1]+1),
	}
	mask := 0
	for i, c := range corners {
		if !pg.iso.Inside(c) {
			return
		}
		if pg.iso.Get(c) > 0 {
			mask |= 1 << uint(i)
		}
	}
	for _, seg := range square2DTable[mask] {
		e0, e1 := square2DEdges[seg[0]], square2DEdges[seg[1]]
		i0 := cp.vertexOnEdge(pg.iso, pg.dx, corners[e0[0]], corners[e0[1]])
		i1 := cp.vertexOnEdge(pg.iso, pg.dx, corners[e1[0]], corners[e1[1]])
		cp.emit(i0, i1)
	}
}

func (pg *PolyGrid) march3D(cp *ChildPoly, zeroPts []vecd.VecD[int32]) {
	done := make(map[[3]int32]bool)
	for _, p := range zeroPts {
		for dz := int32(0); dz <= 1; dz++ {
			for dy := int32(0); dy <= 1; dy++ {
				for dx := int32(0); dx <= 1; dx++ {
					min := vecd.Of[int32](p[0]-dx, p[1]-dy, p[2]-dz)
					key := posKey3(min)
					if done[key] {
						continue
					}
					done[key] = true
					pg.emitCube(cp, min)
				}
			}
		}
	}
}

func (pg *PolyGrid) emitCube(cp *ChildPoly, min vecd.VecD[int32]) {
	var corners [8]vecd.VecD[int32]
	var vals [8]float32
	for m := 0; m < 8; m++ {
		c := vecd.Of[int32](min[0], min[1], min[2])
		if m&1 != 0 {
			c[0]++
		}
		if m&2 != 0 {
			c[1]++
		}
		if m&4 != 0 {
			c[2]++
		}
		if !pg.iso.Inside(c) {
			return
		}
		corners[m] = c
		vals[m] = pg.iso.Get(c)
	}
	for _, tet := range kuhnTets {
		var tetCorners [4]vecd.VecD[int32]
		mask := 0
		for i, cm := range tet {
			tetCorners[i] = corners[cm]
			if vals[cm] > 0 {
				mask |= 1 << uint(i)
			}
		}
		for _, tri := range tetTable[mask] {
			idx := make([]int, 3)
			for j, e := range tri {
				ep := tetEdgeList[e]
				idx[j] = cp.vertexOnEdge(pg.iso, pg.dx, tetCorners[ep[0]], tetCorners[ep[1]])
			}
			cp.emit(idx[0], idx[1], idx[2])
		}
	}
}
