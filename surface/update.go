// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/gosurf/diag"
	"github.com/cpmech/gosurf/must"
	"github.com/cpmech/gosurf/part"
	"github.com/cpmech/gosurf/vecd"
)

// Delta accumulates a per-point velocity increment for the current step at
// a single point, joining iso's zero-layer intake list (list 0 of delta).
func (s *Surface) Delta(pos vecd.VecD[int32], v float32) {
	s.updateStart()
	s.applyDelta(pos, v)
	s.updateEnd()
}

// Update applies f to every point currently in the zero layer, data-parallel
// across Children, then commits the resulting deltas in one step (Phases
// A/B/C of SPEC_FULL.md §4.4).
func (s *Surface) Update(f func(pos vecd.VecD[int32]) float32) {
	s.updateStart()
	part.ForEachChild(s.iso, s.L, func(childPos vecd.VecD[uint32]) {
		child := s.iso.ChildByPos(childPos)
		pts := append([]vecd.VecD[int32]{}, child.U.List(s.L)...)
		for _, p := range pts {
			s.applyDelta(p, f(p))
		}
	})
	s.updateEnd()
}

// UpdateBBox behaves like Update but restricts f to zero-layer points whose
// position lies within [lo,hi] inclusive on every axis.
func (s *Surface) UpdateBBox(lo, hi vecd.VecD[int32], f func(pos vecd.VecD[int32]) float32) {
	s.updateStart()
	part.ForEachChild(s.iso, s.L, func(childPos vecd.VecD[uint32]) {
		child := s.iso.ChildByPos(childPos)
		pts := append([]vecd.VecD[int32]{}, child.U.List(s.L)...)
		for _, p := range pts {
			if !inBBox(p, lo, hi) {
				continue
			}
			s.applyDelta(p, f(p))
		}
	})
	s.updateEnd()
}

func inBBox(p, lo, hi vecd.VecD[int32]) bool {
	for i := range p {
		if p[i] < lo[i] || p[i] > hi[i] {
			return false
		}
	}
	return true
}

// updateStart is Phase A: reset delta/status/affected/affected_buf using
// iso as the activation mask, then pre-open delta's Children to match iso's
// active set.
func (s *Surface) updateStart() {
	n := 2*s.L + 1
	part.Reset(s.delta, s.iso, 0)
	for k := 0; k < n; k++ {
		part.Reset(s.status, s.iso, k)
		part.Reset(s.affected, s.iso, k)
		part.Reset(s.affectedBuf, s.iso, k)
	}
	part.TrackChildren(s.delta, s.iso)
}

// applyDelta clamps v to the CFL bound (panicking in debug builds, clamping
// in release) and accumulates it into delta's list 0.
func (s *Surface) applyDelta(pos vecd.VecD[int32], v float32) {
	if v > 1 || v < -1 {
		if must.Debug {
			must.Panicf(must.DeltaTooLarge, pos, "surface: |delta|=%v exceeds 1", v)
		}
		if v > 1 {
			v = 1
		} else {
			v = -1
		}
	}
	cur := float32(0)
	if child := s.delta.ChildAt(pos); child.Active() && child.U.IsTracked(pos, 0) {
		cur = child.Get(pos)
	}
	s.delta.Track(pos, cur+v, 0)
}

// updateEnd runs Phase B (apply delta to the zero layer) then Phase C
// (outer-layer redistancing and convergence loop).
func (s *Surface) updateEnd() {
	s.phaseB()
	s.phaseC()
}

func (s *Surface) phaseB() {
	part.ForEachChild(s.delta, 0, func(childPos vecd.VecD[uint32]) {
		deltaChild := s.delta.ChildByPos(childPos)
		pts := append([]vecd.VecD[int32]{}, deltaChild.U.List(0)...)
		isoChild := s.iso.ChildByPos(childPos)
		for _, p := range pts {
			d := deltaChild.Get(p)
			isoOld := isoChild.Get(p)
			isoNew := isoOld + d
			newLayer := roundLayer(isoNew)
			isoChild.V.Set(p, isoNew)
			if newLayer != 0 {
				s.status.Track(p, int8(newLayer), s.L)
				if absInt(newLayer) <= s.L {
					s.affectedBuf.Track(p, struct{}{}, newLayer+s.L)
				}
			}
		}
	})
	diag.Pfcyan("surface: phase B committed %d zero-layer points\n", len(s.delta.ChildPositions(0)))
}

// phaseC implements §4.4's outer-layer redistancing and convergence loop.
func (s *Surface) phaseC() {
	s.swapAffected() // affected <- phaseB's seeds (carried via affectedBuf)
	for {
		s.growAffectedRings()
		changed, reachedOuter := s.distancePass()
		s.flushStatus()
		s.expandBand(reachedOuter)
		s.clearAffected()
		s.swapAffected()
		if !changed {
			break
		}
	}
}

// growAffectedRings expands `affected` outward, up to L hops, from its
// current members: a simplified, non-paginated rendition of §4.4 step 1's
// layered-BFS ring growth (see DESIGN.md) — it reaches the same superset of
// candidate points without needing the original's stable-index bookkeeping.
func (s *Surface) growAffectedRings() {
	frontier := s.allAffected()
	for r := 0; r < s.L && len(frontier) > 0; r++ {
		var next []vecd.VecD[int32]
		for _, p := range frontier {
			for _, q := range neighbors(p, s.Dim) {
				if !s.iso.Inside(q) {
					continue
				}
				layer := roundLayer(s.iso.Get(q))
				if absInt(layer) > s.L {
					continue
				}
				if s.affectedTrack(q, layer+s.L) {
					next = append(next, q)
				}
			}
		}
		frontier = next
	}
}

func (s *Surface) allAffected() []vecd.VecD[int32] {
	var out []vecd.VecD[int32]
	n := 2*s.L + 1
	for k := 0; k < n; k++ {
		out = append(out, gridPositionsStruct(s.affected, k)...)
	}
	return out
}

// affectedTrack tracks q into affected's list k, returning true iff it was
// not already a member (so callers can use it as a visited-set test).
func (s *Surface) affectedTrack(q vecd.VecD[int32], k int) bool {
	child := s.affected.ChildAt(q)
	if child.Active() && child.U.IsTracked(q, k) {
		return false
	}
	s.affected.Track(q, struct{}{}, k)
	return true
}

type distEntry struct {
	pos vecd.VecD[int32]
	m   int
	val float32
}

// distancePass implements §4.4 step 2: for each non-zero layer id, inner
// side first (−1…−L) then outer side (+1…+L), recompute the distance of
// every affected point from its closest in-band neighbour toward the zero
// crossing, staging all results before committing (so no point reads an
// already-updated neighbour within the same pass). Points still registered
// in iso's zero list (they left the zero layer in phase B of this step) keep
// the value the delta gave them and are not recomputed. Returns whether any
// layer actually changed, and, for expandBand, the points that just reached
// the outermost band layer (±L) or just moved inward from it to ±(L−1).
func (s *Surface) distancePass() (bool, []vecd.VecD[int32]) {
	order := make([]int, 0, 2*s.L)
	for m := -1; m >= -s.L; m-- {
		order = append(order, m)
	}
	for m := 1; m <= s.L; m++ {
		order = append(order, m)
	}

	var staged []distEntry
	for _, m := range order {
		k := m + s.L
		side := float32(1)
		if m < 0 {
			side = -1
		}
		for _, childPos := range s.affected.ChildPositions(k) {
			child := s.affected.ChildByPos(childPos)
			pts := append([]vecd.VecD[int32]{}, child.U.List(k)...)
			for _, p := range pts {
				if isoChild := s.iso.ChildAt(p); isoChild.Active() && isoChild.U.IsTracked(p, s.L) {
					continue
				}
				bestScore := float32(math.Inf(1))
				var bestVal float32
				found := false
				for _, q := range neighbors(p, s.Dim) {
					if !s.iso.Inside(q) {
						continue
					}
					v := s.iso.Get(q)
					score := side * v
					if !found || score < bestScore {
						bestScore, bestVal, found = score, v, true
					}
				}
				if !found {
					continue
				}
				staged = append(staged, distEntry{pos: p, m: m, val: bestVal + side*s.Dx})
			}
		}
	}

	for _, e := range staged {
		s.iso.ChildAt(e.pos).V.Set(e.pos, e.val)
	}

	changed := false
	var reachedOuter []vecd.VecD[int32]
	for _, e := range staged {
		newLayer := roundLayer(e.val)
		if newLayer == e.m {
			continue
		}
		changed = true
		s.status.Track(e.pos, int8(newLayer), e.m+s.L)
		if absInt(newLayer) <= s.L {
			s.affectedBuf.Track(e.pos, struct{}{}, newLayer+s.L)
		}
		if absInt(newLayer) == s.L || (e.m == s.L && newLayer == s.L-1) || (e.m == -s.L && newLayer == 1-s.L) {
			reachedOuter = append(reachedOuter, e.pos)
		}
	}
	return changed, reachedOuter
}

// flushStatus implements §4.4 step 3: for every recorded transition, move
// the point in iso's lookup from its source layer list to its target, or
// untrack it to the background sentinel if the target is outside the band.
func (s *Surface) flushStatus() {
	for src := -s.L; src <= s.L; src++ {
		k := src + s.L
		for _, childPos := range append([]vecd.VecD[uint32]{}, s.status.ChildPositions(k)...) {
			child := s.status.ChildByPos(childPos)
			pts := append([]vecd.VecD[int32]{}, child.U.List(k)...)
			for _, p := range pts {
				target := int(child.Get(p))
				if absInt(target) > s.L {
					sign := float32(1)
					if target < 0 {
						sign = -1
					}
					s.iso.Untrack(p, sign*float32(s.L+1), src+s.L)
				} else {
					s.iso.Retrack(p, src+s.L, target+s.L)
				}
				s.status.Untrack(p, int8(s.L+1), k)
			}
		}
	}
}

// expandBand implements §4.4 step 4: points that just reached the
// outermost band layer, or just moved inward from it, reveal their
// out-of-band neighbours; any neighbour whose one-step-outward distance
// would itself land at ±L joins the band.
func (s *Surface) expandBand(reachedOuter []vecd.VecD[int32]) {
	for _, p := range reachedOuter {
		val := s.iso.Get(p)
		sign := float32(1)
		if val < 0 {
			sign = -1
		}
		for _, q := range neighbors(p, s.Dim) {
			if !s.iso.Inside(q) {
				continue
			}
			cur := s.iso.Get(q)
			if absF32(cur) <= float32(s.L) {
				continue
			}
			newDist := val + sign*s.Dx
			newLayer := roundLayer(newDist)
			if absInt(newLayer) == s.L {
				s.iso.TrackSafe(q, newDist, newLayer+s.L)
			}
		}
	}
}

func (s *Surface) clearAffected() {
	n := 2*s.L + 1
	for k := 0; k < n; k++ {
		for _, childPos := range append([]vecd.VecD[uint32]{}, s.affected.ChildPositions(k)...) {
			child := s.affected.ChildByPos(childPos)
			pts := append([]vecd.VecD[int32]{}, child.U.List(k)...)
			for _, p := range pts {
				s.affected.Untrack(p, struct{}{}, k)
			}
		}
	}
}

func (s *Surface) swapAffected() {
	s.affected, s.affectedBuf = s.affectedBuf, s.affected
}
