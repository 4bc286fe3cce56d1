// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package part implements the partitioned grid (C6) and partitioned tracked
// grid (C7): a coarse grid of Child grids, each a lazily-activated tracked
// grid (track.Lazy), activated/deactivated as their tracking lists fill and
// empty, per SPEC_FULL.md §3/§4.2/§5.
package part

import (
	"sync"

	"github.com/cpmech/gosurf/lookup"
	"github.com/cpmech/gosurf/must"
	"github.com/cpmech/gosurf/track"
	"github.com/cpmech/gosurf/vecd"
)

// Grid is a partitioned, lazily-activated, multi-list tracked grid over T.
// Size/Offset are in leaf (global) coordinates; ChildSize is the fixed
// per-Child extent.
type Grid[T any] struct {
	Size       vecd.VecD[int32]
	Offset     vecd.VecD[int32]
	ChildSize  vecd.VecD[uint32]
	Background T
	N          int

	childrenDims vecd.VecD[uint32] // ceil(Size/ChildSize) per axis
	childStrides []int
	children     []*track.Lazy[T] // dense, row-major over childrenDims
	childMus     []sync.Mutex     // per-Child mutex for TrackSafe

	// parent tracks which Child positions (0-based index space, addressed as
	// VecD[int32]) are members of each of the N lists; a Child appears in
	// list k exactly when its own list k is non-empty.
	parent *lookup.Multi

	mu sync.Mutex // guards Child activation/deactivation
}

// New allocates a Grid with every Child inactive.
func New[T any](size, offset vecd.VecD[int32], childSize vecd.VecD[uint32], background T, n int) *Grid[T] {
	g := &Grid[T]{
		Size:       size.Clone(),
		Offset:     offset.Clone(),
		ChildSize:  childSize.Clone(),
		Background: background,
		N:          n,
	}
	d := len(size)
	g.childrenDims = make(vecd.VecD[uint32], d)
	for i := 0; i < d; i++ {
		s, c := uint32(size[i]), childSize[i]
		g.childrenDims[i] = (s + c - 1) / c
	}
	g.childStrides = make([]int, d)
	acc := 1
	for i := d - 1; i >= 0; i-- {
		g.childStrides[i] = acc
		acc *= int(g.childrenDims[i])
	}
	total := acc
	g.children = make([]*track.Lazy[T], total)
	g.childMus = make([]sync.Mutex, total)
	g.parent = lookup.NewMulti(g.childrenDims, vecd.Splat[int32](d, 0), n)

	for flat := 0; flat < total; flat++ {
		childPos := unflatten(flat, g.childStrides, g.childrenDims)
		childOffset := make(vecd.VecD[int32], d)
		childExtent := make(vecd.VecD[uint32], d)
		for i := 0; i < d; i++ {
			lo := int32(childPos[i]) * int32(childSize[i])
			childOffset[i] = offset[i] + lo
			rem := size[i] - lo
			extent := childSize[i]
			if uint32(rem) < extent {
				extent = uint32(rem)
			}
			childExtent[i] = extent
		}
		g.children[flat] = track.NewLazy[T](childExtent, childOffset, background, n)
	}
	return g
}

// childKey converts a 0-based Child position into the VecD[int32] key used
// to address the parent-level lookup grid.
func childKey(childPos vecd.VecD[uint32]) vecd.VecD[int32] {
	return vecd.Cast[uint32, int32](childPos, func(x uint32) int32 { return int32(x) })
}

// childPosOf is the inverse of childKey.
func childPosOf(key vecd.VecD[int32]) vecd.VecD[uint32] {
	return vecd.Cast[int32, uint32](key, func(x int32) uint32 { return uint32(x) })
}

func unflatten(flat int, strides []int, dims vecd.VecD[uint32]) vecd.VecD[uint32] {
	pos := make(vecd.VecD[uint32], len(dims))
	rem := flat
	for i, s := range strides {
		c := rem / s
		rem -= c * s
		pos[i] = uint32(c)
	}
	return pos
}

// locate returns the flat Child index and the 0-based Child position for a
// global leaf position pos.
func (g *Grid[T]) locate(pos vecd.VecD[int32]) (flat int, childPos vecd.VecD[uint32]) {
	d := len(pos)
	childPos = make(vecd.VecD[uint32], d)
	for i := 0; i < d; i++ {
		rel := pos[i] - g.Offset[i]
		if rel < 0 || rel >= g.Size[i] {
			must.Panicf(must.OutOfBounds, pos, "part.Grid: position outside size=%v offset=%v", g.Size, g.Offset)
		}
		childPos[i] = uint32(rel) / uint32(g.ChildSize[i])
	}
	flat = 0
	for i, s := range g.childStrides {
		flat += int(childPos[i]) * s
	}
	return flat, childPos
}

// Inside reports whether pos lies within the partitioned grid's global
// bounds (regardless of whether the owning Child is active).
func (g *Grid[T]) Inside(pos vecd.VecD[int32]) bool {
	for i, o := range g.Offset {
		rel := pos[i] - o
		if rel < 0 || rel >= g.Size[i] {
			return false
		}
	}
	return true
}

// ChildAt returns the Child tracked grid covering pos (without activating it).
func (g *Grid[T]) ChildAt(pos vecd.VecD[int32]) *track.Lazy[T] {
	flat, _ := g.locate(pos)
	return g.children[flat]
}

// Get returns the value at pos (Background if the owning Child is inactive).
func (g *Grid[T]) Get(pos vecd.VecD[int32]) T {
	return g.ChildAt(pos).Get(pos)
}

// Track activates the owning Child if necessary, writes v at pos and joins
// list k, updating the parent-level lookup whenever the Child's own list k
// transitions from empty to non-empty.
func (g *Grid[T]) Track(pos vecd.VecD[int32], v T, k int) {
	flat, childPos := g.locate(pos)
	child := g.children[flat]
	if !child.Active() {
		g.mu.Lock()
		if !child.Active() {
			child.Activate()
		}
		g.mu.Unlock()
	}
	before := child.U.ListLen(k)
	child.Track(pos, v, k)
	if before == 0 {
		g.parent.Track(childKey(childPos), k)
	}
}

// TrackSafe behaves like Track but also takes the Child's own mutex, for use
// when a thread may write into a Child it does not own (boundary
// neighbourhood writes during band expansion).
func (g *Grid[T]) TrackSafe(pos vecd.VecD[int32], v T, k int) {
	flat, _ := g.locate(pos)
	g.childMus[flat].Lock()
	defer g.childMus[flat].Unlock()
	g.Track(pos, v, k)
}

// Untrack restores background at pos and leaves list k, removing the Child
// from the parent-level list k if that was its last member there, and
// deactivating the Child if it is now empty in every list.
func (g *Grid[T]) Untrack(pos vecd.VecD[int32], background T, k int) {
	flat, childPos := g.locate(pos)
	child := g.children[flat]
	if !child.Active() {
		return
	}
	wasLast := child.U.ListLen(k) == 1
	child.Untrack(pos, background, k)
	if wasLast {
		g.parent.Untrack(childKey(childPos), k)
	}
	if child.AllEmpty() {
		g.mu.Lock()
		if child.Active() && child.AllEmpty() {
			child.Deactivate(background)
		}
		g.mu.Unlock()
	}
}

// Retrack moves pos from list kfrom to list kto, preserving its stored
// value (no background write occurs).
func (g *Grid[T]) Retrack(pos vecd.VecD[int32], kfrom, kto int) {
	flat, childPos := g.locate(pos)
	child := g.children[flat]
	fromWasLast := child.U.ListLen(kfrom) == 1
	child.U.Untrack(pos, kfrom)
	if fromWasLast {
		g.parent.Untrack(childKey(childPos), kfrom)
	}
	toWasEmpty := child.U.ListLen(kto) == 0
	child.U.Track(pos, kto)
	if toWasEmpty {
		g.parent.Track(childKey(childPos), kto)
	}
}

// TrackChildren ensures that, for every Child position active in any list
// of mask, our own Child at that position is active and registered in our
// parent-level list 0 ("opened" ahead of writing deltas into it).
func TrackChildren[T, M any](g *Grid[T], mask *Grid[M]) {
	for _, childPos := range mask.ActiveChildPositions() {
		flat := 0
		for i, s := range g.childStrides {
			flat += int(childPos[i]) * s
		}
		child := g.children[flat]
		if !child.Active() {
			g.mu.Lock()
			if !child.Active() {
				child.Activate()
			}
			g.mu.Unlock()
		}
		g.parent.Track(childKey(childPos), 0)
	}
}

// Reset clears list k on every Child currently in our parent-level list k;
// Children no longer active in mask are fully deactivated and dropped from
// our parent-level list k (Children mask still cares about stay active to
// avoid activation thrashing).
func Reset[T, M any](g *Grid[T], mask *Grid[M], k int) {
	snapshotKeys := append([]vecd.VecD[int32]{}, g.parent.List(k)...)
	for _, key := range snapshotKeys {
		childPos := childPosOf(key)
		flat := 0
		for i, s := range g.childStrides {
			flat += int(childPos[i]) * s
		}
		child := g.children[flat]
		if child.Active() {
			child.U.Reset(k)
		}
		if !mask.isChildActiveAt(childPos) {
			g.parent.Untrack(childKey(childPos), k)
			if child.Active() {
				child.Deactivate(g.Background)
			}
		}
	}
}

// ActiveChildPositions returns the 0-based positions of every currently
// active Child.
func (g *Grid[T]) ActiveChildPositions() []vecd.VecD[uint32] {
	var out []vecd.VecD[uint32]
	for flat, c := range g.children {
		if c.Active() {
			out = append(out, unflatten(flat, g.childStrides, g.childrenDims))
		}
	}
	return out
}

func (g *Grid[T]) isChildActiveAt(childPos vecd.VecD[uint32]) bool {
	flat := 0
	for i, s := range g.childStrides {
		flat += int(childPos[i]) * s
	}
	return g.children[flat].Active()
}

// ChildPositions returns the positions (in parent list k) currently
// registered, i.e. Children whose own list k is non-empty.
func (g *Grid[T]) ChildPositions(k int) []vecd.VecD[uint32] {
	keys := g.parent.List(k)
	out := make([]vecd.VecD[uint32], len(keys))
	for i, key := range keys {
		out[i] = childPosOf(key)
	}
	return out
}

// ChildByPos returns the Child at a 0-based Child position (not a leaf
// position); used by iteration code that already has a Child position from
// ChildPositions/ActiveChildPositions.
func (g *Grid[T]) ChildByPos(childPos vecd.VecD[uint32]) *track.Lazy[T] {
	flat := 0
	for i, s := range g.childStrides {
		flat += int(childPos[i]) * s
	}
	return g.children[flat]
}

// ChildrenDims returns ceil(Size/ChildSize).
func (g *Grid[T]) ChildrenDims() vecd.VecD[uint32] { return g.childrenDims.Clone() }

// NumChildren returns the total number of Child slots (active or not).
func (g *Grid[T]) NumChildren() int { return len(g.children) }

// ChildFlatIndex exposes the flat index for a Child position, used by
// callers that iterate Children in parallel and need a stable handle.
func (g *Grid[T]) ChildFlatIndex(childPos vecd.VecD[uint32]) int {
	flat := 0
	for i, s := range g.childStrides {
		flat += int(childPos[i]) * s
	}
	return flat
}

// ChildAtFlat returns the Child at a flat index (as returned by
// ChildFlatIndex or iteration over 0..NumChildren()).
func (g *Grid[T]) ChildAtFlat(flat int) *track.Lazy[T] { return g.children[flat] }
