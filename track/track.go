// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package track implements the tracked grid (C4): a paired dense value grid
// and lookup grid over identical size/offset, so that mutating a value and
// joining a tracking list happens as one atomic-looking step. It also
// implements the lazily-activated variant (C5) used as the Child storage
// unit inside a partitioned grid (C6/C7).
package track

import (
	"github.com/cpmech/gosurf/grid"
	"github.com/cpmech/gosurf/lookup"
	"github.com/cpmech/gosurf/vecd"
)

// Dense pairs a dense value grid V with a Multi lookup grid U over the same
// box.
type Dense[T any] struct {
	V *grid.Dense[T]
	U *lookup.Multi
}

// NewDense allocates a Dense tracked grid with n tracking lists.
func NewDense[T any](size vecd.VecD[uint32], offset vecd.VecD[int32], background T, n int) *Dense[T] {
	return &Dense[T]{
		V: grid.NewDense[T](size, offset, background),
		U: lookup.NewMulti(size, offset, n),
	}
}

// Track writes v at pos and joins list k in one step.
func (t *Dense[T]) Track(pos vecd.VecD[int32], v T, k int) {
	t.V.Set(pos, v)
	t.U.Track(pos, k)
}

// Untrack restores background at pos and leaves list k.
func (t *Dense[T]) Untrack(pos vecd.VecD[int32], background T, k int) {
	t.V.Set(pos, background)
	t.U.Untrack(pos, k)
}

// Get returns the value at pos.
func (t *Dense[T]) Get(pos vecd.VecD[int32]) T { return t.V.Get(pos) }

// Lazy is a tracked grid (C4) that owns no storage until Activate is
// called: queries on an inactive Lazy return Background and report no
// tracking membership (C5). This is the Child storage unit of C6/C7.
type Lazy[T any] struct {
	Size       vecd.VecD[uint32]
	Offset     vecd.VecD[int32]
	N          int
	Background T
	V          *grid.Dense[T]
	U          *lookup.Multi
}

// NewLazy returns an inactive Lazy tracked grid.
func NewLazy[T any](size vecd.VecD[uint32], offset vecd.VecD[int32], background T, n int) *Lazy[T] {
	return &Lazy[T]{Size: size.Clone(), Offset: offset.Clone(), N: n, Background: background}
}

// Active reports whether the Child currently owns storage.
func (t *Lazy[T]) Active() bool { return t.V != nil }

// Activate allocates the value buffer (filled with Background) and an
// empty lookup grid.
func (t *Lazy[T]) Activate() {
	if t.V != nil {
		return
	}
	t.V = grid.NewDense[T](t.Size, t.Offset, t.Background)
	t.U = lookup.NewMulti(t.Size, t.Offset, t.N)
}

// Deactivate frees storage and sets a new background (which may differ from
// the pre-activation one).
func (t *Lazy[T]) Deactivate(newBackground T) {
	t.V = nil
	t.U = nil
	t.Background = newBackground
}

// Get returns the value at pos, or Background if inactive.
func (t *Lazy[T]) Get(pos vecd.VecD[int32]) T {
	if t.V == nil {
		return t.Background
	}
	return t.V.Get(pos)
}

// Track writes v at pos and joins list k. The Child must already be active.
func (t *Lazy[T]) Track(pos vecd.VecD[int32], v T, k int) {
	t.V.Set(pos, v)
	t.U.Track(pos, k)
}

// Untrack restores background at pos and leaves list k. The Child must be active.
func (t *Lazy[T]) Untrack(pos vecd.VecD[int32], background T, k int) {
	t.V.Set(pos, background)
	t.U.Untrack(pos, k)
}

// AllEmpty reports whether every tracking list is empty (requires Active()).
func (t *Lazy[T]) AllEmpty() bool {
	if t.U == nil {
		return true
	}
	return t.U.AllEmpty()
}
