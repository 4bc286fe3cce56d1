// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the dense leaf grid (C2) — a contiguous buffer of
// T over a fixed size+offset axis-aligned box — and its lazily-activated
// variant (C5), per SPEC_FULL.md §3/§4.
package grid

import (
	"github.com/cpmech/gosurf/must"
	"github.com/cpmech/gosurf/vecd"
)

// Dense is a D-dimensional axis-aligned box of T, row-major ordered.
type Dense[T any] struct {
	Size    vecd.VecD[uint32]
	Offset  vecd.VecD[int32]
	Buf     []T
	strides []int
}

// NewDense allocates a Dense grid of the given size/offset, filled with fill.
func NewDense[T any](size vecd.VecD[uint32], offset vecd.VecD[int32], fill T) *Dense[T] {
	g := &Dense[T]{Size: size.Clone(), Offset: offset.Clone()}
	g.strides = computeStrides(size)
	n := 1
	for _, s := range size {
		n *= int(s)
	}
	g.Buf = make([]T, n)
	for i := range g.Buf {
		g.Buf[i] = fill
	}
	return g
}

// computeStrides returns, for each axis i, ∏_{j>i} size_j (row-major).
func computeStrides(size vecd.VecD[uint32]) []int {
	d := len(size)
	strides := make([]int, d)
	acc := 1
	for i := d - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= int(size[i])
	}
	return strides
}

// Inside reports whether pos lies within the box: 0 ≤ pos_i - offset_i < size_i ∀i.
func (g *Dense[T]) Inside(pos vecd.VecD[int32]) bool {
	for i, o := range g.Offset {
		rel := pos[i] - o
		if rel < 0 || uint32(rel) >= g.Size[i] {
			return false
		}
	}
	return true
}

// Index returns the row-major buffer index for pos. Panics (OutOfBounds) if
// pos is outside the box.
func (g *Dense[T]) Index(pos vecd.VecD[int32]) int {
	if !g.Inside(pos) {
		must.Panicf(must.OutOfBounds, pos, "grid.Dense: position outside box size=%v offset=%v", g.Size, g.Offset)
	}
	idx := 0
	for i, o := range g.Offset {
		idx += int(pos[i]-o) * g.strides[i]
	}
	return idx
}

// Get returns the value stored at pos.
func (g *Dense[T]) Get(pos vecd.VecD[int32]) T {
	return g.Buf[g.Index(pos)]
}

// Set stores v at pos.
func (g *Dense[T]) Set(pos vecd.VecD[int32], v T) {
	g.Buf[g.Index(pos)] = v
}

// Fill sets every cell to v.
func (g *Dense[T]) Fill(v T) {
	for i := range g.Buf {
		g.Buf[i] = v
	}
}

// PosOf is the inverse of Index: given a row-major buffer index, returns the
// corresponding grid position. Used by iteration helpers.
func (g *Dense[T]) PosOf(idx int) vecd.VecD[int32] {
	pos := make(vecd.VecD[int32], len(g.Size))
	rem := idx
	for i, s := range g.strides {
		c := rem / s
		rem -= c * s
		pos[i] = int32(c) + g.Offset[i]
	}
	return pos
}
