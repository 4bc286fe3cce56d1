// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lookup implements the bidirectional lookup grid (C3): a dense
// cell grid of tracking-list indices paired with N tracking lists of
// positions, per SPEC_FULL.md §3/§4.1. Two variants are provided: Multi
// (a cell may belong to up to N lists at once) and Single (a cell belongs
// to at most one list, with the list id known to the caller rather than
// stored per cell).
package lookup

import "github.com/cpmech/gosurf/vecd"

// NullIdx is the sentinel "not tracked" index (NULL_IDX = u32::MAX in spec.md).
const NullIdx = ^uint32(0)

// Multi is a lookup grid where each cell stores an N-tuple of list indices.
type Multi struct {
	Size    vecd.VecD[uint32]
	Offset  vecd.VecD[int32]
	N       int
	cells   []uint32 // len = product(Size)*N, row-major over leaf then list
	strides []int
	lists   [][]vecd.VecD[int32] // N lists of tracked positions
}

// NewMulti allocates an all-NULL Multi lookup grid with n tracking lists.
func NewMulti(size vecd.VecD[uint32], offset vecd.VecD[int32], n int) *Multi {
	m := &Multi{Size: size.Clone(), Offset: offset.Clone(), N: n}
	m.strides = computeStrides(size)
	total := 1
	for _, s := range size {
		total *= int(s)
	}
	m.cells = make([]uint32, total*n)
	for i := range m.cells {
		m.cells[i] = NullIdx
	}
	m.lists = make([][]vecd.VecD[int32], n)
	return m
}

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

func (m *Multi) inside(pos vecd.VecD[int32]) bool {
	for i, o := range m.Offset {
		rel := pos[i] - o
		if rel < 0 || uint32(rel) >= m.Size[i] {
			return false
		}
	}
	return true
}

// cellIdx returns the flat index of cell pos within the leaf grid (not yet
// multiplied by N).
func (m *Multi) cellIdx(pos vecd.VecD[int32]) int {
	idx := 0
	for i, o := range m.Offset {
		idx += int(pos[i]-o) * m.strides[i]
	}
	return idx
}

func (m *Multi) at(pos vecd.VecD[int32], k int) uint32 {
	return m.cells[m.cellIdx(pos)*m.N+k]
}

func (m *Multi) setAt(pos vecd.VecD[int32], k int, v uint32) {
	m.cells[m.cellIdx(pos)*m.N+k] = v
}

// IsTracked reports whether pos is a member of list k.
func (m *Multi) IsTracked(pos vecd.VecD[int32], k int) bool {
	return m.at(pos, k) != NullIdx
}

// Track inserts pos into list k (push-back). Returns false if pos was
// already a member of list k.
func (m *Multi) Track(pos vecd.VecD[int32], k int) bool {
	if m.at(pos, k) != NullIdx {
		return false
	}
	j := uint32(len(m.lists[k]))
	m.lists[k] = append(m.lists[k], pos.Clone())
	m.setAt(pos, k, j)
	return true
}

// Untrack removes pos from list k via swap-with-last-then-pop, updating the
// swapped entry's stored index. No-op if pos is not a member of list k.
func (m *Multi) Untrack(pos vecd.VecD[int32], k int) {
	j := m.at(pos, k)
	if j == NullIdx {
		return
	}
	last := len(m.lists[k]) - 1
	if int(j) < last {
		movedPos := m.lists[k][last]
		m.lists[k][j] = movedPos
		m.setAt(movedPos, k, j)
	}
	m.lists[k] = m.lists[k][:last]
	m.setAt(pos, k, NullIdx)
}

// Reset clears list k entirely, un-tracking every member.
func (m *Multi) Reset(k int) {
	for _, pos := range m.lists[k] {
		m.setAt(pos, k, NullIdx)
	}
	m.lists[k] = m.lists[k][:0]
}

// List returns the live members of list k. The caller must not mutate the
// returned slice directly; use Track/Untrack.
func (m *Multi) List(k int) []vecd.VecD[int32] { return m.lists[k] }

// ListLen returns len(List(k)) without copying.
func (m *Multi) ListLen(k int) int { return len(m.lists[k]) }

// AnyTracked reports whether pos belongs to any of the N lists.
func (m *Multi) AnyTracked(pos vecd.VecD[int32]) bool {
	for k := 0; k < m.N; k++ {
		if m.IsTracked(pos, k) {
			return true
		}
	}
	return false
}

// AllEmpty reports whether every list is currently empty.
func (m *Multi) AllEmpty() bool {
	for k := 0; k < m.N; k++ {
		if len(m.lists[k]) > 0 {
			return false
		}
	}
	return true
}
