// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lookup

import "github.com/cpmech/gosurf/vecd"

// Single is a lookup grid where each cell stores a single list index: a
// position may belong to at most one list at a time, and the list id is
// not stored per-cell (the caller always knows which conceptual list it is
// tracking). Used where only yes/no membership in one running list is
// needed (e.g. the polygonisation engine's dirty-Child set).
type Single struct {
	Size    vecd.VecD[uint32]
	Offset  vecd.VecD[int32]
	cells   []uint32
	strides []int
	list    []vecd.VecD[int32]
}

// NewSingle allocates an all-NULL Single lookup grid.
func NewSingle(size vecd.VecD[uint32], offset vecd.VecD[int32]) *Single {
	s := &Single{Size: size.Clone(), Offset: offset.Clone()}
	s.strides = computeStrides(size)
	total := 1
	for _, c := range size {
		total *= int(c)
	}
	s.cells = make([]uint32, total)
	for i := range s.cells {
		s.cells[i] = NullIdx
	}
	return s
}

func (s *Single) cellIdx(pos vecd.VecD[int32]) int {
	idx := 0
	for i, o := range s.Offset {
		idx += int(pos[i]-o) * s.strides[i]
	}
	return idx
}

// IsTracked reports whether pos is currently a member of the list.
func (s *Single) IsTracked(pos vecd.VecD[int32]) bool {
	return s.cells[s.cellIdx(pos)] != NullIdx
}

// Track inserts pos (push-back). Returns false if already tracked.
func (s *Single) Track(pos vecd.VecD[int32]) bool {
	idx := s.cellIdx(pos)
	if s.cells[idx] != NullIdx {
		return false
	}
	j := uint32(len(s.list))
	s.list = append(s.list, pos.Clone())
	s.cells[idx] = j
	return true
}

// Untrack removes pos via swap-with-last-then-pop. No-op if not tracked.
func (s *Single) Untrack(pos vecd.VecD[int32]) {
	idx := s.cellIdx(pos)
	j := s.cells[idx]
	if j == NullIdx {
		return
	}
	last := len(s.list) - 1
	if int(j) < last {
		moved := s.list[last]
		s.list[j] = moved
		s.cells[s.cellIdx(moved)] = j
	}
	s.list = s.list[:last]
	s.cells[idx] = NullIdx
}

// Reset clears the list entirely.
func (s *Single) Reset() {
	for _, pos := range s.list {
		s.cells[s.cellIdx(pos)] = NullIdx
	}
	s.list = s.list[:0]
}

// List returns the live tracked positions.
func (s *Single) List() []vecd.VecD[int32] { return s.list }

// Len returns len(List()).
func (s *Single) Len() int { return len(s.list) }
