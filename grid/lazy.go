// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/cpmech/gosurf/vecd"

// Lazy is a dense leaf grid that owns no buffer until Activate is called.
// Queries on an inactive Lazy grid return the stored Background value (C5).
type Lazy[T any] struct {
	Size       vecd.VecD[uint32]
	Offset     vecd.VecD[int32]
	Background T
	dense      *Dense[T] // nil when inactive
}

// NewLazy returns an inactive Lazy grid with the given background.
func NewLazy[T any](size vecd.VecD[uint32], offset vecd.VecD[int32], background T) *Lazy[T] {
	return &Lazy[T]{Size: size.Clone(), Offset: offset.Clone(), Background: background}
}

// Active reports whether the grid currently owns a buffer.
func (g *Lazy[T]) Active() bool { return g.dense != nil }

// Activate allocates the underlying buffer, filled with Background.
func (g *Lazy[T]) Activate() {
	if g.dense != nil {
		return
	}
	g.dense = NewDense[T](g.Size, g.Offset, g.Background)
}

// Deactivate frees the underlying buffer and sets a new background, which
// may differ from the pre-activation one (caller supplies it).
func (g *Lazy[T]) Deactivate(newBackground T) {
	g.dense = nil
	g.Background = newBackground
}

// Inside reports whether pos lies within the grid's box (regardless of
// activation state).
func (g *Lazy[T]) Inside(pos vecd.VecD[int32]) bool {
	for i, o := range g.Offset {
		rel := pos[i] - o
		if rel < 0 || uint32(rel) >= g.Size[i] {
			return false
		}
	}
	return true
}

// Get returns the value at pos, or Background if inactive.
func (g *Lazy[T]) Get(pos vecd.VecD[int32]) T {
	if g.dense == nil {
		return g.Background
	}
	return g.dense.Get(pos)
}

// Set stores v at pos. The caller must Activate first.
func (g *Lazy[T]) Set(pos vecd.VecD[int32], v T) {
	g.dense.Set(pos, v)
}

// Dense exposes the underlying Dense grid (nil if inactive) for callers that
// need bulk iteration (e.g. the polygonisation engine).
func (g *Lazy[T]) Dense() *Dense[T] { return g.dense }
