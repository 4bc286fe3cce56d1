// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface implements the Surface (C9): layer topology, seeding,
// delta application, the three-phase update protocol, and raycasting, per
// SPEC_FULL.md §4.4/§4.6/§4.7. It is the component most other packages in
// this module exist to serve.
package surface

import (
	"github.com/cpmech/gosurf/diag"
	"github.com/cpmech/gosurf/part"
	"github.com/cpmech/gosurf/vecd"
)

// Surface is a narrow-band level set over a D-dimensional partitioned grid.
type Surface struct {
	Dim           int
	Size          vecd.VecD[int32]
	Offset        vecd.VecD[int32]
	PartitionSize vecd.VecD[uint32]
	L             int
	Dx            float32

	iso         *part.Grid[float32]
	delta       *part.Grid[float32]
	status      *part.Grid[int8]
	affected    *part.Grid[struct{}]
	affectedBuf *part.Grid[struct{}]
}

// NewSurface constructs a Surface with the default layer radius (L=2) and
// grid spacing (dx=1), centred (offset = −size/2).
func NewSurface(size vecd.VecD[int32], partitionSize vecd.VecD[uint32]) *Surface {
	return newSurface(size, partitionSize, 2, 1)
}

func newSurface(size vecd.VecD[int32], partitionSize vecd.VecD[uint32], layers int, dx float32) *Surface {
	d := len(size)
	offset := make(vecd.VecD[int32], d)
	for i := range offset {
		offset[i] = -size[i] / 2
	}
	n := 2*layers + 1
	outside := float32(layers + 1)
	s := &Surface{
		Dim:           d,
		Size:          size.Clone(),
		Offset:        offset,
		PartitionSize: partitionSize.Clone(),
		L:             layers,
		Dx:            dx,
	}
	s.iso = part.New[float32](size, offset, partitionSize, outside, n)
	s.delta = part.New[float32](size, offset, partitionSize, 0, 1)
	s.status = part.New[int8](size, offset, partitionSize, int8(outside), n)
	s.affected = part.New[struct{}](size, offset, partitionSize, struct{}{}, n)
	s.affectedBuf = part.New[struct{}](size, offset, partitionSize, struct{}{}, n)
	return s
}

// Iso exposes the canonical signed-distance grid, e.g. for constructing a
// poly.PolyGrid over it.
func (s *Surface) Iso() *part.Grid[float32] { return s.iso }

// ZeroList returns the tracking-list id of the zero layer within Iso()
// (list id L, since list id = layer id + L).
func (s *Surface) ZeroList() int { return s.L }

// DeltaChildren returns the Child positions currently registered in
// delta's zero-layer list (delta's only list, id 0), i.e. the Children
// any point accumulated a velocity this step (§4.5's "iso.delta's
// layer-0 children list").
func (s *Surface) DeltaChildren() []vecd.VecD[uint32] {
	return s.delta.ChildPositions(0)
}

// StatusZeroChildren returns the Child positions currently registered in
// status's zero-source-layer list — source layer 0 shifted by +L, the
// same layer-id-to-list-id convention ZeroList() uses for iso — i.e. the
// Children where some point transitioned away from the zero layer this
// step (§4.5's "iso.status's layer-0 children list").
func (s *Surface) StatusZeroChildren() []vecd.VecD[uint32] {
	return s.status.ChildPositions(s.L)
}

// Seed initialises the iso field with a city-block (Manhattan-distance)
// pyramid of radius L centred at pos: every point within L1 distance ≤ L
// is tracked at layer id = its L1 distance, the surface's only positive
// (outside) layers — seeding never creates an interior.
func (s *Surface) Seed(pos vecd.VecD[int32]) {
	cur := make(vecd.VecD[int32], s.Dim)
	var rec func(axis int, remaining int32)
	rec = func(axis int, remaining int32) {
		if axis == s.Dim {
			p := pos.Add(cur)
			if !s.iso.Inside(p) {
				return
			}
			id := 0
			for _, c := range cur {
				id += absInt(int(c))
			}
			s.iso.Track(p, float32(id), id+s.L)
			return
		}
		for off := -remaining; off <= remaining; off++ {
			cur[axis] = off
			rec(axis+1, remaining-absInt32(off))
		}
		cur[axis] = 0
	}
	rec(0, int32(s.L))
	diag.Pforan("surface: seeded at %v\n", pos)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func absInt32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// neighbors returns the 2·D axis-adjacent positions of p (−e₀,+e₀,−e₁,+e₁,…).
func neighbors(p vecd.VecD[int32], dim int) []vecd.VecD[int32] {
	out := make([]vecd.VecD[int32], 0, 2*dim)
	for i := 0; i < dim; i++ {
		minus := p.Clone()
		minus[i]--
		plus := p.Clone()
		plus[i]++
		out = append(out, minus, plus)
	}
	return out
}

// roundLayer rounds a signed distance to its narrow-band layer id, biasing
// exact half-integer ties upward (spec.md §9: "round(val+ε)").
func roundLayer(val float32) int {
	return int(floor64(float64(val) + 0.5 + layerEpsilon))
}

const layerEpsilon = 1e-4

func floor64(x float64) float64 {
	i := int64(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return float64(i)
}

func absF32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func gridPositionsStruct(g *part.Grid[struct{}], k int) []vecd.VecD[int32] {
	var out []vecd.VecD[int32]
	for _, childPos := range g.ChildPositions(k) {
		out = append(out, g.ChildByPos(childPos).U.List(k)...)
	}
	return out
}
