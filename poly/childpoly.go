// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poly

import (
	"github.com/cpmech/gosurf/numop"
	"github.com/cpmech/gosurf/vecd"
)

// Epsilon is the tolerance used when placing a vertex on a crossed edge: a
// corner within Epsilon of zero snaps the vertex to that corner, and two
// corners within Epsilon of each other place the vertex at their midpoint,
// matching the degenerate-edge handling called for by spec.md §9.
const Epsilon = 1e-6

// Vertex is one polygonisation vertex: a zero-crossing position plus, in 3D,
// a surface normal interpolated from the neighbouring gradient samples.
type Vertex struct {
	Pos    vecd.VecD[float32]
	Normal vecd.VecD[float32] // nil in 2D
}

// Simplex is a polygonisation primitive: 2 vertex indices for a 2D line
// segment, 3 for a 3D triangle.
type Simplex []int

// edgeKey canonically identifies an undirected edge between two integer
// grid corners, used to memoise interpolated vertices so that a shared edge
// (whether a cube edge or, in 3D, a tetrahedron face/space diagonal) yields
// exactly one vertex regardless of which cube or tetrahedron visits it
// first.
type edgeKey struct{ a, b [3]int32 }

func newEdgeKey(a, b vecd.VecD[int32]) edgeKey {
	var ka, kb [3]int32
	for i, c := range a {
		ka[i] = c
	}
	for i, c := range b {
		kb[i] = c
	}
	if lessKey(kb, ka) {
		ka, kb = kb, ka
	}
	return edgeKey{ka, kb}
}

func lessKey(a, b [3]int32) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// ChildPoly is the polygonisation state for a single partition: every
// vertex and simplex produced by the last march of that partition's zero
// layer. Re-marching replaces Vtxs/Spxs wholesale (spec.md's per-Child
// "invalidate, then rebuild" contract).
type ChildPoly struct {
	dim       int
	Vtxs      []Vertex
	Spxs      []Simplex
	edgeCache map[edgeKey]int
}

func newChildPoly(dim int) *ChildPoly {
	return &ChildPoly{dim: dim, edgeCache: make(map[edgeKey]int)}
}

// invalidate discards all vertices and simplices, ready for a fresh march.
func (cp *ChildPoly) invalidate() {
	cp.Vtxs = cp.Vtxs[:0]
	cp.Spxs = cp.Spxs[:0]
	for k := range cp.edgeCache {
		delete(cp.edgeCache, k)
	}
}

// vertexOnEdge returns the memoised vertex index for the crossing along
// edge (a,b), computing and caching it on first visit.
func (cp *ChildPoly) vertexOnEdge(iso numop.Field, dx float32, a, b vecd.VecD[int32]) int {
	key := newEdgeKey(a, b)
	if idx, ok := cp.edgeCache[key]; ok {
		return idx
	}
	ua, ub := iso.Get(a), iso.Get(b)
	af, bf := vecd.I32ToF32(a), vecd.I32ToF32(b)
	var pos vecd.VecD[float32]
	var t float32
	switch {
	case abs32(ua) <= Epsilon:
		pos, t = af, 0
	case abs32(ub) <= Epsilon:
		pos, t = bf, 1
	case abs32(ua-ub) <= Epsilon:
		pos, t = midpoint(af, bf), 0.5
	default:
		t = ua / (ua - ub)
		pos = lerpPos(af, bf, t)
	}
	v := Vertex{Pos: pos}
	if cp.dim == 3 {
		ga := numop.GradC(iso, a, dx)
		gb := numop.GradC(iso, b, dx)
		n := lerpPos(ga, gb, t)
		if norm := vecd.Norm32(n); norm > 0 {
			n = n.Scale(1 / norm)
		}
		v.Normal = n
	}
	idx := len(cp.Vtxs)
	cp.Vtxs = append(cp.Vtxs, v)
	cp.edgeCache[key] = idx
	return idx
}

// emit appends a simplex built from 2 or 3 edge-crossing vertices, dropping
// it if any two of its vertices coincide within Epsilon (a true per-simplex
// degeneracy, detected directly on vertex positions rather than inferred
// per-cube, per spec.md §9's note on the original filter's false positives).
func (cp *ChildPoly) emit(indices ...int) {
	for i := 0; i < len(indices); i++ {
		for j := i + 1; j < len(indices); j++ {
			if coincide(cp.Vtxs[indices[i]].Pos, cp.Vtxs[indices[j]].Pos) {
				return
			}
		}
	}
	spx := make(Simplex, len(indices))
	copy(spx, indices)
	cp.Spxs = append(cp.Spxs, spx)
}

func coincide(a, b vecd.VecD[float32]) bool {
	var s float32
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s <= Epsilon*Epsilon
}

func midpoint(a, b vecd.VecD[float32]) vecd.VecD[float32] {
	return lerpPos(a, b, 0.5)
}

func lerpPos(a, b vecd.VecD[float32], t float32) vecd.VecD[float32] {
	r := make(vecd.VecD[float32], len(a))
	for i := range a {
		r[i] = a[i] + t*(b[i]-a[i])
	}
	return r
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
