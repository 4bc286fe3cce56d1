// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vecd implements the small fixed-arity vector arithmetic (VecD)
// used throughout the level-set engine to address D-dimensional (D∈{2,3})
// grid positions and store per-axis quantities. It is deliberately a thin,
// dependency-free vocabulary type: see DESIGN.md for why no third-party
// linear-algebra package is used here.
package vecd

import "math"

// Number is the set of scalar types a VecD may hold.
type Number interface {
	~int32 | ~uint32 | ~int | ~float32 | ~float64
}

// VecD is a D-dimensional vector, D = len(v) ∈ {2,3} for this engine.
// Backed by a slice rather than a fixed array because Go generics cannot
// parameterise array length on D.
type VecD[T Number] []T

// New allocates a zeroed D-dimensional vector.
func New[T Number](dim int) VecD[T] {
	return make(VecD[T], dim)
}

// Of builds a VecD from literal components.
func Of[T Number](vals ...T) VecD[T] {
	v := make(VecD[T], len(vals))
	copy(v, vals)
	return v
}

// Splat returns a vector with every component set to val.
func Splat[T Number](dim int, val T) VecD[T] {
	v := make(VecD[T], dim)
	for i := range v {
		v[i] = val
	}
	return v
}

// Unit returns the axis-aligned unit vector e_axis (all other components zero).
func Unit[T Number](dim, axis int) VecD[T] {
	v := make(VecD[T], dim)
	v[axis] = 1
	return v
}

// Dim returns the dimensionality D of v.
func (v VecD[T]) Dim() int { return len(v) }

// Clone returns an independent copy of v.
func (v VecD[T]) Clone() VecD[T] {
	o := make(VecD[T], len(v))
	copy(o, v)
	return o
}

// Add returns v + o componentwise.
func (v VecD[T]) Add(o VecD[T]) VecD[T] {
	r := make(VecD[T], len(v))
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Sub returns v - o componentwise.
func (v VecD[T]) Sub(o VecD[T]) VecD[T] {
	r := make(VecD[T], len(v))
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Scale returns v * s componentwise.
func (v VecD[T]) Scale(s T) VecD[T] {
	r := make(VecD[T], len(v))
	for i := range v {
		r[i] = v[i] * s
	}
	return r
}

// Dot returns the scalar (inner) product of v and o.
func (v VecD[T]) Dot(o VecD[T]) T {
	var s T
	for i := range v {
		s += v[i] * o[i]
	}
	return s
}

// Product returns the product of all components; used to size dense
// leaf-grid buffers (∏ size_i).
func (v VecD[T]) Product() T {
	var p T = 1
	for _, c := range v {
		p *= c
	}
	return p
}

// Eq reports whether v and o are componentwise equal.
func (v VecD[T]) Eq(o VecD[T]) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Cast converts every component of v from T to U via the given mapping
// (since Go forbids arbitrary numeric conversion across type parameters).
func Cast[T, U Number](v VecD[T], conv func(T) U) VecD[U] {
	r := make(VecD[U], len(v))
	for i, c := range v {
		r[i] = conv(c)
	}
	return r
}

// Norm32 returns the Euclidean length of a float32 VecD.
func Norm32(v VecD[float32]) float32 {
	var s float32
	for _, c := range v {
		s += c * c
	}
	return float32(math.Sqrt(float64(s)))
}

// Norm64 returns the Euclidean length of a float64 VecD.
func Norm64(v VecD[float64]) float64 {
	var s float64
	for _, c := range v {
		s += c * c
	}
	return math.Sqrt(s)
}

// Neg returns -v componentwise.
func (v VecD[T]) Neg() VecD[T] {
	r := make(VecD[T], len(v))
	for i := range v {
		r[i] = -v[i]
	}
	return r
}

// I32ToF32 is a convenience conversion used when interpolating grid positions.
func I32ToF32(v VecD[int32]) VecD[float32] {
	return Cast[int32, float32](v, func(x int32) float32 { return float32(x) })
}

// U32ToI32 converts an unsigned size vector to a signed one.
func U32ToI32(v VecD[uint32]) VecD[int32] {
	return Cast[uint32, int32](v, func(x uint32) int32 { return int32(x) })
}

// I32ToU32 converts a signed vector to unsigned (caller ensures non-negative).
func I32ToU32(v VecD[int32]) VecD[uint32] {
	return Cast[int32, uint32](v, func(x int32) uint32 { return uint32(x) })
}
