// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numop implements the finite-difference and interpolation
// operators of C8 (SPEC_FULL.md §4.3): forward/backward/central/safe/
// entropic gradients, divergence, curvature and multilinear interpolation,
// all transparent across partition boundaries because they address a
// Field by position rather than by raw buffer index.
package numop

import (
	"math"

	"github.com/cpmech/gosurf/vecd"
)

// Field is the minimal surface the numeric operators need: a way to read a
// scalar at an integer grid position and test whether that position lies
// within the field's domain. part.Grid[float32] satisfies this directly.
type Field interface {
	Get(pos vecd.VecD[int32]) float32
	Inside(pos vecd.VecD[int32]) bool
}

func unit(dim, axis int) vecd.VecD[int32] { return vecd.Unit[int32](dim, axis) }

// GradF returns the forward-difference gradient: (u(p+eᵢ) − u(p)) / dx per axis.
func GradF(f Field, pos vecd.VecD[int32], dx float32) vecd.VecD[float32] {
	d := pos.Dim()
	g := make(vecd.VecD[float32], d)
	up := f.Get(pos)
	for i := 0; i < d; i++ {
		g[i] = (f.Get(pos.Add(unit(d, i))) - up) / dx
	}
	return g
}

// GradB returns the backward-difference gradient: (u(p) − u(p−eᵢ)) / dx per axis.
func GradB(f Field, pos vecd.VecD[int32], dx float32) vecd.VecD[float32] {
	d := pos.Dim()
	g := make(vecd.VecD[float32], d)
	up := f.Get(pos)
	for i := 0; i < d; i++ {
		g[i] = (up - f.Get(pos.Sub(unit(d, i)))) / dx
	}
	return g
}

// GradC returns the central-difference gradient: (u(p+eᵢ) − u(p−eᵢ)) / (2·dx) per axis.
func GradC(f Field, pos vecd.VecD[int32], dx float32) vecd.VecD[float32] {
	d := pos.Dim()
	g := make(vecd.VecD[float32], d)
	for i := 0; i < d; i++ {
		e := unit(d, i)
		g[i] = (f.Get(pos.Add(e)) - f.Get(pos.Sub(e))) / (2 * dx)
	}
	return g
}

// Grad returns the "safe" gradient: central where both neighbours are
// in-bounds, forward/backward using whichever single side is in-bounds
// otherwise, zero if neither neighbour is in-bounds.
func Grad(f Field, pos vecd.VecD[int32], dx float32) vecd.VecD[float32] {
	d := pos.Dim()
	g := make(vecd.VecD[float32], d)
	up := f.Get(pos)
	for i := 0; i < d; i++ {
		e := unit(d, i)
		fwd, bwd := pos.Add(e), pos.Sub(e)
		fwdOk, bwdOk := f.Inside(fwd), f.Inside(bwd)
		switch {
		case fwdOk && bwdOk:
			g[i] = (f.Get(fwd) - f.Get(bwd)) / (2 * dx)
		case fwdOk:
			g[i] = (f.Get(fwd) - up) / dx
		case bwdOk:
			g[i] = (up - f.Get(bwd)) / dx
		default:
			g[i] = 0
		}
	}
	return g
}

// GradE returns the entropy-satisfying upwind gradient: per axis
// min(u(p)−u(p−eᵢ), 0) + max(u(p+eᵢ)−u(p), 0), divided by dx.
func GradE(f Field, pos vecd.VecD[int32], dx float32) vecd.VecD[float32] {
	d := pos.Dim()
	g := make(vecd.VecD[float32], d)
	up := f.Get(pos)
	for i := 0; i < d; i++ {
		e := unit(d, i)
		back := up - f.Get(pos.Sub(e))
		fwd := f.Get(pos.Add(e)) - up
		g[i] = (minF(back, 0) + maxF(fwd, 0)) / dx
	}
	return g
}

// Divergence returns Σᵢ (gradB − gradF)ᵢ / dx².
func Divergence(f Field, pos vecd.VecD[int32], dx float32) float32 {
	b := GradB(f, pos, dx)
	fw := GradF(f, pos, dx)
	var sum float32
	for i := range b {
		sum += b[i] - fw[i]
	}
	return sum / (dx * dx)
}

// Curv returns the mean-curvature estimate: ½ Σᵢ (n_forwardᵢ − n_backwardᵢ),
// where each n is the forward/backward axial component normalised by
// √(component² + Σ_{j≠i} central_j²).
func Curv(f Field, pos vecd.VecD[int32], dx float32) float32 {
	d := pos.Dim()
	central := GradC(f, pos, dx)
	forward := GradF(f, pos, dx)
	backward := GradB(f, pos, dx)
	var sum float32
	for i := 0; i < d; i++ {
		var otherSq float32
		for j := 0; j < d; j++ {
			if j != i {
				otherSq += central[j] * central[j]
			}
		}
		nFwd := forward[i] / safeSqrt(forward[i]*forward[i]+otherSq)
		nBwd := backward[i] / safeSqrt(backward[i]*backward[i]+otherSq)
		sum += nFwd - nBwd
	}
	return 0.5 * sum
}

func safeSqrt(x float32) float32 {
	if x <= 0 {
		return 1e-20
	}
	return float32(math.Sqrt(float64(x)))
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Interp performs D-linear (bilinear/trilinear) interpolation of f at the
// real-valued position fpos: gather the 2^D integer corner values and
// reduce D times via high·t + low·(1−t) along successive axes.
func Interp(f Field, fpos vecd.VecD[float32]) float32 {
	d := len(fpos)
	lo := make(vecd.VecD[int32], d)
	frac := make([]float32, d)
	for i, c := range fpos {
		fl := math.Floor(float64(c))
		lo[i] = int32(fl)
		frac[i] = c - float32(fl)
	}
	ncorners := 1 << uint(d)
	vals := make([]float32, ncorners)
	for m := 0; m < ncorners; m++ {
		corner := lo.Clone()
		for i := 0; i < d; i++ {
			if m&(1<<uint(i)) != 0 {
				corner[i]++
			}
		}
		vals[m] = f.Get(corner)
	}
	// reduce axis by axis: bit i of a corner index is axis i, so the highest
	// bit (axis d-1) splits vals into its low and high halves; reduce that
	// axis first, then the next-highest bit, down to axis 0.
	n := ncorners
	for axis := d - 1; axis >= 0; axis-- {
		half := n / 2
		t := frac[axis]
		next := make([]float32, half)
		for i := 0; i < half; i++ {
			lowVal := vals[i]
			highVal := vals[i+half]
			next[i] = highVal*t + lowVal*(1-t)
		}
		vals = next
		n = half
	}
	return vals[0]
}
