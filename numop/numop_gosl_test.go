// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numop

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gosurf/vecd"
)

// quadraticField is u(p) = p.x² + p.y², sampled only at integer positions —
// enough to drive GradC, whose central-difference formula is exact for a
// quadratic.
type quadraticField struct{}

func (quadraticField) Get(pos vecd.VecD[int32]) float32 {
	var s float32
	for _, c := range pos {
		s += float32(c) * float32(c)
	}
	return s
}

func (quadraticField) Inside(pos vecd.VecD[int32]) bool { return true }

// Test_gradC01 cross-checks GradC's axis-0 component against gosl/num's
// general-purpose central-difference derivative, the way shp/testing.go
// cross-checks shape-function derivatives against num.DerivCentral.
func Test_gradC01(tst *testing.T) {

	chk.PrintTitle("gradC01")

	f := quadraticField{}
	pos := vecd.Of[int32](3, -2)
	dx := float32(1.0)

	g := GradC(f, pos, dx)

	dudx0, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
		return t*t + float64(pos[1])*float64(pos[1])
	}, float64(pos[0]), 1e-1)

	io.Pforan("GradC=%v  num.DerivCentral(axis0)=%v\n", g, dudx0)
	chk.Scalar(tst, "dudx0", 1e-8, float64(g[0]), dudx0)
}
