// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosurf/vecd"
)

// Test_dumpLoad01 is the §8 serialise→deserialise round-trip law: iso
// values, layer-list membership and Child activation must survive a
// Dump/Load cycle exactly, including the Child positions a subsequent
// list-driven iteration (ChildPositions) needs to see the restored data.
func Test_dumpLoad01(tst *testing.T) {

	chk.PrintTitle("dumpLoad01")

	s := NewSurface(vecd.Of[int32](9, 9), vecd.Splat[uint32](2, 3))
	s.Seed(vecd.Of[int32](0, 0))
	s.Update(func(pos vecd.VecD[int32]) float32 { return -0.6 })

	var buf bytes.Buffer
	if err := s.Dump(&buf); err != nil {
		tst.Fatalf("Dump failed: %v", err)
	}

	loaded, err := Load(&buf, s.Dim)
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}

	n := 2*s.L + 1
	for k := 0; k < n; k++ {
		before := s.Iso().ChildPositions(k)
		after := loaded.Iso().ChildPositions(k)
		io.Pforan("list %d: before=%d after=%d\n", k, len(before), len(after))
		if len(before) != len(after) {
			tst.Fatalf("list %d: parent-level child count changed across round-trip (%d -> %d)", k, len(before), len(after))
		}
		for _, childPos := range before {
			beforeChild := s.Iso().ChildByPos(childPos)
			afterChild := loaded.Iso().ChildByPos(childPos)
			if !afterChild.Active() {
				tst.Fatalf("list %d: Child %v should be active after Load", k, childPos)
			}
			beforeLen := beforeChild.U.ListLen(k)
			afterLen := afterChild.U.ListLen(k)
			if beforeLen != afterLen {
				tst.Fatalf("list %d: Child %v list length changed across round-trip (%d -> %d)", k, childPos, beforeLen, afterLen)
			}
			for _, p := range beforeChild.U.List(k) {
				chk.Scalar(tst, io.Sf("iso(%v)", p), 1e-15, float64(afterChild.Get(p)), float64(beforeChild.Get(p)))
				if !afterChild.U.IsTracked(p, k) {
					tst.Fatalf("list %d: point %v lost its tracking membership across round-trip", k, p)
				}
			}
		}
	}
}
