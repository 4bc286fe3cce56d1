// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package part

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cpmech/gosurf/diag"
	"github.com/cpmech/gosurf/vecd"
)

// ParallelThreshold is the minimum number of Children below which
// ForEachChild runs serially rather than paying worker-pool overhead (§5:
// "a threshold (≈ 32 active children) gates parallel dispatch").
const ParallelThreshold = 32

// ParallelDispatches counts how many ForEachChild calls actually fanned out
// across goroutines, for diagnostics.
var ParallelDispatches int64

// ForEachChild calls fn once for every Child position currently tracked in
// list k of g, data-parallel across Children above ParallelThreshold. Each
// Child is visited by exactly one goroutine: within a Child, fn executes
// single-threaded, matching §5's ownership-by-partition model.
func ForEachChild[T any](g *Grid[T], k int, fn func(childPos vecd.VecD[uint32])) {
	positions := g.ChildPositions(k)
	forEachPos(positions, fn)
}

// ForEachActiveChild is like ForEachChild but iterates every active Child
// regardless of which list(s) it belongs to.
func ForEachActiveChild[T any](g *Grid[T], fn func(childPos vecd.VecD[uint32])) {
	forEachPos(g.ActiveChildPositions(), fn)
}

func forEachPos(positions []vecd.VecD[uint32], fn func(vecd.VecD[uint32])) {
	if len(positions) < ParallelThreshold {
		for _, p := range positions {
			fn(p)
		}
		return
	}
	atomic.AddInt64(&ParallelDispatches, 1)
	diag.Pfcyan("part: dispatching %d children across workers\n", len(positions))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(positions) {
		workers = len(positions)
	}
	var wg sync.WaitGroup
	chunk := (len(positions) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= len(positions) {
			break
		}
		if hi > len(positions) {
			hi = len(positions)
		}
		wg.Add(1)
		go func(slice []vecd.VecD[uint32]) {
			defer wg.Done()
			for _, p := range slice {
				fn(p)
			}
		}(positions[lo:hi])
	}
	wg.Wait()
}
