// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command levelsetdemo seeds a Surface, runs a few update steps, extracts
// its polygonisation and prints a summary. It is an external collaborator
// (§1, §6) exercising every top-level core entry point, not part of the
// tested core itself.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosurf/diag"
	"github.com/cpmech/gosurf/poly"
	"github.com/cpmech/gosurf/surface"
	"github.com/cpmech/gosurf/vecd"
)

func main() {

	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	fnamepath := flag.String("params", "", "path to a Params JSON file (optional; defaults used otherwise)")
	steps := flag.Int("steps", 3, "number of expand-update steps to run")
	verbose := flag.Bool("verbose", true, "print diagnostics")
	flag.Parse()

	io.PfWhite("\nlevelsetdemo -- sparse-field level-set engine\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	params := surface.Params{
		Size: vecd.Of[int32](64, 64),
	}
	if *fnamepath != "" {
		b, err := os.ReadFile(*fnamepath)
		if err != nil {
			chk.Panic("cannot read params file %q: %v", *fnamepath, err)
		}
		if err := json.Unmarshal(b, &params); err != nil {
			chk.Panic("cannot decode params file %q: %v", *fnamepath, err)
		}
	}

	io.Pf("\n%v\n", io.ArgsTable(
		"params file", "params", *fnamepath,
		"update steps", "steps", *steps,
		"show messages", "verbose", *verbose,
	))

	diag.Verbose = *verbose

	s := surface.NewSurfaceFromParams(params)
	origin := vecd.New[int32](len(params.Size))
	s.Seed(origin)
	io.Pforan("seeded surface dim=%d L=%d dx=%v\n", s.Dim, s.L, s.Dx)

	pg := poly.NewPolyGrid(s.Iso(), s.ZeroList(), s.Dim, s.Dx)
	pg.Invalidate()

	for step := 0; step < *steps; step++ {
		s.Update(func(pos vecd.VecD[int32]) float32 { return -0.5 })
		pg.Notify(s)
		io.Pfcyan("step %d: update applied, %d children dirty\n", step, len(pg.Changes()))
	}

	pg.March()
	io.Pforan("polygonisation complete\n")
}
