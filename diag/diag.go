// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements cheap, colour-coded console diagnostics for the
// level-set engine, wrapping gosl/io's Pforan/Pfcyan/PfRed/Pfyel/Sf family
// used throughout the teacher repo (e.g. fem/domain.go's "log: dom: ..."
// prints) behind a single verbosity gate, since gosl/io's own colour
// helpers print unconditionally and gosl/chk.Verbose is a separate global
// chk owns, not io.
package diag

import "github.com/cpmech/gosl/io"

// Verbose gates every print in this package; off by default so library use
// of the engine stays silent. Mirrors gosl/chk.Verbose.
var Verbose = false

// Pforan prints in green — general progress notices (e.g. seeding).
func Pforan(format string, args ...any) {
	if Verbose {
		io.Pforan(format, args...)
	}
}

// Pfcyan prints in cyan — per-Child / per-phase detail.
func Pfcyan(format string, args ...any) {
	if Verbose {
		io.Pfcyan(format, args...)
	}
}

// PfRed prints in red — raised but recovered precondition violations
// (release-mode clamps, RayIter cap-outs).
func PfRed(format string, args ...any) {
	if Verbose {
		io.PfRed(format, args...)
	}
}

// Pfyel prints in yellow — warnings (e.g. a release-mode RayIter cap-out).
func Pfyel(format string, args ...any) {
	if Verbose {
		io.Pfyel(format, args...)
	}
}

// Sf is a thin sprintf alias, mirroring gosl/io.Sf, used to build messages
// passed to the above.
func Sf(format string, args ...any) string { return io.Sf(format, args...) }
