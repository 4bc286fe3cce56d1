// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package must implements the engine's single precondition-violation error
// taxonomy (see SPEC_FULL.md §7) and the panic/Err helpers used throughout
// the core, grounded on the gosl/chk.Panic / gosl/chk.Err call shape used
// pervasively in the teacher repo.
package must

import "fmt"

// Kind enumerates the precondition-violation kinds raised by the core.
type Kind int

const (
	OutOfBounds Kind = iota
	DeltaTooLarge
	DegenerateLayer
	RayIter
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "OutOfBounds"
	case DeltaTooLarge:
		return "DeltaTooLarge"
	case DegenerateLayer:
		return "DegenerateLayer"
	case RayIter:
		return "RayIter"
	default:
		return "Unknown"
	}
}

// PrecondViolation is the sole error/panic value raised by the core. Pos and
// Ctx are optional diagnostic payloads (grid position, free-form context).
type PrecondViolation struct {
	Kind Kind
	Pos  any
	Ctx  string
}

func (e *PrecondViolation) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s at pos=%v: %s", e.Kind, e.Pos, e.Ctx)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Ctx)
}

// Panicf panics with a PrecondViolation built from kind/pos and a formatted
// context string. Used for debug-build precondition violations (§7).
func Panicf(kind Kind, pos any, format string, args ...any) {
	panic(&PrecondViolation{Kind: kind, Pos: pos, Ctx: fmt.Sprintf(format, args...)})
}

// Errf returns a PrecondViolation as an error without panicking, for callers
// that want the taxonomy as a value rather than a panic. The serialisation
// code (surface.Dump/Load) does not use it: it returns plain I/O errors.
func Errf(kind Kind, pos any, format string, args ...any) error {
	return &PrecondViolation{Kind: kind, Pos: pos, Ctx: fmt.Sprintf(format, args...)}
}
