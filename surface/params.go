// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import "github.com/cpmech/gosurf/vecd"

// Params is the JSON-driven configuration for constructing a Surface (C11,
// SPEC_FULL.md §4.6), mirroring the teacher's inp.Data/SetDefault idiom.
type Params struct {
	Size          vecd.VecD[int32]  `json:"size"`
	PartitionSize vecd.VecD[uint32] `json:"partition_size"`
	Layers        int               `json:"layers"`
	Dx            float32           `json:"dx"`
	Encoder       string            `json:"encoder"`
}

// SetDefault fills zero-valued fields with this engine's defaults: Layers=2,
// PartitionSize=splat(8), Dx=1, Encoder="raw".
func (p *Params) SetDefault() {
	if p.Layers == 0 {
		p.Layers = 2
	}
	if p.Dx == 0 {
		p.Dx = 1
	}
	if p.Encoder == "" {
		p.Encoder = "raw"
	}
	if len(p.PartitionSize) == 0 && len(p.Size) > 0 {
		p.PartitionSize = vecd.Splat[uint32](len(p.Size), 8)
	}
}

// NewSurfaceFromParams is the JSON-facing Surface constructor: it calls
// SetDefault on a copy of p, then builds the Surface directly.
func NewSurfaceFromParams(p Params) *Surface {
	p.SetDefault()
	return newSurface(p.Size, p.PartitionSize, p.Layers, p.Dx)
}
