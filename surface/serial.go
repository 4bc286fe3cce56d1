// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cpmech/gosurf/vecd"
)

// wireVersion is the single u32 version tag at the head of every dump (§6).
const wireVersion = 1

// Dump writes the iso field only (C12, SPEC_FULL.md §4.7): delta/status/
// affected/affected_buf are transient update-step scratch space, not part
// of persisted state (§3 lists them as such). Per §6 the layout is
// partition-by-partition: a header, then per Child an (active, offset,
// size, background) record, followed, if active, by the raw values and N
// layer-list length/contents groups. No error here is a PrecondViolation
// (§7: "no I/O errors exist in the core; serialisation errors are the
// caller's") — failures are returned as plain errors from encoding/binary.
func (s *Surface) Dump(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(wireVersion)); err != nil {
		return err
	}
	if err := writeVecI32(w, s.Size); err != nil {
		return err
	}
	if err := writeVecI32(w, s.Offset); err != nil {
		return err
	}
	if err := writeVecU32(w, s.PartitionSize); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(s.L)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.Dx); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.iso.Background); err != nil {
		return err
	}

	n := 2*s.L + 1
	total := s.iso.NumChildren()
	for flat := 0; flat < total; flat++ {
		child := s.iso.ChildAtFlat(flat)
		if err := binary.Write(w, binary.LittleEndian, boolByte(child.Active())); err != nil {
			return err
		}
		if err := writeVecI32(w, child.Offset); err != nil {
			return err
		}
		if err := writeVecU32(w, child.Size); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, child.Background); err != nil {
			return err
		}
		if !child.Active() {
			continue
		}
		if err := binary.Write(w, binary.LittleEndian, child.V.Buf); err != nil {
			return err
		}
		for k := 0; k < n; k++ {
			list := child.U.List(k)
			if err := binary.Write(w, binary.LittleEndian, uint32(len(list))); err != nil {
				return err
			}
			for _, p := range list {
				if err := writeVecI32(w, p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Load reconstructs a Surface of dimensionality dim from a stream written
// by Dump. The wire format does not self-describe D (VecD's length), so
// the caller supplies it, exactly as the caller already knows D when
// choosing which Surface[dim] to build in the first place. It rebuilds the
// partitioned iso grid Child by Child, restoring raw values and layer list
// membership exactly (round-trip identity on iso values, layer list
// contents and Child activation — §8).
func Load(r io.Reader, dim int) (*Surface, error) {
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != wireVersion {
		return nil, fmt.Errorf("surface: unsupported wire version %d", version)
	}
	size, err := readVecI32(r, dim)
	if err != nil {
		return nil, err
	}
	offset, err := readVecI32(r, dim)
	if err != nil {
		return nil, err
	}
	_ = offset // always recomputed as -size/2 by newSurface; kept for wire fidelity
	partitionSizeU32, err := readVecU32(r, dim)
	if err != nil {
		return nil, err
	}
	var layers uint32
	if err := binary.Read(r, binary.LittleEndian, &layers); err != nil {
		return nil, err
	}
	var dx float32
	if err := binary.Read(r, binary.LittleEndian, &dx); err != nil {
		return nil, err
	}
	var isoBackground float32
	if err := binary.Read(r, binary.LittleEndian, &isoBackground); err != nil {
		return nil, err
	}

	s := newSurface(size, partitionSizeU32, int(layers), dx)
	s.iso.Background = isoBackground
	n := 2*s.L + 1
	total := s.iso.NumChildren()
	for flat := 0; flat < total; flat++ {
		var activeByte byte
		if err := binary.Read(r, binary.LittleEndian, &activeByte); err != nil {
			return nil, err
		}
		if _, err := readVecI32(r, dim); err != nil { // child offset, recomputed by construction
			return nil, err
		}
		if _, err := readVecU32(r, dim); err != nil { // child size, recomputed by construction
			return nil, err
		}
		var childBackground float32
		if err := binary.Read(r, binary.LittleEndian, &childBackground); err != nil {
			return nil, err
		}
		child := s.iso.ChildAtFlat(flat)
		child.Background = childBackground
		if activeByte == 0 {
			continue
		}
		child.Activate()
		if err := binary.Read(r, binary.LittleEndian, child.V.Buf); err != nil {
			return nil, err
		}
		for k := 0; k < n; k++ {
			var length uint32
			if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
				return nil, err
			}
			for i := uint32(0); i < length; i++ {
				p, err := readVecI32(r, dim)
				if err != nil {
					return nil, err
				}
				// Route through s.iso.Track rather than child.U.Track
				// directly: it rewrites the already-restored value (a
				// no-op) but also joins the parent-level lookup whenever
				// this is the Child's first member of list k, which is
				// what makes ChildPositions(k) see this Child afterwards.
				s.iso.Track(p, child.Get(p), k)
			}
		}
	}
	return s, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func writeVecI32(w io.Writer, v vecd.VecD[int32]) error {
	return binary.Write(w, binary.LittleEndian, []int32(v))
}

func writeVecU32(w io.Writer, v vecd.VecD[uint32]) error {
	return binary.Write(w, binary.LittleEndian, []uint32(v))
}

func readVecI32(r io.Reader, dim int) (vecd.VecD[int32], error) {
	v := make(vecd.VecD[int32], dim)
	if err := binary.Read(r, binary.LittleEndian, []int32(v)); err != nil {
		return nil, err
	}
	return v, nil
}

func readVecU32(r io.Reader, dim int) (vecd.VecD[uint32], error) {
	v := make(vecd.VecD[uint32], dim)
	if err := binary.Read(r, binary.LittleEndian, []uint32(v)); err != nil {
		return nil, err
	}
	return v, nil
}
