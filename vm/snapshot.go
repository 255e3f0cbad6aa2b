// This file is part of aoc-2019 - https://github.com/wieslander/aoc-2019
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Reset reinitializes the machine with a copy of img, as if it had been
// created with New(img).
func (i *Instance) Reset(img Image) {
	*i = Instance{mem: newMemory(img)}
}

// Clone returns an independent deep copy of the machine. Running either copy
// never affects the other, so a clone can be kept as a checkpoint and restored
// later by replacing the live instance with it.
func (i *Instance) Clone() *Instance {
	c := *i
	c.mem = i.mem.clone()
	c.input = append([]Cell(nil), i.input...)
	c.output = append([]Cell(nil), i.output...)
	return &c
}

// Snapshot is the complete, serializable state of a machine, with the
// exception of a fault.
type Snapshot struct {
	Memory       map[Cell]Cell `cbor:"memory"`
	PC           Cell          `cbor:"pc"`
	RelBase      Cell          `cbor:"rb"`
	Halted       bool          `cbor:"halted"`
	Input        []Cell        `cbor:"input"`
	Output       []Cell        `cbor:"output"`
	Instructions int64         `cbor:"instructions"`
}

// Snapshot returns a copy of the machine state.
func (i *Instance) Snapshot() *Snapshot {
	return &Snapshot{
		Memory:       i.mem.clone(),
		PC:           i.pc,
		RelBase:      i.rb,
		Halted:       i.halted,
		Input:        append([]Cell(nil), i.input...),
		Output:       append([]Cell(nil), i.output...),
		Instructions: i.insCount,
	}
}

// Restore replaces the machine state with a copy of s. It also clears any
// fault.
func (i *Instance) Restore(s *Snapshot) error {
	if s.PC < 0 {
		return errors.Errorf("restore: invalid pc %d", s.PC)
	}
	mem := make(Memory, len(s.Memory))
	for addr, v := range s.Memory {
		if addr < 0 {
			return errors.Errorf("restore: invalid address %d", addr)
		}
		mem[addr] = v
	}
	*i = Instance{
		mem:      mem,
		pc:       s.PC,
		rb:       s.RelBase,
		halted:   s.Halted,
		input:    append([]Cell(nil), s.Input...),
		output:   append([]Cell(nil), s.Output...),
		insCount: s.Instructions,
	}
	return nil
}

// MarshalBinary encodes the machine state as canonical CBOR.
func (i *Instance) MarshalBinary() ([]byte, error) {
	b, err := cborEncMode.Marshal(i.Snapshot())
	if err != nil {
		return nil, errors.Wrap(err, "marshal snapshot")
	}
	return b, nil
}

// UnmarshalBinary restores the machine state from data produced by
// MarshalBinary.
func (i *Instance) UnmarshalBinary(data []byte) error {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "unmarshal snapshot")
	}
	return i.Restore(&s)
}
