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

// Cell is the raw type stored in a memory location.
type Cell int64

// Instance represents an Intcode machine instance.
type Instance struct {
	mem      Memory
	pc       Cell
	rb       Cell
	halted   bool
	input    []Cell
	output   []Cell
	insCount int64
	err      error
}

// Option interface
type Option func(*Instance) error

// Input appends the given values to the input queue.
func Input(values ...Cell) Option {
	return func(i *Instance) error { i.Supply(values...); return nil }
}

// InputString appends the character codes of s to the input queue.
func InputString(s string) Option {
	return func(i *Instance) error { i.SupplyString(s); return nil }
}

// Poke patches the memory at address addr with value v.
func Poke(addr, v Cell) Option {
	return func(i *Instance) error { return i.Poke(addr, v) }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode machine with a copy of img loaded at address 0.
//
// Options will be set by calling SetOptions.
func New(img Image, opts ...Option) (*Instance, error) {
	i := &Instance{mem: newMemory(img)}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// PC returns the address of the next instruction to execute.
func (i *Instance) PC() Cell {
	return i.pc
}

// RelBase returns the current relative base.
func (i *Instance) RelBase() Cell {
	return i.rb
}

// Running returns true until the machine executes a halt instruction.
func (i *Instance) Running() bool {
	return !i.halted
}

// Err returns the fault that stopped the machine, if any.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed since the
// machine was created or last reset.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
