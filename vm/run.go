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

// recoverFault turns a *Fault panic raised by exec into an error and marks
// the machine as faulted. Any other panic is propagated.
func (i *Instance) recoverFault(err *error) {
	if e := recover(); e != nil {
		f, ok := e.(*Fault)
		if !ok {
			panic(e)
		}
		i.err = f
		*err = f
	}
}

// Step executes a single instruction. It does nothing if the machine has
// halted.
//
// If the instruction is an input instruction and the input queue is empty,
// the machine faults. Drivers should check NeedsInput first.
func (i *Instance) Step() (err error) {
	if i.err != nil {
		return i.err
	}
	if i.halted {
		return nil
	}
	defer i.recoverFault(&err)
	i.exec()
	return nil
}

// Run runs the machine until it halts.
//
// The machine faults if it needs input that has not been supplied. Drivers
// that provide input on demand should use RunUntilOutput or RunUntilBlocked
// instead.
func (i *Instance) Run() (err error) {
	if i.err != nil {
		return i.err
	}
	defer i.recoverFault(&err)
	for !i.halted {
		i.exec()
	}
	return nil
}

// RunUntilOutput runs the machine until its output queue is not empty or it
// halts, then pops the oldest output value. The returned bool is false if the
// machine halted without any pending output.
func (i *Instance) RunUntilOutput() (v Cell, ok bool, err error) {
	if i.err != nil {
		return 0, false, i.err
	}
	defer i.recoverFault(&err)
	for !i.halted && len(i.output) == 0 {
		i.exec()
	}
	v, ok = i.Drain()
	return v, ok, nil
}

// RunUntilBlocked runs the machine until it halts or needs input. Output
// values accumulate in the output queue.
func (i *Instance) RunUntilBlocked() (err error) {
	if i.err != nil {
		return i.err
	}
	defer i.recoverFault(&err)
	for !i.halted && !i.NeedsInput() {
		i.exec()
	}
	return nil
}

// NeedsInput returns true if the next instruction is an input instruction and
// the input queue is empty. It does not change the machine state.
func (i *Instance) NeedsInput() bool {
	if i.halted || i.err != nil || len(i.input) > 0 {
		return false
	}
	return Opcode(i.mem[i.pc]%100) == OpIn
}

// HasOutput returns true if the output queue is not empty.
func (i *Instance) HasOutput() bool {
	return len(i.output) > 0
}

// Supply appends values to the input queue.
func (i *Instance) Supply(values ...Cell) {
	i.input = append(i.input, values...)
}

// SupplyString appends the character codes of s to the input queue.
func (i *Instance) SupplyString(s string) {
	for _, r := range s {
		i.input = append(i.input, Cell(r))
	}
}

// Drain pops the oldest value from the output queue. The returned bool is
// false if the queue was empty.
func (i *Instance) Drain() (Cell, bool) {
	if len(i.output) == 0 {
		return 0, false
	}
	v := i.output[0]
	i.output = i.output[1:]
	if len(i.output) == 0 {
		i.output = nil
	}
	return v, true
}

// DrainAll pops all values from the output queue.
func (i *Instance) DrainAll() []Cell {
	out := i.output
	i.output = nil
	return out
}
