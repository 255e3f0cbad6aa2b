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

import "strconv"

// Opcode identifies an Intcode operation.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd       Opcode = 1
	OpMul       Opcode = 2
	OpIn        Opcode = 3
	OpOut       Opcode = 4
	OpJumpTrue  Opcode = 5
	OpJumpFalse Opcode = 6
	OpLess      Opcode = 7
	OpEqual     Opcode = 8
	OpAdjustRB  Opcode = 9
	OpHalt      Opcode = 99
)

// MaxParams is the largest number of parameters taken by any instruction.
const MaxParams = 3

type opInfo struct {
	name   string
	params int
	dst    int // index of the destination parameter, -1 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:       {"add", 3, 2},
	OpMul:       {"mul", 3, 2},
	OpIn:        {"in", 1, 0},
	OpOut:       {"out", 1, -1},
	OpJumpTrue:  {"jnz", 2, -1},
	OpJumpFalse: {"jz", 2, -1},
	OpLess:      {"lt", 3, 2},
	OpEqual:     {"eq", 3, 2},
	OpAdjustRB:  {"arb", 1, -1},
	OpHalt:      {"hlt", 0, -1},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Params returns the number of parameters taken by op, or -1 for unknown
// opcodes.
func (op Opcode) Params() int {
	if info, ok := opcodes[op]; ok {
		return info.params
	}
	return -1
}

// Dest returns the index of the parameter op writes to, or -1 if op does not
// write to memory.
func (op Opcode) Dest() int {
	if info, ok := opcodes[op]; ok {
		return info.dst
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// Mode is a parameter addressing mode.
type Mode int

// Addressing modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}
