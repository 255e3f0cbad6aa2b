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

// Param is a decoded instruction parameter.
type Param struct {
	Mode  Mode
	Value Cell // raw value, as read from memory
}

// Instruction is a decoded instruction.
type Instruction struct {
	Op     Opcode
	Raw    Cell // raw opcode cell, including the mode digits
	Params []Param
}

// Len returns the length of the instruction in cells.
func (in Instruction) Len() Cell {
	return Cell(1 + len(in.Params))
}

// decode decodes the instruction at addr, fetching cells with fetch.
func decode(fetch func(Cell) Cell, addr Cell) (Instruction, *Fault) {
	if addr < 0 {
		return Instruction{}, &Fault{Kind: NegativeAddress, PC: addr, Arg: addr}
	}
	raw := fetch(addr)
	in := Instruction{Op: Opcode(raw % 100), Raw: raw}
	n := in.Op.Params()
	if n < 0 {
		return in, &Fault{Kind: BadOpcode, PC: addr, Op: raw}
	}
	in.Params = make([]Param, n)
	modes := raw / 100
	for k := range in.Params {
		m := Mode(modes % 10)
		modes /= 10
		switch m {
		case Position, Relative:
		case Immediate:
			if k == in.Op.Dest() {
				return in, &Fault{Kind: ImmediateWrite, PC: addr, Op: raw}
			}
		default:
			return in, &Fault{Kind: BadMode, PC: addr, Op: raw, Arg: Cell(m)}
		}
		in.Params[k] = Param{m, fetch(addr + 1 + Cell(k))}
	}
	return in, nil
}

// Decode decodes the instruction at address addr without executing it.
func (i *Instance) Decode(addr Cell) (Instruction, error) {
	in, f := decode(i.Peek, addr)
	if f != nil {
		return in, f
	}
	return in, nil
}

// DecodeImage decodes the instruction at address addr in img. Cells past the
// end of img read as 0.
func DecodeImage(img Image, addr int) (Instruction, error) {
	in, f := decode(img.at, Cell(addr))
	if f != nil {
		return in, f
	}
	return in, nil
}

func (i *Instance) fault(kind FaultKind, arg Cell) *Fault {
	return &Fault{Kind: kind, PC: i.pc, Op: i.mem[i.pc], Arg: arg}
}

// offset returns base+off. It faults if the sum overflows.
func (i *Instance) offset(base, off Cell) Cell {
	a := base + off
	if off > 0 && a < base || off < 0 && a > base {
		panic(i.fault(AddressOverflow, off))
	}
	return a
}

// read resolves p to a value.
func (i *Instance) read(p Param) Cell {
	switch p.Mode {
	case Immediate:
		return p.Value
	case Relative:
		return i.load(i.offset(i.rb, p.Value))
	}
	return i.load(p.Value)
}

// addr resolves p to a destination address.
func (i *Instance) addr(p Param) Cell {
	a := p.Value
	if p.Mode == Relative {
		a = i.offset(i.rb, a)
	}
	if a < 0 {
		panic(i.fault(NegativeAddress, a))
	}
	return a
}

// exec executes the instruction at i.pc. Faults are raised by panicking with
// a *Fault and must be recovered by the caller.
func (i *Instance) exec() {
	in, f := decode(i.Peek, i.pc)
	if f != nil {
		panic(f)
	}
	p := in.Params
	next := i.offset(i.pc, in.Len())
	switch in.Op {
	case OpAdd:
		i.store(i.addr(p[2]), i.read(p[0])+i.read(p[1]))
	case OpMul:
		i.store(i.addr(p[2]), i.read(p[0])*i.read(p[1]))
	case OpIn:
		dst := i.addr(p[0])
		if len(i.input) == 0 {
			panic(i.fault(NoInput, 0))
		}
		i.store(dst, i.input[0])
		i.input = i.input[1:]
	case OpOut:
		i.output = append(i.output, i.read(p[0]))
	case OpJumpTrue:
		if i.read(p[0]) != 0 {
			next = i.read(p[1])
		}
	case OpJumpFalse:
		if i.read(p[0]) == 0 {
			next = i.read(p[1])
		}
	case OpLess:
		var v Cell
		if i.read(p[0]) < i.read(p[1]) {
			v = 1
		}
		i.store(i.addr(p[2]), v)
	case OpEqual:
		var v Cell
		if i.read(p[0]) == i.read(p[1]) {
			v = 1
		}
		i.store(i.addr(p[2]), v)
	case OpAdjustRB:
		i.rb = i.offset(i.rb, i.read(p[0]))
	case OpHalt:
		i.halted = true
		next = i.pc
	}
	if next < 0 {
		panic(i.fault(NegativeAddress, next))
	}
	i.pc = next
	i.insCount++
}
