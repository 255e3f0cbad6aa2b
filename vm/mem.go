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
	"slices"
)

// Memory is a sparse memory space. Addresses that were never written read as
// 0. Memory grows as needed when written to.
type Memory map[Cell]Cell

func newMemory(img Image) Memory {
	m := make(Memory, len(img))
	for addr, v := range img {
		m[Cell(addr)] = v
	}
	return m
}

func (m Memory) clone() Memory {
	c := make(Memory, len(m))
	for addr, v := range m {
		c[addr] = v
	}
	return c
}

// Size returns the address following the highest written address.
func (m Memory) Size() Cell {
	var top Cell = -1
	for addr := range m {
		if addr > top {
			top = addr
		}
	}
	return top + 1
}

// MaxDense is the number of cells below which Image returns memory contents
// as a dense image.
const MaxDense = 1 << 20

// Image returns a dense copy of the memory contents below MaxDense, from
// address 0 up to and including the highest written address in that range.
// Cells written at or above MaxDense are returned in tail.
func (m Memory) Image() (img Image, tail Memory) {
	var top Cell = -1
	for addr := range m {
		if addr < MaxDense && addr > top {
			top = addr
		}
	}
	img = make(Image, top+1)
	for addr, v := range m {
		if addr <= top {
			img[addr] = v
			continue
		}
		if tail == nil {
			tail = make(Memory)
		}
		tail[addr] = v
	}
	return img, tail
}

// Addrs returns the addresses written in m, in ascending order.
func (m Memory) Addrs() []Cell {
	var addrs []Cell
	for a := range m {
		addrs = append(addrs, a)
	}
	slices.Sort(addrs)
	return addrs
}

func (i *Instance) load(addr Cell) Cell {
	if addr < 0 {
		panic(i.fault(NegativeAddress, addr))
	}
	return i.mem[addr]
}

func (i *Instance) store(addr, v Cell) {
	if addr < 0 {
		panic(i.fault(NegativeAddress, addr))
	}
	i.mem[addr] = v
}

// Peek returns the value stored at address addr. Negative addresses read as
// 0.
func (i *Instance) Peek(addr Cell) Cell {
	if addr < 0 {
		return 0
	}
	return i.mem[addr]
}

// Poke stores v at address addr. It is meant for drivers that patch a program
// before running it.
func (i *Instance) Poke(addr, v Cell) error {
	if addr < 0 {
		return &Fault{Kind: NegativeAddress, PC: i.pc, Op: i.Peek(i.pc), Arg: addr}
	}
	i.mem[addr] = v
	return nil
}

// Memory returns a copy of the machine's memory. See Memory.Image.
func (i *Instance) Memory() (Image, Memory) {
	return i.mem.Image()
}
