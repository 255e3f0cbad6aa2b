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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/wieslander/aoc-2019/internal/ierr"
	"github.com/wieslander/aoc-2019/vm"
)

var opcodes = [...]struct {
	op    vm.Opcode
	names []string
}{
	{vm.OpAdd, []string{"add"}},
	{vm.OpMul, []string{"mul"}},
	{vm.OpIn, []string{"in", "inp"}},
	{vm.OpOut, []string{"out"}},
	{vm.OpJumpTrue, []string{"jnz", "jt"}},
	{vm.OpJumpFalse, []string{"jz", "jf"}},
	{vm.OpLess, []string{"lt", "slt"}},
	{vm.OpEqual, []string{"eq", "seq"}},
	{vm.OpAdjustRB, []string{"arb", "rbo"}},
	{vm.OpHalt, []string{"hlt", "halt"}},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for _, o := range opcodes {
		for _, n := range o.names {
			opcodeIndex[n] = o.op
		}
	}
}

var modePrefix = [...]string{
	vm.Position:  "",
	vm.Immediate: "#",
	vm.Relative:  "@",
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
func Assemble(name string, r io.Reader) (img vm.Image, err error) {
	p := newParser()
	if err = p.Parse(name, r); err != nil {
		return nil, err
	}
	return p.i[:p.size], nil
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given image to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction, or that carry mode digits
// past the instruction's last parameter, are written as plain integers, which
// the assembler compiles back to data cells.
func Disassemble(img vm.Image, pc int, w io.Writer) (next int, err error) {
	ew := ierr.NewErrWriter(w)

	in, derr := vm.DecodeImage(img, pc)
	if derr != nil || pc+int(in.Len()) > len(img) || in.Raw >= 100*pow10[len(in.Params)] {
		io.WriteString(ew, strconv.FormatInt(int64(img[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, in.Op.String())
	for k, p := range in.Params {
		if k == 0 {
			ew.Write([]byte{' '})
		} else {
			ew.Write([]byte{',', ' '})
		}
		io.WriteString(ew, modePrefix[p.Mode])
		io.WriteString(ew, strconv.FormatInt(int64(p.Value), 10))
	}
	return pc + int(in.Len()), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given image to
// the specified io.Writer. The base argument specifies the real address of the
// frist cell (img[0]). It will return any write error.
func DisassembleAll(img vm.Image, base int, w io.Writer) error {
	ew := ierr.NewErrWriter(w)
	for pc := 0; pc < len(img); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(img, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
