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

package main

import (
	"io"
	"strconv"

	"github.com/wieslander/aoc-2019/internal/ierr"
	"github.com/wieslander/aoc-2019/vm"
)

// dumpVM writes the machine registers on one line, followed by the memory
// image in program format. Cells written past vm.MaxDense follow as one
// addr:value pair per line.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := ierr.NewErrWriter(w)
	ew.WriteString("pc=" + strconv.FormatInt(int64(i.PC()), 10))
	ew.WriteString(" rb=" + strconv.FormatInt(int64(i.RelBase()), 10))
	ew.WriteString(" halted=" + strconv.FormatBool(!i.Running()))
	ew.WriteString(" steps=" + strconv.FormatInt(i.InstructionCount(), 10))
	ew.WriteString("\n")
	img, tail := i.Memory()
	img.WriteTo(ew)
	ew.WriteString("\n")
	for _, addr := range tail.Addrs() {
		ew.WriteString(strconv.FormatInt(int64(addr), 10) + ":" + strconv.FormatInt(int64(tail[addr]), 10) + "\n")
	}
	return ew.Err
}
