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

// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a flat list of signed integers loaded at address 0.
// Each instruction is an opcode cell followed by its parameters. The two low
// decimal digits of the opcode cell select the operation, and the remaining
// digits select, from right to left, the addressing mode of each parameter:
//
//	0	position	the parameter is an address
//	1	immediate	the parameter is the value itself
//	2	relative	the parameter is an offset from the relative base
//
// Supported instructions:
//
//	opcode	asm	params	description
//	------	---	------	------------------------------------------------------
//	1	add	a b d	store a+b in d
//	2	mul	a b d	store a*b in d
//	3	in	d	pop a value from the input queue and store it in d
//	4	out	a	push a to the output queue
//	5	jnz	a t	jump to t if a != 0
//	6	jz	a t	jump to t if a == 0
//	7	lt	a b d	store 1 in d if a < b, 0 otherwise
//	8	eq	a b d	store 1 in d if a == b, 0 otherwise
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
// Memory is sparse: any address that was never written reads as 0 and there
// is no upper bound on addresses. Negative addresses are invalid.
//
// The machine never blocks. A driver calls Step, Run, RunUntilOutput or
// RunUntilBlocked and inspects the machine in between with NeedsInput,
// HasOutput and Running. This makes it easy to drive any number of machines
// from a single goroutine and to route values between their queues. See the
// sched package for two such schedulers.
//
// Any fatal condition (unknown opcode or addressing mode, immediate mode used
// as a destination, an input instruction with an empty input queue, a
// negative address or address arithmetic overflowing a Cell) is reported as a
// *Fault. A faulted machine does not
// execute anything else: every further call to a stepping method returns the
// same fault.
package vm
