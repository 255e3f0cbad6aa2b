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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		params	description
//	------	---		------	---------------------------------------------
//	1	add		a b d	d = a + b
//	2	mul		a b d	d = a * b
//	3	in, inp		d	d = next input value
//	4	out		a	output a
//	5	jnz, jt		a t	jump to t if a != 0
//	6	jz, jf		a t	jump to t if a == 0
//	7	lt, slt		a b d	d = 1 if a < b, else 0
//	8	eq, seq		a b d	d = 1 if a == b, else 0
//	9	arb, rbo	a	add a to the relative base
//	99	hlt, halt		halt
//
// Operands:
//
// An operand is a value with an optional prefix that selects the addressing
// mode:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	@42	relative mode: the value at address relative base + 42
//
// Operands may be separated by commas ("add 9, 10, 3") or white space only
// ("add 9 10 3"). The assembler rejects immediate destination operands.
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. A value
// is either a Go integer literal (see strconv.ParseInt), a Go character literal
// between single quotes, the name of a constant defined with .equ, or a label.
// Character literals cannot contain white space: use ' ' as 32 instead.
//
// Where an instruction is expected, a token is looked up in the mnemonics
// above. Integer, character and constant values found there compile to a data
// cell holding that value. Any other token is considered to be a label and
// compiles to a data cell holding the label's address.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used as any
// operand or data value (without the ':' prefix). Forward references are ok:
//
//		jnz #1, #start	( jump to start )
//	:counter
//		0
//	:start	add counter, #1, counter
//		out counter
//		hlt
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space.
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant.
//
//	.dat <value>
//
// Will compile the specified value as-is. It is only needed to store the address
// of a label whose name is also a mnemonic.
package asm
