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

// The intcode command runs Intcode programs. It loads a program image (comma
// separated integers) and executes it in one of three modes.
//
// Usage:
//
//	intcode [flags] [image]
//
//	-ascii line
//		  input line in ASCII (can be specified multiple times)
//	-checkpoints directory
//		  directory for interactive save/load commands (default ".")
//	-config filename
//		  load settings from TOML file filename
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  disassemble the program image and exit
//	-dump
//		  dump machine state and memory upon exit
//	-image filename
//		  Load program image from file filename (default "input.txt")
//	-input values
//		  comma separated input values (can be specified multiple times)
//	-mode mode
//		  execution mode: batch, ascii or interactive (default "batch")
//	-poke addr=value
//		  patch memory with addr=value before running (can be specified multiple times)
//	-raw
//		  interactive mode: send key presses without waiting for a new line
//	-steps n
//		  abort batch runs after n instructions (0 for no limit)
//	-v int
//		  log verbosity
//
// batch mode runs the program to completion with the values given by -input
// and -ascii, and prints every output value on its own line. It fails if the
// program asks for more input than provided.
//
// ascii mode is the same as batch mode, except that output values in the
// ASCII range are printed as characters.
//
// interactive mode reads input lines from stdin and sends them to the program
// in ASCII, followed by a new line. Before each line, the machine state is
// checkpointed. Lines starting with '!' are commands:
//
//	!undo        revert the last input line
//	!save NAME   save the machine state to NAME.ckpt
//	!load NAME   restore a saved machine state
//	!quit        exit
//
// A configuration file may provide defaults for the flags above:
//
//	image = "day25.txt"
//	mode = "interactive"
//	checkpoint_dir = "saves"
//	max_steps = 0
//	input = []
//	ascii_input = ["north", "take mug"]
//	verbosity = 1
//
//	[poke]
//	0 = 2
//
// Relative paths in the configuration file are relative to the directory of
// the file. Flags given on the command line take precedence.
//
// -debug: will print a full stacktrace and the faulting instruction should the
// program crash.
package main
