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
	"fmt"

	"github.com/pkg/errors"
)

// FaultKind identifies the fatal condition that stopped a machine.
type FaultKind int

// Fault kinds.
const (
	BadOpcode       FaultKind = iota + 1 // unknown opcode
	BadMode                              // addressing mode digit outside 0..2
	ImmediateWrite                       // immediate mode used as a destination
	NoInput                              // input instruction with an empty input queue
	NegativeAddress                      // read, write or jump to a negative address
	AddressOverflow                      // relative base or pc arithmetic overflows
)

var faultNames = [...]string{
	BadOpcode:       "unknown opcode",
	BadMode:         "unknown addressing mode",
	ImmediateWrite:  "immediate mode destination",
	NoInput:         "input queue empty",
	NegativeAddress: "negative address",
	AddressOverflow: "address overflow",
}

func (k FaultKind) String() string {
	if k > 0 && int(k) < len(faultNames) {
		return faultNames[k]
	}
	return fmt.Sprintf("fault(%d)", int(k))
}

// Fault is the error returned when a machine hits a fatal condition. The
// machine cannot recover from a fault.
type Fault struct {
	Kind FaultKind
	PC   Cell // address of the faulting instruction
	Op   Cell // raw opcode cell at PC
	Arg  Cell // offending mode digit, address or offset, depending on Kind
}

func (f *Fault) Error() string {
	switch f.Kind {
	case BadMode, NegativeAddress:
		return fmt.Sprintf("%v %d in instruction %d @pc=%d", f.Kind, f.Arg, f.Op, f.PC)
	case AddressOverflow:
		return fmt.Sprintf("%v (offset %d) in instruction %d @pc=%d", f.Kind, f.Arg, f.Op, f.PC)
	}
	return fmt.Sprintf("%v in instruction %d @pc=%d", f.Kind, f.Op, f.PC)
}

// IsFault reports whether the cause of err is a *Fault of the given kind. A
// zero kind matches any fault.
func IsFault(err error, kind FaultKind) bool {
	f, ok := errors.Cause(err).(*Fault)
	if !ok {
		return false
	}
	return kind == 0 || f.Kind == kind
}
