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
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/pkg/errors"
	"github.com/wieslander/aoc-2019/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

var pow10 = [...]vm.Cell{1, 10, 100, 1000}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i       vm.Image
	pc      int
	size    int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	cstName string
	cstPos  scanner.Position
	err     error

	// instruction being assembled
	op   vm.Opcode
	opPC int
	arg  int
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make(vm.Image, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Pos(), -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Pos(), p.pc})
}

func scanError(s *scanner.Scanner, msg string) error {
	pos := s.Position
	if !pos.IsValid() {
		pos = s.Pos()
	}
	return errors.Errorf("%s: %s", pos, msg)
}

// value converts s to an integer literal. s may be a Go integer literal, a
// character literal or the name of a constant.
func (p *parser) value(s string) (v vm.Cell, ok bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, _, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil {
			p.err = scanError(&p.s, err.Error())
			return 0, false
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// pending returns true if the current instruction still expects parameters.
func (p *parser) pending() bool {
	return p.op != 0 && p.arg < p.op.Params()
}

func (p *parser) operand(s string) {
	mode := vm.Position
	switch {
	case strings.HasPrefix(s, "#"):
		mode, s = vm.Immediate, s[1:]
	case strings.HasPrefix(s, "@"):
		mode, s = vm.Relative, s[1:]
	}
	if s == "" {
		p.err = scanError(&p.s, "Empty operand")
		return
	}
	if mode == vm.Immediate && p.arg == p.op.Dest() {
		p.err = scanError(&p.s, "Immediate destination operand for "+p.op.String())
		return
	}
	p.i[p.opPC] += vm.Cell(mode) * 100 * pow10[p.arg]
	p.arg++
	if v, ok := p.value(s); ok {
		p.write(v)
		return
	}
	if p.err == nil {
		p.useLabel(s)
		p.write(0)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	// state:
	// 0: accept anything
	// 1: accept integer, const or label (.dat)
	// 2: accept integer or const (for .org directive)
	// 3: accept integer or const (for .equ value)
	var state int

	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.err = scanError(s, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); p.err == nil && tok != scanner.EOF; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.err = scanError(&p.s, "Unexpected character "+strconv.QuoteRune(tok))
			break
		}
		s := p.s.TokenText()

		// skip comments
		if s == "(" {
			for ; p.err == nil && tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			if tok == scanner.EOF && p.err == nil {
				p.err = scanError(&p.s, "Unterminated comment")
			}
			continue
		}

		// operands may be separated by commas
		s = strings.TrimSuffix(s, ",")
		if s == "" {
			continue
		}

		if p.pending() {
			switch s[0] {
			case ':', '.':
				p.err = scanError(&p.s, "Missing operand for "+p.op.String()+", got "+s)
				continue
			}
			if _, ok := opcodeIndex[s]; ok {
				p.err = scanError(&p.s, "Missing operand for "+p.op.String()+", got "+s)
				continue
			}
			p.operand(s)
			continue
		}

		v, isInt := p.value(s)
		if p.err != nil {
			break
		}

		switch state {
		case 1: // .dat
			state = 0
			if isInt {
				p.write(v)
			} else {
				p.useLabel(s)
				p.write(0)
			}
			continue
		case 2, 3:
			if !isInt {
				p.err = scanError(&p.s, "Unexpected label as directive argument: "+s)
				continue
			}
			if state == 2 {
				if v < 0 {
					p.err = scanError(&p.s, "Negative .org address: "+s)
					continue
				}
				p.pc = int(v)
			} else {
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			}
			state = 0
			continue
		}

		if isInt {
			// data cell
			p.write(v)
			continue
		}

		switch s[0] {
		case ':':
			n := s[1:]
			if len(n) == 0 {
				p.err = scanError(&p.s, "Empty label name")
				break
			}
			if cst, ok := p.consts[n]; ok {
				p.err = scanError(&p.s, "Label redefinition: "+n+", previously defined as a constant here: "+cst.pos.String())
				break
			}
			if l, ok := p.labels[n]; ok {
				if l.address != -1 {
					p.err = scanError(&p.s, "Label redefinition: "+n+", previous definition here: "+l.pos.String())
					break
				}
				l.address = p.pc
				l.pos = p.s.Pos()
			} else {
				p.labels[n] = &label{
					labelSite{p.s.Pos(), p.pc},
					nil,
				}
			}
		case '.':
			switch s {
			case ".org":
				state = 2
			case ".dat":
				state = 1
			case ".equ":
				t := p.s.Scan()
				if t != scanner.Ident {
					p.err = scanError(&p.s, ".equ: expected identifier, got "+p.s.TokenText())
					break
				}
				p.cstName = p.s.TokenText()
				if l, ok := p.labels[p.cstName]; ok {
					p.err = scanError(&p.s, ".equ: redefinition of "+p.cstName+", previously defined/used as a label here: "+l.pos.String())
					break
				}
				p.cstPos = p.s.Pos()
				state = 3
			default:
				p.err = scanError(&p.s, "Unknown dot directive: "+s)
			}
		default:
			if op, ok := opcodeIndex[s]; ok {
				p.op, p.opPC, p.arg = op, p.pc, 0
				p.write(vm.Cell(op))
				break
			}
			// label address as data
			p.useLabel(s)
			p.write(0)
		}
	}

	if p.err != nil {
		return p.err
	}
	if p.pending() {
		return scanError(&p.s, "Missing operand for "+p.op.String()+" at end of input")
	}
	if state != 0 {
		return scanError(&p.s, "Missing directive argument at end of input")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			return errors.Errorf("Missing label definition for %s, first use here: %s", n, l.uses[0].pos)
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}
	return nil
}
