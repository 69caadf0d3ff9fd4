// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type labelUse struct {
	labelSite
	offset vm.Cell
}

type label struct {
	labelSite
	uses []labelUse
}

// parser states
const (
	stInstr = iota // expecting an instruction, label or directive
	stArg          // expecting an instruction operand
	stDat          // .dat value
	stOrg          // .org value
	stEqu          // .equ value
)

type parser struct {
	i      []vm.Cell
	pc     int
	size   int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	locals map[string]int
	errs   ErrAsm

	state   int
	ins     int       // address of the instruction being assembled
	op      vm.Opcode // its opcode
	arg     int       // index of the next operand
	cstName string
	cstPos  scanner.Position
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]*label),
		consts: make(map[string]labelSite),
		locals: make(map[string]int),
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) tooMany() bool {
	return len(p.errs) >= maxErrors
}

func isLocal(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func localName(name string, n int) string {
	return name + "·" + strconv.Itoa(n)
}

// value parses an integer literal, character literal or constant name.
func (p *parser) value(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err == nil && tail == "" {
			return vm.Cell(r), true
		}
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// reference parses a label reference with an optional offset, like foo, 1+,
// 2- or foo+3. It returns the resolved label name.
func (p *parser) reference(pos scanner.Position, s string) (string, vm.Cell, bool) {
	if l := len(s); l > 1 && isLocal(s[:l-1]) {
		name, n := s[:l-1], p.locals[s[:l-1]]
		switch s[l-1] {
		case '+':
			return localName(name, n+1), 0, true
		case '-':
			if n == 0 {
				p.error(pos, "Backward reference to undefined local label "+s)
				return "", 0, false
			}
			return localName(name, n), 0, true
		}
	}
	if k := strings.LastIndexAny(s, "+-"); k > 0 && k < len(s)-1 {
		if off, ok := p.value(s[k:]); ok {
			name, o, ok := p.reference(pos, s[:k])
			return name, o + off, ok
		}
	}
	if isLocal(s) {
		p.error(pos, "Local label reference without direction: "+s)
		return "", 0, false
	}
	return s, 0, true
}

func (p *parser) useLabel(pos scanner.Position, name string, offset vm.Cell) {
	lbl := p.labels[name]
	if lbl == nil {
		// use current position as valid temp position
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelUse{labelSite{pos, p.pc}, offset})
}

// operand compiles a value or label reference and returns true on success.
// Label addresses are patched once the whole source has been read.
func (p *parser) operand(pos scanner.Position, s string) bool {
	if v, ok := p.value(s); ok {
		p.write(v)
		return true
	}
	name, off, ok := p.reference(pos, s)
	if !ok {
		return false
	}
	if _, ok := vm.LookupOpcode(name); ok {
		p.error(pos, "Unexpected opcode as argument: "+s)
		return false
	}
	p.useLabel(pos, name, off)
	p.write(0)
	return true
}

func (p *parser) argument(pos scanner.Position, s string) {
	m := vm.Position
	switch {
	case len(s) > 1 && s[0] == '#':
		m, s = vm.Immediate, s[1:]
	case len(s) > 1 && s[0] == '@':
		m, s = vm.Relative, s[1:]
	}
	if m == vm.Immediate && p.arg == p.op.Dest() {
		p.error(pos, "Immediate mode not allowed for "+p.op.String()+" target operand")
	}
	if p.operand(pos, s) {
		w := vm.Cell(m)
		for k := 0; k < p.arg+2; k++ {
			w *= 10
		}
		p.i[p.ins] += w
	}
	p.arg++
	if p.arg >= p.op.Args() {
		p.state = stInstr
	}
}

func (p *parser) defineLabel(pos scanner.Position, n string) {
	if n == "" {
		p.error(pos, "Empty label name")
		return
	}
	if isLocal(n) {
		p.locals[n]++
		n = localName(n, p.locals[n])
	}
	if cst, ok := p.consts[n]; ok {
		p.error(pos, "Label redefinition: "+n+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.error(pos, "Label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[n] = &label{labelSite{pos, p.pc}, nil}
}

func (p *parser) directive(pos scanner.Position, s string) {
	switch s {
	case ".org":
		p.state = stOrg
	case ".dat":
		p.state = stDat
	case ".equ":
		if p.s.Scan() != scanner.Ident {
			p.error(p.s.Position, ".equ: expected identifier, got "+p.s.TokenText())
			return
		}
		p.cstName = p.s.TokenText()
		p.cstPos = p.s.Position
		if l, ok := p.labels[p.cstName]; ok {
			p.error(p.cstPos, ".equ: redefinition of "+p.cstName+", previously defined or used as a label here: "+l.pos.String())
			return
		}
		p.state = stEqu
	default:
		p.error(pos, "Unknown directive: "+s)
	}
}

func (p *parser) token(pos scanner.Position, s string) {
	switch p.state {
	case stArg:
		p.argument(pos, s)
		return
	case stDat:
		p.operand(pos, s)
		p.state = stInstr
		return
	case stOrg, stEqu:
		v, ok := p.value(s)
		st := p.state
		p.state = stInstr
		if !ok {
			p.error(pos, "Expected integer or constant, got "+s)
			return
		}
		if st == stEqu {
			p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			return
		}
		if v < 0 {
			p.error(pos, "Negative origin "+s)
			return
		}
		p.pc = int(v)
		return
	}

	switch s[0] {
	case ':':
		p.defineLabel(pos, s[1:])
		return
	case '.':
		if len(s) > 1 {
			p.directive(pos, s)
			return
		}
	}
	if op, ok := vm.LookupOpcode(s); ok {
		p.ins, p.op, p.arg = p.pc, op, 0
		p.write(vm.Cell(op))
		if op.Args() > 0 {
			p.state = stArg
		}
		return
	}
	if v, ok := p.value(s); ok {
		// raw data
		p.write(v)
		return
	}
	p.error(pos, "Unknown instruction: "+s)
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && !p.tooMany(); tok = p.s.Scan() {
		pos := p.s.Position
		if tok != scanner.Ident {
			p.error(pos, "Unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		if s == "(" {
			// skip comments
			for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			if tok == scanner.EOF {
				p.error(pos, "Unterminated comment")
			}
			continue
		}
		p.token(pos, s)
	}

	if p.state != stInstr && !p.tooMany() {
		p.error(p.s.Pos(), "Unexpected end of input")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			for _, u := range l.uses {
				p.error(u.pos, "Undefined label "+n)
			}
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address) + u.offset
		}
	}

	if len(p.errs) > 0 {
		p.errs.sort()
		return nil, p.errs
	}
	return p.i[:p.size:p.size], nil
}
