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

package vm

import (
	"strconv"
	"strings"
)

// Operand is an instruction operand along with its addressing mode.
type Operand struct {
	Mode  Mode
	Value Cell
}

func (o Operand) String() string {
	v := strconv.FormatInt(int64(o.Value), 10)
	switch o.Mode {
	case Immediate:
		return "#" + v
	case Relative:
		return "@" + v
	}
	return v
}

// Instruction is a decoded instruction.
type Instruction struct {
	Op   Opcode
	Word Cell // raw instruction word
	Args [3]Operand
}

// Width returns the number of cells used by the instruction.
func (ins *Instruction) Width() int {
	return ins.Op.Width()
}

// Operands returns the instruction operands.
func (ins *Instruction) Operands() []Operand {
	return ins.Args[:ins.Op.Args()]
}

func (ins Instruction) String() string {
	var b strings.Builder
	b.WriteString(ins.Op.String())
	for _, arg := range ins.Operands() {
		b.WriteByte(' ')
		b.WriteString(arg.String())
	}
	return b.String()
}

// Decode decodes the instruction at address pc. The returned error, if any,
// is one of IllegalInstruction, IllegalMode, ImmediateWrite or IllegalAddress.
func Decode(mem *Memory, pc int) (Instruction, error) {
	word, err := mem.Read(Cell(pc))
	if err != nil {
		return Instruction{}, err
	}
	ins := Instruction{Op: Opcode(word % 100), Word: word}
	info, ok := opcodes[ins.Op]
	if !ok {
		return ins, IllegalInstruction
	}
	modes := word / 100
	for k := 0; k < info.nargs; k++ {
		m := Mode(modes % 10)
		modes /= 10
		switch {
		case m < Position || m > Relative:
			return ins, IllegalMode
		case k == info.dst && m == Immediate:
			return ins, ImmediateWrite
		}
		v, _ := mem.Read(Cell(pc + 1 + k))
		ins.Args[k] = Operand{m, v}
	}
	return ins, nil
}

// Resolve returns the value of a read operand.
func (i *Instance) Resolve(arg Operand) (Cell, error) {
	switch arg.Mode {
	case Position:
		return i.Mem.Read(arg.Value)
	case Immediate:
		return arg.Value, nil
	case Relative:
		return i.Mem.Read(i.RB + arg.Value)
	}
	return 0, IllegalMode
}

// Target returns the memory address designated by a write operand.
func (i *Instance) Target(arg Operand) (Cell, error) {
	var addr Cell
	switch arg.Mode {
	case Position:
		addr = arg.Value
	case Relative:
		addr = i.RB + arg.Value
	case Immediate:
		return 0, ImmediateWrite
	default:
		return 0, IllegalMode
	}
	if addr < 0 {
		return 0, addrError{IllegalAddress, addr}
	}
	return addr, nil
}

func (i *Instance) store(arg Operand, v Cell) error {
	addr, err := i.Target(arg)
	if err != nil {
		return err
	}
	return i.Mem.Write(addr, v)
}
