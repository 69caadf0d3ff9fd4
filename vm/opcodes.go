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

import "strconv"

// Opcode is the operation selector of an instruction word (word % 100).
type Opcode Cell

// Intcode operations.
const (
	OpAdd  Opcode = 1
	OpMul  Opcode = 2
	OpIn   Opcode = 3
	OpOut  Opcode = 4
	OpJt   Opcode = 5
	OpJf   Opcode = 6
	OpLt   Opcode = 7
	OpEq   Opcode = 8
	OpArb  Opcode = 9
	OpHalt Opcode = 99
)

type opInfo struct {
	name  string
	nargs int
	dst   int // index of the write operand, -1 if none
}

var opcodes = map[Opcode]opInfo{
	OpAdd:  {"add", 3, 2},
	OpMul:  {"mul", 3, 2},
	OpIn:   {"in", 1, 0},
	OpOut:  {"out", 1, -1},
	OpJt:   {"jt", 2, -1},
	OpJf:   {"jf", 2, -1},
	OpLt:   {"lt", 3, 2},
	OpEq:   {"eq", 3, 2},
	OpArb:  {"arb", 1, -1},
	OpHalt: {"hlt", 0, -1},
}

var opcodeIndex = make(map[string]Opcode, len(opcodes))

func init() {
	for op, info := range opcodes {
		opcodeIndex[info.name] = op
	}
}

// Valid returns true if op is a known operation.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Args returns the number of operands of op.
func (op Opcode) Args() int {
	return opcodes[op].nargs
}

// Width returns the instruction width in cells, including the opcode word.
func (op Opcode) Width() int {
	return opcodes[op].nargs + 1
}

// Dest returns the index of the write operand, or -1 if op does not write to
// memory.
func (op Opcode) Dest() int {
	if info, ok := opcodes[op]; ok {
		return info.dst
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// LookupOpcode returns the opcode for the given mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

// Mode is an operand addressing mode.
type Mode Cell

// Addressing modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.FormatInt(int64(m), 10) + ")"
}
