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
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

func (e ErrAsm) sort() {
	sort.SliceStable(e, func(i, j int) bool { return e[i].Pos.Offset < e[j].Pos.Offset })
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img []vm.Cell, err error) {
	return newParser().Parse(name, r)
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given slice to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Words that do not decode to a valid instruction are written as a .dat
// directive. Instructions truncated by the end of the slice are terminated by
// "???".
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)
	ins, err := vm.Decode(vm.NewMemory(mem), pc)
	if err != nil {
		ew.WriteString(".dat ")
		ew.WriteString(strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	if pc+ins.Width() <= len(mem) {
		ew.WriteString(ins.String())
		return pc + ins.Width(), ew.Err
	}
	ew.WriteString(ins.Op.String())
	for k := 0; pc+1+k < len(mem); k++ {
		ew.WriteString(" ")
		ew.WriteString(ins.Args[k].String())
	}
	ew.WriteString(" ???")
	return len(mem), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
