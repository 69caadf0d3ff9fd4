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

// Package vm implements the intcode virtual machine.
//
// An intcode program is a sequence of signed 64 bits integers. The machine
// decodes one instruction at a time from the cell at PC: the two low decimal
// digits select the operation and the higher digits select the addressing mode
// of each operand (0: position, 1: immediate, 2: relative).
//
// Memory is unbounded: any cell past the end of the loaded program reads as
// zero and is allocated on first access. Programs may freely overwrite their
// own code.
//
// Execution is cooperative. The caller drives an Instance with repeated calls
// to Run, each supplying the value for the next IN instruction. Run returns
// when the machine halts or, if requested, right after an OUT instruction so
// that the caller can inspect Output and decide on the next input:
//
//	i, _ := vm.New(program)
//	for !i.Halted() {
//		if err := i.Run(input, true); err != nil {
//			return err
//		}
//		input = decide(i.Output())
//	}
//
// Faults (unknown opcode, bad addressing mode, negative address) stop the
// current call with a *Error and leave PC on the faulting instruction. A
// faulted machine will not run again.
package vm
