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

	"github.com/pkg/errors"
)

// ErrHalted is returned by Run when called on a machine that has already
// executed a HALT instruction.
var ErrHalted = errors.New("intcode: machine halted")

// Errno identifies the nature of a VM trap.
type Errno int

// VM traps.
const (
	IllegalInstruction Errno = iota + 1
	IllegalMode
	ImmediateWrite
	IllegalAddress
	MemoryLimit
)

var strError = [...]string{
	IllegalInstruction: "illegal instruction",
	IllegalMode:        "illegal addressing mode",
	ImmediateWrite:     "immediate mode write target",
	IllegalAddress:     "illegal address",
	MemoryLimit:        "memory limit exceeded",
}

func (e Errno) Error() string {
	if e > 0 && int(e) < len(strError) {
		return strError[e]
	}
	return "errno " + strconv.Itoa(int(e))
}

// Error describes the cause and the context of a VM trap.
type Error struct {
	Errno Errno // nature of the trap
	PC    int   // address of the faulting instruction
	Word  Cell  // instruction word at PC
	Addr  Cell  // offending address for IllegalAddress and MemoryLimit
}

func (e *Error) Error() string {
	msg := "intcode: " + e.Errno.Error()
	switch e.Errno {
	case IllegalInstruction, IllegalMode, ImmediateWrite:
		msg += " " + strconv.FormatInt(int64(e.Word), 10)
	case IllegalAddress, MemoryLimit:
		msg += " " + strconv.FormatInt(int64(e.Addr), 10)
	}
	return msg + " at " + strconv.Itoa(e.PC)
}

// Unwrap returns the Errno so that errors.Is(err, vm.IllegalAddress) works.
func (e *Error) Unwrap() error { return e.Errno }

// addrError is raised by Memory, which has no knowledge of PC. The run loop
// turns it into an *Error.
type addrError struct {
	errno Errno
	addr  Cell
}

func (e addrError) Error() string {
	return e.errno.Error() + " " + strconv.FormatInt(int64(e.addr), 10)
}

func (e addrError) Unwrap() error { return e.errno }

func (i *Instance) newError(errno Errno, addr Cell) error {
	var word Cell
	if i.PC >= 0 {
		word, _ = i.Mem.Read(Cell(i.PC))
	}
	return &Error{
		Errno: errno,
		PC:    i.PC,
		Word:  word,
		Addr:  addr,
	}
}

// trap converts low level errors to an *Error bound to the current PC.
func (i *Instance) trap(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *Error:
		return e
	case addrError:
		return i.newError(e.errno, e.addr)
	case Errno:
		return i.newError(e, 0)
	}
	return err
}
