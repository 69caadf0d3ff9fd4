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

import "github.com/pkg/errors"

// Run executes instructions, starting at PC, until the machine halts or, if
// pauseOnOutput is true, until an OUT instruction has been executed. The
// status is then Halted or Paused respectively.
//
// The input value is used by the IN instructions executed during this call,
// except for the very first IN of a machine with a phase setting. If no IN
// instruction is executed, the value is discarded.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error, and the error is returned by this and any subsequent call to Run.
// Calling Run on a machine that executed a HALT instruction returns ErrHalted.
func (i *Instance) Run(input Cell, pauseOnOutput bool) (err error) {
	if i.err != nil {
		return i.err
	}
	if i.halted {
		return ErrHalted
	}
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @pc=%d/%d, rb=%d", i.PC, i.Mem.Len(), i.RB)
			default:
				panic(e)
			}
			i.fault(err)
		}
	}()
	i.status = Running
	for i.status == Running {
		if err = i.step(input, pauseOnOutput); err != nil {
			err = i.trap(err)
			i.fault(err)
			return err
		}
	}
	if i.log != nil {
		i.log.Debug("Run returned", "status", i.status, "pc", i.PC, "output", i.output, "count", i.insCount)
	}
	return nil
}

func (i *Instance) fault(err error) {
	i.err = err
	i.halted = true
	i.status = Halted
	if i.log != nil {
		i.log.Debug("Machine fault", "err", err, "pc", i.PC, "rb", i.RB)
	}
}

// step executes the instruction at PC.
func (i *Instance) step(input Cell, pauseOnOutput bool) error {
	ins, err := Decode(&i.Mem, i.PC)
	if err != nil {
		return err
	}
	if i.trace {
		i.log.Trace("exec", "pc", i.PC, "ins", ins, "rb", i.RB)
	}

	var v [3]Cell
	dst := ins.Op.Dest()
	for k, arg := range ins.Operands() {
		if k == dst {
			continue
		}
		if v[k], err = i.Resolve(arg); err != nil {
			return err
		}
	}

	next := i.PC + ins.Width()
	switch ins.Op {
	case OpAdd:
		err = i.store(ins.Args[2], v[0]+v[1])
	case OpMul:
		err = i.store(ins.Args[2], v[0]*v[1])
	case OpIn:
		var in Cell
		if in, err = i.nextInput(input); err == nil {
			err = i.store(ins.Args[0], in)
		}
	case OpOut:
		if i.outFn != nil {
			if err = i.outFn(v[0]); err != nil {
				return errors.Wrapf(err, "out handler @pc=%d", i.PC)
			}
		}
		i.output = v[0]
		if pauseOnOutput {
			i.status = Paused
		}
	case OpJt:
		if v[0] != 0 {
			next = int(v[1])
		}
	case OpJf:
		if v[0] == 0 {
			next = int(v[1])
		}
	case OpLt:
		err = i.store(ins.Args[2], truth(v[0] < v[1]))
	case OpEq:
		err = i.store(ins.Args[2], truth(v[0] == v[1]))
	case OpArb:
		i.RB += v[0]
	case OpHalt:
		i.status = Halted
		i.halted = true
		i.insCount++
		return nil
	default:
		return IllegalInstruction
	}
	if err != nil {
		return err
	}
	i.PC = next
	i.insCount++
	return nil
}

func truth(b bool) Cell {
	if b {
		return 1
	}
	return 0
}
