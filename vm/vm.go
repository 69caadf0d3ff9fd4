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
	"context"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// Status is the run status of an Instance.
type Status int

// Run states. A new machine is Halted until its first call to Run.
const (
	Halted Status = iota
	Running
	Paused
)

func (s Status) String() string {
	switch s {
	case Halted:
		return "halted"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// Instance represents an intcode machine.
type Instance struct {
	PC       int    // Program Counter (aka. Instruction Pointer)
	RB       Cell   // Relative Base
	Mem      Memory // Program memory
	output   Cell
	status   Status
	halted   bool
	err      error
	phase    Cell
	phaseSet bool
	inCount  int64
	insCount int64
	log      log.Logger
	trace    bool // log executed instructions
	outFn    OutHandler
	inFn     InHandler
}

// Option interface
type Option func(*Instance) error

// PhaseSetting configures a one-shot phase setting: the very first IN
// instruction executed by the machine will read v instead of the input
// supplied to Run.
func PhaseSetting(v Cell) Option {
	return func(i *Instance) error {
		i.SetPhaseSetting(v)
		return nil
	}
}

// MemoryGrowth sets the memory growth strategy. The default is GrowDouble.
func MemoryGrowth(f GrowFunc) Option {
	return func(i *Instance) error {
		if f == nil {
			return errors.New("nil GrowFunc")
		}
		i.Mem.grow = f
		return nil
	}
}

// MaxMemory limits memory to n cells. Writes at or above n fail with
// MemoryLimit. The default, 0, means no limit.
func MaxMemory(n int) Option {
	return func(i *Instance) error {
		if n < 0 {
			return errors.Errorf("invalid memory limit %d", n)
		}
		if n > 0 && n < i.Mem.Len() {
			return errors.Errorf("memory limit %d smaller than program size %d", n, i.Mem.Len())
		}
		i.Mem.max = n
		return nil
	}
}

// OutHandler is called by OUT instructions with the output value. If it
// returns an error, the machine faults: Run returns the error and PC is left
// on the OUT instruction.
type OutHandler func(v Cell) error

// BindOutHandler returns an Option that registers h as the machine's
// OutHandler. It is called before the output register is updated and before
// pause-on-output takes effect.
func BindOutHandler(h OutHandler) Option {
	return func(i *Instance) error {
		i.outFn = h
		return nil
	}
}

// InHandler supplies the value read by IN instructions, in place of the input
// passed to Run. The phase setting still takes precedence. If it returns an
// error, the machine faults with PC left on the IN instruction.
type InHandler func() (Cell, error)

// BindInHandler returns an Option that registers h as the machine's
// InHandler.
func BindInHandler(h InHandler) Option {
	return func(i *Instance) error {
		i.inFn = h
		return nil
	}
}

// Logger enables execution tracing to l. Every executed instruction is logged
// at trace level; pauses, halts and faults at debug level.
func Logger(l log.Logger) Option {
	return func(i *Instance) error {
		i.log = l
		i.trace = l != nil && l.Enabled(context.Background(), log.LevelTrace)
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new intcode machine. The program is copied into the machine's
// memory, so the same program can be used to create several instances.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem:    newMemory(program),
		status: Halted,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// SetPhaseSetting configures the one-shot phase setting. It has no effect once
// the machine has executed its first IN instruction.
func (i *Instance) SetPhaseSetting(v Cell) {
	if i.inCount == 0 {
		i.phase, i.phaseSet = v, true
	}
}

// nextInput returns the value for an IN instruction.
func (i *Instance) nextInput(input Cell) (Cell, error) {
	if i.phaseSet {
		i.inCount++
		i.phaseSet = false
		return i.phase, nil
	}
	if i.inFn != nil {
		v, err := i.inFn()
		if err != nil {
			return 0, errors.Wrapf(err, "in handler @pc=%d", i.PC)
		}
		input = v
	}
	i.inCount++
	return input, nil
}

// Output returns the value written by the last OUT instruction.
func (i *Instance) Output() Cell {
	return i.output
}

// Status returns the run status.
func (i *Instance) Status() Status {
	return i.status
}

// Finished returns true if the status is Halted. Note that this is also the
// case for a machine that has not been run yet.
func (i *Instance) Finished() bool {
	return i.status == Halted
}

// Halted returns true if the machine executed a HALT instruction or faulted.
// Such a machine cannot be run anymore.
func (i *Instance) Halted() bool {
	return i.halted
}

// Err returns the fault that stopped the machine, if any.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
