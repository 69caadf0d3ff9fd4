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

package vm_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseSetting(t *testing.T) {
	// phase consumed by the first IN, input by all others
	i, err := vm.New(assemble(t, "phase", "in 20 in 21 hlt"), vm.PhaseSetting(7))
	require.NoError(t, err)
	require.NoError(t, i.Run(9, false))
	a, _ := i.Mem.Read(20)
	b, _ := i.Mem.Read(21)
	assert.Equal(t, vm.Cell(7), a)
	assert.Equal(t, vm.Cell(9), b)

	// the phase setting is only consumed once, not once per Run call
	i, err = vm.New(assemble(t, "phase", "in 20 out 20 in 21 out 21 hlt"), vm.PhaseSetting(5))
	require.NoError(t, err)
	out, err := vm.Collect(i, 1)
	require.NoError(t, err)
	assert.Equal(t, C{5, 1}, C(out))

	// first IN is not at PC 0 and not in the first Run call
	i, err = vm.New(assemble(t, "phase", "out #1 in 20 out 20 in 20 out 20 hlt"))
	require.NoError(t, err)
	i.SetPhaseSetting(8)
	require.NoError(t, i.Run(0, true))
	assert.Equal(t, vm.Cell(1), i.Output())
	require.NoError(t, i.Run(3, true))
	assert.Equal(t, vm.Cell(8), i.Output())
	// too late
	i.SetPhaseSetting(4)
	require.NoError(t, i.Run(3, true))
	assert.Equal(t, vm.Cell(3), i.Output())

	// last setting wins
	i, err = vm.New(C{3, 0, 4, 0, 99}, vm.PhaseSetting(1), vm.PhaseSetting(2))
	require.NoError(t, err)
	require.NoError(t, i.Run(0, false))
	assert.Equal(t, vm.Cell(2), i.Output())
}

func TestErrors(t *testing.T) {
	data := []struct {
		name  string
		img   C
		errno vm.Errno
		pc    int
		word  vm.Cell
		addr  vm.Cell
		msg   string
	}{
		{"unknown", C{98}, vm.IllegalInstruction, 0, 98, 0, "intcode: illegal instruction 98 at 0"},
		{"zero", C{1101, 1, 1, 0, 0}, vm.IllegalInstruction, 4, 0, 0, "intcode: illegal instruction 0 at 4"},
		{"mode", C{1101, 0, 0, 5, 301, 0, 0, 0}, vm.IllegalMode, 4, 301, 0, "intcode: illegal addressing mode 301 at 4"},
		{"immediate", C{11101, 1, 1, 0}, vm.ImmediateWrite, 0, 11101, 0, "intcode: immediate mode write target 11101 at 0"},
		{"negative read", C{104, 1, 4, -1, 99}, vm.IllegalAddress, 2, 4, -1, "intcode: illegal address -1 at 2"},
		{"negative relative", C{109, -5, 204, 0, 99}, vm.IllegalAddress, 2, 204, -5, "intcode: illegal address -5 at 2"},
		{"negative write", C{3, -1, 99}, vm.IllegalAddress, 0, 3, -1, "intcode: illegal address -1 at 0"},
		{"negative jump", C{1105, 1, -4}, vm.IllegalAddress, -4, 0, -4, "intcode: illegal address -4 at -4"},
	}
	for _, d := range data {
		i, err := vm.New(d.img)
		require.NoError(t, err)
		_, err = vm.Collect(i, 0)
		require.Error(t, err, d.name)
		assert.ErrorIs(t, err, d.errno, d.name)
		var e *vm.Error
		if assert.ErrorAs(t, err, &e, d.name) {
			assert.Equal(t, d.errno, e.Errno, d.name)
			assert.Equal(t, d.pc, e.PC, d.name)
			assert.Equal(t, d.word, e.Word, d.name)
			assert.Equal(t, d.addr, e.Addr, d.name)
		}
		assert.EqualError(t, err, d.msg, d.name)
		assert.Equal(t, d.pc, i.PC, d.name)
		assert.True(t, i.Halted(), d.name)
		assert.True(t, i.Finished(), d.name)
		// faults stick
		assert.Equal(t, err, i.Run(0, false), d.name)
		assert.Equal(t, err, i.Err(), d.name)
	}
}

func TestMemory(t *testing.T) {
	m := vm.NewMemory(C{1, 2, 3})
	v, err := m.Read(2)
	assert.NoError(t, err)
	assert.Equal(t, vm.Cell(3), v)
	v, err = m.Read(1 << 40)
	assert.NoError(t, err)
	assert.Zero(t, v)
	assert.Equal(t, 3, m.Len(), "reads do not grow memory")

	require.NoError(t, m.Write(100, 42))
	assert.Equal(t, 128, m.Len())
	v, _ = m.Read(100)
	assert.Equal(t, vm.Cell(42), v)
	v, _ = m.Read(99)
	assert.Zero(t, v)
	assert.Equal(t, C{1, 2, 3}, C(m.Cells()[:3]))

	_, err = m.Read(-1)
	assert.ErrorIs(t, err, vm.IllegalAddress)
	assert.ErrorIs(t, m.Write(-1, 0), vm.IllegalAddress)
}

// Far writes must not allocate all the cells in between.
func TestMemory_sparse(t *testing.T) {
	i, err := vm.New(C{1101, 1, 1, 1 << 40, 4, 1 << 40, 99})
	require.NoError(t, err)
	out, err := vm.Collect(i, 0)
	require.NoError(t, err)
	assert.Equal(t, C{2}, C(out))
	assert.Equal(t, 7, i.Mem.Len())
	v, err := i.Mem.Read(1 << 40)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(2), v)

	m := vm.NewMemory(C{1, 2, 3})
	require.NoError(t, m.Write(70000, 7))
	assert.Equal(t, 3, m.Len())
	require.NoError(t, m.Write(65000, 1))
	assert.Equal(t, 65536, m.Len())
	v, _ = m.Read(70000)
	assert.Equal(t, vm.Cell(7), v)
	// growing over a sparse cell moves it into the dense part
	require.NoError(t, m.Write(69999, 6))
	assert.Equal(t, 131072, m.Len())
	assert.Equal(t, C{6, 7}, C(m.Cells()[69999:70001]))

	require.NoError(t, m.Write(1<<40, 5))
	v, _ = m.Read(1 << 40)
	assert.Equal(t, vm.Cell(5), v)
	require.NoError(t, m.Write(1<<40, 0))
	v, _ = m.Read(1 << 40)
	assert.Zero(t, v)

	i, err = vm.New(C{1101, 1, 1, 1 << 40, 99}, vm.MaxMemory(100))
	require.NoError(t, err)
	assert.ErrorIs(t, i.Run(0, false), vm.MemoryLimit)
}

func TestMemoryGrowth(t *testing.T) {
	img := assemble(t, "grow", "add #1 #2 1000 hlt")
	i, err := vm.New(img)
	require.NoError(t, err)
	require.NoError(t, i.Run(0, false))
	assert.Equal(t, 1024, i.Mem.Len())

	i, err = vm.New(img, vm.MemoryGrowth(vm.GrowExact))
	require.NoError(t, err)
	require.NoError(t, i.Run(0, false))
	assert.Equal(t, 1001, i.Mem.Len())
	v, _ := i.Mem.Read(1000)
	assert.Equal(t, vm.Cell(3), v)

	// short GrowFunc results are fixed up
	i, err = vm.New(img, vm.MemoryGrowth(func(cur, need int) int { return cur }))
	require.NoError(t, err)
	require.NoError(t, i.Run(0, false))
	assert.Equal(t, 1001, i.Mem.Len())

	assert.Equal(t, 64, vm.GrowDouble(0, 10))
	assert.Equal(t, 400, vm.GrowDouble(100, 201))
	assert.Equal(t, 7, vm.GrowExact(3, 7))
}

func TestMaxMemory(t *testing.T) {
	img := assemble(t, "limit", "add #1 #2 limit hlt :limit")
	i, err := vm.New(img, vm.MaxMemory(6))
	require.NoError(t, err)
	require.NoError(t, i.Run(0, false))
	assert.Equal(t, 6, i.Mem.Len())

	i, err = vm.New(img, vm.MaxMemory(5))
	require.NoError(t, err)
	err = i.Run(0, false)
	assert.ErrorIs(t, err, vm.MemoryLimit)
	assert.EqualError(t, err, "intcode: memory limit exceeded 5 at 0")

	_, err = vm.New(img, vm.MaxMemory(-1))
	assert.Error(t, err)
	_, err = vm.New(img, vm.MaxMemory(2))
	assert.Error(t, err)
	_, err = vm.New(img, vm.MemoryGrowth(nil))
	assert.Error(t, err)
}

func TestOutHandler(t *testing.T) {
	errStop := errors.New("stop")
	var seen C
	i, err := vm.New(C{104, 1, 104, 2, 104, 3, 99}, vm.BindOutHandler(func(v vm.Cell) error {
		if v == 3 {
			return errStop
		}
		seen = append(seen, v)
		return nil
	}))
	require.NoError(t, err)
	err = i.Run(0, false)
	assert.Equal(t, errStop, errors.Cause(err))
	assert.Equal(t, C{1, 2}, seen)
	assert.Equal(t, 4, i.PC)
	assert.Equal(t, vm.Cell(2), i.Output())
	assert.True(t, i.Halted())
}

func TestInHandler(t *testing.T) {
	in := C{10, 20}
	i, err := vm.New(assemble(t, "in", "in 20 in 21 in 22 hlt"),
		vm.PhaseSetting(5),
		vm.BindInHandler(func() (vm.Cell, error) {
			if len(in) == 0 {
				return 0, io.EOF
			}
			v := in[0]
			in = in[1:]
			return v, nil
		}))
	require.NoError(t, err)
	err = i.Run(0, false)
	assert.Equal(t, io.EOF, errors.Cause(err))
	assert.Equal(t, 4, i.PC)
	a, _ := i.Mem.Read(20)
	b, _ := i.Mem.Read(21)
	c, _ := i.Mem.Read(22)
	assert.Equal(t, C{5, 10, 0}, C{a, b, c})
	assert.True(t, i.Halted())
}

// A panic in user supplied code must not take the process down.
func TestRun_recover(t *testing.T) {
	i, err := vm.New(C{1101, 1, 1, 100, 99}, vm.MemoryGrowth(func(cur, need int) int {
		panic(errors.New("out of memory"))
	}))
	require.NoError(t, err)
	err = i.Run(0, false)
	assert.EqualError(t, err, "recovered error @pc=0/5, rb=0: out of memory")
	assert.True(t, i.Halted())
	assert.Equal(t, err, i.Run(0, false))
}

func TestLogger(t *testing.T) {
	var b bytes.Buffer
	l := log.NewLogger(log.NewTerminalHandlerWithLevel(&b, log.LevelTrace, false))
	i, err := vm.New(C{1101, 1, 2, 5, 99}, vm.Logger(l))
	require.NoError(t, err)
	require.NoError(t, i.Run(0, false))
	s := b.String()
	assert.Contains(t, s, "exec")
	assert.Contains(t, s, "pc=4")
	assert.Contains(t, s, "Run returned")
	assert.Contains(t, s, "status=halted")

	b.Reset()
	l = log.NewLogger(log.NewTerminalHandlerWithLevel(&b, log.LevelDebug, false))
	i, err = vm.New(C{98}, vm.Logger(l))
	require.NoError(t, err)
	assert.Error(t, i.Run(0, false))
	assert.NotContains(t, b.String(), "exec")
	assert.Contains(t, b.String(), "Machine fault")

	// instructions are not traced below trace level
	b.Reset()
	i, err = vm.New(C{1101, 1, 2, 5, 99}, vm.Logger(l))
	require.NoError(t, err)
	require.NoError(t, i.Run(0, false))
	assert.NotContains(t, b.String(), "exec")
	assert.Contains(t, b.String(), "Run returned")

	// nil logger
	i, err = vm.New(C{99}, vm.Logger(nil))
	require.NoError(t, err)
	assert.NoError(t, i.Run(0, false))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "halted", vm.Halted.String())
	assert.Equal(t, "running", vm.Running.String())
	assert.Equal(t, "paused", vm.Paused.String())
	assert.Equal(t, "unknown", vm.Status(42).String())
	assert.Equal(t, "relative", vm.Relative.String())
	assert.Equal(t, "errno 42", vm.Errno(42).Error())
}
