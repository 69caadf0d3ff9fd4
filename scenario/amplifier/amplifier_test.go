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

package amplifier_test

import (
	"testing"

	"github.com/db47h/intcode/scenario/amplifier"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C = []vm.Cell

var tests = [...]struct {
	name    string
	program C
	phases  C
	signal  vm.Cell
}{
	{"serial1", C{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}, C{4, 3, 2, 1, 0}, 43210},
	{"serial2", C{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}, C{0, 1, 2, 3, 4}, 54321},
	{"feedback", C{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}, C{9, 8, 7, 6, 5}, 139629729},
}

func TestCircuit_Run(t *testing.T) {
	for _, test := range tests {
		c, err := amplifier.New(test.program, test.phases)
		require.NoError(t, err, test.name)
		s, err := c.Run()
		require.NoError(t, err, test.name)
		assert.Equal(t, test.signal, s, test.name)
		// running a finished circuit again returns the same signal
		s, err = c.Run()
		require.NoError(t, err, test.name)
		assert.Equal(t, test.signal, s, test.name)
		assert.Equal(t, test.phases, c.Phases())
	}
}

func TestMaxSignal(t *testing.T) {
	for _, test := range tests {
		// shuffle the phases, MaxSignal must find the best permutation
		phases := C{test.phases[2], test.phases[0], test.phases[4], test.phases[1], test.phases[3]}
		s, p, err := amplifier.MaxSignal(test.program, phases)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.signal, s, test.name)
		assert.Equal(t, test.phases, p, test.name)
	}
}

func TestCircuit_errors(t *testing.T) {
	_, err := amplifier.New(C{99}, nil)
	assert.Error(t, err)
	_, _, err = amplifier.MaxSignal(C{99}, nil)
	assert.Error(t, err)

	c, err := amplifier.New(C{3, 0, 98}, C{1, 2})
	require.NoError(t, err)
	_, err = c.Run()
	assert.ErrorIs(t, err, vm.IllegalInstruction)
	assert.Contains(t, err.Error(), "amplifier 0")

	_, _, err = amplifier.MaxSignal(C{3, 0, 98}, C{1, 2})
	assert.ErrorIs(t, err, vm.IllegalInstruction)
}
