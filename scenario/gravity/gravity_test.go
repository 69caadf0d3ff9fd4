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

package gravity_test

import (
	"testing"

	"github.com/db47h/intcode/scenario/gravity"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var program = []vm.Cell{1, 0, 0, 0, 99, 7, 11}

func TestRun(t *testing.T) {
	v, err := gravity.Run(program, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(18), v)
	assert.Equal(t, vm.Cell(1), program[1], "program must not be modified")

	_, err = gravity.Run([]vm.Cell{98}, 0, 0)
	assert.ErrorIs(t, err, vm.IllegalInstruction)
}

func TestSearch(t *testing.T) {
	noun, verb, err := gravity.Search(program, 110)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(4), noun)
	assert.Equal(t, vm.Cell(6), verb)

	_, _, err = gravity.Search(program, 12345)
	assert.Equal(t, gravity.ErrNotFound, errors.Cause(err))

	// faulting pairs are skipped
	_, _, err = gravity.Search([]vm.Cell{98}, 0)
	assert.Equal(t, gravity.ErrNotFound, errors.Cause(err))
}
