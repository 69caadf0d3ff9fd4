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

// Package gravity implements the gravity assist program search: find the
// inputs (noun and verb, stored at addresses 1 and 2) for which a program
// leaves a given value at address 0.
package gravity

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Search if no input pair produces the target
// value.
var ErrNotFound = errors.New("no matching noun and verb")

// Run runs program with the given noun and verb and returns the value at
// address 0 once it halts.
func Run(program []vm.Cell, noun, verb vm.Cell) (vm.Cell, error) {
	i, err := vm.New(program)
	if err != nil {
		return 0, err
	}
	if err = i.Mem.Write(1, noun); err != nil {
		return 0, err
	}
	if err = i.Mem.Write(2, verb); err != nil {
		return 0, err
	}
	if err = i.Run(0, false); err != nil {
		return 0, err
	}
	return i.Mem.Read(0)
}

// Search tries all nouns and verbs between 0 and 99 included and returns the
// first pair for which Run returns target. Pairs that make the program fault
// are skipped.
func Search(program []vm.Cell, target vm.Cell) (noun, verb vm.Cell, err error) {
	for noun = 0; noun < 100; noun++ {
		for verb = 0; verb < 100; verb++ {
			if v, err := Run(program, noun, verb); err == nil && v == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errors.Wrapf(ErrNotFound, "target %d", target)
}
