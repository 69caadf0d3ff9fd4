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

package asm_test

import (
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

var tests = [...]struct {
	name string
	code string
	img  C
}{
	{"add", "add #1 #2 0 hlt", C{1101, 1, 2, 0, 99}},
	{"mul", "mul #3 @-1 10", C{2102, 3, -1, 10}},
	{"in", "in @5", C{203, 5}},
	{"arb", "arb #-3", C{109, -3}},
	{"lt", "lt 1 #2 @3", C{21007, 1, 2, 3}},
	{"eq", "eq @1 @2 @3", C{22208, 1, 2, 3}},
	{"raw", "1 0 0 0 99", C{1, 0, 0, 0, 99}},
	{"org", ".org 3 hlt", C{0, 0, 0, 99}},
	{"dat", ":a .dat a+2 .dat 'A' .dat 0x10", C{2, 65, 16}},
	{"equ", ".equ N 7 out #N", C{104, 7}},
	{"forward", "jt #1 #end :end hlt", C{1105, 1, 3, 99}},
	{"offset", "add end-1 #1 end+1 :end hlt", C{1001, 3, 1, 5, 99}},
	{"local", ":1 jf #0 #1- :1 jt #1 #1-", C{1106, 0, 0, 1105, 1, 3}},
	{"comment", "( comment ) hlt ( another\n one )", C{99}},
}

func TestAssemble(t *testing.T) {
	for _, test := range tests {
		img, err := asm.Assemble(test.name, strings.NewReader(test.code))
		if !assert.NoError(t, err, test.name) {
			continue
		}
		assert.Equal(t, test.img, C(img), test.name)
	}
}

func TestAssemble_empty(t *testing.T) {
	img, err := asm.Assemble("empty", strings.NewReader("( nothing )"))
	require.NoError(t, err)
	assert.Empty(t, img)
}

// check some errors. We're checking that they point at the correct place.
func TestAssemble_errors(t *testing.T) {
	errTests := []struct {
		code string
		err  string
	}{
		{"add 1 2 #3", "test:1:9: Immediate mode not allowed for add target operand"},
		{"jt 1 nowhere", "test:1:6: Undefined label nowhere"},
		{"foo", "test:1:1: Unknown instruction: foo"},
		{":a :a", "test:1:4: Label redefinition: a, previous definition here: test:1:1"},
		{"out 1-", "test:1:5: Backward reference to undefined local label 1-"},
		{"out 1", ""},
		{"out #1", ""},
		{"jt #1 #2", ""},
		{"jt #1 2", ""},
		{"out 0 jt #1 #0", ""},
		{".org -1", "test:1:6: Negative origin -1"},
		{".org foo", "test:1:6: Expected integer or constant, got foo"},
		{".equ X 1 :X", "test:1:10: Label redefinition: X, previously defined as a constant here: test:1:6"},
		{".bogus", "test:1:1: Unknown directive: .bogus"},
		{"( unterminated", "test:1:1: Unterminated comment"},
		{"add #0 1 mul", "test:1:10: Unexpected opcode as argument: mul"},
		{"out 12", ""},
		{"jt #1 #09", "test:1:8: Local label reference without direction: 09"},
	}
	for _, test := range errTests {
		_, err := asm.Assemble("test", strings.NewReader(test.code))
		if test.err == "" {
			assert.NoError(t, err, test.code)
			continue
		}
		if assert.Error(t, err, test.code) {
			assert.IsType(t, asm.ErrAsm{}, err)
			assert.Equal(t, test.err, err.Error(), test.code)
		}
	}
}

func TestAssemble_unexpectedEOF(t *testing.T) {
	_, err := asm.Assemble("test", strings.NewReader("add 1"))
	require.Error(t, err)
	errs := err.(asm.ErrAsm)
	require.Len(t, errs, 1)
	assert.Equal(t, "Unexpected end of input", errs[0].Msg)
}

func TestAssemble_maxErrors(t *testing.T) {
	code := strings.Repeat("bad ", 20)
	_, err := asm.Assemble("test", strings.NewReader(code))
	require.Error(t, err)
	errs := err.(asm.ErrAsm)
	assert.Len(t, errs, 10)
	for k, e := range errs {
		assert.Equal(t, 1+4*k, e.Pos.Column)
	}
}

func TestDisassemble_roundTrip(t *testing.T) {
	for _, test := range tests {
		img, err := asm.Assemble(test.name, strings.NewReader(test.code))
		require.NoError(t, err, test.name)
		var b strings.Builder
		for pc := 0; pc < len(img); {
			pc, err = asm.Disassemble(img, pc, &b)
			require.NoError(t, err)
			b.WriteByte('\n')
		}
		if strings.Contains(b.String(), "???") {
			continue
		}
		again, err := asm.Assemble(test.name, strings.NewReader(strings.ReplaceAll(b.String(), ".dat ", "")))
		if assert.NoError(t, err, test.name) {
			assert.Equal(t, img, again, test.name)
		}
	}
}
