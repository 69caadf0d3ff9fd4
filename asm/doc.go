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

// Package asm provides utility functions to assemble and disassemble intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Operands are listed in order. r is a read operand, w a write operand.
//
//	opcode	asm	operands	description
//	------	---	--------	------------------------------------------------
//	1	add	r r w		w = r1 + r2
//	2	mul	r r w		w = r1 * r2
//	3	in	w		w = input
//	4	out	r		output r
//	5	jt	r r		jump to r2 if r1 != 0
//	6	jf	r r		jump to r2 if r1 == 0
//	7	lt	r r w		w = 1 if r1 < r2, 0 otherwise
//	8	eq	r r w		w = 1 if r1 == r2, 0 otherwise
//	9	arb	r		add r to the relative base
//	99	hlt			halt
//
// Operands:
//
// An operand is a value optionally prefixed by an addressing mode:
//
//	42	position mode: the cell at address 42
//	#42	immediate mode: the value 42
//	@42	relative mode: the cell at address rb+42
//
// The value is an integer literal (see strconv.ParseInt), a Go character
// literal between single quotes, a constant defined with .equ or a label
// reference. A label reference may carry an offset: foo+2, foo-1. The parser
// computes the mode digits of the instruction word; for example:
//
//	mul #3 @-1 10	( compiles as 2102,3,-1,10 )
//
// Using the immediate mode for a write operand is an error.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//	(this will be seen by the parser as an instruction named "(this" )
//
// Input is split at white space into tokens, so more than one instruction may
// appear on the same line and comments can be placed anywhere between tokens.
//
// Raw data:
//
// Where the parser is expecting an instruction, integer literals, character
// literals and constants are compiled as-is. A plain intcode program is
// therefore also valid assembly, once commas are replaced by spaces:
//
//	1101 2 3 0 99	( same as "add #2 #3 0 hlt" )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used in any
// operand or .dat directive (without the ':' prefix). Forward references are
// ok:
//
//	:loop	in 	counter
//		jt 	counter #loop
//		hlt
//	:counter .dat 0
//
// Label names cannot contain '+' or '-' followed by a number.
//
// Local labels:
//
// Local labels work in the same way as in the GNU assembler. They are defined
// as a colon followed by a sequence of digits (i.e. :007, :0, :42) and can be
// defined multiple times. References to such labels must be suffixed with
// either a '-' (meaning backward reference to the last definition of this
// label), or a '+' (meaning a forward reference to the next definition of
// this label):
//
//	:1	jt #1 #1+	( jumps to the next :1 )
//	:1	jt #1 #1-	( jumps to itself )
//
// Internally, local labels are given a unique name of the form N·counter, so
// you should not define labels of this form.
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal. Constants must be defined before use.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given
// integer literal or named constant. Skipped cells are set to 0.
//
//	.dat <value>
//
// Will compile the specified value, named constant, character literal or label
// address as-is:
//
//	:table	.dat 65
//		.dat 'B'
//		.dat table+1
package asm
