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

// The intcode command line tool runs, assembles and disassembles intcode
// programs, and drives the machines found in the scenario packages.
//
// Usage:
//
//	intcode [--log-level LEVEL] [--debug] COMMAND [flags] FILE
//
// Programs are loaded from text files holding integers separated by commas
// or white space. Files with a .asm or .ic extension are assembled first, see
// package github.com/db47h/intcode/asm for the syntax.
//
// Commands:
//
//	run       run a program, printing its outputs
//	asm       assemble a source file
//	disasm    disassemble a program
//	amp       find the best phase settings for an amplifier circuit
//	paint     run the hull painting robot
//	arcade    run the arcade cabinet
//	maze      explore a maze with the repair droid
//	gravity   search the noun and verb giving a target output
//
// --log-level: one of trace, debug, info, warn, error or crit. At trace level,
// every instruction executed is logged to stderr.
//
// --debug: print full stack traces on errors.
//
// run --interactive: the program prompts for a value every time it executes
// an IN instruction. CTRL-C or CTRL-D stop the program. Combined with --ascii,
// input lines are sent to the program one character at a time, followed by a
// newline, and outputs below 128 are printed as characters.
//
// run --dump: once the program has halted, print its memory in the same
// format used to load programs.
//
// arcade --play: play the game with the keyboard in a VT100 terminal. Stdin
// is switched to raw mode. This is only supported on Linux.
package main
