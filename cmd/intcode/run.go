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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/db47h/intcode/image"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type runFlags struct {
	input       int64
	phase       int64
	phaseSet    bool
	interactive bool
	ascii       bool
	dump        bool
	maxMem      int
}

// printer writes machine outputs, either as numbers, one per line, or as
// characters when ascii is set and the value is in range.
type printer struct {
	w     *bufio.Writer
	ascii bool
	nl    bool // last ascii output was a newline
}

func (p *printer) out(v vm.Cell) error {
	if p.ascii && v >= 0 && v < 128 {
		p.nl = v == '\n'
		p.w.WriteByte(byte(v))
		if p.nl {
			return p.w.Flush()
		}
		return nil
	}
	if p.ascii && !p.nl {
		p.w.WriteByte('\n')
	}
	p.nl = true
	p.w.WriteString(strconv.FormatInt(int64(v), 10))
	p.w.WriteByte('\n')
	return p.w.Flush()
}

// lineReader returns an InHandler that reads one integer per line from rl. In
// ascii mode, lines are fed one character at a time, newline included.
func lineReader(rl *readline.Instance, ascii bool) vm.InHandler {
	var pending []byte
	return func() (vm.Cell, error) {
		for {
			if ascii && len(pending) > 0 {
				c := pending[0]
				pending = pending[1:]
				return vm.Cell(c), nil
			}
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				return 0, io.EOF
			}
			if err != nil {
				return 0, err
			}
			if ascii {
				pending = append([]byte(line), '\n')
				continue
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			v, err := strconv.ParseInt(line, 10, 64)
			if err != nil {
				fmt.Fprintf(rl.Stderr(), "not an integer: %q\n", line)
				continue
			}
			return vm.Cell(v), nil
		}
	}
}

func runProgram(name string, f *runFlags) (err error) {
	prog, err := loadProgram(name)
	if err != nil {
		return err
	}
	p := &printer{w: bufio.NewWriter(os.Stdout), ascii: f.ascii, nl: true}
	defer p.w.Flush()

	opts := append(vmOptions(), vm.BindOutHandler(p.out))
	if f.maxMem > 0 {
		opts = append(opts, vm.MaxMemory(f.maxMem))
	}
	if f.phaseSet {
		opts = append(opts, vm.PhaseSetting(vm.Cell(f.phase)))
	}
	if f.interactive {
		prompt := "> "
		if f.ascii {
			prompt = ""
		}
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          prompt,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return errors.Wrap(err, "readline")
		}
		defer rl.Close()
		opts = append(opts, vm.BindInHandler(lineReader(rl, f.ascii)))
	}

	i, err := vm.New(prog, opts...)
	if err != nil {
		return err
	}
	err = i.Run(vm.Cell(f.input), false)
	if errors.Cause(err) == io.EOF {
		err = nil
	}
	if err != nil {
		return err
	}
	if f.dump {
		if err = p.w.Flush(); err != nil {
			return err
		}
		return image.Write(os.Stdout, i.Mem.Cells())
	}
	return nil
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run an intcode program",
		Long: `Run an intcode program until it halts.

Every output is printed on its own line. The program reads the value of --input
for every IN instruction, unless --interactive is set, in which case the value
is prompted for. With --ascii, outputs in the ASCII range are printed as
characters and interactive input is fed character by character.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.phaseSet = cmd.Flags().Changed("phase")
			return runProgram(args[0], &f)
		},
	}
	fl := cmd.Flags()
	fl.Int64VarP(&f.input, "input", "i", 0, "input value")
	fl.Int64Var(&f.phase, "phase", 0, "phase setting, read by the first IN instruction")
	fl.BoolVar(&f.interactive, "interactive", false, "prompt for input")
	fl.BoolVarP(&f.ascii, "ascii", "a", false, "ASCII mode")
	fl.BoolVar(&f.dump, "dump", false, "dump memory after the program halts")
	fl.IntVar(&f.maxMem, "max-memory", 0, "memory limit in cells (0 means no limit)")
	return cmd
}
