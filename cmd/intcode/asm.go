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
	"os"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/image"
	"github.com/spf13/cobra"
)

func newAsmCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "asm FILE",
		Short: "Assemble an intcode assembly source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			prog, err := asm.Assemble(args[0], f)
			if err != nil {
				return err
			}
			if out != "" {
				return image.Save(out, prog)
			}
			return image.Write(os.Stdout, prog)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the program to `file` instead of stdout")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Disassemble an intcode program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(os.Stdout)
			if err = asm.DisassembleAll(prog, base, w); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&base, "base", 0, "address of the first cell")
	return cmd
}
