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
	"fmt"

	"github.com/db47h/intcode/scenario/amplifier"
	"github.com/db47h/intcode/scenario/gravity"
	"github.com/db47h/intcode/scenario/maze"
	"github.com/db47h/intcode/scenario/robot"
	"github.com/db47h/intcode/vm"
	"github.com/spf13/cobra"
)

func newAmpCmd() *cobra.Command {
	var feedback bool
	cmd := &cobra.Command{
		Use:   "amp FILE",
		Short: "Find the phase settings giving the highest thruster signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			phases := []vm.Cell{0, 1, 2, 3, 4}
			if feedback {
				phases = []vm.Cell{5, 6, 7, 8, 9}
			}
			sig, best, err := amplifier.MaxSignal(prog, phases)
			if err != nil {
				return err
			}
			fmt.Printf("%d %v\n", sig, best)
			return nil
		},
	}
	cmd.Flags().BoolVar(&feedback, "feedback", false, "use feedback loop phase settings (5-9)")
	return cmd
}

func newPaintCmd() *cobra.Command {
	var (
		white bool
		w, h  int
	)
	cmd := &cobra.Command{
		Use:   "paint FILE",
		Short: "Run the hull painting robot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			opts := []robot.Option{
				robot.HullSize(w, h),
				robot.Logger(logger),
				robot.VMOptions(vmOptions()...),
			}
			if white {
				opts = append(opts, robot.StartWhite())
			}
			r, err := robot.Run(prog, opts...)
			if err != nil {
				return err
			}
			fmt.Println(r.Painted())
			fmt.Print(r.Render())
			return nil
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&white, "white", false, "start on a white panel")
	fl.IntVar(&w, "width", 100, "hull width")
	fl.IntVar(&h, "height", 100, "hull height")
	return cmd
}

func newMazeCmd() *cobra.Command {
	var (
		render bool
		w, h   int
	)
	cmd := &cobra.Command{
		Use:   "maze FILE",
		Short: "Explore the area with the repair droid and locate the oxygen system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			i, err := vm.New(prog, vmOptions()...)
			if err != nil {
				return err
			}
			m, err := maze.Explore(maze.NewDroid(i), w, h, maze.Logger(logger))
			if err != nil {
				return err
			}
			if render {
				fmt.Print(m.Render())
			}
			path, err := m.ShortestPath()
			if err != nil {
				return err
			}
			fill, err := m.FillTime()
			if err != nil {
				return err
			}
			fmt.Println(path, fill)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&render, "render", false, "print the map")
	fl.IntVar(&w, "width", 64, "map width")
	fl.IntVar(&h, "height", 64, "map height")
	return cmd
}

func newGravityCmd() *cobra.Command {
	var target int64
	cmd := &cobra.Command{
		Use:   "gravity FILE",
		Short: "Find the noun and verb producing the target output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			noun, verb, err := gravity.Search(prog, vm.Cell(target))
			if err != nil {
				return err
			}
			fmt.Println(100*noun + verb)
			return nil
		},
	}
	cmd.Flags().Int64Var(&target, "target", 19690720, "target output")
	return cmd
}
