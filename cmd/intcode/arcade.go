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
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/db47h/intcode/scenario/arcade"
	"github.com/db47h/intcode/scenario/grid"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type arcadeFlags struct {
	freePlay bool
	render   bool
	play     bool
	delay    time.Duration
	w, h     int
}

// keyboard reads joystick positions from stdin: a or h for left, d or l for
// right, anything else for neutral. The last key pressed holds.
func keyboard() arcade.Joystick {
	var pos atomic.Int64
	go func() {
		var b [1]byte
		for {
			if _, err := os.Stdin.Read(b[:]); err != nil {
				return
			}
			switch b[0] {
			case 'a', 'h':
				pos.Store(int64(arcade.Left))
			case 'd', 'l':
				pos.Store(int64(arcade.Right))
			default:
				pos.Store(int64(arcade.Neutral))
			}
		}
	}()
	return func(*arcade.Cabinet) vm.Cell { return vm.Cell(pos.Load()) }
}

// display wraps j so that the screen is redrawn every time the ball moves.
func display(s *screen, j arcade.Joystick, delay time.Duration) arcade.Joystick {
	var last grid.Point
	return func(c *arcade.Cabinet) vm.Cell {
		if b := c.Ball(); b != last {
			last = b
			s.draw(c.Render(), fmt.Sprintf("score: %d  blocks: %d", c.Score(), c.Blocks()))
			time.Sleep(delay)
		}
		return j(c)
	}
}

func runArcade(name string, f *arcadeFlags) error {
	prog, err := loadProgram(name)
	if err != nil {
		return err
	}
	opts := []arcade.Option{
		arcade.ScreenSize(f.w, f.h),
		arcade.Logger(logger),
		arcade.VMOptions(vmOptions()...),
	}
	if f.freePlay || f.play {
		opts = append(opts, arcade.FreePlay())
	}
	joystick := arcade.Joystick(arcade.FollowBall)
	if f.play {
		restore, err := setRawIO()
		if err != nil {
			return errors.Wrap(err, "cannot play without a terminal")
		}
		defer restore()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sig
			restore()
			os.Exit(1)
		}()
		joystick = keyboard()
	}
	if f.render || f.play {
		joystick = display(newScreen(os.Stdout), joystick, f.delay)
	}
	opts = append(opts, arcade.WithJoystick(joystick))

	c, err := arcade.Run(prog, opts...)
	if err != nil {
		return err
	}
	if f.render || f.play {
		fmt.Print("\r\n")
	}
	fmt.Println(c.Blocks(), c.Score())
	return nil
}

func newArcadeCmd() *cobra.Command {
	var f arcadeFlags
	cmd := &cobra.Command{
		Use:   "arcade FILE",
		Short: "Run the arcade cabinet",
		Long: `Run the arcade cabinet and print the number of blocks left on screen and the
final score.

By default the paddle follows the ball. With --play, the joystick is controlled
with the keyboard: a or h moves left, d or l moves right, any other key stops
the paddle.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArcade(args[0], &f)
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&f.freePlay, "free-play", false, "insert quarters")
	fl.BoolVar(&f.render, "render", false, "display the game on a VT100 terminal")
	fl.BoolVar(&f.play, "play", false, "play with the keyboard (implies --free-play and --render)")
	fl.DurationVar(&f.delay, "delay", 20*time.Millisecond, "delay between frames")
	fl.IntVar(&f.w, "width", 64, "screen width")
	fl.IntVar(&f.h, "height", 32, "screen height")
	return cmd
}
