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

// Package robot implements the hull painting robot.
//
// The robot program reads the color of the panel under the robot (0 for
// black, 1 for white) and outputs pairs of values: the color to paint the
// panel with, then the direction to turn (0 for left, 1 for right). After
// turning, the robot moves forward one panel.
package robot

import (
	"strconv"

	"github.com/db47h/intcode/scenario/grid"
	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// Errors returned by the robot.
var (
	ErrColor    = errors.New("invalid color")
	ErrTurn     = errors.New("invalid turn direction")
	ErrProtocol = errors.New("program halted before outputting a turn direction")
)

// Panel colors.
const (
	Black vm.Cell = iota
	White
)

// Direction is the direction the robot is facing.
type Direction int

// Directions, clockwise.
const (
	North Direction = iota
	East
	South
	West
)

var moves = [...]grid.Point{North: {X: 0, Y: -1}, East: {X: 1, Y: 0}, South: {X: 0, Y: 1}, West: {X: -1, Y: 0}}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "direction(" + strconv.Itoa(int(d)) + ")"
}

// Panel is a hull panel.
type Panel struct {
	Color   vm.Cell
	Painted bool // painted at least once
}

// Robot is a hull painting robot.
type Robot struct {
	hull   *grid.Grid[Panel]
	pos    grid.Point
	facing Direction
}

// New returns a new robot facing north in the center of a w×h hull.
func New(w, h int) (*Robot, error) {
	hull, err := grid.New[Panel](w, h)
	if err != nil {
		return nil, errors.Wrap(err, "hull")
	}
	return &Robot{
		hull: hull,
		pos:  grid.Point{X: w / 2, Y: h / 2},
	}, nil
}

// Position returns the robot's position.
func (r *Robot) Position() grid.Point { return r.pos }

// Facing returns the direction the robot is facing.
func (r *Robot) Facing() Direction { return r.facing }

// Color returns the color of the panel under the robot.
func (r *Robot) Color() vm.Cell {
	p, _ := r.hull.At(r.pos)
	return p.Color
}

// SetColor sets the color of the panel under the robot without painting it.
func (r *Robot) SetColor(c vm.Cell) error {
	if c != Black && c != White {
		return errors.Wrapf(ErrColor, "%d", c)
	}
	return r.hull.Set(r.pos, Panel{Color: c})
}

// Paint paints the panel under the robot.
func (r *Robot) Paint(c vm.Cell) error {
	if c != Black && c != White {
		return errors.Wrapf(ErrColor, "%d", c)
	}
	return r.hull.Set(r.pos, Panel{c, true})
}

// Turn turns the robot 90 degrees left (0) or right (1).
func (r *Robot) Turn(dir vm.Cell) error {
	switch dir {
	case 0:
		r.facing = (r.facing + 3) % 4
	case 1:
		r.facing = (r.facing + 1) % 4
	default:
		return errors.Wrapf(ErrTurn, "%d", dir)
	}
	return nil
}

// Advance moves the robot forward one panel.
func (r *Robot) Advance() error {
	next := r.pos.Add(moves[r.facing])
	if !r.hull.In(next) {
		_, err := r.hull.At(next)
		return errors.Wrap(err, "robot left the hull")
	}
	r.pos = next
	return nil
}

// Step paints the current panel, turns and moves forward.
func (r *Robot) Step(color, dir vm.Cell) error {
	if err := r.Paint(color); err != nil {
		return err
	}
	if err := r.Turn(dir); err != nil {
		return err
	}
	return r.Advance()
}

// Painted returns the number of panels painted at least once.
func (r *Robot) Painted() int {
	return r.hull.Count(func(p Panel) bool { return p.Painted })
}

func drawPanel(p Panel) rune {
	if p.Color == White {
		return '#'
	}
	return '.'
}

// Render draws the smallest area of the hull that contains all white panels.
func (r *Robot) Render() string {
	min, max, ok := r.hull.Bounds(func(p Panel) bool { return p.Color == White })
	if !ok {
		return ""
	}
	return r.hull.RenderRect(min, max, drawPanel)
}

type config struct {
	w, h       int
	startWhite bool
	log        log.Logger
	vmOpts     []vm.Option
}

// Option configures Run.
type Option func(*config)

// HullSize sets the hull size. The default is 100×100.
func HullSize(w, h int) Option {
	return func(c *config) { c.w, c.h = w, h }
}

// StartWhite makes the robot start on a white panel.
func StartWhite() Option {
	return func(c *config) { c.startWhite = true }
}

// Logger sets the logger.
func Logger(l log.Logger) Option {
	return func(c *config) { c.log = l }
}

// VMOptions sets options for the robot's intcode machine.
func VMOptions(opts ...vm.Option) Option {
	return func(c *config) { c.vmOpts = opts }
}

// Run runs the robot program until it halts and returns the robot.
func Run(program []vm.Cell, opts ...Option) (*Robot, error) {
	c := config{w: 100, h: 100}
	for _, opt := range opts {
		opt(&c)
	}
	r, err := New(c.w, c.h)
	if err != nil {
		return nil, err
	}
	if c.startWhite {
		if err = r.SetColor(White); err != nil {
			return nil, err
		}
	}
	i, err := vm.New(program, c.vmOpts...)
	if err != nil {
		return nil, err
	}
	for steps := 0; ; steps++ {
		if err = i.Run(r.Color(), true); err != nil {
			return r, err
		}
		if i.Finished() {
			break
		}
		color := i.Output()
		if err = i.Run(r.Color(), true); err != nil {
			return r, err
		}
		if i.Finished() {
			return r, ErrProtocol
		}
		if err = r.Step(color, i.Output()); err != nil {
			return r, errors.Wrapf(err, "step %d", steps)
		}
		if c.log != nil {
			c.log.Debug("Robot moved", "step", steps, "pos", r.pos, "facing", r.facing, "painted", color)
		}
	}
	return r, nil
}
