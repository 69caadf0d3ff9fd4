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

// Package arcade implements the intcode arcade cabinet.
//
// The game program outputs triples (x, y, tile) to draw tiles on the screen.
// The special triple (-1, 0, score) updates the score display. Each time the
// program reads input, it gets the joystick position: -1 (left), 0 (neutral)
// or 1 (right).
package arcade

import (
	"strconv"

	"github.com/db47h/intcode/scenario/grid"
	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// Errors returned by Run.
var (
	ErrTile     = errors.New("unknown tile")
	ErrProtocol = errors.New("program halted in the middle of a draw command")
)

// Tile is a screen tile id.
type Tile vm.Cell

// Tile ids.
const (
	Empty Tile = iota
	Wall
	Block
	Paddle
	Ball
)

var tiles = [...]struct {
	name string
	r    rune
}{
	Empty:  {"empty", ' '},
	Wall:   {"wall", '|'},
	Block:  {"block", '#'},
	Paddle: {"paddle", '_'},
	Ball:   {"ball", 'o'},
}

// Valid returns true if t is a known tile id.
func (t Tile) Valid() bool {
	return t >= Empty && t <= Ball
}

func (t Tile) String() string {
	if t.Valid() {
		return tiles[t].name
	}
	return "tile(" + strconv.FormatInt(int64(t), 10) + ")"
}

// Rune returns the character used to draw t.
func (t Tile) Rune() rune {
	if t.Valid() {
		return tiles[t].r
	}
	return '?'
}

// Joystick positions.
const (
	Left    vm.Cell = -1
	Neutral vm.Cell = 0
	Right   vm.Cell = 1
)

// A Joystick returns the joystick position given the current state of the
// cabinet.
type Joystick func(c *Cabinet) vm.Cell

// FollowBall is the default Joystick: it moves the paddle towards the ball.
func FollowBall(c *Cabinet) vm.Cell {
	switch {
	case c.ball.X > c.paddle.X:
		return Right
	case c.ball.X < c.paddle.X:
		return Left
	}
	return Neutral
}

// Cabinet is the arcade cabinet: a screen and a score display.
type Cabinet struct {
	screen   *grid.Grid[Tile]
	w, h     int
	score    vm.Cell
	ball     grid.Point
	paddle   grid.Point
	frames   int
	joystick Joystick
	onFrame  func(*Cabinet)
	freePlay bool
	log      log.Logger
	vmOpts   []vm.Option
}

// Option configures a Cabinet.
type Option func(*Cabinet)

// ScreenSize sets the screen size. The default is 64×32.
func ScreenSize(w, h int) Option {
	return func(c *Cabinet) { c.w, c.h = w, h }
}

// FreePlay sets the cabinet to free play mode by writing 2 at address 0 of
// the game program.
func FreePlay() Option {
	return func(c *Cabinet) { c.freePlay = true }
}

// WithJoystick sets the joystick. The default is FollowBall.
func WithJoystick(j Joystick) Option {
	return func(c *Cabinet) { c.joystick = j }
}

// OnFrame sets a callback invoked each time the score display is updated.
func OnFrame(f func(*Cabinet)) Option {
	return func(c *Cabinet) { c.onFrame = f }
}

// Logger sets the logger.
func Logger(l log.Logger) Option {
	return func(c *Cabinet) { c.log = l }
}

// VMOptions sets options for the game's intcode machine.
func VMOptions(opts ...vm.Option) Option {
	return func(c *Cabinet) { c.vmOpts = opts }
}

// New returns a new Cabinet.
func New(opts ...Option) (*Cabinet, error) {
	c := &Cabinet{joystick: FollowBall, w: 64, h: 32}
	for _, opt := range opts {
		opt(c)
	}
	s, err := grid.New[Tile](c.w, c.h)
	if err != nil {
		return nil, errors.Wrap(err, "screen")
	}
	c.screen = s
	return c, nil
}

// Score returns the current score.
func (c *Cabinet) Score() vm.Cell { return c.score }

// Ball returns the last known ball position.
func (c *Cabinet) Ball() grid.Point { return c.ball }

// Paddle returns the last known paddle position.
func (c *Cabinet) Paddle() grid.Point { return c.paddle }

// Frames returns the number of score updates so far.
func (c *Cabinet) Frames() int { return c.frames }

// Tile returns the tile at p.
func (c *Cabinet) Tile(p grid.Point) (Tile, error) {
	return c.screen.At(p)
}

// Blocks returns the number of block tiles on screen.
func (c *Cabinet) Blocks() int {
	return c.screen.Count(func(t Tile) bool { return t == Block })
}

// Draw executes a draw command.
func (c *Cabinet) Draw(x, y, v vm.Cell) error {
	if x == -1 && y == 0 {
		c.score = v
		c.frames++
		if c.log != nil {
			c.log.Debug("Score", "score", v, "blocks", c.Blocks())
		}
		if c.onFrame != nil {
			c.onFrame(c)
		}
		return nil
	}
	t := Tile(v)
	if !t.Valid() {
		return errors.Wrapf(ErrTile, "%d", v)
	}
	p := grid.Point{X: int(x), Y: int(y)}
	if err := c.screen.Set(p, t); err != nil {
		return err
	}
	switch t {
	case Ball:
		c.ball = p
	case Paddle:
		c.paddle = p
	}
	return nil
}

// Render draws the screen, cropped to the area containing tiles.
func (c *Cabinet) Render() string {
	min, max, ok := c.screen.Bounds(func(t Tile) bool { return t != Empty })
	if !ok {
		return ""
	}
	return c.screen.RenderRect(min, max, Tile.Rune)
}

// Play runs the game program until it halts.
func (c *Cabinet) Play(program []vm.Cell) error {
	i, err := vm.New(program, c.vmOpts...)
	if err != nil {
		return err
	}
	if c.freePlay {
		if err = i.Mem.Write(0, 2); err != nil {
			return err
		}
	}
	var cmd [3]vm.Cell
	for {
		for k := range cmd {
			if err = i.Run(c.joystick(c), true); err != nil {
				return err
			}
			if i.Finished() {
				if k != 0 {
					return ErrProtocol
				}
				return nil
			}
			cmd[k] = i.Output()
		}
		if err = c.Draw(cmd[0], cmd[1], cmd[2]); err != nil {
			return errors.Wrapf(err, "draw %v", cmd)
		}
	}
}

// Run creates a new Cabinet and plays the game program on it.
func Run(program []vm.Cell, opts ...Option) (*Cabinet, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c, c.Play(program)
}
