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

// Package maze implements the repair droid scenario: a remote controlled droid
// explores an unknown maze in search of the oxygen system.
//
// The droid program reads movement commands (1: north, 2: south, 3: west,
// 4: east) and replies with a status code for each command: 0 if the droid hit
// a wall and did not move, 1 if it moved, 2 if it moved and found the oxygen
// system.
package maze

import (
	"strconv"

	"github.com/db47h/intcode/scenario/grid"
	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// Errors.
var (
	ErrReply        = errors.New("invalid droid reply")
	ErrHalted       = errors.New("droid program halted")
	ErrInconsistent = errors.New("droid could not backtrack")
	ErrNoOxygen     = errors.New("oxygen system not found")
)

// Direction is a movement command.
type Direction vm.Cell

// Movement commands.
const (
	North Direction = iota + 1
	South
	West
	East
)

var (
	moves     = [...]grid.Point{North: {X: 0, Y: -1}, South: {X: 0, Y: 1}, West: {X: -1, Y: 0}, East: {X: 1, Y: 0}}
	opposites = [...]Direction{North: South, South: North, West: East, East: West}
)

// Opposite returns the opposite direction, or 0 if d is not a valid
// direction.
func (d Direction) Opposite() Direction {
	if d < North || d > East {
		return 0
	}
	return opposites[d]
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return "direction(" + strconv.FormatInt(int64(d), 10) + ")"
}

// Reply is a droid status code.
type Reply vm.Cell

// Droid status codes.
const (
	HitWall Reply = iota
	Moved
	FoundOxygen
)

// Droid is the interface implemented by remote controlled droids.
type Droid interface {
	Move(d Direction) (Reply, error)
}

type vmDroid struct {
	i *vm.Instance
}

// NewDroid returns a Droid controlled by the intcode machine i.
func NewDroid(i *vm.Instance) Droid {
	return &vmDroid{i}
}

func (d *vmDroid) Move(dir Direction) (Reply, error) {
	if err := d.i.Run(vm.Cell(dir), true); err != nil {
		return 0, err
	}
	if d.i.Finished() {
		return 0, ErrHalted
	}
	r := Reply(d.i.Output())
	if r < HitWall || r > FoundOxygen {
		return 0, errors.Wrapf(ErrReply, "%d", r)
	}
	return r, nil
}

// Tile is the content of a map location.
type Tile uint8

// Map tiles.
const (
	Unknown Tile = iota
	Open
	Wall
	Oxygen
)

// Rune returns the character used to draw t.
func (t Tile) Rune() rune {
	switch t {
	case Open:
		return '.'
	case Wall:
		return '#'
	case Oxygen:
		return 'O'
	}
	return ' '
}

// Map is a map of the maze built by Explore.
type Map struct {
	g      *grid.Grid[Tile]
	start  grid.Point
	oxygen grid.Point
	found  bool
}

// Start returns the starting position of the droid.
func (m *Map) Start() grid.Point { return m.start }

// Oxygen returns the location of the oxygen system. ok is false if the oxygen
// system was not found.
func (m *Map) Oxygen() (p grid.Point, ok bool) { return m.oxygen, m.found }

// Tile returns the tile at p.
func (m *Map) Tile(p grid.Point) (Tile, error) { return m.g.At(p) }

type exploreConfig struct {
	log log.Logger
}

// ExploreOption configures Explore.
type ExploreOption func(*exploreConfig)

// Logger sets the logger used by Explore.
func Logger(l log.Logger) ExploreOption {
	return func(c *exploreConfig) { c.log = l }
}

// Explore explores the whole maze with the droid d, starting at the center of
// a w×h map. It does a depth first search and backtracks from dead ends, so the
// droid ends its journey at its starting position.
func Explore(d Droid, w, h int, opts ...ExploreOption) (*Map, error) {
	var cfg exploreConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	g, err := grid.New[Tile](w, h)
	if err != nil {
		return nil, errors.Wrap(err, "map")
	}
	m := &Map{g: g, start: grid.Point{X: w / 2, Y: h / 2}}
	if err = m.g.Set(m.start, Open); err != nil {
		return nil, err
	}
	var path []Direction
	pos := m.start
	steps := 0
	for {
		dir, next, err := m.unexplored(pos)
		if err != nil {
			return m, err
		}
		if dir == 0 {
			if len(path) == 0 {
				break
			}
			back := path[len(path)-1].Opposite()
			r, err := d.Move(back)
			steps++
			if err != nil {
				return m, err
			}
			if r == HitWall {
				return m, errors.Wrapf(ErrInconsistent, "going %v from %v", back, pos)
			}
			pos = pos.Add(moves[back])
			path = path[:len(path)-1]
			continue
		}
		r, err := d.Move(dir)
		steps++
		if err != nil {
			return m, err
		}
		switch r {
		case HitWall:
			m.g.Set(next, Wall)
			continue
		case FoundOxygen:
			m.g.Set(next, Oxygen)
			m.oxygen, m.found = next, true
			if cfg.log != nil {
				cfg.log.Debug("Found oxygen system", "pos", next, "moves", steps)
			}
		default:
			m.g.Set(next, Open)
		}
		pos = next
		path = append(path, dir)
	}
	if cfg.log != nil {
		cfg.log.Debug("Maze explored", "moves", steps, "oxygen", m.found)
	}
	return m, nil
}

// unexplored returns the first direction from p that leads to an unknown
// location, or 0 if all neighbors are known.
func (m *Map) unexplored(p grid.Point) (Direction, grid.Point, error) {
	for d := North; d <= East; d++ {
		next := p.Add(moves[d])
		t, err := m.g.At(next)
		if err != nil {
			return 0, next, errors.Wrap(err, "maze larger than map")
		}
		if t == Unknown {
			return d, next, nil
		}
	}
	return 0, p, nil
}

// distances computes the length of the shortest path from p to every
// reachable location, or -1 for unreachable ones.
func (m *Map) distances(from grid.Point) *grid.Grid[int] {
	w, h := m.g.Size()
	// same size as m.g, cannot fail
	dist, _ := grid.New[int](w, h)
	dist.Fill(-1)
	dist.Set(from, 0)
	queue := []grid.Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		d, _ := dist.At(p)
		for dir := North; dir <= East; dir++ {
			next := p.Add(moves[dir])
			if t, err := m.g.At(next); err != nil || t == Wall || t == Unknown {
				continue
			}
			if v, _ := dist.At(next); v >= 0 {
				continue
			}
			dist.Set(next, d+1)
			queue = append(queue, next)
		}
	}
	return dist
}

// ShortestPath returns the minimum number of moves required to go from the
// starting position to the oxygen system.
func (m *Map) ShortestPath() (int, error) {
	if !m.found {
		return 0, ErrNoOxygen
	}
	d, _ := m.distances(m.start).At(m.oxygen)
	return d, nil
}

// FillTime returns the number of minutes it takes for oxygen to fill the
// whole maze, given that it spreads to adjacent locations in one minute.
func (m *Map) FillTime() (int, error) {
	if !m.found {
		return 0, ErrNoOxygen
	}
	dist := m.distances(m.oxygen)
	longest := 0
	w, h := dist.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if d, _ := dist.At(grid.Point{X: x, Y: y}); d > longest {
				longest = d
			}
		}
	}
	return longest, nil
}

// Render draws the explored part of the maze. The starting position is
// marked with a 'D'.
func (m *Map) Render() string {
	min, max, ok := m.g.Bounds(func(t Tile) bool { return t != Unknown })
	if !ok {
		return ""
	}
	s := []byte(m.g.RenderRect(min, max, Tile.Rune))
	s[(m.start.Y-min.Y)*(max.X-min.X+2)+m.start.X-min.X] = 'D'
	return string(s)
}
