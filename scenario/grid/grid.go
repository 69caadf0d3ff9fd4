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

// Package grid provides the two dimensional boards used by the intcode
// scenarios.
//
// A Grid is the single owner of its cells: callers pass coordinates around,
// never references to cells.
package grid

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Errors
var (
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	ErrSize        = errors.New("invalid grid size")
)

const maxInt = int(^uint(0) >> 1)

// Point is a pair of grid coordinates. X grows to the right and Y downwards.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Grid is a W×H array of cells of type T.
type Grid[T any] struct {
	w, h  int
	cells []T
}

// New returns a new w×h grid with all cells set to the zero value of T. It
// returns ErrSize if either dimension is negative or if the grid would have
// more cells than an int can count.
func New[T any](w, h int) (*Grid[T], error) {
	if w < 0 || h < 0 || (w > 0 && h > maxInt/w) {
		return nil, errors.Wrapf(ErrSize, "%dx%d", w, h)
	}
	return &Grid[T]{w, h, make([]T, w*h)}, nil
}

// Size returns the width and height of the grid.
func (g *Grid[T]) Size() (w, h int) {
	return g.w, g.h
}

// In returns true if p is within the grid bounds.
func (g *Grid[T]) In(p Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

func (g *Grid[T]) oob(p Point) error {
	return errors.Wrapf(ErrOutOfBounds, "%v in %dx%d grid", p, g.w, g.h)
}

// At returns the value of the cell at p.
func (g *Grid[T]) At(p Point) (T, error) {
	if !g.In(p) {
		var zero T
		return zero, g.oob(p)
	}
	return g.cells[p.Y*g.w+p.X], nil
}

// Set sets the value of the cell at p.
func (g *Grid[T]) Set(p Point, v T) error {
	if !g.In(p) {
		return g.oob(p)
	}
	g.cells[p.Y*g.w+p.X] = v
	return nil
}

// Fill sets all cells to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Count returns the number of cells for which f returns true.
func (g *Grid[T]) Count(f func(T) bool) int {
	n := 0
	for _, c := range g.cells {
		if f(c) {
			n++
		}
	}
	return n
}

// Bounds returns the smallest rectangle, corners included, that contains all
// the cells for which f returns true. ok is false if there are no such cells.
func (g *Grid[T]) Bounds(f func(T) bool) (min, max Point, ok bool) {
	min = Point{g.w, g.h}
	max = Point{-1, -1}
	for i, c := range g.cells {
		if !f(c) {
			continue
		}
		x, y := i%g.w, i/g.w
		if x < min.X {
			min.X = x
		}
		if y < min.Y {
			min.Y = y
		}
		if x > max.X {
			max.X = x
		}
		if y > max.Y {
			max.Y = y
		}
		ok = true
	}
	return min, max, ok
}

// Render draws the grid, one line per row, using f to draw each cell.
func (g *Grid[T]) Render(f func(T) rune) string {
	return g.RenderRect(Point{0, 0}, Point{g.w - 1, g.h - 1}, f)
}

// RenderRect draws the rectangle of cells between min and max, both
// included. The rectangle is clipped to the grid.
func (g *Grid[T]) RenderRect(min, max Point, f func(T) rune) string {
	if min.X < 0 {
		min.X = 0
	}
	if min.Y < 0 {
		min.Y = 0
	}
	if max.X >= g.w {
		max.X = g.w - 1
	}
	if max.Y >= g.h {
		max.Y = g.h - 1
	}
	if max.X < min.X || max.Y < min.Y {
		return ""
	}
	var b strings.Builder
	b.Grow((max.X - min.X + 2) * (max.Y - min.Y + 1))
	for y := min.Y; y <= max.Y; y++ {
		for _, c := range g.cells[y*g.w+min.X : y*g.w+max.X+1] {
			b.WriteRune(f(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
