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

package grid_test

import (
	"testing"

	"github.com/db47h/intcode/scenario/grid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dots(v int) rune {
	if v != 0 {
		return '#'
	}
	return '.'
}

func TestGrid(t *testing.T) {
	g, err := grid.New[int](3, 2)
	require.NoError(t, err)
	w, h := g.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)

	require.NoError(t, g.Set(grid.Point{2, 1}, 7))
	v, err := g.At(grid.Point{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	v, err = g.At(grid.Point{0, 1})
	require.NoError(t, err)
	assert.Zero(t, v)

	for _, p := range []grid.Point{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		assert.False(t, g.In(p), "%v", p)
		_, err = g.At(p)
		assert.Equal(t, grid.ErrOutOfBounds, errors.Cause(err), "%v", p)
		assert.Equal(t, grid.ErrOutOfBounds, errors.Cause(g.Set(p, 1)), "%v", p)
	}
	_, err = g.At(grid.Point{3, 0})
	assert.EqualError(t, err, "(3,0) in 3x2 grid: coordinates out of bounds")

	assert.Equal(t, 1, g.Count(func(v int) bool { return v != 0 }))
	assert.Equal(t, "...\n..#\n", g.Render(dots))

	min, max, ok := g.Bounds(func(v int) bool { return v != 0 })
	assert.True(t, ok)
	assert.Equal(t, grid.Point{2, 1}, min)
	assert.Equal(t, grid.Point{2, 1}, max)
	assert.Equal(t, "#\n", g.RenderRect(min, max, func(v int) rune { return '#' }))
	assert.Equal(t, ".#\n", g.RenderRect(grid.Point{1, 1}, grid.Point{5, 5}, dots))
	assert.Empty(t, g.RenderRect(grid.Point{2, 2}, grid.Point{1, 1}, nil))

	g.Fill(1)
	assert.Equal(t, 6, g.Count(func(v int) bool { return v == 1 }))

	g, err = grid.New[int](2, 2)
	require.NoError(t, err)
	_, _, ok = g.Bounds(func(v int) bool { return v != 0 })
	assert.False(t, ok)
}

func TestNew_size(t *testing.T) {
	g, err := grid.New[int](0, 0)
	require.NoError(t, err)
	assert.Empty(t, g.Render(dots))

	maxInt := int(^uint(0) >> 1)
	for _, sz := range [][2]int{{-1, 10}, {10, -1}, {maxInt/2 + 1, 2}} {
		_, err := grid.New[int](sz[0], sz[1])
		assert.Equal(t, grid.ErrSize, errors.Cause(err), "%v", sz)
	}
	_, err = grid.New[int](-1, 10)
	assert.EqualError(t, err, "-1x10: invalid grid size")
}

func TestPoint(t *testing.T) {
	assert.Equal(t, grid.Point{1, 3}, grid.Point{2, 1}.Add(grid.Point{-1, 2}))
	assert.Equal(t, "(1,-2)", grid.Point{1, -2}.String())
}
