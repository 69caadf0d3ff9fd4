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

package vm

const maxInt = int(^uint(0) >> 1)

// GrowFunc computes the new length of a Memory that currently holds cur cells
// and needs at least need cells. Returning less than need is the same as
// returning need.
type GrowFunc func(cur, need int) int

// GrowDouble is the default growth strategy: memory grows geometrically so
// that programs walking up through memory trigger O(log n) reallocations.
func GrowDouble(cur, need int) int {
	n := cur
	if n < 64 {
		n = 64
	}
	for n < need && n <= maxInt/2 {
		n *= 2
	}
	return n
}

// GrowExact grows memory to exactly the required size.
func GrowExact(_, need int) int {
	return need
}

// sparseGap is how far beyond twice the current length a write may land and
// still grow the dense cell slice. Writes further away go to the sparse store.
const sparseGap = 1 << 16

// Memory is the intcode program memory. It behaves as an unbounded array of
// cells indexed from 0: cells beyond Len read as 0 and writing to them grows
// the backing slice.
//
// Writes far beyond the end of the slice are kept in a sparse map instead, so
// that a program writing at address 1<<40 costs one map entry and not 8 TiB.
type Memory struct {
	cells []Cell
	far   map[Cell]Cell
	grow  GrowFunc
	max   int
}

func newMemory(image []Cell) Memory {
	cells := make([]Cell, len(image))
	copy(cells, image)
	return Memory{cells: cells, grow: GrowDouble}
}

// NewMemory returns a Memory that uses cells as its initial content. The slice
// is not copied.
func NewMemory(cells []Cell) *Memory {
	return &Memory{cells: cells, grow: GrowDouble}
}

// Len returns the number of cells in the dense part of memory.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Cells returns the dense part of memory. Changes to the returned slice are
// reflected in memory until the next growth. Cells held in the sparse store
// are not included.
func (m *Memory) Cells() []Cell {
	return m.cells
}

// Read returns the value of the cell at addr.
func (m *Memory) Read(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, addrError{IllegalAddress, addr}
	}
	if addr < Cell(len(m.cells)) {
		return m.cells[addr], nil
	}
	return m.far[addr], nil
}

// Write stores v at addr, growing memory as needed.
func (m *Memory) Write(addr, v Cell) error {
	if addr < 0 {
		return addrError{IllegalAddress, addr}
	}
	if addr < Cell(len(m.cells)) {
		m.cells[addr] = v
		return nil
	}
	if m.max > 0 && addr >= Cell(m.max) {
		return addrError{MemoryLimit, addr}
	}
	if uint64(addr) >= uint64(2*len(m.cells)+sparseGap) {
		if v == 0 {
			delete(m.far, addr)
			return nil
		}
		if m.far == nil {
			m.far = make(map[Cell]Cell)
		}
		m.far[addr] = v
		return nil
	}
	m.ensure(int(addr) + 1)
	m.cells[addr] = v
	return nil
}

// ensure grows the dense slice to at least need cells and moves the sparse
// cells it now covers into it.
func (m *Memory) ensure(need int) {
	grow := m.grow
	if grow == nil {
		grow = GrowDouble
	}
	n := grow(len(m.cells), need)
	if n < need {
		n = need
	}
	if m.max > 0 && n > m.max {
		n = m.max
	}
	l := len(m.cells)
	if n <= cap(m.cells) {
		m.cells = m.cells[:n]
		clear(m.cells[l:])
	} else {
		t := make([]Cell, n)
		copy(t, m.cells)
		m.cells = t
	}
	for addr, v := range m.far {
		if addr < Cell(n) {
			m.cells[addr] = v
			delete(m.far, addr)
		}
	}
}
