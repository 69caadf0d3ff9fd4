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

// Package amplifier implements chains of intcode amplifiers.
//
// Each stage of a Circuit runs its own copy of the amplifier program,
// configured with a phase setting. The first stage receives a 0 signal; every
// stage feeds its output to the next one. In feedback mode, the output of the
// last stage is fed back to the first stage until the last stage halts.
package amplifier

import (
	"runtime"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Circuit is a chain of amplifiers.
type Circuit struct {
	stages []*vm.Instance
	phases []vm.Cell
	log    log.Logger
}

// Option configures a Circuit.
type Option func(*Circuit) error

// Logger sets the circuit logger.
func Logger(l log.Logger) Option {
	return func(c *Circuit) error {
		c.log = l
		return nil
	}
}

// New returns a new Circuit with one stage per phase setting. Stages do not
// share memory.
func New(program []vm.Cell, phases []vm.Cell, opts ...Option) (*Circuit, error) {
	if len(phases) == 0 {
		return nil, errors.New("amplifier: empty circuit")
	}
	c := &Circuit{phases: slices.Clone(phases)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	for _, p := range phases {
		i, err := vm.New(program, vm.PhaseSetting(p))
		if err != nil {
			return nil, err
		}
		c.stages = append(c.stages, i)
	}
	return c, nil
}

// Phases returns the phase settings of each stage.
func (c *Circuit) Phases() []vm.Cell {
	return slices.Clone(c.phases)
}

// Run runs the circuit until the last stage halts and returns the last signal
// it has output. Halted stages pass on their last output.
func (c *Circuit) Run() (vm.Cell, error) {
	var signal vm.Cell
	last := c.stages[len(c.stages)-1]
	if last.Halted() {
		return last.Output(), last.Err()
	}
	for round := 1; !last.Halted(); round++ {
		for k, s := range c.stages {
			if !s.Halted() {
				if err := s.Run(signal, true); err != nil {
					return 0, errors.Wrapf(err, "amplifier %d", k)
				}
			}
			signal = s.Output()
		}
		if c.log != nil {
			c.log.Debug("Amplifier round", "round", round, "signal", signal, "phases", c.phases)
		}
	}
	return signal, nil
}

// MaxSignal tries every permutation of the given phase settings and returns
// the highest signal produced by a circuit together with the corresponding
// phase settings. If several permutations produce the same signal, the first
// one in lexicographic order wins.
//
// Circuits are run concurrently.
func MaxSignal(program []vm.Cell, phases []vm.Cell) (vm.Cell, []vm.Cell, error) {
	if len(phases) == 0 {
		return 0, nil, errors.New("amplifier: no phase settings")
	}
	var (
		g      errgroup.Group
		mu     sync.Mutex
		best   vm.Cell
		bestN  = -1
		bestPh []vm.Cell
	)
	g.SetLimit(runtime.GOMAXPROCS(0))
	p := slices.Clone(phases)
	slices.Sort(p)
	for n := 0; ; n++ {
		perm := slices.Clone(p)
		g.Go(func() error {
			c, err := New(program, perm)
			if err != nil {
				return err
			}
			s, err := c.Run()
			if err != nil {
				return errors.Wrapf(err, "phases %v", perm)
			}
			mu.Lock()
			defer mu.Unlock()
			if bestN < 0 || s > best || (s == best && n < bestN) {
				best, bestN, bestPh = s, n, perm
			}
			return nil
		})
		if !nextPermutation(p) {
			break
		}
	}
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}
	return best, bestPh, nil
}

// nextPermutation rearranges p into the next lexicographic permutation. It
// returns false if p is the last permutation.
func nextPermutation(p []vm.Cell) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}
