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
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// screen draws full frames on a VT100 compatible terminal.
type screen struct {
	w    *bufio.Writer
	size func() (w, h int)
}

func newScreen(f *os.File) *screen {
	return &screen{
		w:    bufio.NewWriter(f),
		size: consoleSize(f),
	}
}

// consoleSize returns a function reporting the size of the terminal attached
// to f, or 0, 0 if f is not a terminal.
func consoleSize(f *os.File) func() (int, int) {
	return func() (int, int) {
		w, h, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return 0, 0
		}
		return w, h
	}
}

// draw clears the screen and prints frame, clipped to the terminal size.
func (s *screen) draw(frame string, status string) error {
	cols, rows := s.size()
	io.WriteString(s.w, "\x1B[H\x1B[2J")
	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")
	if rows > 1 && len(lines) > rows-1 {
		lines = lines[:rows-1]
	}
	for _, l := range lines {
		if cols > 0 && len(l) > cols {
			l = l[:cols]
		}
		io.WriteString(s.w, l)
		io.WriteString(s.w, "\r\n")
	}
	io.WriteString(s.w, status)
	return s.w.Flush()
}
