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

// Package image loads and saves intcode program images.
//
// The text format is a list of base 10 integers separated by commas and/or
// white space:
//
//	1,9,10,3,
//	2,3,11,0,
//	99,
//	30,40,50
//
// Empty fields (like a trailing comma) are ignored.
package image

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func isSep(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// scanCells is a bufio.SplitFunc that returns each field of the image.
func scanCells(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if !isSep(r) {
			break
		}
	}
	for width, i := 0, start; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if isSep(r) {
			return i + width, data[start:i], nil
		}
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// Parse reads a program image from r.
func Parse(r io.Reader) ([]vm.Cell, error) {
	var img []vm.Cell
	s := bufio.NewScanner(r)
	s.Split(scanCells)
	for s.Scan() {
		v, err := strconv.ParseInt(s.Text(), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", len(img))
		}
		img = append(img, vm.Cell(v))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return img, nil
}

// Load loads an image from file fileName.
func Load(fileName string) ([]vm.Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// Write writes cells to w in the comma separated format, followed by a new
// line.
func Write(w io.Writer, cells []vm.Cell) error {
	ew := ici.NewErrWriter(w)
	b := make([]byte, 0, 21)
	for i, c := range cells {
		b = b[:0]
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(c), 10)
		ew.Write(b)
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}

// Save writes cells to the named file, creating or truncating it.
func Save(fileName string, cells []vm.Cell) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "Save")
	}
	err = Write(f, cells)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, "Save")
}
