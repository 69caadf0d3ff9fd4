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

// Collect runs i with pause-on-output until it halts and returns all the
// values it has output, in order. The same input value is supplied to every
// IN instruction executed.
//
// If i has already executed a HALT instruction, Collect returns a nil slice
// and a nil error.
func Collect(i *Instance, input Cell) ([]Cell, error) {
	var out []Cell
	if i.Halted() && i.Err() == nil {
		return out, nil
	}
	for {
		if err := i.Run(input, true); err != nil {
			return out, err
		}
		if i.Finished() {
			return out, nil
		}
		out = append(out, i.Output())
	}
}
