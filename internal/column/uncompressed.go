// Copyright 2020-2021 Dolthub, Inc.
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

package column

// Uncompressed is spec.md §4.2's plain dynamic array of option<T>.
type Uncompressed[T any] struct {
	cells []Cell[T]
}

// NewUncompressed returns an empty Uncompressed encoder.
func NewUncompressed[T any]() *Uncompressed[T] {
	return &Uncompressed[T]{}
}

func (u *Uncompressed[T]) Insert(c Cell[T]) {
	u.cells = append(u.cells, c)
}

func (u *Uncompressed[T]) Len() int { return len(u.cells) }

func (u *Uncompressed[T]) Iter() func() (Cell[T], bool) {
	i := 0
	return func() (Cell[T], bool) {
		if i >= len(u.cells) {
			return Cell[T]{}, false
		}
		c := u.cells[i]
		i++
		return c, true
	}
}
