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

import "github.com/pilosa/pilosa/roaring"

// Bitmap is spec.md §4.2's dictionary-of-distinct-values encoding: each
// distinct non-null value seen gets a presence bitvector over row index.
// A roaring.Bitmap already represents "set of indices" sparsely, so there
// is no need to hand-maintain the back-fill-with-zeros step the spec
// describes for a dense bitvector — an index simply absent from the set
// reads as 0.
type Bitmap[T comparable] struct {
	order  []T               // dictionary in first-seen order, for a stable iteration scan
	bitmap map[T]*roaring.Bitmap
	n      int
}

// NewBitmap returns an empty Bitmap encoder.
func NewBitmap[T comparable]() *Bitmap[T] {
	return &Bitmap[T]{bitmap: make(map[T]*roaring.Bitmap)}
}

func (b *Bitmap[T]) Insert(c Cell[T]) {
	idx := uint64(b.n)
	b.n++
	if !c.Valid {
		return
	}
	bm, ok := b.bitmap[c.V]
	if !ok {
		bm = roaring.NewBitmap()
		b.bitmap[c.V] = bm
		b.order = append(b.order, c.V)
	}
	bm.Add(idx)
}

func (b *Bitmap[T]) Len() int { return b.n }

func (b *Bitmap[T]) Iter() func() (Cell[T], bool) {
	i := 0
	return func() (Cell[T], bool) {
		if i >= b.n {
			return Cell[T]{}, false
		}
		idx := uint64(i)
		i++
		for _, v := range b.order {
			if b.bitmap[v].Contains(idx) {
				return Cell[T]{Valid: true, V: v}, true
			}
		}
		return Cell[T]{}, true
	}
}
