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

// Package column implements spec.md §4.2's five pluggable column
// encodings over option<T> sequences (Uncompressed, RunLength, Bitmap,
// Xor, BoolPacked), each satisfying insert + lazy forward iterator +
// length, and a typed adapter (TypedColumn) that lets internal/table hold
// a uniform Column handle regardless of the declared element type —
// spec.md §9's "sum type over (element type × encoding), not deep
// inheritance" design note.
package column

import (
	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/parser/ast"
	"github.com/dolthub/alexdb/internal/value"
)

// Cell is one option<T> slot: Valid false means the Null case.
type Cell[T any] struct {
	Valid bool
	V     T
}

// Encoder is the three-operation interface every encoding implements,
// parameterized over the element type it stores.
type Encoder[T any] interface {
	Insert(c Cell[T])
	// Iter returns a lazy cursor: each call advances and returns the next
	// cell, with ok false once exhausted. Implementations must not
	// materialize the whole sequence when Iter is called.
	Iter() func() (Cell[T], bool)
	Len() int
}

// Column is the encoding-erased, type-erased handle internal/table holds:
// it speaks value.Value at its boundary and knows its own declared type
// and current encoding, so COMPRESS and mixed-type row assembly don't
// need a type switch at every call site.
type Column interface {
	Type() ast.ColType
	Encoding() ast.Encoding
	Len() int
	Insert(v value.Value) error
	// Iter returns a lazy cursor over this column's values in insertion
	// order, each as a value.Value (NewNull() for the None case).
	Iter() func() (value.Value, bool)
	// Recompress materializes the column and returns a fresh Column of
	// the same declared type storing the same option<T> sequence under
	// enc. N and order are preserved.
	Recompress(enc ast.Encoding) (Column, error)
}

// ValidEncodings lists the (type, encoding) pairs spec.md §3.2 allows.
func ValidEncodings(t ast.ColType, enc ast.Encoding) bool {
	switch enc {
	case ast.Uncompressed, ast.Bitmap, ast.RunLength:
		return true
	case ast.Xor:
		return t == ast.ColNumber
	case ast.BoolPacked:
		return t == ast.ColBoolean
	default:
		return false
	}
}

// DefaultEncoding returns the encoding CREATE TABLE uses for t when no
// encoding token follows the column type: Bool-packed for Boolean,
// Uncompressed otherwise.
func DefaultEncoding(t ast.ColType) ast.Encoding {
	if t == ast.ColBoolean {
		return ast.BoolPacked
	}
	return ast.Uncompressed
}

// New constructs an empty Column of the given declared type and encoding.
func New(t ast.ColType, enc ast.Encoding) (Column, error) {
	if !ValidEncodings(t, enc) {
		return nil, dberrors.ErrInvalidEncoding.New(enc.String(), t.String())
	}
	switch t {
	case ast.ColNumber:
		return newNumberColumn(enc, newNumberEncoder(enc)), nil
	case ast.ColString:
		return newStringColumn(enc, newStringEncoder(enc)), nil
	case ast.ColBoolean:
		return newBoolColumn(enc, newBoolEncoder(enc)), nil
	default:
		return nil, dberrors.ErrInvalidEncoding.New(enc.String(), t.String())
	}
}

func newNumberEncoder(enc ast.Encoding) Encoder[float64] {
	switch enc {
	case ast.Uncompressed:
		return NewUncompressed[float64]()
	case ast.RunLength:
		return NewRunLength[float64]()
	case ast.Bitmap:
		return NewBitmap[float64]()
	case ast.Xor:
		return NewXor()
	default:
		return NewUncompressed[float64]()
	}
}

func newStringEncoder(enc ast.Encoding) Encoder[string] {
	switch enc {
	case ast.RunLength:
		return NewRunLength[string]()
	case ast.Bitmap:
		return NewBitmap[string]()
	default:
		return NewUncompressed[string]()
	}
}

func newBoolEncoder(enc ast.Encoding) Encoder[bool] {
	switch enc {
	case ast.Uncompressed:
		return NewUncompressed[bool]()
	case ast.RunLength:
		return NewRunLength[bool]()
	case ast.Bitmap:
		return NewBitmap[bool]()
	default:
		return NewBoolPacked()
	}
}
