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

import (
	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/parser/ast"
	"github.com/dolthub/alexdb/internal/value"
)

// numberColumn adapts an Encoder[float64] to the value.Value-speaking
// Column interface.
type numberColumn struct {
	enc     ast.Encoding
	encoder Encoder[float64]
}

func newNumberColumn(enc ast.Encoding, encoder Encoder[float64]) *numberColumn {
	return &numberColumn{enc: enc, encoder: encoder}
}

func (c *numberColumn) Type() ast.ColType     { return ast.ColNumber }
func (c *numberColumn) Encoding() ast.Encoding { return c.enc }
func (c *numberColumn) Len() int               { return c.encoder.Len() }

func (c *numberColumn) Insert(v value.Value) error {
	if v.IsNull() {
		c.encoder.Insert(Cell[float64]{})
		return nil
	}
	if !v.IsNumber() {
		return dberrors.ErrWrongValueType.New(v.Kind().String(), "<column>", ast.ColNumber.String())
	}
	c.encoder.Insert(Cell[float64]{Valid: true, V: v.Number()})
	return nil
}

func (c *numberColumn) Iter() func() (value.Value, bool) {
	next := c.encoder.Iter()
	return func() (value.Value, bool) {
		cell, ok := next()
		if !ok {
			return value.Value{}, false
		}
		if !cell.Valid {
			return value.NewNull(), true
		}
		return value.NewNumber(cell.V), true
	}
}

func (c *numberColumn) Recompress(enc ast.Encoding) (Column, error) {
	if !ValidEncodings(ast.ColNumber, enc) {
		return nil, dberrors.ErrInvalidEncoding.New(enc.String(), ast.ColNumber.String())
	}
	fresh := newNumberColumn(enc, newNumberEncoder(enc))
	next := c.encoder.Iter()
	for {
		cell, ok := next()
		if !ok {
			break
		}
		fresh.encoder.Insert(cell)
	}
	return fresh, nil
}

// stringColumn adapts an Encoder[string].
type stringColumn struct {
	enc     ast.Encoding
	encoder Encoder[string]
}

func newStringColumn(enc ast.Encoding, encoder Encoder[string]) *stringColumn {
	return &stringColumn{enc: enc, encoder: encoder}
}

func (c *stringColumn) Type() ast.ColType     { return ast.ColString }
func (c *stringColumn) Encoding() ast.Encoding { return c.enc }
func (c *stringColumn) Len() int               { return c.encoder.Len() }

func (c *stringColumn) Insert(v value.Value) error {
	if v.IsNull() {
		c.encoder.Insert(Cell[string]{})
		return nil
	}
	if !v.IsString() {
		return dberrors.ErrWrongValueType.New(v.Kind().String(), "<column>", ast.ColString.String())
	}
	c.encoder.Insert(Cell[string]{Valid: true, V: v.Str()})
	return nil
}

func (c *stringColumn) Iter() func() (value.Value, bool) {
	next := c.encoder.Iter()
	return func() (value.Value, bool) {
		cell, ok := next()
		if !ok {
			return value.Value{}, false
		}
		if !cell.Valid {
			return value.NewNull(), true
		}
		return value.NewString(cell.V), true
	}
}

func (c *stringColumn) Recompress(enc ast.Encoding) (Column, error) {
	if !ValidEncodings(ast.ColString, enc) {
		return nil, dberrors.ErrInvalidEncoding.New(enc.String(), ast.ColString.String())
	}
	fresh := newStringColumn(enc, newStringEncoder(enc))
	next := c.encoder.Iter()
	for {
		cell, ok := next()
		if !ok {
			break
		}
		fresh.encoder.Insert(cell)
	}
	return fresh, nil
}

// boolColumn adapts an Encoder[bool].
type boolColumn struct {
	enc     ast.Encoding
	encoder Encoder[bool]
}

func newBoolColumn(enc ast.Encoding, encoder Encoder[bool]) *boolColumn {
	return &boolColumn{enc: enc, encoder: encoder}
}

func (c *boolColumn) Type() ast.ColType     { return ast.ColBoolean }
func (c *boolColumn) Encoding() ast.Encoding { return c.enc }
func (c *boolColumn) Len() int               { return c.encoder.Len() }

func (c *boolColumn) Insert(v value.Value) error {
	if v.IsNull() {
		c.encoder.Insert(Cell[bool]{})
		return nil
	}
	if !v.IsBoolean() {
		return dberrors.ErrWrongValueType.New(v.Kind().String(), "<column>", ast.ColBoolean.String())
	}
	c.encoder.Insert(Cell[bool]{Valid: true, V: v.Bool()})
	return nil
}

func (c *boolColumn) Iter() func() (value.Value, bool) {
	next := c.encoder.Iter()
	return func() (value.Value, bool) {
		cell, ok := next()
		if !ok {
			return value.Value{}, false
		}
		if !cell.Valid {
			return value.NewNull(), true
		}
		return value.NewBoolean(cell.V), true
	}
}

func (c *boolColumn) Recompress(enc ast.Encoding) (Column, error) {
	if !ValidEncodings(ast.ColBoolean, enc) {
		return nil, dberrors.ErrInvalidEncoding.New(enc.String(), ast.ColBoolean.String())
	}
	fresh := newBoolColumn(enc, newBoolEncoder(enc))
	next := c.encoder.Iter()
	for {
		cell, ok := next()
		if !ok {
			break
		}
		fresh.encoder.Insert(cell)
	}
	return fresh, nil
}
