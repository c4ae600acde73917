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

// Package value implements the tagged Value universe of spec.md §3.1: a
// sum type over Number, String, Boolean, Null, Undefined, Tuple, and
// Closure, rather than a subclass hierarchy (spec.md §9's design note).
package value

import (
	"fmt"
	"math"

	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/alexdb/internal/parser/ast"
)

// Kind tags a Value's active field.
type Kind int

const (
	Number Kind = iota
	String
	Boolean
	Null
	Undefined
	Tuple
	Closure
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Undefined:
		return "undefined"
	case Tuple:
		return "tuple"
	case Closure:
		return "closure"
	default:
		return "unknown"
	}
}

// Frame is one layer of a lexically-scoped environment: an ordered list of
// (name, value) bindings. Lookup within a frame scans most-recent-first so
// a later binding of the same name shadows an earlier one.
type Frame struct {
	names  []string
	values []Value
}

// NewFrame returns an empty Frame.
func NewFrame() *Frame {
	return &Frame{}
}

// Push adds a binding, shadowing any earlier binding of the same name
// within this frame.
func (f *Frame) Push(name string, v Value) {
	f.names = append(f.names, name)
	f.values = append(f.values, v)
}

// Get looks up name from the most recently pushed binding backwards.
func (f *Frame) Get(name string) (Value, bool) {
	for i := len(f.names) - 1; i >= 0; i-- {
		if f.names[i] == name {
			return f.values[i], true
		}
	}
	return Value{}, false
}

// Each visits every binding in this frame, oldest first.
func (f *Frame) Each(fn func(name string, v Value)) {
	for i, name := range f.names {
		fn(name, f.values[i])
	}
}

// Clone deep-copies a Frame so a later mutation of the original (via a
// further Push on the same frame) cannot affect the clone. This is what
// FunExpr uses to snapshot the defining environment into a Closure.
func (f *Frame) Clone() *Frame {
	clone := &Frame{
		names:  append([]string(nil), f.names...),
		values: make([]Value, len(f.values)),
	}
	for i, v := range f.values {
		clone.values[i] = v.Clone()
	}
	return clone
}

// ClosureVal is the captured state of a function expression: a flattened
// snapshot of the defining environment (one frame, preserving the last
// binding per name), its formal parameters, and its body.
type ClosureVal struct {
	Captured *Frame
	Params   []string
	Body     ast.Expr
}

// Value is a tagged union over spec.md §3.1's value universe.
type Value struct {
	kind    Kind
	num     float64
	str     string
	boolean bool
	tuple   []Value
	closure *ClosureVal
}

func NewNumber(f float64) Value    { return Value{kind: Number, num: f} }
func NewString(s string) Value     { return Value{kind: String, str: s} }
func NewBoolean(b bool) Value      { return Value{kind: Boolean, boolean: b} }
func NewNull() Value               { return Value{kind: Null} }
func NewUndefined() Value          { return Value{kind: Undefined} }
func NewTuple(elems []Value) Value { return Value{kind: Tuple, tuple: elems} }
func NewClosure(c *ClosureVal) Value {
	return Value{kind: Closure, closure: c}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNumber() bool    { return v.kind == Number }
func (v Value) IsString() bool    { return v.kind == String }
func (v Value) IsBoolean() bool   { return v.kind == Boolean }
func (v Value) IsNull() bool      { return v.kind == Null }
func (v Value) IsUndefined() bool { return v.kind == Undefined }
func (v Value) IsTuple() bool     { return v.kind == Tuple }
func (v Value) IsClosure() bool   { return v.kind == Closure }

// Number returns the numeric payload; only meaningful when Kind()==Number.
func (v Value) Number() float64 { return v.num }

// Str returns the string payload; only meaningful when Kind()==String.
func (v Value) Str() string { return v.str }

// Bool returns the boolean payload; only meaningful when Kind()==Boolean.
func (v Value) Bool() bool { return v.boolean }

// TupleElems returns the tuple payload; only meaningful when Kind()==Tuple.
func (v Value) TupleElems() []Value { return v.tuple }

// ClosureVal returns the closure payload; only meaningful when
// Kind()==Closure.
func (v Value) ClosureVal() *ClosureVal { return v.closure }

// Clone deep-copies a Value. Tuples clone every element; Closures clone
// their captured frame (so later mutation of the frame the closure was
// built from cannot reach back into the closure) but share the (immutable)
// AST body.
func (v Value) Clone() Value {
	switch v.kind {
	case Tuple:
		elems := make([]Value, len(v.tuple))
		for i, e := range v.tuple {
			elems[i] = e.Clone()
		}
		return Value{kind: Tuple, tuple: elems}
	case Closure:
		return Value{kind: Closure, closure: &ClosureVal{
			Captured: v.closure.Captured.Clone(),
			Params:   append([]string(nil), v.closure.Params...),
			Body:     v.closure.Body,
		}}
	default:
		return v
	}
}

// Falsy reports whether v is in the falsy set of spec.md §4.1: false, 0,
// NaN, "", Null, Undefined.
func (v Value) Falsy() bool {
	switch v.kind {
	case Boolean:
		return !v.boolean
	case Number:
		return v.num == 0 || math.IsNaN(v.num)
	case String:
		return v.str == ""
	case Null, Undefined:
		return true
	default:
		return false
	}
}

// Truthy is the complement of Falsy.
func (v Value) Truthy() bool { return !v.Falsy() }

// StrictEqual implements `===`: identical tags, no coercion.
func (v Value) StrictEqual(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == o.num
	case String:
		return v.str == o.str
	case Boolean:
		return v.boolean == o.boolean
	case Null, Undefined:
		return true
	case Tuple:
		// Tuple equality is structural (deep, order-sensitive). Rather than
		// hand-write a recursive deep-equal, hash both sides' payload (via
		// Value.Hash, below) and compare hashes.
		h1, err1 := v.Hash()
		h2, err2 := o.Hash()
		if err1 != nil || err2 != nil {
			return false
		}
		return h1 == h2
	case Closure:
		return v.closure == o.closure
	default:
		return false
	}
}

// Hash implements hashstructure.Hashable. Value's fields are unexported,
// so without this method hashstructure would see a struct with nothing to
// hash; this gives it an explicit, per-Kind payload to hash instead, and
// lets it recurse correctly into a Tuple's elements (each one a Value,
// which again satisfies Hashable).
func (v Value) Hash() (uint64, error) {
	switch v.kind {
	case Number:
		return hashstructure.Hash(struct {
			Kind Kind
			Num  float64
		}{v.kind, v.num}, nil)
	case String:
		return hashstructure.Hash(struct {
			Kind Kind
			Str  string
		}{v.kind, v.str}, nil)
	case Boolean:
		return hashstructure.Hash(struct {
			Kind Kind
			Bool bool
		}{v.kind, v.boolean}, nil)
	case Null, Undefined:
		return hashstructure.Hash(v.kind, nil)
	case Tuple:
		return hashstructure.Hash(struct {
			Kind  Kind
			Elems []Value
		}{v.kind, v.tuple}, nil)
	case Closure:
		return hashstructure.Hash(struct {
			Kind Kind
			Ptr  string
		}{v.kind, fmt.Sprintf("%p", v.closure)}, nil)
	default:
		return 0, nil
	}
}

// GoString renders a Value for debugging (not the pretty-printing
// collaborator of spec.md §1, which is out of scope).
func (v Value) GoString() string {
	switch v.kind {
	case Number:
		return fmt.Sprintf("Number(%v)", v.num)
	case String:
		return fmt.Sprintf("String(%q)", v.str)
	case Boolean:
		return fmt.Sprintf("Boolean(%v)", v.boolean)
	case Null:
		return "Null"
	case Undefined:
		return "Undefined"
	case Tuple:
		return fmt.Sprintf("Tuple(%v)", v.tuple)
	case Closure:
		return "Closure(...)"
	default:
		return "?"
	}
}
