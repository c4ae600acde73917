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

// Package coerce implements the total coercion functions of spec.md §7,
// layering alexdb's Null/Undefined/empty-string special cases over
// github.com/spf13/cast's loose-typed conversions for the cases that
// overlap with ordinary Go-value coercion (numeric parsing of non-empty
// strings, string rendering of numbers and booleans).
package coerce

import (
	"math"
	"strconv"

	"github.com/spf13/cast"

	"github.com/dolthub/alexdb/internal/value"
)

// ToNumber implements spec.md §7's Number-coercion column:
// Null -> 0, Undefined -> NaN, Boolean -> 1/0, String: empty -> 0,
// unparseable -> NaN, else parsed as a double. Tuple and Closure have no
// numeric coercion in spec.md; this returns NaN for them, the same
// "no sensible result" sentinel used for unparseable strings.
func ToNumber(v value.Value) float64 {
	switch v.Kind() {
	case value.Number:
		return v.Number()
	case value.Null:
		return 0
	case value.Undefined:
		return math.NaN()
	case value.Boolean:
		if v.Bool() {
			return 1
		}
		return 0
	case value.String:
		s := v.Str()
		if s == "" {
			return 0
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// ToStringVal implements spec.md §7's String-coercion column: Number via
// standard double-to-string, Null -> "null", Undefined -> "undefined",
// Boolean -> "true"/"false". Tuple and Closure are rendered via their
// GoString debug form, since spec.md does not define a string coercion
// for them and they cannot appear in a calculated/const/aggregate column
// of declared type str without already being a string.
func ToStringVal(v value.Value) string {
	switch v.Kind() {
	case value.String:
		return v.Str()
	case value.Number:
		return formatNumber(v.Number())
	case value.Null:
		return "null"
	case value.Undefined:
		return "undefined"
	case value.Boolean:
		if v.Bool() {
			return "true"
		}
		return "false"
	default:
		return v.GoString()
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		s, err := cast.ToStringE(f)
		if err != nil {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return s
	}
}

// ToBoolean implements spec.md §7's Boolean-coercion column, which is
// exactly the falsy/truthy set of spec.md §4.1.
func ToBoolean(v value.Value) bool {
	return v.Truthy()
}

// LooseEqual implements `==`: when both operands share a kind, it behaves
// like strict equality (so string/string and tuple/tuple comparisons don't
// degrade into NaN via numeric coercion); otherwise both sides are
// coerced to Number and compared, matching spec.md's worked example
// `30 == "30"` => true.
func LooseEqual(a, b value.Value) bool {
	if a.Kind() == b.Kind() {
		return a.StrictEqual(b)
	}
	return ToNumber(a) == ToNumber(b)
}

// Compare implements `<`, `<=`, `>`, `>=`: both operands are coerced to
// Number unconditionally; any comparison involving NaN is false, which
// falls out of Go's float semantics for free.
func Compare(a, b value.Value) (lt, eq, gt bool) {
	x, y := ToNumber(a), ToNumber(b)
	return x < y, x == y, x > y
}
