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

package coerce_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/alexdb/internal/coerce"
	"github.com/dolthub/alexdb/internal/value"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		name string
		in   value.Value
		want float64
	}{
		{"number passthrough", value.NewNumber(3.5), 3.5},
		{"null is zero", value.NewNull(), 0},
		{"boolean true", value.NewBoolean(true), 1},
		{"boolean false", value.NewBoolean(false), 0},
		{"empty string is zero", value.NewString(""), 0},
		{"parseable string", value.NewString("42"), 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, coerce.ToNumber(tc.in))
		})
	}

	require.True(t, math.IsNaN(coerce.ToNumber(value.NewUndefined())))
	require.True(t, math.IsNaN(coerce.ToNumber(value.NewString("not a number"))))
}

func TestToStringVal(t *testing.T) {
	require := require.New(t)
	require.Equal("30", coerce.ToStringVal(value.NewNumber(30)))
	require.Equal("null", coerce.ToStringVal(value.NewNull()))
	require.Equal("undefined", coerce.ToStringVal(value.NewUndefined()))
	require.Equal("true", coerce.ToStringVal(value.NewBoolean(true)))
	require.Equal("false", coerce.ToStringVal(value.NewBoolean(false)))
	require.Equal("x", coerce.ToStringVal(value.NewString("x")))
}

func TestToBooleanIsTruthySet(t *testing.T) {
	require := require.New(t)
	require.False(coerce.ToBoolean(value.NewNumber(0)))
	require.True(coerce.ToBoolean(value.NewNumber(1)))
	require.False(coerce.ToBoolean(value.NewNull()))
}

func TestLooseEqual(t *testing.T) {
	require := require.New(t)
	// spec.md's worked example: 30 == "30" => true via numeric coercion.
	require.True(coerce.LooseEqual(value.NewNumber(30), value.NewString("30")))
	// Same-kind comparisons don't degrade to numeric coercion.
	require.True(coerce.LooseEqual(value.NewString("x"), value.NewString("x")))
	require.False(coerce.LooseEqual(value.NewString("x"), value.NewString("y")))
}

func TestCompare(t *testing.T) {
	require := require.New(t)
	lt, eq, gt := coerce.Compare(value.NewNumber(1), value.NewNumber(2))
	require.True(lt)
	require.False(eq)
	require.False(gt)

	lt, eq, gt = coerce.Compare(value.NewNumber(2), value.NewNumber(2))
	require.False(lt)
	require.True(eq)
	require.False(gt)

	// Any comparison involving NaN is false.
	lt, eq, gt = coerce.Compare(value.NewUndefined(), value.NewNumber(1))
	require.False(lt)
	require.False(eq)
	require.False(gt)
}
