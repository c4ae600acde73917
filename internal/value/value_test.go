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

package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/alexdb/internal/value"
)

func TestFalsySet(t *testing.T) {
	require := require.New(t)
	require.True(value.NewBoolean(false).Falsy())
	require.True(value.NewNumber(0).Falsy())
	require.True(value.NewNumber(math.NaN()).Falsy())
	require.True(value.NewString("").Falsy())
	require.True(value.NewNull().Falsy())
	require.True(value.NewUndefined().Falsy())

	require.False(value.NewBoolean(true).Falsy())
	require.False(value.NewNumber(1).Falsy())
	require.False(value.NewString("x").Falsy())
	require.False(value.NewTuple(nil).Falsy())
}

func TestStrictEqualRequiresSameKind(t *testing.T) {
	require := require.New(t)
	require.False(value.NewNumber(30).StrictEqual(value.NewString("30")))
	require.True(value.NewNumber(30).StrictEqual(value.NewNumber(30)))
	require.True(value.NewString("x").StrictEqual(value.NewString("x")))
	require.True(value.NewNull().StrictEqual(value.NewNull()))
	require.False(value.NewNull().StrictEqual(value.NewUndefined()))
}

func TestStrictEqualTupleIsStructuralAndOrderSensitive(t *testing.T) {
	require := require.New(t)
	a := value.NewTuple([]value.Value{value.NewNumber(1), value.NewString("x")})
	b := value.NewTuple([]value.Value{value.NewNumber(1), value.NewString("x")})
	c := value.NewTuple([]value.Value{value.NewString("x"), value.NewNumber(1)})

	require.True(a.StrictEqual(b))
	require.False(a.StrictEqual(c))
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	require := require.New(t)
	inner := value.NewTuple([]value.Value{value.NewNumber(1)})
	outer := value.NewTuple([]value.Value{inner})
	clone := outer.Clone()

	require.True(outer.StrictEqual(clone))

	// Mutating the source's backing slice must not be observable through
	// the clone's elements.
	outer.TupleElems()[0] = value.NewNumber(99)
	require.False(outer.StrictEqual(clone))
}

func TestHashDistinguishesPayloadsWithinAKind(t *testing.T) {
	require := require.New(t)
	h1, err := value.NewNumber(1).Hash()
	require.NoError(err)
	h2, err := value.NewNumber(2).Hash()
	require.NoError(err)
	require.NotEqual(h1, h2)

	h3, err := value.NewNumber(1).Hash()
	require.NoError(err)
	require.Equal(h1, h3)
}
