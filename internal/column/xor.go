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
	"math"
	"math/bits"
)

// Xor is spec.md §4.2's Gorilla-style XOR-of-float-bits encoding. The
// meaningful-bit count of a window is stored as count-1 in its 6 bits, so
// a full 64-bit window (leading=trailing=0) still fits — the literal
// reading of "6 bits of meaningful-bit count" can't otherwise represent
// 64, and decode must mirror whatever encode does.
type Xor struct {
	w           *bitWriter
	n           int
	hasPrev     bool
	prevBits    uint64
	hasWindow   bool
	prevLeading int
	prevTrail   int
}

// NewXor returns an empty Xor encoder.
func NewXor() *Xor {
	return &Xor{w: &bitWriter{}}
}

func (x *Xor) Insert(c Cell[float64]) {
	x.n++
	if !c.Valid {
		x.w.writeBit(false)
		return
	}
	x.w.writeBit(true)
	bitsVal := math.Float64bits(c.V)

	if !x.hasPrev {
		x.w.writeBits(bitsVal, 64)
		x.hasPrev = true
		x.prevBits = bitsVal
		return
	}

	xorv := bitsVal ^ x.prevBits
	if xorv == 0 {
		x.w.writeBit(false)
		x.prevBits = bitsVal
		return
	}
	x.w.writeBit(true)

	leading := bits.LeadingZeros64(xorv)
	trailing := bits.TrailingZeros64(xorv)

	if x.hasWindow && leading >= x.prevLeading && trailing >= x.prevTrail {
		x.w.writeBit(false)
		meaningful := 64 - x.prevLeading - x.prevTrail
		x.w.writeBits(xorv>>uint(x.prevTrail), meaningful)
	} else {
		x.w.writeBit(true)
		if leading > 31 {
			// The leading-zero field is 5 bits wide; any extra leading
			// zeros are carried as meaningful bits instead.
			leading = 31
		}
		x.w.writeBits(uint64(leading), 5)
		meaningful := 64 - leading - trailing
		x.w.writeBits(uint64(meaningful-1), 6)
		x.w.writeBits(xorv>>uint(trailing), meaningful)
		x.prevLeading, x.prevTrail, x.hasWindow = leading, trailing, true
	}
	x.prevBits = bitsVal
}

func (x *Xor) Len() int { return x.n }

func (x *Xor) Iter() func() (Cell[float64], bool) {
	r := &bitReader{buf: x.w.buf}
	remaining := x.n
	var hasPrev bool
	var prevBits uint64
	var hasWindow bool
	var prevLeading, prevTrail int

	return func() (Cell[float64], bool) {
		if remaining <= 0 {
			return Cell[float64]{}, false
		}
		remaining--

		present, _ := r.readBit()
		if !present {
			return Cell[float64]{}, true
		}

		if !hasPrev {
			v, _ := r.readBits(64)
			hasPrev = true
			prevBits = v
			return Cell[float64]{Valid: true, V: math.Float64frombits(v)}, true
		}

		changed, _ := r.readBit()
		if !changed {
			return Cell[float64]{Valid: true, V: math.Float64frombits(prevBits)}, true
		}

		newWindow, _ := r.readBit()
		if !newWindow {
			meaningful := 64 - prevLeading - prevTrail
			bitsv, _ := r.readBits(meaningful)
			xorv := bitsv << uint(prevTrail)
			prevBits ^= xorv
			return Cell[float64]{Valid: true, V: math.Float64frombits(prevBits)}, true
		}

		leading64, _ := r.readBits(5)
		meaningfulMinus1, _ := r.readBits(6)
		leading := int(leading64)
		meaningful := int(meaningfulMinus1) + 1
		trailing := 64 - leading - meaningful
		bitsv, _ := r.readBits(meaningful)
		xorv := bitsv << uint(trailing)
		prevBits ^= xorv
		prevLeading, prevTrail, hasWindow = leading, trailing, true
		_ = hasWindow
		return Cell[float64]{Valid: true, V: math.Float64frombits(prevBits)}, true
	}
}
