// Copyright © 2023 Lucas Robidou
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sans

import "math/bits"

// colorXL is a color of 64 < N <= 256 genomes. Word i holds genomes
// [64i, 64i+63].
type colorXL [4]uint64

// colorXLOps operates on four-word colors.
type colorXLOps struct {
	n    int
	mask colorXL
}

func newColorXLOps(n int) colorXLOps {
	o := colorXLOps{n: n}
	for i := 0; i < n; i++ {
		o.mask[i>>6] |= uint64(1) << uint(i&63)
	}
	return o
}

func (o colorXLOps) zero() colorXL { return colorXL{} }

func (o colorXLOps) set(c colorXL, i int) colorXL {
	c[i>>6] |= uint64(1) << uint(i&63)
	return c
}

func (o colorXLOps) test(c colorXL, i int) bool {
	return c[i>>6]>>uint(i&63)&1 == 1
}

func (o colorXLOps) complement(c colorXL) colorXL {
	for i := range c {
		c[i] = ^c[i] & o.mask[i]
	}
	return c
}

func (o colorXLOps) popcount(c colorXL) (n int) {
	for _, w := range c {
		n += bits.OnesCount64(w)
	}
	return
}

func (o colorXLOps) and(a, b colorXL) colorXL {
	for i := range a {
		a[i] &= b[i]
	}
	return a
}

func (o colorXLOps) diff(a, b colorXL) colorXL {
	for i := range a {
		a[i] &^= b[i]
	}
	return a
}

func (o colorXLOps) isZero(c colorXL) bool {
	return c == colorXL{}
}

func (o colorXLOps) less(a, b colorXL) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (o colorXLOps) members(c colorXL) []int {
	m := make([]int, 0, o.popcount(c))
	for i, w := range c {
		for w > 0 {
			m = append(m, i<<6+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return m
}
