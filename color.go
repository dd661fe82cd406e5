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

// colorOps is the capability set of a color, a fixed-width bit-set over the
// genome index space. The zero value of a representation is the empty color.
type colorOps[C comparable] interface {
	zero() C
	set(c C, i int) C
	test(c C, i int) bool
	// complement flips all bits within the genome bound.
	complement(c C) C
	popcount(c C) int
	and(a, b C) C
	// diff returns a &^ b.
	diff(a, b C) C
	isZero(c C) bool
	less(a, b C) bool
	// members returns the set genome indices in ascending order.
	members(c C) []int
}

// color64Ops operates on colors of up to 64 genomes in a single uint64.
type color64Ops struct {
	n    int
	mask uint64
}

func newColor64Ops(n int) color64Ops {
	return color64Ops{n: n, mask: uint64(1)<<uint(n) - 1}
}

func (o color64Ops) zero() uint64 { return 0 }

func (o color64Ops) set(c uint64, i int) uint64 { return c | uint64(1)<<uint(i) }

func (o color64Ops) test(c uint64, i int) bool { return c>>uint(i)&1 == 1 }

func (o color64Ops) complement(c uint64) uint64 { return ^c & o.mask }

func (o color64Ops) popcount(c uint64) int { return bits.OnesCount64(c) }

func (o color64Ops) and(a, b uint64) uint64 { return a & b }

func (o color64Ops) diff(a, b uint64) uint64 { return a &^ b }

func (o color64Ops) isZero(c uint64) bool { return c == 0 }

func (o color64Ops) less(a, b uint64) bool { return a < b }

func (o color64Ops) members(c uint64) []int {
	m := make([]int, 0, bits.OnesCount64(c))
	for c > 0 {
		m = append(m, bits.TrailingZeros64(c))
		c &= c - 1
	}
	return m
}
