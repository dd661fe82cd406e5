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

import (
	"math"
	"sort"
)

// ArithMean weights a split by the arithmetic mean of the k-mer counts of
// its two sides.
func ArithMean(pos, neg uint32) float64 {
	return (float64(pos) + float64(neg)) / 2
}

// GeomMean weights a split by the geometric mean of the k-mer counts of
// its two sides.
func GeomMean(pos, neg uint32) float64 {
	return math.Sqrt(float64(pos) * float64(neg))
}

// GeomMean2 is the geometric mean with pseudo-counts, so one-sided splits
// keep a positive weight.
func GeomMean2(pos, neg uint32) float64 {
	return math.Sqrt(float64(pos+1)*float64(neg+1)) - 1
}

// AddWeights seals the k-mer table and aggregates its colors: for every
// color c, the number of k-mers whose color is exactly c (pos) and exactly
// the complement of c (neg) are combined by the weight function into the
// weight of the split {c, complement(c)}. Trivial colors (no bits or all
// bits) are dropped, colors with non-finite weights are counted and
// dropped, and positive-weight splits compete for the top list.
func (e *engine[K, C]) AddWeights(weight WeightFunc) error {
	if weight == nil {
		return ErrNilWeightFunc
	}
	if e.cancelled.Load() {
		return ErrCancelled
	}
	if !e.sealed.CompareAndSwap(false, true) {
		return ErrSealed
	}

	type counts struct {
		pos, neg uint32
	}
	cw := make(map[C]counts, e.tab.len())
	e.tab.each(func(code K, c C) {
		p := e.cops.popcount(c)
		if p == 0 || p == e.n {
			return
		}
		comp := e.cops.complement(c)
		rep := c
		pos := true
		if e.cops.less(comp, c) {
			rep, pos = comp, false
		}
		v := cw[rep]
		if pos {
			v.pos++
		} else {
			v.neg++
		}
		cw[rep] = v
	})

	// Fix the insertion order of equal-weight splits: ascending canonical
	// color.
	colors := make([]C, 0, len(cw))
	for c := range cw {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		return e.cops.less(colors[i], colors[j])
	})

	var dropped uint64
	for _, c := range colors {
		v := cw[c]
		w := weight(v.pos, v.neg)
		if math.IsNaN(w) || math.IsInf(w, 0) {
			dropped++
			continue
		}
		if w > 0 {
			e.splits.insert(w, c)
		}
	}
	e.nDropped.Add(dropped)
	e.nSplits.Store(uint64(e.splits.len()))
	return nil
}
