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
	"bufio"
	"io"
	"strconv"
)

// Splits returns the retained splits in descending weight order, resolving
// each canonical color to its genome indices. It returns nil before
// AddWeights.
func (e *engine[K, C]) Splits() []Split {
	if !e.sealed.Load() {
		return nil
	}
	splits := make([]Split, len(e.splits.entries))
	for i, s := range e.splits.entries {
		splits[i] = Split{Weight: s.weight, Genomes: e.cops.members(s.color)}
	}
	return splits
}

// OutputSplits writes one line per retained split, descending by weight:
// the weight, then the names of the genomes on the canonical side,
// tab-separated.
func (e *engine[K, C]) OutputSplits(w io.Writer, names []string) error {
	if !e.sealed.Load() {
		return ErrNotSealed
	}
	if len(names) < e.n {
		return ErrNameShortage
	}
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, s := range e.splits.entries {
		buf = strconv.AppendFloat(buf[:0], s.weight, 'g', -1, 64)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		for _, g := range e.cops.members(s.color) {
			if err := bw.WriteByte('\t'); err != nil {
				return err
			}
			if _, err := bw.WriteString(names[g]); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EachKmer calls fn for every distinct canonical k-mer in the sealed table
// with the ascending indices of the genomes containing it.
func (e *engine[K, C]) EachKmer(fn func(kmer []byte, genomes []int)) error {
	if !e.sealed.Load() {
		return ErrNotSealed
	}
	e.tab.each(func(code K, c C) {
		fn(e.kops.decode(code), e.cops.members(c))
	})
	return nil
}
