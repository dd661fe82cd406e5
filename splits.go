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

import "sort"

// splitEntry is one ranked split: a weight and the canonical color.
type splitEntry[C comparable] struct {
	weight float64
	color  C
}

// splitList is the bounded top list of splits, kept sorted by descending
// weight. Entries of equal weight stay in insertion order, and when the
// list is full a new entry only displaces a strictly lighter minimum.
type splitList[C comparable] struct {
	top     uint64
	entries []splitEntry[C]
}

func newSplitList[C comparable](top uint64) *splitList[C] {
	return &splitList[C]{top: top}
}

// insert adds (w, c) if the list has room or w beats the current minimum.
// The displaced minimum is the most recently inserted one among ties.
func (l *splitList[C]) insert(w float64, c C) bool {
	if uint64(len(l.entries)) == l.top {
		if w <= l.entries[len(l.entries)-1].weight {
			return false
		}
		l.entries = l.entries[:len(l.entries)-1]
	}
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].weight < w
	})
	l.entries = append(l.entries, splitEntry[C]{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = splitEntry[C]{weight: w, color: c}
	return true
}

func (l *splitList[C]) len() int { return len(l.entries) }
