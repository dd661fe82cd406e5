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

// compatible reports whether two splits admit a common tree: at least one
// of the four pairwise intersections of their sides must be empty.
func compatible[C comparable](ops colorOps[C], a, b C) bool {
	na, nb := ops.complement(a), ops.complement(b)
	return ops.isZero(ops.and(a, b)) ||
		ops.isZero(ops.and(a, nb)) ||
		ops.isZero(ops.and(na, b)) ||
		ops.isZero(ops.and(na, nb))
}

// compatibleAll reports whether c is compatible with every split in set.
func compatibleAll[C comparable](ops colorOps[C], c C, set []C) bool {
	for _, s := range set {
		if !compatible(ops, c, s) {
			return false
		}
	}
	return true
}

// weakTriple reports whether three splits are weakly compatible: for both
// orientation families, one of the four 3-way intersections must be empty.
// Any pairwise compatible pair makes the triple weakly compatible, since a
// 3-way intersection of each family is contained in the empty pairwise one.
func weakTriple[C comparable](ops colorOps[C], a, b, c C) bool {
	na, nb, nc := ops.complement(a), ops.complement(b), ops.complement(c)
	ab, anb, nab, nanb := ops.and(a, b), ops.and(a, nb), ops.and(na, b), ops.and(na, nb)
	even := ops.isZero(ops.and(ab, c)) ||
		ops.isZero(ops.and(anb, nc)) ||
		ops.isZero(ops.and(nab, nc)) ||
		ops.isZero(ops.and(nanb, c))
	if !even {
		return false
	}
	return ops.isZero(ops.and(nanb, nc)) ||
		ops.isZero(ops.and(nab, c)) ||
		ops.isZero(ops.and(anb, c)) ||
		ops.isZero(ops.and(ab, nc))
}

// weakAll reports whether candidate c forms no forbidden triple with any
// pair of splits in set.
func weakAll[C comparable](ops colorOps[C], c C, set []C) bool {
	for i := 0; i < len(set); i++ {
		// Pairs where c is compatible with set[i] can be skipped
		// entirely.
		if compatible(ops, c, set[i]) {
			continue
		}
		for j := i + 1; j < len(set); j++ {
			if !weakTriple(ops, set[i], set[j], c) {
				return false
			}
		}
	}
	return true
}

// FilterNone leaves the split list untouched.
func (e *engine[K, C]) FilterNone() error {
	if !e.sealed.Load() {
		return ErrNotSealed
	}
	return nil
}

// FilterTree1 sweeps the split list in descending weight order and keeps
// each split iff it is compatible with everything kept so far.
func (e *engine[K, C]) FilterTree1() error {
	if !e.sealed.Load() {
		return ErrNotSealed
	}
	kept := make([]C, 0, len(e.splits.entries))
	out := e.splits.entries[:0]
	for _, s := range e.splits.entries {
		if !compatibleAll(e.cops, s.color, kept) {
			continue
		}
		kept = append(kept, s.color)
		out = append(out, s)
	}
	e.splits.entries = out
	e.nSplits.Store(uint64(len(out)))
	return nil
}

// FilterTree2 sweeps the split list in descending weight order and keeps
// each split iff it forms no forbidden triple with any pair already kept.
func (e *engine[K, C]) FilterTree2() error {
	if !e.sealed.Load() {
		return ErrNotSealed
	}
	kept := make([]C, 0, len(e.splits.entries))
	out := e.splits.entries[:0]
	for _, s := range e.splits.entries {
		if !weakAll(e.cops, s.color, kept) {
			continue
		}
		kept = append(kept, s.color)
		out = append(out, s)
	}
	e.splits.entries = out
	e.nSplits.Store(uint64(len(out)))
	return nil
}
