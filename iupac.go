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

// degenerateBaseMapNucl expands an IUPAC code to its concrete bases.
var degenerateBaseMapNucl = map[byte]string{
	'A': "A",
	'T': "T",
	'U': "T",
	'C': "C",
	'G': "G",
	'R': "AG",
	'Y': "CT",
	'M': "AC",
	'K': "GT",
	'S': "CG",
	'W': "AT",
	'H': "ACT",
	'B': "CGT",
	'V': "ACG",
	'D': "AGT",
	'N': "ACGT",
	'a': "A",
	't': "T",
	'u': "T",
	'c': "C",
	'g': "G",
	'r': "AG",
	'y': "CT",
	'm': "AC",
	'k': "GT",
	's': "CG",
	'w': "AT",
	'h': "ACT",
	'b': "CGT",
	'v': "ACG",
	'd': "AGT",
	'n': "ACGT",
}

// iupacBases is the lookup form of degenerateBaseMapNucl; the empty string
// marks a byte outside the IUPAC alphabet.
var iupacBases [256]string

func init() {
	for b, bases := range degenerateBaseMapNucl {
		iupacBases[b] = bases
	}
}

// iupacWindow tracks all concrete encodings of the last k input bases while
// scanning a sequence with ambiguity codes. The expansion set is capped;
// on overflow the window is flushed and only refills from unambiguous
// bases, so a run of highly degenerate positions is skipped as a whole.
type iupacWindow[K comparable] struct {
	kops kmerOps[K]
	k    int
	cap  int

	set    map[K]struct{}
	next   map[K]struct{}
	filled int
	// clean is set after an overflow; while set, any ambiguous base
	// restarts the fill.
	clean bool
}

func newIupacWindow[K comparable](kops kmerOps[K], k, cap int) *iupacWindow[K] {
	w := &iupacWindow[K]{
		kops: kops,
		k:    k,
		cap:  cap,
		set:  make(map[K]struct{}, cap),
		next: make(map[K]struct{}, cap),
	}
	w.reset(false)
	return w
}

func (w *iupacWindow[K]) reset(clean bool) {
	clear(w.set)
	w.set[w.kops.zero()] = struct{}{}
	w.filled = 0
	w.clean = clean
}

// feed advances the window by one IUPAC character, given its concrete
// expansion. It returns the set of complete k-mer codes ending at this
// position (nil while the window is still filling), and overflow=true when
// the expansion exceeded the cap and the window was flushed.
func (w *iupacWindow[K]) feed(bases string) (codes map[K]struct{}, overflow bool) {
	if w.clean {
		if len(bases) > 1 {
			w.reset(true)
			return nil, false
		}
	}
	clear(w.next)
	for code := range w.set {
		for i := 0; i < len(bases); i++ {
			w.next[w.kops.shift(code, base2bit[bases[i]])] = struct{}{}
		}
	}
	w.set, w.next = w.next, w.set
	if len(w.set) > w.cap {
		w.reset(true)
		return nil, true
	}
	if w.filled < w.k {
		w.filled++
	}
	if w.filled == w.k {
		w.clean = false
		return w.set, false
	}
	return nil, false
}
