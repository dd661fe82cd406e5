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

import "github.com/pkg/errors"

// ingestGuard rejects ingestion after sealing, after cancellation, and for
// genome indices beyond the configured bound.
func (e *engine[K, C]) ingestGuard(genome uint64) error {
	if e.cancelled.Load() {
		return ErrCancelled
	}
	if e.sealed.Load() {
		return ErrSealed
	}
	if genome >= uint64(e.n) {
		return errors.Wrapf(ErrGenomeIndex, "genome %d with bound %d", genome, e.n)
	}
	return nil
}

// AddKmers slides a window of k bases over the sequence, resetting on any
// byte outside ACGT, and records the canonical form of each complete
// window for the given genome.
func (e *engine[K, C]) AddKmers(sequence []byte, genome uint64) error {
	if err := e.ingestGuard(genome); err != nil {
		return err
	}
	g := int(genome)
	code := e.kops.zero()
	var filled int
	var inserted uint64
	for _, c := range sequence {
		b := base2bit[c]
		if b == 255 {
			code = e.kops.zero()
			filled = 0
			continue
		}
		code = e.kops.shift(code, b)
		if filled < e.k {
			filled++
		}
		if filled == e.k {
			e.tab.insert(e.kops.canonical(code), g)
			inserted++
		}
	}
	e.nSeqs.Add(1)
	e.nKmers.Add(inserted)
	return nil
}

// AddKmersIUPAC ingests a sequence that may contain IUPAC ambiguity codes.
// Each window position carries the set of concrete k-mers consistent with
// the last k characters; the set is capped at maxIupac and overflowing
// windows are skipped. Bytes outside the IUPAC alphabet reset the window.
func (e *engine[K, C]) AddKmersIUPAC(sequence []byte, genome uint64, maxIupac uint64) error {
	if err := e.ingestGuard(genome); err != nil {
		return err
	}
	if maxIupac == 0 {
		return ErrInvalidIupac
	}
	g := int(genome)
	win := newIupacWindow[K](e.kops, e.k, int(maxIupac))
	var inserted, skipped uint64
	for _, c := range sequence {
		bases := iupacBases[c]
		if bases == "" {
			win.reset(false)
			continue
		}
		codes, overflow := win.feed(bases)
		if overflow {
			skipped++
			continue
		}
		for code := range codes {
			e.tab.insert(e.kops.canonical(code), g)
			inserted++
		}
	}
	e.nSeqs.Add(1)
	e.nKmers.Add(inserted)
	e.nSkipped.Add(skipped)
	return nil
}
