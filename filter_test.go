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

import "testing"

// filterEngine builds a sealed engine with a hand-made split list, so the
// filters can be exercised on exact colors.
func filterEngine(n int, weights []float64, colors []uint64) *engine[uint64, uint64] {
	e := newEngine[uint64, uint64](newKmer64Ops(3), newColor64Ops(n), Options{
		K: 3, Genomes: n, TopSize: 64, Shards: 16,
	})
	e.sealed.Store(true)
	for i := range weights {
		e.splits.insert(weights[i], colors[i])
	}
	e.nSplits.Store(uint64(e.splits.len()))
	return e
}

func TestCompatible(t *testing.T) {
	ops := newColor64Ops(4)
	cases := []struct {
		a, b uint64
		want bool
	}{
		{0b0011, 0b1100, true},  // disjoint
		{0b0011, 0b0001, true},  // nested
		{0b0011, 0b0111, true},  // nested
		{0b0011, 0b0110, false}, // crossing
		{0b0101, 0b0011, false}, // crossing
		{0b0011, 0b0011, true},  // identical
	}
	for _, c := range cases {
		if compatible(ops, c.a, c.b) != c.want {
			t.Errorf("compatible(%04b, %04b) != %v", c.a, c.b, c.want)
		}
		if compatible(ops, c.b, c.a) != c.want {
			t.Errorf("compatible(%04b, %04b) not symmetric", c.b, c.a)
		}
		// compatibility is a property of the split, not the side
		if compatible(ops, ops.complement(c.a), c.b) != c.want {
			t.Errorf("compatible(~%04b, %04b) != %v", c.a, c.b, c.want)
		}
	}
}

// TestFilterTree1 is the three-split scenario: the crossing middle split
// is dropped, the outer two survive in weight order.
func TestFilterTree1(t *testing.T) {
	e := filterEngine(4,
		[]float64{10, 8, 6},
		[]uint64{0b0011, 0b0110, 0b1100})
	if err := e.FilterTree1(); err != nil {
		t.Fatal(err)
	}
	if len(e.splits.entries) != 2 {
		t.Fatalf("got %d splits", len(e.splits.entries))
	}
	if e.splits.entries[0].weight != 10 || e.splits.entries[0].color != 0b0011 {
		t.Fatalf("first split wrong: %+v", e.splits.entries[0])
	}
	if e.splits.entries[1].weight != 6 || e.splits.entries[1].color != 0b1100 {
		t.Fatalf("second split wrong: %+v", e.splits.entries[1])
	}
	if e.Summary().SplitsEmitted != 2 {
		t.Fatalf("summary not updated: %+v", e.Summary())
	}

	// pairwise compatibility invariant
	for i, a := range e.splits.entries {
		for _, b := range e.splits.entries[i+1:] {
			if !compatible(e.cops, a.color, b.color) {
				t.Fatal("kept splits not pairwise compatible")
			}
		}
	}

	// idempotence
	before := len(e.splits.entries)
	if err := e.FilterTree1(); err != nil {
		t.Fatal(err)
	}
	if len(e.splits.entries) != before {
		t.Fatal("second filter pass changed the list")
	}
}

func TestWeakTriple(t *testing.T) {
	ops := newColor64Ops(8)

	// Any pairwise compatible pair keeps the triple weakly compatible.
	if !weakTriple(ops, 0b00000011, 0b00001100, 0b00110110) {
		t.Fatal("triple with a compatible pair must pass")
	}

	// Circular trio on six taxa: pairwise incompatible, but some 3-way
	// region is empty on both orientations, so weakly compatible.
	sixOps := newColor64Ops(6)
	x, y, z := uint64(0b000111), uint64(0b011100), uint64(0b110001)
	if compatible(sixOps, x, y) || compatible(sixOps, y, z) || compatible(sixOps, x, z) {
		t.Fatal("circular trio must be pairwise incompatible")
	}
	if !weakTriple(sixOps, x, y, z) {
		t.Fatal("circular trio must be weakly compatible")
	}

	// All eight 3-way regions populated: forbidden.
	a := uint64(0b10101010)
	b := uint64(0b11001100)
	c := uint64(0b11110000)
	if weakTriple(ops, a, b, c) {
		t.Fatal("fully crossing triple must fail")
	}
}

func TestFilterTree2(t *testing.T) {
	// Two crossing splits are fine for the weak filter...
	e := filterEngine(4,
		[]float64{10, 8, 6},
		[]uint64{0b0011, 0b0110, 0b1100})
	if err := e.FilterTree2(); err != nil {
		t.Fatal(err)
	}
	if len(e.splits.entries) != 3 {
		t.Fatalf("weak filter dropped a pair: %d", len(e.splits.entries))
	}

	// ...but a fully crossing triple is rejected at its third member.
	e = filterEngine(8,
		[]float64{10, 8, 6},
		[]uint64{0b10101010, 0b11001100, 0b11110000})
	if err := e.FilterTree2(); err != nil {
		t.Fatal(err)
	}
	if len(e.splits.entries) != 2 {
		t.Fatalf("got %d splits, want 2", len(e.splits.entries))
	}
	if e.splits.entries[0].weight != 10 || e.splits.entries[1].weight != 8 {
		t.Fatalf("wrong splits kept: %+v", e.splits.entries)
	}

	// idempotence
	if err := e.FilterTree2(); err != nil {
		t.Fatal(err)
	}
	if len(e.splits.entries) != 2 {
		t.Fatal("second filter pass changed the list")
	}
}

func TestFilterRequiresSeal(t *testing.T) {
	e := newEngine[uint64, uint64](newKmer64Ops(3), newColor64Ops(4), Options{
		K: 3, Genomes: 4, TopSize: 8, Shards: 16,
	})
	if err := e.FilterNone(); err != ErrNotSealed {
		t.Fatalf("FilterNone: got %v", err)
	}
	if err := e.FilterTree1(); err != ErrNotSealed {
		t.Fatalf("FilterTree1: got %v", err)
	}
	if err := e.FilterTree2(); err != ErrNotSealed {
		t.Fatalf("FilterTree2: got %v", err)
	}
}
