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
	"bytes"
	"math/rand"
	"testing"
)

var randomSeqs [][]byte
var randomSeqsN = 1000

var benchOps = newKmer64Ops(32)
var benchXLOps = newKmerXLOps(48)
var benchCode uint64
var benchCodeXL kmerXL

func init() {
	randomSeqs = make([][]byte, randomSeqsN)
	for i := range randomSeqs {
		randomSeqs[i] = randomSeq(rand.Intn(100) + 1)
	}

	for i := 0; i < 32; i++ {
		benchCode = benchOps.shift(benchCode, uint8(rand.Intn(4)))
	}
	for i := 0; i < 48; i++ {
		benchCodeXL = benchXLOps.shift(benchCodeXL, uint8(rand.Intn(4)))
	}
}

func randomSeq(n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = bit2base[rand.Intn(4)]
	}
	return s
}

func revCompSeq(s []byte) []byte {
	rc := make([]byte, len(s))
	for i, c := range s {
		rc[len(s)-1-i] = bit2base[base2bit[c]^3]
	}
	return rc
}

// TestEncodeDecode tests encode and decode round trips.
func TestEncodeDecode(t *testing.T) {
	for _, s := range randomSeqs {
		k := len(s)
		if k > 32 {
			k = 32
		}
		mer := s[:k]
		code, err := encode64(mer)
		if err != nil {
			t.Fatalf("encode error: %s", mer)
		}
		ops := newKmer64Ops(k)
		if !bytes.Equal(mer, ops.decode(code)) {
			t.Errorf("decode error: %s != %s", mer, ops.decode(code))
		}
	}
}

func TestEncodeIllegal(t *testing.T) {
	if _, err := encode64([]byte("ACXT")); err != ErrIllegalBase {
		t.Errorf("expected ErrIllegalBase, got %v", err)
	}
	if _, err := encode64(nil); err != ErrKOverflow {
		t.Errorf("expected ErrKOverflow, got %v", err)
	}
}

// TestShift checks that the rolling window matches a fresh encoding of
// every window.
func TestShift(t *testing.T) {
	for _, s := range randomSeqs {
		for _, k := range []int{1, 3, 15, 31, 32} {
			if len(s) < k {
				continue
			}
			ops := newKmer64Ops(k)
			code := ops.zero()
			for i, c := range s {
				code = ops.shift(code, base2bit[c])
				if i >= k-1 {
					direct, _ := encode64(s[i-k+1 : i+1])
					if code != direct {
						t.Fatalf("shift mismatch at %d: %s", i, s)
					}
				}
			}
		}
	}
}

func TestRevComp(t *testing.T) {
	for _, s := range randomSeqs {
		k := len(s)
		if k > 32 {
			k = 32
		}
		ops := newKmer64Ops(k)
		code, _ := encode64(s[:k])
		if ops.revComp(ops.revComp(code)) != code {
			t.Errorf("revComp not an involution: %s", s[:k])
		}
		if !bytes.Equal(ops.decode(ops.revComp(code)), revCompSeq(s[:k])) {
			t.Errorf("revComp sequence mismatch: %s", s[:k])
		}
	}
}

func TestCanonical(t *testing.T) {
	for _, s := range randomSeqs {
		k := len(s)
		if k > 32 {
			k = 32
		}
		ops := newKmer64Ops(k)
		code, _ := encode64(s[:k])
		canon := ops.canonical(code)
		if canon != ops.canonical(ops.revComp(code)) {
			t.Errorf("canonical differs from canonical of revcomp: %s", s[:k])
		}
		if canon > code {
			t.Errorf("canonical larger than code: %s", s[:k])
		}
	}
}

// TestKmerXL checks the two-word representation against the byte level for
// wide k.
func TestKmerXL(t *testing.T) {
	for _, k := range []int{33, 40, 48, 63, 64} {
		ops := newKmerXLOps(k)
		s := randomSeq(k + 50)
		code := ops.zero()
		for i, c := range s {
			code = ops.shift(code, base2bit[c])
			if i >= k-1 {
				if !bytes.Equal(ops.decode(code), s[i-k+1:i+1]) {
					t.Fatalf("k=%d: decode mismatch at %d", k, i)
				}
			}
		}
		if ops.revComp(ops.revComp(code)) != code {
			t.Errorf("k=%d: revComp not an involution", k)
		}
		if !bytes.Equal(ops.decode(ops.revComp(code)), revCompSeq(s[len(s)-k:])) {
			t.Errorf("k=%d: revComp sequence mismatch", k)
		}
		if ops.canonical(code) != ops.canonical(ops.revComp(code)) {
			t.Errorf("k=%d: canonical differs from canonical of revcomp", k)
		}
	}
}

func BenchmarkShiftK32(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchCode = benchOps.shift(benchCode, 2)
	}
}

func BenchmarkRevCompK32(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOps.revComp(benchCode)
	}
}

func BenchmarkCanonicalK32(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchOps.canonical(benchCode)
	}
}

func BenchmarkShiftK48(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchCodeXL = benchXLOps.shift(benchCodeXL, 2)
	}
}

func BenchmarkCanonicalK48(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchXLOps.canonical(benchCodeXL)
	}
}
