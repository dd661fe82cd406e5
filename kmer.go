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
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash"
)

// ErrIllegalBase means that a base beyond ACGT(U) was detected.
var ErrIllegalBase = errors.New("sans: illegal base")

// ErrKOverflow means K is beyond the supported range.
var ErrKOverflow = errors.New("sans: k-mer size overflow (1-64)")

// base2bit maps a nucleotide to its 2-bit code:
//
//	A    00
//	C    01
//	G    10
//	T/U  11
//
// Any other byte maps to 255.
var base2bit [256]uint8

// bit2base is for mapping bit to base.
var bit2base = [4]byte{'A', 'C', 'G', 'T'}

func init() {
	for i := range base2bit {
		base2bit[i] = 255
	}
	base2bit['A'], base2bit['a'] = 0, 0
	base2bit['C'], base2bit['c'] = 1, 1
	base2bit['G'], base2bit['g'] = 2, 2
	base2bit['T'], base2bit['t'] = 3, 3
	base2bit['U'], base2bit['u'] = 3, 3
}

// kmerOps is the capability set shared by the two k-mer representations.
// Implementations are cheap value types fixed to one k; codes from
// different k values must never be mixed.
type kmerOps[K comparable] interface {
	zero() K
	// shift drops the oldest base and appends b (a 2-bit code) at the
	// low end, keeping the window at k bases.
	shift(code K, b uint8) K
	revComp(code K) K
	// canonical returns the smaller of code and its reverse complement.
	canonical(code K) K
	hash(code K) uint64
	decode(code K) []byte
}

// kmer64Ops operates on k-mers of k <= 32 packed into a single uint64.
type kmer64Ops struct {
	k    int
	mask uint64
}

func newKmer64Ops(k int) kmer64Ops {
	return kmer64Ops{k: k, mask: uint64(1)<<(uint(k)<<1) - 1}
}

func (o kmer64Ops) zero() uint64 { return 0 }

func (o kmer64Ops) shift(code uint64, b uint8) uint64 {
	return (code<<2 | uint64(b)) & o.mask
}

func (o kmer64Ops) revComp(code uint64) (c uint64) {
	for i := 0; i < o.k; i++ {
		c <<= 2
		c |= code&3 ^ 3
		code >>= 2
	}
	return
}

func (o kmer64Ops) canonical(code uint64) uint64 {
	rc := o.revComp(code)
	if rc < code {
		return rc
	}
	return code
}

func (o kmer64Ops) hash(code uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], code)
	return xxhash.Sum64(buf[:])
}

func (o kmer64Ops) decode(code uint64) []byte {
	kmer := make([]byte, o.k)
	for i := 0; i < o.k; i++ {
		kmer[o.k-1-i] = bit2base[code&3]
		code >>= 2
	}
	return kmer
}

// encode64 converts a byte slice of length k <= 32 to its 2-bit code.
func encode64(kmer []byte) (code uint64, err error) {
	k := len(kmer)
	if k == 0 || k > 32 {
		return 0, ErrKOverflow
	}
	for _, c := range kmer {
		b := base2bit[c]
		if b == 255 {
			return code, ErrIllegalBase
		}
		code = code<<2 | uint64(b)
	}
	return code, nil
}
