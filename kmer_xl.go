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

	"github.com/cespare/xxhash"
)

// kmerXL is a k-mer of 32 < k <= 64 spread over two words.
// Word 0 holds the 32 most recent bases, word 1 the older ones.
type kmerXL [2]uint64

// kmerXLOps operates on two-word k-mer codes.
type kmerXLOps struct {
	k      int
	maskHi uint64
}

func newKmerXLOps(k int) kmerXLOps {
	return kmerXLOps{k: k, maskHi: uint64(1)<<(uint(k-32)<<1) - 1}
}

func (o kmerXLOps) zero() kmerXL { return kmerXL{} }

func (o kmerXLOps) shift(code kmerXL, b uint8) kmerXL {
	code[1] = (code[1]<<2 | code[0]>>62) & o.maskHi
	code[0] = code[0]<<2 | uint64(b)
	return code
}

func (o kmerXLOps) revComp(code kmerXL) (c kmerXL) {
	for i := 0; i < o.k; i++ {
		c[1] = c[1]<<2 | c[0]>>62
		c[0] = c[0]<<2 | (code[0]&3 ^ 3)
		code[0] = code[0]>>2 | code[1]<<62
		code[1] >>= 2
	}
	c[1] &= o.maskHi
	return
}

func (o kmerXLOps) canonical(code kmerXL) kmerXL {
	rc := o.revComp(code)
	if rc[1] < code[1] || (rc[1] == code[1] && rc[0] < code[0]) {
		return rc
	}
	return code
}

func (o kmerXLOps) hash(code kmerXL) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], code[0])
	binary.LittleEndian.PutUint64(buf[8:], code[1])
	return xxhash.Sum64(buf[:])
}

func (o kmerXLOps) decode(code kmerXL) []byte {
	kmer := make([]byte, o.k)
	for i := 0; i < o.k; i++ {
		kmer[o.k-1-i] = bit2base[code[0]&3]
		code[0] = code[0]>>2 | code[1]<<62
		code[1] >>= 2
	}
	return kmer
}
