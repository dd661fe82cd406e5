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

import "sync"

// shardInitSize is the initial bucket count of each shard map.
var shardInitSize = 1024

// tableShard is one lock-guarded slice of the k-mer key space.
type tableShard[K comparable, C comparable] struct {
	mu sync.Mutex
	m  map[K]C
}

// kmerTable maps canonical k-mer codes to colors. Writes from concurrent
// ingestion workers are serialized per shard; the shard of a code is chosen
// by its hash, so all writes to one k-mer hit the same lock and each
// (k-mer, genome) update is atomic. Reads are only valid once ingestion
// has stopped.
type kmerTable[K comparable, C comparable] struct {
	kops   kmerOps[K]
	cops   colorOps[C]
	shards []*tableShard[K, C]
	mask   uint64
}

// newKmerTable creates a table with the given shard count, which must be a
// power of two.
func newKmerTable[K comparable, C comparable](kops kmerOps[K], cops colorOps[C], shards int) *kmerTable[K, C] {
	t := &kmerTable[K, C]{
		kops:   kops,
		cops:   cops,
		shards: make([]*tableShard[K, C], shards),
		mask:   uint64(shards) - 1,
	}
	for i := range t.shards {
		t.shards[i] = &tableShard[K, C]{m: make(map[K]C, shardInitSize)}
	}
	return t
}

// insert ORs genome bit g into the color of code, creating the entry if
// absent. The zero map value is the empty color for both representations.
func (t *kmerTable[K, C]) insert(code K, g int) {
	s := t.shards[t.kops.hash(code)&t.mask]
	s.mu.Lock()
	s.m[code] = t.cops.set(s.m[code], g)
	s.mu.Unlock()
}

// each calls fn for every (code, color) entry. Only safe after all
// inserts completed.
func (t *kmerTable[K, C]) each(fn func(code K, c C)) {
	for _, s := range t.shards {
		for code, c := range s.m {
			fn(code, c)
		}
	}
}

// len returns the number of distinct canonical k-mers stored.
func (t *kmerTable[K, C]) len() (n int) {
	for _, s := range t.shards {
		n += len(s.m)
	}
	return
}
