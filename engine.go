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

// Package sans computes phylogenetic splits from DNA sequences with an
// alignment-free, k-mer based method. Every distinct canonical k-mer is
// mapped to the set of genomes containing it (its color); each color defines
// a bipartition of the genome set, which is weighted by its k-mer support,
// ranked into a bounded top list and optionally reduced to a tree- or
// weakly-compatible subset.
package sans

import (
	"errors"
	"io"
	"sync/atomic"
)

// MaxK is the largest supported k-mer size.
const MaxK = 64

// MaxGenomes is the largest supported number of input genomes.
const MaxGenomes = 256

// ErrInvalidK means k < 1.
var ErrInvalidK = errors.New("sans: invalid k-mer size")

// ErrInvalidN means the genome bound is < 1.
var ErrInvalidN = errors.New("sans: invalid genome count")

// ErrNOverflow means the genome bound is beyond MaxGenomes.
var ErrNOverflow = errors.New("sans: genome count overflow (1-256)")

// ErrInvalidTopSize means the top list size is 0.
var ErrInvalidTopSize = errors.New("sans: top list size must be positive")

// ErrInvalidIupac means max-iupac is 0.
var ErrInvalidIupac = errors.New("sans: max-iupac must be positive")

// ErrNilWeightFunc means AddWeights was called without a weight function.
var ErrNilWeightFunc = errors.New("sans: nil weight function")

// ErrGenomeIndex means a genome index is beyond the configured bound.
var ErrGenomeIndex = errors.New("sans: genome index out of range")

// ErrSealed means an ingestion call arrived after AddWeights.
var ErrSealed = errors.New("sans: k-mer table already sealed")

// ErrNotSealed means a filter or output call arrived before AddWeights.
var ErrNotSealed = errors.New("sans: k-mer table not sealed yet")

// ErrCancelled means the engine observed a cancellation request.
var ErrCancelled = errors.New("sans: cancelled")

// ErrNameShortage means OutputSplits received fewer names than genomes.
var ErrNameShortage = errors.New("sans: not enough genome names")

// WeightFunc combines the k-mer support of a color and of its complement
// into a split weight. It must be pure and must not retain its arguments.
type WeightFunc func(pos, neg uint32) float64

// Options configures an Engine for one run.
type Options struct {
	// K is the k-mer size, 1 to MaxK. Sizes up to 32 are stored in a
	// single machine word, larger ones in two.
	K int
	// Genomes is the exclusive upper bound N of genome indices, 1 to
	// MaxGenomes. Up to 64 genomes a color is a single machine word.
	Genomes int
	// TopSize bounds the number of retained splits (T).
	TopSize uint64
	// Shards overrides the k-mer table shard count (rounded up to a
	// power of two). 0 selects the default.
	Shards int
}

// Summary reports what an engine did, regardless of partial failures.
type Summary struct {
	SequencesSeen  uint64
	KmersInserted  uint64
	WindowsSkipped uint64
	WeightsDropped uint64
	SplitsEmitted  uint64
}

// Split is one retained bipartition: the genome indices on the canonical
// side of the split, and its weight.
type Split struct {
	Weight  float64
	Genomes []int
}

// Engine is the split computation pipeline: concurrent k-mer ingestion,
// then sealing and weighting, then filtering and output. AddKmers and
// AddKmersIUPAC are safe for concurrent use; everything after the
// ingestion barrier is single-owner.
type Engine interface {
	// AddKmers ingests a plain DNA sequence for the given genome. Bytes
	// outside ACGT (case-insensitive, U as T) reset the window.
	AddKmers(sequence []byte, genome uint64) error
	// AddKmersIUPAC ingests a sequence with ambiguity codes, expanding
	// each window into at most maxIupac concrete k-mers.
	AddKmersIUPAC(sequence []byte, genome uint64, maxIupac uint64) error
	// AddWeights seals the k-mer table, aggregates colors and builds the
	// top split list using the given weight function.
	AddWeights(weight WeightFunc) error
	// FilterNone leaves the split list as is.
	FilterNone() error
	// FilterTree1 greedily keeps a maximum-weight strictly compatible
	// subset of the split list.
	FilterTree1() error
	// FilterTree2 greedily keeps a maximum-weight weakly compatible
	// subset of the split list.
	FilterTree2() error
	// Splits returns the retained splits in descending weight order.
	Splits() []Split
	// OutputSplits renders one line per retained split: the weight
	// followed by the names of the genomes on the canonical side,
	// tab-separated, in descending weight order.
	OutputSplits(w io.Writer, names []string) error
	// EachKmer calls fn for every distinct canonical k-mer with the
	// genomes containing it. Valid after AddWeights.
	EachKmer(fn func(kmer []byte, genomes []int)) error
	// Cancel requests cooperative cancellation; workers observe it
	// between sequences.
	Cancel()
	// Summary reports the run counters.
	Summary() Summary
	// KmerCount returns the number of distinct canonical k-mers seen.
	KmerCount() int
	K() int
	Genomes() int
}

// defaultShards is the k-mer table shard count when Options.Shards is 0.
const defaultShards = 256

// New builds an engine for the given configuration, selecting the k-mer
// and color representations from the K=32 and N=64 thresholds.
func New(opt Options) (Engine, error) {
	switch {
	case opt.K < 1:
		return nil, ErrInvalidK
	case opt.K > MaxK:
		return nil, ErrKOverflow
	case opt.Genomes < 1:
		return nil, ErrInvalidN
	case opt.Genomes > MaxGenomes:
		return nil, ErrNOverflow
	case opt.TopSize == 0:
		return nil, ErrInvalidTopSize
	}

	shards := opt.Shards
	if shards <= 0 {
		shards = defaultShards
	}
	for shards&(shards-1) != 0 {
		shards++
	}
	opt.Shards = shards

	if opt.K <= 32 {
		if opt.Genomes <= 64 {
			return newEngine[uint64, uint64](newKmer64Ops(opt.K), newColor64Ops(opt.Genomes), opt), nil
		}
		return newEngine[uint64, colorXL](newKmer64Ops(opt.K), newColorXLOps(opt.Genomes), opt), nil
	}
	if opt.Genomes <= 64 {
		return newEngine[kmerXL, uint64](newKmerXLOps(opt.K), newColor64Ops(opt.Genomes), opt), nil
	}
	return newEngine[kmerXL, colorXL](newKmerXLOps(opt.K), newColorXLOps(opt.Genomes), opt), nil
}

// engine is the generic pipeline over one k-mer and one color
// representation.
type engine[K comparable, C comparable] struct {
	k, n int
	kops kmerOps[K]
	cops colorOps[C]

	tab    *kmerTable[K, C]
	splits *splitList[C]

	sealed    atomic.Bool
	cancelled atomic.Bool

	nSeqs    atomic.Uint64
	nKmers   atomic.Uint64
	nSkipped atomic.Uint64
	nDropped atomic.Uint64
	nSplits  atomic.Uint64
}

func newEngine[K comparable, C comparable](kops kmerOps[K], cops colorOps[C], opt Options) *engine[K, C] {
	return &engine[K, C]{
		k:      opt.K,
		n:      opt.Genomes,
		kops:   kops,
		cops:   cops,
		tab:    newKmerTable[K, C](kops, cops, opt.Shards),
		splits: newSplitList[C](opt.TopSize),
	}
}

func (e *engine[K, C]) K() int { return e.k }

func (e *engine[K, C]) Genomes() int { return e.n }

func (e *engine[K, C]) KmerCount() int { return e.tab.len() }

func (e *engine[K, C]) Cancel() { e.cancelled.Store(true) }

func (e *engine[K, C]) Summary() Summary {
	return Summary{
		SequencesSeen:  e.nSeqs.Load(),
		KmersInserted:  e.nKmers.Load(),
		WindowsSkipped: e.nSkipped.Load(),
		WeightsDropped: e.nDropped.Load(),
		SplitsEmitted:  e.nSplits.Load(),
	}
}
