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

package cmd

import (
	"fmt"
	"io"
	"math"
	"runtime"

	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
	"github.com/twotwotwo/sorts/sortutil"
	"github.com/will-rowe/nthash"

	"github.com/lrobidou/sans"
)

// estimateSketchSize is the bottom-k sketch size of the cardinality
// estimator.
const estimateSketchSize = 10000

// estimateCmd represents
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "estimate the number of distinct canonical k-mers per input",
	Long: `estimate the number of distinct canonical k-mers per input

Hashes every canonical k-mer with ntHash, collects all hash values of a
file and sorts them; the position of the 10000th smallest distinct hash
(a bottom-k estimate) gives the distinct k-mer count without building
the k-mer table. Inputs with fewer distinct hashes are counted exactly. Useful for sizing
expectations before "sans splits" on large inputs.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)
		sorts.MaxProcs = opt.NumCPUs
		seq.ValidateSeq = false

		files := getFileListFromArgsAndFile(cmd, args)
		if len(files) == 0 {
			checkError(fmt.Errorf("no input files given"))
		}

		k := getFlagPositiveInt(cmd, "kmer-len")
		if k > sans.MaxK {
			checkError(fmt.Errorf("k > %d not supported", sans.MaxK))
		}

		for _, file := range files {
			fastxReader, err := fastx.NewDefaultReader(file)
			checkError(err)

			var hashes []uint64
			var record *fastx.Record
			for {
				record, err = fastxReader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					log.Warningf("fail to read %s: %s", file, err)
					break
				}
				if len(record.Seq.Seq) < k {
					continue
				}
				hasher, err := nthash.NewHasher(&record.Seq.Seq, uint(k))
				if err != nil {
					log.Warningf("skipping sequence of %s: %s", file, err)
					continue
				}
				for {
					hash, ok := hasher.Next(true)
					if !ok {
						break
					}
					hashes = append(hashes, hash)
				}
			}

			log.Infof("%s: ~%s distinct k-mers (%s windows)",
				file,
				humanize.Comma(int64(estimateDistinct(hashes))),
				humanize.Comma(int64(len(hashes))))
		}
	},
}

// estimateDistinct derives a distinct count from canonical k-mer hashes:
// exact below the sketch size, otherwise a bottom-k estimate from the
// position of the k-th smallest distinct hash in the hash space.
func estimateDistinct(hashes []uint64) uint64 {
	sortutil.Uint64s(hashes)

	var distinct int
	var kth uint64
	for i, h := range hashes {
		if i > 0 && h == hashes[i-1] {
			continue
		}
		distinct++
		if distinct == estimateSketchSize {
			kth = h
			break
		}
	}
	if distinct < estimateSketchSize {
		return uint64(distinct)
	}
	return uint64(float64(estimateSketchSize-1) / float64(kth) * math.MaxUint64)
}

func init() {
	RootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().IntP("kmer-len", "k", 31, "k-mer length")
}
