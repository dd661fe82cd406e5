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
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
	"github.com/twotwotwo/sorts/sortutil"

	"github.com/lrobidou/sans"
)

// kmersCmd represents
var kmersCmd = &cobra.Command{
	Use:   "kmers",
	Short: "dump the colored k-mer table",
	Long: `dump the colored k-mer table

Ingests the input files like "sans splits" and writes one line per
distinct canonical k-mer: the k-mer sequence and the comma-separated
names of the genomes containing it, sorted by k-mer.

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
		if len(files) > sans.MaxGenomes {
			checkError(fmt.Errorf("at most %d input files allowed", sans.MaxGenomes))
		}
		outFile := getFlagString(cmd, "out-file")

		eng, err := sans.New(sans.Options{
			K:       k,
			Genomes: len(files),
			TopSize: 1,
		})
		checkError(err)

		names := make([]string, len(files))
		for i, file := range files {
			names[i] = filepath.Base(file)
		}

		var wg sync.WaitGroup
		tokens := make(chan int, opt.NumCPUs)
		for i, file := range files {
			wg.Add(1)
			tokens <- 1
			go func(file string, g uint64) {
				defer func() {
					wg.Done()
					<-tokens
				}()
				fastxReader, err := fastx.NewDefaultReader(file)
				if err != nil {
					log.Warningf("fail to read %s: %s", file, err)
					return
				}
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
					if err = eng.AddKmers(record.Seq.Seq, g); err != nil {
						log.Warningf("skipping sequence of %s: %s", file, err)
					}
				}
			}(file, uint64(i))
		}
		wg.Wait()

		// sealing makes the table iterable; the split list is not used
		checkError(eng.AddWeights(sans.ArithMean))

		lines := make([]string, 0, eng.KmerCount())
		var sb strings.Builder
		checkError(eng.EachKmer(func(kmer []byte, genomes []int) {
			sb.Reset()
			sb.Write(kmer)
			sb.WriteByte('\t')
			for i, g := range genomes {
				if i > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(names[g])
			}
			lines = append(lines, sb.String())
		}))
		sortutil.Strings(lines)

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		for _, line := range lines {
			outfh.WriteString(line)
			outfh.WriteByte('\n')
		}

		if opt.Verbose {
			log.Infof("%s distinct k-mers saved to %s", humanize.Comma(int64(len(lines))), outFile)
		}
	},
}

func init() {
	RootCmd.AddCommand(kmersCmd)

	kmersCmd.Flags().IntP("kmer-len", "k", 31, "k-mer length")
	kmersCmd.Flags().StringP("out-file", "o", "-", `output file ("-" for stdout)`)
}
