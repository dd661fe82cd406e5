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
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"

	"github.com/lrobidou/sans"
)

// splitsCmd represents
var splitsCmd = &cobra.Command{
	Use:   "splits",
	Short: "compute phylogenetic splits from FASTA/Q files",
	Long: `compute phylogenetic splits from FASTA/Q files

One genome per input file; the genome index is the position in the file
list. Every k-mer shared by a subset of the genomes supports the split of
that subset against the rest; splits are weighted by the k-mer counts of
their two sides and the heaviest ones are kept.

Output is one split per line: the weight, then the names of the genomes on
one side of the split, tab-separated, ordered by decreasing weight. A
.gz output file is compressed.

Filters:
  none     keep the top list as is
  tree1    maximum weight subset compatible with one tree
  tree2    maximum weight weakly compatible subset

Weight functions:
  arith    arithmetic mean of the two k-mer counts
  geom     geometric mean of the two k-mer counts
  geom2    geometric mean with pseudo-counts

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)
		seq.ValidateSeq = false

		files := getFileListFromArgsAndFile(cmd, args)
		if len(files) == 0 {
			checkError(fmt.Errorf("no input files given"))
		}
		if opt.Verbose {
			log.Infof("%d input file(s) given", len(files))
		}

		k := getFlagPositiveInt(cmd, "kmer-len")
		if k > sans.MaxK {
			checkError(fmt.Errorf("k > %d not supported", sans.MaxK))
		}
		if len(files) > sans.MaxGenomes {
			checkError(fmt.Errorf("at most %d input files allowed", sans.MaxGenomes))
		}

		top := getFlagNonNegativeInt(cmd, "top")
		if top == 0 {
			top = 10 * len(files)
		}
		filter := getFlagString(cmd, "filter")
		meanName := getFlagString(cmd, "mean")
		maxIupac := getFlagNonNegativeInt(cmd, "max-iupac")
		outFile := getFlagString(cmd, "out-file")

		var weightFn sans.WeightFunc
		switch meanName {
		case "arith":
			weightFn = sans.ArithMean
		case "geom":
			weightFn = sans.GeomMean
		case "geom2":
			weightFn = sans.GeomMean2
		default:
			checkError(fmt.Errorf("unknown weight function: %s", meanName))
		}
		if filter != "none" && filter != "tree1" && filter != "tree2" {
			checkError(fmt.Errorf("unknown filter: %s", filter))
		}

		eng, err := sans.New(sans.Options{
			K:       k,
			Genomes: len(files),
			TopSize: uint64(top),
		})
		checkError(err)

		names := make([]string, len(files))
		for i, file := range files {
			names[i] = filepath.Base(file)
		}

		// cancel on interrupt; workers notice between sequences
		chSignal := make(chan os.Signal, 1)
		signal.Notify(chSignal, os.Interrupt)
		go func() {
			<-chSignal
			log.Warning("interrupt received, cancelling")
			eng.Cancel()
		}()

		// ingestion: one worker per file, at most NumCPUs at a time
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
				if opt.Verbose {
					log.Infof("reading genome %d: %s", g, file)
				}
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
					if maxIupac > 0 {
						err = eng.AddKmersIUPAC(record.Seq.Seq, g, uint64(maxIupac))
					} else {
						err = eng.AddKmers(record.Seq.Seq, g)
					}
					if err != nil {
						if errors.Is(err, sans.ErrCancelled) {
							return
						}
						log.Warningf("skipping sequence of %s: %s", file, err)
					}
				}
			}(file, uint64(i))
		}
		wg.Wait()

		checkError(eng.AddWeights(weightFn))

		switch filter {
		case "tree1":
			checkError(eng.FilterTree1())
		case "tree2":
			checkError(eng.FilterTree2())
		default:
			checkError(eng.FilterNone())
		}

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(strings.ToLower(outFile), ".gz"))
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		checkError(eng.OutputSplits(outfh, names))

		s := eng.Summary()
		if opt.Verbose {
			style := &stable.TableStyle{
				Name: "plain",

				HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
				DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
				Padding:   "",
			}
			tbl := stable.New()
			tbl.HeaderWithFormat([]stable.Column{
				{Header: "metric"},
				{Header: "value", Align: stable.AlignRight},
			})
			tbl.AddRow([]interface{}{"sequences", humanize.Comma(int64(s.SequencesSeen))})
			tbl.AddRow([]interface{}{"k-mers inserted", humanize.Comma(int64(s.KmersInserted))})
			tbl.AddRow([]interface{}{"distinct k-mers", humanize.Comma(int64(eng.KmerCount()))})
			tbl.AddRow([]interface{}{"windows skipped", humanize.Comma(int64(s.WindowsSkipped))})
			tbl.AddRow([]interface{}{"weights dropped", humanize.Comma(int64(s.WeightsDropped))})
			tbl.AddRow([]interface{}{"splits", humanize.Comma(int64(s.SplitsEmitted))})
			os.Stderr.Write(tbl.Render(style))
		}
		log.Infof("%s splits saved to %s", humanize.Comma(int64(s.SplitsEmitted)), outFile)
	},
}

func init() {
	RootCmd.AddCommand(splitsCmd)

	splitsCmd.Flags().IntP("kmer-len", "k", 31, "k-mer length")
	splitsCmd.Flags().IntP("top", "t", 0, "top list size (default: 10 x number of genomes)")
	splitsCmd.Flags().StringP("filter", "f", "none", `filter mode, "none", "tree1" or "tree2"`)
	splitsCmd.Flags().StringP("mean", "m", "geom2", `weight function, "arith", "geom" or "geom2"`)
	splitsCmd.Flags().IntP("max-iupac", "x", 0, "maximum number of k-mers per ambiguous window, 0 disables IUPAC expansion")
	splitsCmd.Flags().StringP("out-file", "o", "-", `output file ("-" for stdout)`)
}
