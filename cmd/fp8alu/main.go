package main

import (
	"flag"
	"fmt"
	"iter"
	"log"
	"os"

	"github.com/hwsim/fp8alu/alu"
	"github.com/hwsim/fp8alu/fp8"
	"github.com/hwsim/fp8alu/harness"
	"github.com/hwsim/fp8alu/internal"
)

func main() {
	var script string
	var stress int
	var seed int64
	var sweep string
	var trace string
	var flush bool
	var verbose bool

	flag.StringVar(&script, "s", "", ".star vector script to run")
	flag.IntVar(&stress, "n", 0, "Number of random stress cases")
	flag.Int64Var(&seed, "seed", 1, "Stress generator seed")
	flag.StringVar(&sweep, "x", "", "Exhaustive sweep of an operation, or 'all'")
	flag.StringVar(&trace, "o", "", "Trace output file")
	flag.BoolVar(&flush, "f", false, "Flush-to-zero mode (default denormal)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	mode := fp8.Denormal
	if flush {
		mode = fp8.FlushToZero
	}

	h := harness.NewHarness(mode)
	h.Verbose = verbose
	h.Alu.Verbose = verbose
	h.Output = os.Stderr

	if len(trace) != 0 {
		ouf, err := os.Create(trace)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		defer ouf.Close()
		h.Trace = &harness.Recorder{Output: ouf}
	}

	var sources []iter.Seq[harness.Case]

	if len(script) != 0 {
		cases, err := harness.LoadScript(script, nil)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		sources = append(sources, internal.IterSeqOf(cases...))
	}

	if stress > 0 {
		sources = append(sources, harness.Stress(seed, stress))
	}

	if len(sweep) != 0 {
		if sweep == "all" {
			for op := alu.OP_ADD; op <= alu.OP_NOT; op++ {
				sources = append(sources, harness.Exhaustive(op))
			}
		} else {
			op, err := alu.ParseOp(sweep)
			if err != nil {
				log.Fatal(err)
			}
			sources = append(sources, harness.Exhaustive(op))
		}
	}

	if len(sources) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	h.RunAll(internal.IterSeqConcat(sources...))

	fmt.Println(h.Summary())
	if h.Failed != 0 {
		os.Exit(1)
	}
}
