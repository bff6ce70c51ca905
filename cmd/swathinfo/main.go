// Command swathinfo reports completeness and per-band statistics for swath
// .npy files.
//
// Usage: swathinfo [options] <swath.npy> [<swath.npy> ...]
package main

import (
	"flag"
	"fmt"
	"os"

	"swath-tiler/internal/pipeline"
	"swath-tiler/internal/swath"
)

var flagBands = flag.Bool("bands", false, "Print per-band statistics")

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <swath.npy> [<swath.npy> ...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	for _, path := range flag.Args() {
		sw, err := pipeline.LoadSwath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		frac := sw.Completeness()
		fmt.Printf("%s: shape (%d, %d, %d), %.2f%% complete\n",
			sw.Name, sw.Bands, sw.Rows, sw.Cols, frac*100)

		if !*flagBands {
			continue
		}
		fmt.Printf("  %4s %10s %10s %12s %12s %12s %12s\n",
			"band", "valid", "missing", "mean", "stddev", "min", "max")
		for _, bs := range swath.Stats(sw) {
			fmt.Printf("  %4d %10d %10d %12.4f %12.4f %12.4f %12.4f\n",
				bs.Band, bs.Valid, bs.Missing, bs.Mean, bs.StdDev, bs.Min, bs.Max)
		}
	}
}
