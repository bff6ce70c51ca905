// Command tilesample runs a single tile sampler over a swath and saves the
// resulting stack and metadata as .npy files.
//
// Usage: tilesample -sampler random|strided|cloud|label [options] <swath.npy>
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"swath-tiler/internal/pipeline"
	"swath-tiler/internal/swath"
	"swath-tiler/internal/tile"
)

var (
	flagSampler  = flag.String("sampler", "strided", "Sampler: random, strided, cloud or label")
	flagTileSize = flag.Int("tile", 3, "Tile size in pixels")
	flagStride   = flag.Int("stride", 3, "Stride between tile centres")
	flagCount    = flag.Int("n", 0, "Number of tiles for the cloud sampler")
	flagSeed     = flag.Int64("seed", 0, "Random seed, 0 = time-based")
	flagOut      = flag.String("out", "tiles", "Output directory")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s -sampler random|strided|cloud|label [options] <swath.npy>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *flagTileSize <= 0 || *flagStride <= 0 {
		fmt.Fprintln(os.Stderr, "Error: tile size and stride must be positive")
		os.Exit(1)
	}

	sw, err := pipeline.LoadSwath(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	layout := swath.LabelledLayout()

	var st *tile.Stack
	switch *flagSampler {
	case "random":
		st = tile.ExtractRandom(sw, *flagTileSize, rng)
	case "strided":
		st = tile.ExtractStrided(sw, *flagTileSize, *flagStride)
	case "cloud":
		if *flagCount <= 0 {
			fmt.Fprintln(os.Stderr, "Error: the cloud sampler needs -n > 0")
			os.Exit(1)
		}
		cs := tile.ExtractCloudRandom(sw, layout, *flagCount, *flagTileSize, *flagStride, rng)
		if cs.Short() {
			fmt.Printf("cloudy pool has only %d of %d requested tiles\n", cs.Available, cs.Requested)
		}
		st = cs.Stack
	case "label":
		st = tile.ExtractLabels(sw, layout, *flagTileSize)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown sampler %q\n", *flagSampler)
		os.Exit(1)
	}

	if err := pipeline.SaveStack(*flagOut, sw.Name, st); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d tiles (%dx%dx%d) saved under %s\n",
		sw.Name, st.Len(), st.Bands, st.Height, st.Width, *flagOut)
}
