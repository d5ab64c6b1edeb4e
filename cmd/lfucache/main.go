// Command lfucache exercises an LFU cache of integers,
// either interactively or with randomly generated operations.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/djdv/go-lfucache/internal/console"
)

var (
	capacity      = flag.Int("capacity", 10, "Maximum number of entries in the cache")
	evictFraction = flag.Float64("evict-fraction", 0.2, "Fraction of capacity to evict when full, within (0, 1)")
	mode          = flag.String("mode", string(console.ModeManual), "Command source (manual, random)")
	operations    = flag.Int("ops", 10000, "Number of operations to generate in random mode")
	seed          = flag.Int64("seed", 1, "Random mode seed")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("lfucache: ")
	config := console.Config{
		Mode:          console.Mode(*mode),
		Capacity:      *capacity,
		EvictFraction: *evictFraction,
		Operations:    *operations,
		Seed:          *seed,
	}
	if err := console.Run(config, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
