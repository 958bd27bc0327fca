// Command hexconsole runs a line-oriented REPL against the hexcore
// engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hexmind/hexcore/pkg/config"
	"github.com/hexmind/hexcore/pkg/engine"
	"github.com/hexmind/hexcore/pkg/engine/console"
	"github.com/hexmind/hexcore/pkg/search"
)

var (
	size  = flag.Int("size", 11, "Board side length")
	depth = flag.Int("depth", 0, "Search depth limit (0 == unbounded)")
	hash  = flag.Uint64("tt", 1<<20, "Transposition table entries (power of two, 0 disables)")
	seed  = flag.Uint64("seed", 0, "Zobrist seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: hexconsole [options]

hexconsole is a debugging REPL for the hexcore decision engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg := config.Default(*size)
	cfg.MaxDepth = *depth
	cfg.TTCapacity = *hash
	cfg.Seed = *seed
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := search.AlphaBeta{}
	e := engine.New(ctx, "hexmind", *size, s,
		engine.WithZobrist(cfg.Seed),
		engine.WithOptions(engine.Options{
			Depth:         cfg.MaxDepth,
			TTCapacity:    cfg.TTCapacity,
			Coefficients:  cfg.Coefficients,
			BridgeEnabled: cfg.BridgeEnabled,
		}))

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}
