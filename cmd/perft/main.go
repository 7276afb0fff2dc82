package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	mg "chess-rules/chessmg"
	"chess-rules/crosscheck"
)

type options struct {
	depth   int
	divide  bool
	repeat  int
	workers int
	label   string
	cpuProf string
	memProf string
}

func main() {
	fen := flag.String("fen", mg.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	workers := flag.Int("workers", 1, "Goroutines for root-split perft (0 = GOMAXPROCS)")
	verify := flag.String("verify", "", "Cross-check divide against an oracle: dragontooth or notnil")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := mg.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *verify != "" {
		oracle, err := crosscheck.Lookup(*verify)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if err := runVerify(pos, *depth, oracle); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	opts := options{
		depth:   *depth,
		divide:  *divide,
		repeat:  *repeat,
		workers: *workers,
		label:   *label,
		cpuProf: *cpuProf,
		memProf: *memProf,
	}
	if err := run(pos, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runVerify(pos *mg.Position, depth int, oracle crosscheck.Oracle) error {
	mismatches, err := crosscheck.Compare(pos, depth, oracle)
	if err != nil {
		return fmt.Errorf("cross-check error: %w", err)
	}
	for _, m := range mismatches {
		fmt.Println(m)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d root moves differ from %s", len(mismatches), oracle.Name())
	}
	fmt.Printf("OK: divide(%d) matches %s\n", depth, oracle.Name())
	return nil
}

// run performs divide or the timing loop. Returning instead of exiting lets
// the deferred CPU profile stop flush the file.
func run(pos *mg.Position, opts options) error {
	// Optional divide output
	if opts.divide {
		div := crosscheck.Divide(pos, opts.depth)
		moves := maps.Keys(div)
		// Sort moves for stable output
		slices.Sort(moves)
		var sum uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Printf("Total: %d\n", sum)
		return nil
	}

	// Optional CPU profiling
	if opts.cpuProf != "" {
		f, err := os.Create(opts.cpuProf)
		if err != nil {
			return fmt.Errorf("creating cpuprofile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < opts.repeat; i++ {
		if opts.workers == 1 {
			totalNodes += mg.Perft(pos, opts.depth)
			continue
		}
		n, err := mg.PerftParallel(context.Background(), pos, opts.depth, opts.workers)
		if err != nil {
			return fmt.Errorf("perft: %w", err)
		}
		totalNodes += n
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", opts.label, opts.depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if opts.memProf != "" {
		f, err := os.Create(opts.memProf)
		if err != nil {
			return fmt.Errorf("creating memprofile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("write heap profile: %w", err)
		}
	}
	return nil
}
