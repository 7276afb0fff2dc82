// Package crosscheck compares chessmg perft divide counts with independent
// move generators.
package crosscheck

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	mg "chess-rules/chessmg"
)

// Oracle is a reference move generator.
type Oracle interface {
	Name() string
	// Divide returns the perft count below each root move, keyed by UCI notation.
	Divide(fen string, depth int) (map[string]uint64, error)
}

// Lookup returns the oracle registered under name.
func Lookup(name string) (Oracle, error) {
	switch name {
	case "dragontooth":
		return Dragontooth{}, nil
	case "notnil":
		return Notnil{}, nil
	default:
		return nil, fmt.Errorf("unknown oracle %q (want dragontooth or notnil)", name)
	}
}

// Divide returns chessmg's perft divide keyed by UCI notation.
func Divide(p *mg.Position, depth int) map[string]uint64 {
	div := mg.PerftDivide(p, depth)
	out := make(map[string]uint64, len(div))
	for m, n := range div {
		out[m.String()] = n
	}
	return out
}

// Mismatch is a root move whose subtree count differs. A move missing on
// one side reports 0 there.
type Mismatch struct {
	Move   string
	Got    uint64 // chessmg
	Want   uint64 // oracle
	Oracle string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: chessmg %d, %s %d", m.Move, m.Got, m.Oracle, m.Want)
}

// Compare runs both divides and returns the differing root moves sorted by move.
func Compare(p *mg.Position, depth int, oracle Oracle) ([]Mismatch, error) {
	if depth < 1 {
		return nil, fmt.Errorf("crosscheck: depth must be at least 1, got %d", depth)
	}
	want, err := oracle.Divide(p.FEN(), depth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", oracle.Name(), err)
	}
	return diff(Divide(p, depth), want, oracle.Name()), nil
}

func diff(got, want map[string]uint64, oracle string) []Mismatch {
	keys := maps.Keys(got)
	for k := range want {
		if _, ok := got[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var out []Mismatch
	for _, k := range keys {
		if got[k] != want[k] {
			out = append(out, Mismatch{Move: k, Got: got[k], Want: want[k], Oracle: oracle})
		}
	}
	return out
}

// CompareAll checks every position against every oracle concurrently, at
// most workers at a time. The result holds only positions with mismatches,
// keyed by the FEN string as given in fens.
func CompareAll(ctx context.Context, fens []string, depth int, workers int, oracles ...Oracle) (map[string][]Mismatch, error) {
	positions := make([]*mg.Position, 0, len(fens))
	for _, fen := range fens {
		p, err := mg.ParseFEN(fen)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var mu sync.Mutex
	out := make(map[string][]Mismatch)
	for i, p := range positions {
		for _, o := range oracles {
			fen, p, o := fens[i], p, o
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				mm, err := Compare(p, depth, o)
				if err != nil {
					return err
				}
				if len(mm) > 0 {
					mu.Lock()
					out[fen] = append(out[fen], mm...)
					mu.Unlock()
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
