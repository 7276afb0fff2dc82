package chessmg

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(p, depth, &pc)
}

// perftCtx keeps one move buffer per depth so the recursion does not allocate.
type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 256)
	}
	return buf[:0]
}

func perftRec(p *Position, depth int, pc *perftCtx) uint64 {
	moves := p.AllValidMovesInto(pc.bufFor(depth), p.SideToMove())
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := *p
		next.Apply(m)
		nodes += perftRec(&next, depth-1, pc)
	}
	return nodes
}

// PerftDivide returns the leaf count below each legal root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.LegalMoves() {
		result[m] = Perft(p.Applied(m), depth-1)
	}
	return result
}

// PerftParallel is Perft with the root moves spread over workers goroutines.
// workers <= 0 means GOMAXPROCS. Cancellation is observed between root moves.
func PerftParallel(ctx context.Context, p *Position, depth, workers int) (uint64, error) {
	if depth <= 1 {
		return Perft(p, depth), nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	moves := p.LegalMoves()
	counts := make([]uint64, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts[i] = Perft(p.Applied(m), depth-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var nodes uint64
	for _, n := range counts {
		nodes += n
	}
	return nodes, nil
}
