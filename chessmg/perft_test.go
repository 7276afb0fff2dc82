package chessmg_test

import (
	"context"
	"testing"

	mg "chess-rules/chessmg"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	endgameFEN   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	promotionFEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
)

type perftCase struct {
	depth int
	nodes uint64
	slow  bool
}

func runPerft(t *testing.T, fen string, cases []perftCase) {
	t.Helper()
	p, err := mg.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	for _, c := range cases {
		if c.slow && testing.Short() {
			t.Logf("skipping depth %d in short mode", c.depth)
			continue
		}
		if got := mg.Perft(p, c.depth); got != c.nodes {
			t.Fatalf("perft(%d): got %d want %d", c.depth, got, c.nodes)
		}
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("root position modified by perft: %v", err)
	}
}

func TestPerftInitialPosition(t *testing.T) {
	runPerft(t, mg.StartFEN, []perftCase{
		{1, 20, false},
		{2, 400, false},
		{3, 8902, false},
		{4, 197281, true},
		{5, 4865609, true},
	})
}

func TestPerftDefaultMatchesStartFEN(t *testing.T) {
	if got, want := mg.Perft(mg.NewPosition(), 3), uint64(8902); got != want {
		t.Fatalf("perft(3) from NewPosition: got %d want %d", got, want)
	}
}

func TestPerftKiwipete(t *testing.T) {
	p := mg.MustParseFEN(kiwipeteFEN)
	if got := mg.Perft(p, 1); got != 48 {
		// Diagnostics: list generated moves by piece
		moves := p.LegalMoves()
		counts := map[mg.Kind]int{}
		for _, m := range moves {
			counts[p.PieceAt(m.From).Kind()]++
		}
		t.Logf("by kind: %v", counts)
		for _, m := range moves {
			t.Logf("  %v", m)
		}
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	runPerft(t, kiwipeteFEN, []perftCase{
		{2, 2039, false},
		{3, 97862, false},
		{4, 4085603, true},
	})
}

func TestPerftEndgame(t *testing.T) {
	runPerft(t, endgameFEN, []perftCase{
		{1, 14, false},
		{2, 191, false},
		{3, 2812, false},
		{4, 43238, false},
	})
}

func TestPerftPromotionHeavy(t *testing.T) {
	runPerft(t, promotionFEN, []perftCase{
		{1, 6, false},
		{2, 264, false},
		{3, 9467, false},
		{4, 422333, true},
	})
}

func TestPerftEnPassantPosition(t *testing.T) {
	runPerft(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", []perftCase{
		{1, 5, false},
		{2, 19, false},
	})
}

func TestPerftPromotionPosition(t *testing.T) {
	runPerft(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1", []perftCase{
		{1, 11, false},
	})
}

// Additional standard perft positions from Chess Programming Wiki
func TestPerft_Position5(t *testing.T) {
	runPerft(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1", []perftCase{
		{1, 44, false},
		{2, 1486, false},
		{3, 62379, false},
	})
}

func TestPerft_Position6(t *testing.T) {
	runPerft(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []perftCase{
		{1, 46, false},
		{2, 2079, false},
		{3, 89890, false},
	})
}

func TestPerftDivide_InitialDepth2(t *testing.T) {
	div := mg.PerftDivide(mg.NewPosition(), 2)
	if len(div) != 20 {
		t.Fatalf("divide length: got %d want %d", len(div), 20)
	}
	var sum uint64
	for m, v := range div {
		sum += v
		if v != 20 {
			t.Errorf("%v: got %d children want 20", m, v)
		}
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want %d", sum, 400)
	}
}

func TestPerftParallelMatchesSequential(t *testing.T) {
	p := mg.MustParseFEN(kiwipeteFEN)
	got, err := mg.PerftParallel(context.Background(), p, 3, 4)
	if err != nil {
		t.Fatalf("PerftParallel: %v", err)
	}
	if want := mg.Perft(p, 3); got != want {
		t.Fatalf("parallel perft: got %d want %d", got, want)
	}
}

func TestPerftParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mg.PerftParallel(ctx, mg.NewPosition(), 3, 2); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestPerftDepthZero(t *testing.T) {
	if got := mg.Perft(mg.NewPosition(), 0); got != 1 {
		t.Fatalf("perft(0): got %d want 1", got)
	}
	if div := mg.PerftDivide(mg.NewPosition(), 0); len(div) != 0 {
		t.Fatalf("divide(0): got %d entries want 0", len(div))
	}
}

// validateTree applies every legal move to depth and checks the mask
// invariants of each reached position. It returns the leaf count.
func validateTree(t *testing.T, p *mg.Position, depth int) uint64 {
	t.Helper()
	if err := p.Validate(); err != nil {
		t.Fatalf("invalid position %q: %v", p.FEN(), err)
	}
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range p.LegalMoves() {
		nodes += validateTree(t, p.Applied(m), depth-1)
	}
	return nodes
}

func TestValidateEveryReachedPosition(t *testing.T) {
	tests := []struct {
		fen   string
		nodes uint64
	}{
		{mg.StartFEN, 8902},
		{kiwipeteFEN, 97862},
		{promotionFEN, 9467},
	}
	for _, tt := range tests {
		if got := validateTree(t, mg.MustParseFEN(tt.fen), 3); got != tt.nodes {
			t.Fatalf("walk of %q: got %d leaves want %d", tt.fen, got, tt.nodes)
		}
	}
}
