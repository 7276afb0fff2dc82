package crosscheck_test

import (
	"context"
	"testing"

	mg "chess-rules/chessmg"
	"chess-rules/crosscheck"
)

var positions = []struct {
	name  string
	fen   string
	depth int
}{
	{"initial", mg.StartFEN, 3},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
	{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
	{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2},
	{"en passant", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 3},
	{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2},
}

func TestCompare_Dragontooth(t *testing.T) {
	for _, tt := range positions {
		t.Run(tt.name, func(t *testing.T) {
			p := mg.MustParseFEN(tt.fen)
			mm, err := crosscheck.Compare(p, tt.depth, crosscheck.Dragontooth{})
			if err != nil {
				t.Fatalf("Compare: %v", err)
			}
			for _, m := range mm {
				t.Errorf("%v", m)
			}
		})
	}
}

func TestCompare_Notnil(t *testing.T) {
	for _, tt := range positions {
		depth := tt.depth
		if depth > 2 {
			depth = 2
		}
		t.Run(tt.name, func(t *testing.T) {
			p := mg.MustParseFEN(tt.fen)
			mm, err := crosscheck.Compare(p, depth, crosscheck.Notnil{})
			if err != nil {
				t.Fatalf("Compare: %v", err)
			}
			for _, m := range mm {
				t.Errorf("%v", m)
			}
		})
	}
}

func TestDivide_MatchesPerft(t *testing.T) {
	p := mg.NewPosition()
	div := crosscheck.Divide(p, 3)
	if len(div) != 20 {
		t.Fatalf("root moves: got %d want 20", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != mg.Perft(p, 3) {
		t.Fatalf("divide sum %d != perft %d", sum, mg.Perft(p, 3))
	}
	if div["e2e4"] != 600 || div["g1f3"] != 440 {
		t.Fatalf("e2e4=%d g1f3=%d, want 600 and 440", div["e2e4"], div["g1f3"])
	}
}

func TestCompareAll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping oracle sweep in short mode")
	}
	fens := make([]string, 0, len(positions))
	for _, tt := range positions {
		fens = append(fens, tt.fen)
	}
	out, err := crosscheck.CompareAll(context.Background(), fens, 2, 4, crosscheck.Dragontooth{}, crosscheck.Notnil{})
	if err != nil {
		t.Fatalf("CompareAll: %v", err)
	}
	for fen, mm := range out {
		t.Errorf("%s: %v", fen, mm)
	}
}

func TestCompareAll_BadFEN(t *testing.T) {
	_, err := crosscheck.CompareAll(context.Background(), []string{"bogus"}, 1, 1, crosscheck.Dragontooth{})
	if err == nil {
		t.Fatalf("expected error for malformed FEN")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"dragontooth", "notnil"} {
		o, err := crosscheck.Lookup(name)
		if err != nil || o.Name() != name {
			t.Fatalf("Lookup(%q) = %v, %v", name, o, err)
		}
	}
	if _, err := crosscheck.Lookup("stockfish"); err == nil {
		t.Fatalf("expected error for unknown oracle")
	}
}

func TestCompare_RejectsDepthZero(t *testing.T) {
	if _, err := crosscheck.Compare(mg.NewPosition(), 0, crosscheck.Dragontooth{}); err == nil {
		t.Fatalf("expected error for depth 0")
	}
}

// skewed reports one root move with a wrong count so every position mismatches.
type skewed struct{}

func (skewed) Name() string { return "skewed" }

func (skewed) Divide(fen string, depth int) (map[string]uint64, error) {
	return map[string]uint64{"a1a1": 1}, nil
}

func TestCompareAll_KeysByInputFEN(t *testing.T) {
	fens := []string{
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
	}
	out, err := crosscheck.CompareAll(context.Background(), fens, 1, 2, skewed{})
	if err != nil {
		t.Fatalf("CompareAll: %v", err)
	}
	if len(out) != len(fens) {
		t.Fatalf("expected %d keys, got %d: %v", len(fens), len(out), out)
	}
	for _, fen := range fens {
		if len(out[fen]) == 0 {
			t.Fatalf("no mismatches under input FEN %q; keys: %v", fen, out)
		}
	}
}
