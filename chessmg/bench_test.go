package chessmg_test

import (
	"testing"

	mg "chess-rules/chessmg"
)

func benchLegalMoves(b *testing.B, fen string) {
	p, err := mg.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	buf := make([]mg.Move, 0, 256)
	c := p.SideToMove()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = p.AllValidMovesInto(buf, c)
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, mg.StartFEN)
}

func BenchmarkLegalMoves_Kiwipete(b *testing.B) {
	benchLegalMoves(b, kiwipeteFEN)
}

func BenchmarkLegalMoves_Pos6(b *testing.B) {
	benchLegalMoves(b, "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10")
}

func BenchmarkIsKingChecked_Kiwipete(b *testing.B) {
	p := mg.MustParseFEN(kiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.IsKingChecked(mg.White)
	}
}

func BenchmarkApply_AllMoves_Initial(b *testing.B) {
	p := mg.NewPosition()
	moves := p.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			next := *p
			next.Apply(m)
		}
	}
}

func benchPerft(b *testing.B, fen string, depth int) {
	p, err := mg.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = mg.Perft(p, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, mg.StartFEN, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, kiwipeteFEN, 3)
}
