// Package eval scores positions by material and pawn structure.
package eval

import (
	"math/bits"

	mg "chess-rules/chessmg"
)

// Score is a White-relative evaluation in pawn units.
type Score float64

// Material weights
const (
	KingWeight   Score = 200
	QueenWeight  Score = 9
	RookWeight   Score = 5
	BishopWeight Score = 3
	KnightWeight Score = 3
	PawnWeight   Score = 1
)

// Pawn structure weights, applied per affected pawn
const (
	DoubledPawnWeight  Score = -0.5
	IsolatedPawnWeight Score = -0.5
	BlockedPawnWeight  Score = -0.5
)

var kindWeights = [...]struct {
	kind   mg.Kind
	weight Score
}{
	{mg.King, KingWeight},
	{mg.Queen, QueenWeight},
	{mg.Rook, RookWeight},
	{mg.Bishop, BishopWeight},
	{mg.Knight, KnightWeight},
	{mg.Pawn, PawnWeight},
}

/* ============= HELPER VARIABLES ============= */

var onlyFile = [8]uint64{
	0x0101010101010101, 0x0202020202020202, 0x0404040404040404, 0x0808080808080808,
	0x1010101010101010, 0x2020202020202020, 0x4040404040404040, 0x8080808080808080,
}

// neighborFiles[f] covers the files directly left and right of f.
var neighborFiles = [8]uint64{
	0x0202020202020202, 0x0505050505050505, 0x0a0a0a0a0a0a0a0a, 0x1414141414141414,
	0x2828282828282828, 0x5050505050505050, 0xa0a0a0a0a0a0a0a0, 0x4040404040404040,
}

// Evaluator selects which terms contribute to the score.
type Evaluator struct {
	Material      bool
	DoubledPawns  bool
	IsolatedPawns bool
	BlockedPawns  bool
}

// Default enables every term.
func Default() Evaluator {
	return Evaluator{Material: true, DoubledPawns: true, IsolatedPawns: true, BlockedPawns: true}
}

// Evaluate returns the sum of the enabled terms. Positive favors White.
func (e Evaluator) Evaluate(p *mg.Position) Score {
	var score Score
	if e.Material {
		score += material(p)
	}
	if e.DoubledPawns {
		score += doubledPawns(p)
	}
	if e.IsolatedPawns {
		score += isolatedPawns(p)
	}
	if e.BlockedPawns {
		score += blockedPawns(p)
	}
	return score
}

// Relative converts a White-relative score to the point of view of c.
func Relative(s Score, c mg.Color) Score {
	if c == mg.Black {
		return -s
	}
	return s
}

/* ============= TERMS ============= */

func material(p *mg.Position) Score {
	var score Score
	for _, kw := range kindWeights {
		diff := bits.OnesCount64(p.Pieces(mg.White, kw.kind)) - bits.OnesCount64(p.Pieces(mg.Black, kw.kind))
		score += kw.weight * Score(diff)
	}
	return score
}

// doubledPawns counts every pawn on a file holding more than one pawn of its color.
func doubledPawns(p *mg.Position) Score {
	wPawns := p.Pieces(mg.White, mg.Pawn)
	bPawns := p.Pieces(mg.Black, mg.Pawn)
	var doubled int
	for i := 0; i < 8; i++ {
		if n := bits.OnesCount64(wPawns & onlyFile[i]); n > 1 {
			doubled += n
		}
		if n := bits.OnesCount64(bPawns & onlyFile[i]); n > 1 {
			doubled -= n
		}
	}
	return DoubledPawnWeight * Score(doubled)
}

// isolatedPawns counts pawns with no friendly pawn on a neighboring file.
func isolatedPawns(p *mg.Position) Score {
	wPawns := p.Pieces(mg.White, mg.Pawn)
	bPawns := p.Pieces(mg.Black, mg.Pawn)
	var isolated int
	for i := 0; i < 8; i++ {
		if wPawns&neighborFiles[i] == 0 {
			isolated += bits.OnesCount64(wPawns & onlyFile[i])
		}
		if bPawns&neighborFiles[i] == 0 {
			isolated -= bits.OnesCount64(bPawns & onlyFile[i])
		}
	}
	return IsolatedPawnWeight * Score(isolated)
}

// blockedPawns counts pawns whose push square is occupied by any piece.
// Capture options are not considered.
func blockedPawns(p *mg.Position) Score {
	occ := p.AllOccupancy()
	wBlocked := (p.Pieces(mg.White, mg.Pawn) << 8) & occ
	bBlocked := (p.Pieces(mg.Black, mg.Pawn) >> 8) & occ
	blocked := bits.OnesCount64(wBlocked) - bits.OnesCount64(bBlocked)
	return BlockedPawnWeight * Score(blocked)
}
