package chessmg

import "golang.org/x/exp/rand"

// Zobrist keys for pieces, castling rights, en-passant file and side to move.
var (
	zobristPiece     [16][64]uint64 // indexed by Piece
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64 // Black to move
)

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes are stable across runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := range zobristPiece {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash returns the Zobrist key of the position. Equal placement, side to
// move, castling rights and en-passant file give equal keys.
func (p *Position) Hash() uint64 {
	var key uint64
	occ := p.AllOccupancy()
	for occ != 0 {
		sq := popLSB(&occ)
		key ^= zobristPiece[p.At(sq)][sq]
	}
	if p.SideToMove() == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.CastleRights()]
	if ep := p.EnPassantTarget(); ep != NoSquare {
		key ^= zobristEnPassant[ep.File()]
	}
	return key
}
