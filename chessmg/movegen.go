package chessmg

import "fmt"

// PseudoLegalMoves returns the moves of the piece on sq that obey its movement
// rules, without checking whether the mover's king is left in check.
// Castling is not included. It panics when sq is empty.
func (p *Position) PseudoLegalMoves(sq Square) []Move {
	return p.appendPieceMoves(make([]Move, 0, 28), sq, p.PieceAt(sq))
}

// appendPieceMoves dispatches on the piece kind.
func (p *Position) appendPieceMoves(dst []Move, sq Square, pc Piece) []Move {
	c := pc.Color()
	switch pc.Kind() {
	case Pawn:
		return p.appendPawnMoves(dst, sq, c)
	case Knight:
		return p.appendLeaperMoves(dst, sq, c, knightMoves[sq])
	case Bishop:
		return p.appendSliderMoves(dst, sq, c, bishopDirs[:])
	case Rook:
		return p.appendSliderMoves(dst, sq, c, rookDirs[:])
	case Queen:
		return p.appendSliderMoves(dst, sq, c, queenDirs[:])
	case King:
		return p.appendLeaperMoves(dst, sq, c, kingMoves[sq])
	default:
		panic(fmt.Sprintf("chessmg: no move generator for piece %d on %v", uint8(pc), sq))
	}
}

// appendSliderMoves walks each ray until blocked, emitting quiet moves and
// one capture when the blocker belongs to the opponent.
func (p *Position) appendSliderMoves(dst []Move, from Square, c Color, dirs []int) []Move {
	own := p.colors[c]
	them := p.colors[c.Flip()]
	for _, dir := range dirs {
		for _, to := range rays[dir][from] {
			if own&bb(to) != 0 {
				break
			}
			dst = append(dst, Move{From: from, To: to})
			if them&bb(to) != 0 {
				break
			}
		}
	}
	return dst
}

// appendLeaperMoves emits every target not occupied by the mover's own pieces.
func (p *Position) appendLeaperMoves(dst []Move, from Square, c Color, targets uint64) []Move {
	targets &^= p.colors[c]
	for targets != 0 {
		dst = append(dst, Move{From: from, To: popLSB(&targets)})
	}
	return dst
}

// pawnForward returns the rank step of a pawn of color c.
func pawnForward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// lastRank returns the rank on which a pawn of color c promotes.
func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// startRank returns the rank from which a pawn of color c may advance two squares.
func startRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// epCaptureRank returns the rank on which an en-passant target capturable by c lies.
func epCaptureRank(c Color) int {
	if c == White {
		return 5
	}
	return 2
}

// appendPawnMove emits from-to, expanded to four promotions on the last rank.
func appendPawnMove(dst []Move, from, to Square, c Color) []Move {
	if to.Rank() != lastRank(c) {
		return append(dst, Move{From: from, To: to})
	}
	for _, k := range promotionKinds {
		dst = append(dst, Move{From: from, To: to, Promotion: k})
	}
	return dst
}

func (p *Position) appendPawnMoves(dst []Move, from Square, c Color) []Move {
	occ := p.AllOccupancy()
	fwd := pawnForward(c)

	if one, ok := from.Offset(Delta{fwd, 0}); ok && occ&bb(one) == 0 {
		dst = appendPawnMove(dst, from, one, c)
		if from.Rank() == startRank(c) {
			if two, ok := from.Offset(Delta{2 * fwd, 0}); ok && occ&bb(two) == 0 {
				dst = append(dst, Move{From: from, To: two})
			}
		}
	}

	targets := p.colors[c.Flip()]
	if ep := p.EnPassantTarget(); ep != NoSquare && ep.Rank() == epCaptureRank(c) {
		targets |= bb(ep)
	}
	caps := pawnAttacks[c][from] & targets
	for caps != 0 {
		dst = appendPawnMove(dst, from, popLSB(&caps), c)
	}
	return dst
}

// castleRule describes one castling option.
type castleRule struct {
	right     CastleRight
	color     Color
	king      Square // king home
	kingTo    Square
	rook      Square // rook home
	rookTo    Square
	empty     []Square // between king and rook
	unchecked []Square // king start and transit, destination included
}

var castleRules = [4]castleRule{
	{WhiteKingside, White, E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}},
	{WhiteQueenside, White, E1, C1, A1, D1, []Square{D1, C1, B1}, []Square{E1, D1, C1}},
	{BlackKingside, Black, E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}},
	{BlackQueenside, Black, E8, C8, A8, D8, []Square{D8, C8, B8}, []Square{E8, D8, C8}},
}

// canCastle checks rights, home squares, vacancy and attacked transit squares.
func (p *Position) canCastle(r *castleRule) bool {
	if !p.CanCastle(r.right) {
		return false
	}
	if p.At(r.king) != NewPiece(r.color, King) || p.At(r.rook) != NewPiece(r.color, Rook) {
		return false
	}
	occ := p.AllOccupancy()
	for _, sq := range r.empty {
		if occ&bb(sq) != 0 {
			return false
		}
	}
	for _, sq := range r.unchecked {
		if p.IsSquareAttacked(sq, r.color) {
			return false
		}
	}
	return true
}

// appendCastles emits the king's castling moves available to c.
func (p *Position) appendCastles(dst []Move, c Color) []Move {
	for i := range castleRules {
		r := &castleRules[i]
		if r.color == c && p.canCastle(r) {
			dst = append(dst, Move{From: r.king, To: r.kingTo})
		}
	}
	return dst
}

// isLegal applies m to a copy and reports whether c's king is safe afterwards.
func (p *Position) isLegal(m Move, c Color) bool {
	next := *p
	next.Apply(m)
	return !next.IsKingChecked(c)
}

// AllValidMoves returns every legal move for c.
func (p *Position) AllValidMoves(c Color) []Move {
	return p.AllValidMovesInto(make([]Move, 0, 64), c)
}

// AllValidMovesInto appends every legal move for c to dst[:0] and returns it.
func (p *Position) AllValidMovesInto(dst []Move, c Color) []Move {
	moves := dst[:0]
	pieces := p.colors[c]
	for pieces != 0 {
		sq := popLSB(&pieces)
		start := len(moves)
		moves = p.appendPieceMoves(moves, sq, p.At(sq))
		kept := start
		for _, m := range moves[start:] {
			if p.isLegal(m, c) {
				moves[kept] = m
				kept++
			}
		}
		moves = moves[:kept]
	}
	return p.appendCastles(moves, c)
}

// LegalMoves returns every legal move for the side to move.
func (p *Position) LegalMoves() []Move { return p.AllValidMoves(p.SideToMove()) }

// HasValidMoves reports whether c has at least one legal move.
func (p *Position) HasValidMoves(c Color) bool {
	buf := make([]Move, 0, 28)
	pieces := p.colors[c]
	for pieces != 0 {
		sq := popLSB(&pieces)
		for _, m := range p.appendPieceMoves(buf[:0], sq, p.At(sq)) {
			if p.isLegal(m, c) {
				return true
			}
		}
	}
	return len(p.appendCastles(buf[:0], c)) > 0
}

// KingCannotMove reports checkmate: c is in check and has no legal move.
func (p *Position) KingCannotMove(c Color) bool {
	return p.IsKingChecked(c) && !p.HasValidMoves(c)
}

// IsStalemate reports whether only kings remain on the board.
//
// This is a placeholder rule, not real stalemate: the correct test is
// "side to move has no legal moves and is not in check".
// TODO: replace with !IsKingChecked(side) && !HasValidMoves(side).
func (p *Position) IsStalemate() bool {
	return p.AllOccupancy() == p.kinds[King-1]
}
