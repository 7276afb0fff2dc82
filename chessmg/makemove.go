package chessmg

// rightsLostFrom holds the rights lost when a piece leaves a king or rook home square.
var rightsLostFrom = [64]CastleRight{
	E1: WhiteKingside | WhiteQueenside,
	H1: WhiteKingside,
	A1: WhiteQueenside,
	E8: BlackKingside | BlackQueenside,
	H8: BlackKingside,
	A8: BlackQueenside,
}

// rightsLostTo holds the rights lost when a piece lands on a rook home square.
var rightsLostTo = [64]CastleRight{
	H1: WhiteKingside,
	A1: WhiteQueenside,
	H8: BlackKingside,
	A8: BlackQueenside,
}

// Apply plays m on the position in place. The move is not checked for
// legality; it panics when m.From is empty.
func (p *Position) Apply(m Move) {
	moving := p.PieceAt(m.From)
	c := moving.Color()

	p.invalidateCastling(m)
	if moving.Kind() == King {
		p.relocateCastlingRook(m)
	}
	if moving.Kind() == Pawn {
		p.removeEnPassantVictim(m, c)
	}
	p.updateEnPassantTarget(m, moving)

	placed := moving
	if m.Promotion != NoKind {
		placed = NewPiece(c, m.Promotion)
	}
	p.SetAt(m.From, NoPiece)
	p.SetAt(m.To, placed)

	p.flipSideToMove()
}

// Applied returns the position after m, leaving p unchanged.
func (p *Position) Applied(m Move) *Position {
	next := p.Clone()
	next.Apply(m)
	return next
}

// ApplyUCI decodes a UCI move and applies it. Legality is not checked.
func (p *Position) ApplyUCI(s string) error {
	m, err := ParseMove(s)
	if err != nil {
		return err
	}
	p.Apply(m)
	return nil
}

// invalidateCastling clears rights tied to the squares the move leaves or lands on.
func (p *Position) invalidateCastling(m Move) {
	p.status &^= uint16(rightsLostFrom[m.From] | rightsLostTo[m.To])
}

// relocateCastlingRook moves the rook when a king travels from its home
// square to a castling destination.
func (p *Position) relocateCastlingRook(m Move) {
	for i := range castleRules {
		r := &castleRules[i]
		if m.From == r.king && m.To == r.kingTo {
			p.SetAt(r.rookTo, p.At(r.rook))
			p.SetAt(r.rook, NoPiece)
			return
		}
	}
}

// removeEnPassantVictim clears the pawn behind the target when a pawn
// captures onto the en-passant square.
func (p *Position) removeEnPassantVictim(m Move, c Color) {
	ep := p.EnPassantTarget()
	if ep == NoSquare || m.To != ep {
		return
	}
	victim, ok := ep.Offset(Delta{-pawnForward(c), 0})
	if ok {
		p.SetAt(victim, NoPiece)
	}
}

// updateEnPassantTarget sets the target after a two-square pawn advance and clears it otherwise.
func (p *Position) updateEnPassantTarget(m Move, moving Piece) {
	if moving.Kind() == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.SetEnPassantTarget((m.From + m.To) / 2)
		return
	}
	p.SetEnPassantTarget(NoSquare)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
