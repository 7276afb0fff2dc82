package chessmg

import (
	"fmt"
	"math/bits"
)

// IsSquareAttacked reports whether any piece of defender's opponent attacks sq.
func (p *Position) IsSquareAttacked(sq Square, defender Color) bool {
	return p.attackedBySlider(sq, defender) ||
		p.attackedByKnight(sq, defender) ||
		p.attackedByKing(sq, defender) ||
		p.attackedByPawn(sq, defender)
}

// attackedBySlider walks the eight rays from sq and inspects the nearest piece on each.
func (p *Position) attackedBySlider(sq Square, defender Color) bool {
	occ := p.AllOccupancy()
	them := p.colors[defender.Flip()]
	orthogonal := them & (p.kinds[Rook-1] | p.kinds[Queen-1])
	diagonal := them & (p.kinds[Bishop-1] | p.kinds[Queen-1])
	for dir, d := range kingDeltas {
		attackers := orthogonal
		if d.diagonal() {
			attackers = diagonal
		}
		if attackers == 0 {
			continue
		}
		for _, to := range rays[dir][sq] {
			if occ&bb(to) == 0 {
				continue
			}
			if attackers&bb(to) != 0 {
				return true
			}
			break
		}
	}
	return false
}

func (p *Position) attackedByKnight(sq Square, defender Color) bool {
	return knightMoves[sq]&p.Pieces(defender.Flip(), Knight) != 0
}

func (p *Position) attackedByKing(sq Square, defender Color) bool {
	return kingMoves[sq]&p.Pieces(defender.Flip(), King) != 0
}

// attackedByPawn looks one rank ahead of sq from the defender's point of view:
// an enemy pawn there, one file to either side, attacks sq.
func (p *Position) attackedByPawn(sq Square, defender Color) bool {
	return pawnAttacks[defender][sq]&p.Pieces(defender.Flip(), Pawn) != 0
}

// kingSquare returns the square of c's king. It panics when c has no king.
func (p *Position) kingSquare(c Color) Square {
	kings := p.Pieces(c, King)
	if kings == 0 {
		panic(fmt.Sprintf("chessmg: no %v king on the board", c))
	}
	return Square(bits.TrailingZeros64(kings))
}

// IsKingChecked reports whether c's king is attacked.
func (p *Position) IsKingChecked(c Color) bool {
	return p.IsSquareAttacked(p.kingSquare(c), c)
}
