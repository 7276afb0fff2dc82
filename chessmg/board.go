// Package chessmg generates legal chess moves from bitboard positions and applies them.
package chessmg

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Kind is the colorless type of a chess piece.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// kinds lists every real piece kind in mask order.
var kinds = [6]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

func (k Kind) String() string {
	switch k {
	case NoKind:
		return "none"
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		panic(fmt.Sprintf("chessmg: unknown kind %d", uint8(k)))
	}
}

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Flip returns the opposite color.
func (c Color) Flip() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Piece packs a Kind and a Color. Black pieces carry bit 3 so that
//   - p & 7 is the kind
//   - p & 8 != 0 means Black
type Piece uint8

// NoPiece is what At reports for an empty square.
const NoPiece Piece = 0

// NewPiece combines a color and a kind.
func NewPiece(c Color, k Kind) Piece {
	if k == NoKind {
		return NoPiece
	}
	return Piece(k) | Piece(c)<<3
}

// Kind returns the colorless kind of the piece.
func (p Piece) Kind() Kind { return Kind(p & 7) }

// Color returns the owner of the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p>>3) & 1 }

// String returns the FEN letter of the piece, or "." for NoPiece.
func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	return string(pieceLetter(p))
}

// Bitboard helpers

func bb(sq Square) uint64 { return 1 << uint(sq) }

// popLSB removes and returns the least significant set bit of the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// CastleRight is one of the four independent castling permissions.
type CastleRight uint8

const (
	WhiteKingside CastleRight = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

// Status word layout:
//
//	bits 0-3  castling rights (CastleRight flags)
//	bit  4    side to move (set = Black)
//	bits 5-10 en-passant target square, all ones = none
const (
	statusCastleMask  = 0xF
	statusBlackToMove = 1 << 4
	statusEPShift     = 5
	statusEPMask      = 63 << statusEPShift
)

// Position is the full board state needed to generate legal moves.
// The zero value is not a valid position; use NewPosition or ParseFEN.
type Position struct {
	colors [2]uint64
	kinds  [6]uint64 // indexed by Kind-1
	status uint16
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	return &Position{
		colors: [2]uint64{0x000000000000FFFF, 0xFFFF000000000000},
		kinds: [6]uint64{
			0x00FF00000000FF00, // pawns
			0x4200000000000042, // knights
			0x2400000000000024, // bishops
			0x8100000000000081, // rooks
			0x0800000000000008, // queens
			0x1000000000000010, // kings
		},
		status: uint16(WhiteKingside|WhiteQueenside|BlackKingside|BlackQueenside) | statusEPMask,
	}
}

// newEmptyPosition returns a board without pieces, White to move, no rights.
func newEmptyPosition() *Position {
	return &Position{status: statusEPMask}
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	q := *p
	return &q
}

// At returns the piece on sq, or NoPiece when the square is empty.
func (p *Position) At(sq Square) Piece {
	m := bb(sq)
	var c Color
	switch {
	case p.colors[White]&m != 0:
		c = White
	case p.colors[Black]&m != 0:
		c = Black
	default:
		return NoPiece
	}
	for i, k := range kinds {
		if p.kinds[i]&m != 0 {
			return NewPiece(c, k)
		}
	}
	panic(fmt.Sprintf("chessmg: square %v set in color mask but in no kind mask", sq))
}

// PieceAt returns the piece on sq. It panics when the square is empty.
func (p *Position) PieceAt(sq Square) Piece {
	pc := p.At(sq)
	if pc == NoPiece {
		panic(fmt.Sprintf("chessmg: no piece on %v", sq))
	}
	return pc
}

// SetAt places pc on sq, replacing whatever was there. NoPiece clears the square.
func (p *Position) SetAt(sq Square, pc Piece) {
	keep := ^bb(sq)
	p.colors[White] &= keep
	p.colors[Black] &= keep
	for i := range p.kinds {
		p.kinds[i] &= keep
	}
	if pc == NoPiece {
		return
	}
	p.colors[pc.Color()] |= bb(sq)
	p.kinds[pc.Kind()-1] |= bb(sq)
}

// Occupancy returns the squares holding pieces of color c.
func (p *Position) Occupancy(c Color) uint64 { return p.colors[c] }

// AllOccupancy returns every occupied square.
func (p *Position) AllOccupancy() uint64 { return p.colors[White] | p.colors[Black] }

// KindMask returns the squares holding pieces of kind k, either color.
func (p *Position) KindMask(k Kind) uint64 {
	if k == NoKind {
		return 0
	}
	return p.kinds[k-1]
}

// Pieces returns the squares holding pieces of color c and kind k.
func (p *Position) Pieces(c Color, k Kind) uint64 { return p.colors[c] & p.KindMask(k) }

// SideToMove reports which color plays next.
func (p *Position) SideToMove() Color {
	if p.status&statusBlackToMove != 0 {
		return Black
	}
	return White
}

// SetSideToMove sets which color plays next.
func (p *Position) SetSideToMove(c Color) {
	if c == Black {
		p.status |= statusBlackToMove
	} else {
		p.status &^= statusBlackToMove
	}
}

func (p *Position) flipSideToMove() { p.status ^= statusBlackToMove }

// EnPassantTarget returns the square a pawn may capture onto en passant, or NoSquare.
func (p *Position) EnPassantTarget() Square {
	v := (p.status & statusEPMask) >> statusEPShift
	if v == 63 {
		return NoSquare
	}
	return Square(v)
}

// SetEnPassantTarget stores the en-passant target. NoSquare clears it.
func (p *Position) SetEnPassantTarget(sq Square) {
	p.status &^= statusEPMask
	if sq == NoSquare {
		p.status |= statusEPMask
		return
	}
	p.status |= uint16(sq) << statusEPShift
}

// CanCastle reports whether the given castling right is still held.
func (p *Position) CanCastle(r CastleRight) bool { return p.status&uint16(r) != 0 }

// SetCastle grants or revokes a castling right.
func (p *Position) SetCastle(r CastleRight, allowed bool) {
	if allowed {
		p.status |= uint16(r)
	} else {
		p.status &^= uint16(r)
	}
}

// CastleRights returns all held rights as a flag set.
func (p *Position) CastleRights() CastleRight { return CastleRight(p.status & statusCastleMask) }

// Validate checks the color/kind mask invariants.
func (p *Position) Validate() error {
	if p.colors[White]&p.colors[Black] != 0 {
		return errors.New("color masks overlap")
	}
	var union uint64
	for i := range p.kinds {
		for j := i + 1; j < len(p.kinds); j++ {
			if p.kinds[i]&p.kinds[j] != 0 {
				return fmt.Errorf("%v and %v masks overlap", kinds[i], kinds[j])
			}
		}
		union |= p.kinds[i]
	}
	if union != p.AllOccupancy() {
		return errors.New("kind masks do not cover color masks")
	}
	return nil
}

// String draws the board with rank 8 on top.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteString(p.At(SquareAt(rank, file)).String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
