package chessmg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every FEN decode failure.
var ErrInvalidFEN = errors.New("invalid FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// pieceFromLetter converts a FEN letter to a Piece, or NoPiece when unrecognized.
func pieceFromLetter(ch rune) Piece {
	switch ch {
	case 'P':
		return NewPiece(White, Pawn)
	case 'N':
		return NewPiece(White, Knight)
	case 'B':
		return NewPiece(White, Bishop)
	case 'R':
		return NewPiece(White, Rook)
	case 'Q':
		return NewPiece(White, Queen)
	case 'K':
		return NewPiece(White, King)
	case 'p':
		return NewPiece(Black, Pawn)
	case 'n':
		return NewPiece(Black, Knight)
	case 'b':
		return NewPiece(Black, Bishop)
	case 'r':
		return NewPiece(Black, Rook)
	case 'q':
		return NewPiece(Black, Queen)
	case 'k':
		return NewPiece(Black, King)
	default:
		return NoPiece
	}
}

func pieceLetter(p Piece) byte {
	var ch byte
	switch p.Kind() {
	case Pawn:
		ch = 'P'
	case Knight:
		ch = 'N'
	case Bishop:
		ch = 'B'
	case Rook:
		ch = 'R'
	case Queen:
		ch = 'Q'
	case King:
		ch = 'K'
	default:
		panic(fmt.Sprintf("chessmg: no letter for piece %d", uint8(p)))
	}
	if p.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

var castleLetters = [4]struct {
	letter byte
	right  CastleRight
}{
	{'K', WhiteKingside},
	{'Q', WhiteQueenside},
	{'k', BlackKingside},
	{'q', BlackQueenside},
}

// ParseFEN decodes a six-field FEN string. The halfmove clock and fullmove
// number must be empty or non-negative integers; their values are ignored.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Split(fen, " ")
	if len(fields) != 6 {
		return nil, fenError("expected 6 fields, got %d", len(fields))
	}

	p := newEmptyPosition()

	// 1. Piece placement, rank 8 first
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromLetter(ch)
			if piece == NoPiece {
				return nil, fenError("unrecognized character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d has more than 8 squares", rank+1)
			}
			p.SetAt(SquareAt(rank, file), piece)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d has %d squares", rank+1, file)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.SetSideToMove(White)
	case "b":
		p.SetSideToMove(Black)
	default:
		return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	if fields[2] == "" {
		return nil, fenError("empty castling field, use '-' for none")
	}
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			found := false
			for _, cl := range castleLetters {
				if rune(cl.letter) == ch {
					p.SetCastle(cl.right, true)
					found = true
				}
			}
			if !found {
				return nil, fenError("invalid castling character %q", ch)
			}
		}
	}

	// 4. En passant target, only on rank 3 or 6
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("%v", err)
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return nil, fenError("en passant target %v is not on rank 3 or 6", sq)
		}
		p.SetEnPassantTarget(sq)
	}

	// 5, 6. Halfmove clock and fullmove number
	for _, f := range fields[4:] {
		if f == "" {
			continue
		}
		if n, err := strconv.Atoi(f); err != nil || n < 0 {
			return nil, fenError("move counter %q is not a non-negative number", f)
		}
	}

	return p, nil
}

// MustParseFEN is ParseFEN that panics on malformed input.
func MustParseFEN(fen string) *Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// FEN encodes the position. Move counters are not tracked and are written as "0 1".
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.At(SquareAt(rank, file))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pieceLetter(pc))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.SideToMove() == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights() == 0 {
		sb.WriteByte('-')
	} else {
		for _, cl := range castleLetters {
			if p.CanCastle(cl.right) {
				sb.WriteByte(cl.letter)
			}
		}
	}
	sb.WriteByte(' ')

	sb.WriteString(p.EnPassantTarget().String())
	sb.WriteString(" 0 1")
	return sb.String()
}
