package chessmg

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidMove is wrapped by every move notation decode failure.
var ErrInvalidMove = errors.New("invalid move")

// Move is a from/to pair with an optional promotion kind (NoKind when none).
type Move struct {
	From      Square
	To        Square
	Promotion Kind
}

// promotionKinds is the expansion order for a pawn reaching the last rank.
var promotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

var uciMovePattern = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)

// ParseMove decodes UCI notation such as "e2e4" or "e7e8q".
func ParseMove(s string) (Move, error) {
	if !uciMovePattern.MatchString(s) {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	m := Move{
		From: SquareAt(int(s[1]-'1'), int(s[0]-'a')),
		To:   SquareAt(int(s[3]-'1'), int(s[2]-'a')),
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promotion = Queen
		case 'r':
			m.Promotion = Rook
		case 'b':
			m.Promotion = Bishop
		case 'n':
			m.Promotion = Knight
		}
	}
	return m, nil
}

// MustParseMove is ParseMove that panics on malformed input.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns UCI notation.
func (m Move) String() string {
	str := m.From.String() + m.To.String()
	switch m.Promotion {
	case NoKind:
	case Queen:
		str += "q"
	case Rook:
		str += "r"
	case Bishop:
		str += "b"
	case Knight:
		str += "n"
	case Pawn, King:
		panic(fmt.Sprintf("chessmg: cannot promote to %v", m.Promotion))
	default:
		panic(fmt.Sprintf("chessmg: unknown kind %d", uint8(m.Promotion)))
	}
	return str
}
