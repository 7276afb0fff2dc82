package crosscheck

import (
	"fmt"

	"github.com/notnil/chess"
)

// Notnil is an oracle backed by github.com/notnil/chess. It allocates a
// position per node, so keep depths small.
type Notnil struct{}

func (Notnil) Name() string { return "notnil" }

func (Notnil) Divide(fen string, depth int) (map[string]uint64, error) {
	if depth < 1 {
		return nil, fmt.Errorf("depth must be at least 1, got %d", depth)
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	pos := chess.NewGame(opt).Position()
	div := make(map[string]uint64)
	for _, m := range pos.ValidMoves() {
		div[chess.UCINotation{}.Encode(pos, m)] = notnilPerft(pos.Update(m), depth-1)
	}
	return div, nil
}

func notnilPerft(pos *chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += notnilPerft(pos.Update(m), depth-1)
	}
	return nodes
}
