package crosscheck

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Dragontooth is an oracle backed by github.com/dylhunn/dragontoothmg.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontooth" }

// Divide parses fen with dragontoothmg, which panics on malformed input;
// the panic is returned as an error.
func (Dragontooth) Divide(fen string, depth int) (div map[string]uint64, err error) {
	if depth < 1 {
		return nil, fmt.Errorf("depth must be at least 1, got %d", depth)
	}
	defer func() {
		if r := recover(); r != nil {
			div, err = nil, fmt.Errorf("dragontoothmg: %v", r)
		}
	}()

	b := dragontoothmg.ParseFen(fen)
	div = make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		div[strings.ToLower(m.String())] = dragontoothPerft(&b, depth-1)
		unapply()
	}
	return div, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}
