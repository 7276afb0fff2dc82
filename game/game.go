// Package game drives a game between two players on top of chessmg.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	mg "chess-rules/chessmg"
)

// ErrIllegalMove is returned when a player answers with a move outside the legal list.
var ErrIllegalMove = errors.New("player chose an illegal move")

// Outcome is the reason a game ended.
type Outcome int

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	BareKings
	Repetition
	PlyLimit
	Resignation
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case BareKings:
		return "bare kings"
	case Repetition:
		return "threefold repetition"
	case PlyLimit:
		return "ply limit"
	case Resignation:
		return "resignation"
	default:
		panic(fmt.Sprintf("game: unknown outcome %d", int(o)))
	}
}

// Result describes a finished game. Winner is meaningful only when Decisive.
type Result struct {
	Outcome  Outcome
	Decisive bool
	Winner   mg.Color
	Plies    int
}

// Score returns the PGN-style score, e.g. "1-0" or "1/2-1/2".
func (r Result) Score() string {
	switch {
	case !r.Decisive:
		return "1/2-1/2"
	case r.Winner == mg.White:
		return "1-0"
	default:
		return "0-1"
	}
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%v after %d plies)", r.Score(), r.Outcome, r.Plies)
}

// Game holds the state of one game. Set the exported fields before calling Play.
type Game struct {
	ID string
	// MaxPlies ends the game as a draw once reached; 0 means no limit.
	MaxPlies int
	// Logger, when set, receives one line per ply and the final result.
	Logger *log.Logger
	// OnMove is called after each ply with the move and the resulting position.
	OnMove func(ply int, m mg.Move, p *mg.Position)

	players [2]Player
	pos     *mg.Position
	seen    map[uint64]int
	moves   []mg.Move
}

// New starts a game from start, which is copied.
func New(start *mg.Position, white, black Player) *Game {
	g := &Game{
		ID:      uuid.NewString(),
		players: [2]Player{white, black},
		pos:     start.Clone(),
		seen:    make(map[uint64]int),
	}
	g.seen[g.pos.Hash()]++
	return g
}

// Position returns a copy of the current position.
func (g *Game) Position() *mg.Position { return g.pos.Clone() }

// Moves returns the moves played so far.
func (g *Game) Moves() []mg.Move { return append([]mg.Move(nil), g.moves...) }

func (g *Game) logf(format string, args ...any) {
	if g.Logger != nil {
		g.Logger.Printf("[%s] "+format, append([]any{g.ID}, args...)...)
	}
}

// status reports how the game stands in the current position.
func (g *Game) status(legal []mg.Move) Result {
	side := g.pos.SideToMove()
	r := Result{Plies: len(g.moves)}
	switch {
	case len(legal) == 0 && g.pos.IsKingChecked(side):
		r.Outcome, r.Decisive, r.Winner = Checkmate, true, side.Flip()
	case len(legal) == 0:
		r.Outcome = Stalemate
	case g.pos.IsStalemate():
		r.Outcome = BareKings
	case g.seen[g.pos.Hash()] >= 3:
		r.Outcome = Repetition
	case g.MaxPlies > 0 && len(g.moves) >= g.MaxPlies:
		r.Outcome = PlyLimit
	}
	return r
}

// Play alternates the players until the game ends or ctx is cancelled.
func (g *Game) Play(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Result{Plies: len(g.moves)}, err
		}
		side := g.pos.SideToMove()
		legal := g.pos.LegalMoves()
		if r := g.status(legal); r.Outcome != Ongoing {
			g.logf("%v", r)
			return r, nil
		}

		m, err := g.players[side].ChooseMove(ctx, g.pos.Clone(), legal)
		if errors.Is(err, ErrResign) {
			r := Result{Outcome: Resignation, Decisive: true, Winner: side.Flip(), Plies: len(g.moves)}
			g.logf("%v resigns: %v", side, r)
			return r, nil
		}
		if err != nil {
			return Result{Plies: len(g.moves)}, fmt.Errorf("%v player: %w", side, err)
		}
		if !isLegal(m, legal) {
			return Result{Plies: len(g.moves)}, fmt.Errorf("%w: %v played %v in %s", ErrIllegalMove, side, m, g.pos.FEN())
		}

		g.pos.Apply(m)
		g.moves = append(g.moves, m)
		g.seen[g.pos.Hash()]++
		g.logf("%d. %v %v", len(g.moves), side, m)
		if g.OnMove != nil {
			g.OnMove(len(g.moves), m, g.pos.Clone())
		}
	}
}
