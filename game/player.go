package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/exp/rand"

	mg "chess-rules/chessmg"
	"chess-rules/eval"
)

// ErrResign is returned by a Player that gives up the game.
var ErrResign = errors.New("player resigned")

// ErrNoMoves is returned when a player is asked to move with an empty legal list.
var ErrNoMoves = errors.New("no legal moves to choose from")

// Player picks one of the legal moves in the given position. The position
// is a copy and may be modified freely. Play never passes an empty legal
// list; the players in this package return ErrNoMoves if given one.
type Player interface {
	ChooseMove(ctx context.Context, p *mg.Position, legal []mg.Move) (mg.Move, error)
}

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct {
	rnd *rand.Rand
}

// NewRandomPlayer returns a RandomPlayer with a deterministic move sequence for seed.
func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rnd: rand.New(rand.NewSource(seed))}
}

func (r *RandomPlayer) ChooseMove(_ context.Context, _ *mg.Position, legal []mg.Move) (mg.Move, error) {
	if len(legal) == 0 {
		return mg.Move{}, ErrNoMoves
	}
	return legal[r.rnd.Intn(len(legal))], nil
}

// GreedyPlayer looks one ply ahead and plays the move with the best
// static evaluation for the mover. Ties are broken at random.
type GreedyPlayer struct {
	Eval eval.Evaluator
	rnd  *rand.Rand
}

func NewGreedyPlayer(e eval.Evaluator, seed uint64) *GreedyPlayer {
	return &GreedyPlayer{Eval: e, rnd: rand.New(rand.NewSource(seed))}
}

func (g *GreedyPlayer) ChooseMove(_ context.Context, p *mg.Position, legal []mg.Move) (mg.Move, error) {
	if len(legal) == 0 {
		return mg.Move{}, ErrNoMoves
	}
	side := p.SideToMove()
	var best []mg.Move
	var bestScore eval.Score
	for _, m := range legal {
		next := p.Applied(m)
		var s eval.Score
		if next.KingCannotMove(side.Flip()) {
			s = eval.Score(math.Inf(1))
		} else {
			s = eval.Relative(g.Eval.Evaluate(next), side)
		}
		switch {
		case len(best) == 0 || s > bestScore:
			best = append(best[:0], m)
			bestScore = s
		case s == bestScore:
			best = append(best, m)
		}
	}
	return best[g.rnd.Intn(len(best))], nil
}

// HumanPlayer reads UCI moves line by line. Malformed or illegal input is
// reported to Out and read again; end of input resigns.
type HumanPlayer struct {
	in  *bufio.Scanner
	Out io.Writer
}

func NewHumanPlayer(in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{in: bufio.NewScanner(in), Out: out}
}

func (h *HumanPlayer) ChooseMove(ctx context.Context, p *mg.Position, legal []mg.Move) (mg.Move, error) {
	if len(legal) == 0 {
		return mg.Move{}, ErrNoMoves
	}
	for {
		if err := ctx.Err(); err != nil {
			return mg.Move{}, err
		}
		fmt.Fprintf(h.Out, "%v to move: ", p.SideToMove())
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return mg.Move{}, err
			}
			return mg.Move{}, ErrResign
		}
		line := strings.TrimSpace(h.in.Text())
		if line == "resign" {
			return mg.Move{}, ErrResign
		}
		m, err := mg.ParseMove(line)
		if err != nil {
			fmt.Fprintf(h.Out, "%v\n", err)
			continue
		}
		if !isLegal(m, legal) {
			fmt.Fprintf(h.Out, "illegal move %v\n", m)
			continue
		}
		return m, nil
	}
}

func isLegal(m mg.Move, legal []mg.Move) bool {
	for _, l := range legal {
		if l == m {
			return true
		}
	}
	return false
}
