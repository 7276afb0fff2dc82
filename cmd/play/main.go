package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	mg "chess-rules/chessmg"
	"chess-rules/eval"
	"chess-rules/game"
)

func newPlayer(kind string, seed uint64) (game.Player, error) {
	switch kind {
	case "random":
		return game.NewRandomPlayer(seed), nil
	case "greedy":
		return game.NewGreedyPlayer(eval.Default(), seed), nil
	case "human":
		return game.NewHumanPlayer(os.Stdin, os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown player %q (want random, greedy or human)", kind)
	}
}

func main() {
	// --- Flags ---
	whiteFlag := flag.String("white", "greedy", "white player: random, greedy or human")
	blackFlag := flag.String("black", "random", "black player: random, greedy or human")
	fenFlag := flag.String("fen", mg.StartFEN, "starting position")
	seedFlag := flag.Uint64("seed", 1, "seed for random and greedy players")
	maxPliesFlag := flag.Int("maxplies", 400, "declare a draw after this many plies (0 = no limit)")
	quietFlag := flag.Bool("quiet", false, "print only the result")
	flag.Parse()

	start, err := mg.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatalf("bad -fen: %v", err)
	}
	white, err := newPlayer(*whiteFlag, *seedFlag)
	if err != nil {
		log.Fatalf("-white: %v", err)
	}
	black, err := newPlayer(*blackFlag, *seedFlag+1)
	if err != nil {
		log.Fatalf("-black: %v", err)
	}

	g := game.New(start, white, black)
	g.MaxPlies = *maxPliesFlag
	if !*quietFlag {
		g.Logger = log.New(os.Stderr, "", log.Ltime)
		fmt.Print(start)
		g.OnMove = func(ply int, m mg.Move, p *mg.Position) {
			fmt.Printf("\n%d. %v\n%v", ply, m, p)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := g.Play(ctx)
	if err != nil {
		log.Fatalf("game %s: %v", g.ID, err)
	}
	fmt.Printf("%s %v\n", g.ID, res)
	fmt.Println(g.Position().FEN())
}
