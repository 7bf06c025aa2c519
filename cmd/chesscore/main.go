// chesscore is a minimal command-line front end for the search core: it
// loads a FEN position, runs find_best_move, and prints the result. It is
// deliberately not a text-protocol adapter (no UCI/xboard handshake) —
// that belongs to an out-of-scope collaborator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"

	"github.com/tarrasch/chesscore/pkg/chess/fen"
	"github.com/tarrasch/chesscore/pkg/engine"
)

var (
	position = flag.String("fen", fen.Initial, "Position to search, in FEN notation")
	depth    = flag.Uint("depth", 4, "Search depth limit")
	hashMB   = flag.Uint("hash", 64, "Transposition table size, in MB")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: chesscore [options]

chesscore searches a single position with the core alpha-beta engine
and prints the best move and score found.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, engine.WithOptions(engine.Options{MaxDepth: *depth, HashMB: *hashMB}))
	if err := e.Reset(ctx, *position); err != nil {
		logw.Exitf(ctx, "Invalid position %q: %v", *position, err)
	}

	move, score := e.FindBestMove(ctx, int(*depth))
	if move == nil {
		fmt.Println("bestmove none")
		return
	}
	fmt.Printf("bestmove %v score %v\n", move, score)
}
