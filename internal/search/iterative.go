package search

import (
	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/pkg/chess"
)

// FindBestMove runs iterative deepening over depths 1..maxDepth,
// reusing the transposition table across iterations so each depth's
// search benefits from the previous depth's principal-variation move
// ordering. It returns the move and score recorded at the deepest
// completed iteration, or (nil, 0) if the position has no legal move.
func (s *Searcher) FindBestMove(maxDepth int) (*chess.Move, eval.Score) {
	var bestMove *chess.Move
	var bestScore eval.Score

	maximizing := s.pos.SideToMove() == s.engineColor
	for depth := 1; depth <= maxDepth; depth++ {
		score, move := s.AlphaBeta(depth, -eval.Inf, eval.Inf, maximizing, 0)
		if move == noMove {
			continue
		}
		m := move
		bestMove = &m
		bestScore = score
	}

	return bestMove, bestScore
}
