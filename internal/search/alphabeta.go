package search

import (
	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/internal/order"
	"github.com/tarrasch/chesscore/internal/tt"
	"github.com/tarrasch/chesscore/pkg/chess"
)

var noMove chess.Move

// AlphaBeta implements fail-hard alpha-beta with transposition-table
// probing/storing and killer-move ordering. maximizing reflects whether
// the side to move at this node is the engine, not a fixed root-relative
// convention — the caller flips it on every recursive call.
func (s *Searcher) AlphaBeta(depth int, alpha, beta eval.Score, maximizing bool, ply int) (eval.Score, chess.Move) {
	if depth == 0 || s.pos.IsGameOver() {
		return s.QSearch(depth, 0, alpha, beta, maximizing), noMove
	}

	key := s.hash
	alpha0, beta0 := alpha, beta

	var ttMove *chess.Move
	if entry, ok := s.tt.Probe(key); ok {
		if v, cutoff := tt.ProbeCutoff(entry, depth, alpha, beta); cutoff {
			return v, entry.Best
		}
		if entry.Best != noMove {
			m := entry.Best
			ttMove = &m
		}
	}

	moves := s.pos.LegalMoves()
	ordered := order.OrderMoves(s.pos, moves, ply, s.killers, ttMove, maximizing)

	var best chess.Move
	var value eval.Score
	if maximizing {
		value = -eval.Inf
	} else {
		value = eval.Inf
	}

	for _, m := range ordered {
		s.push(m)
		s.nodes++
		childScore, _ := s.AlphaBeta(depth-1, alpha, beta, !maximizing, ply+1)
		s.pop()

		if maximizing {
			if childScore > value {
				value = childScore
				best = m
			}
			if value > alpha {
				alpha = value
			}
		} else {
			if childScore < value {
				value = childScore
				best = m
			}
			if value < beta {
				beta = value
			}
		}

		if beta <= alpha {
			s.killers.Record(ply, m, s.pos.IsCapture(m))
			break
		}
	}

	value = eval.Clamp(value, alpha0, beta0)

	var flag tt.Flag
	switch {
	case value <= alpha0:
		flag = tt.Upper
	case value >= beta0:
		flag = tt.Lower
	default:
		flag = tt.Exact
	}
	s.tt.Store(key, value, depth, flag, best)

	return value, best
}
