package search

import (
	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/internal/order"
	"github.com/tarrasch/chesscore/pkg/chess"
)

// MaxQPly bounds the quiescence recursion depth beyond the main search
// horizon.
const MaxQPly = 6

// QSearch extends the search past the main horizon over captures, queen
// promotions, and a handful of shallow checks, so a depth-0 leaf is never
// evaluated in the middle of an unresolved tactical exchange.
func (s *Searcher) QSearch(mainDepth, qPly int, alpha0, beta0 eval.Score, maximizing bool) eval.Score {
	standPat := eval.Evaluate(s.pos, s.engineColor, mainDepth+qPly)

	if s.pos.IsGameOver() || qPly >= MaxQPly {
		return standPat
	}

	alpha, beta := alpha0, beta0
	if maximizing {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		if standPat <= alpha {
			return alpha
		}
		if standPat < beta {
			beta = standPat
		}
	}

	candidates := s.quiescenceMoves(qPly)
	if len(candidates) == 0 {
		return standPat
	}

	// qPly indexes the same killer table the main search uses, so it
	// overlaps plies 0..MaxQPly there. Captures are never killers, but a
	// quiet checking move or a non-capture queen promotion recorded by the
	// main search at the same ply index does match and gets the killer
	// score here.
	ordered := order.OrderMoves(s.pos, candidates, qPly, s.killers, nil, maximizing)
	limit := 8
	switch {
	case qPly == 2:
		limit = 6
	case qPly >= 3:
		limit = 4
	}
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	value := standPat
	for _, m := range ordered {
		s.push(m)
		s.nodes++
		childScore := s.QSearch(mainDepth, qPly+1, alpha, beta, !maximizing)
		s.pop()

		if maximizing {
			if childScore > value {
				value = childScore
			}
			if value > alpha {
				alpha = value
			}
		} else {
			if childScore < value {
				value = childScore
			}
			if value < beta {
				beta = value
			}
		}
		if beta <= alpha {
			break
		}
	}

	return eval.Clamp(value, alpha0, beta0)
}

// quiescenceMoves selects captures, queen promotions, and (while
// qPly < 3) up to four checking moves from the legal moves available at
// the current position.
func (s *Searcher) quiescenceMoves(qPly int) []chess.Move {
	legal := s.pos.LegalMoves()
	var out []chess.Move
	checks := 0
	for _, m := range legal {
		switch {
		case s.pos.IsCapture(m):
			out = append(out, m)
		case m.IsPromotion() && m.Promotion == chess.Queen:
			out = append(out, m)
		case qPly < 3 && checks < 4 && s.pos.GivesCheck(m):
			out = append(out, m)
			checks++
		}
	}
	return out
}
