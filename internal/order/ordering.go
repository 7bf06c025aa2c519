package order

import (
	"sort"

	"github.com/tarrasch/chesscore/pkg/chess"
)

// KillerSource answers whether a move is recorded as a killer at a given
// ply; internal/search's killer table satisfies this without ordering
// needing to import search.
type KillerSource interface {
	IsKiller(ply int, m chess.Move) bool
}

var centerDestinations = map[chess.Square]bool{
	chess.D4: true, chess.D5: true, chess.E4: true, chess.E5: true,
}

// ScoreMove assigns a move a relative-ordering score: good captures and
// killer moves score highest, losing captures lowest. The scale is not
// meaningful outside of ordering comparisons within the same ply.
func ScoreMove(pos chess.Position, move chess.Move, ply int, killers KillerSource) int {
	if killers != nil && killers.IsKiller(ply, move) {
		return 800
	}

	var score int
	if pos.IsCapture(move) {
		s := SEE(pos, move)
		switch {
		case s > 0:
			score += 1000 + s
		case s == 0:
			score += 500
		default:
			score += s
		}
	}

	if move.IsPromotion() {
		if move.Promotion == chess.Queen {
			score += 900
		} else {
			score += 200
		}
	}

	if pos.GivesCheck(move) {
		score += 120
	}

	if move.IsCastle() {
		score += 200
	}

	if centerDestinations[move.To] {
		score += 100
	}

	if pos.FullMoveNumber() <= 10 && (move.Piece == chess.Knight || move.Piece == chess.Bishop) {
		startRank := chess.Rank1
		if pos.SideToMove() == chess.Black {
			startRank = chess.Rank8
		}
		if move.From.Rank() == startRank {
			score += 100
		}
	}

	return score
}

type scoredMove struct {
	move  chess.Move
	score int
}

// OrderMoves places ttMove (if present and among moves) first, then sorts
// the remainder by ScoreMove: descending while maximizing, ascending
// while minimizing, so on minimizing nodes the lowest-scoring moves are
// tried first. The sort is stable, so equal scores keep generation order.
func OrderMoves(pos chess.Position, moves []chess.Move, ply int, killers KillerSource, ttMove *chess.Move, maximizing bool) []chess.Move {
	ordered := make([]chess.Move, 0, len(moves))
	rest := make([]scoredMove, 0, len(moves))

	for _, m := range moves {
		if ttMove != nil && m.Equals(*ttMove) {
			ordered = append(ordered, m)
			continue
		}
		rest = append(rest, scoredMove{move: m, score: ScoreMove(pos, m, ply, killers)})
	}

	sort.SliceStable(rest, func(i, j int) bool {
		if maximizing {
			return rest[i].score > rest[j].score
		}
		return rest[i].score < rest[j].score
	})

	for _, sm := range rest {
		ordered = append(ordered, sm.move)
	}
	return ordered
}
