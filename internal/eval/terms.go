package eval

import "github.com/tarrasch/chesscore/pkg/chess"

// Term is a single evaluation contribution, signed from engineColor's
// point of view. The evaluator sums a fixed, ordered slice of these —
// compile-time composition rather than a runtime-discovered set of
// evaluator types.
type Term func(pos chess.Position, engineColor chess.Color) Score

func plainMaterialTerm(pos chess.Position, engineColor chess.Color) Score {
	return plainMaterial(pos, engineColor)
}

func taperedPSQTTerm(pos chess.Position, engineColor chess.Color) Score {
	return taperedPSQT(pos, engineColor)
}

// sideScore evaluates f for engineColor and subtracts f for the opponent,
// the common "engine minus opponent" shape most terms share.
func sideScore(pos chess.Position, engineColor chess.Color, f func(chess.Position, chess.Color) Score) Score {
	return f(pos, engineColor) - f(pos, engineColor.Opponent())
}

func pawnStructureTerm(pos chess.Position, engineColor chess.Color) Score {
	return sideScore(pos, engineColor, pawnStructureForColor)
}

func pawnStructureForColor(pos chess.Position, c chess.Color) Score {
	var filePawns [8][]chess.Rank
	for _, sq := range pos.Pieces(chess.Pawn, c) {
		filePawns[sq.File()] = append(filePawns[sq.File()], sq.Rank())
	}

	var score Score
	for f := chess.File(0); f < 8; f++ {
		n := len(filePawns[f])
		if n > 1 {
			score -= Score(20 * (n - 1))
		}
		if n > 0 {
			isolated := (f == 0 || len(filePawns[f-1]) == 0) && (f == 7 || len(filePawns[f+1]) == 0)
			if isolated {
				score -= Score(15 * n)
			}
		}
	}

	opp := c.Opponent()
	var oppFilePawns [8][]chess.Rank
	for _, sq := range pos.Pieces(chess.Pawn, opp) {
		oppFilePawns[sq.File()] = append(oppFilePawns[sq.File()], sq.Rank())
	}

	forward := 1
	if c == chess.Black {
		forward = -1
	}
	for f := chess.File(0); f < 8; f++ {
		for _, r := range filePawns[f] {
			if isPassed(f, r, forward, oppFilePawns) {
				score += 30
			}
		}
	}
	return score
}

func isPassed(f chess.File, r chess.Rank, forward int, oppFilePawns [8][]chess.Rank) bool {
	for _, df := range [3]int{-1, 0, 1} {
		nf := int(f) + df
		if nf < 0 || nf > 7 {
			continue
		}
		for _, or := range oppFilePawns[nf] {
			if forward > 0 && int(or) > int(r) {
				return false
			}
			if forward < 0 && int(or) < int(r) {
				return false
			}
		}
	}
	return true
}

func pawnDevelopmentTerm(pos chess.Position, engineColor chess.Color) Score {
	return sideScore(pos, engineColor, pawnDevelopmentForColor)
}

func pawnDevelopmentForColor(pos chess.Position, c chess.Color) Score {
	var score Score
	for _, sq := range pos.Pieces(chess.Pawn, c) {
		rr := relativeRankNumber(sq.Rank(), c)
		switch sq.File() {
		case chess.FileD, chess.FileE:
			switch rr {
			case 2:
				score -= 15
			case 3:
				score += 10
			case 4:
				score += 20
			}
		case chess.FileC, chess.FileF:
			switch rr {
			case 2:
				score -= 5
			case 3:
				score += 5
			case 4:
				score += 10
			}
		}
	}
	return score
}

// relativeRankNumber is the 1-indexed rank number as seen by c (rank 1 is
// always that side's back rank).
func relativeRankNumber(r chess.Rank, c chess.Color) int {
	if c == chess.White {
		return int(r) + 1
	}
	return 8 - int(r)
}

var (
	minorStartSquares = map[chess.Color][4]chess.Square{
		chess.White: {chess.B1, chess.G1, chess.C1, chess.F1},
		chess.Black: {chess.B8, chess.G8, chess.C8, chess.F8},
	}
	rookPenaltySquares = map[chess.Color][2]chess.Square{
		chess.White: {chess.B1, chess.G1},
		chess.Black: {chess.B8, chess.G8},
	}
)

func minorRookDevelopmentTerm(pos chess.Position, engineColor chess.Color) Score {
	return sideScore(pos, engineColor, minorRookDevelopmentForColor)
}

func minorRookDevelopmentForColor(pos chess.Position, c chess.Color) Score {
	var score Score
	for _, sq := range minorStartSquares[c] {
		if p, pc, ok := pos.PieceAt(sq); ok && pc == c && (p == chess.Knight || p == chess.Bishop) {
			score -= 20
		}
	}
	for _, sq := range rookPenaltySquares[c] {
		if p, pc, ok := pos.PieceAt(sq); ok && pc == c && p == chess.Rook {
			score -= 30
		}
	}
	return score
}

func kingSafetyTerm(pos chess.Position, engineColor chess.Color) Score {
	return sideScore(pos, engineColor, kingSafetyForColor)
}

func kingSafetyForColor(pos chess.Position, c chess.Color) Score {
	kingSq, ok := pos.King(c)
	if !ok {
		return 0
	}

	backRank := chess.Rank1
	if c == chess.Black {
		backRank = chess.Rank8
	}
	if kingSq.Rank() == backRank && hasTwoPawnShield(pos, c, kingSq) {
		return 50
	}

	rights := pos.CastlingRights()
	king, queen := chess.WhiteKingSide, chess.WhiteQueenSide
	if c == chess.Black {
		king, queen = chess.BlackKingSide, chess.BlackQueenSide
	}
	if !rights.IsAllowed(king) && !rights.IsAllowed(queen) {
		return -75
	}
	return 0
}

func hasTwoPawnShield(pos chess.Position, c chess.Color, kingSq chess.Square) bool {
	f := kingSq.File()
	var files []chess.File
	switch {
	case f < 2:
		files = []chess.File{chess.FileA, chess.FileB, chess.FileC}
	case f > 5:
		files = []chess.File{chess.FileF, chess.FileG, chess.FileH}
	default:
		return false
	}

	shieldRank := chess.Rank2
	if c == chess.Black {
		shieldRank = chess.Rank7
	}
	count := 0
	for _, file := range files {
		if p, pc, ok := pos.PieceAt(chess.NewSquare(file, shieldRank)); ok && pc == c && p == chess.Pawn {
			count++
		}
	}
	return count >= 2
}

// mobilityTerm counts legal moves for the side to move and, via a null-move
// flip, for the other side, without any other side effect.
func mobilityTerm(pos chess.Position, engineColor chess.Color) Score {
	stmMoves := len(pos.LegalMoves())
	pos.PushNullMove()
	nstmMoves := len(pos.LegalMoves())
	pos.PopNullMove()

	diff := Score(2 * (stmMoves - nstmMoves))
	if pos.SideToMove() != engineColor {
		diff = -diff
	}
	return diff
}

var centerSquares = [4]chess.Square{chess.D4, chess.D5, chess.E4, chess.E5}

func centerControlTerm(pos chess.Position, engineColor chess.Color) Score {
	opp := engineColor.Opponent()
	var score Score
	for _, sq := range centerSquares {
		score += Score(5 * (len(pos.Attackers(engineColor, sq)) - len(pos.Attackers(opp, sq))))
	}
	return score
}

func rookFilesTerm(pos chess.Position, engineColor chess.Color) Score {
	return sideScore(pos, engineColor, rookFilesForColor)
}

func rookFilesForColor(pos chess.Position, c chess.Color) Score {
	var score Score
	for _, sq := range pos.Pieces(chess.Rook, c) {
		f := sq.File()
		ownPawns, enemyPawns := 0, 0
		for r := chess.Rank(0); r < 8; r++ {
			if p, pc, ok := pos.PieceAt(chess.NewSquare(f, r)); ok && p == chess.Pawn {
				if pc == c {
					ownPawns++
				} else {
					enemyPawns++
				}
			}
		}
		switch {
		case ownPawns == 0 && enemyPawns == 0:
			score += 20
		case ownPawns == 0 && enemyPawns > 0:
			score += 10
		}
	}
	return score
}

// winningSideProgressTerm activates once the engine holds a clear material
// edge, pulling its king toward the center in the endgame and rewarding
// pawn advancement and piece proximity to the opponent's king.
func winningSideProgressTerm(pos chess.Position, engineColor chess.Color) Score {
	if plainMaterial(pos, engineColor) < 330 {
		return 0
	}

	totalPieces := len(pos.PieceMap())
	noQueens := len(pos.Pieces(chess.Queen, chess.White))+len(pos.Pieces(chess.Queen, chess.Black)) == 0

	var score Score
	if totalPieces <= 10 || noQueens {
		if kingSq, ok := pos.King(engineColor); ok {
			dist := abs(int(kingSq.File())-3) + abs(int(kingSq.Rank())-3)
			if bonus := 6 - dist; bonus > 0 {
				score += Score(10 * bonus)
			}
		}
	}

	for _, sq := range pos.Pieces(chess.Pawn, engineColor) {
		score += Score(5 * relativeRankIndex(sq.Rank(), engineColor))
	}

	if oppKingSq, ok := pos.King(engineColor.Opponent()); ok {
		for pt := chess.Knight; pt <= chess.Queen; pt++ {
			for _, sq := range pos.Pieces(pt, engineColor) {
				score += Score(3 * (8 - chebyshev(sq, oppKingSq)))
			}
		}
	}

	return score
}

// relativeRankIndex is the 0-indexed advancement of a pawn toward
// promotion, from c's perspective.
func relativeRankIndex(r chess.Rank, c chess.Color) int {
	if c == chess.White {
		return int(r)
	}
	return 7 - int(r)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func chebyshev(a, b chess.Square) int {
	df := abs(int(a.File()) - int(b.File()))
	dr := abs(int(a.Rank()) - int(b.Rank()))
	if df > dr {
		return df
	}
	return dr
}
