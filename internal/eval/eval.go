package eval

import "github.com/tarrasch/chesscore/pkg/chess"

// Evaluate scores pos from engineColor's point of view. depthRemaining
// feeds the mate-distance encoding so that, once propagated to the root,
// shorter forced mates strictly dominate longer ones.
func Evaluate(pos chess.Position, engineColor chess.Color, depthRemaining int) Score {
	if pos.IsCheckmate() {
		if pos.SideToMove() == engineColor {
			return MatedIn(depthRemaining)
		}
		return MateIn(depthRemaining)
	}
	if pos.IsStalemate() || pos.IsInsufficientMaterial() || pos.IsSeventyFiveMoveRule() || pos.IsFivefoldRepetition() {
		return 0
	}

	var score Score
	for _, term := range terms(pos.FullMoveNumber()) {
		score += term(pos, engineColor)
	}
	return score
}

// terms returns the fixed, ordered composition of evaluation terms active
// at the given full-move number. The opening-only terms drop out once the
// game has developed past the thresholds the spec fixes (full-move 10 for
// the material/PeSTo switch, 16 for development bonuses).
func terms(fullMove int) []Term {
	var ts []Term
	if fullMove <= 10 {
		ts = append(ts, plainMaterialTerm)
	} else {
		ts = append(ts, taperedPSQTTerm)
	}

	ts = append(ts, pawnStructureTerm)

	if fullMove <= 16 {
		ts = append(ts, pawnDevelopmentTerm, minorRookDevelopmentTerm)
	}

	ts = append(ts,
		kingSafetyTerm,
		mobilityTerm,
		centerControlTerm,
		rookFilesTerm,
		winningSideProgressTerm,
	)
	return ts
}
