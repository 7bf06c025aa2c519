package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
)

func TestPeStoCentralizationFavorsCentralKnights(t *testing.T) {
	b, err := fen.Decode("N2K3N/8/8/4n3/2n5/8/8/3k4 w - - 0 1")
	require.NoError(t, err)

	black := eval.Evaluate(b, chess.Black, 0)
	white := eval.Evaluate(b, chess.White, 0)

	assert.Greater(t, int(black), int(white))
}

func TestKingSafetyFavorsCastledKing(t *testing.T) {
	b, err := fen.Decode("r1bk1br1/ppp1qppp/n2p1n2/4p3/2B5/1P2PN2/P1PP1PPP/RNBQ1RK1 w - - 0 1")
	require.NoError(t, err)

	white := eval.Evaluate(b, chess.White, 0)
	black := eval.Evaluate(b, chess.Black, 0)

	assert.Greater(t, int(white), int(black))
}

func TestPassedPawnSignFlipsWithPosition(t *testing.T) {
	winning, err := fen.Decode("8/5k2/3p4/1P6/8/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)
	losing, err := fen.Decode("8/5k2/3p4/8/3P4/3p4/8/4K3 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, int(eval.Evaluate(winning, chess.White, 0)), 0)
	assert.Less(t, int(eval.Evaluate(losing, chess.White, 0)), 0)
}

func TestCheckmateScoresPreferShorterMates(t *testing.T) {
	// A position with black to move, checkmated, evaluated from white's
	// perspective (the side delivering mate). The depth argument is the
	// depth remaining, so a mate reached closer to the root (a shorter
	// mate) carries more remaining depth.
	b, err := fen.Decode("R6k/6pp/8/8/8/8/8/7K b - - 0 1")
	require.NoError(t, err)

	require.True(t, b.IsCheckmate())
	shallow := eval.Evaluate(b, chess.White, 3)
	deep := eval.Evaluate(b, chess.White, 1)
	assert.Greater(t, int(shallow), int(deep))
}
