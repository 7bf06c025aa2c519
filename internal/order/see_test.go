package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarrasch/chesscore/internal/order"
	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
)

func TestSEEFavorableCaptureIsPositive(t *testing.T) {
	// White pawn e4 can take a black knight on d5, defended only by a
	// black pawn on c6; the knight is worth more than the recapturing
	// pawn costs, so SEE should be clearly positive.
	b, err := fen.Decode("4k3/8/2p5/3n4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	move, err := b.ResolveMove(chess.E4, chess.D5, chess.NoPiece)
	require.NoError(t, err)
	require.True(t, b.IsCapture(move))

	assert.Greater(t, order.SEE(b, move), 0)
}

func TestSEELosingCaptureIsNegative(t *testing.T) {
	// White queen takes a pawn on d5 defended by a black pawn on c6; the
	// queen will be recaptured for a mere pawn, net a large material loss.
	b, err := fen.Decode("4k3/8/2p5/3p4/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	move, err := b.ResolveMove(chess.D1, chess.D5, chess.NoPiece)
	require.NoError(t, err)
	require.True(t, b.IsCapture(move))

	assert.Less(t, order.SEE(b, move), 0)
}

func TestOrderMovesPlacesTTMoveFirst(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := b.LegalMoves()
	require.NotEmpty(t, moves)
	tt := moves[len(moves)-1]

	ordered := order.OrderMoves(b, moves, 0, nil, &tt, true)
	assert.True(t, ordered[0].Equals(tt))
	assert.Len(t, ordered, len(moves))
}
