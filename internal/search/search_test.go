package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/internal/search"
	"github.com/tarrasch/chesscore/internal/tt"
	"github.com/tarrasch/chesscore/internal/zobrist"
	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
)

func newSearcher(t *testing.T, position string, engineColor chess.Color) (*search.Searcher, *chess.Board) {
	t.Helper()
	b, err := fen.Decode(position)
	require.NoError(t, err)
	zt := zobrist.NewTable(zobrist.Seed)
	table := tt.New(1 << 16)
	return search.NewSearcher(b, engineColor, zt, table, 64), b
}

func TestFindBestMoveMateInOne(t *testing.T) {
	s, _ := newSearcher(t, "3q2k1/8/8/8/8/1P6/P6r/K7 b - - 0 1", chess.Black)

	move, score := s.FindBestMove(3)
	require.NotNil(t, move)
	assert.True(t, score.IsMateScore())
}

func TestFindBestMoveRecapture(t *testing.T) {
	// 1. d4 Nh6 2. Bxh6 — black should recapture with the g-pawn.
	b, err := fen.Decode("rnbqkb1r/pppppppp/7B/8/3P4/8/PPP1PPPP/RN1QKBNR b KQkq - 0 1")
	require.NoError(t, err)

	zt := zobrist.NewTable(zobrist.Seed)
	table := tt.New(1 << 16)
	s := search.NewSearcher(b, chess.Black, zt, table, 64)

	move, _ := s.FindBestMove(3)
	require.NotNil(t, move)
	assert.Equal(t, chess.G7, move.From)
	assert.Equal(t, chess.H6, move.To)
}

func TestAlphaBetaLeavesPositionUnchanged(t *testing.T) {
	s, b := newSearcher(t, fen.Initial, chess.White)
	before := fen.Encode(b)

	s.AlphaBeta(3, -eval.Inf, eval.Inf, true, 0)

	assert.Equal(t, before, fen.Encode(b))
}

func TestFindBestMoveReturnsNilWithNoLegalMoves(t *testing.T) {
	// Black is stalemated.
	s, _ := newSearcher(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", chess.White)

	move, score := s.FindBestMove(2)
	assert.Nil(t, move)
	assert.Equal(t, eval.Score(0), score)
}
