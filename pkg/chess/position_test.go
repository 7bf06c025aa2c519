package chess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
)

func TestMakeUnmakeRoundTripsEveryLegalMoveFromStart(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	before := fen.Encode(b)

	for _, m := range b.LegalMoves() {
		b.MakeMove(m)
		b.UnmakeMove()
		assert.Equal(t, before, fen.Encode(b), "move %v left position changed", m)
	}
}

func TestFENRoundTrip(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/5k2/3p4/1P6/8/8/3P4/4K3 w - - 0 1",
	}
	for _, p := range positions {
		b, err := fen.Decode(p)
		require.NoError(t, err)
		assert.Equal(t, p, fen.Encode(b))
	}
}

func TestCastlingMoveIsLegalWhenPathClear(t *testing.T) {
	b, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var found bool
	for _, m := range b.LegalMoves() {
		if m.From == chess.E1 && m.To == chess.G1 {
			found = true
			assert.Equal(t, chess.KingCastle, m.Flag)
		}
	}
	assert.True(t, found, "expected kingside castle to be legal")
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	// Black rook on f8 attacks f1, the square the king transits through.
	b, err := fen.Decode("k4r2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	for _, m := range b.LegalMoves() {
		if m.From == chess.E1 && m.To == chess.G1 {
			t.Fatalf("castle through check should be illegal, got %v", m)
		}
	}
}

func TestEnPassantCaptureIsGenerated(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)

	var found bool
	for _, m := range b.LegalMoves() {
		if m.Flag == chess.EnPassantCapture {
			found = true
			assert.Equal(t, chess.D6, m.To)
		}
	}
	assert.True(t, found, "expected en passant capture to be legal")
}

func TestPromotionGeneratesAllFourPieces(t *testing.T) {
	b, err := fen.Decode("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	seen := map[chess.Piece]bool{}
	for _, m := range b.LegalMoves() {
		if m.From == chess.A7 && m.To == chess.A8 {
			seen[m.Promotion] = true
		}
	}
	assert.Len(t, seen, 4)
	assert.True(t, seen[chess.Queen])
	assert.True(t, seen[chess.Knight])
}

func TestCheckmateDetection(t *testing.T) {
	b, err := fen.Decode("R6k/6pp/8/8/8/8/8/7K b - - 0 1")
	require.NoError(t, err)
	assert.True(t, b.IsCheckmate())
	assert.False(t, b.IsStalemate())
	assert.Empty(t, b.LegalMoves())
}

func TestStalemateDetection(t *testing.T) {
	b, err := fen.Decode("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.True(t, b.IsStalemate())
	assert.False(t, b.IsCheckmate())
}

func TestInsufficientMaterialKingVsKing(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, b.IsInsufficientMaterial())
}

func TestPinnedPieceCannotMoveOffLine(t *testing.T) {
	// White king e1, white bishop e2 pinned by black rook e8.
	b, err := fen.Decode("k3r3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	require.NoError(t, err)

	for _, m := range b.LegalMoves() {
		if m.From == chess.E2 {
			assert.Equal(t, chess.E2.File(), m.To.File(), "pinned bishop must stay on the e-file")
		}
	}
}
