package fen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
)

func TestDecodeInitialPosition(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, chess.White, b.SideToMove())
	assert.Equal(t, 1, b.FullMoveNumber())
	assert.Equal(t, chess.FullCastlingRights, b.CastlingRights())
	_, ok := b.EnPassantSquare()
	assert.False(t, ok)

	p, c, ok := b.PieceAt(chess.E1)
	require.True(t, ok)
	assert.Equal(t, chess.King, p)
	assert.Equal(t, chess.White, c)
}

func TestDecodeRejectsMalformedFEN(t *testing.T) {
	_, err := fen.Decode("not a fen")
	assert.Error(t, err)

	_, err = fen.Decode("8/8/8/8/8/8/8/8 w - - 0 1") // no kings
	assert.Error(t, err)
}

func TestEncodeMatchesDecodedEnPassant(t *testing.T) {
	b, err := fen.Decode("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	assert.Equal(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", fen.Encode(b))
}
