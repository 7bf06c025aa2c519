package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
	"github.com/tarrasch/chesscore/pkg/engine"
)

func TestNewStartsAtInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx)
	assert.Equal(t, fen.Initial, e.Position())
}

func TestResetPlaysWhoeverIsToMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx)

	// Black to move, with a pawn besides the bare king so the position is
	// neither checkmate, stalemate, nor insufficient material.
	require.NoError(t, e.Reset(ctx, "4k3/8/8/8/8/8/4p3/4K3 b - - 0 1"))
	move, _ := e.FindBestMove(ctx, 2)
	require.NotNil(t, move, "engine must find a move when it plays the side to move")
}

func TestWithEngineColorOverridesSideToMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithEngineColor(chess.White))
	assert.Contains(t, e.Options().String(), "engineColor=w")

	require.NoError(t, e.Reset(ctx, "4k3/8/8/8/8/8/8/4K3 b - - 0 1"))
	// A fresh Reset must not let the position's side to move clobber the
	// fixed engine color.
	assert.Contains(t, e.Options().String(), "engineColor=w")
}

func TestMoveAndTakeBackRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx)
	before := e.Position()

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, before, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, before, e.Position())

	assert.Error(t, e.TakeBack(ctx), "take back with no move history must error")
}

func TestSetHashReallocatesTable(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx)
	e.SetHash(1)
	move, _ := e.FindBestMove(ctx, 2)
	assert.NotNil(t, move)
}
