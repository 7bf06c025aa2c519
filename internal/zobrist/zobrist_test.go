package zobrist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarrasch/chesscore/pkg/chess"
	"github.com/tarrasch/chesscore/pkg/chess/fen"
	"github.com/tarrasch/chesscore/internal/zobrist"
)

func TestHashIsDeterministic(t *testing.T) {
	b1, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	b2, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	t1 := zobrist.NewTable(zobrist.Seed)
	t2 := zobrist.NewTable(zobrist.Seed)

	assert.Equal(t, t1.Hash(b1), t2.Hash(b2))
}

func TestUpdateAgreesWithFullRecompute(t *testing.T) {
	positions := []string{
		fen.Initial,
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r1bk1br1/ppp1qppp/n2p1n2/4p3/2B5/1P2PN2/P1PP1PPP/RNBQ1RK1 w - - 0 1",
		"rnb1kbnr/pppp1ppp/4p3/8/6Pq/P1N5/1PPPPP1P/R1BQKBNR b KQkq - 0 1",
	}

	table := zobrist.NewTable(zobrist.Seed)
	for _, p := range positions {
		b, err := fen.Decode(p)
		require.NoError(t, err)

		for _, m := range b.LegalMoves() {
			before := table.Hash(b)
			beforeSnap := zobrist.Snapshot(b)
			mover := b.SideToMove()

			b.MakeMove(m)
			afterSnap := zobrist.Snapshot(b)

			incremental := table.Update(before, mover, m, beforeSnap, afterSnap)
			fromScratch := table.Hash(b)

			assert.Equal(t, fromScratch, incremental, "move %v from %v", m, p)

			b.UnmakeMove()
		}
	}
}

func TestHashRoundTripsThroughMakeUnmake(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	table := zobrist.NewTable(zobrist.Seed)
	before := table.Hash(b)

	for _, m := range b.LegalMoves() {
		b.MakeMove(m)
		b.UnmakeMove()
		assert.Equal(t, before, table.Hash(b))
	}
}
