package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tarrasch/chesscore/pkg/chess"
)

func TestKillersRecordsQuietMovesOnly(t *testing.T) {
	k := NewKillers(8)
	quiet := chess.Move{From: chess.E2, To: chess.E4}
	capture := chess.Move{From: chess.D2, To: chess.D4}

	k.Record(0, capture, true)
	assert.False(t, k.IsKiller(0, capture), "captures must not be recorded as killers")

	k.Record(0, quiet, false)
	assert.True(t, k.IsKiller(0, quiet))
}

func TestKillersKeepsAtMostTwoPerPly(t *testing.T) {
	k := NewKillers(8)
	a := chess.Move{From: chess.E2, To: chess.E4}
	b := chess.Move{From: chess.D2, To: chess.D4}
	c := chess.Move{From: chess.G1, To: chess.F3}

	k.Record(1, a, false)
	k.Record(1, b, false)
	k.Record(1, c, false)

	assert.False(t, k.IsKiller(1, a), "oldest killer should be evicted")
	assert.True(t, k.IsKiller(1, b))
	assert.True(t, k.IsKiller(1, c))
}

func TestKillersOutOfBoundsPlyIsNotKiller(t *testing.T) {
	k := NewKillers(2)
	m := chess.Move{From: chess.E2, To: chess.E4}
	k.Record(50, m, false)
	assert.False(t, k.IsKiller(50, m))
}
