package tt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/internal/tt"
	"github.com/tarrasch/chesscore/internal/zobrist"
	"github.com/tarrasch/chesscore/pkg/chess"
)

func TestStoreThenProbeRoundTrips(t *testing.T) {
	table := tt.New(1 << 16)
	key := zobrist.Hash(12345)
	best := chess.Move{From: chess.E2, To: chess.E4}

	table.Store(key, eval.Score(42), 6, tt.Exact, best)

	e, ok := table.Probe(key)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(42), e.Value)
	assert.Equal(t, 6, e.Depth)
	assert.Equal(t, tt.Exact, e.Flag)
	assert.True(t, e.Best.Equals(best))
}

func TestProbeMissOnEmptySlot(t *testing.T) {
	table := tt.New(1 << 16)
	_, ok := table.Probe(zobrist.Hash(999))
	assert.False(t, ok)
}

func TestStoreAlwaysReplaces(t *testing.T) {
	table := tt.New(1 << 10)
	key := zobrist.Hash(7)

	table.Store(key, eval.Score(100), 10, tt.Exact, chess.Move{})
	table.Store(key, eval.Score(1), 1, tt.Upper, chess.Move{})

	e, ok := table.Probe(key)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(1), e.Value)
	assert.Equal(t, 1, e.Depth)
}

func TestProbeCutoffRespectsFailHardBounds(t *testing.T) {
	exact := tt.Entry{Depth: 5, Flag: tt.Exact, Value: 10}
	v, ok := tt.ProbeCutoff(exact, 3, -100, 100)
	assert.True(t, ok)
	assert.Equal(t, eval.Score(10), v)

	lower := tt.Entry{Depth: 5, Flag: tt.Lower, Value: 50}
	_, ok = tt.ProbeCutoff(lower, 3, -100, 40)
	assert.True(t, ok)

	upper := tt.Entry{Depth: 5, Flag: tt.Upper, Value: -50}
	_, ok = tt.ProbeCutoff(upper, 3, -40, 100)
	assert.True(t, ok)

	tooShallow := tt.Entry{Depth: 1, Flag: tt.Exact, Value: 10}
	_, ok = tt.ProbeCutoff(tooShallow, 5, -100, 100)
	assert.False(t, ok)
}
