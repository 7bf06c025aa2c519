// Package search implements the quiescence and alpha-beta drivers (C6,
// C7) and the iterative-deepening root driver (C8): the recursive game
// tree walk that, given a position and a depth budget, selects a move.
package search

import (
	"github.com/tarrasch/chesscore/internal/tt"
	"github.com/tarrasch/chesscore/internal/zobrist"
	"github.com/tarrasch/chesscore/pkg/chess"
)

// Searcher holds the mutable state of a single find_best_move call: the
// position under search (mutated in place via make/unmake), the shared
// Zobrist table, the transposition table, and the killer-move table.
// Not safe for concurrent use — the core is single-threaded by design.
type Searcher struct {
	pos         chess.Position
	engineColor chess.Color
	zobrist     *zobrist.Table
	tt          *tt.Table
	killers     *Killers
	nodes       uint64

	hash      zobrist.Hash
	hashStack []zobrist.Hash
}

// NewSearcher builds a searcher over pos, scoring from engineColor's
// point of view, using the given Zobrist table and transposition table.
// maxPly bounds the killer table (one slot-pair per ply reachable within
// quiescence as well as the main search).
func NewSearcher(pos chess.Position, engineColor chess.Color, zt *zobrist.Table, table *tt.Table, maxPly int) *Searcher {
	return &Searcher{
		pos:         pos,
		engineColor: engineColor,
		zobrist:     zt,
		tt:          table,
		killers:     NewKillers(maxPly),
		hash:        zt.Hash(pos),
	}
}

// Nodes returns the number of nodes visited since construction.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// push applies m to the position and incrementally updates the running
// Zobrist hash, pushing the prior hash so pop can restore it in O(1)
// without a full recompute.
func (s *Searcher) push(m chess.Move) {
	before := zobrist.Snapshot(s.pos)
	mover := s.pos.SideToMove()

	s.pos.MakeMove(m)

	after := zobrist.Snapshot(s.pos)
	s.hashStack = append(s.hashStack, s.hash)
	s.hash = s.zobrist.Update(s.hash, mover, m, before, after)
}

// pop is the strict LIFO inverse of push: it must be called exactly once
// per push, on every exit path, so the position is never observed in an
// inconsistent state across a recursive boundary.
func (s *Searcher) pop() {
	s.pos.UnmakeMove()

	n := len(s.hashStack)
	s.hash = s.hashStack[n-1]
	s.hashStack = s.hashStack[:n-1]
}
