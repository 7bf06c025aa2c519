package search

import "github.com/tarrasch/chesscore/pkg/chess"

const maxKillersPerPly = 2

// Killers tracks, per search ply, the quiet moves that most recently
// produced a beta cutoff — a cheap substitute for re-deriving good moves
// when the same ply is reached via a different path in the tree.
type Killers struct {
	table [][maxKillersPerPly]chess.Move
}

// NewKillers allocates a killer table sized for plies 0..maxPly inclusive.
func NewKillers(maxPly int) *Killers {
	return &Killers{table: make([][maxKillersPerPly]chess.Move, maxPly+1)}
}

// IsKiller reports whether m is recorded as a killer at ply. Satisfies
// internal/order's KillerSource interface.
func (k *Killers) IsKiller(ply int, m chess.Move) bool {
	if ply < 0 || ply >= len(k.table) {
		return false
	}
	for _, km := range k.table[ply] {
		if km.Equals(m) {
			return true
		}
	}
	return false
}

// Record stores m as the newest killer at ply, evicting the oldest of the
// (at most two) slots. Captures are not recorded: they already sort high
// via SEE, so a killer slot is better spent on a quiet move.
func (k *Killers) Record(ply int, m chess.Move, isCapture bool) {
	if isCapture || ply < 0 || ply >= len(k.table) {
		return
	}
	if k.IsKiller(ply, m) {
		return
	}
	for i := maxKillersPerPly - 1; i > 0; i-- {
		k.table[ply][i] = k.table[ply][i-1]
	}
	k.table[ply][0] = m
}
