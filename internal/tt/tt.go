// Package tt implements the transposition table (C5): an always-replace
// cache from Zobrist hash to the best score, depth, and move found for a
// position, keyed for fail-hard alpha-beta reuse across iterative
// deepening passes.
package tt

import (
	"math/bits"

	"github.com/tarrasch/chesscore/internal/eval"
	"github.com/tarrasch/chesscore/internal/zobrist"
	"github.com/tarrasch/chesscore/pkg/chess"
)

// Flag records which bound a stored score represents, per fail-hard
// alpha-beta: Exact is an exact score, Lower is a fail-high (score is at
// least this good), Upper is a fail-low (score is at most this good).
type Flag uint8

const (
	Exact Flag = iota
	Lower
	Upper
)

func (f Flag) String() string {
	switch f {
	case Exact:
		return "Exact"
	case Lower:
		return "Lower"
	case Upper:
		return "Upper"
	default:
		return "?"
	}
}

// Entry is a single transposition table record.
type Entry struct {
	Key   zobrist.Hash
	Value eval.Score
	Depth int
	Flag  Flag
	Best  chess.Move
	Valid bool
}

// Table is an always-replace, fixed-size transposition table: each slot
// is addressed by hash & mask and simply overwritten on every store,
// regardless of the depth or age of the entry it displaces.
type Table struct {
	entries []Entry
	mask    uint64
}

const defaultEntries = 1 << 20

// New allocates a table sized to hold approximately sizeBytes worth of
// entries, rounded down to a power of two so the hash can be masked
// directly into a slot index. A sizeBytes of 0, or one too small for a
// single entry, yields the default of 2^20 entries.
func New(sizeBytes uint64) *Table {
	const entrySize = 40 // approximate bytes per Entry
	n := uint64(defaultEntries)
	if sizeBytes > 0 {
		shift := bits.Len64(sizeBytes/entrySize) - 1
		if shift >= 0 {
			n = uint64(1) << uint(shift)
		}
	}
	if n == 0 {
		n = 1
	}
	return &Table{
		entries: make([]Entry, n),
		mask:    n - 1,
	}
}

func (t *Table) slot(key zobrist.Hash) *Entry {
	return &t.entries[uint64(key)&t.mask]
}

// Probe returns the stored entry for key, if any.
func (t *Table) Probe(key zobrist.Hash) (Entry, bool) {
	e := t.slot(key)
	if e.Valid && e.Key == key {
		return *e, true
	}
	return Entry{}, false
}

// Store records a search result, unconditionally replacing whatever
// previously occupied the slot.
func (t *Table) Store(key zobrist.Hash, value eval.Score, depth int, flag Flag, best chess.Move) {
	*t.slot(key) = Entry{
		Key:   key,
		Value: value,
		Depth: depth,
		Flag:  flag,
		Best:  best,
		Valid: true,
	}
}

// Len returns the number of slots in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// ProbeCutoff resolves a stored entry against the current search window,
// returning a usable score and true if the entry alone settles the node
// at depth (the entry was searched to at least this depth and its bound
// is consistent with [alpha, beta]).
func ProbeCutoff(e Entry, depth int, alpha, beta eval.Score) (eval.Score, bool) {
	if e.Depth < depth {
		return 0, false
	}
	switch e.Flag {
	case Exact:
		return e.Value, true
	case Lower:
		if e.Value >= beta {
			return e.Value, true
		}
	case Upper:
		if e.Value <= alpha {
			return e.Value, true
		}
	}
	return 0, false
}
