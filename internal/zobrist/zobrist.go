// Package zobrist implements the core's 64-bit position fingerprinting (C2).
package zobrist

import (
	"math/rand"

	"github.com/tarrasch/chesscore/pkg/chess"
)

// Seed is the fixed Zobrist seed compiled into the engine (spec'd constant),
// so that identical positions across runs and processes yield identical
// keys — no process-wide random state.
const Seed = 2025

// Hash is a 64-bit position fingerprint.
type Hash uint64

// Table holds the random words XORed together to build a Hash: one per
// occupied (color, piece, square), one per castling-rights bitmask value,
// one per en-passant file, and one for side-to-move: 793 random u64 words
// (6*2*64 + 16 + 8 + 1), matching the memory model in the spec. The piece
// array also has a NoPiece slot per color and square that is never filled.
type Table struct {
	pieces    [chess.NumColors][chess.NumPieceKinds][chess.NumSquares]Hash
	castling  [16]Hash
	enPassant [8]Hash
	turn      Hash
}

// NewTable builds a table deterministically from the fixed seed, owned by
// the engine instance constructing it (never a package-level global).
func NewTable(seed int64) *Table {
	r := rand.New(rand.NewSource(seed))

	t := &Table{}
	for c := chess.Color(0); c < chess.NumColors; c++ {
		for p := chess.Pawn; p <= chess.King; p++ {
			for sq := chess.ZeroSquare; sq < chess.NumSquares; sq++ {
				t.pieces[c][p][sq] = Hash(r.Uint64())
			}
		}
	}
	for i := range t.castling {
		t.castling[i] = Hash(r.Uint64())
	}
	for i := range t.enPassant {
		t.enPassant[i] = Hash(r.Uint64())
	}
	t.turn = Hash(r.Uint64())
	return t
}

// Hash computes the fingerprint of pos from scratch: an order-independent
// XOR over every contributing component.
func (t *Table) Hash(pos chess.Position) Hash {
	var h Hash
	for _, pl := range pos.PieceMap() {
		h ^= t.pieces[pl.Color][pl.Piece][pl.Square]
	}
	h ^= t.castling[pos.CastlingRights()&0xF]
	if sq, ok := pos.EnPassantSquare(); ok {
		h ^= t.enPassant[sq.File()]
	}
	if pos.SideToMove() == chess.Black {
		h ^= t.turn
	}
	return h
}

// CastlingEP snapshots the two position fields that change on every move
// (castling rights, en-passant target) so Update can XOR out the old
// contribution and XOR in the new one without re-deriving move-generation
// logic of its own.
type CastlingEP struct {
	Castling chess.Castling
	EPSquare chess.Square
	EPSet    bool
}

// Snapshot reads pos's current castling/en-passant state.
func Snapshot(pos chess.Position) CastlingEP {
	sq, ok := pos.EnPassantSquare()
	return CastlingEP{Castling: pos.CastlingRights(), EPSquare: sq, EPSet: ok}
}

// Update incrementally adjusts h for a move made by `mover`, given the
// castling/en-passant snapshots taken immediately before and after the move
// was applied. The result must equal Hash(position-after-move) computed
// from scratch — an invariant exercised by the accompanying property test.
func (t *Table) Update(h Hash, mover chess.Color, m chess.Move, before, after CastlingEP) Hash {
	h ^= t.castling[before.Castling&0xF]
	if before.EPSet {
		h ^= t.enPassant[before.EPSquare.File()]
	}

	h ^= t.pieces[mover][m.Piece][m.From]
	placed := m.Piece
	if m.IsPromotion() {
		placed = m.Promotion
	}
	h ^= t.pieces[mover][placed][m.To]

	switch {
	case m.Flag == chess.EnPassantCapture:
		capSq := m.To
		if mover == chess.White {
			capSq -= 8
		} else {
			capSq += 8
		}
		h ^= t.pieces[mover.Opponent()][chess.Pawn][capSq]
	case m.IsCapture():
		h ^= t.pieces[mover.Opponent()][m.Captured][m.To]
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(mover, m.Flag)
		h ^= t.pieces[mover][chess.Rook][rookFrom]
		h ^= t.pieces[mover][chess.Rook][rookTo]
	}

	h ^= t.castling[after.Castling&0xF]
	if after.EPSet {
		h ^= t.enPassant[after.EPSquare.File()]
	}
	h ^= t.turn

	return h
}

func castleRookSquares(color chess.Color, flag chess.MoveFlag) (from, to chess.Square) {
	if flag == chess.KingCastle {
		if color == chess.White {
			return chess.H1, chess.F1
		}
		return chess.H8, chess.F8
	}
	if color == chess.White {
		return chess.A1, chess.D1
	}
	return chess.A8, chess.D8
}
