package chess

import "fmt"

// Placement is a single piece placed on a square, used to build a Position
// from a parsed FEN or a test fixture.
type Placement struct {
	Square Square
	Color  Color
	Piece  Piece
}

// Position is the chess-rules collaborator the search core depends on
// (adapter interface). The core never reaches past this interface into a
// concrete representation.
type Position interface {
	SideToMove() Color
	FullMoveNumber() int

	IsGameOver() bool
	IsCheckmate() bool
	IsStalemate() bool
	IsInsufficientMaterial() bool
	IsSeventyFiveMoveRule() bool
	IsFivefoldRepetition() bool

	PieceAt(sq Square) (Piece, Color, bool)
	PieceMap() []Placement
	Pieces(p Piece, c Color) []Square

	LegalMoves() []Move
	MakeMove(m Move)
	UnmakeMove()

	IsCapture(m Move) bool
	IsCastling(m Move) bool
	IsEnPassant(m Move) bool
	GivesCheck(m Move) bool

	Attackers(by Color, sq Square) []Square
	King(c Color) (Square, bool)
	EnPassantSquare() (Square, bool)
	CastlingRights() Castling

	PushNullMove()
	PopNullMove()
}

type cell struct {
	piece Piece
	color Color
}

type undo struct {
	move        Move
	castling    Castling
	epSquare    Square
	epSet       bool
	halfmove    int
	capturedSq  Square
	hadCaptured bool
}

type nullUndo struct {
	epSquare Square
	epSet    bool
	halfmove int
}

// Board is a mailbox implementation of Position: an array of squares plus a
// move-stack of undo snapshots, rather than bitboards. Move generation walks
// squares and casts rays instead of consulting precomputed attack tables —
// simple enough to review by inspection, since the rules adapter's own
// performance is explicitly outside the search core's budget.
type Board struct {
	squares  [NumSquares]cell
	turn     Color
	castling Castling
	epSquare Square
	epSet    bool
	halfmove int
	fullmove int

	history     []undo
	nullHistory []nullUndo
	sigHistory  []uint64
}

var _ Position = (*Board)(nil)

// NewBoard builds a Board from an explicit piece placement, mirroring the
// shape of a decoded FEN.
func NewBoard(pieces []Placement, turn Color, castling Castling, epSquare Square, epSet bool, halfmove, fullmove int) (*Board, error) {
	b := &Board{turn: turn, castling: castling, epSquare: epSquare, epSet: epSet, halfmove: halfmove, fullmove: fullmove}

	seen := make(map[Square]bool)
	for _, p := range pieces {
		if seen[p.Square] {
			return nil, fmt.Errorf("duplicate placement at %v", p.Square)
		}
		seen[p.Square] = true
		b.squares[p.Square] = cell{piece: p.Piece, color: p.Color}
	}

	if len(b.Pieces(King, White)) != 1 || len(b.Pieces(King, Black)) != 1 {
		return nil, fmt.Errorf("position must have exactly one king per side")
	}

	b.sigHistory = append(b.sigHistory, b.signature())
	return b, nil
}

func (b *Board) SideToMove() Color    { return b.turn }
func (b *Board) FullMoveNumber() int  { return b.fullmove }
func (b *Board) HalfmoveClock() int   { return b.halfmove }
func (b *Board) CastlingRights() Castling { return b.castling }

func (b *Board) EnPassantSquare() (Square, bool) {
	return b.epSquare, b.epSet
}

func (b *Board) PieceAt(sq Square) (Piece, Color, bool) {
	c := b.squares[sq]
	if c.piece == NoPiece {
		return NoPiece, 0, false
	}
	return c.piece, c.color, true
}

func (b *Board) PieceMap() []Placement {
	var out []Placement
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if p, c, ok := b.PieceAt(sq); ok {
			out = append(out, Placement{Square: sq, Color: c, Piece: p})
		}
	}
	return out
}

func (b *Board) Pieces(p Piece, c Color) []Square {
	var out []Square
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if pp, cc, ok := b.PieceAt(sq); ok && pp == p && cc == c {
			out = append(out, sq)
		}
	}
	return out
}

func (b *Board) King(c Color) (Square, bool) {
	sqs := b.Pieces(King, c)
	if len(sqs) == 0 {
		return 0, false
	}
	return sqs[0], true
}

func (b *Board) IsCapture(m Move) bool  { return m.IsCapture() }
func (b *Board) IsCastling(m Move) bool { return m.IsCastle() }
func (b *Board) IsEnPassant(m Move) bool {
	return m.Flag == EnPassantCapture
}

// GivesCheck reports whether m, if played, would leave the opponent in
// check. Determined by playing and unplaying the move.
func (b *Board) GivesCheck(m Move) bool {
	b.MakeMove(m)
	opp := b.turn
	kingSq, ok := b.King(opp)
	gives := ok && b.isAttackedBy(kingSq, opp.Opponent())
	b.UnmakeMove()
	return gives
}

// ResolveMove looks up the fully-populated legal Move matching the given
// from/to/promotion triple, the shape external callers (UCI move strings,
// test fixtures) provide.
func (b *Board) ResolveMove(from, to Square, promotion Piece) (Move, error) {
	for _, m := range b.LegalMoves() {
		if m.From == from && m.To == to && m.Promotion == promotion {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("illegal move %v%v", from, to)
}

func (b *Board) IsCheckmate() bool {
	kingSq, ok := b.King(b.turn)
	return ok && b.isAttackedBy(kingSq, b.turn.Opponent()) && len(b.LegalMoves()) == 0
}

func (b *Board) IsStalemate() bool {
	kingSq, ok := b.King(b.turn)
	return ok && !b.isAttackedBy(kingSq, b.turn.Opponent()) && len(b.LegalMoves()) == 0
}

func (b *Board) IsInsufficientMaterial() bool {
	var minorWhite, minorBlack int
	var whiteBishops, blackBishops []Square

	for _, pl := range b.PieceMap() {
		switch pl.Piece {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			if pl.Color == White {
				minorWhite++
			} else {
				minorBlack++
			}
		case Bishop:
			if pl.Color == White {
				minorWhite++
				whiteBishops = append(whiteBishops, pl.Square)
			} else {
				minorBlack++
				blackBishops = append(blackBishops, pl.Square)
			}
		}
	}

	switch {
	case minorWhite == 0 && minorBlack == 0:
		return true
	case minorWhite+minorBlack == 1:
		return true
	case minorWhite == 1 && minorBlack == 1 && len(whiteBishops) == 1 && len(blackBishops) == 1:
		return squareColor(whiteBishops[0]) == squareColor(blackBishops[0])
	default:
		return false
	}
}

func squareColor(sq Square) int {
	return (int(sq.File()) + int(sq.Rank())) % 2
}

func (b *Board) IsSeventyFiveMoveRule() bool {
	return b.halfmove >= 150
}

func (b *Board) IsFivefoldRepetition() bool {
	if len(b.sigHistory) == 0 {
		return false
	}
	cur := b.sigHistory[len(b.sigHistory)-1]
	count := 0
	for _, s := range b.sigHistory {
		if s == cur {
			count++
		}
	}
	return count >= 5
}

func (b *Board) IsGameOver() bool {
	return b.IsCheckmate() || b.IsStalemate() || b.IsInsufficientMaterial() ||
		b.IsSeventyFiveMoveRule() || b.IsFivefoldRepetition()
}

// LegalMoves filters PseudoLegalMoves down to moves that do not leave the
// mover's own king in check.
func (b *Board) LegalMoves() []Move {
	pseudo := b.PseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	turn := b.turn
	for _, m := range pseudo {
		b.MakeMove(m)
		kingSq, ok := b.King(turn)
		if ok && !b.isAttackedBy(kingSq, turn.Opponent()) {
			legal = append(legal, m)
		}
		b.UnmakeMove()
	}
	return legal
}

func (b *Board) PseudoLegalMoves() []Move {
	var moves []Move
	turn := b.turn
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p, c, ok := b.PieceAt(sq)
		if !ok || c != turn {
			continue
		}
		switch p {
		case Pawn:
			moves = append(moves, b.genPawnMoves(sq, c)...)
		case Knight:
			moves = append(moves, b.genOffsetMoves(sq, c, knightOffsets, Knight)...)
		case Bishop:
			moves = append(moves, b.genSliderMoves(sq, c, bishopDirs, Bishop)...)
		case Rook:
			moves = append(moves, b.genSliderMoves(sq, c, rookDirs, Rook)...)
		case Queen:
			moves = append(moves, b.genSliderMoves(sq, c, queenDirs, Queen)...)
		case King:
			moves = append(moves, b.genOffsetMoves(sq, c, kingOffsets, King)...)
			moves = append(moves, b.genCastlingMoves(c)...)
		}
	}
	return moves
}

func (b *Board) genOffsetMoves(sq Square, c Color, offsets []dir, piece Piece) []Move {
	var moves []Move
	for _, d := range offsets {
		to, ok := offset(sq, d.df, d.dr)
		if !ok {
			continue
		}
		tp, tc, present := b.PieceAt(to)
		if present && tc == c {
			continue
		}
		m := Move{From: sq, To: to, Piece: piece}
		if present {
			m.Flag = Capture
			m.Captured = tp
		}
		moves = append(moves, m)
	}
	return moves
}

func (b *Board) genSliderMoves(sq Square, c Color, dirs []dir, piece Piece) []Move {
	var moves []Move
	for _, d := range dirs {
		cur := sq
		for {
			to, ok := offset(cur, d.df, d.dr)
			if !ok {
				break
			}
			cur = to
			tp, tc, present := b.PieceAt(to)
			if present {
				if tc != c {
					moves = append(moves, Move{From: sq, To: to, Piece: piece, Flag: Capture, Captured: tp})
				}
				break
			}
			moves = append(moves, Move{From: sq, To: to, Piece: piece})
		}
	}
	return moves
}

func (b *Board) genPawnMoves(sq Square, c Color) []Move {
	var moves []Move

	dr, startRank, promoRank := 1, Rank2, Rank8
	if c == Black {
		dr, startRank, promoRank = -1, Rank7, Rank1
	}

	if to, ok := offset(sq, 0, dr); ok {
		if _, _, present := b.PieceAt(to); !present {
			moves = append(moves, pawnAdvance(sq, to, promoRank, Normal, NoPiece)...)
			if sq.Rank() == startRank {
				if to2, ok := offset(sq, 0, 2*dr); ok {
					if _, _, present2 := b.PieceAt(to2); !present2 {
						moves = append(moves, Move{From: sq, To: to2, Piece: Pawn, Flag: DoublePawnPush})
					}
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := offset(sq, df, dr)
		if !ok {
			continue
		}
		if tp, tc, present := b.PieceAt(to); present {
			if tc != c {
				moves = append(moves, pawnAdvance(sq, to, promoRank, Capture, tp)...)
			}
			continue
		}
		if ep, epOk := b.EnPassantSquare(); epOk && ep == to {
			moves = append(moves, Move{From: sq, To: to, Piece: Pawn, Flag: EnPassantCapture, Captured: Pawn})
		}
	}
	return moves
}

func pawnAdvance(from, to Square, promoRank Rank, baseFlag MoveFlag, captured Piece) []Move {
	if to.Rank() != promoRank {
		return []Move{{From: from, To: to, Piece: Pawn, Captured: captured, Flag: baseFlag}}
	}
	flag := Promotion
	if baseFlag == Capture {
		flag = CapturePromotion
	}
	promos := [4]Piece{Queen, Rook, Bishop, Knight}
	moves := make([]Move, 0, 4)
	for _, promo := range promos {
		moves = append(moves, Move{From: from, To: to, Piece: Pawn, Promotion: promo, Captured: captured, Flag: flag})
	}
	return moves
}

func (b *Board) genCastlingMoves(c Color) []Move {
	var moves []Move
	opp := c.Opponent()

	if c == White {
		if b.castling.IsAllowed(WhiteKingSide) && b.isRookAt(H1, White) &&
			b.emptyAndSafe([]Square{F1, G1}, E1, opp) {
			moves = append(moves, Move{From: E1, To: G1, Piece: King, Flag: KingCastle})
		}
		if b.castling.IsAllowed(WhiteQueenSide) && b.isRookAt(A1, White) &&
			b.isEmpty(B1) && b.emptyAndSafe([]Square{C1, D1}, E1, opp) {
			moves = append(moves, Move{From: E1, To: C1, Piece: King, Flag: QueenCastle})
		}
	} else {
		if b.castling.IsAllowed(BlackKingSide) && b.isRookAt(H8, Black) &&
			b.emptyAndSafe([]Square{F8, G8}, E8, opp) {
			moves = append(moves, Move{From: E8, To: G8, Piece: King, Flag: KingCastle})
		}
		if b.castling.IsAllowed(BlackQueenSide) && b.isRookAt(A8, Black) &&
			b.isEmpty(B8) && b.emptyAndSafe([]Square{C8, D8}, E8, opp) {
			moves = append(moves, Move{From: E8, To: C8, Piece: King, Flag: QueenCastle})
		}
	}
	return moves
}

func (b *Board) isEmpty(sq Square) bool {
	_, _, present := b.PieceAt(sq)
	return !present
}

func (b *Board) isRookAt(sq Square, c Color) bool {
	p, pc, present := b.PieceAt(sq)
	return present && pc == c && p == Rook
}

// emptyAndSafe checks that squares between king and rook are empty and that
// the king's starting square plus each transit square are not attacked,
// implementing "may not castle through or out of check".
func (b *Board) emptyAndSafe(squares []Square, kingSq Square, opp Color) bool {
	if b.isAttackedBy(kingSq, opp) {
		return false
	}
	for _, sq := range squares {
		if !b.isEmpty(sq) || b.isAttackedBy(sq, opp) {
			return false
		}
	}
	return true
}

// Attackers returns every square holding a piece of color `by` that attacks
// sq (ignoring en passant, which is not a square attack).
func (b *Board) Attackers(by Color, sq Square) []Square {
	var out []Square

	dr := -1
	if by == Black {
		dr = 1
	}
	for _, df := range [2]int{-1, 1} {
		if s, ok := offset(sq, df, dr); ok {
			if p, c, present := b.PieceAt(s); present && c == by && p == Pawn {
				out = append(out, s)
			}
		}
	}

	for _, d := range knightOffsets {
		if s, ok := offset(sq, d.df, d.dr); ok {
			if p, c, present := b.PieceAt(s); present && c == by && p == Knight {
				out = append(out, s)
			}
		}
	}
	for _, d := range kingOffsets {
		if s, ok := offset(sq, d.df, d.dr); ok {
			if p, c, present := b.PieceAt(s); present && c == by && p == King {
				out = append(out, s)
			}
		}
	}

	for _, d := range bishopDirs {
		if s, ok := b.rayAttacker(sq, d, by, Bishop, Queen); ok {
			out = append(out, s)
		}
	}
	for _, d := range rookDirs {
		if s, ok := b.rayAttacker(sq, d, by, Rook, Queen); ok {
			out = append(out, s)
		}
	}
	return out
}

func (b *Board) rayAttacker(sq Square, d dir, by Color, slider1, slider2 Piece) (Square, bool) {
	cur := sq
	for {
		to, ok := offset(cur, d.df, d.dr)
		if !ok {
			return 0, false
		}
		cur = to
		if p, c, present := b.PieceAt(to); present {
			if c == by && (p == slider1 || p == slider2) {
				return to, true
			}
			return 0, false
		}
	}
}

func (b *Board) isAttackedBy(sq Square, by Color) bool {
	return len(b.Attackers(by, sq)) > 0
}

// MakeMove applies m, recording enough state in the move-stack to undo it
// exactly via UnmakeMove. Strict LIFO: unbalanced calls are a programmer
// error the caller must never trigger.
func (b *Board) MakeMove(m Move) {
	color := b.turn
	u := undo{move: m, castling: b.castling, epSquare: b.epSquare, epSet: b.epSet, halfmove: b.halfmove}

	switch m.Flag {
	case EnPassantCapture:
		capSq := m.To
		if color == White {
			capSq, _ = offset(m.To, 0, -1)
		} else {
			capSq, _ = offset(m.To, 0, 1)
		}
		u.capturedSq, u.hadCaptured = capSq, true
		b.squares[capSq] = cell{}
	case Capture, CapturePromotion:
		u.capturedSq, u.hadCaptured = m.To, true
	}

	b.epSet = false

	b.squares[m.From] = cell{}
	placed := cell{piece: m.Piece, color: color}
	if m.IsPromotion() {
		placed = cell{piece: m.Promotion, color: color}
	}
	b.squares[m.To] = placed

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(color, m.Flag)
		b.squares[rookTo] = cell{piece: Rook, color: color}
		b.squares[rookFrom] = cell{}
	}

	if m.Flag == DoublePawnPush {
		if color == White {
			b.epSquare, _ = offset(m.From, 0, 1)
		} else {
			b.epSquare, _ = offset(m.From, 0, -1)
		}
		b.epSet = true
	}

	b.updateCastlingRights(m)

	if m.Piece == Pawn || m.IsCapture() {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if color == Black {
		b.fullmove++
	}
	b.turn = color.Opponent()

	b.history = append(b.history, u)
	b.sigHistory = append(b.sigHistory, b.signature())
}

// UnmakeMove pops the most recent move pushed by MakeMove, restoring the
// position to its exact prior state.
func (b *Board) UnmakeMove() {
	n := len(b.history)
	u := b.history[n-1]
	b.history = b.history[:n-1]
	b.sigHistory = b.sigHistory[:len(b.sigHistory)-1]

	m := u.move
	color := b.turn.Opponent()
	b.turn = color
	if color == Black {
		b.fullmove--
	}

	b.squares[m.From] = cell{piece: m.Piece, color: color}
	b.squares[m.To] = cell{}

	if u.hadCaptured {
		b.squares[u.capturedSq] = cell{piece: m.Captured, color: color.Opponent()}
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(color, m.Flag)
		b.squares[rookFrom] = cell{piece: Rook, color: color}
		b.squares[rookTo] = cell{}
	}

	b.castling = u.castling
	b.epSquare = u.epSquare
	b.epSet = u.epSet
	b.halfmove = u.halfmove
}

func castleRookSquares(color Color, flag MoveFlag) (from, to Square) {
	if flag == KingCastle {
		if color == White {
			return H1, F1
		}
		return H8, F8
	}
	if color == White {
		return A1, D1
	}
	return A8, D8
}

func (b *Board) updateCastlingRights(m Move) {
	voidCorner := func(sq Square) {
		switch sq {
		case A1:
			b.castling &^= WhiteQueenSide
		case H1:
			b.castling &^= WhiteKingSide
		case A8:
			b.castling &^= BlackQueenSide
		case H8:
			b.castling &^= BlackKingSide
		}
	}
	if m.Piece == King {
		if m.From == E1 {
			b.castling &^= WhiteKingSide | WhiteQueenSide
		} else if m.From == E8 {
			b.castling &^= BlackKingSide | BlackQueenSide
		}
	}
	voidCorner(m.From)
	voidCorner(m.To)
}

// PushNullMove flips the side to move without playing a move, used by the
// evaluator's mobility term. The en-passant target is cleared, matching
// real-move semantics (no move leaves a stale ep square).
func (b *Board) PushNullMove() {
	b.nullHistory = append(b.nullHistory, nullUndo{epSquare: b.epSquare, epSet: b.epSet, halfmove: b.halfmove})
	b.epSet = false
	b.turn = b.turn.Opponent()
}

func (b *Board) PopNullMove() {
	n := len(b.nullHistory)
	u := b.nullHistory[n-1]
	b.nullHistory = b.nullHistory[:n-1]
	b.epSquare = u.epSquare
	b.epSet = u.epSet
	b.halfmove = u.halfmove
	b.turn = b.turn.Opponent()
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// signature is a draw-detection fingerprint, independent of the core's
// Zobrist hasher (internal/zobrist) by design — the rules adapter must not
// depend on the search core it serves.
func (b *Board) signature() uint64 {
	h := uint64(fnvOffset64)
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		c := b.squares[sq]
		h = (h ^ uint64(c.piece)<<1 ^ uint64(c.color)) * fnvPrime64
	}
	h = (h ^ uint64(b.castling)) * fnvPrime64
	if b.epSet {
		h = (h ^ (uint64(b.epSquare.File()) + 1)) * fnvPrime64
	}
	h = (h ^ uint64(b.turn)) * fnvPrime64
	return h
}

type dir struct{ df, dr int }

var (
	knightOffsets = []dir{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = []dir{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	bishopDirs    = []dir{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs      = []dir{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	queenDirs     = append(append([]dir{}, bishopDirs...), rookDirs...)
)

func offset(sq Square, df, dr int) (Square, bool) {
	f := int(sq.File()) + df
	r := int(sq.Rank()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return 0, false
	}
	return NewSquare(File(f), Rank(r)), true
}

func (b *Board) String() string {
	var out [NumSquares + 8]byte
	i := 0
	for r := int(Rank8); r >= int(Rank1); r-- {
		for f := 0; f < 8; f++ {
			sq := NewSquare(File(f), Rank(r))
			if p, c, ok := b.PieceAt(sq); ok {
				s := p.String()
				if c == White {
					s = string(rune(s[0] - 32))
				}
				out[i] = s[0]
			} else {
				out[i] = '.'
			}
			i++
		}
		if r > int(Rank1) {
			out[i] = '/'
			i++
		}
	}
	return string(out[:i])
}
