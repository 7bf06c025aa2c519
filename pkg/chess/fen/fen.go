// Package fen decodes and encodes chess positions in Forsyth-Edwards
// Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tarrasch/chesscore/pkg/chess"
)

const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a board and its surrounding game state.
func Decode(s string) (*chess.Board, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of fields in FEN: %q", s)
	}

	pieces, err := decodePlacement(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", s, err)
	}

	turn, ok := chess.ParseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", s)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling rights in FEN: %q", s)
	}

	var ep chess.Square
	epSet := false
	if parts[3] != "-" {
		sq, err := chess.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square in FEN: %q", s)
		}
		ep, epSet = sq, true
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: %q", s)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("invalid fullmove number in FEN: %q", s)
	}

	return chess.NewBoard(pieces, turn, castling, ep, epSet, halfmove, fullmove)
}

func decodePlacement(field string) ([]chess.Placement, error) {
	var pieces []chess.Placement

	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := chess.Rank(7 - i)
		file := 0
		for _, r := range rankStr {
			switch {
			case unicode.IsDigit(r):
				file += int(r - '0')
			default:
				color, piece, ok := parsePiece(r)
				if !ok {
					return nil, fmt.Errorf("invalid piece %q", r)
				}
				if file > 7 {
					return nil, fmt.Errorf("rank %q overflows the board", rankStr)
				}
				pieces = append(pieces, chess.Placement{
					Square: chess.NewSquare(chess.File(file), rank),
					Color:  color,
					Piece:  piece,
				})
				file++
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("rank %q does not cover 8 files", rankStr)
		}
	}
	return pieces, nil
}

// Encode renders a board back into FEN notation.
func Encode(b *chess.Board) string {
	var sb strings.Builder
	for r := int(chess.Rank8); r >= int(chess.Rank1); r-- {
		blanks := 0
		for f := 0; f < 8; f++ {
			sq := chess.NewSquare(chess.File(f), chess.Rank(r))
			piece, color, ok := b.PieceAt(sq)
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > int(chess.Rank1) {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if sq, ok := b.EnPassantSquare(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), b.SideToMove(), printCastling(b.CastlingRights()), ep, b.HalfmoveClock(), b.FullMoveNumber())
}

func parseCastling(s string) (chess.Castling, bool) {
	var c chess.Castling
	if s == "-" {
		return c, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			c |= chess.WhiteKingSide
		case 'Q':
			c |= chess.WhiteQueenSide
		case 'k':
			c |= chess.BlackKingSide
		case 'q':
			c |= chess.BlackQueenSide
		default:
			return 0, false
		}
	}
	return c, true
}

func printCastling(c chess.Castling) string {
	return c.String()
}

func parsePiece(r rune) (chess.Color, chess.Piece, bool) {
	p, ok := chess.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return chess.White, p, true
	}
	return chess.Black, p, true
}

func printPiece(c chess.Color, p chess.Piece) rune {
	s := p.String()
	if c == chess.White {
		return unicode.ToUpper([]rune(s)[0])
	}
	return []rune(s)[0]
}
