// Package order implements move ordering and static exchange evaluation
// (C4): scoring candidate moves so that alpha-beta sees its best moves
// first and maximizes beta cutoffs.
package order

import (
	"sort"

	"github.com/tarrasch/chesscore/pkg/chess"
)

var pieceValue = map[chess.Piece]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   20000,
}

type attacker struct {
	sq    chess.Square
	value int
}

func sortedAttackers(pos chess.Position, by chess.Color, sq chess.Square) []attacker {
	sqs := pos.Attackers(by, sq)
	out := make([]attacker, 0, len(sqs))
	for _, s := range sqs {
		p, _, _ := pos.PieceAt(s)
		out = append(out, attacker{sq: s, value: pieceValue[p]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].value < out[j].value })
	return out
}

func removeSquare(list []attacker, sq chess.Square) []attacker {
	for i, a := range list {
		if a.sq == sq {
			return append(append([]attacker{}, list[:i]...), list[i+1:]...)
		}
	}
	return list
}

// SEE statically estimates the net material swap of playing a capture,
// via a simulated swap list built once from the board's current attacker
// sets (no make/unmake). It does not re-scan for attackers a capture
// chain might reveal behind a slider — an accepted simplification per the
// ordering spec, agreeing with the full recursive definition whenever a
// position has no such discovered attackers.
func SEE(pos chess.Position, move chess.Move) int {
	if !pos.IsCapture(move) {
		return 0
	}

	target := move.To
	mover := pos.SideToMove()

	whiteAtk := sortedAttackers(pos, chess.White, target)
	blackAtk := sortedAttackers(pos, chess.Black, target)
	if mover == chess.White {
		whiteAtk = removeSquare(whiteAtk, move.From)
	} else {
		blackAtk = removeSquare(blackAtk, move.From)
	}

	victimValue := pieceValue[move.Captured]
	recapture := seeSwap(mover.Opponent(), pieceValue[move.Piece], whiteAtk, blackAtk)
	return victimValue - recapture
}

// seeSwap returns the value the side to move gains by recapturing on the
// target square with its least valuable attacker, recursively accounting
// for further recaptures; it is 0 if recapturing would lose material (a
// rational player simply doesn't recapture).
func seeSwap(side chess.Color, attackerValue int, whiteAtk, blackAtk []attacker) int {
	list := whiteAtk
	if side == chess.Black {
		list = blackAtk
	}
	if len(list) == 0 {
		return 0
	}

	next := list[0]
	rest := list[1:]
	nextWhite, nextBlack := whiteAtk, blackAtk
	if side == chess.White {
		nextWhite = rest
	} else {
		nextBlack = rest
	}

	gain := attackerValue - seeSwap(side.Opponent(), next.value, nextWhite, nextBlack)
	if gain < 0 {
		return 0
	}
	return gain
}
