package engine

import (
	"bitboard-chess/board"
)

var seePieceValue = [7]int32{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   5000,
}

// see returns the static exchange evaluation of m: the material the side to
// move expects to net on m.To if both sides keep recapturing with their least
// valuable attacker and may stop whenever continuing would lose material.
func see(b *board.Board, m board.Move) int32 {
	if m.Kind == board.Castle {
		return 0
	}
	var gain [32]int32
	d := 0

	occ := b.Occupancy() &^ (1 << uint(m.From))
	gain[0] = seePieceValue[m.Captured]
	onSquare := seePieceValue[m.Piece]
	if m.Kind == board.Promotion {
		gain[0] += seePieceValue[m.Promo] - seePieceValue[board.Pawn]
		onSquare = seePieceValue[m.Promo]
	}
	if m.Kind == board.EnPassant {
		captured := m.To - 8
		if b.SideToMove() == board.Black {
			captured = m.To + 8
		}
		occ &^= 1 << uint(captured)
	}

	side := b.SideToMove().Other()
	for d < len(gain)-1 {
		d++
		gain[d] = onSquare - gain[d-1]
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}
		from, pt := leastValuableAttacker(b, m.To, side, occ)
		if pt == board.NoPieceType {
			break
		}
		occ &^= 1 << uint(from)
		onSquare = seePieceValue[pt]
		side = side.Other()
	}
	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker finds side's cheapest piece attacking sq under occ.
// Sliders behind removed pieces are picked up because attacks are recomputed
// from the reduced occupancy.
func leastValuableAttacker(b *board.Board, sq board.Square, side board.Color, occ uint64) (board.Square, board.PieceType) {
	attackers := b.AttackersOf(sq, side, occ)
	if attackers == 0 {
		return board.NoSquare, board.NoPieceType
	}
	for pt := board.Pawn; pt <= board.King; pt++ {
		if set := attackers & b.Pieces(side, pt); set != 0 {
			return lowestSquare(set), pt
		}
	}
	return board.NoSquare, board.NoPieceType
}
