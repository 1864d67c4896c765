package board

// AttackersOf returns every piece of color by attacking sq, with sliders
// evaluated against occ rather than the board's own occupancy.
func (b *Board) AttackersOf(sq Square, by Color, occ uint64) uint64 {
	them := b.colors[by]
	queens := b.pieces[Queen-1]

	attackers := pawnAttacks[by.Other()][sq] & b.pieces[Pawn-1]
	attackers |= knightAttacks[sq] & b.pieces[Knight-1]
	attackers |= kingAttacks[sq] & b.pieces[King-1]
	attackers |= bishopAttacks(sq, occ) & (b.pieces[Bishop-1] | queens)
	attackers |= rookAttacks(sq, occ) & (b.pieces[Rook-1] | queens)
	return attackers & them & occ
}

// IsAttacked reports whether any piece of color by attacks sq under occupancy occ.
func (b *Board) IsAttacked(sq Square, by Color, occ uint64) bool {
	return b.AttackersOf(sq, by, occ) != 0
}

// Checkers returns the pieces giving check to the side to move.
func (b *Board) Checkers() uint64 {
	us := b.sideToMove
	return b.AttackersOf(b.KingSquare(us), us.Other(), b.Occupancy())
}
