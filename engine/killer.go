package engine

import "bitboard-chess/board"

// KillerTable keeps two quiet moves per ply that recently caused a beta cutoff.
type KillerTable struct {
	moves [MaxDepth + 1][2]board.Move
}

// Insert records m as the newest killer at ply.
func (k *KillerTable) Insert(ply int, m board.Move) {
	if m != k.moves[ply][0] {
		k.moves[ply][1] = k.moves[ply][0]
		k.moves[ply][0] = m
	}
}

// Slot returns 0 or 1 when m is a killer at ply, -1 otherwise.
func (k *KillerTable) Slot(ply int, m board.Move) int {
	switch m {
	case k.moves[ply][0]:
		return 0
	case k.moves[ply][1]:
		return 1
	}
	return -1
}

// IsKiller reports whether m is either killer at ply.
func (k *KillerTable) IsKiller(ply int, m board.Move) bool {
	return m != board.NoMove && k.Slot(ply, m) >= 0
}

// Clear the killer moves table.
func (k *KillerTable) Clear() {
	clear(k.moves[:])
}
