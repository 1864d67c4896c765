package engine

import (
	"strings"

	"github.com/samber/lo"

	"bitboard-chess/board"
)

// PVLine is a principal variation, best move first.
type PVLine struct {
	Moves []board.Move
}

// Clear empties the line while keeping its storage.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update replaces the line with m followed by child.
func (pv *PVLine) Update(m board.Move, child *PVLine) {
	pv.Moves = append(pv.Moves[:0], m)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// BestMove returns the first move of the line, or NoMove.
func (pv *PVLine) BestMove() board.Move {
	if len(pv.Moves) == 0 {
		return board.NoMove
	}
	return pv.Moves[0]
}

// Clone returns a copy that does not share storage with pv.
func (pv *PVLine) Clone() PVLine {
	return PVLine{Moves: append([]board.Move(nil), pv.Moves...)}
}

func (pv PVLine) String() string {
	return strings.Join(lo.Map(pv.Moves, func(m board.Move, _ int) string {
		return m.String()
	}), " ")
}
