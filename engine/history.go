package engine

import "bitboard-chess/board"

// historyMax keeps history scores below the killer slots in move ordering.
const historyMax = 10000

// HistoryTable accumulates depth-squared bonuses for quiet moves that caused
// beta cutoffs, indexed by side, origin and destination.
type HistoryTable struct {
	scores [2][64][64]int32
}

// Add credits a quiet cutoff at depth. When an entry passes historyMax the
// whole table is aged.
func (h *HistoryTable) Add(side board.Color, m board.Move, depth int) {
	s := &h.scores[side][m.From][m.To]
	*s += int32(depth * depth)
	if *s > historyMax {
		h.Age()
	}
}

// Score returns the accumulated score of m for side.
func (h *HistoryTable) Score(side board.Color, m board.Move) int32 {
	return h.scores[side][m.From][m.To]
}

// Age halves every entry.
func (h *HistoryTable) Age() {
	for side := range h.scores {
		for from := range h.scores[side] {
			for to := range h.scores[side][from] {
				h.scores[side][from][to] /= 2
			}
		}
	}
}

// Clear the values in the history table.
func (h *HistoryTable) Clear() {
	*h = HistoryTable{}
}
