package board

const fiftyMoveLimit = 100

// IsDrawBy50 reports whether a hundred half-moves passed without a capture or
// pawn move.
func (b *Board) IsDrawBy50() bool { return b.halfmoveClock >= fiftyMoveLimit }

// IsRepetition reports a repeated position. A single earlier occurrence counts
// when it lies at or after rootPly (inside the search tree); otherwise two
// earlier occurrences are needed. The scan stops at the last irreversible move
// and at null moves.
func (b *Board) IsRepetition(rootPly int) bool {
	n := len(b.history)
	start := n - b.halfmoveClock
	if start < 0 {
		start = 0
	}
	count := 0
	for i := n - 1; i >= start; i-- {
		if b.history[i].move == NoMove {
			return false
		}
		if b.history[i].hash != b.hash {
			continue
		}
		if i >= rootPly {
			return true
		}
		count++
		if count >= 2 {
			return true
		}
	}
	return false
}

// IsInsufficientMaterial reports bare kings, or a king and a single minor piece
// against a bare king.
func (b *Board) IsInsufficientMaterial() bool {
	if b.pieces[Pawn-1]|b.pieces[Rook-1]|b.pieces[Queen-1] != 0 {
		return false
	}
	return popCount(b.pieces[Knight-1]|b.pieces[Bishop-1]) <= 1
}
