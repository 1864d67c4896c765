package engine

import (
	"bitboard-chess/board"
)

type scoredMove struct {
	move  board.Move
	score int32
}

// Move ordering offsets. Every band sits above the next one so a heuristic
// only reorders moves inside its own band.
const (
	ttMoveScore     int32 = 30000
	promotionScore  int32 = 20000
	captureScore    int32 = 15000
	castleScore     int32 = killerScore + 60
	killerScore     int32 = 12000
	secondKillerGap int32 = 1
)

// scoreMoves assigns ordering scores to moves at ply. The TT move only gets
// its bonus if it matches an entry of the freshly generated list, so a stale
// or colliding table move is never played.
func (w *worker) scoreMoves(moves []board.Move, ttMove board.Move, ply int) []scoredMove {
	list := w.scored[ply][:0]
	us := w.b.SideToMove()
	for _, m := range moves {
		var score int32
		switch {
		case m == ttMove:
			score = ttMoveScore
		case m.Kind == board.Promotion:
			score = promotionScore + board.PieceValue[m.Promo] + board.PieceValue[m.Captured]
		case m.IsCapture():
			score = captureScore + board.PieceValue[m.Captured] - board.PieceValue[m.Piece]
		case m.Kind == board.Castle:
			score = castleScore
		default:
			switch w.killers.Slot(ply, m) {
			case 0:
				score = killerScore
			case 1:
				score = killerScore - secondKillerGap
			default:
				score = w.history.Score(us, m)
			}
		}
		list = append(list, scoredMove{move: m, score: score})
	}
	w.scored[ply] = list
	return list
}

// pickNext moves the best-scored remaining entry to index i.
func pickNext(list []scoredMove, i int) board.Move {
	best := i
	for j := i + 1; j < len(list); j++ {
		if list[j].score > list[best].score {
			best = j
		}
	}
	list[i], list[best] = list[best], list[i]
	return list[i].move
}
