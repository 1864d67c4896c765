package engine

import "bitboard-chess/board"

// quiescence resolves captures and promotions until the position is quiet.
// In check every evasion is searched so mates at the horizon are seen.
func (w *worker) quiescence(alpha, beta int32, ply int) int32 {
	b := w.b
	w.pv[ply].Clear()
	w.nodes++
	if w.checkStop() {
		return 0
	}
	if ply >= MaxDepth {
		return b.StaticEval()
	}

	inCheck := b.InCheck()
	best := -MaxScore
	var standPat int32
	if !inCheck {
		standPat = b.StaticEval()
		if standPat >= beta {
			w.stats.QStandPatCutoffs++
			return standPat
		}
		alpha = max(alpha, standPat)
		best = standPat
	}

	var moves []board.Move
	if inCheck {
		moves = b.GenerateMoves(w.moves[ply])
	} else {
		moves = b.GenerateTactical(w.moves[ply])
	}
	w.moves[ply] = moves
	if inCheck && len(moves) == 0 {
		return MatedIn(ply)
	}

	list := w.scoreMoves(moves, board.NoMove, ply)
	for i := range list {
		m := pickNext(list, i)
		if !inCheck {
			gain := board.PieceValue[m.Captured]
			if m.Kind == board.Promotion {
				gain += board.PieceValue[m.Promo] - board.PieceValue[board.Pawn]
			}
			if standPat+gain+deltaMargin < alpha {
				w.stats.QDeltaPrunes++
				continue
			}
			if m.Kind != board.Promotion && see(b, m) < 0 {
				w.stats.QSEEPrunes++
				continue
			}
		}

		b.MakeMove(m)
		score := -w.quiescence(-beta, -alpha, ply+1)
		b.UnmakeMove()
		if w.stopped {
			return 0
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				w.pv[ply].Update(m, &w.pv[ply+1])
				if score >= beta {
					w.stats.QBetaCutoffs++
					return score
				}
			}
		}
	}
	return best
}
