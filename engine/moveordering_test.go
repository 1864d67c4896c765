package engine

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"bitboard-chess/board"
)

func TestKillerTable(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	m1, m2, m3 := uciMove(t, b, "g1f3"), uciMove(t, b, "b1c3"), uciMove(t, b, "a2a3")

	var k KillerTable
	is.True(!k.IsKiller(2, m1))
	k.Insert(2, m1)
	k.Insert(2, m1)
	is.Equal(k.Slot(2, m1), 0)
	is.Equal(k.Slot(2, m2), -1) // duplicate insert keeps the second slot empty

	k.Insert(2, m2)
	is.Equal(k.Slot(2, m2), 0)
	is.Equal(k.Slot(2, m1), 1)
	k.Insert(2, m3)
	is.True(!k.IsKiller(2, m1))
	is.True(!k.IsKiller(3, m3)) // killers are per ply

	k.Clear()
	is.True(!k.IsKiller(2, m3))
}

func TestHistoryTableAges(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	m := uciMove(t, b, "g1f3")
	other := uciMove(t, b, "e2e4")

	var h HistoryTable
	h.Add(board.White, m, 4)
	h.Add(board.White, other, 2)
	is.Equal(h.Score(board.White, m), int32(16))
	is.Equal(h.Score(board.Black, m), int32(0))

	for h.Score(board.White, m) <= historyMax-100 {
		h.Add(board.White, m, 10)
	}
	h.Add(board.White, m, 10)
	is.Equal(h.Score(board.White, m), int32((16+100*100)/2)) // passing the cap halves every entry
	is.Equal(h.Score(board.White, other), int32(4/2))

	h.Clear()
	is.Equal(h.Score(board.White, m), int32(0))
}

func TestScoreMovesOrdering(t *testing.T) {
	is := is.New(t)
	// White can promote, capture a queen with a pawn or a rook, castle, or
	// play quiet moves.
	b := board.MustParseFEN("r3k3/1P6/8/3q4/4P3/8/8/R3K2R w KQq - 0 1")
	s := newTestSearcher()
	w := s.newWorker(context.Background(), 0, b, Limits{})
	moves := w.b.GenerateMoves(nil)

	ttMove := uciMove(t, b, "a1a7")
	killer := uciMove(t, b, "h1h7")
	w.killers.Insert(3, killer)

	list := w.scoreMoves(moves, ttMove, 3)
	is.Equal(len(list), len(moves))
	var order []string
	for i := range list {
		order = append(order, pickNext(list, i).String())
	}
	is.Equal(order[0], "a1a7")
	is.Equal(order[1], "b7a8q") // capture-promotion to a queen first
	is.True(indexOf(order, "b7b8q") < indexOf(order, "e4d5"))
	is.True(indexOf(order, "e4d5") < indexOf(order, "e1g1"))
	is.True(indexOf(order, "e1g1") < indexOf(order, "h1h7"))
	is.True(indexOf(order, "h1h7") < indexOf(order, "a1a2"))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
