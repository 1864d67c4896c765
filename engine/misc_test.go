package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"bitboard-chess/board"
)

func TestScoreString(t *testing.T) {
	is := is.New(t)
	is.Equal(ScoreString(35), "cp 35")
	is.Equal(ScoreString(-120), "cp -120")
	is.Equal(ScoreString(MaxScore-1), "mate 1")
	is.Equal(ScoreString(MaxScore-3), "mate 2")
	is.Equal(ScoreString(MatedIn(2)), "mate -1")
	is.Equal(ScoreString(MatedIn(4)), "mate -2")
	is.True(IsMateScore(MatedIn(MaxDepth)))
	is.True(!IsMateScore(Checkmate))
}

func TestClockBudget(t *testing.T) {
	is := is.New(t)
	ms := time.Millisecond
	is.Equal(clockBudget(10*time.Second, 0, 0), 333*ms)
	is.Equal(clockBudget(60*time.Second, 2*time.Second, 40), 3000*ms)
	is.Equal(clockBudget(100*ms, 0, 1), 70*ms) // never more than 70% of the clock
	is.Equal(clockBudget(20*ms, 0, 1), 5*ms)   // floor
	is.Equal(clockBudget(1000*ms, 0, 1), 700*ms)
}

func TestTimeHandler(t *testing.T) {
	is := is.New(t)
	var none TimeHandler
	is.True(!none.ShouldStop())
	_, ok := none.Deadline()
	is.True(!ok)

	is.True(ForMoveTime(-time.Second).ShouldStop())
	is.True(!ForMoveTime(time.Hour).ShouldStop())
	is.True(!ForClock(time.Hour, 0, 0).ShouldStop())
}

func TestGamePhase(t *testing.T) {
	is := is.New(t)
	is.Equal(gamePhase(board.NewBoard()), 24)
	is.Equal(gamePhase(board.MustParseFEN("4k3/pppp4/8/8/8/8/PPPP4/4K3 w - - 0 1")), 0)
	is.Equal(estimateMovesRemaining(24), 45)
	is.Equal(estimateMovesRemaining(0), 20)
}

func TestMapBook(t *testing.T) {
	is := is.New(t)
	mb := NewMapBook()
	is.NoErr(mb.AddLine(board.FENStartPos, "e2e4", "e7e5"))
	is.NoErr(mb.AddLine(board.FENStartPos, "e2e4", "c7c5"))
	is.NoErr(mb.AddLine(board.FENStartPos, "d2d4"))
	is.Equal(mb.Len(), 2)

	b := board.NewBoard()
	m, ok := mb.Lookup(b.Hash())
	is.True(ok)
	is.Equal(m.String(), "e2e4")

	_, err := b.PlayUCI("e2e4")
	is.NoErr(err)
	m, ok = mb.Lookup(b.Hash())
	is.True(ok)
	is.Equal(m.String(), "e7e5")

	_, ok = mb.Lookup(b.Hash() ^ 1)
	is.True(!ok)

	err = mb.AddLine(board.FENStartPos, "e2e4", "e2e4")
	is.True(errors.Is(err, board.ErrIllegalMove))
	err = mb.AddLine("not a fen")
	is.True(errors.Is(err, board.ErrInvalidFEN))

	is.True(DefaultBook().Len() > 10)
}

func TestPVLine(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	e4 := uciMove(t, b, "e2e4")
	nf3 := uciMove(t, b, "g1f3")

	var child, pv PVLine
	is.Equal(pv.BestMove(), board.NoMove)
	child.Update(nf3, &PVLine{})
	pv.Update(e4, &child)
	is.Equal(pv.String(), "e2e4 g1f3")
	is.Equal(pv.BestMove(), e4)

	cp := pv.Clone()
	pv.Clear()
	is.Equal(cp.String(), "e2e4 g1f3")
	is.Equal(pv.String(), "")
}
