package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"bitboard-chess/board"
	"bitboard-chess/config"
	"bitboard-chess/engine"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newTestUCI(t *testing.T) (*uci, *bytes.Buffer) {
	t.Helper()
	cfg := config.New()
	if err := cfg.Load(nil); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	return newUCI(cfg, engine.NewSearcher(engine.NewTransTable(1)), &out), &out
}

func bestMove(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "bestmove "); ok {
			return rest
		}
	}
	return ""
}

// output reads out while a search goroutine may still be writing to it.
func output(u *uci, out *bytes.Buffer) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return out.String()
}

func TestUCIHandshake(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)
	is.NoErr(u.Loop(context.Background(), strings.NewReader("uci\nisready\nquit\n")))
	is.True(strings.Contains(out.String(), "id name bbchess\n"))
	is.True(strings.Contains(out.String(), "uciok\n"))
	is.True(strings.HasSuffix(out.String(), "readyok\n"))
}

func TestPositionWithMoves(t *testing.T) {
	is := is.New(t)
	u, _ := newTestUCI(t)

	u.handle(context.Background(), "position startpos moves e2e4 e7e5 g1f3")
	is.Equal(u.b.FEN(), "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2")

	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	u.handle(context.Background(), "position fen "+fen+" moves e1g1")
	is.Equal(u.b.SideToMove(), board.Black)
	is.Equal(u.b.PieceAt(mustSquare(t, "f1")), board.WhiteRook)

	// A bad move leaves the previous position in place.
	before := u.b.FEN()
	u.handle(context.Background(), "position startpos moves e2e5")
	is.Equal(u.b.FEN(), before)
}

func TestGoDepthProducesBestMove(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)

	u.handle(context.Background(), "position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	u.handle(context.Background(), "go depth 3")
	u.wait()
	is.Equal(bestMove(out.String()), "a1a8")
	is.True(strings.Contains(out.String(), "score mate 1"))
}

func TestGoAfterMovesFromLoop(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)
	input := "position startpos moves e2e4 e7e5\ngo depth 2\nquit\n"
	is.NoErr(u.Loop(context.Background(), strings.NewReader(input)))

	// quit stops the search, which still answers with a legal move.
	b := board.NewBoard()
	_, err := b.PlayUCI("e2e4")
	is.NoErr(err)
	_, err = b.PlayUCI("e7e5")
	is.NoErr(err)
	_, err = b.PlayUCI(bestMove(out.String()))
	is.NoErr(err)
}

func TestStopAnswersInfiniteSearch(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)
	u.handle(context.Background(), "go infinite")
	u.handle(context.Background(), "stop")
	is.True(bestMove(out.String()) != "")
}

func TestParseGoClock(t *testing.T) {
	is := is.New(t)
	u, _ := newTestUCI(t)

	limits, err := u.parseGo(strings.Fields("wtime 60000 btime 1000 winc 1000 binc 0 movestogo 20"))
	is.NoErr(err)
	_, ok := limits.Time.Deadline()
	is.True(ok)
	is.Equal(limits.Depth, 0)

	limits, err = u.parseGo(strings.Fields("nodes 5000"))
	is.NoErr(err)
	is.Equal(limits.Nodes, uint64(5000))

	limits, err = u.parseGo(strings.Fields("ponder wtime 1000 btime 1000"))
	is.NoErr(err)
	_, ok = limits.Time.Deadline()
	is.True(ok)

	limits, err = u.parseGo(strings.Fields("searchmoves e2e4 d2d4 depth 3"))
	is.NoErr(err)
	is.Equal(limits.Depth, 3)

	limits, err = u.parseGo(strings.Fields("infinite"))
	is.NoErr(err)
	is.True(limits.Infinite)

	_, err = u.parseGo(strings.Fields("depth"))
	is.True(err != nil)
	_, err = u.parseGo(strings.Fields("movetime soon"))
	is.True(err != nil)
}

func TestSetOption(t *testing.T) {
	is := is.New(t)
	u, _ := newTestUCI(t)

	is.NoErr(u.setOption(strings.Fields("name Threads value 3")))
	is.Equal(u.searcher.Threads, 3)
	is.NoErr(u.setOption(strings.Fields("name Hash value 2")))
	is.NoErr(u.setOption(strings.Fields("name OwnBook value true")))
	is.True(u.searcher.Book != nil)

	is.True(u.setOption(strings.Fields("name Threads value 0")) != nil)
	is.True(u.setOption(strings.Fields("name Contempt value 10")) != nil)
	is.True(u.setOption(strings.Fields("name Hash")) != nil)
}

func TestPerftCommand(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)
	u.handle(context.Background(), "perft 2")
	is.True(strings.Contains(out.String(), "Nodes searched: 400\n"))
	is.True(strings.Contains(out.String(), "g1f3: 20\n"))
}

func mustSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, ok := board.ParseSquare(s)
	if !ok {
		t.Fatalf("bad square %q", s)
	}
	return sq
}

func TestEOFLetsSearchFinish(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)
	is.NoErr(u.Loop(context.Background(), strings.NewReader("position startpos\ngo depth 4\n")))
	is.True(strings.Contains(out.String(), "info depth 4 "))
	is.True(bestMove(out.String()) != "")
}

func TestInfiniteSearchHoldsBestMoveUntilStop(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)
	u.handle(context.Background(), "position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	u.handle(context.Background(), "go infinite")

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(output(u, out), "score mate 1") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	is.True(strings.Contains(output(u, out), "score mate 1"))
	is.Equal(bestMove(output(u, out)), "") // mate found, still searching

	u.handle(context.Background(), "stop")
	is.Equal(bestMove(out.String()), "a1a8")
}

func TestEOFStopsInfiniteSearch(t *testing.T) {
	is := is.New(t)
	u, out := newTestUCI(t)
	is.NoErr(u.Loop(context.Background(), strings.NewReader("go infinite\n")))
	is.True(bestMove(out.String()) != "")
}
