package bench

import (
	"testing"

	"bitboard-chess/board"
)

const (
	kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	middle   = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func benchGenerateMoves(b *testing.B, fen string, tactical bool) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	buf := make([]board.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if tactical {
			buf = pos.GenerateTactical(buf)
		} else {
			buf = pos.GenerateMoves(buf)
		}
	}
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, board.FENStartPos, false)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	benchGenerateMoves(b, kiwipete, false)
}

func BenchmarkGenerateMoves_Middlegame(b *testing.B) {
	benchGenerateMoves(b, middle, false)
}

func BenchmarkGenerateTactical_Kiwipete(b *testing.B) {
	benchGenerateMoves(b, kiwipete, true)
}

func BenchmarkGenerateMoves_EP(b *testing.B) {
	benchGenerateMoves(b, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", false)
}

func BenchmarkMakeUnmake_AllMoves_Kiwipete(b *testing.B) {
	pos, err := board.ParseFEN(kiwipete)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	moves := pos.GenerateMoves(nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			pos.MakeMove(m)
			pos.UnmakeMove()
		}
	}
}

func BenchmarkAttackersOf(b *testing.B) {
	pos, err := board.ParseFEN(kiwipete)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	occ := pos.Occupancy()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for sq := board.Square(0); sq < 64; sq++ {
			_ = pos.AttackersOf(sq, board.Black, occ)
		}
	}
}
