package bench

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"bitboard-chess/board"
	"bitboard-chess/engine"
)

func benchPerft(b *testing.B, fen string, depth int) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Perft(pos, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, board.FENStartPos, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, kiwipete, 3)
}

func BenchmarkSearch_Kiwipete_D5(b *testing.B) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	pos, err := board.ParseFEN(kiwipete)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	tt := engine.NewTransTable(16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := engine.NewSearcher(tt)
		s.NewGame()
		if _, err := s.Search(context.Background(), pos, engine.Limits{Depth: 5}); err != nil {
			b.Fatal(err)
		}
	}
}
