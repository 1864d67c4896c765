package engine

import (
	"testing"

	"github.com/matryer/is"

	"bitboard-chess/board"
)

func TestSEEAccountsForRevealedSlider(t *testing.T) {
	is := is.New(t)
	b := board.MustParseFEN("6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1")
	is.Equal(see(b, uciMove(t, b, "c4e6")), int32(0))
}

func TestSEEHandlesEnPassantCapture(t *testing.T) {
	is := is.New(t)
	b := board.MustParseFEN("4k3/8/8/3pP3/8/8/8/6K1 w - d6 0 1")
	m := uciMove(t, b, "e5d6")
	is.Equal(m.Kind, board.EnPassant)
	is.Equal(see(b, m), seePieceValue[board.Pawn])
}

func TestSEELosingCapture(t *testing.T) {
	is := is.New(t)
	b := board.MustParseFEN("4k3/8/4p3/3p4/8/8/3Q4/4K3 w - - 0 1")
	is.Equal(see(b, uciMove(t, b, "d2d5")), int32(-800))
}

func TestSEEUndefendedPiece(t *testing.T) {
	is := is.New(t)
	b := board.MustParseFEN("4k3/8/8/3r4/8/8/3Q4/4K3 w - - 0 1")
	is.Equal(see(b, uciMove(t, b, "d2d5")), int32(500))
}

func TestSEECastleIsNeutral(t *testing.T) {
	is := is.New(t)
	b := board.MustParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	is.Equal(see(b, uciMove(t, b, "e1g1")), int32(0))
}
