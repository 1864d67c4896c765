package engine

import (
	"math/bits"

	"golang.org/x/exp/constraints"

	"bitboard-chess/board"
)

// clamp restricts x to the inclusive range [low, high].
func clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}

func lowestSquare(set uint64) board.Square {
	return board.Square(bits.TrailingZeros64(set))
}
