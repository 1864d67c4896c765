package engine

import (
	"fmt"

	"bitboard-chess/board"
)

// Book suggests moves for known positions. A suggestion is only a hint: the
// searcher plays it only if it is legal in the root position.
type Book interface {
	Lookup(hash uint64) (board.Move, bool)
}

// MapBook is an in-memory Book keyed by position hash.
type MapBook struct {
	moves map[uint64][]board.Move
}

func NewMapBook() *MapBook {
	return &MapBook{moves: make(map[uint64][]board.Move)}
}

// AddLine plays moves from fen and records each of them as a book move for
// the position it was played from.
func (mb *MapBook) AddLine(fen string, moves ...string) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	for i, s := range moves {
		hash := b.Hash()
		m, err := b.PlayUCI(s)
		if err != nil {
			return fmt.Errorf("book line move %d: %w", i+1, err)
		}
		mb.add(hash, m)
	}
	return nil
}

func (mb *MapBook) add(hash uint64, m board.Move) {
	for _, known := range mb.moves[hash] {
		if known == m {
			return
		}
	}
	mb.moves[hash] = append(mb.moves[hash], m)
}

// Lookup returns the first move recorded for hash.
func (mb *MapBook) Lookup(hash uint64) (board.Move, bool) {
	moves := mb.moves[hash]
	if len(moves) == 0 {
		return board.NoMove, false
	}
	return moves[0], true
}

// Len returns the number of positions in the book.
func (mb *MapBook) Len() int {
	return len(mb.moves)
}

// DefaultBook returns a small book of main-line openings from the start
// position.
func DefaultBook() *MapBook {
	mb := NewMapBook()
	for _, line := range defaultLines {
		if err := mb.AddLine(board.FENStartPos, line...); err != nil {
			panic(err)
		}
	}
	return mb
}

var defaultLines = [][]string{
	{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6"},
	{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4"},
	{"e2e4", "e7e6", "d2d4", "d7d5"},
	{"d2d4", "d7d5", "c2c4", "e7e6", "b1c3", "g8f6"},
	{"d2d4", "g8f6", "c2c4", "e7e6", "g1f3", "d7d5"},
	{"c2c4", "e7e5", "b1c3", "g8f6"},
	{"g1f3", "d7d5", "d2d4", "g8f6"},
}
