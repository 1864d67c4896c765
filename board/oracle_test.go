package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

var oracleFENs = append([]string{
	"8/8/8/K2Pp2q/8/8/8/7k w - e6 0 1",
	"8/8/8/k2Pp2Q/8/8/8/K7 w - e6 0 1",
	"7b/6P1/5K2/8/8/8/8/k7 w - - 0 1",
	"3k4/3p4/8/K1P4r/8/8/8/8 b - - 0 1",
	"8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1",
	"8/5bk1/8/2Pp4/8/1K6/8/8 w - d6 0 1",
	"r3k2r/1b4bq/8/8/8/8/7B/R3K2R w KQkq - 0 1",
	"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
	"8/P1k5/K7/8/8/8/8/8 w - - 0 1",
}, walkFENs...)

func oracleMoves(fen string) []string {
	ob := dragontoothmg.ParseFen(fen)
	moves := ob.GenerateLegalMoves()
	s := make([]string, 0, len(moves))
	for _, m := range moves {
		s = append(s, m.String())
	}
	sort.Strings(s)
	return s
}

// TestLegalMovesMatchOracle compares move sets with an independent generator
// along random walks from a set of tricky positions.
func TestLegalMovesMatchOracle(t *testing.T) {
	for i, fen := range oracleFENs {
		walk(t, fen, byte(i), 40, func(b *Board, moves []Move) {
			current := b.FEN()
			require.Equal(t, oracleMoves(current), moveStrings(moves), current)
		})
	}
}

func oraclePerft(ob *dragontoothmg.Board, depth int) uint64 {
	moves := ob.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := ob.Apply(m)
		nodes += oraclePerft(ob, depth-1)
		undo()
	}
	return nodes
}

func TestPerftMatchesOracle(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, fen := range oracleFENs[:9] {
		b := MustParseFEN(fen)
		ob := dragontoothmg.ParseFen(fen)
		require.Equal(t, oraclePerft(&ob, depth), Perft(b, depth), fen)
	}
}

// TestPerftSuiteAgreesWithOracle checks the recorded counts against the
// independent generator so a mistyped FEN cannot hide behind its counts.
func TestPerftSuiteAgreesWithOracle(t *testing.T) {
	for _, tc := range loadPerftCases(t) {
		ob := dragontoothmg.ParseFen(tc.FEN)
		for i, want := range tc.Counts[:min(2, len(tc.Counts))] {
			require.Equal(t, want, oraclePerft(&ob, i+1), "%s depth %d", tc.Name, i+1)
		}
	}
}
