package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"slices"
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"

	"bitboard-chess/board"
)

func main() {
	fen := pflag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := pflag.Int("depth", 0, "perft depth (required)")
	divide := pflag.Bool("divide", false, "print per-move node counts at root")
	verify := pflag.Bool("verify", false, "cross-check per-move counts against dragontoothmg")
	repeat := pflag.Int("repeat", 1, "repeat perft N times and report timing statistics")
	label := pflag.String("label", "", "optional label prefix for one-line output")
	cpuProf := pflag.String("cpuprofile", "", "write CPU profile to file during run")
	memProf := pflag.String("memprofile", "", "write heap profile to file after run")
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "--depth must be > 0")
		os.Exit(2)
	}
	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide || *verify {
		if ok := runDivide(b, *fen, *depth, *verify); !ok {
			os.Exit(1)
		}
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating-cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("starting-cpuprofile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var nodes uint64
	secs := make([]float64, 0, *repeat)
	for i := 0; i < *repeat; i++ {
		start := time.Now()
		nodes = board.Perft(b, *depth)
		secs = append(secs, time.Since(start).Seconds())
	}
	mean, std := stat.MeanStdDev(secs, nil)
	if len(secs) < 2 {
		std = 0
	}
	fmt.Printf("%s\tdepth %d\tnodes %d\tmean %.3fs\tstddev %.3fs\tnps %.0f\n",
		*label, *depth, nodes, mean, std, float64(nodes)/mean)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatal().Err(err).Msg("creating-memprofile")
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("writing-memprofile")
		}
		_ = f.Close()
	}
}

// runDivide prints per-move counts, optionally next to dragontoothmg's, and
// reports whether every count matched.
func runDivide(b *board.Board, fen string, depth int, verify bool) bool {
	counts := lo.MapKeys(board.PerftDivide(b, depth), func(_ uint64, m board.Move) string {
		return m.String()
	})
	var oracle map[string]uint64
	if verify {
		oracle = oracleDivide(fen, depth)
	}

	keys := lo.Union(lo.Keys(counts), lo.Keys(oracle))
	slices.Sort(keys)
	ok := true
	for _, k := range keys {
		if !verify {
			fmt.Printf("%s: %d\n", k, counts[k])
			continue
		}
		mark := ""
		if counts[k] != oracle[k] {
			mark = "  MISMATCH"
			ok = false
		}
		fmt.Printf("%s: %d %d%s\n", k, counts[k], oracle[k], mark)
	}
	fmt.Printf("Total: %d\n", lo.Sum(lo.Values(counts)))
	if verify {
		log.Info().Bool("match", ok).Uint64("oracle-total", lo.Sum(lo.Values(oracle))).Msg("verify")
	}
	return ok
}

func oracleDivide(fen string, depth int) map[string]uint64 {
	ob := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range ob.GenerateLegalMoves() {
		undo := ob.Apply(m)
		out[strings.ToLower(m.String())] = oraclePerft(&ob, depth-1)
		undo()
	}
	return out
}

func oraclePerft(ob *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
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
