package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"bitboard-chess/board"
	"bitboard-chess/engine"
)

type position struct {
	Name string `yaml:"name"`
	FEN  string `yaml:"fen"`
	// Depth overrides --depth for this position when set.
	Depth int `yaml:"depth"`
}

var builtinPositions = []position{
	{Name: "startpos", FEN: board.FENStartPos},
	{Name: "kiwipete", FEN: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
	{Name: "middlegame", FEN: "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"},
	{Name: "endgame", FEN: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"},
}

func loadPositions(path string) ([]position, error) {
	if path == "" {
		return builtinPositions, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ps []position
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ps, nil
}

func main() {
	depthFlag := pflag.Int("depth", 6, "search depth in plies")
	repeatFlag := pflag.Int("repeat", 1, "number of searches per position")
	threadsFlag := pflag.Int("threads", 1, "search threads")
	hashFlag := pflag.Int("hash", 64, "transposition table size in MB")
	positionsFlag := pflag.String("positions", "", "YAML list of {name, fen, depth} (empty = built-in set)")
	cpuProfile := pflag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := pflag.String("memprofile", "", "write memory profile (heap) to file")
	verbose := pflag.Bool("verbose", false, "log every completed iteration")
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}
	positions, err := loadPositions(*positionsFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("loading-positions")
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("creating-cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("starting-cpuprofile")
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	tt := engine.NewTransTable(*hashFlag)
	searcher := engine.NewSearcher(tt)
	searcher.Threads = *threadsFlag

	var totalNodes uint64
	startAll := time.Now()
	for _, p := range positions {
		b, err := board.ParseFEN(p.FEN)
		if err != nil {
			log.Error().Err(err).Str("name", p.Name).Msg("skipping-position")
			continue
		}
		depth := *depthFlag
		if p.Depth > 0 {
			depth = p.Depth
		}

		secs := make([]float64, 0, *repeatFlag)
		var res engine.Result
		for i := 0; i < *repeatFlag; i++ {
			searcher.NewGame()
			start := time.Now()
			res, err = searcher.Search(context.Background(), b, engine.Limits{Depth: depth})
			if err != nil {
				log.Error().Err(err).Str("name", p.Name).Msg("search-failed")
				break
			}
			secs = append(secs, time.Since(start).Seconds())
			totalNodes += res.Nodes
		}
		if len(secs) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(secs, nil)
		if len(secs) < 2 {
			std = 0
		}
		fmt.Printf("%-12s depth %2d  bestmove %-6s %-9s nodes %-10d mean %.3fs  stddev %.3fs\n",
			p.Name, depth, res.Move, engine.ScoreString(res.Score), res.Nodes, mean, std)
	}
	elapsed := time.Since(startAll)
	fmt.Printf("total nodes %d  time %v  nps %.0f\n", totalNodes, elapsed, float64(totalNodes)/elapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("creating-memprofile")
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("writing-memprofile")
		}
	}
}
