package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bitboard-chess/config"
	"bitboard-chess/engine"
	"bitboard-chess/shell"
)

func main() {
	cfg := config.New()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	lvl, _ := cfg.LogLevel()
	zerolog.SetGlobalLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	searcher := newSearcher(cfg)
	if cfg.GetBool(config.ConfigShell) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		sc, err := shell.NewShellController(searcher, cfg.GetInt(config.ConfigDepth))
		if err != nil {
			log.Fatal().Err(err).Msg("starting-shell")
		}
		sc.Loop(ctx)
		return
	}

	u := newUCI(cfg, searcher, os.Stdout)
	if err := u.Loop(ctx, os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("uci-loop")
	}
}

func newSearcher(cfg *config.Config) *engine.Searcher {
	var tt *engine.TransTable
	if f := cfg.GetFloat64(config.ConfigHashFraction); f > 0 {
		tt = engine.NewTransTableFraction(f)
	} else {
		tt = engine.NewTransTable(cfg.GetInt(config.ConfigHash))
	}
	s := engine.NewSearcher(tt)
	s.Threads = cfg.GetInt(config.ConfigThreads)
	if cfg.GetBool(config.ConfigOwnBook) {
		s.Book = engine.DefaultBook()
	}
	log.Debug().Interface("settings", cfg.AllSettings()).Msg("loaded-config")
	return s
}
