package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"bitboard-chess/board"
	"bitboard-chess/config"
	"bitboard-chess/engine"
)

const (
	engineName   = "bbchess"
	engineAuthor = "bbchess authors"
	maxHashMB    = 1 << 16
	maxThreads   = 256
)

// uci speaks the UCI protocol. Searches run in their own goroutine so that
// stop and isready are answered while thinking.
type uci struct {
	out io.Writer
	mu  sync.Mutex

	b            *board.Board
	searcher     *engine.Searcher
	defaultDepth int
	moveOverhead time.Duration

	cancel   context.CancelFunc
	done     chan struct{}
	infinite bool
}

func newUCI(cfg *config.Config, searcher *engine.Searcher, out io.Writer) *uci {
	return &uci{
		out:          out,
		b:            board.NewBoard(),
		searcher:     searcher,
		defaultDepth: cfg.GetInt(config.ConfigDepth),
		moveOverhead: time.Duration(cfg.GetInt(config.ConfigMoveOverhead)) * time.Millisecond,
	}
}

func (u *uci) println(a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func (u *uci) printf(format string, a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, a...)
}

// Loop reads commands from in until quit or EOF. At EOF a running search is
// allowed to finish unless it is infinite.
func (u *uci) Loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			u.stopSearch()
			return nil
		}
		if quit := u.handle(ctx, scanner.Text()); quit {
			u.stopSearch()
			return nil
		}
	}
	if u.infinite {
		u.stopSearch()
	}
	u.wait()
	return scanner.Err()
}

func (u *uci) handle(ctx context.Context, line string) (quit bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	switch strings.ToLower(tokens[0]) {
	case "uci":
		u.println("id name", engineName)
		u.println("id author", engineAuthor)
		u.printf("option name Hash type spin default %d min 1 max %d\n", 64, maxHashMB)
		u.printf("option name Threads type spin default 1 min 1 max %d\n", maxThreads)
		u.println("option name OwnBook type check default false")
		u.println("uciok")
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.stopSearch()
		u.b = board.NewBoard()
		u.searcher.NewGame()
	case "position":
		u.stopSearch()
		if err := u.position(tokens[1:]); err != nil {
			log.Error().Err(err).Str("line", line).Msg("bad-position")
			u.println("info string", err)
		}
	case "go":
		u.stopSearch()
		limits, err := u.parseGo(tokens[1:])
		if err != nil {
			u.println("info string", err)
			return false
		}
		u.startSearch(ctx, limits)
	case "stop":
		u.stopSearch()
	case "setoption":
		u.stopSearch()
		if err := u.setOption(tokens[1:]); err != nil {
			u.println("info string", err)
		}
	case "perft":
		u.stopSearch()
		u.perft(tokens[1:])
	case "d":
		u.println(u.b.FEN())
	case "quit":
		return true
	default:
		u.println("info string Unknown command:", line)
	}
	return false
}

func (u *uci) position(args []string) error {
	if len(args) == 0 {
		return errors.New("malformed position command")
	}
	var b *board.Board
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		b = board.NewBoard()
	case "fen":
		idx := slices.Index(rest, "moves")
		if idx < 0 {
			idx = len(rest)
		}
		var err error
		if b, err = board.ParseFEN(strings.Join(rest[:idx], " ")); err != nil {
			return err
		}
		rest = rest[idx:]
	default:
		return fmt.Errorf("invalid position subcommand %q", args[0])
	}
	if len(rest) > 0 {
		if !strings.EqualFold(rest[0], "moves") {
			return fmt.Errorf("expected moves, got %q", rest[0])
		}
		for _, s := range rest[1:] {
			if _, err := b.PlayUCI(strings.ToLower(s)); err != nil {
				return err
			}
		}
	}
	u.b = b
	return nil
}

var goKeywords = map[string]bool{
	"searchmoves": true, "ponder": true, "wtime": true, "btime": true, "winc": true,
	"binc": true, "movestogo": true, "depth": true, "nodes": true, "mate": true,
	"movetime": true, "infinite": true,
}

func (u *uci) parseGo(args []string) (engine.Limits, error) {
	var limits engine.Limits
	var wtime, btime, winc, binc, movetime time.Duration
	movesToGo := 0
	infinite := false

	for i := 0; i < len(args); i++ {
		key := strings.ToLower(args[i])
		switch key {
		case "infinite":
			infinite = true
			continue
		case "ponder":
			log.Debug().Msg("ponder-not-supported")
			continue
		case "searchmoves":
			for i+1 < len(args) && !goKeywords[strings.ToLower(args[i+1])] {
				i++
			}
			log.Debug().Msg("searchmoves-ignored")
			continue
		}
		if i+1 >= len(args) {
			return limits, fmt.Errorf("malformed go command option %s", key)
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return limits, fmt.Errorf("could not convert %s: %w", key, err)
		}
		i++
		ms := time.Duration(n) * time.Millisecond
		switch key {
		case "depth":
			limits.Depth = n
		case "nodes":
			limits.Nodes = uint64(max(n, 0))
		case "movetime":
			movetime = ms
		case "wtime":
			wtime = ms
		case "btime":
			btime = ms
		case "winc":
			winc = ms
		case "binc":
			binc = ms
		case "movestogo":
			movesToGo = n
		default:
			log.Debug().Str("option", key).Msg("ignored-go-option")
		}
	}

	remaining, inc := wtime, winc
	if u.b.SideToMove() == board.Black {
		remaining, inc = btime, binc
	}
	switch {
	case infinite:
		limits.Infinite = true
	case movetime > 0:
		limits.Time = engine.ForMoveTime(max(movetime-u.moveOverhead, time.Millisecond))
	case remaining > 0:
		limits.Time = engine.ForClockPhase(u.b, max(remaining-u.moveOverhead, time.Millisecond), inc, movesToGo)
	case limits.Depth == 0 && limits.Nodes == 0:
		limits.Depth = u.defaultDepth
	}
	return limits, nil
}

func (u *uci) startSearch(ctx context.Context, limits engine.Limits) {
	sctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	u.cancel, u.done = cancel, done
	u.infinite = limits.Infinite
	b := u.b.Clone()

	u.searcher.OnInfo = func(info engine.Info) {
		u.printf("info depth %d score %s nodes %d nps %d hashfull %d time %d pv %s\n",
			info.Depth, engine.ScoreString(info.Score), info.Nodes, info.NPS,
			info.HashFull, info.Elapsed.Milliseconds(), info.PV)
	}
	go func() {
		defer close(done)
		res, err := u.searcher.Search(sctx, b, limits)
		if err != nil {
			log.Error().Err(err).Msg("search-failed")
			u.println("bestmove 0000")
			return
		}
		u.println("bestmove", res.Move)
	}()
}

// stopSearch cancels a running search and waits for its bestmove.
func (u *uci) stopSearch() {
	if u.cancel == nil {
		return
	}
	u.cancel()
	<-u.done
	u.cancel, u.done = nil, nil
	u.infinite = false
}

// wait blocks until the running search, if any, finishes on its own.
func (u *uci) wait() {
	if u.done != nil {
		<-u.done
	}
	u.stopSearch()
}

func (u *uci) setOption(args []string) error {
	// setoption name <id> [value <x>]
	nameIdx := slices.Index(args, "name")
	valueIdx := slices.Index(args, "value")
	if nameIdx < 0 || valueIdx < 0 || valueIdx < nameIdx || valueIdx+1 >= len(args) {
		return errors.New("malformed setoption command")
	}
	name := strings.ToLower(strings.Join(args[nameIdx+1:valueIdx], " "))
	value := args[valueIdx+1]
	switch name {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 || mb > maxHashMB {
			return fmt.Errorf("invalid Hash value %q", value)
		}
		u.searcher.TT.Resize(uint64(mb) << 20)
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > maxThreads {
			return fmt.Errorf("invalid Threads value %q", value)
		}
		u.searcher.Threads = n
	case "ownbook":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid OwnBook value %q", value)
		}
		u.searcher.Book = nil
		if on {
			u.searcher.Book = engine.DefaultBook()
		}
	default:
		return fmt.Errorf("unknown option %q", name)
	}
	log.Debug().Str("name", name).Str("value", value).Msg("set-option")
	return nil
}

func (u *uci) perft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d <= 0 {
			u.println("info string bad perft depth", args[0])
			return
		}
		depth = d
	}
	start := time.Now()
	counts := board.PerftDivide(u.b, depth)
	keys := lo.Keys(counts)
	slices.SortFunc(keys, func(a, b board.Move) int { return strings.Compare(a.String(), b.String()) })
	for _, m := range keys {
		u.printf("%s: %d\n", m, counts[m])
	}
	u.printf("\nNodes searched: %d\n", lo.Sum(lo.Values(counts)))
	log.Debug().Int("depth", depth).Dur("elapsed", time.Since(start)).Msg("perft-complete")
}
