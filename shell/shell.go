// Package shell is an interactive prompt for exploring positions and running
// searches by hand.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"bitboard-chess/board"
	"bitboard-chess/engine"
)

// errExit is returned by the exit command to end the loop.
var errExit = errors.New("exit requested")

const defaultGoDepth = 6

type ShellController struct {
	l *readline.Instance

	b        *board.Board
	searcher *engine.Searcher
	depth    int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController opens a readline prompt on the terminal.
func NewShellController(searcher *engine.Searcher, depth int) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mbbchess>\033[0m ",
		HistoryFile:     "/tmp/bbchess_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := newController(searcher, depth)
	sc.l = l
	return sc, nil
}

func newController(searcher *engine.Searcher, depth int) *ShellController {
	if depth <= 0 {
		depth = defaultGoDepth
	}
	return &ShellController{b: board.NewBoard(), searcher: searcher, depth: depth}
}

// Loop reads commands until exit, EOF or an interrupt on an empty line.
func (sc *ShellController) Loop(ctx context.Context) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		}
		if err := sc.Execute(ctx, line, sc.l.Stdout()); err != nil {
			if errors.Is(err, errExit) {
				break
			}
			log.Error().Err(err).Msg("command-failed")
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}

// Execute runs a single command line, writing its output to w.
func (sc *ShellController) Execute(ctx context.Context, line string, w io.Writer) error {
	fields, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "fen":
		return sc.setFEN(args, w)
	case "new":
		sc.b = board.NewBoard()
		sc.searcher.NewGame()
		fmt.Fprintln(w, sc.b.FEN())
	case "move":
		return sc.playMoves(args, w)
	case "undo":
		if sc.b.Ply() == 0 {
			return errors.New("nothing to undo")
		}
		sc.b.UnmakeMove()
		fmt.Fprintln(w, sc.b.FEN())
	case "moves":
		moves := sc.b.GenerateMoves(nil)
		names := lo.Map(moves, func(m board.Move, _ int) string { return m.String() })
		slices.Sort(names)
		fmt.Fprintf(w, "%d: %s\n", len(names), strings.Join(names, " "))
	case "go":
		return sc.search(ctx, args, w)
	case "perft":
		return sc.perft(args, w, false)
	case "divide":
		return sc.perft(args, w, true)
	case "eval":
		fmt.Fprintf(w, "material %d (white %d, black %d), side to move %s\n",
			sc.b.StaticEval(), sc.b.Material(board.White), sc.b.Material(board.Black), sc.b.SideToMove())
	case "help":
		usage(w)
	case "exit", "quit", "bye":
		return errExit
	default:
		return fmt.Errorf("unknown command %q; try help", cmd)
	}
	return nil
}

func (sc *ShellController) setFEN(args []string, w io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(w, sc.b.FEN())
		return nil
	}
	b, err := board.ParseFEN(strings.Join(args, " "))
	if err != nil {
		return err
	}
	sc.b = b
	fmt.Fprintln(w, sc.b.FEN())
	return nil
}

func (sc *ShellController) playMoves(args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.New("move needs at least one move in coordinate notation")
	}
	for _, s := range args {
		if _, err := sc.b.PlayUCI(s); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, sc.b.FEN())
	return nil
}

func (sc *ShellController) search(ctx context.Context, args []string, w io.Writer) error {
	depth := sc.depth
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d <= 0 {
			return fmt.Errorf("bad depth %q", args[0])
		}
		depth = d
	}
	sc.searcher.OnInfo = func(info engine.Info) {
		fmt.Fprintf(w, "depth %2d  %-9s nodes %-10d %v  %s\n",
			info.Depth, engine.ScoreString(info.Score), info.Nodes, info.Elapsed.Round(time.Millisecond), info.PV)
	}
	defer func() { sc.searcher.OnInfo = nil }()

	res, err := sc.searcher.Search(ctx, sc.b, engine.Limits{Depth: depth})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "best move %s (%s)\n", res.Move, engine.ScoreString(res.Score))
	return nil
}

func (sc *ShellController) perft(args []string, w io.Writer, divide bool) error {
	if len(args) != 1 {
		return errors.New("expected a depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth <= 0 {
		return fmt.Errorf("bad depth %q", args[0])
	}
	start := time.Now()
	if !divide {
		n := board.Perft(sc.b, depth)
		fmt.Fprintf(w, "nodes %d (%v)\n", n, time.Since(start).Round(time.Millisecond))
		return nil
	}
	counts := board.PerftDivide(sc.b, depth)
	keys := lo.Keys(counts)
	slices.SortFunc(keys, func(a, b board.Move) int { return strings.Compare(a.String(), b.String()) })
	for _, m := range keys {
		fmt.Fprintf(w, "%s: %d\n", m, counts[m])
	}
	fmt.Fprintf(w, "total %d (%v)\n", lo.Sum(lo.Values(counts)), time.Since(start).Round(time.Millisecond))
	return nil
}
