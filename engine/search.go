package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"bitboard-chess/board"
)

var (
	// ErrNoLegalMoves is returned when the root position is mate or stalemate.
	ErrNoLegalMoves = errors.New("no legal moves in root position")
	// ErrNilBoard is returned when Search is called without a position.
	ErrNilBoard = errors.New("nil board")
)

// Pruning parameters.
const (
	aspirationWindow int32 = 35
	deltaMargin      int32 = 200
	nullMoveMinDepth       = 3
	pruneMaxDepth          = 3
	lmrMinDepth            = 3
	lmrMinMoves            = 3
	stopCheckMask          = 2047
)

var (
	futilityMargins       = [pruneMaxDepth + 1]int32{0, 150, 300, 450}
	lateMovePruningCounts = [pruneMaxDepth + 1]int{0, 8, 12, 18}
)

// Limits bound a search. Zero values mean no limit; a zero Depth searches up
// to MaxSearchDepth. An Infinite search returns only once ctx is done, even
// after a mate is found or the depth runs out.
type Limits struct {
	Depth    int
	Nodes    uint64
	Time     TimeHandler
	Infinite bool
}

// Info describes a completed iteration.
type Info struct {
	Depth    int
	Score    int32
	Nodes    uint64
	Elapsed  time.Duration
	NPS      uint64
	PV       PVLine
	HashFull int
}

// Result is the outcome of a search.
type Result struct {
	Move     board.Move
	Score    int32
	Depth    int
	Nodes    uint64
	PV       PVLine
	FromBook bool
}

// Searcher selects moves. Its transposition table and history persist between
// searches until NewGame; history is halved at the start of each search.
type Searcher struct {
	TT      *TransTable
	Book    Book
	Threads int
	// OnInfo, when set, is called after every completed iteration.
	OnInfo func(Info)

	history HistoryTable
}

func NewSearcher(tt *TransTable) *Searcher {
	return &Searcher{TT: tt, Threads: 1}
}

// NewGame forgets everything learned in previous searches.
func (s *Searcher) NewGame() {
	if s.TT != nil {
		s.TT.Clear()
	}
	s.history.Clear()
}

// Search picks a move for the side to move in b. The board is not modified.
// When stopped early by ctx, the deadline or the node budget, the result of
// the last completed iteration is returned with a nil error.
func (s *Searcher) Search(ctx context.Context, b *board.Board, limits Limits) (Result, error) {
	if b == nil {
		return Result{}, ErrNilBoard
	}
	legal := b.GenerateMoves(nil)
	if len(legal) == 0 {
		return Result{}, ErrNoLegalMoves
	}
	if !limits.Infinite {
		if res, ok := s.probeBook(b); ok {
			return res, nil
		}
	}
	if s.TT == nil {
		s.TT = NewTransTable(16)
	}
	s.TT.NewSearch()

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxSearchDepth {
		maxDepth = MaxSearchDepth
	}

	start := time.Now()
	main := s.newWorker(ctx, 0, b, limits)
	main.onInfo = func(info Info) {
		info.Elapsed = time.Since(start)
		if ms := info.Elapsed.Milliseconds(); ms > 0 {
			info.NPS = info.Nodes * 1000 / uint64(ms)
		}
		info.HashFull = s.TT.HashFull()
		log.Debug().Int("depth", info.Depth).
			Str("score", ScoreString(info.Score)).
			Uint64("nodes", info.Nodes).
			Uint64("nps", info.NPS).
			Str("pv", info.PV.String()).
			Msg("iteration-complete")
		if s.OnInfo != nil {
			s.OnInfo(info)
		}
	}

	var res Result
	stats := CutStatistics{}
	if threads := max(s.Threads, 1); threads > 1 {
		res = s.searchParallel(ctx, main, b, limits, maxDepth, threads, &stats)
	} else {
		res = main.iterate(maxDepth)
	}
	if limits.Infinite {
		<-ctx.Done()
	}
	stats.Add(main.stats)

	if res.Move == board.NoMove {
		res.Move = main.fallbackMove(legal)
		res.PV = PVLine{Moves: []board.Move{res.Move}}
		log.Debug().Str("move", res.Move.String()).Msg("search-fallback-move")
	}
	s.history = main.history

	s.TT.LogStats()
	stats.log()
	log.Debug().Str("bestmove", res.Move.String()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", time.Since(start)).
		Msg("search-complete")
	return res, nil
}

func (s *Searcher) probeBook(b *board.Board) (Result, bool) {
	if s.Book == nil {
		return Result{}, false
	}
	m, ok := s.Book.Lookup(b.Hash())
	if !ok {
		return Result{}, false
	}
	found := b.FindMove(board.MoveRequest{From: m.From, To: m.To, Promo: m.Promo})
	if found.IsIllegal() {
		log.Debug().Str("move", m.String()).Msg("book-move-rejected")
		return Result{}, false
	}
	log.Debug().Str("move", found.String()).Msg("book-move")
	return Result{Move: found, FromBook: true, PV: PVLine{Moves: []board.Move{found}}}, true
}

type worker struct {
	id      int
	ctx     context.Context
	b       *board.Board
	tt      *TransTable
	limits  Limits
	rootPly int

	killers KillerTable
	history HistoryTable
	stats   CutStatistics

	nodes   uint64
	stopped bool
	shuffle bool
	onInfo  func(Info)

	moves  [MaxDepth + 1][]board.Move
	scored [MaxDepth + 1][]scoredMove
	pv     [MaxDepth + 1]PVLine
}

func (s *Searcher) newWorker(ctx context.Context, id int, b *board.Board, limits Limits) *worker {
	w := &worker{
		id:      id,
		ctx:     ctx,
		b:       b.Clone(),
		tt:      s.TT,
		limits:  limits,
		history: s.history,
		shuffle: id >= 3,
	}
	w.history.Age()
	w.rootPly = w.b.Ply()
	return w
}

// checkStop polls the stop conditions every few thousand nodes.
func (w *worker) checkStop() bool {
	if w.stopped {
		return true
	}
	if w.nodes&stopCheckMask == 0 {
		switch {
		case w.ctx.Err() != nil:
			w.stopped = true
		case w.limits.Time.ShouldStop():
			w.stopped = true
		case w.limits.Nodes > 0 && w.nodes >= w.limits.Nodes:
			w.stopped = true
		}
	}
	return w.stopped
}

// iterate runs iterative deepening and returns the last completed iteration.
func (w *worker) iterate(maxDepth int) Result {
	var res Result
	var prevScore int32
	for depth := 1; depth <= maxDepth; depth++ {
		score := w.aspirate(depth, prevScore)
		if w.stopped {
			break
		}
		pv := w.pv[0].Clone()
		if len(pv.Moves) == 0 {
			break
		}
		prevScore = score
		res = Result{Move: pv.BestMove(), Score: score, Depth: depth, Nodes: w.nodes, PV: pv}
		if w.onInfo != nil {
			w.onInfo(Info{Depth: depth, Score: score, Nodes: w.nodes, PV: pv})
		}
		if IsMateScore(score) && !w.limits.Infinite {
			break
		}
	}
	res.Nodes = w.nodes
	return res
}

// aspirate searches depth inside a window around prev, widening the failing
// side until the score falls inside.
func (w *worker) aspirate(depth int, prev int32) int32 {
	alpha, beta := -MaxScore, MaxScore
	window := aspirationWindow
	if depth >= 4 {
		alpha = max(prev-window, -MaxScore)
		beta = min(prev+window, MaxScore)
	}
	for {
		score := w.negamax(alpha, beta, depth, 0, 0, true)
		if w.stopped {
			return 0
		}
		switch {
		case score <= alpha && alpha > -MaxScore:
			window *= 2
			alpha = max(score-window, -MaxScore)
		case score >= beta && beta < MaxScore:
			window *= 2
			beta = min(score+window, MaxScore)
		default:
			return score
		}
		log.Trace().Int("depth", depth).Int32("alpha", alpha).Int32("beta", beta).Msg("aspiration-re-search")
	}
}

// fallbackMove returns the move ordering's favourite when no iteration
// completed.
func (w *worker) fallbackMove(legal []board.Move) board.Move {
	ttMove := board.NoMove
	if e, ok := w.tt.Probe(w.b.Hash()); ok {
		ttMove = e.Move
	}
	list := w.scoreMoves(legal, ttMove, 0)
	return pickNext(list, 0)
}

func (w *worker) negamax(alpha, beta int32, depth, ply, extensions int, allowNull bool) int32 {
	b := w.b
	w.pv[ply].Clear()
	isRoot := ply == 0
	isPV := beta-alpha > 1

	if !isRoot && (b.IsDrawBy50() || b.IsRepetition(w.rootPly) || b.IsInsufficientMaterial()) {
		return DrawScore
	}

	inCheck := b.InCheck()
	if inCheck && extensions < MaxExtensions {
		depth++
		extensions++
	}
	if depth <= 0 {
		return w.quiescence(alpha, beta, ply)
	}

	w.nodes++
	if w.checkStop() {
		return 0
	}
	if ply >= MaxDepth-1 {
		return b.StaticEval()
	}

	alphaOrig := alpha
	ttMove := board.NoMove
	if e, ok := w.tt.Probe(b.Hash()); ok {
		ttMove = e.Move
		if !isPV && !isRoot {
			if score, ok := e.Cutoff(depth, ply, alpha, beta); ok {
				w.stats.TTCutoffs++
				return score
			}
		}
	}

	var staticEval int32
	if !inCheck {
		staticEval = b.StaticEval()
	}

	us := b.SideToMove()
	if allowNull && !inCheck && !isPV && !isRoot && depth >= nullMoveMinDepth &&
		b.NonPawnMaterial(us) >= board.PieceValue[board.Knight] && staticEval >= beta {
		r := 2
		if depth >= 7 {
			r = 3
		}
		b.MakeNullMove()
		score := -w.negamax(-beta, -beta+1, depth-1-r, ply+1, extensions, false)
		b.UnmakeNullMove()
		if w.stopped {
			return 0
		}
		if score >= beta {
			w.stats.NullMoveCutoffs++
			if IsMateScore(score) {
				score = beta
			}
			return score
		}
	}

	moves := b.GenerateMoves(w.moves[ply])
	w.moves[ply] = moves
	if len(moves) == 0 {
		if inCheck {
			return MatedIn(ply)
		}
		return DrawScore
	}
	if isRoot && w.shuffle {
		frand.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	}
	list := w.scoreMoves(moves, ttMove, ply)

	canPrune := !isPV && !inCheck && depth <= pruneMaxDepth
	best := -MaxScore
	bestMove := board.NoMove
	searched := 0
	for i := range list {
		m := pickNext(list, i)
		quiet := m.IsQuiet()
		b.MakeMove(m)
		givesCheck := b.InCheck()
		late := quiet && !givesCheck && !w.killers.IsKiller(ply, m)

		if canPrune && late && searched > 0 {
			if searched >= lateMovePruningCounts[depth] {
				w.stats.LateMovePrunes++
				b.UnmakeMove()
				continue
			}
			if !IsMateScore(alpha) && staticEval+futilityMargins[depth] <= alpha {
				w.stats.FutilityPrunes++
				b.UnmakeMove()
				continue
			}
		}

		var score int32
		newDepth := depth - 1
		if searched == 0 {
			score = -w.negamax(-beta, -alpha, newDepth, ply+1, extensions, true)
		} else {
			r := 0
			if late && !inCheck && depth >= lmrMinDepth && searched >= lmrMinMoves {
				r = lmrReduction(depth, searched)
				if isPV {
					r--
				}
				r = clamp(r, 0, newDepth-1)
			}
			score = -w.negamax(-alpha-1, -alpha, newDepth-r, ply+1, extensions, true)
			if score > alpha && r > 0 {
				w.stats.LMRReSearches++
				score = -w.negamax(-alpha-1, -alpha, newDepth, ply+1, extensions, true)
			}
			if score > alpha && score < beta {
				score = -w.negamax(-beta, -alpha, newDepth, ply+1, extensions, true)
			}
		}
		b.UnmakeMove()
		searched++
		if w.stopped {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
			if score > alpha {
				alpha = score
				w.pv[ply].Update(m, &w.pv[ply+1])
				if score >= beta {
					w.stats.BetaCutoffs++
					if quiet {
						w.killers.Insert(ply, m)
						w.history.Add(us, m, depth)
					}
					break
				}
			}
		}
	}

	flag := TTExact
	switch {
	case best <= alphaOrig:
		flag = TTUpper
	case best >= beta:
		flag = TTLower
	}
	w.tt.Store(b.Hash(), depth, ply, bestMove, best, flag)
	return best
}
