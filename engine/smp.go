package engine

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"bitboard-chess/board"
)

// searchParallel runs main alongside threads-1 helper workers that share only
// the transposition table. Helpers search their own clone of b, half of them
// one ply deeper, and are cancelled as soon as main finishes.
func (s *Searcher) searchParallel(ctx context.Context, main *worker, b *board.Board, limits Limits,
	maxDepth, threads int, stats *CutStatistics) Result {

	s.TT.SetMultiThreadedMode()
	defer s.TT.SetSingleThreadedMode()

	helperCtx, cancelHelpers := context.WithCancel(ctx)
	defer cancelHelpers()
	g, gctx := errgroup.WithContext(helperCtx)

	helperLimits := limits
	helperLimits.Nodes = 0
	helpers := make([]*worker, threads-1)
	for i := range helpers {
		h := s.newWorker(gctx, i+1, b, helperLimits)
		helpers[i] = h
		g.Go(func() error {
			h.iterateHelper(maxDepth)
			return nil
		})
	}
	log.Debug().Int("threads", threads).Msg("lazy-smp-started")

	res := main.iterate(maxDepth)
	cancelHelpers()
	if err := g.Wait(); err != nil {
		log.Err(err).Msg("lazy-smp-helper-failed")
	}

	for _, h := range helpers {
		res.Nodes += h.nodes
		stats.Add(h.stats)
	}
	return res
}

// iterateHelper deepens without reporting. Odd helpers run one ply ahead of
// the main worker so the table fills with deeper entries.
func (w *worker) iterateHelper(maxDepth int) {
	for depth := 1; depth <= maxDepth; depth++ {
		d := min(depth+w.id%2, MaxSearchDepth)
		w.negamax(-MaxScore, MaxScore, d, 0, 0, true)
		if w.stopped {
			return
		}
	}
}
