package engine

import "github.com/rs/zerolog/log"

// CutStatistics counts how often each pruning or cutoff mechanism fired in a
// worker.
type CutStatistics struct {
	TTCutoffs        uint64
	NullMoveCutoffs  uint64
	FutilityPrunes   uint64
	LateMovePrunes   uint64
	LMRReSearches    uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	QDeltaPrunes     uint64
	QSEEPrunes       uint64
}

// Add accumulates o into s.
func (s *CutStatistics) Add(o CutStatistics) {
	s.TTCutoffs += o.TTCutoffs
	s.NullMoveCutoffs += o.NullMoveCutoffs
	s.FutilityPrunes += o.FutilityPrunes
	s.LateMovePrunes += o.LateMovePrunes
	s.LMRReSearches += o.LMRReSearches
	s.BetaCutoffs += o.BetaCutoffs
	s.QStandPatCutoffs += o.QStandPatCutoffs
	s.QBetaCutoffs += o.QBetaCutoffs
	s.QDeltaPrunes += o.QDeltaPrunes
	s.QSEEPrunes += o.QSEEPrunes
}

func (s *CutStatistics) log() {
	log.Debug().
		Uint64("tt-cutoffs", s.TTCutoffs).
		Uint64("null-move-cutoffs", s.NullMoveCutoffs).
		Uint64("futility-prunes", s.FutilityPrunes).
		Uint64("late-move-prunes", s.LateMovePrunes).
		Uint64("lmr-re-searches", s.LMRReSearches).
		Uint64("beta-cutoffs", s.BetaCutoffs).
		Uint64("q-stand-pat-cutoffs", s.QStandPatCutoffs).
		Uint64("q-beta-cutoffs", s.QBetaCutoffs).
		Uint64("q-delta-prunes", s.QDeltaPrunes).
		Uint64("q-see-prunes", s.QSEEPrunes).
		Msg("cut-statistics")
}
