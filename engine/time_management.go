package engine

import (
	"time"

	"bitboard-chess/board"
)

// Engine-side safety knobs, in milliseconds unless noted.
const (
	overheadMs       = 30
	minMoveMs        = 5
	maxFrac          = 0.7
	defaultMovesToGo = 30
)

// TimeHandler holds an optional search deadline. The zero value never stops.
type TimeHandler struct {
	deadline time.Time
}

// ForMoveTime returns a handler that expires d from now.
func ForMoveTime(d time.Duration) TimeHandler {
	return TimeHandler{deadline: time.Now().Add(d)}
}

// ForClock budgets one move out of the remaining clock time. A movesToGo of
// zero means sudden death.
func ForClock(remaining, increment time.Duration, movesToGo int) TimeHandler {
	return TimeHandler{deadline: time.Now().Add(clockBudget(remaining, increment, movesToGo))}
}

// ForClockPhase is ForClock with the number of moves left estimated from the
// material still on b when the controller does not send movestogo.
func ForClockPhase(b *board.Board, remaining, increment time.Duration, movesToGo int) TimeHandler {
	if movesToGo <= 0 {
		movesToGo = estimateMovesRemaining(gamePhase(b))
	}
	return ForClock(remaining, increment, movesToGo)
}

func clockBudget(remaining, increment time.Duration, movesToGo int) time.Duration {
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}
	rem := remaining.Milliseconds()
	inc := increment.Milliseconds()

	moveTime := rem/int64(movesToGo) + inc*3/4
	moveTime = min(moveTime, int64(float64(rem)*maxFrac), rem-overheadMs)
	moveTime = max(moveTime, minMoveMs)
	return time.Duration(moveTime) * time.Millisecond
}

// Deadline returns the deadline and whether one is set.
func (th TimeHandler) Deadline() (time.Time, bool) {
	return th.deadline, !th.deadline.IsZero()
}

// ShouldStop reports whether the deadline has passed.
func (th TimeHandler) ShouldStop() bool {
	return !th.deadline.IsZero() && time.Now().After(th.deadline)
}

// gamePhase returns 24 with all minor and major pieces on the board, 0 with
// none.
func gamePhase(b *board.Board) int {
	opening := 2 * (2*board.PieceValue[board.Knight] + 2*board.PieceValue[board.Bishop] +
		2*board.PieceValue[board.Rook] + board.PieceValue[board.Queen])
	npm := b.NonPawnMaterial(board.White) + b.NonPawnMaterial(board.Black)
	return int(clamp(npm*24/opening, 0, 24))
}

// estimateMovesRemaining interpolates between 20 moves in the endgame and 45
// in the opening.
func estimateMovesRemaining(phase int) int {
	return phase*25/24 + 20
}
