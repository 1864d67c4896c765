package engine

import (
	"fmt"
)

// Score bands. Anything beyond ±Checkmate encodes a forced mate; the distance
// to MaxScore is the number of plies to mate.
const (
	MaxScore  int32 = 32500
	Checkmate int32 = 20000
	DrawScore int32 = 0
)

const (
	// MaxDepth bounds the ply of any node, quiescence included.
	MaxDepth = 128
	// MaxSearchDepth is the deepest iteration run when no depth limit is given.
	MaxSearchDepth = 64
	// MaxExtensions caps the check extensions along a single line.
	MaxExtensions = 5
)

// IsMateScore reports whether score encodes a forced mate for either side.
func IsMateScore(score int32) bool { return score > Checkmate || score < -Checkmate }

// MatedIn returns the score of being checkmated at ply.
func MatedIn(ply int) int32 { return -MaxScore + int32(ply) }

// scoreToTT converts a root-relative mate score into a node-relative one.
func scoreToTT(score int32, ply int) int16 {
	switch {
	case score > Checkmate:
		score += int32(ply)
	case score < -Checkmate:
		score -= int32(ply)
	}
	return int16(score)
}

// scoreFromTT undoes scoreToTT for a probe at ply.
func scoreFromTT(score int16, ply int) int32 {
	s := int32(score)
	switch {
	case s > Checkmate:
		s -= int32(ply)
	case s < -Checkmate:
		s += int32(ply)
	}
	return s
}

// ScoreString renders a score the way UCI expects it, "cp 35" or "mate -3".
func ScoreString(score int32) string {
	switch {
	case score > Checkmate:
		plies := MaxScore - score
		return fmt.Sprintf("mate %d", (plies+1)/2)
	case score < -Checkmate:
		plies := MaxScore + score
		return fmt.Sprintf("mate %d", -(plies+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
