package engine

import "math"

// lmrTable holds late-move reductions indexed by remaining depth and the
// number of moves already searched.
var lmrTable [MaxSearchDepth + 1][64]int

func init() {
	initLMRTable()
}

func initLMRTable() {
	for depth := 1; depth <= MaxSearchDepth; depth++ {
		for moveCnt := 1; moveCnt < len(lmrTable[depth]); moveCnt++ {
			lmrTable[depth][moveCnt] = int(0.75 + math.Log(float64(depth))*math.Log(float64(moveCnt))/2.25)
		}
	}
}

func lmrReduction(depth, searched int) int {
	return lmrTable[min(depth, MaxSearchDepth)][min(searched, len(lmrTable[0])-1)]
}
