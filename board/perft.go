package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Move lists are reused per depth to avoid allocations.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return pc.count(b, depth)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]Move, 0, 256)
	}
	return pc.bufs[depth][:0]
}

func (pc *perftCtx) count(b *Board, depth int) uint64 {
	moves := b.GenerateMoves(pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.MakeMove(m)
		nodes += pc.count(b, depth-1)
		b.UnmakeMove()
	}
	return nodes
}

// PerftDivide returns the leaf count below each legal root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.GenerateMoves(nil) {
		b.MakeMove(m)
		result[m] = Perft(b, depth-1)
		b.UnmakeMove()
	}
	return result
}
