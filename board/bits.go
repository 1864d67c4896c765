package board

import "math/bits"

// Direction indexes the eight ray directions. The first four increase the
// square index and the last four decrease it.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	NorthWest
	South
	SouthWest
	West
	SouthEast

	NoDirection Direction = 8
)

// positive reports whether moving along d increases the square index.
func (d Direction) positive() bool { return d < South }

var directionDelta = [8][2]int{
	North:     {1, 0},
	NorthEast: {1, 1},
	East:      {0, 1},
	NorthWest: {1, -1},
	South:     {-1, 0},
	SouthWest: {-1, -1},
	West:      {0, -1},
	SouthEast: {-1, 1},
}

var (
	// rays[d][sq] holds every square from sq (exclusive) to the board edge along d.
	rays [8][64]uint64

	// directionBetween[a][b] is the direction leading from a to b, or NoDirection
	// when the squares do not share a line.
	directionBetween [64][64]Direction

	knightAttacks [64]uint64
	kingAttacks   [64]uint64

	// pawnAttacks[c][sq] is the set of squares a pawn of color c on sq attacks.
	pawnAttacks [2][64]uint64
)

func init() {
	initRays()
	initLeaperTables()
}

func initRays() {
	for sq := 0; sq < 64; sq++ {
		for to := 0; to < 64; to++ {
			directionBetween[sq][to] = NoDirection
		}
	}
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		for d := North; d <= SouthEast; d++ {
			dr, df := directionDelta[d][0], directionDelta[d][1]
			var ray uint64
			for r, f := rank+dr, file+df; r >= 0 && r < 8 && f >= 0 && f < 8; r, f = r+dr, f+df {
				to := r*8 + f
				ray |= uint64(1) << to
				directionBetween[sq][to] = d
			}
			rays[d][sq] = ray
		}
	}
}

func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		knightAttacks[sq] = offsetMask(rank, file, knightOffsets[:])
		kingAttacks[sq] = offsetMask(rank, file, kingOffsets[:])
		pawnAttacks[White][sq] = offsetMask(rank, file, [][2]int{{1, -1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(rank, file, [][2]int{{-1, -1}, {-1, 1}})
	}
}

func offsetMask(rank, file int, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		r, f := rank+off[0], file+off[1]
		if r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= uint64(1) << (r*8 + f)
		}
	}
	return mask
}

func bitScanForward(x uint64) Square { return Square(bits.TrailingZeros64(x)) }

func bitScanReverse(x uint64) Square { return Square(63 - bits.LeadingZeros64(x)) }

func popCount(x uint64) int { return bits.OnesCount64(x) }

// popLSB removes and returns the least significant set bit of the mask.
func popLSB(mask *uint64) Square {
	sq := bitScanForward(*mask)
	*mask &= *mask - 1
	return sq
}

// rayAttacks returns the squares a slider on sq attacks along d: the ray is cut
// just past the nearest blocker by XOR-ing off the blocker's own ray. Positive
// directions find the nearest blocker from the low end, negative ones from the
// high end. The sentinel bits (h8, a1) have empty rays in the matching directions.
func rayAttacks(sq Square, d Direction, occ uint64) uint64 {
	attacks := rays[d][sq]
	blockers := attacks & occ
	if d.positive() {
		return attacks ^ rays[d][bitScanForward(blockers|1<<63)]
	}
	return attacks ^ rays[d][bitScanReverse(blockers|1)]
}

func bishopAttacks(sq Square, occ uint64) uint64 {
	return rayAttacks(sq, NorthEast, occ) | rayAttacks(sq, NorthWest, occ) |
		rayAttacks(sq, SouthEast, occ) | rayAttacks(sq, SouthWest, occ)
}

func rookAttacks(sq Square, occ uint64) uint64 {
	return rayAttacks(sq, North, occ) | rayAttacks(sq, East, occ) |
		rayAttacks(sq, South, occ) | rayAttacks(sq, West, occ)
}

// xrayBishopAttacks returns the squares attacked through the first layer of blockers.
func xrayBishopAttacks(sq Square, occ, blockers uint64) uint64 {
	attacks := bishopAttacks(sq, occ)
	blockers &= attacks
	return attacks ^ bishopAttacks(sq, occ^blockers)
}

func xrayRookAttacks(sq Square, occ, blockers uint64) uint64 {
	attacks := rookAttacks(sq, occ)
	blockers &= attacks
	return attacks ^ rookAttacks(sq, occ^blockers)
}

// inBetween returns the squares strictly after from up to and including to,
// or 0 when the squares are not aligned.
func inBetween(from, to Square) uint64 {
	d := directionBetween[from][to]
	if d == NoDirection {
		return 0
	}
	return rays[d][from] ^ rays[d][to]
}

// BishopAttacks exposes diagonal slider attacks for an arbitrary occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 { return bishopAttacks(sq, occ) }

// RookAttacks exposes orthogonal slider attacks for an arbitrary occupancy.
func RookAttacks(sq Square, occ uint64) uint64 { return rookAttacks(sq, occ) }
