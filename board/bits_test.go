package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func squares(names ...string) uint64 {
	var m uint64
	for _, n := range names {
		sq, _ := ParseSquare(n)
		m |= bit(sq)
	}
	return m
}

func TestRayAttacksStopAtBlocker(t *testing.T) {
	d4, _ := ParseSquare("d4")
	occ := squares("d6", "f6", "b4", "d2")

	assert.Equal(t, squares("d5", "d6"), rayAttacks(d4, North, occ))
	assert.Equal(t, squares("e5", "f6"), rayAttacks(d4, NorthEast, occ))
	assert.Equal(t, squares("c4", "b4"), rayAttacks(d4, West, occ))
	assert.Equal(t, squares("d3", "d2"), rayAttacks(d4, South, occ))
	assert.Equal(t, squares("e4", "f4", "g4", "h4"), rayAttacks(d4, East, occ))
	assert.Equal(t, squares("c3", "b2", "a1"), rayAttacks(d4, SouthWest, occ))
}

func TestRayAttacksFromCorners(t *testing.T) {
	assert.Equal(t, uint64(0), rayAttacks(H8, North, 0))
	assert.Equal(t, uint64(0), rayAttacks(A1, South, 0))
	assert.Equal(t, squares("b1", "c1", "d1", "e1", "f1", "g1", "h1"), rayAttacks(A1, East, 0))
	assert.Equal(t, squares("g7", "f6"), rayAttacks(H8, SouthWest, squares("f6", "b2")))
}

func TestInBetween(t *testing.T) {
	e1, _ := ParseSquare("e1")
	e8, _ := ParseSquare("e8")
	a5, _ := ParseSquare("a5")
	c3, _ := ParseSquare("c3")
	c4, _ := ParseSquare("c4")

	assert.Equal(t, squares("e2", "e3", "e4", "e5", "e6", "e7", "e8"), inBetween(e1, e8))
	assert.Equal(t, squares("b4", "c3"), inBetween(a5, c3))
	assert.Equal(t, squares("d2", "c3"), inBetween(e1, c3))
	assert.Equal(t, uint64(0), inBetween(e1, c4))
	assert.Equal(t, North, directionBetween[e1][e8])
	assert.Equal(t, South, directionBetween[e8][e1])
	assert.Equal(t, NorthWest, directionBetween[e1][c3])
	assert.Equal(t, NoDirection, directionBetween[e1][c4])
}

func TestXrayFindsPinner(t *testing.T) {
	e1, _ := ParseSquare("e1")
	occ := squares("e1", "e3", "e7")
	own := squares("e1", "e3")
	assert.Equal(t, squares("e4", "e5", "e6", "e7"), xrayRookAttacks(e1, occ, own)&rays[North][e1])
}

func TestLeaperTables(t *testing.T) {
	assert.Equal(t, squares("b3", "c2"), knightAttacks[A1])
	assert.Equal(t, squares("a2", "b2", "b1"), kingAttacks[A1])
	e4, _ := ParseSquare("e4")
	assert.Equal(t, squares("d5", "f5"), pawnAttacks[White][e4])
	assert.Equal(t, squares("d3", "f3"), pawnAttacks[Black][e4])
	assert.Equal(t, squares("g7"), pawnAttacks[Black][H8])
}

func TestPopLSB(t *testing.T) {
	m := squares("c1", "a8")
	assert.Equal(t, C1, popLSB(&m))
	assert.Equal(t, A8, popLSB(&m))
	assert.Equal(t, uint64(0), m)
	assert.Equal(t, 3, popCount(squares("a1", "b2", "h8")))
	assert.Equal(t, H8, bitScanReverse(squares("a1", "h8")))
}
