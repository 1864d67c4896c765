package board

import (
	"math"

	"lukechampine.com/frand"
)

// Zobrist keys. Generated once from a fixed seed and never modified.
var (
	zobristPiece     [2][6][64]uint64
	zobristCastle    [4]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

var zobristSeed = [32]byte{
	0x9e, 0x37, 0x79, 0xb9, 0x7f, 0x4a, 0x7c, 0x15,
	0xf3, 0x9c, 0xc0, 0x60, 0x5c, 0xed, 0xc8, 0x34,
	0x10, 0x82, 0x27, 0x6b, 0xf3, 0xa2, 0x72, 0x37,
	0xc0, 0xde, 0xb1, 0x7b, 0x0a, 0x5f, 0x2e, 0x91,
}

func init() {
	initZobrist()
}

func initZobrist() {
	rng := frand.NewCustom(zobristSeed[:], 1024, 12)
	next := func() uint64 { return rng.Uint64n(math.MaxUint64) }

	for c := 0; c < 2; c++ {
		for pt := 0; pt < 6; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][pt][sq] = next()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = next()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = next()
	}
	zobristSide = next()
}

func pieceKey(c Color, pt PieceType, sq Square) uint64 { return zobristPiece[c][pt-1][sq] }

// castleKey returns the XOR of the keys of every flag set in cr.
func castleKey(cr CastlingRights) uint64 {
	var key uint64
	for i := 0; i < 4; i++ {
		if cr&(1<<i) != 0 {
			key ^= zobristCastle[i]
		}
	}
	return key
}

// ComputeHash recalculates the Zobrist key from scratch.
func (b *Board) ComputeHash() uint64 {
	var key uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			key ^= pieceKey(p.Color(), p.Type(), sq)
		}
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= castleKey(b.castlingRights)
	if b.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	return key
}
