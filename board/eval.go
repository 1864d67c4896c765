package board

// PieceValue holds material values in centipawns, indexed by PieceType.
var PieceValue = [7]int32{
	Pawn:   100,
	Knight: 300,
	Bishop: 300,
	Rook:   500,
	Queen:  900,
}

func (b *Board) computeMaterial() [2]int32 {
	var m [2]int32
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= Queen; pt++ {
			m[c] += PieceValue[pt] * int32(popCount(b.Pieces(c, pt)))
		}
	}
	return m
}

// Material returns the cached material total of c.
func (b *Board) Material(c Color) int32 { return b.material[c] }

// NonPawnMaterial returns c's material excluding pawns.
func (b *Board) NonPawnMaterial(c Color) int32 {
	return b.material[c] - PieceValue[Pawn]*int32(popCount(b.Pieces(c, Pawn)))
}

// StaticEval returns the material balance from the side to move's perspective.
func (b *Board) StaticEval() int32 {
	eval := b.material[White] - b.material[Black]
	if b.sideToMove == Black {
		return -eval
	}
	return eval
}
