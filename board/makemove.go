package board

// castleMask[sq] is and-ed into the castling rights whenever a move leaves or
// lands on sq.
var castleMask [64]CastlingRights

func init() {
	for sq := range castleMask {
		castleMask[sq] = CastlingAll
	}
	castleMask[E1] &^= CastlingWhiteK | CastlingWhiteQ
	castleMask[H1] &^= CastlingWhiteK
	castleMask[A1] &^= CastlingWhiteQ
	castleMask[E8] &^= CastlingBlackK | CastlingBlackQ
	castleMask[H8] &^= CastlingBlackK
	castleMask[A8] &^= CastlingBlackQ
}

// castleRookSquares returns the rook's origin and destination for a castle move.
func castleRookSquares(m Move) (from, to Square) {
	if m.Side == KingSide {
		return m.To + 1, m.To - 1
	}
	return m.To - 2, m.To + 1
}

func (b *Board) pushUndo(m Move) {
	b.history = append(b.history, undo{
		move:          m,
		castling:      b.castlingRights,
		enPassant:     b.enPassantSquare,
		hash:          b.hash,
		halfmoveClock: b.halfmoveClock,
		fullmove:      b.fullmoveNumber,
		material:      b.material,
		inCheck:       b.inCheck,
	})
}

func (b *Board) popUndo() undo {
	n := len(b.history)
	if n == 0 {
		panic("board: UnmakeMove with empty undo stack")
	}
	u := b.history[n-1]
	b.history = b.history[:n-1]
	return u
}

// MakeMove applies m, which must come from this position's legal move list.
func (b *Board) MakeMove(m Move) {
	us := b.sideToMove
	them := us.Other()
	b.pushUndo(m)

	h := b.hash
	if b.enPassantSquare != NoSquare {
		h ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	switch {
	case m.Kind == EnPassant:
		capSq := m.To - 8
		if us == Black {
			capSq = m.To + 8
		}
		b.lift(them, Pawn, capSq)
		h ^= pieceKey(them, Pawn, capSq)
		b.material[them] -= PieceValue[Pawn]
	case m.Captured != NoPieceType:
		b.lift(them, m.Captured, m.To)
		h ^= pieceKey(them, m.Captured, m.To)
		b.material[them] -= PieceValue[m.Captured]
	}

	b.shift(us, m.Piece, m.From, m.To)
	h ^= pieceKey(us, m.Piece, m.From) ^ pieceKey(us, m.Piece, m.To)

	switch m.Kind {
	case Promotion:
		b.lift(us, Pawn, m.To)
		b.put(us, m.Promo, m.To)
		h ^= pieceKey(us, Pawn, m.To) ^ pieceKey(us, m.Promo, m.To)
		b.material[us] += PieceValue[m.Promo] - PieceValue[Pawn]
	case Castle:
		rookFrom, rookTo := castleRookSquares(m)
		b.shift(us, Rook, rookFrom, rookTo)
		h ^= pieceKey(us, Rook, rookFrom) ^ pieceKey(us, Rook, rookTo)
	}

	if cr := b.castlingRights & castleMask[m.From] & castleMask[m.To]; cr != b.castlingRights {
		h ^= castleKey(cr ^ b.castlingRights)
		b.castlingRights = cr
	}

	if m.Piece == Pawn || m.Captured != NoPieceType {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if m.Piece == Pawn && (m.To-m.From == 16 || m.From-m.To == 16) {
		b.enPassantSquare = (m.From + m.To) / 2
		h ^= zobristEnPassant[b.enPassantSquare.File()]
	}

	if us == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = them
	h ^= zobristSide
	b.hash = h

	b.inCheck = b.AttackersOf(b.KingSquare(them), us, b.Occupancy()) != 0
}

// UnmakeMove reverts the most recent MakeMove. Calls must mirror MakeMove in
// reverse order; an empty undo stack panics.
func (b *Board) UnmakeMove() {
	u := b.popUndo()
	m := u.move

	them := b.sideToMove
	us := them.Other()
	b.sideToMove = us

	switch m.Kind {
	case Promotion:
		b.lift(us, m.Promo, m.To)
		b.put(us, Pawn, m.To)
	case Castle:
		rookFrom, rookTo := castleRookSquares(m)
		b.shift(us, Rook, rookTo, rookFrom)
	}
	b.shift(us, m.Piece, m.To, m.From)

	switch {
	case m.Kind == EnPassant:
		capSq := m.To - 8
		if us == Black {
			capSq = m.To + 8
		}
		b.put(them, Pawn, capSq)
	case m.Captured != NoPieceType:
		b.put(them, m.Captured, m.To)
	}

	b.restore(u)
}

func (b *Board) restore(u undo) {
	b.castlingRights = u.castling
	b.enPassantSquare = u.enPassant
	b.hash = u.hash
	b.halfmoveClock = u.halfmoveClock
	b.fullmoveNumber = u.fullmove
	b.material = u.material
	b.inCheck = u.inCheck
}

// MakeNullMove passes the turn. It must not be called while in check.
func (b *Board) MakeNullMove() {
	b.pushUndo(NoMove)
	if b.enPassantSquare != NoSquare {
		b.hash ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}
	b.halfmoveClock++
	if b.sideToMove == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = b.sideToMove.Other()
	b.hash ^= zobristSide
	b.inCheck = false
}

// UnmakeNullMove reverts MakeNullMove.
func (b *Board) UnmakeNullMove() {
	u := b.popUndo()
	b.sideToMove = b.sideToMove.Other()
	b.restore(u)
}

// Apply makes m and returns the function that takes it back, for use with defer.
func (b *Board) Apply(m Move) func() {
	b.MakeMove(m)
	return b.UnmakeMove
}

// LastMove returns the move on top of the undo stack, or NoMove.
func (b *Board) LastMove() Move {
	if len(b.history) == 0 {
		return NoMove
	}
	return b.history[len(b.history)-1].move
}
