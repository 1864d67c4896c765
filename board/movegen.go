package board

type genMode uint8

const (
	genAll genMode = iota
	genTactical
)

const (
	rank1 uint64 = 0x00000000000000FF
	rank8 uint64 = 0xFF00000000000000
)

// pinState is the per-call legality context shared by all piece generators.
type pinState struct {
	king     Square
	checkers uint64
	// target holds the squares non-king moves may land on: everything when not
	// in check, the checker plus the blocking squares under single check.
	target uint64
	pinned uint64
	// pinners[d] is the enemy slider pinning along direction d from the king.
	pinners [8]Square
}

// pinLine returns the squares a pinned piece on sq may move to.
func (ps *pinState) pinLine(sq Square) uint64 {
	pinner := ps.pinners[directionBetween[ps.king][sq]]
	if pinner == NoSquare {
		panic("board: pin table consulted for an unpinned piece on " + sq.String())
	}
	return inBetween(ps.king, pinner)
}

func (b *Board) computePins(us Color) pinState {
	them := us.Other()
	occ := b.Occupancy()
	own := b.colors[us]
	enemy := b.colors[them]
	queens := b.pieces[Queen-1]

	ps := pinState{king: b.KingSquare(us), target: ^uint64(0)}
	for i := range ps.pinners {
		ps.pinners[i] = NoSquare
	}

	ps.checkers = b.AttackersOf(ps.king, them, occ)
	if popCount(ps.checkers) == 1 {
		checker := bitScanForward(ps.checkers)
		ps.target = ps.checkers
		switch b.squares[checker].Type() {
		case Bishop, Rook, Queen:
			ps.target |= inBetween(ps.king, checker)
		}
	}

	diag := xrayBishopAttacks(ps.king, occ, own) & enemy & (b.pieces[Bishop-1] | queens)
	orth := xrayRookAttacks(ps.king, occ, own) & enemy & (b.pieces[Rook-1] | queens)
	for pinners := diag | orth; pinners != 0; {
		p := popLSB(&pinners)
		ps.pinned |= inBetween(ps.king, p) & own
		ps.pinners[directionBetween[ps.king][p]] = p
	}
	return ps
}

// GenerateMoves appends every legal move to dst[:0] and returns the result.
// It also refreshes the cached in-check flag.
func (b *Board) GenerateMoves(dst []Move) []Move {
	return b.generate(dst[:0], genAll)
}

// GenerateTactical appends the legal captures (en-passant included) and
// promotions to dst[:0].
func (b *Board) GenerateTactical(dst []Move) []Move {
	return b.generate(dst[:0], genTactical)
}

func (b *Board) generate(moves []Move, mode genMode) []Move {
	us := b.sideToMove
	ps := b.computePins(us)
	b.inCheck = ps.checkers != 0

	moves = b.genKingMoves(moves, &ps, mode)
	if popCount(ps.checkers) >= 2 {
		return moves
	}

	own := b.colors[us]
	enemy := b.colors[us.Other()]
	occ := own | enemy
	dests := ^own & ps.target
	if mode == genTactical {
		dests &= enemy
	}

	for knights := b.Pieces(us, Knight) &^ ps.pinned; knights != 0; {
		from := popLSB(&knights)
		moves = b.appendTargets(moves, Knight, from, knightAttacks[from]&dests)
	}
	for _, pt := range [...]PieceType{Bishop, Rook, Queen} {
		for sliders := b.Pieces(us, pt); sliders != 0; {
			from := popLSB(&sliders)
			var attacks uint64
			switch pt {
			case Bishop:
				attacks = bishopAttacks(from, occ)
			case Rook:
				attacks = rookAttacks(from, occ)
			default:
				attacks = bishopAttacks(from, occ) | rookAttacks(from, occ)
			}
			attacks &= dests
			if ps.pinned&bit(from) != 0 {
				attacks &= ps.pinLine(from)
			}
			moves = b.appendTargets(moves, pt, from, attacks)
		}
	}

	moves = b.genPawnMoves(moves, &ps, mode)

	if mode == genAll && ps.checkers == 0 {
		moves = b.genCastling(moves)
	}
	return moves
}

func (b *Board) appendTargets(moves []Move, pt PieceType, from Square, targets uint64) []Move {
	for targets != 0 {
		to := popLSB(&targets)
		moves = append(moves, Move{From: from, To: to, Piece: pt, Captured: b.squares[to].Type()})
	}
	return moves
}

// genKingMoves tests destinations against the occupancy without the king so
// that a slider checking along a line still covers the squares behind it.
func (b *Board) genKingMoves(moves []Move, ps *pinState, mode genMode) []Move {
	us := b.sideToMove
	them := us.Other()
	targets := kingAttacks[ps.king] &^ b.colors[us]
	if mode == genTactical {
		targets &= b.colors[them]
	}
	occ := b.Occupancy() &^ bit(ps.king)
	for targets != 0 {
		to := popLSB(&targets)
		if b.AttackersOf(to, them, occ) == 0 {
			moves = append(moves, Move{From: ps.king, To: to, Piece: King, Captured: b.squares[to].Type()})
		}
	}
	return moves
}

func appendPromotions(moves []Move, from, to Square, captured PieceType) []Move {
	for _, promo := range [...]PieceType{Queen, Rook, Bishop, Knight} {
		moves = append(moves, Move{From: from, To: to, Kind: Promotion, Promo: promo, Piece: Pawn, Captured: captured})
	}
	return moves
}

func (b *Board) genPawnMoves(moves []Move, ps *pinState, mode genMode) []Move {
	us := b.sideToMove
	enemy := b.colors[us.Other()]
	occ := b.Occupancy()

	push, startRank, promoRanks := Square(8), 1, rank8
	if us == Black {
		push, startRank, promoRanks = -8, 6, rank1
	}

	for pawns := b.Pieces(us, Pawn); pawns != 0; {
		from := popLSB(&pawns)
		allowed := ps.target
		if ps.pinned&bit(from) != 0 {
			allowed &= ps.pinLine(from)
		}

		if one := from + push; occ&bit(one) == 0 {
			switch {
			case promoRanks&bit(one) != 0:
				if allowed&bit(one) != 0 {
					moves = appendPromotions(moves, from, one, NoPieceType)
				}
			case mode == genAll:
				if allowed&bit(one) != 0 {
					moves = append(moves, Move{From: from, To: one, Piece: Pawn})
				}
				if two := one + push; from.Rank() == startRank && occ&bit(two) == 0 && allowed&bit(two) != 0 {
					moves = append(moves, Move{From: from, To: two, Piece: Pawn})
				}
			}
		}

		for caps := pawnAttacks[us][from] & enemy & allowed; caps != 0; {
			to := popLSB(&caps)
			captured := b.squares[to].Type()
			if promoRanks&bit(to) != 0 {
				moves = appendPromotions(moves, from, to, captured)
				continue
			}
			moves = append(moves, Move{From: from, To: to, Piece: Pawn, Captured: captured})
		}

		if ep := b.enPassantSquare; ep != NoSquare && pawnAttacks[us][from]&bit(ep) != 0 && b.enPassantIsLegal(ps, from, ep-push) {
			moves = append(moves, Move{From: from, To: ep, Kind: EnPassant, Piece: Pawn, Captured: Pawn})
		}
	}
	return moves
}

// enPassantIsLegal replays the capture on a scratch occupancy and recomputes
// every attack on the king. Two pawns leave the same rank at once, which the
// pin masks cannot describe.
func (b *Board) enPassantIsLegal(ps *pinState, from, captured Square) bool {
	ep := b.enPassantSquare
	if ps.checkers != 0 && ps.checkers&bit(captured) == 0 && ps.target&bit(ep) == 0 {
		return false
	}
	occ := b.Occupancy()&^(bit(from)|bit(captured)) | bit(ep)
	return b.AttackersOf(ps.king, b.sideToMove.Other(), occ) == 0
}

type castlePath struct {
	right    CastlingRights
	side     CastleSide
	king, to Square
	rook     Square
	empty    uint64
	transit  [2]Square
}

var castlePaths = [2][2]castlePath{
	White: {
		{CastlingWhiteK, KingSide, E1, E1 + 2, H1, bit(E1+1) | bit(E1+2), [2]Square{E1 + 1, E1 + 2}},
		{CastlingWhiteQ, QueenSide, E1, E1 - 2, A1, bit(B1) | bit(C1) | bit(D1), [2]Square{D1, C1}},
	},
	Black: {
		{CastlingBlackK, KingSide, E8, E8 + 2, H8, bit(E8+1) | bit(E8+2), [2]Square{E8 + 1, E8 + 2}},
		{CastlingBlackQ, QueenSide, E8, E8 - 2, A8, bit(B8) | bit(C8) | bit(D8), [2]Square{D8, C8}},
	},
}

func (b *Board) genCastling(moves []Move) []Move {
	us := b.sideToMove
	them := us.Other()
	occ := b.Occupancy()
	rook := NewPiece(us, Rook)
	for _, cs := range castlePaths[us] {
		if b.castlingRights&cs.right == 0 || occ&cs.empty != 0 || b.squares[cs.rook] != rook {
			continue
		}
		if b.AttackersOf(cs.transit[0], them, occ) != 0 || b.AttackersOf(cs.transit[1], them, occ) != 0 {
			continue
		}
		moves = append(moves, Move{From: cs.king, To: cs.to, Kind: Castle, Side: cs.side, Piece: King})
	}
	return moves
}
