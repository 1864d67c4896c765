package board

// Board is a bitboard chess position with an undo stack.
//
// A Board is not safe for concurrent use; search threads each work on their
// own Clone.
type Board struct {
	// Color occupancy, indexed by Color.
	colors [2]uint64
	// Piece-class occupancy, indexed by PieceType-1.
	pieces [6]uint64

	// Mailbox mirror of the masks for O(1) lookups.
	squares [64]Piece

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int

	hash     uint64
	material [2]int32
	inCheck  bool

	// One record per un-undone MakeMove/MakeNullMove call.
	history []undo
}

// undo captures everything MakeMove destroys that is not derivable from the move.
type undo struct {
	move          Move
	castling      CastlingRights
	enPassant     Square
	hash          uint64
	halfmoveClock int
	fullmove      int
	material      [2]int32
	inCheck       bool
}

// NewBoard returns the standard starting position.
func NewBoard() *Board { return MustParseFEN(FENStartPos) }

// Clone returns a deep copy, including the undo stack.
func (b *Board) Clone() *Board {
	c := *b
	c.history = make([]undo, len(b.history), cap(b.history))
	copy(c.history, b.history)
	return &c
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the current castling flags.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// HalfmoveClock counts half-moves since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber starts at 1 and is incremented after Black's move.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Hash returns the incrementally maintained Zobrist key.
func (b *Board) Hash() uint64 { return b.hash }

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.inCheck }

// Ply returns the depth of the undo stack.
func (b *Board) Ply() int { return len(b.history) }

// Occupancy returns all occupied squares.
func (b *Board) Occupancy() uint64 { return b.colors[White] | b.colors[Black] }

// ColorOccupancy returns the squares occupied by c.
func (b *Board) ColorOccupancy(c Color) uint64 { return b.colors[c] }

// PieceTypeOccupancy returns the squares holding pt of either color.
func (b *Board) PieceTypeOccupancy(pt PieceType) uint64 { return b.pieces[pt-1] }

// Pieces returns the squares holding pieces of class pt and color c.
func (b *Board) Pieces(c Color, pt PieceType) uint64 { return b.pieces[pt-1] & b.colors[c] }

// PieceAt returns the piece on sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) Square {
	return bitScanForward(b.pieces[King-1] & b.colors[c])
}

// put and lift update masks and mailbox only; hashing is done by the caller.
func (b *Board) put(c Color, pt PieceType, sq Square) {
	m := bit(sq)
	b.colors[c] |= m
	b.pieces[pt-1] |= m
	b.squares[sq] = NewPiece(c, pt)
}

func (b *Board) lift(c Color, pt PieceType, sq Square) {
	m := ^bit(sq)
	b.colors[c] &= m
	b.pieces[pt-1] &= m
	b.squares[sq] = NoPiece
}

func (b *Board) shift(c Color, pt PieceType, from, to Square) {
	m := bit(from) | bit(to)
	b.colors[c] ^= m
	b.pieces[pt-1] ^= m
	b.squares[from] = NoPiece
	b.squares[to] = NewPiece(c, pt)
}

// Validate checks that masks, mailbox, hash and material agree.
func (b *Board) Validate() bool {
	if b.colors[White]&b.colors[Black] != 0 {
		return false
	}
	var union uint64
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			if b.pieces[i]&b.pieces[j] != 0 {
				return false
			}
		}
		union |= b.pieces[i]
	}
	if union != b.Occupancy() {
		return false
	}
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece {
			if b.Occupancy()&bit(sq) != 0 {
				return false
			}
			continue
		}
		if b.pieces[p.Type()-1]&b.colors[p.Color()]&bit(sq) == 0 {
			return false
		}
	}
	if b.material != b.computeMaterial() {
		return false
	}
	return b.hash == b.ComputeHash()
}
