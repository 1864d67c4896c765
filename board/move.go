package board

import "strings"

// MoveKind tags special moves.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Castle
	EnPassant
	Promotion
)

// Move is a move relative to the position it was generated from.
// The zero value is NoMove.
type Move struct {
	From     Square
	To       Square
	Kind     MoveKind
	Promo    PieceType // set for Promotion
	Side     CastleSide
	Piece    PieceType // moving piece; NoPieceType marks an illegal request
	Captured PieceType
}

// NoMove is the empty move.
var NoMove = Move{}

// IsIllegal reports whether m is the sentinel returned for an unmatched request.
func (m Move) IsIllegal() bool { return m.Piece == NoPieceType }

// IsCapture reports whether m removes an enemy piece, en-passant included.
func (m Move) IsCapture() bool { return m.Captured != NoPieceType }

// IsTactical reports captures and promotions.
func (m Move) IsTactical() bool { return m.Captured != NoPieceType || m.Kind == Promotion }

// IsQuiet reports moves that neither capture nor promote.
func (m Move) IsQuiet() bool { return !m.IsTactical() }

var promoLetters = [7]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}

// String returns UCI coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteString(m.To.String())
	if m.Kind == Promotion {
		sb.WriteByte(promoLetters[m.Promo])
	}
	return sb.String()
}
