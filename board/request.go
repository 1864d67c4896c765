package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is reported by front ends when a request matches no legal move.
var ErrIllegalMove = errors.New("illegal move")

// MoveRequest is a candidate move given only by its squares and an optional
// promotion piece, as typed by a user or sent over UCI.
type MoveRequest struct {
	From  Square
	To    Square
	Promo PieceType
}

// ParseMoveRequest parses UCI coordinate notation such as "e2e4" or "a7a8q".
func ParseMoveRequest(s string) (MoveRequest, error) {
	if len(s) != 4 && len(s) != 5 {
		return MoveRequest{}, fmt.Errorf("move %q: expected 4 or 5 characters", s)
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return MoveRequest{}, fmt.Errorf("move %q: bad origin square", s)
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return MoveRequest{}, fmt.Errorf("move %q: bad destination square", s)
	}
	req := MoveRequest{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q', 'Q':
			req.Promo = Queen
		case 'r', 'R':
			req.Promo = Rook
		case 'b', 'B':
			req.Promo = Bishop
		case 'n', 'N':
			req.Promo = Knight
		default:
			return MoveRequest{}, fmt.Errorf("move %q: bad promotion piece", s)
		}
	}
	return req, nil
}

func (r MoveRequest) matches(m Move) bool {
	if m.From != r.From || m.To != r.To {
		return false
	}
	if m.Kind == Promotion {
		return m.Promo == r.Promo
	}
	return r.Promo == NoPieceType
}

// FindMove returns the legal move matching req, or a move whose IsIllegal
// reports true. The board is not modified.
func (b *Board) FindMove(req MoveRequest) Move {
	for _, m := range b.GenerateMoves(nil) {
		if req.matches(m) {
			return m
		}
	}
	return Move{From: req.From, To: req.To, Promo: req.Promo}
}

// RequestMove applies the legal move matching req and returns it. When nothing
// matches, the board is left untouched and the illegal sentinel is returned.
func (b *Board) RequestMove(req MoveRequest) Move {
	m := b.FindMove(req)
	if !m.IsIllegal() {
		b.MakeMove(m)
	}
	return m
}

// IsPromotionAttempt reports whether some legal move goes from req.From to
// req.To as a promotion, whatever piece req names.
func (b *Board) IsPromotionAttempt(req MoveRequest) bool {
	for _, m := range b.GenerateMoves(nil) {
		if m.From == req.From && m.To == req.To && m.Kind == Promotion {
			return true
		}
	}
	return false
}

// PlayUCI parses and applies a move in coordinate notation.
func (b *Board) PlayUCI(s string) (Move, error) {
	req, err := ParseMoveRequest(s)
	if err != nil {
		return NoMove, err
	}
	m := b.RequestMove(req)
	if m.IsIllegal() {
		return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	return m, nil
}
