package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every error ParseFEN returns.
var ErrInvalidFEN = errors.New("invalid FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

var fenPieces = map[rune]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

const fenLetters = " PNBRQK"

func pieceChar(p Piece) byte {
	ch := fenLetters[p.Type()]
	if p.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

// ParseFEN builds a Board from a six-field FEN string. On error no board is returned.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fenError("expected 6 fields, got %d", len(fields))
	}

	b := &Board{enPassantSquare: NoSquare}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := fenPieces[ch]
			if !ok {
				return nil, fenError("unrecognized piece %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d has too many squares", rank+1)
			}
			b.put(p.Color(), p.Type(), Square(rank*8+file))
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d does not have 8 files", rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castlingRights |= CastlingWhiteK
			case 'Q':
				b.castlingRights |= CastlingWhiteQ
			case 'k':
				b.castlingRights |= CastlingBlackK
			case 'q':
				b.castlingRights |= CastlingBlackQ
			default:
				return nil, fenError("invalid castling character %q", ch)
			}
		}
	}

	// 4. En-passant target
	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return nil, fenError("invalid en-passant square %q", fields[3])
		}
		b.enPassantSquare = sq
	}

	// 5, 6. Counters
	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, fenError("halfmove clock %q is not a non-negative number", fields[4])
	}
	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return nil, fenError("fullmove number %q is not a positive number", fields[5])
	}
	b.halfmoveClock = half
	b.fullmoveNumber = full

	if err := b.checkSetup(); err != nil {
		return nil, err
	}

	b.material = b.computeMaterial()
	b.hash = b.ComputeHash()
	b.inCheck = b.AttackersOf(b.KingSquare(b.sideToMove), b.sideToMove.Other(), b.Occupancy()) != 0
	return b, nil
}

// checkSetup rejects placements the move generator cannot handle consistently.
func (b *Board) checkSetup() error {
	for c := White; c <= Black; c++ {
		if n := popCount(b.Pieces(c, King)); n != 1 {
			return fenError("%s has %d kings", c, n)
		}
	}
	const backRanks = 0xFF000000000000FF
	if b.pieces[Pawn-1]&backRanks != 0 {
		return fenError("pawn on first or eighth rank")
	}

	castles := []struct {
		flag       CastlingRights
		king, rook Piece
		kSq, rSq   Square
	}{
		{CastlingWhiteK, WhiteKing, WhiteRook, E1, H1},
		{CastlingWhiteQ, WhiteKing, WhiteRook, E1, A1},
		{CastlingBlackK, BlackKing, BlackRook, E8, H8},
		{CastlingBlackQ, BlackKing, BlackRook, E8, A8},
	}
	for _, cs := range castles {
		if b.castlingRights&cs.flag != 0 && (b.squares[cs.kSq] != cs.king || b.squares[cs.rSq] != cs.rook) {
			return fenError("castling right without king and rook on their home squares")
		}
	}

	if ep := b.enPassantSquare; ep != NoSquare {
		wantRank, pushed := 5, ep-8
		if b.sideToMove == Black {
			wantRank, pushed = 2, ep+8
		}
		them := b.sideToMove.Other()
		if ep.Rank() != wantRank || b.squares[ep] != NoPiece || b.squares[pushed] != NewPiece(them, Pawn) {
			return fenError("en-passant square %s does not follow a double push", ep)
		}
	}

	us := b.sideToMove
	if b.AttackersOf(b.KingSquare(us.Other()), us, b.Occupancy()) != 0 {
		return fenError("side not to move is in check")
	}
	return nil
}

// MustParseFEN is ParseFEN for known-good constants; it panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// FEN serializes the position.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank*8+file]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if b.castlingRights == CastlingNone {
		sb.WriteByte('-')
	} else {
		for i, ch := range "KQkq" {
			if b.castlingRights&(1<<i) != 0 {
				sb.WriteRune(ch)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
