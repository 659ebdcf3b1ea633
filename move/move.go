// Package move defines the packed Move representation and the supporting
// list/history types shared by movegen and game. It has no dependency on
// bitboard or board so those packages can depend on it without a cycle.
//
// The packed encoding (to/from/promotion/type bit-packed into one small
// integer instead of a struct) is carried over from the teacher repo's
// types.go, generalized to chesskit's square.Square/Kind vocabulary.
package move

import "github.com/go-chesskit/chesskit/square"

// Type distinguishes the move's special handling during execution.
type Type int

const (
	// Normal is any non-special quiet or capturing move.
	Normal Type = iota
	// Castling is a king move of two squares performing O-O/O-O-O.
	Castling
	// Promotion is a pawn move reaching the back rank.
	Promotion
	// EnPassant is a pawn capture of a pawn that just double-stepped.
	EnPassant
)

// Move is a chess move packed into a 32-bit value: the 6-bit From/To
// square indices, a 3-bit promotion Kind and a 2-bit Type. Packing keeps
// Move a cheap, comparable value suitable for the fixed-size [List]
// arrays movegen fills without allocation.
type Move uint32

// New creates a Normal (or Castling/EnPassant) move with no promotion.
func New(from, to square.Square, t Type) Move {
	return Move(int(to) | int(from)<<6 | int(square.NoKind+1)<<12 | int(t)<<15)
}

// NewPromotion creates a Promotion move to the given piece kind.
func NewPromotion(from, to square.Square, promo square.Kind) Move {
	return Move(int(to) | int(from)<<6 | int(promo+1)<<12 | int(Promotion)<<15)
}

// From returns the move's origin square.
func (m Move) From() square.Square { return square.Square(m>>6) & 0x3F }

// To returns the move's destination square.
func (m Move) To() square.Square { return square.Square(m) & 0x3F }

// Promotion returns the promotion piece kind, or square.NoKind for a
// non-promoting move.
func (m Move) Promotion() square.Kind {
	v := int(m>>12) & 0x7
	if v == 0 {
		return square.NoKind
	}
	return square.Kind(v - 1)
}

// Kind returns the move's special-handling type.
func (m Move) Kind() Type { return Type(m>>15) & 0x3 }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Kind() == Promotion }

// String renders the move in pure coordinate form (e.g. "e2e4", "e7e8q"),
// the format the teacher's uci.go calls UCI/LAN notation.
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += promotionLetter(m.Promotion())
	}
	return s
}

func promotionLetter(k square.Kind) string {
	switch k {
	case square.Knight:
		return "n"
	case square.Bishop:
		return "b"
	case square.Rook:
		return "r"
	case square.Queen:
		return "q"
	default:
		return ""
	}
}

// MaxMovesPerPosition bounds the legal move count in any reachable chess
// position (218, the known worst case), letting [List] preallocate a
// fixed array instead of growing a slice.
const MaxMovesPerPosition = 218

// List stores moves in a preallocated fixed array, avoiding per-position
// heap allocation during move generation, exactly as the teacher's
// MoveList does.
type List struct {
	Moves [MaxMovesPerPosition]Move
	Len   int
}

// Push appends m to the list.
func (l *List) Push(m Move) {
	l.Moves[l.Len] = m
	l.Len++
}

// Slice returns the populated prefix of Moves as a slice.
func (l *List) Slice() []Move { return l.Moves[:l.Len] }

// Reset empties the list for reuse.
func (l *List) Reset() { l.Len = 0 }

// HistoryRecord captures everything needed to undo a single applied move:
// the move itself, the piece that moved, any captured piece (NoPiece if
// none) and the irreversible position fields that Execute overwrote.
type HistoryRecord struct {
	Move             Move
	Moved            square.Piece
	Captured         square.Piece
	CapturedSquare   square.Square
	PrevCastling     int
	PrevEPTarget     square.Square
	PrevHalfmoveCnt  int
	SAN              string
}
