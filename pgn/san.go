// Package pgn implements Portable Game Notation support: encoding and
// parsing single moves in Standard Algebraic Notation (SAN) and Long
// Algebraic Notation (LAN), and parsing a full PGN movetext stream
// (tags, comments, NAGs, recursive variations, results).
//
// Grounded on the teacher's san.go (Move2SAN/disambiguate) and uci.go
// (Move2UCI), generalized onto chesskit's move.Move/position.Position
// and movegen.Generate instead of the teacher's flat bitboard arrays.
package pgn

import (
	"strings"

	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/movegen"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
)

// Move2SAN encodes m, legal in pos, to Standard Algebraic Notation.
// Like the teacher's Move2SAN, it plays the move on a scratch copy of
// pos to resolve the trailing '+'/'#' check/checkmate suffix.
func Move2SAN(m move.Move, pos position.Position, legalMoves move.List, moved square.Piece, isCapture bool) string {
	if m.Kind() == move.Castling {
		san := "O-O"
		if m.To().File() == square.FileC {
			san = "O-O-O"
		}
		return san + checkSuffix(pos, m)
	}

	var b strings.Builder
	b.Grow(8)
	b.WriteString(moved.Kind.Letter())

	if moved.Kind != square.Pawn {
		if file, rank, ok := disambiguate(m, pos, legalMoves, moved); ok {
			if file {
				b.WriteString(m.From().File().String())
			}
			if rank {
				b.WriteString(m.From().Rank().String())
			}
		}
	}

	if isCapture {
		if moved.Kind == square.Pawn {
			b.WriteString(m.From().File().String())
		}
		b.WriteByte('x')
	}

	b.WriteString(m.To().String())

	if m.IsPromotion() {
		b.WriteByte('=')
		b.WriteString(m.Promotion().Letter())
	}

	b.WriteString(checkSuffix(pos, m))
	return b.String()
}

// checkSuffix plays m on a scratch copy of pos and returns "+", "#" or
// "" depending on whether the opponent is left in check, checkmate, or
// neither.
func checkSuffix(pos position.Position, m move.Move) string {
	scratch := pos
	scratch.MakeMove(m)
	if !scratch.Board.InCheck(scratch.SideToMove) {
		return ""
	}
	if movegen.Generate(scratch).Len == 0 {
		return "#"
	}
	return "+"
}

// disambiguate reports whether m's origin square needs a file and/or
// rank qualifier to distinguish it from another legal move of the same
// piece kind landing on the same destination, following PGN's rule:
// prefer a file qualifier, fall back to a rank qualifier, and use both
// only when neither alone disambiguates.
func disambiguate(m move.Move, pos position.Position, legalMoves move.List, moved square.Piece) (file, rank, ok bool) {
	var sameFile, sameRank bool
	found := false

	for _, lm := range legalMoves.Slice() {
		if lm.From() == m.From() || lm.To() != m.To() {
			continue
		}
		if pos.Board.Get(lm.From()).Kind != moved.Kind {
			continue
		}
		found = true
		if lm.From().File() == m.From().File() {
			sameFile = true
		}
		if lm.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !found {
		return false, false, false
	}
	switch {
	case !sameFile:
		return true, false, true
	case !sameRank:
		return false, true, true
	default:
		return true, true, true
	}
}
