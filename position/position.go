// Package position combines a board.Board with the side-to-move,
// castling-rights, en-passant and move-clock metadata a FEN string
// carries, and implements the full position FEN codec plus the
// make-move state transition movegen's legality filter runs on a copy
// of.
//
// Grounded on the teacher's Position struct and its MakeMove/ParseFEN/
// SerializeFEN (position.go, fen.go): the same fields, the same
// castling-rights-clearing/halfmove-reset/en-passant-target rules, only
// split into this position.Position wrapping a board.Board instead of a
// flat [15]uint64 array.
package position

import (
	"strconv"
	"strings"

	"github.com/go-chesskit/chesskit/board"
	"github.com/go-chesskit/chesskit/chesserr"
	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/square"
)

// Castling rights bitmask, ported from the teacher's CastlingRights
// constants.
const (
	WhiteShort = 1 << iota
	WhiteLong
	BlackShort
	BlackLong
)

// Start is the FEN of the standard chess starting position.
const Start = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is a board plus every field needed to make it a legal,
// resumable chess position.
type Position struct {
	Board          board.Board
	SideToMove     square.Color
	CastlingRights int
	EPTarget       square.Square
	HalfmoveClock  int
	FullmoveNumber int
}

// FromFEN parses a complete (six-field) FEN string into a Position.
func FromFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Position{}, chesserr.WithToken(chesserr.InvalidFEN, fen)
	}

	b, err := board.FromFEN(fields[0])
	if err != nil {
		return Position{}, chesserr.Wrap(chesserr.InvalidFEN, fen, err)
	}

	var pos Position
	pos.Board = b

	switch fields[1] {
	case "w":
		pos.SideToMove = square.White
	case "b":
		pos.SideToMove = square.Black
	default:
		return Position{}, chesserr.WithToken(chesserr.InvalidFEN, fen)
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				pos.CastlingRights |= WhiteShort
			case 'Q':
				pos.CastlingRights |= WhiteLong
			case 'k':
				pos.CastlingRights |= BlackShort
			case 'q':
				pos.CastlingRights |= BlackLong
			default:
				return Position{}, chesserr.WithToken(chesserr.InvalidFEN, fen)
			}
		}
	}

	if fields[3] == "-" {
		pos.EPTarget = square.NoSquare
	} else {
		sq, err := square.Parse(fields[3])
		if err != nil {
			return Position{}, chesserr.Wrap(chesserr.InvalidFEN, fen, err)
		}
		pos.EPTarget = sq
	}

	pos.HalfmoveClock, err = strconv.Atoi(fields[4])
	if err != nil {
		return Position{}, chesserr.Wrap(chesserr.InvalidFEN, fen, err)
	}
	pos.FullmoveNumber, err = strconv.Atoi(fields[5])
	if err != nil {
		return Position{}, chesserr.Wrap(chesserr.InvalidFEN, fen, err)
	}

	return pos, nil
}

// FEN serializes the position into a complete six-field FEN string.
func (p Position) FEN() string {
	var sb strings.Builder
	sb.WriteString(p.Board.FEN())
	sb.WriteByte(' ')
	if p.SideToMove == square.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	if p.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastlingRights&WhiteShort != 0 {
			sb.WriteByte('K')
		}
		if p.CastlingRights&WhiteLong != 0 {
			sb.WriteByte('Q')
		}
		if p.CastlingRights&BlackShort != 0 {
			sb.WriteByte('k')
		}
		if p.CastlingRights&BlackLong != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	if p.EPTarget == square.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EPTarget.String())
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

// rookOriginAndDest returns the rook's origin and destination squares for
// the castling move landing the king on kingTo.
func rookOriginAndDest(kingTo square.Square) (from, to square.Square) {
	switch kingTo {
	case square.New(square.FileG, square.Rank1):
		return square.New(square.FileH, square.Rank1), square.New(square.FileF, square.Rank1)
	case square.New(square.FileG, square.Rank8):
		return square.New(square.FileH, square.Rank8), square.New(square.FileF, square.Rank8)
	case square.New(square.FileC, square.Rank1):
		return square.New(square.FileA, square.Rank1), square.New(square.FileD, square.Rank1)
	case square.New(square.FileC, square.Rank8):
		return square.New(square.FileA, square.Rank8), square.New(square.FileD, square.Rank8)
	}
	return square.NoSquare, square.NoSquare
}

// MakeMove applies m in place, updating piece placement, castling
// rights, en-passant target and both move clocks. Callers running the
// copy-make legality filter should copy the Position first; MakeMove
// itself never validates legality, only the teacher's invariant that m
// is at least pseudo-legal.
func (p *Position) MakeMove(m move.Move) move.HistoryRecord {
	from, to := m.From(), m.To()
	moved := p.Board.Get(from)
	captured := p.Board.Get(to)
	capturedSquare := to

	rec := move.HistoryRecord{
		Move:            m,
		Moved:           moved,
		PrevCastling:    p.CastlingRights,
		PrevEPTarget:    p.EPTarget,
		PrevHalfmoveCnt: p.HalfmoveClock,
	}

	p.Board.Remove(from, moved)
	p.HalfmoveClock++

	if m.Kind() == move.EnPassant {
		capturedSquare = square.New(to.File(), from.Rank())
		captured = p.Board.Get(capturedSquare)
	}
	if !captured.IsNone() {
		p.Board.Remove(capturedSquare, captured)
		p.HalfmoveClock = 0
	}
	rec.Captured = captured
	rec.CapturedSquare = capturedSquare

	switch m.Kind() {
	case move.Promotion:
		p.Board.Set(to, square.Piece{Kind: m.Promotion(), Color: moved.Color})
	case move.Castling:
		p.Board.Set(to, moved)
		rookFrom, rookTo := rookOriginAndDest(to)
		rook := p.Board.Get(rookFrom)
		p.Board.Remove(rookFrom, rook)
		p.Board.Set(rookTo, rook)
	default:
		p.Board.Set(to, moved)
	}

	p.EPTarget = square.NoSquare
	switch moved.Kind {
	case square.Pawn:
		p.HalfmoveClock = 0
		if to-from == 16 || from-to == 16 {
			p.EPTarget = square.New(from.File(), square.Rank((int(from.Rank())+int(to.Rank()))/2))
		}
	case square.Rook:
		switch from {
		case square.New(square.FileA, square.Rank1):
			p.CastlingRights &^= WhiteLong
		case square.New(square.FileH, square.Rank1):
			p.CastlingRights &^= WhiteShort
		case square.New(square.FileA, square.Rank8):
			p.CastlingRights &^= BlackLong
		case square.New(square.FileH, square.Rank8):
			p.CastlingRights &^= BlackShort
		}
	case square.King:
		if moved.Color == square.White {
			p.CastlingRights &^= WhiteShort | WhiteLong
		} else {
			p.CastlingRights &^= BlackShort | BlackLong
		}
	}
	// A rook captured on its home square also forfeits that side's
	// castling right, even though the rook itself never moved.
	switch capturedSquare {
	case square.New(square.FileA, square.Rank1):
		p.CastlingRights &^= WhiteLong
	case square.New(square.FileH, square.Rank1):
		p.CastlingRights &^= WhiteShort
	case square.New(square.FileA, square.Rank8):
		p.CastlingRights &^= BlackLong
	case square.New(square.FileH, square.Rank8):
		p.CastlingRights &^= BlackShort
	}

	if p.SideToMove == square.Black {
		p.FullmoveNumber++
	}
	p.SideToMove = p.SideToMove.Opposite()

	return rec
}

// Material returns the side-agnostic sum of each piece's relative value
// still on the board (kings excluded), used by IsInsufficientMaterial.
func (p *Position) Material() float64 {
	var total float64
	for k := square.Pawn; k < square.King; k++ {
		for _, c := range []square.Color{square.White, square.Black} {
			total += float64(p.Board.Bitboard(k, c).Count()) * k.Value()
		}
	}
	return total
}

// ZobristKey hashes the position for repetition detection. Table layout
// is grounded on the teacher's zobrist.go; the tables themselves are
// package-level and lazily seeded exactly once.
func (p *Position) ZobristKey() uint64 {
	initZobristOnce()

	var key uint64
	for i := 0; i < 12; i++ {
		piece := square.FromIndex(i)
		bb := p.Board.Bitboard(piece.Kind, piece.Color)
		for s := bb; s != 0; {
			key ^= zobristPieceKeys[i][s.PopLSB()]
		}
	}
	if p.EPTarget != square.NoSquare {
		key ^= zobristEPKeys[p.EPTarget]
	}
	key ^= zobristCastlingKeys[p.CastlingRights]
	if p.SideToMove == square.Black {
		key ^= zobristColorKey
	}
	return key
}
