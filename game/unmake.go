package game

import (
	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
)

// unmakeMove reverts rec's move against pos, which must be exactly the
// position rec.Move was applied to produce. Undo has no teacher
// counterpart (the teacher only ever plays moves forward); it is built
// the same way position.Position.MakeMove is, by inverting each of that
// method's field updates using the snapshot HistoryRecord carries.
func unmakeMove(pos *position.Position, rec move.HistoryRecord) {
	m := rec.Move
	from, to := m.From(), m.To()

	pos.SideToMove = pos.SideToMove.Opposite()
	if pos.SideToMove == square.Black {
		pos.FullmoveNumber--
	}

	switch m.Kind() {
	case move.Promotion:
		promoted := pos.Board.Get(to)
		pos.Board.Remove(to, promoted)
		pos.Board.Set(from, rec.Moved)
	case move.Castling:
		pos.Board.Remove(to, rec.Moved)
		pos.Board.Set(from, rec.Moved)
		rookFrom, rookTo := rookOriginAndDest(to)
		rook := pos.Board.Get(rookTo)
		pos.Board.Remove(rookTo, rook)
		pos.Board.Set(rookFrom, rook)
	default:
		pos.Board.Remove(to, rec.Moved)
		pos.Board.Set(from, rec.Moved)
	}

	if !rec.Captured.IsNone() {
		pos.Board.Set(rec.CapturedSquare, rec.Captured)
	}

	pos.CastlingRights = rec.PrevCastling
	pos.EPTarget = rec.PrevEPTarget
	pos.HalfmoveClock = rec.PrevHalfmoveCnt
}

// rookOriginAndDest mirrors position's unexported helper of the same
// name: the rook's origin and destination squares for the castling
// move landing the king on kingTo.
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
