package pgn

import (
	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/movegen"
	"github.com/go-chesskit/chesskit/position"
)

func legalMovesOf(pos position.Position) move.List { return movegen.Generate(pos) }

func isCaptureOf(pos position.Position, m move.Move) bool {
	return !pos.Board.Get(m.To()).IsNone() || m.Kind() == move.EnPassant
}
