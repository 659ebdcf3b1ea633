package pgn

import "github.com/go-chesskit/chesskit/move"

// Move2LAN encodes m in long algebraic notation, e.g. "e2e4", "e7e5",
// "e1g1" (white short castling), "e7e8q" (promotion). Grounded on the
// teacher's Move2UCI; chesskit exposes the same format under the PGN
// "Long Algebraic Notation" name spec.md §6 uses for it.
func Move2LAN(m move.Move) string { return m.String() }
