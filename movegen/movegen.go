// Package movegen generates legal chess moves from a position.Position
// using the teacher's copy-make approach: pseudo-legal moves are
// generated first, then each is played on a scratch copy of the
// position and kept only if it doesn't leave the mover's own king in
// check.
//
// Grounded on the teacher's movegen.go (GenLegalMoves/GenChecksCounter/
// genKingMoves/genPawnMoves/genNormalMoves), rewired onto
// chesskit's bitboard attack tables and board.Board/position.Position
// types instead of the teacher's flat [15]uint64 array.
package movegen

import (
	"github.com/go-chesskit/chesskit/bitboard"
	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
)

// Generate returns every legal move available to the side to move in
// pos.
func Generate(pos position.Position) move.List {
	var legal move.List
	pseudo := genPseudoLegal(pos)

	for _, m := range pseudo.Slice() {
		scratch := pos
		scratch.MakeMove(m)
		if !scratch.Board.InCheck(pos.SideToMove) {
			legal.Push(m)
		}
	}
	return legal
}

// IsLegal reports whether m is among the legal moves generated for pos.
// Equality is by (From, To, Kind, Promotion) so a caller-built move.Move
// need not match the generator's exact packed bits.
func IsLegal(pos position.Position, m move.Move) bool {
	legal := Generate(pos)
	for _, lm := range legal.Slice() {
		if lm.From() == m.From() && lm.To() == m.To() &&
			lm.Kind() == m.Kind() && lm.Promotion() == m.Promotion() {
			return true
		}
	}
	return false
}

func genPseudoLegal(pos position.Position) move.List {
	var list move.List
	genPawnMoves(pos, &list)
	genKnightBishopRookQueenMoves(pos, &list)
	genKingMoves(pos, &list)
	return list
}

func genPawnMoves(pos position.Position, list *move.List) {
	c := pos.SideToMove
	occ := pos.Board.Occupied()
	enemies := pos.Board.Colored(c.Opposite())
	pawns := pos.Board.Bitboard(square.Pawn, c)

	dir := c.PawnDirection()
	startRank := c.StartRank()
	endRank := c.EndRank()

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		fwd := square.New(from.File(), from.Rank().Offset(dir))
		if fwd != square.NoSquare && !occ.Has(fwd) {
			pushPawnDest(list, from, fwd, endRank)
			if from.Rank() == startRank {
				dbl := square.New(from.File(), from.Rank().Offset(2*dir))
				if dbl != square.NoSquare && !occ.Has(dbl) {
					list.Push(move.New(from, dbl, move.Normal))
				}
			}
		}

		targets := bitboard.PawnAttacks(from, c) & (enemies | epBitboard(pos.EPTarget))
		for t := targets; t != 0; {
			to := t.PopLSB()
			switch {
			case to == pos.EPTarget && pos.EPTarget != square.NoSquare:
				list.Push(move.New(from, to, move.EnPassant))
			case to.Rank() == endRank:
				pushPawnDest(list, from, to, endRank)
			default:
				list.Push(move.New(from, to, move.Normal))
			}
		}
	}
}

func epBitboard(ep square.Square) bitboard.Bitboard {
	if ep == square.NoSquare {
		return 0
	}
	return bitboard.FromSquare(ep)
}

// pushPawnDest pushes a normal pawn move, or all four promotion moves if
// to lands on endRank.
func pushPawnDest(list *move.List, from, to square.Square, endRank square.Rank) {
	if to.Rank() != endRank {
		list.Push(move.New(from, to, move.Normal))
		return
	}
	for _, k := range []square.Kind{square.Knight, square.Bishop, square.Rook, square.Queen} {
		list.Push(move.NewPromotion(from, to, k))
	}
}

func genKnightBishopRookQueenMoves(pos position.Position, list *move.List) {
	c := pos.SideToMove
	occ := pos.Board.Occupied()
	allies := pos.Board.Colored(c)

	for _, k := range []square.Kind{square.Knight, square.Bishop, square.Rook, square.Queen} {
		pieces := pos.Board.Bitboard(k, c)
		for bb := pieces; bb != 0; {
			from := bb.PopLSB()
			attacks := bitboard.Attacks(k, c, from, occ) &^ allies
			for t := attacks; t != 0; {
				list.Push(move.New(from, t.PopLSB(), move.Normal))
			}
		}
	}
}

// castlingSpec describes one of the four castling moves.
type castlingSpec struct {
	right           int
	kingTo, kingFrom square.Square
	emptySquares    bitboard.Bitboard
	safeSquares     []square.Square
}

func castlingSpecs(c square.Color) []castlingSpec {
	rank := square.Rank1
	if c == square.Black {
		rank = square.Rank8
	}
	e := square.New(square.FileE, rank)
	f := square.New(square.FileF, rank)
	g := square.New(square.FileG, rank)
	d := square.New(square.FileD, rank)
	cc := square.New(square.FileC, rank)
	b := square.New(square.FileB, rank)

	shortRight, longRight := position.WhiteShort, position.WhiteLong
	if c == square.Black {
		shortRight, longRight = position.BlackShort, position.BlackLong
	}

	return []castlingSpec{
		{
			right: shortRight, kingFrom: e, kingTo: g,
			emptySquares: bitboard.FromSquare(f) | bitboard.FromSquare(g),
			safeSquares:  []square.Square{e, f, g},
		},
		{
			right: longRight, kingFrom: e, kingTo: cc,
			emptySquares: bitboard.FromSquare(d) | bitboard.FromSquare(cc) | bitboard.FromSquare(b),
			safeSquares:  []square.Square{e, d, cc},
		},
	}
}

func genKingMoves(pos position.Position, list *move.List) {
	c := pos.SideToMove
	from := pos.Board.KingSquare(c)
	allies := pos.Board.Colored(c)

	// Evaluate destination safety with the king removed from the board:
	// otherwise a slider checking the king along a ray would appear
	// blocked by the very square the king is about to vacate, and the
	// king could illegally "step back" along the check.
	withoutKing := pos.Board
	withoutKing.Remove(from, square.Piece{Kind: square.King, Color: c})

	dests := bitboard.KingAttacks(from) &^ allies
	for t := dests; t != 0; {
		to := t.PopLSB()
		if !withoutKing.IsAttacked(to, c.Opposite()) {
			list.Push(move.New(from, to, move.Normal))
		}
	}

	if pos.Board.InCheck(c) {
		return
	}
	occ := pos.Board.Occupied()
	for _, spec := range castlingSpecs(c) {
		if pos.CastlingRights&spec.right == 0 {
			continue
		}
		if occ&spec.emptySquares != 0 {
			continue
		}
		safe := true
		for _, sq := range spec.safeSquares {
			if withoutKing.IsAttacked(sq, c.Opposite()) {
				safe = false
				break
			}
		}
		if safe {
			list.Push(move.New(spec.kingFrom, spec.kingTo, move.Castling))
		}
	}
}
