// Package game implements the chess state machine: applying moves,
// undoing/redoing them, and resolving the game's outcome (checkmate,
// stalemate, insufficient material, and the queryable-not-automatic
// fifty-move/threefold-repetition draws).
//
// Grounded on the teacher's game.go (Game, PushMove, IsThreefoldRepetition,
// IsInsufficientMaterial, IsCheckmate, IsMoveLegal) and repetition.go,
// generalized onto position.Position/movegen.Generate and given an
// explicit undo/redo history stack the teacher didn't have (the teacher
// only ever applies moves forward).
package game

import (
	"github.com/go-chesskit/chesskit/chesserr"
	"github.com/go-chesskit/chesskit/internal/chesslog"
	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/movegen"
	"github.com/go-chesskit/chesskit/pgn"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
	"go.uber.org/zap"
)

// SetLogger replaces the logger Game uses for non-fatal diagnostics
// (irreversible-move repetition-table resets). Passing nil restores the
// default no-op logger.
func SetLogger(l *zap.Logger) { chesslog.SetLogger(l) }

// Outcome is the resolved result of a finished game, or Ongoing.
type Outcome int

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	DrawStalemate
	DrawInsufficientMaterial
	DrawFiftyMove
	DrawThreefoldRepetition
	DrawAgreement
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "Ongoing"
	case WhiteWins:
		return "WhiteWins"
	case BlackWins:
		return "BlackWins"
	case DrawStalemate:
		return "DrawStalemate"
	case DrawInsufficientMaterial:
		return "DrawInsufficientMaterial"
	case DrawFiftyMove:
		return "DrawFiftyMove"
	case DrawThreefoldRepetition:
		return "DrawThreefoldRepetition"
	case DrawAgreement:
		return "DrawAgreement"
	default:
		return "Unknown"
	}
}

// Game is a chess game's mutable state machine: the current position,
// its legal moves, and a navigable history.
type Game struct {
	pos         position.Position
	legalMoves  move.List
	history     []move.HistoryRecord
	redo        []move.Move
	repetitions map[uint64]int
	outcome     Outcome
	tags        []pgn.Tag
}

// New starts a Game from the standard starting position.
func New() *Game {
	g, _ := FromFEN(position.Start)
	return g
}

// FromFEN starts a Game from an arbitrary FEN position.
func FromFEN(fen string) (*Game, error) {
	pos, err := position.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{
		pos:         pos,
		repetitions: make(map[uint64]int, 1),
	}
	g.legalMoves = movegen.Generate(g.pos)
	g.repetitions[g.pos.ZobristKey()] = 1
	g.resolveOutcome()
	return g, nil
}

// Position returns the current position.
func (g *Game) Position() position.Position { return g.pos }

// FEN returns the current position's FEN string.
func (g *Game) FEN() string { return g.pos.FEN() }

// LegalMoves returns every legal move in the current position.
func (g *Game) LegalMoves() []move.Move { return g.legalMoves.Slice() }

// MovesForPiece returns the legal moves whose origin square is sq.
func (g *Game) MovesForPiece(sq square.Square) []move.Move {
	var out []move.Move
	for _, m := range g.legalMoves.Slice() {
		if m.From() == sq {
			out = append(out, m)
		}
	}
	return out
}

// IsMoveLegal reports whether m matches a move in the current legal set,
// promotion kind included. Use candidatesFor to resolve a move by its
// {from, to} square pair alone, ignoring any promotion kind the caller
// may (or may not) have attached.
func (g *Game) IsMoveLegal(m move.Move) bool {
	for _, lm := range g.legalMoves.Slice() {
		if lm.From() == m.From() && lm.To() == m.To() &&
			lm.Kind() == m.Kind() && lm.Promotion() == m.Promotion() {
			return true
		}
	}
	return false
}

// candidatesFor returns every legal move sharing m's {from, to} square
// pair. A plain move has exactly one candidate; a promoting move has
// one candidate per promotable piece kind, since a move's identity is
// its origin and destination square — the promotion choice is supplied
// separately at execution time, not baked into the move itself.
func (g *Game) candidatesFor(m move.Move) []move.Move {
	var out []move.Move
	for _, lm := range g.legalMoves.Slice() {
		if lm.From() == m.From() && lm.To() == m.To() {
			out = append(out, lm)
		}
	}
	return out
}

// Execute applies m, returning its Standard Algebraic Notation. Only
// m's {from, to} square pair is consulted — any Type/promotion kind m
// itself carries is ignored. It fails with chesserr.IllegalMove if no
// legal move shares that square pair, or chesserr.PromotionRequired if
// the matching move is a promotion, since a promotion choice can only
// be supplied via ExecutePromotion or ExecuteWithChoice.
func (g *Game) Execute(m move.Move) (string, error) {
	candidates := g.candidatesFor(m)
	if len(candidates) == 0 {
		return "", chesserr.New(chesserr.IllegalMove)
	}
	if candidates[0].IsPromotion() {
		return "", chesserr.New(chesserr.PromotionRequired)
	}
	return g.executeUnchecked(candidates[0]), nil
}

// ExecutePromotion applies the move matching m's {from, to} square pair,
// promoting to the given kind. It fails with chesserr.InvalidPromotion
// if promotion is square.Pawn or square.King (checked before the move is
// looked up, so this holds for a non-promoting move too), and with
// chesserr.IllegalMove if no legal move shares that square pair (or, for
// a promoting move, none promotes to the requested kind). Otherwise a
// non-promoting match ignores promotion and applies as-is.
func (g *Game) ExecutePromotion(m move.Move, promotion square.Kind) (string, error) {
	if promotion == square.Pawn || promotion == square.King {
		return "", chesserr.New(chesserr.InvalidPromotion)
	}
	candidates := g.candidatesFor(m)
	if len(candidates) == 0 {
		return "", chesserr.New(chesserr.IllegalMove)
	}
	if !candidates[0].IsPromotion() {
		return g.executeUnchecked(candidates[0]), nil
	}
	for _, c := range candidates {
		if c.Promotion() == promotion {
			return g.executeUnchecked(c), nil
		}
	}
	return "", chesserr.New(chesserr.IllegalMove)
}

// ExecuteWithChoice applies the move matching m's {from, to} square
// pair, calling choose for the promotion kind only if that move is
// actually a promotion. It shares ExecutePromotion's error conditions.
func (g *Game) ExecuteWithChoice(m move.Move, choose func() square.Kind) (string, error) {
	candidates := g.candidatesFor(m)
	if len(candidates) == 0 {
		return "", chesserr.New(chesserr.IllegalMove)
	}
	if !candidates[0].IsPromotion() {
		return g.executeUnchecked(candidates[0]), nil
	}
	return g.ExecutePromotion(m, choose())
}

// ExecuteUnchecked applies m without validating legality, for callers
// that have already resolved a move against the legal set themselves.
func (g *Game) ExecuteUnchecked(m move.Move) string {
	return g.executeUnchecked(m)
}

func (g *Game) executeUnchecked(m move.Move) string {
	moved := g.pos.Board.Get(m.From())
	captured := g.pos.Board.Get(m.To())
	isCapture := !captured.IsNone() || m.Kind() == move.EnPassant

	san := pgn.Move2SAN(m, g.pos, g.legalMoves, moved, isCapture)

	rec := g.pos.MakeMove(m)
	rec.SAN = san
	g.history = append(g.history, rec)
	g.redo = g.redo[:0]

	g.legalMoves = movegen.Generate(g.pos)

	// Irreversible moves (captures, pawn moves, castling, promotion)
	// make every earlier position unreachable again, so their
	// repetition counts can never recur: clear the table rather than
	// let it grow across the whole game.
	if isCapture || m.Kind() == move.Castling || m.Kind() == move.Promotion || moved.Kind == square.Pawn {
		chesslog.L().Debug("resetting repetition table after irreversible move", zap.String("san", san))
		clear(g.repetitions)
	}
	g.repetitions[g.pos.ZobristKey()]++

	g.resolveOutcome()
	return san
}

// Undo reverts the most recently applied move. It fails with
// chesserr.NoMoveToUndo if there is no move to undo.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return chesserr.New(chesserr.NoMoveToUndo)
	}
	rec := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.redo = append(g.redo, rec.Move)

	g.repetitions[g.pos.ZobristKey()]--
	unmakeMove(&g.pos, rec)

	g.legalMoves = movegen.Generate(g.pos)
	g.resolveOutcome()
	return nil
}

// Redo re-applies the most recently undone move. It fails with
// chesserr.NoMoveToRedo if there is no move to redo.
func (g *Game) Redo() error {
	if len(g.redo) == 0 {
		return chesserr.New(chesserr.NoMoveToRedo)
	}
	m := g.redo[len(g.redo)-1]
	rest := g.redo[:len(g.redo)-1]
	// executeUnchecked empties the redo stack, as any new move must;
	// restore the remaining undone moves so they can still be redone.
	g.executeUnchecked(m)
	g.redo = rest
	return nil
}

// History returns every applied move's record, oldest first.
func (g *Game) History() []move.HistoryRecord { return g.history }

// Tags returns the game's PGN tag pairs.
func (g *Game) Tags() []pgn.Tag { return g.tags }

// SetTag sets (replacing any existing value) a PGN tag pair on the
// game, to be included by PGN.
func (g *Game) SetTag(key, value string) {
	for i, t := range g.tags {
		if t.Key == key {
			g.tags[i].Value = value
			return
		}
	}
	g.tags = append(g.tags, pgn.Tag{Key: key, Value: value})
}

// PGN serializes the game as a complete PGN document: its tag pairs
// and the current move list, numbered and rendered in Standard
// Algebraic Notation, ending in the result token its outcome maps to
// (or "*" while still ongoing).
func (g *Game) PGN() string {
	moves := make([]*pgn.MoveNode, len(g.history))
	for i, rec := range g.history {
		side := square.White
		if i%2 == 1 {
			side = square.Black
		}
		moves[i] = &pgn.MoveNode{
			Number: i/2 + 1,
			Side:   side,
			San:    rec.SAN,
		}
	}
	mt := &pgn.Movetext{Tags: g.tags, Moves: moves, Result: g.resultToken()}
	return pgn.FormatGame(mt)
}

func (g *Game) resultToken() pgn.Result {
	switch g.outcome {
	case WhiteWins:
		return pgn.ResultWhiteWins
	case BlackWins:
		return pgn.ResultBlackWins
	case DrawStalemate, DrawInsufficientMaterial, DrawFiftyMove, DrawThreefoldRepetition, DrawAgreement:
		return pgn.ResultDraw
	default:
		return pgn.ResultUndecided
	}
}

// IsCheckmate reports whether the side to move has no legal moves and
// is in check.
func (g *Game) IsCheckmate() bool {
	return g.legalMoves.Len == 0 && g.pos.Board.InCheck(g.pos.SideToMove)
}

// IsStalemate reports whether the side to move has no legal moves and
// is not in check.
func (g *Game) IsStalemate() bool {
	return g.legalMoves.Len == 0 && !g.pos.Board.InCheck(g.pos.SideToMove)
}

// IsInsufficientMaterial reports whether neither side has enough force
// remaining to deliver checkmate by any sequence of legal moves: bare
// kings, king+minor vs bare king, or one bishop per side on
// same-colored squares. A knight on each side is not treated as
// insufficient.
func (g *Game) IsInsufficientMaterial() bool {
	const darkSquares = 0xAA55AA55AA55AA55
	material := g.pos.Material()

	hasPawns := g.pos.Board.Bitboard(square.Pawn, square.White) != 0 ||
		g.pos.Board.Bitboard(square.Pawn, square.Black) != 0

	if material == 0 || ((material == 3 || material == 3.25) && !hasPawns) {
		return true
	}
	if material == 6.5 {
		wb := g.pos.Board.Bitboard(square.Bishop, square.White)
		bb := g.pos.Board.Bitboard(square.Bishop, square.Black)
		if wb != 0 && bb != 0 {
			wDark := uint64(wb)&darkSquares != 0
			bDark := uint64(bb)&darkSquares != 0
			if wDark == bDark {
				return true
			}
		}
		wn := g.pos.Board.Bitboard(square.Knight, square.White)
		bn := g.pos.Board.Bitboard(square.Knight, square.Black)
		if wn != 0 && bn != 0 {
			return true
		}
	}
	return false
}

// IsThreefoldRepetition reports whether the current Zobrist-keyed
// position has occurred three or more times since the last irreversible
// move.
func (g *Game) IsThreefoldRepetition() bool {
	return g.repetitions[g.pos.ZobristKey()] >= 3
}

// IsFiftyMoveRule reports whether the halfmove clock has reached 100
// (fifty full moves without a capture or pawn move).
func (g *Game) IsFiftyMoveRule() bool {
	return g.pos.HalfmoveClock >= 100
}

// IsFinished reports whether the game has reached a terminal outcome.
// Threefold repetition and the fifty-move rule are claimable draws, not
// automatic ones, so they never make IsFinished true on their own; call
// ClaimDraw to opt into them.
func (g *Game) IsFinished() bool { return g.outcome != Ongoing }

// Outcome returns the game's resolved result, or Ongoing.
func (g *Game) Outcome() Outcome { return g.outcome }

// ClaimDraw checks the claimable draw conditions (fifty-move rule,
// threefold repetition) and, if either holds, transitions the game to
// that draw outcome and returns true. It is a no-op returning false
// otherwise.
func (g *Game) ClaimDraw() bool {
	switch {
	case g.IsThreefoldRepetition():
		g.outcome = DrawThreefoldRepetition
	case g.IsFiftyMoveRule():
		g.outcome = DrawFiftyMove
	default:
		return false
	}
	return true
}

// Resign ends the game with the opposite side winning by resignation.
func (g *Game) Resign(side square.Color) {
	if side == square.White {
		g.outcome = BlackWins
	} else {
		g.outcome = WhiteWins
	}
}

// AgreeDraw ends the game as a draw by agreement.
func (g *Game) AgreeDraw() { g.outcome = DrawAgreement }

func (g *Game) resolveOutcome() {
	switch {
	case g.IsCheckmate():
		if g.pos.SideToMove == square.White {
			g.outcome = BlackWins
		} else {
			g.outcome = WhiteWins
		}
	case g.IsStalemate():
		g.outcome = DrawStalemate
	case g.IsInsufficientMaterial():
		g.outcome = DrawInsufficientMaterial
	default:
		g.outcome = Ongoing
	}
}
