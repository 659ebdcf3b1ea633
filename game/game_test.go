package game

import (
	"testing"

	"github.com/go-chesskit/chesskit/chesserr"
	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/pgn"
	"github.com/go-chesskit/chesskit/square"
	"github.com/stretchr/testify/require"
)

func TestNewGameHasStartingLegalMoveCount(t *testing.T) {
	g := New()
	require.Len(t, g.LegalMoves(), 20)
	require.Equal(t, Ongoing, g.Outcome())
}

func TestExecuteAppendsHistoryAndAdvancesTurn(t *testing.T) {
	g := New()
	e2, _ := square.Parse("e2")
	e4, _ := square.Parse("e4")
	san, err := g.Execute(move.New(e2, e4, move.Normal))
	require.NoError(t, err)
	require.Equal(t, "e4", san)
	require.Equal(t, square.Black, g.Position().SideToMove)
	require.Len(t, g.History(), 1)
}

func TestExecuteRejectsIllegalMove(t *testing.T) {
	g := New()
	e2, _ := square.Parse("e2")
	e5, _ := square.Parse("e5")
	_, err := g.Execute(move.New(e2, e5, move.Normal))
	require.Error(t, err)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	g := New()
	e2, _ := square.Parse("e2")
	e4, _ := square.Parse("e4")
	fenBefore := g.FEN()

	_, err := g.Execute(move.New(e2, e4, move.Normal))
	require.NoError(t, err)
	fenAfter := g.FEN()

	require.NoError(t, g.Undo())
	require.Equal(t, fenBefore, g.FEN())
	require.Error(t, g.Undo())

	require.NoError(t, g.Redo())
	require.Equal(t, fenAfter, g.FEN())
	require.Error(t, g.Redo())
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	g := New()
	for _, lan := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		from, _ := square.Parse(lan[:2])
		to, _ := square.Parse(lan[2:])
		var mv move.Move
		for _, cand := range g.LegalMoves() {
			if cand.From() == from && cand.To() == to {
				mv = cand
				break
			}
		}
		_, err := g.Execute(mv)
		require.NoError(t, err)
	}
	require.True(t, g.IsCheckmate())
	require.True(t, g.IsFinished())
	require.Equal(t, BlackWins, g.Outcome())
}

func TestInsufficientMaterialBareKings(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, g.IsInsufficientMaterial())
	require.Equal(t, DrawInsufficientMaterial, g.Outcome())
}

func TestFiftyMoveRuleIsClaimableNotAutomatic(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 99 60")
	require.NoError(t, err)
	a1, _ := square.Parse("a1")
	a2, _ := square.Parse("a2")
	_, err = g.Execute(move.New(a1, a2, move.Normal))
	require.NoError(t, err)
	require.True(t, g.IsFiftyMoveRule())
	require.False(t, g.IsFinished())
	require.True(t, g.ClaimDraw())
	require.Equal(t, DrawFiftyMove, g.Outcome())
}

func TestExecutePromotingMoveWithoutChoiceRequiresOne(t *testing.T) {
	g, err := FromFEN("7k/P7/8/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)
	a7, _ := square.Parse("a7")
	a8, _ := square.Parse("a8")

	_, err = g.Execute(move.New(a7, a8, move.Normal))
	require.ErrorIs(t, err, chesserr.New(chesserr.PromotionRequired))

	san, err := g.ExecutePromotion(move.New(a7, a8, move.Normal), square.Queen)
	require.NoError(t, err)
	require.Equal(t, "a8=Q+", san)
	require.Equal(t, square.Queen, g.Position().Board.Get(a8).Kind)
	require.True(t, g.Position().Board.Get(a7).IsNone())
}

func TestExecutePromotionRejectsPawnOrKingChoice(t *testing.T) {
	g, err := FromFEN("7k/P7/8/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)
	a7, _ := square.Parse("a7")
	a8, _ := square.Parse("a8")

	_, err = g.ExecutePromotion(move.New(a7, a8, move.Normal), square.Pawn)
	require.ErrorIs(t, err, chesserr.New(chesserr.InvalidPromotion))

	_, err = g.ExecutePromotion(move.New(a7, a8, move.Normal), square.King)
	require.ErrorIs(t, err, chesserr.New(chesserr.InvalidPromotion))
}

func TestExecuteWithChoiceOnlyInvokedForPromotions(t *testing.T) {
	g := New()
	e2, _ := square.Parse("e2")
	e4, _ := square.Parse("e4")
	called := false
	_, err := g.ExecuteWithChoice(move.New(e2, e4, move.Normal), func() square.Kind {
		called = true
		return square.Queen
	})
	require.NoError(t, err)
	require.False(t, called)

	g2, err := FromFEN("7k/P7/8/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)
	a7, _ := square.Parse("a7")
	a8, _ := square.Parse("a8")
	_, err = g2.ExecuteWithChoice(move.New(a7, a8, move.Normal), func() square.Kind {
		called = true
		return square.Rook
	})
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, square.Rook, g2.Position().Board.Get(a8).Kind)
}

func TestPGNSerializesTagsAndMoveListAndRoundTrips(t *testing.T) {
	g := New()
	g.SetTag("Event", "Casual Game")
	g.SetTag("White", "Alice")
	g.SetTag("Black", "Bob")

	for _, lan := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		from, _ := square.Parse(lan[:2])
		to, _ := square.Parse(lan[2:])
		var mv move.Move
		for _, cand := range g.LegalMoves() {
			if cand.From() == from && cand.To() == to {
				mv = cand
				break
			}
		}
		_, err := g.Execute(mv)
		require.NoError(t, err)
	}

	out := g.PGN()
	require.Contains(t, out, `[Event "Casual Game"]`)
	require.Contains(t, out, "*")

	mt, err := pgn.ParseMovetext(out)
	require.NoError(t, err)
	require.Equal(t, pgn.ResultUndecided, mt.Result)
	require.Len(t, mt.Moves, len(g.History()))
	for i, rec := range g.History() {
		require.Equal(t, rec.SAN, mt.Moves[i].San)
	}
}

func TestResignAndAgreeDraw(t *testing.T) {
	g := New()
	g.Resign(square.White)
	require.Equal(t, BlackWins, g.Outcome())

	g2 := New()
	g2.AgreeDraw()
	require.Equal(t, DrawAgreement, g2.Outcome())
}
