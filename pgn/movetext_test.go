package pgn

import (
	"testing"

	"github.com/go-chesskit/chesskit/square"
	"github.com/stretchr/testify/require"
)

const samplePGN = `[Event "Test Game"]
[Site "?"]
[Date "2024.01.01"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 {a classical opening} 2. Nf3 Nc6 (2... Nf6 3. Nxe5) 3. Bb5 $1 a6 1-0`

func TestParseMovetextTags(t *testing.T) {
	mt, err := ParseMovetext(samplePGN)
	require.NoError(t, err)
	v, ok := Get(mt.Tags, "White")
	require.True(t, ok)
	require.Equal(t, "Alice", v)
	require.Equal(t, ResultWhiteWins, mt.Result)
}

func TestParseMovetextMainline(t *testing.T) {
	mt, err := ParseMovetext(samplePGN)
	require.NoError(t, err)
	require.Len(t, mt.Moves, 6)
	require.Equal(t, "e4", mt.Moves[0].San)
	require.Equal(t, "e5", mt.Moves[1].San)
	require.Equal(t, 1, mt.Moves[0].Number)
	require.Equal(t, "e5", mt.Moves[1].San)
}

func TestParseMovetextMoveNumberAndSide(t *testing.T) {
	mt, err := ParseMovetext(samplePGN)
	require.NoError(t, err)
	require.Equal(t, 1, mt.Moves[0].Number)
	require.Equal(t, square.White, mt.Moves[0].Side)
	require.Equal(t, 1, mt.Moves[1].Number)
	require.Equal(t, square.Black, mt.Moves[1].Side)
	require.Equal(t, 2, mt.Moves[2].Number)
	require.Equal(t, square.White, mt.Moves[2].Side)
}

func TestParseMovetextComment(t *testing.T) {
	mt, err := ParseMovetext(samplePGN)
	require.NoError(t, err)
	require.Contains(t, mt.Moves[1].CommentsAfter, "a classical opening")
}

func TestParseMovetextNAG(t *testing.T) {
	mt, err := ParseMovetext(samplePGN)
	require.NoError(t, err)
	require.Contains(t, mt.Moves[4].NAGs, 1)
}

func TestParseMovetextVariation(t *testing.T) {
	mt, err := ParseMovetext(samplePGN)
	require.NoError(t, err)
	require.Len(t, mt.Moves[3].Variations, 1)
	variation := mt.Moves[3].Variations[0]
	require.Len(t, variation.Moves, 2)
	require.Equal(t, "Nf6", variation.Moves[0].San)
	require.Equal(t, "Nxe5", variation.Moves[1].San)
}

func TestParseMovetextLeadingCommentIsNotDropped(t *testing.T) {
	mt, err := ParseMovetext("1. {game start} e4 e5")
	require.NoError(t, err)
	require.Contains(t, mt.LeadingComments, "game start")
	require.Len(t, mt.Moves, 2)
	require.Empty(t, mt.Moves[0].CommentsBefore)
}

func TestParseMovetextTrailingCommentAfterLastMove(t *testing.T) {
	mt, err := ParseMovetext("1. e4 e5 2. Nf3 {developing}")
	require.NoError(t, err)
	require.Contains(t, mt.Moves[2].CommentsAfter, "developing")
}

func TestParseMovetextLeadingVariation(t *testing.T) {
	mt, err := ParseMovetext("(1. d4 d5) 1. e4 e5")
	require.NoError(t, err)
	require.Len(t, mt.LeadingVariations, 1)
	require.Equal(t, "d4", mt.LeadingVariations[0].Moves[0].San)
	require.Len(t, mt.Moves, 2)
}

func TestParseMovetextKeepsFirstResultMarker(t *testing.T) {
	mt, err := ParseMovetext("1. e4 e5 1-0 2. Nf3 1/2-1/2")
	require.NoError(t, err)
	require.Equal(t, ResultWhiteWins, mt.Result)
	require.NotEmpty(t, mt.Diagnostics)
}

func TestParseMovetextDrawnGameWithVariation(t *testing.T) {
	mt, err := ParseMovetext("1. e4 e5 2. Nf3 (2. Nc3 Nc6) Nc6 3. Bb5 a6 1/2-1/2")
	require.NoError(t, err)
	require.Equal(t, ResultDraw, mt.Result)
	require.Len(t, mt.Moves, 6)
	require.Len(t, mt.Moves[2].Variations, 1)
	require.Len(t, mt.Moves[2].Variations[0].Moves, 2)
}

func TestParseMovetextUnclosedBrace(t *testing.T) {
	mt, err := ParseMovetext("1. e4 {unterminated")
	require.NoError(t, err)
	require.NotEmpty(t, mt.Diagnostics)
	require.Len(t, mt.Moves, 1)
}

func TestParseMovetextUnmatchedParen(t *testing.T) {
	mt, err := ParseMovetext("1. e4 (e5")
	require.NoError(t, err)
	require.NotEmpty(t, mt.Diagnostics)
	require.Len(t, mt.Moves, 1)
}

func TestParseMovetextRecoversFromBadToken(t *testing.T) {
	mt, err := ParseMovetext("1. e4 Zz9 e5")
	require.NoError(t, err)
	require.NotEmpty(t, mt.Diagnostics)
	require.Len(t, mt.Moves, 2)
}

func TestParseFormatParseRoundTrip(t *testing.T) {
	mt, err := ParseMovetext(samplePGN)
	require.NoError(t, err)

	reparsed, err := ParseMovetext(FormatGame(mt))
	require.NoError(t, err)

	require.Equal(t, mt.Result, reparsed.Result)
	require.Len(t, reparsed.Moves, len(mt.Moves))
	for i, mv := range mt.Moves {
		require.Equal(t, mv.San, reparsed.Moves[i].San)
		require.Equal(t, mv.Number, reparsed.Moves[i].Number)
		require.Equal(t, mv.Side, reparsed.Moves[i].Side)
	}
	require.Len(t, reparsed.Moves[3].Variations, 1)
	require.Equal(t, mt.Moves[3].Variations[0].Moves[0].San, reparsed.Moves[3].Variations[0].Moves[0].San)

	v, ok := Get(reparsed.Tags, "White")
	require.True(t, ok)
	require.Equal(t, "Alice", v)
}

func TestFormatTagsOrdersSevenTagRosterFirst(t *testing.T) {
	tags := []Tag{{Key: "Result", Value: "1-0"}, {Key: "Event", Value: "Test"}}
	out := FormatTags(tags)
	require.True(t, indexOf(out, "Event") < indexOf(out, "Result"))
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
