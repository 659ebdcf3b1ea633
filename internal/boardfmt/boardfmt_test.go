package boardfmt

import (
	"strings"
	"testing"

	"github.com/go-chesskit/chesskit/board"
	"github.com/stretchr/testify/require"
)

func TestFormatStartingPosition(t *testing.T) {
	b, err := board.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	require.NoError(t, err)
	out := Format(b)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	require.True(t, strings.HasPrefix(lines[0], "8  "))
	require.Contains(t, lines[0], "r")
	require.True(t, strings.HasPrefix(lines[7], "1  "))
	require.Contains(t, lines[7], "R")
	require.Equal(t, "   a  b  c  d  e  f  g  h", lines[8])
}

func TestFormatEmptySquareIsDot(t *testing.T) {
	b, err := board.FromFEN("8/8/8/8/8/8/8/8")
	require.NoError(t, err)
	out := Format(b)
	require.NotContains(t, out, "P")
	require.Contains(t, out, ".")
}
