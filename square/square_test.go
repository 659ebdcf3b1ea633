package square

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSquareRoundTrip(t *testing.T) {
	for _, s := range []string{"a1", "e4", "h8", "d5"} {
		sq, err := Parse(s)
		require.NoError(t, err)
		require.Equal(t, s, sq.String())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"-", "i1", "a9", "", "aa"} {
		_, err := Parse(s)
		require.Error(t, err)
	}
}

func TestSquareColor(t *testing.T) {
	a1, _ := Parse("a1")
	h1, _ := Parse("h1")
	require.Equal(t, Black, a1.Color())
	require.Equal(t, White, h1.Color())
}

func TestPieceIndexRoundTrip(t *testing.T) {
	for k := Pawn; k <= King; k++ {
		for _, c := range []Color{White, Black} {
			p := Piece{Kind: k, Color: c}
			require.Equal(t, p, FromIndex(p.Index()))
		}
	}
}

func TestPieceFEN(t *testing.T) {
	p, ok := PieceFromFEN('Q')
	require.True(t, ok)
	require.Equal(t, Piece{Kind: Queen, Color: White}, p)
	require.Equal(t, byte('Q'), p.FENByte())

	p, ok = PieceFromFEN('n')
	require.True(t, ok)
	require.Equal(t, Piece{Kind: Knight, Color: Black}, p)

	_, ok = PieceFromFEN('x')
	require.False(t, ok)
}

func TestOffsetOutOfRange(t *testing.T) {
	a1, _ := Parse("a1")
	require.Equal(t, NoSquare, a1.Offset(West, 1))
	require.Equal(t, NoSquare, a1.Offset(South, 1))
}
