package movegen

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
)

func perft(pos position.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	nodes := 0
	legal := Generate(pos)
	for _, m := range legal.Slice() {
		next := pos
		next.MakeMove(m)
		nodes += perft(next, depth-1)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	pos, err := position.FromFEN(position.Start)
	require.NoError(t, err)

	require.Equal(t, 20, perft(pos, 1))
	require.Equal(t, 400, perft(pos, 2))
	require.Equal(t, 8902, perft(pos, 3))
}

func TestPerftStartingPositionDepthFour(t *testing.T) {
	pos, err := position.FromFEN(position.Start)
	require.NoError(t, err)
	require.Equal(t, 197281, perft(pos, 4))
}

func TestGenerateIncludesCastling(t *testing.T) {
	pos, err := position.FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	legal := Generate(pos)
	moves := legal.Slice()
	var sawShort, sawLong bool
	e1, _ := square.Parse("e1")
	g1, _ := square.Parse("g1")
	c1, _ := square.Parse("c1")
	for _, m := range moves {
		if m.From() == e1 && m.To() == g1 {
			sawShort = true
		}
		if m.From() == e1 && m.To() == c1 {
			sawLong = true
		}
	}
	require.True(t, sawShort)
	require.True(t, sawLong)
}

func TestGenerateExcludesCastlingThroughCheck(t *testing.T) {
	// Black rook on f8 attacks f1, which king must pass through for O-O.
	pos, err := position.FromFEN("5r1k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	legal := Generate(pos)
	moves := legal.Slice()
	e1, _ := square.Parse("e1")
	g1, _ := square.Parse("g1")
	for _, m := range moves {
		require.False(t, m.From() == e1 && m.To() == g1, "castling through attacked square must be illegal")
	}
}

func TestGeneratePinnedPieceCannotMove(t *testing.T) {
	pos, err := position.FromFEN("4r3/8/8/8/4N3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	e4, _ := square.Parse("e4")
	legal := Generate(pos)
	for _, m := range legal.Slice() {
		require.NotEqual(t, e4, m.From(), "pinned knight must have no legal moves")
	}
}

func TestGenerateKingCannotStepBackAlongCheckRay(t *testing.T) {
	// Black rook on e8 checks the white king on e4 along the open
	// e-file. e3 lies on the same ray, beyond the king as seen from the
	// rook: it must stay illegal. A move generator that forgets to
	// remove the king from occupancy before testing king-move safety
	// would wrongly think the rook's ray stops at e4 and call e3 safe.
	pos, err := position.FromFEN("4r3/8/8/8/4K3/8/8/8 w - - 0 1")
	require.NoError(t, err)
	e4, _ := square.Parse("e4")
	e3, _ := square.Parse("e3")
	legal := Generate(pos)
	for _, m := range legal.Slice() {
		if m.From() == e4 {
			require.NotEqual(t, e3, m.To(), "king must not step back along the checking ray")
		}
	}
}
