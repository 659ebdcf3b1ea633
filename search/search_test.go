package search

import (
	"strings"
	"testing"

	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesSpecValues(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 1.0, cfg.PawnValue)
	require.Equal(t, 3.0, cfg.KnightValue)
	require.Equal(t, 3.25, cfg.BishopValue)
	require.Equal(t, 5.0, cfg.RookValue)
	require.Equal(t, 9.0, cfg.QueenValue)
}

func TestLoadConfigOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("depth: 2\npawn_value: 1.5\n"))
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Depth)
	require.Equal(t, 1.5, cfg.PawnValue)
	require.Equal(t, 9.0, cfg.QueenValue)
}

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	pos, err := position.FromFEN(position.Start)
	require.NoError(t, err)
	require.Equal(t, 0.0, Evaluate(DefaultConfig(), pos, 0))
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	pos, err := position.FromFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)
	require.Greater(t, Evaluate(DefaultConfig(), pos, 0), 0.0)
}

func TestEvaluateDetectsCheckmate(t *testing.T) {
	// Classic back-rank mate: Kg8 boxed in by its own pawns, Rd8 checks
	// along the back rank. h8 must be excluded by the king itself once
	// it steps off g8, so this is mate only if that exclusion is done
	// correctly.
	pos, err := position.FromFEN("3R2k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)
	score := Evaluate(DefaultConfig(), pos, 3)
	require.Less(t, score, -mate+10)
}

func TestBestMoveCapturesFreeQueen(t *testing.T) {
	pos, err := position.FromFEN("4k3/8/8/3q4/3R4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Depth = 2
	m, score := BestMove(cfg, pos)
	d5, _ := square.Parse("d5")
	require.Equal(t, d5, m.To())
	require.Greater(t, score, 0.0)
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	pos, err := position.FromFEN("6k1/5ppp/8/8/8/8/8/3R2K1 w - - 0 1")
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Depth = 3
	_, score := BestMove(cfg, pos)
	require.Greater(t, score, mate-10)
}
