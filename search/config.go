package search

import (
	"io"

	"github.com/go-chesskit/chesskit/square"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of the evaluator and search: one
// relative value per piece kind and the default search depth. Piece
// values default to spec.md's table (P=1, N=3, B=3.25, R=5, Q=9) so a
// caller that never loads a config still gets sane play.
type Config struct {
	PawnValue   float64 `yaml:"pawn_value"`
	KnightValue float64 `yaml:"knight_value"`
	BishopValue float64 `yaml:"bishop_value"`
	RookValue   float64 `yaml:"rook_value"`
	QueenValue  float64 `yaml:"queen_value"`
	Depth       int     `yaml:"depth"`
}

// DefaultConfig returns the relative piece values from square.Kind.Value
// and a shallow default search depth suitable for a synchronous caller.
func DefaultConfig() Config {
	return Config{
		PawnValue:   square.Pawn.Value(),
		KnightValue: square.Knight.Value(),
		BishopValue: square.Bishop.Value(),
		RookValue:   square.Rook.Value(),
		QueenValue:  square.Queen.Value(),
		Depth:       4,
	}
}

// LoadConfig decodes a Config from YAML, filling any field the document
// omits with the matching DefaultConfig value.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) valueOf(k square.Kind) float64 {
	switch k {
	case square.Pawn:
		return c.PawnValue
	case square.Knight:
		return c.KnightValue
	case square.Bishop:
		return c.BishopValue
	case square.Rook:
		return c.RookValue
	case square.Queen:
		return c.QueenValue
	default:
		return 0
	}
}
