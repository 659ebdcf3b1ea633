// Package search implements a material evaluator and a fixed-depth
// alpha-beta minimax over movegen.Generate, grounded on the general
// alpha-beta idiom since the teacher repo ships move generation and a
// perft harness but no search of its own.
package search

import (
	"math"

	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/movegen"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
)

// mate is a score magnitude well above any reachable material score, so
// a forced mate always outranks even a total material sweep.
const mate = 100000.0

// Evaluate scores pos from White's perspective: positive favors White,
// negative favors Black. A side with no legal moves is either mated
// (scored as a loss at the given ply, preferring shorter mates) or
// stalemated (scored flat as a draw).
func Evaluate(cfg Config, pos position.Position, ply int) float64 {
	legal := movegen.Generate(pos)
	if legal.Len == 0 {
		if pos.Board.InCheck(pos.SideToMove) {
			if pos.SideToMove == square.White {
				return -mate + float64(ply)
			}
			return mate - float64(ply)
		}
		return 0
	}

	var score float64
	for k := square.Pawn; k <= square.Queen; k++ {
		v := cfg.valueOf(k)
		score += v * float64(pos.Board.Bitboard(k, square.White).Count())
		score -= v * float64(pos.Board.Bitboard(k, square.Black).Count())
	}
	return score
}

// BestMove runs a fixed-depth alpha-beta search from pos and returns the
// move the side to move should play along with its score (from White's
// perspective). Len(legal)==0 returns the zero Move; callers should
// check legal moves themselves before calling BestMove on a finished
// game.
func BestMove(cfg Config, pos position.Position) (move.Move, float64) {
	legal := movegen.Generate(pos)
	if legal.Len == 0 {
		return move.Move(0), Evaluate(cfg, pos, 0)
	}

	maximizing := pos.SideToMove == square.White
	best := legal.Slice()[0]
	bestScore := math.Inf(-1)
	if !maximizing {
		bestScore = math.Inf(1)
	}

	alpha, beta := math.Inf(-1), math.Inf(1)
	for _, m := range legal.Slice() {
		child := pos
		child.MakeMove(m)
		score := minimax(cfg, child, cfg.Depth-1, 1, alpha, beta, !maximizing)

		if maximizing && score > bestScore {
			bestScore, best = score, m
		}
		if !maximizing && score < bestScore {
			bestScore, best = score, m
		}
		if maximizing {
			alpha = math.Max(alpha, bestScore)
		} else {
			beta = math.Min(beta, bestScore)
		}
		if beta <= alpha {
			break
		}
	}
	return best, bestScore
}

// minimax is the recursive alpha-beta workhorse. maximizing reports
// whether the node being scored favors White (true) or Black (false).
func minimax(cfg Config, pos position.Position, depth, ply int, alpha, beta float64, maximizing bool) float64 {
	legal := movegen.Generate(pos)
	if depth == 0 || legal.Len == 0 {
		return Evaluate(cfg, pos, ply)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, m := range legal.Slice() {
			child := pos
			child.MakeMove(m)
			score := minimax(cfg, child, depth-1, ply+1, alpha, beta, false)
			best = math.Max(best, score)
			alpha = math.Max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, m := range legal.Slice() {
		child := pos
		child.MakeMove(m)
		score := minimax(cfg, child, depth-1, ply+1, alpha, beta, true)
		best = math.Min(best, score)
		beta = math.Min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
