package position

import (
	"math/rand/v2"
	"sync"
)

// Zobrist key tables, grounded on the teacher's zobrist.go. The teacher
// seeds these in an explicit InitZobristKeys the caller must remember to
// invoke; here they are seeded lazily behind sync.Once so ZobristKey
// works correctly with no setup call, matching the rest of the package's
// "publish once, read forever" lazy-init style (bitboard.Init).
var (
	zobristOnce         sync.Once
	zobristPieceKeys    [12][64]uint64
	zobristEPKeys       [64]uint64
	zobristCastlingKeys [16]uint64
	zobristColorKey     uint64
)

func initZobristOnce() { zobristOnce.Do(seedZobristKeys) }

func seedZobristKeys() {
	for i := range zobristPieceKeys {
		for sq := range zobristPieceKeys[i] {
			zobristPieceKeys[i][sq] = rand.Uint64()
		}
	}
	for sq := range zobristEPKeys {
		zobristEPKeys[sq] = rand.Uint64()
	}
	for i := range zobristCastlingKeys {
		zobristCastlingKeys[i] = rand.Uint64()
	}
	zobristColorKey = rand.Uint64()
}
