/*
Package bitboard implements the 64-bit occupancy sets chesskit's move
generator is built on, along with the precomputed attack, between- and
line-tables described in spec.md §4.1.

The bit tricks (popLSB via De Bruijn-style multiply, magic-bitboard sliding
attacks, edge-masked shifts) are carried over from the teacher repo's
bitutil.go/movegen.go/init.go, reconciled into a single sync.Once-guarded
lazy initializer as spec.md §5/§9 require ("publish once, read forever").
*/
package bitboard

import "github.com/go-chesskit/chesskit/square"

// Bitboard is a 64-bit set of squares, bit i representing square i.
type Bitboard uint64

// Full is the bitboard with every square set.
const Full Bitboard = 0xFFFFFFFFFFFFFFFF

// Edge-masking constants, ported from the teacher's movegen.go.
const (
	notAFile   Bitboard = 0xFEFEFEFEFEFEFEFE
	notHFile   Bitboard = 0x7F7F7F7F7F7F7F7F
	notABFile  Bitboard = 0xFCFCFCFCFCFCFCFC
	notGHFile  Bitboard = 0x3F3F3F3F3F3F3F3F
	not1stRank Bitboard = 0xFFFFFFFFFFFFFF00
	not8thRank Bitboard = 0x00FFFFFFFFFFFFFF
)

// FromSquare returns the single-bit bitboard for sq.
func FromSquare(sq square.Square) Bitboard { return Bitboard(sq.Mask()) }

// Set returns bb with sq set.
func (bb Bitboard) Set(sq square.Square) Bitboard { return bb | FromSquare(sq) }

// Clear returns bb with sq cleared.
func (bb Bitboard) Clear(sq square.Square) Bitboard { return bb &^ FromSquare(sq) }

// Has reports whether sq is set in bb.
func (bb Bitboard) Has(sq square.Square) bool { return bb&FromSquare(sq) != 0 }

// Count returns the number of set bits (population count).
func (bb Bitboard) Count() int {
	cnt := 0
	for ; bb > 0; cnt++ {
		bb &= bb - 1
	}
	return cnt
}

// bitScanLookup maps the De Bruijn-multiplied isolated LSB to its index.
// See http://pradu.us/old/Nov27_2008/Buzz/research/magic/Bitboards.pdf §3.2.
var bitScanLookup = [64]int{
	63, 0, 58, 1, 59, 47, 53, 2,
	60, 39, 48, 27, 54, 33, 42, 3,
	61, 51, 37, 40, 49, 18, 28, 20,
	55, 30, 34, 11, 43, 14, 22, 4,
	62, 57, 46, 52, 38, 26, 32, 41,
	50, 36, 17, 19, 29, 10, 13, 21,
	56, 45, 25, 31, 35, 16, 9, 12,
	44, 24, 15, 8, 23, 7, 6, 5,
}

const bitscanMagic uint64 = 0x07EDD5E59A4E28C2

// LSB returns the index of the least significant set bit. It returns 63
// for an empty bitboard, matching the teacher's bitScan/popLSB contract.
func (bb Bitboard) LSB() square.Square {
	u := uint64(bb)
	return square.Square(bitScanLookup[(u&-u)*bitscanMagic>>58])
}

// PopLSB clears and returns the least significant set bit's square.
func (bb *Bitboard) PopLSB() square.Square {
	sq := bb.LSB()
	*bb &= *bb - 1
	return sq
}

// Squares returns every square set in bb, least significant first.
func (bb Bitboard) Squares() []square.Square {
	out := make([]square.Square, 0, bb.Count())
	for b := bb; b > 0; {
		out = append(out, b.PopLSB())
	}
	return out
}

// Shift directions, edge-masked so bits don't wrap across files.
func (bb Bitboard) ShiftNorth() Bitboard { return bb << 8 }
func (bb Bitboard) ShiftSouth() Bitboard { return bb >> 8 }
func (bb Bitboard) ShiftEast() Bitboard  { return (bb & notHFile) << 1 }
func (bb Bitboard) ShiftWest() Bitboard  { return (bb & notAFile) >> 1 }
func (bb Bitboard) ShiftNE() Bitboard    { return (bb & notHFile) << 9 }
func (bb Bitboard) ShiftNW() Bitboard    { return (bb & notAFile) << 7 }
func (bb Bitboard) ShiftSE() Bitboard    { return (bb & notHFile) >> 7 }
func (bb Bitboard) ShiftSW() Bitboard    { return (bb & notAFile) >> 9 }

// FileMask returns the bitboard of every square on file f.
func FileMask(f square.File) Bitboard {
	const a = Bitboard(0x0101010101010101)
	return a << uint(f)
}

// RankMask returns the bitboard of every square on rank r.
func RankMask(r square.Rank) Bitboard {
	const rank1 = Bitboard(0xFF)
	return rank1 << uint(8*r)
}

// FlipVertical mirrors the bitboard across the horizontal center (rank
// 1<->8).
func (bb Bitboard) FlipVertical() Bitboard {
	var out Bitboard
	for r := 0; r < 8; r++ {
		row := (bb >> uint(8*r)) & 0xFF
		out |= row << uint(8*(7-r))
	}
	return out
}

// FlipHorizontal mirrors the bitboard across the vertical center (file
// a<->h).
func (bb Bitboard) FlipHorizontal() Bitboard {
	var out Bitboard
	for f := 0; f < 8; f++ {
		col := (bb >> uint(f)) & 0x0101010101010101
		out |= col << uint(7-f)
	}
	return out
}
