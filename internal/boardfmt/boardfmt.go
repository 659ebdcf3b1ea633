// Package boardfmt renders a board.Board as an ASCII diagram for test
// failure diagnostics, grounded on the teacher's cli.FormatBitboard
// (same rank-major top-to-bottom loop and file-letter footer), but
// generalized from printing one bitboard at a time to the whole board.
package boardfmt

import (
	"strings"

	"github.com/go-chesskit/chesskit/board"
	"github.com/go-chesskit/chesskit/square"
)

// Format renders b as an 8x8 grid, rank 8 first, with a file-letter
// footer. Empty squares print as '.'; occupied squares print their FEN
// letter (uppercase for White, lowercase for Black).
func Format(b board.Board) string {
	var sb strings.Builder

	for rank := square.Rank(7); rank >= 0; rank-- {
		sb.WriteByte(byte(rank) + '1')
		sb.WriteString("  ")
		for file := square.File(0); file < 8; file++ {
			sq := square.New(file, rank)
			p := b.Get(sq)
			symbol := byte('.')
			if !p.IsNone() {
				symbol = p.FENByte()
			}
			sb.WriteByte(symbol)
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")

	return sb.String()
}
