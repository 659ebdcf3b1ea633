package pgn

import (
	"fmt"
	"strings"

	"github.com/go-chesskit/chesskit/square"
)

// FormatMovetext renders a Movetext back into PGN movetext text: its
// leading comments and variations, then each numbered move with its
// own comments, NAGs and variations, then the result token. It does
// not render Tags — join it with FormatTags (and a blank line) for a
// complete PGN document, the way Game.PGN does.
func FormatMovetext(mt *Movetext) string {
	var sb strings.Builder
	writeMovetextBody(&sb, mt, true)
	sb.WriteString(mt.Result.String())
	return strings.TrimSpace(sb.String())
}

// writeMovetextBody writes mt's moves, and everything attached to
// them, to sb. needNumber forces a move number onto the next token
// written, matching the PGN convention of re-stating the move number
// ("12...") after a comment or variation interrupts the mainline.
func writeMovetextBody(sb *strings.Builder, mt *Movetext, needNumber bool) {
	for _, c := range mt.LeadingComments {
		fmt.Fprintf(sb, "{%s} ", c)
		needNumber = true
	}
	for _, v := range mt.LeadingVariations {
		sb.WriteString("(")
		writeMovetextBody(sb, v, true)
		sb.WriteString(") ")
		needNumber = true
	}

	for _, mv := range mt.Moves {
		for _, c := range mv.CommentsBefore {
			fmt.Fprintf(sb, "{%s} ", c)
			needNumber = true
		}
		if mv.Side == square.White {
			fmt.Fprintf(sb, "%d. ", mv.Number)
		} else if needNumber {
			fmt.Fprintf(sb, "%d... ", mv.Number)
		}
		sb.WriteString(mv.San)
		for _, nag := range mv.NAGs {
			fmt.Fprintf(sb, " $%d", nag)
		}
		sb.WriteString(" ")
		needNumber = false

		for _, c := range mv.CommentsAfter {
			fmt.Fprintf(sb, "{%s} ", c)
			needNumber = true
		}
		for _, v := range mv.Variations {
			sb.WriteString("(")
			writeMovetextBody(sb, v, true)
			sb.WriteString(") ")
			needNumber = true
		}
	}

	for _, c := range mt.TrailingComments {
		fmt.Fprintf(sb, "{%s} ", c)
	}
}

// FormatGame renders mt as a complete PGN document: its tag pairs,
// a blank line, then its movetext.
func FormatGame(mt *Movetext) string {
	return FormatTags(mt.Tags) + "\n" + FormatMovetext(mt) + "\n"
}
