package pgn

import (
	"regexp"
	"strings"

	"github.com/go-chesskit/chesskit/chesserr"
	"github.com/go-chesskit/chesskit/move"
	"github.com/go-chesskit/chesskit/movegen"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
)

// ParsedMove is the result of resolving a single PGN move token against
// a position's legal moves.
type ParsedMove struct {
	Move       move.Move
	drop       bool
	dropPiece  square.Kind
	dropSquare square.Square
}

// IsDrop reports whether the token was a drop ("N@f3"-style) rather
// than an ordinary move. Standard chess has no drops: a drop's Move is
// the zero value, not a board move, and ParseMovetext skips a drop
// token, recording a chesserr.InvalidMove diagnostic. The parser still
// accepts the notation so embedding programs can surface
// "drops aren't supported in this variant" instead of a bare parse
// failure.
func (pm ParsedMove) IsDrop() bool { return pm.drop }

// DropPiece returns the piece kind being dropped, valid only if IsDrop.
func (pm ParsedMove) DropPiece() square.Kind { return pm.dropPiece }

// DropSquare returns the destination square of a drop, valid only if
// IsDrop.
func (pm ParsedMove) DropSquare() square.Square { return pm.dropSquare }

var (
	// sanPattern mirrors the teacher's SAN grammar, generalized with a
	// regex in the style other_examples' vendored corentings/chess v2
	// notation.go tokenizes algebraic moves with.
	sanPattern = regexp.MustCompile(`^([NBRQK])?([a-h])?([1-8])?(x)?([a-h][1-8])(?:=([NBRQ]))?$`)
	lanPattern = regexp.MustCompile(`^([a-h][1-8])([a-h][1-8])([nbrq])?$`)
	dropPattern = regexp.MustCompile(`^([PNBRQ])?@([a-h][1-8])$`)
)

// ParseMove resolves a single SAN, LAN, or drop move token against pos's
// legal moves. Castling is recognized spelled with either the letter O
// ("O-O"/"O-O-O") or the digit zero ("0-0"/"0-0-0").
func ParseMove(token string, pos position.Position) (ParsedMove, error) {
	token = strings.TrimSpace(token)
	trimmed := stripAnnotations(token)

	switch trimmed {
	case "O-O", "0-0":
		return resolveCastling(pos, pos.SideToMove, false)
	case "O-O-O", "0-0-0":
		return resolveCastling(pos, pos.SideToMove, true)
	}

	if m := dropPattern.FindStringSubmatch(trimmed); m != nil {
		sq, err := square.Parse(m[2])
		if err != nil {
			return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, token)
		}
		kind := square.Pawn
		if m[1] != "" {
			kind = kindFromLetter(m[1])
		}
		return ParsedMove{drop: true, dropPiece: kind, dropSquare: sq}, nil
	}

	legal := movegen.Generate(pos)

	if m := lanPattern.FindStringSubmatch(trimmed); m != nil {
		from, _ := square.Parse(m[1])
		to, _ := square.Parse(m[2])
		for _, lm := range legal.Slice() {
			if lm.From() != from || lm.To() != to {
				continue
			}
			if lm.IsPromotion() {
				if m[3] == "" || kindFromLetter(strings.ToUpper(m[3])) != lm.Promotion() {
					continue
				}
			}
			return ParsedMove{Move: lm}, nil
		}
		return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, token)
	}

	m := sanPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, token)
	}

	pieceLetter, fileHint, rankHint, capture, dest, promoLetter :=
		m[1], m[2], m[3], m[4] != "", m[5], m[6]

	kind := square.Pawn
	if pieceLetter != "" {
		kind = kindFromLetter(pieceLetter)
	}
	to, err := square.Parse(dest)
	if err != nil {
		return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, token)
	}

	var candidates []move.Move
	for _, lm := range legal.Slice() {
		if lm.To() != to {
			continue
		}
		if pos.Board.Get(lm.From()).Kind != kind {
			continue
		}
		if fileHint != "" && lm.From().File().String() != fileHint {
			continue
		}
		if rankHint != "" && lm.From().Rank().String() != rankHint {
			continue
		}
		if promoLetter != "" {
			if !lm.IsPromotion() || lm.Promotion() != kindFromLetter(promoLetter) {
				continue
			}
		} else if lm.IsPromotion() {
			continue
		}
		candidates = append(candidates, lm)
	}

	switch len(candidates) {
	case 0:
		return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, token)
	case 1:
		cand := candidates[0]
		isActualCapture := !pos.Board.Get(cand.To()).IsNone() || cand.Kind() == move.EnPassant
		if capture != isActualCapture {
			return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, token)
		}
		return ParsedMove{Move: cand}, nil
	default:
		return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, token)
	}
}

// stripAnnotations removes a token's trailing annotation glyphs in the
// order spec.md §4.5 requires: the NAG-style suffix annotations
// ("!", "?", "!!", "??", "!?", "?!"), then "#", then "+" — so a
// check/mate-suffixed castling token ("O-O+", "O-O-O#") reduces to the
// bare castling form the exact-string switch below matches, the same
// way Move2SAN would have produced it.
func stripAnnotations(token string) string {
	token = strings.TrimRight(token, "!?")
	token = strings.TrimSuffix(token, "#")
	token = strings.TrimSuffix(token, "+")
	return token
}

func resolveCastling(pos position.Position, c square.Color, long bool) (ParsedMove, error) {
	legal := movegen.Generate(pos)
	targetFile := square.FileG
	if long {
		targetFile = square.FileC
	}
	rank := square.Rank1
	if c == square.Black {
		rank = square.Rank8
	}
	to := square.New(targetFile, rank)
	for _, lm := range legal.Slice() {
		if lm.Kind() == move.Castling && lm.To() == to {
			return ParsedMove{Move: lm}, nil
		}
	}
	return ParsedMove{}, chesserr.WithToken(chesserr.InvalidMove, "castling")
}

func kindFromLetter(letter string) square.Kind {
	switch letter {
	case "N":
		return square.Knight
	case "B":
		return square.Bishop
	case "R":
		return square.Rook
	case "Q":
		return square.Queen
	case "K":
		return square.King
	case "P":
		return square.Pawn
	default:
		return square.NoKind
	}
}
