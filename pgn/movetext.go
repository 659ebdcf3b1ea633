package pgn

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chesskit/chesskit/chesserr"
	"github.com/go-chesskit/chesskit/internal/chesslog"
	"github.com/go-chesskit/chesskit/position"
	"github.com/go-chesskit/chesskit/square"
	"go.uber.org/zap"
)

// SetLogger replaces the logger the movetext parser uses to report
// recovered, non-fatal diagnostics. Passing nil restores the default
// no-op logger.
func SetLogger(l *zap.Logger) { chesslog.SetLogger(l) }

// Result is a finished (or still-open) game's outcome marker, as it
// appears in PGN movetext and tag pairs.
type Result int

const (
	// ResultNone means no result token was present at all.
	ResultNone Result = iota
	ResultWhiteWins
	ResultBlackWins
	ResultDraw
	// ResultUndecided is PGN's "*" marker: game in progress or abandoned.
	ResultUndecided
)

func (r Result) String() string {
	switch r {
	case ResultWhiteWins:
		return "1-0"
	case ResultBlackWins:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	case ResultUndecided:
		return "*"
	default:
		return ""
	}
}

func resultFromToken(tok string) Result {
	switch tok {
	case "1-0":
		return ResultWhiteWins
	case "0-1":
		return ResultBlackWins
	case "1/2-1/2":
		return ResultDraw
	case "*":
		return ResultUndecided
	default:
		return ResultNone
	}
}

// MoveNode is one ply of a parsed movetext stream: the move actually
// played, its move number and the side that played it, plus whatever
// comments, NAGs and alternative lines (RAV, Recursive Annotated
// Variations) the source PGN attached to it.
type MoveNode struct {
	Number         int
	Side           square.Color
	Token          string
	San            string
	Parsed         ParsedMove
	PositionBefore position.Position
	PositionAfter  position.Position
	// CommentsBefore holds comments that appeared before this move was
	// played with no earlier move to attach them to: after a variation
	// closed, or after a result marker.
	CommentsBefore []string
	// CommentsAfter holds comments that appeared directly after this
	// move, before anything else (the next move, a variation, or the
	// result) interrupted that run.
	CommentsAfter []string
	NAGs          []int
	// Variations holds each alternative line to this move, one
	// Movetext per RAV group, branching from the position before this
	// move was played.
	Variations []*Movetext
}

// Movetext is a parsed PGN movetext scope: the mainline's tag pairs (on
// the root scope only), any comments or variations preceding its first
// move, the moves themselves, any comments trailing its last move, the
// game result, and every diagnostic recovered while parsing this scope.
// A RAV variation is itself a Movetext, so the whole parse forms a tree.
type Movetext struct {
	Tags              []Tag
	LeadingComments   []string
	LeadingVariations []*Movetext
	Moves             []*MoveNode
	TrailingComments  []string
	Result            Result
	// Diagnostics holds the recovered parse errors of this scope: a
	// malformed/illegal move token or an extra result marker, plus, on
	// the root scope only, the lexer's unclosed comment brace or
	// unmatched parentheses. A variation's own errors stay on that
	// variation's Movetext. None of these abort the parse —
	// matching the teacher repo's general tolerance for partially-valid
	// input over SAN/FEN panics — they are recorded here instead.
	Diagnostics []error
}

var (
	moveNumberPattern = regexp.MustCompile(`^\d+\.(\.\.)?$`)
	nagPattern        = regexp.MustCompile(`^\$(\d+)$`)
	resultTokens      = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}
)

// ParseMovetext parses a complete PGN game (tag section plus movetext)
// starting from position.Start, or the position named by the game's
// own "FEN" tag when a "SetUp" tag marks it non-standard.
func ParseMovetext(pgn string) (*Movetext, error) {
	lines := strings.Split(pgn, "\n")
	tags, bodyStart := parseTags(lines)
	body := strings.Join(lines[bodyStart:], " ")

	start := position.Start
	if fen, ok := Get(tags, "FEN"); ok {
		if _, ok := Get(tags, "SetUp"); ok {
			start = fen
		}
	}
	startPos, err := position.FromFEN(start)
	if err != nil {
		return nil, chesserr.Wrap(chesserr.InvalidPGN, start, err)
	}

	toks, diags := tokenize(body)

	p := &movetextParser{tokens: toks}
	mt := p.parseScope(startPos)
	mt.Tags = tags
	mt.Diagnostics = append(diags, mt.Diagnostics...)

	return mt, nil
}

// token is one lexical unit of a movetext body.
type token struct {
	kind tokenKind
	text string
}

type tokenKind int

const (
	tokMove tokenKind = iota
	tokComment
	tokNAG
	tokOpenVar
	tokCloseVar
	tokResult
)

// tokenize lexes a movetext body into tokens, skipping move numbers.
// An unclosed brace or an unmatched parenthesis is recovered as a
// non-fatal diagnostic rather than aborting the lex: spec treats both
// in the same "diagnostic" bucket as an unresolved move token, so a
// truncated or slightly malformed PGN still yields a best-effort tree.
func tokenize(body string) ([]token, []error) {
	var toks []token
	var diags []error
	open := 0
	i, n := 0, len(body)

	for i < n {
		c := body[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == ';':
			for i < n && body[i] != '\n' {
				i++
			}
		case c == '{':
			end := strings.IndexByte(body[i+1:], '}')
			if end == -1 {
				diags = append(diags, chesserr.New(chesserr.UnclosedBrace))
				chesslog.L().Warn("movetext comment never closed, treating rest of input as its body")
				toks = append(toks, token{tokComment, body[i+1:]})
				i = n
				continue
			}
			toks = append(toks, token{tokComment, body[i+1 : i+1+end]})
			i += end + 2
		case c == '(':
			open++
			toks = append(toks, token{kind: tokOpenVar})
			i++
		case c == ')':
			i++
			if open == 0 {
				// A ')' with no open variation would end the root scope
				// early; drop it so the rest of the movetext still parses.
				diags = append(diags, chesserr.New(chesserr.UnmatchedParen))
				chesslog.L().Warn("movetext has an unexpected ')', skipping it")
				continue
			}
			open--
			toks = append(toks, token{kind: tokCloseVar})
		case c == '$':
			j := i + 1
			for j < n && body[j] >= '0' && body[j] <= '9' {
				j++
			}
			toks = append(toks, token{tokNAG, body[i+1 : j]})
			i = j
		default:
			j := i
			for j < n && !strings.ContainsRune(" \t\r\n{}()", rune(body[j])) {
				j++
			}
			word := body[i:j]
			i = j
			if moveNumberPattern.MatchString(word) {
				continue
			}
			if resultTokens[word] {
				toks = append(toks, token{tokResult, word})
				continue
			}
			toks = append(toks, token{tokMove, word})
		}
	}

	if depth := countParenDepth(toks); depth != 0 {
		diags = append(diags, chesserr.New(chesserr.UnmatchedParen))
		chesslog.L().Warn("movetext has unmatched parentheses, continuing with a best-effort parse")
	}
	return toks, diags
}

func countParenDepth(toks []token) int {
	depth := 0
	for _, t := range toks {
		if t.kind == tokOpenVar {
			depth++
		}
		if t.kind == tokCloseVar {
			depth--
			if depth < 0 {
				return depth
			}
		}
	}
	return depth
}

// movetextParser walks the flat token stream, tracking position index
// by index so a RAV variation can resume the enclosing scope's token
// stream exactly where it left off.
type movetextParser struct {
	tokens []token
	idx    int
}

// parseScope parses one Movetext scope (the mainline, or a single RAV
// variation) starting from pos, stopping at a tokCloseVar (left to the
// caller to consume) or at the end of the token stream.
func (p *movetextParser) parseScope(pos position.Position) *Movetext {
	mt := &Movetext{}
	var pendingBefore []string
	var afterTarget *MoveNode

	flushPending := func() {
		if len(pendingBefore) == 0 {
			return
		}
		if len(mt.Moves) == 0 {
			mt.LeadingComments = append(mt.LeadingComments, pendingBefore...)
		} else {
			mt.TrailingComments = append(mt.TrailingComments, pendingBefore...)
		}
		pendingBefore = nil
	}

	for p.idx < len(p.tokens) {
		tok := p.tokens[p.idx]
		switch tok.kind {
		case tokCloseVar:
			flushPending()
			return mt
		case tokOpenVar:
			p.idx++
			// A variation is an alternative to the move just played, so
			// it branches from the position before that move (or from
			// the scope's own starting position if no move has been
			// played yet).
			branchFrom := pos
			if len(mt.Moves) > 0 {
				branchFrom = mt.Moves[len(mt.Moves)-1].PositionBefore
			}
			sub := p.parseScope(branchFrom)
			if p.idx < len(p.tokens) && p.tokens[p.idx].kind == tokCloseVar {
				p.idx++
			}
			if len(mt.Moves) == 0 {
				mt.LeadingVariations = append(mt.LeadingVariations, sub)
			} else {
				last := mt.Moves[len(mt.Moves)-1]
				last.Variations = append(last.Variations, sub)
			}
			// A comment after a variation closes is ambiguous as this
			// scope's "after the branch point" comment; treat it as
			// preceding whatever move comes next instead.
			afterTarget = nil
		case tokResult:
			p.idx++
			afterTarget = nil
			if mt.Result == ResultNone {
				mt.Result = resultFromToken(tok.text)
				continue
			}
			mt.Diagnostics = append(mt.Diagnostics, chesserr.WithToken(chesserr.InvalidPGN, tok.text))
			chesslog.L().Warn("movetext has more than one result marker, keeping the first", zap.String("token", tok.text))
		case tokComment:
			p.idx++
			if afterTarget != nil {
				afterTarget.CommentsAfter = append(afterTarget.CommentsAfter, tok.text)
			} else {
				pendingBefore = append(pendingBefore, tok.text)
			}
		case tokNAG:
			p.idx++
			if afterTarget != nil {
				if n, err := strconv.Atoi(tok.text); err == nil {
					afterTarget.NAGs = append(afterTarget.NAGs, n)
				}
			}
		case tokMove:
			p.idx++
			node, ok := p.resolveMove(tok.text, pos, mt)
			if !ok {
				continue
			}
			// A comment preceding this scope's first move ever played
			// belongs to the scope itself (LeadingComments), not to
			// that move — mirroring flushPending's TrailingComments
			// side at scope end.
			if len(mt.Moves) == 0 {
				mt.LeadingComments = append(mt.LeadingComments, pendingBefore...)
			} else {
				node.CommentsBefore = pendingBefore
			}
			pendingBefore = nil
			mt.Moves = append(mt.Moves, node)
			afterTarget = node
			pos = node.PositionAfter
		}
	}
	flushPending()
	return mt
}

func (p *movetextParser) resolveMove(tok string, pos position.Position, mt *Movetext) (*MoveNode, bool) {
	parsed, err := ParseMove(tok, pos)
	if err != nil {
		mt.Diagnostics = append(mt.Diagnostics, chesserr.Wrap(chesserr.InvalidMove, tok, err))
		chesslog.L().Warn("skipping unresolved movetext token", zap.String("token", tok), zap.Error(err))
		return nil, false
	}
	if parsed.IsDrop() {
		mt.Diagnostics = append(mt.Diagnostics, chesserr.WithToken(chesserr.InvalidMove, tok))
		chesslog.L().Warn("skipping drop move in standard-chess movetext", zap.String("token", tok))
		return nil, false
	}

	after := pos
	san := Move2SAN(parsed.Move, pos, legalMovesOf(pos), pos.Board.Get(parsed.Move.From()), isCaptureOf(pos, parsed.Move))
	after.MakeMove(parsed.Move)

	return &MoveNode{
		Number:         pos.FullmoveNumber,
		Side:           pos.SideToMove,
		Token:          tok,
		San:            san,
		Parsed:         parsed,
		PositionBefore: pos,
		PositionAfter:  after,
	}, true
}
