// Package chesserr defines the discriminated error taxonomy shared by every
// public boundary of chesskit: FEN/PGN parsing, move execution and history
// navigation all fail through the same [Error] type so callers can switch on
// [Kind] instead of matching error strings.
package chesserr

import "fmt"

// Kind discriminates the reason a chesskit operation failed.
type Kind int

const (
	// InvalidFEN means a FEN string was malformed.
	InvalidFEN Kind = iota
	// InvalidPGN means a PGN header or movetext was malformed beyond recovery.
	InvalidPGN
	// InvalidMove means a PGN move token could not be resolved, was
	// ambiguous, or does not correspond to any legal move.
	InvalidMove
	// IllegalMove means Execute was called with a move outside the legal set.
	IllegalMove
	// PromotionRequired means a promotion move was executed without a
	// promotion choice.
	PromotionRequired
	// InvalidPromotion means the chosen promotion kind cannot promote
	// (pawn or king).
	InvalidPromotion
	// NoMoveToUndo means Undo was called with an empty history stack.
	NoMoveToUndo
	// NoMoveToRedo means Redo was called with an empty redo stack.
	NoMoveToRedo
	// UnclosedBrace means a PGN comment opened with '{' was never closed.
	UnclosedBrace
	// UnmatchedParen means a PGN variation has mismatched parentheses.
	UnmatchedParen
)

func (k Kind) String() string {
	switch k {
	case InvalidFEN:
		return "InvalidFEN"
	case InvalidPGN:
		return "InvalidPGN"
	case InvalidMove:
		return "InvalidMove"
	case IllegalMove:
		return "IllegalMove"
	case PromotionRequired:
		return "PromotionRequired"
	case InvalidPromotion:
		return "InvalidPromotion"
	case NoMoveToUndo:
		return "NoMoveToUndo"
	case NoMoveToRedo:
		return "NoMoveToRedo"
	case UnclosedBrace:
		return "UnclosedBrace"
	case UnmatchedParen:
		return "UnmatchedParen"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned at every chesskit boundary.
// Token and Detail carry the offending input when available (the SAN token
// for InvalidMove, the FEN string for InvalidFEN, and so on).
type Error struct {
	Kind   Kind
	Token  string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Token != "" && e.Err != nil:
		return fmt.Sprintf("chesskit: %s %q: %v", e.Kind, e.Token, e.Err)
	case e.Token != "":
		return fmt.Sprintf("chesskit: %s %q", e.Kind, e.Token)
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("chesskit: %s (%s): %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("chesskit: %s (%s)", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("chesskit: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("chesskit: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, letting callers
// write errors.Is(err, chesserr.New(chesserr.InvalidMove)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New creates an *Error of the given kind with no extra detail.
func New(kind Kind) *Error { return &Error{Kind: kind} }

// WithToken creates an *Error carrying the offending source token.
func WithToken(kind Kind, token string) *Error {
	return &Error{Kind: kind, Token: token}
}

// WithDetail creates an *Error carrying a free-form detail string.
func WithDetail(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap creates an *Error of the given kind wrapping a lower-level cause.
func Wrap(kind Kind, token string, err error) *Error {
	return &Error{Kind: kind, Token: token, Err: err}
}
