// Package chesslog holds the single package-level logger game and pgn
// use for non-fatal diagnostics (recovered PGN parse errors,
// repetition-table resets on irreversible moves). It defaults to a
// no-op logger so importing chesskit never prints anything unless the
// embedding program opts in via SetLogger.
//
// Grounded on go.uber.org/zap, wired in per SPEC_FULL.md §3 (seen used
// for engine diagnostics in the retrieval pack's RumenDamyanov-go-chess
// go.mod).
package chesslog

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger replaces the package-level logger used for chesskit's
// internal diagnostics. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the current logger.
func L() *zap.Logger { return logger }
