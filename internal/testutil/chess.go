package testutil

import (
	"slices"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Sq parses a square label and fails the test on error.
func Sq(t testing.TB, label string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(label)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", label, err)
	}
	return sq
}

// MoveStrings returns the long algebraic form of each move, sorted.
func MoveStrings(moves []chess.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

// SquareStrings returns the label of each square, sorted.
func SquareStrings(squares []chess.Square) []string {
	out := make([]string, 0, len(squares))
	for _, sq := range squares {
		out = append(out, sq.String())
	}
	slices.Sort(out)
	return out
}

// ContainsMove reports whether moves holds a move with the given UCI text.
func ContainsMove(moves []chess.Move, uci string) bool {
	return slices.ContainsFunc(moves, func(m chess.Move) bool { return m.String() == uci })
}
