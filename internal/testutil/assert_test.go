package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Failure paths cannot be observed without mocking *testing.T, so these
// cover the passing cases and the message formatter.

func TestAssertions_Success(t *testing.T) {
	base := errors.New("base")
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, "e4", "e4", "square %s", "e4")
	AssertNoError(t, nil)
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", base), base)
	AssertContains(t, "illegal move", "move")
	AssertTrue(t, true)
	AssertFalse(t, false)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"empty", nil, ""},
		{"single string", []interface{}{"ply 3"}, "ply 3"},
		{"single non-string", []interface{}{42}, "42"},
		{"format", []interface{}{"ply %d of %s", 3, "game"}, "ply 3 of game"},
		{"non-string first", []interface{}{7, "x"}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoveAndSquareStrings(t *testing.T) {
	moves := []chess.Move{
		{From: Sq(t, "g1"), To: Sq(t, "f3")},
		{From: Sq(t, "e2"), To: Sq(t, "e4")},
	}
	AssertEqual(t, MoveStrings(moves), []string{"e2e4", "g1f3"})
	AssertEqual(t, SquareStrings([]chess.Square{chess.H8, chess.A1}), []string{"a1", "h8"})
	AssertTrue(t, ContainsMove(moves, "g1f3"))
	AssertFalse(t, ContainsMove(moves, "g1h3"))
}
