package engine

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool // true = insufficient material
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"K+N vs K", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"K vs K+b", "4k1b1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K vs K+n", "4k1n1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K+B same colour", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"K+B vs K+B opposite colour", "4kb2/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"K+B+B vs K opposite colours", "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", false},
		{"K+N+N vs K", "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1", false},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"K+Q vs K", "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"standard starting position", InitialFEN, false},
	}

	for _, tt := range tests {
		tt := tt // capture per-iteration value (pre-Go 1.22 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos, _ := mustFEN(t, tt.fen)
			if got := HasInsufficientMaterial(pos); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetGameResult(t *testing.T) {
	white := chess.White
	tests := []struct {
		name string
		fen  string
		want Outcome
	}{
		{"initial", InitialFEN, Ongoing},
		{"back rank mate", "R3k3/8/4K3/8/8/8/8/8 b - - 0 1", Outcome{Over: true, Cause: Checkmate, Winner: &white}},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Outcome{Over: true, Cause: Stalemate}},
		{"insufficient material", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", Outcome{Over: true, Cause: InsufficientMaterial}},
		{"fifty-move rule", "4k3/8/8/8/8/8/8/R3K3 w - - 100 80", Outcome{Over: true, Cause: FiftyMoveRule}},
		{"clock at 99", "4k3/8/8/8/8/8/8/R3K3 w - - 99 80", Ongoing},
		{"mate beats fifty-move", "R3k3/8/4K3/8/8/8/8/8 b - - 100 80", Outcome{Over: true, Cause: Checkmate, Winner: &white}},
		{"stalemate beats fifty-move", "7k/5Q2/6K1/8/8/8/8/8 b - - 100 80", Outcome{Over: true, Cause: Stalemate}},
		{"insufficient beats fifty-move", "4k3/8/8/8/8/8/8/4KN2 w - - 120 80", Outcome{Over: true, Cause: InsufficientMaterial}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, state := mustFEN(t, tt.fen)
			got := GetGameResult(pos, state.ToMove, state)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestScholarsMate(t *testing.T) {
	pos, state := playFromStart(t, "e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#")

	white := chess.White
	testutil.AssertEqual(t, GetGameResult(pos, chess.Black, state), Outcome{Over: true, Cause: Checkmate, Winner: &white})
	testutil.AssertEqual(t, len(LegalMoves(pos, chess.Black, state)), 0)
	testutil.AssertTrue(t, IsCheckmate(pos, chess.Black, state))
	testutil.AssertFalse(t, IsStalemate(pos, chess.Black, state))
}

func TestThreefoldRepetition(t *testing.T) {
	shuffle := []string{"Nf3", "Nf6", "Ng1", "Ng8"}

	pos, state := InitialPosition(), InitialGameState()
	for round := 1; round <= 2; round++ {
		for i, text := range shuffle {
			pos, state = play(t, pos, state, text)
			result := GetGameResult(pos, state.ToMove, state)
			third := round == 2 && i == len(shuffle)-1
			if result.Over != third {
				t.Fatalf("after %d plies: Over = %v, want %v", state.Ply(), result.Over, third)
			}
		}
		testutil.AssertEqual(t, RepetitionCount(pos, state), round+1)
	}

	testutil.AssertEqual(t, GetGameResult(pos, state.ToMove, state), Outcome{Over: true, Cause: ThreefoldRepetition})
	testutil.AssertTrue(t, IsThreefoldRepetition(state))
	testutil.AssertEqual(t, MaxRepetitions(state), 3)
}

func TestThreefoldRepetition_FromFEN(t *testing.T) {
	start, startState := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	pos, state := play(t, start, startState, "Ra2", "Kd8", "Ra1", "Ke8", "Ra2", "Kd8", "Ra1", "Ke8")

	// The first Ra2 gave up the queenside right, so the start position is
	// never repeated; the position after 2...Ke8 is, only twice.
	testutil.AssertEqual(t, state.Castling, chess.NoCastling)
	testutil.AssertEqual(t, RepetitionCount(pos, state), 2)
	testutil.AssertFalse(t, IsThreefoldRepetition(state))

	pos, state = play(t, pos, state, "Ra2", "Kd8", "Ra1", "Ke8")
	testutil.AssertEqual(t, RepetitionCount(pos, state), 3)
	testutil.AssertEqual(t, GetGameResult(pos, state.ToMove, state).Cause, ThreefoldRepetition)
}

func TestPositionKey_EnPassant(t *testing.T) {
	// After 1.e4 no black pawn can capture on e3, so the key ignores it.
	pos, state := playFromStart(t, "e4")
	testutil.AssertEqual(t, state.EnPassant, testutil.Sq(t, "e3"))
	testutil.AssertEqual(t, KeyOf(pos, state).EnPassant, chess.NoSquare)

	pos, state = playFromStart(t, "e4", "a6", "e5", "d5")
	testutil.AssertEqual(t, KeyOf(pos, state).EnPassant, testutil.Sq(t, "d6"))
}

func TestResultWithRepetitions(t *testing.T) {
	pos, state := InitialPosition(), InitialGameState()
	testutil.AssertEqual(t, ResultWithRepetitions(pos, chess.White, state, 2), Ongoing)
	testutil.AssertEqual(t, ResultWithRepetitions(pos, chess.White, state, 3), Outcome{Over: true, Cause: ThreefoldRepetition})
}

func TestOutcomeScore(t *testing.T) {
	white, black := chess.White, chess.Black
	tests := []struct {
		outcome Outcome
		score   string
		text    string
	}{
		{Ongoing, "*", "ongoing"},
		{Outcome{Over: true, Cause: Checkmate, Winner: &white}, "1-0", "1-0 (checkmate)"},
		{Outcome{Over: true, Cause: Checkmate, Winner: &black}, "0-1", "0-1 (checkmate)"},
		{Outcome{Over: true, Cause: Stalemate}, "1/2-1/2", "1/2-1/2 (stalemate)"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			testutil.AssertEqual(t, tt.outcome.Score(), tt.score)
			testutil.AssertEqual(t, tt.outcome.String(), tt.text)
			testutil.AssertEqual(t, tt.outcome.IsDraw(), tt.outcome.Over && tt.outcome.Winner == nil)
		})
	}
}
