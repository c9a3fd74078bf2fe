package engine

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

const (
	kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4   = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5   = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

// mustFEN parses fen or fails the test.
func mustFEN(t testing.TB, fen string) (chess.Position, GameState) {
	t.Helper()
	pos, state, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos, state
}

// play applies moves given as SAN or UCI text and fails on the first
// rejection.
func play(t testing.TB, pos chess.Position, state GameState, moves ...string) (chess.Position, GameState) {
	t.Helper()
	for _, text := range moves {
		m, err := ParseMove(pos, state, text)
		if err != nil {
			t.Fatalf("ParseMove(%q) after %d plies: %v", text, state.Ply(), err)
		}
		tr, err := ApplyMoveValue(pos, state, m)
		if err != nil {
			t.Fatalf("ApplyMoveValue(%s): %v", m, err)
		}
		pos, state = tr.Position, tr.State
	}
	return pos, state
}

// playFromStart is play from the standard initial position.
func playFromStart(t testing.TB, moves ...string) (chess.Position, GameState) {
	t.Helper()
	return play(t, InitialPosition(), InitialGameState(), moves...)
}
