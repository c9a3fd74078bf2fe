package engine

import (
	goerrors "errors"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestParseFEN_Initial(t *testing.T) {
	pos, state := mustFEN(t, InitialFEN)
	testutil.AssertEqual(t, pos, InitialPosition())
	testutil.AssertEqual(t, state, InitialGameState())
	testutil.AssertEqual(t, state.StartFEN, "", "initial FEN is not recorded")
}

func TestFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		kiwipeteFEN,
		position3,
		position4,
		position5,
		"rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
		"8/8/8/8/8/8/8/K6k b - - 57 120",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, state := mustFEN(t, fen)
			testutil.AssertEqual(t, ToFEN(pos, state), fen)
			if fen != InitialFEN {
				testutil.AssertEqual(t, state.StartFEN, fen)
			}
		})
	}
}

func TestParseFEN_OptionalClocks(t *testing.T) {
	pos, state := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 b - -")
	testutil.AssertEqual(t, state.HalfmoveClock, 0)
	testutil.AssertEqual(t, state.FullmoveNumber, 1)
	testutil.AssertEqual(t, ToFEN(pos, state), "4k3/8/8/8/8/8/8/4K3 b - - 0 1")
}

func TestParseFEN_Errors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field string
	}{
		{"empty", "", "fields"},
		{"too few fields", "4k3/8/8/8/8/8/8/4K3 w", "fields"},
		{"seven ranks", "4k3/8/8/8/8/8/4K3 w - - 0 1", "placement"},
		{"short rank", "4k3/8/8/8/8/8/8/4K2 w - - 0 1", "placement"},
		{"long rank", "4k3/8/8/8/8/8/8/4K4 w - - 0 1", "placement"},
		{"bad piece", "4k3/8/8/8/8/8/8/4X3 w - - 0 1", "placement"},
		{"missing king", "8/8/8/8/8/8/8/4K3 w - - 0 1", "placement"},
		{"two kings", "3kk3/8/8/8/8/8/8/4K3 w - - 0 1", "placement"},
		{"pawn on back rank", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1", "placement"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4RK2 w - - 0 1", "placement"},
		{"side to move", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", "side to move"},
		{"castling letter", "4k3/8/8/8/8/8/8/4K3 w X - 0 1", "castling"},
		{"castling duplicate", "4k3/8/8/8/8/8/8/4K3 w KK - 0 1", "castling"},
		{"en passant square", "4k3/8/8/8/8/8/8/4K3 w - z9 0 1", "en passant"},
		{"en passant rank", "4k3/8/8/8/8/8/8/4K3 w - e3 0 1", "en passant"},
		{"halfmove clock", "4k3/8/8/8/8/8/8/4K3 w - - -1 1", "halfmove clock"},
		{"fullmove number", "4k3/8/8/8/8/8/8/4K3 w - - 0 0", "fullmove number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseFEN(tt.fen)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)

			var fenErr *errors.FENError
			if !goerrors.As(err, &fenErr) {
				t.Fatalf("error %T is not a *errors.FENError", err)
			}
			testutil.AssertEqual(t, fenErr.Field, tt.field)
		})
	}
}

func TestParseFEN_EnPassantSquare(t *testing.T) {
	_, state := mustFEN(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")
	testutil.AssertEqual(t, state.EnPassant, testutil.Sq(t, "e3"))
	testutil.AssertEqual(t, state.ToMove, chess.Black)
}

func TestMustParseFEN_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseFEN did not panic on a bad FEN")
		}
	}()
	MustParseFEN("not a fen")
}

func TestStartOf(t *testing.T) {
	pos, state, err := StartOf(InitialGameState())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ToFEN(pos, state), InitialFEN)

	const fen = "4k3/8/8/8/8/8/4P3/4K3 b - - 3 40"
	start, startState := mustFEN(t, fen)
	_, after := play(t, start, startState, "Kd7")
	pos, state, err = StartOf(after)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ToFEN(pos, state), fen)
	testutil.AssertEqual(t, state.FullmoveNumber, 40)
}
