package engine

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestLegalMoves_InitialPosition(t *testing.T) {
	moves := LegalMoves(InitialPosition(), chess.White, InitialGameState())
	if len(moves) != 20 {
		t.Fatalf("LegalMoves(initial) = %d moves, want 20", len(moves))
	}
	for _, uci := range []string{"a2a3", "a2a4", "e2e4", "g1f3", "b1c3", "h2h4"} {
		testutil.AssertTrue(t, testutil.ContainsMove(moves, uci), "missing %s", uci)
	}
}

func TestLegalMoves_Ordered(t *testing.T) {
	moves := LegalMoves(InitialPosition(), chess.White, InitialGameState())
	for i := 1; i < len(moves); i++ {
		if compareMoves(moves[i-1], moves[i]) > 0 {
			t.Fatalf("moves out of order at %d: %s before %s", i, moves[i-1], moves[i])
		}
	}
}

func TestPseudoLegalDestinations(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{"knight from start", InitialFEN, "g1", []string{"f3", "h3"}},
		{"blocked rook", InitialFEN, "a1", []string{}},
		{"pawn double push", InitialFEN, "e2", []string{"e3", "e4"}},
		{"empty square", InitialFEN, "e4", []string{}},
		{"rook on open board", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1",
			[]string{"a2", "a3", "a4", "a5", "a6", "a7", "a8", "b1", "c1", "d1"}},
		{"bishop stops at capture", "4k3/8/8/3p4/8/1B6/8/4K3 w - - 0 1", "b3",
			[]string{"a2", "a4", "c2", "c4", "d1", "d5"}},
		{"pinned piece still has pseudo moves", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2",
			[]string{"a6", "b5", "c4", "d1", "d3", "f1", "f3", "g4", "h5"}},
		{"promotion squares collapse", "7k/P7/8/8/8/8/8/K7 w - - 0 1", "a7", []string{"a8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, state := mustFEN(t, tt.fen)
			got := testutil.SquareStrings(PseudoLegalDestinations(pos, testutil.Sq(t, tt.from), state))
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestLegalMoves_PinnedPiece(t *testing.T) {
	pos, state := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	testutil.AssertEqual(t, LegalMovesFrom(pos, testutil.Sq(t, "e2"), state), []chess.Move(nil))
	testutil.AssertFalse(t, IsLegalMove(pos, chess.White, state, testutil.Sq(t, "e2"), testutil.Sq(t, "d3")))
}

func TestLegalMoves_MustAnswerCheck(t *testing.T) {
	// Rook on e8 checks; the king must step off the file or the knight blocks.
	pos, state := mustFEN(t, "k3r3/8/8/8/8/8/3N4/4K3 w - - 0 1")
	got := testutil.MoveStrings(LegalMoves(pos, chess.White, state))
	testutil.AssertEqual(t, got, []string{"d2e4", "e1d1", "e1f1", "e1f2"})
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		uci  string
		want bool
	}{
		{"kingside path clear and safe", "rnbqk2r/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1", "e8g8", true},
		{"kingside blocked by bishop", "rnbqkb1r/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1", "e8g8", false},
		{"crossing square attacked", "4k2r/8/8/8/8/B7/8/4K3 b k - 0 1", "e8g8", false},
		{"destination attacked", "4k2r/8/8/8/8/8/8/4K1R1 b k - 0 1", "e8g8", false},
		{"king in check", "4k2r/8/8/8/8/8/8/4RK2 b k - 0 1", "e8g8", false},
		{"rook attacked is fine", "4k2r/8/8/8/8/8/8/4K2R b k - 0 1", "e8g8", true},
		{"right lost", "4k2r/8/8/8/8/8/8/4K3 b - - 0 1", "e8g8", false},
		{"rook missing", "4k3/8/8/8/8/8/8/4K3 b k - 0 1", "e8g8", false},
		{"queenside b-file attacked is fine", "r3k3/8/8/8/8/8/8/1R2K3 b q - 0 1", "e8c8", true},
		{"queenside b-square occupied", "rn2k3/8/8/8/8/8/8/4K3 b q - 0 1", "e8c8", false},
		{"white queenside", "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", "e1c1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, state := mustFEN(t, tt.fen)
			got := testutil.ContainsMove(LegalMoves(pos, state.ToMove, state), tt.uci)
			if got != tt.want {
				t.Errorf("%s legal = %v, want %v", tt.uci, got, tt.want)
			}
		})
	}
}

func TestCastling_BecomesLegalOnceClearAndSafe(t *testing.T) {
	pos, state := playFromStart(t, "e4", "e5", "Nf3")
	testutil.AssertFalse(t, IsLegalMove(pos, chess.Black, state, chess.E8, chess.G8), "after 1.e4 e5 2.Nf3")

	pos, state = play(t, pos, state, "Nf6", "Bc4", "Bc5", "Nc3")
	testutil.AssertTrue(t, IsLegalMove(pos, chess.Black, state, chess.E8, chess.G8), "path clear, nothing attacked")

	// Same setup but a white bishop eyes f8 through an open diagonal.
	pos, state = mustFEN(t, "rnbqk2r/pppp1ppp/5n2/4p3/8/B7/PPPP1PPP/RN1QKBNR b KQkq - 0 1")
	testutil.AssertFalse(t, IsLegalMove(pos, chess.Black, state, chess.E8, chess.G8), "f8 attacked")
}

func TestEnPassant(t *testing.T) {
	pos, state := playFromStart(t, "e4", "a6", "e5", "d5")
	if !IsLegalMove(pos, chess.White, state, testutil.Sq(t, "e5"), testutil.Sq(t, "d6")) {
		t.Fatal("exd6 e.p. should be legal immediately after d7-d5")
	}

	next, nextState := play(t, pos, state, "exd6")
	testutil.AssertEqual(t, next.At(testutil.Sq(t, "d5")), chess.NoPiece, "captured pawn removed")
	testutil.AssertEqual(t, next.At(testutil.Sq(t, "d6")), chess.W(chess.Pawn))
	last, _ := nextState.LastMove()
	testutil.AssertEqual(t, last.Captured, chess.B(chess.Pawn))

	delayed, delayedState := play(t, pos, state, "h3", "h6")
	if IsLegalMove(delayed, chess.White, delayedState, testutil.Sq(t, "e5"), testutil.Sq(t, "d6")) {
		t.Error("exd6 e.p. must not be legal one move later")
	}
	_, err := ApplyMove(delayed, delayedState, testutil.Sq(t, "e5"), testutil.Sq(t, "d6"), chess.NoKind)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
}

func TestEnPassant_ExposesKing(t *testing.T) {
	// Capturing e.p. would clear the fifth rank between the rook and the king.
	pos, state := mustFEN(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 2")
	testutil.AssertFalse(t, IsLegalMove(pos, chess.White, state, testutil.Sq(t, "b5"), testutil.Sq(t, "c6")))
}

func TestIsSquareAttacked(t *testing.T) {
	pos := InitialPosition()
	tests := []struct {
		square string
		by     chess.Colour
		want   bool
	}{
		{"f3", chess.White, true},
		{"d3", chess.White, true},
		{"e4", chess.White, false},
		{"f6", chess.Black, true},
		{"e5", chess.Black, false},
		{"e2", chess.White, false}, // own piece
		{"e2", chess.Black, false},
	}
	for _, tt := range tests {
		t.Run(tt.square+" by "+tt.by.String(), func(t *testing.T) {
			if got := IsSquareAttacked(pos, testutil.Sq(t, tt.square), tt.by); got != tt.want {
				t.Errorf("IsSquareAttacked(%s, %s) = %v, want %v", tt.square, tt.by, got, tt.want)
			}
		})
	}
	testutil.AssertFalse(t, IsSquareAttacked(pos, chess.NoSquare, chess.White))
}

func TestIsInCheck(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		colour chess.Colour
		want   bool
	}{
		{"initial", InitialFEN, chess.White, false},
		{"rook on file", "4k3/8/8/8/8/8/8/4RK2 b - - 0 1", chess.Black, true},
		{"rook blocked", "4k3/8/8/4p3/8/8/8/4RK2 b - - 0 1", chess.Black, false},
		{"knight", "4k3/8/3N4/8/8/8/8/4K3 b - - 0 1", chess.Black, true},
		{"pawn", "4k3/3P4/8/8/8/8/8/4K3 b - - 0 1", chess.Black, true},
		{"pawn ahead does not check", "8/8/8/8/8/8/4p3/4K2k w - - 0 1", chess.White, false},
		{"no king", "", chess.Black, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ParseFEN rejects kingless boards, so build that one by hand.
			var pos chess.Position
			if tt.fen == "" {
				pos.Put(chess.A1, chess.W(chess.Rook))
			} else {
				pos, _ = mustFEN(t, tt.fen)
			}
			if got := IsInCheck(pos, tt.colour); got != tt.want {
				t.Errorf("IsInCheck(%s) = %v, want %v", tt.colour, got, tt.want)
			}
		})
	}
}

func TestLegalMovesNeverCaptureKing(t *testing.T) {
	// ParseFEN refuses this position, so add the attacking rook by hand.
	pos, state := mustFEN(t, "4k3/8/8/8/8/8/8/5K2 w - - 0 1")
	pos.Put(chess.E1, chess.W(chess.Rook))

	for _, m := range LegalMoves(pos, state.ToMove, state) {
		if m.Captured.Kind == chess.King {
			t.Fatalf("LegalMoves includes king capture %s", m)
		}
	}
	_, err := ApplyMove(pos, state, chess.E1, chess.E8, chess.NoKind)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
}

func TestAttackers(t *testing.T) {
	pos, _ := mustFEN(t, "4k3/8/8/8/8/2N5/8/R3K3 w - - 0 1")
	got := testutil.SquareStrings(Attackers(pos, testutil.Sq(t, "a4"), chess.White))
	testutil.AssertEqual(t, got, []string{"a1", "c3"})
}

// TestLegalMovesNeverLeaveKingAttacked walks two plies from several
// positions and re-checks every returned move.
func TestLegalMovesNeverLeaveKingAttacked(t *testing.T) {
	for _, fen := range []string{InitialFEN, kiwipeteFEN, position3, position4, position5} {
		pos, state := mustFEN(t, fen)
		for _, m := range LegalMoves(pos, state.ToMove, state) {
			tr, err := ApplyMoveValue(pos, state, m)
			if err != nil {
				t.Fatalf("%s: ApplyMoveValue(%s): %v", fen, m, err)
			}
			if IsInCheck(tr.Position, m.Piece.Colour) {
				t.Fatalf("%s: %s leaves the king attacked", fen, m)
			}
			for _, reply := range LegalMoves(tr.Position, tr.State.ToMove, tr.State) {
				after := applyToPosition(tr.Position, reply)
				if IsInCheck(after, reply.Piece.Colour) {
					t.Fatalf("%s: %s %s leaves the king attacked", fen, m, reply)
				}
			}
		}
	}
}
