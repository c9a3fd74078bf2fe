package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func trackerAfter(t *testing.T, fen string, moves ...string) *game.Tracker {
	t.Helper()
	tr := game.NewTracker()
	if fen != "" {
		var err error
		if tr, err = game.NewTrackerFromFEN(fen); err != nil {
			t.Fatal(err)
		}
	}
	for _, text := range moves {
		if _, _, err := tr.Play(text); err != nil {
			t.Fatalf("Play(%q): %v", text, err)
		}
	}
	return tr
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
	}{
		{"initial", "", nil},
		{"opening with castling", "", []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "O-O", "Nf6"}},
		{"en passant pending", "", []string{"e4", "a6", "e5", "d5"}},
		{"promotion from FEN", "7k/P7/8/8/8/8/8/K7 w - - 0 1", []string{"a8=N", "Kg7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := trackerAfter(t, tt.fen, tt.moves...)

			data, err := Encode(tr.Position(), tr.State())
			testutil.AssertNoError(t, err)

			pos, state, err := Decode(data)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, pos, tr.Position())
			testutil.AssertEqual(t, state, tr.State())
		})
	}
}

func TestEncode_Shape(t *testing.T) {
	tr := trackerAfter(t, "", "e4")
	data, err := Encode(tr.Position(), tr.State())
	testutil.AssertNoError(t, err)

	var raw map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(data, &raw))
	testutil.AssertEqual(t, raw["toMove"], "b")
	testutil.AssertEqual(t, raw["enPassant"], "e3")
	testutil.AssertEqual(t, raw["castling"], "KQkq")
	board := raw["board"].(map[string]interface{})
	testutil.AssertEqual(t, board["e4"], "P")
	testutil.AssertEqual(t, board["e8"], "k")
	testutil.AssertEqual(t, len(board), 32)
}

func TestDecode_Rejects(t *testing.T) {
	valid := func() Snapshot {
		tr := trackerAfter(t, "", "e4", "e5")
		return FromGame(tr.Position(), tr.State())
	}
	tests := []struct {
		name   string
		modify func(*Snapshot)
	}{
		{"wrong version", func(s *Snapshot) { s.Version = 2 }},
		{"bad square key", func(s *Snapshot) { s.Board["z9"] = "Q" }},
		{"bad piece letter", func(s *Snapshot) { s.Board["e4"] = "X" }},
		{"bad side to move", func(s *Snapshot) { s.ToMove = "white" }},
		{"bad castling", func(s *Snapshot) { s.Castling = "KX" }},
		{"bad en passant", func(s *Snapshot) { s.EnPassant = "e9" }},
		{"negative clock", func(s *Snapshot) { s.HalfmoveClock = -1 }},
		{"zero fullmove", func(s *Snapshot) { s.FullmoveNumber = 0 }},
		{"bad promotion", func(s *Snapshot) { s.History[0].Promotion = "K" }},
		{"illegal history", func(s *Snapshot) { s.History[0].To = "e5" }},
		{"board disagrees with history", func(s *Snapshot) { delete(s.Board, "a2") }},
		{"missing king", func(s *Snapshot) { delete(s.Board, "e1") }},
		{"bad start FEN", func(s *Snapshot) { s.StartFEN = "8/8 w" }},
		{"side not to move in check", func(s *Snapshot) {
			s.Board = map[string]string{"e8": "k", "e1": "R", "f1": "K"}
			s.Castling, s.EnPassant = "-", "-"
			s.StartFEN = "4k3/8/8/8/8/8/8/4RK2 w - - 0 1"
			s.History = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(&s)
			data, err := json.Marshal(s)
			testutil.AssertNoError(t, err)

			_, _, err = Decode(data)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidSnapshot)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, input := range []string{"", "{", "[]", `{"board": 5}`, "{}"} {
		_, _, err := Decode([]byte(input))
		testutil.AssertErrorIs(t, err, errors.ErrInvalidSnapshot, "input %q", input)
	}
}

func TestDecode_ReportsFields(t *testing.T) {
	s := FromGame(engine.InitialPosition(), engine.InitialGameState())
	s.ToMove = "x"
	_, _, err := s.Restore()
	testutil.AssertContains(t, err.Error(), "Snapshot.ToMove must be one of [w b]")
}

func TestFromGame_Promotion(t *testing.T) {
	tr := trackerAfter(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1", "a8=R")
	s := FromGame(tr.Position(), tr.State())
	testutil.AssertEqual(t, s.History, []Move{{From: "a7", To: "a8", Promotion: "R"}})
	testutil.AssertEqual(t, s.Board["a8"], string(chess.W(chess.Rook).FENLetter()))
}
