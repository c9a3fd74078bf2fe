// Package snapshot serializes a Position and GameState to JSON and back.
// Decoding treats its input as untrusted: every field is validated and the
// recorded history must replay to the recorded position.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Version is written into every snapshot.
const Version = 1

// Snapshot is the serialized form. The board maps square labels to FEN
// piece letters; empty squares are omitted.
type Snapshot struct {
	Version        int               `json:"version" validate:"required,eq=1"`
	Board          map[string]string `json:"board" validate:"required,min=2,max=32,dive,keys,square,endkeys,piece"`
	ToMove         string            `json:"toMove" validate:"required,oneof=w b"`
	Castling       string            `json:"castling" validate:"required,castling"`
	EnPassant      string            `json:"enPassant" validate:"required,epsquare"`
	HalfmoveClock  int               `json:"halfmoveClock" validate:"min=0"`
	FullmoveNumber int               `json:"fullmoveNumber" validate:"min=1"`
	StartFEN       string            `json:"startFen,omitempty"`
	History        []Move            `json:"history" validate:"dive"`
}

// Move is the serialized form of a chess.Move.
type Move struct {
	From      string `json:"from" validate:"required,square"`
	To        string `json:"to" validate:"required,square"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=Q R B N"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
		_, err := chess.ParseSquare(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("epsquare", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "-" {
			return true
		}
		_, err := chess.ParseSquare(s)
		return err == nil
	}))
	must(v.RegisterValidation("piece", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 1 {
			return false
		}
		_, ok := chess.PieceFromFEN(s[0])
		return ok
	}))
	must(v.RegisterValidation("castling", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "-" {
			return true
		}
		return len(s) <= 4 && strings.Trim(s, "KQkq") == ""
	}))
	return v
}

// FromGame builds a snapshot of a position and state.
func FromGame(pos chess.Position, state engine.GameState) Snapshot {
	board := make(map[string]string)
	for sq := chess.A1; sq < chess.NoSquare; sq++ {
		if p := pos.At(sq); !p.IsEmpty() {
			board[sq.String()] = string(p.FENLetter())
		}
	}
	toMove := "w"
	if state.ToMove == chess.Black {
		toMove = "b"
	}
	history := make([]Move, 0, len(state.History))
	for _, m := range state.History {
		sm := Move{From: m.From.String(), To: m.To.String()}
		if m.IsPromotion() {
			sm.Promotion = string(m.Promotion.Letter())
		}
		history = append(history, sm)
	}
	return Snapshot{
		Version:        Version,
		Board:          board,
		ToMove:         toMove,
		Castling:       state.Castling.String(),
		EnPassant:      state.EnPassant.String(),
		HalfmoveClock:  state.HalfmoveClock,
		FullmoveNumber: state.FullmoveNumber,
		StartFEN:       state.StartFEN,
		History:        history,
	}
}

// Encode serializes a position and state.
func Encode(pos chess.Position, state engine.GameState) ([]byte, error) {
	data, err := json.Marshal(FromGame(pos, state))
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}
	return data, nil
}

// Decode parses and validates a snapshot. Every failure wraps
// errors.ErrInvalidSnapshot.
func Decode(data []byte) (chess.Position, engine.GameState, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return chess.Position{}, engine.GameState{}, invalid(err)
	}
	return s.Restore()
}

// Restore validates the snapshot and rebuilds the position and state by
// replaying its history from the start position.
func (s Snapshot) Restore() (chess.Position, engine.GameState, error) {
	if err := validate.Struct(s); err != nil {
		return chess.Position{}, engine.GameState{}, invalid(describe(err))
	}

	fen := s.fen()
	pos, state, err := engine.ParseFEN(fen)
	if err != nil {
		return chess.Position{}, engine.GameState{}, invalid(err)
	}

	start, startState := engine.InitialPosition(), engine.InitialGameState()
	if s.StartFEN != "" {
		if start, startState, err = engine.ParseFEN(s.StartFEN); err != nil {
			return chess.Position{}, engine.GameState{}, invalid(errors.Wrap(err, "startFen"))
		}
	}
	replayed, replayedState := start, startState
	for i, m := range s.History {
		from, _ := chess.ParseSquare(m.From)
		to, _ := chess.ParseSquare(m.To)
		promotion := chess.NoKind
		if m.Promotion != "" {
			promotion = chess.KindFromLetter(m.Promotion[0])
		}
		tr, err := engine.ApplyMove(replayed, replayedState, from, to, promotion)
		if err != nil {
			return chess.Position{}, engine.GameState{}, invalid(errors.Wrapf(err, "history[%d]", i))
		}
		replayed, replayedState = tr.Position, tr.State
	}
	if got := engine.ToFEN(replayed, replayedState); got != engine.ToFEN(pos, state) {
		return chess.Position{}, engine.GameState{}, invalid(fmt.Errorf("history reaches %q, board is %q", got, fen))
	}
	return replayed, replayedState, nil
}

// fen renders the snapshot's current position as FEN so that the engine's
// strict parser checks kings, pawns and the en passant rank.
func (s Snapshot) fen() string {
	var pos chess.Position
	for label, letter := range s.Board {
		sq, _ := chess.ParseSquare(label)
		p, _ := chess.PieceFromFEN(letter[0])
		pos.Put(sq, p)
	}
	placement := strings.Fields(engine.ToFEN(pos, engine.InitialGameState()))[0]
	return fmt.Sprintf("%s %s %s %s %d %d", placement, s.ToMove, s.Castling, s.EnPassant, s.HalfmoveClock, s.FullmoveNumber)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", errors.ErrInvalidSnapshot, err)
}

// describe flattens validator errors into one readable error.
func describe(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", fe.Namespace())
		case "oneof":
			fmt.Fprintf(&details, "%s must be one of [%s]", fe.Namespace(), fe.Param())
		case "min", "max", "eq":
			fmt.Fprintf(&details, "%s must be %s %s", fe.Namespace(), fe.Tag(), fe.Param())
		default:
			fmt.Fprintf(&details, "%s failed %s validation", fe.Namespace(), fe.Tag())
		}
	}
	return fmt.Errorf("%s", details.String())
}
