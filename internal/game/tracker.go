// Package game keeps the running state of a single game on top of the pure
// engine: the current position, the repetition tally and undo history.
package game

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Tracker owns one game. It is not safe for concurrent use; see SafeTracker.
type Tracker struct {
	pos   chess.Position
	state engine.GameState

	// counts tallies repetition keys of every position reached so far.
	counts   map[engine.PositionKey]int
	maxCount int

	// undo holds the position and state before each applied move.
	undo []snapshot

	touchMove bool
	touched   chess.Square
}

type snapshot struct {
	pos   chess.Position
	state engine.GameState
	key   engine.PositionKey
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithTouchMove makes Touch binding: after touching a piece that can move,
// only moves of that piece are accepted.
func WithTouchMove(enabled bool) Option {
	return func(t *Tracker) {
		t.touchMove = enabled
	}
}

// NewTracker starts a game from the standard initial position.
func NewTracker(opts ...Option) *Tracker {
	return NewTrackerAt(engine.InitialPosition(), engine.InitialGameState(), opts...)
}

// NewTrackerFromFEN starts a game from a FEN string.
func NewTrackerFromFEN(fen string, opts ...Option) (*Tracker, error) {
	pos, state, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewTrackerAt(pos, state, opts...), nil
}

// NewTrackerAt resumes a game from a position and state, e.g. a decoded
// snapshot. The repetition tally and undo stack are rebuilt by replaying the
// state's history, so every recorded move can be taken back.
func NewTrackerAt(pos chess.Position, state engine.GameState, opts ...Option) *Tracker {
	t := &Tracker{
		pos:     pos,
		state:   state,
		counts:  make(map[engine.PositionKey]int),
		touched: chess.NoSquare,
	}
	for _, opt := range opts {
		opt(t)
	}

	if undo, keys, ok := replay(pos, state); ok {
		t.undo = undo
		for _, k := range keys {
			t.count(k)
		}
		return t
	}

	keys := engine.ReplayKeys(state)
	if len(keys) == 0 {
		keys = []engine.PositionKey{engine.KeyOf(pos, state)}
	}
	for _, k := range keys {
		t.count(k)
	}
	return t
}

// replay plays the state's history from its start. It reports false unless
// every move is legal and the game ends on pos.
func replay(pos chess.Position, state engine.GameState) ([]snapshot, []engine.PositionKey, bool) {
	cur, curState, err := engine.StartOf(state)
	if err != nil {
		return nil, nil, false
	}
	undo := make([]snapshot, 0, len(state.History))
	keys := []engine.PositionKey{engine.KeyOf(cur, curState)}
	for _, m := range state.History {
		tr, err := engine.ApplyMoveValue(cur, curState, m)
		if err != nil {
			return nil, nil, false
		}
		k := engine.KeyOf(tr.Position, tr.State)
		undo = append(undo, snapshot{pos: cur, state: curState, key: k})
		keys = append(keys, k)
		cur, curState = tr.Position, tr.State
	}
	if engine.ToFEN(cur, curState) != engine.ToFEN(pos, state) {
		return nil, nil, false
	}
	return undo, keys, true
}

func (t *Tracker) count(k engine.PositionKey) {
	t.counts[k]++
	if t.counts[k] > t.maxCount {
		t.maxCount = t.counts[k]
	}
}

// Position returns the current position.
func (t *Tracker) Position() chess.Position { return t.pos }

// State returns the current game state.
func (t *Tracker) State() engine.GameState { return t.state }

// ToMove returns the side to move.
func (t *Tracker) ToMove() chess.Colour { return t.state.ToMove }

// FEN returns the current position as FEN.
func (t *Tracker) FEN() string { return engine.ToFEN(t.pos, t.state) }

// LegalMoves returns the legal moves of the side to move.
func (t *Tracker) LegalMoves() []chess.Move {
	return engine.LegalMoves(t.pos, t.state.ToMove, t.state)
}

// Result reports whether the game is over, using the cached repetition tally.
func (t *Tracker) Result() engine.Outcome {
	return engine.ResultWithRepetitions(t.pos, t.state.ToMove, t.state, t.maxCount)
}

// RepetitionCount returns how often the current position has occurred.
func (t *Tracker) RepetitionCount() int {
	return t.counts[engine.KeyOf(t.pos, t.state)]
}

// Touch records that the player to move touched the piece on sq.
func (t *Tracker) Touch(sq chess.Square) engine.TouchMove {
	tm := engine.ValidateTouchMove(t.pos, t.state, sq, chess.NoSquare)
	if tm.MustMove && t.touched == chess.NoSquare {
		t.touched = sq
	}
	return tm
}

// Touched returns the square of the piece the player is bound to move, or
// NoSquare.
func (t *Tracker) Touched() chess.Square {
	if !t.touchMove {
		return chess.NoSquare
	}
	return t.touched
}

// Apply plays from-to for the side to move. A finished game accepts no
// further moves.
func (t *Tracker) Apply(from, to chess.Square, promotion chess.Kind) (engine.Transition, error) {
	if o := t.Result(); o.Over {
		err := errors.Illegal(from, to, errors.Wrapf(errors.ErrIllegalMove, "game is over: %s", o))
		err.Ply = t.state.Ply() + 1
		return engine.Transition{}, err
	}
	tr, err := engine.ApplyMove(t.pos, t.state, from, to, promotion)
	if err != nil {
		return engine.Transition{}, err
	}
	if t.touchMove {
		if err := engine.CheckTouchMove(t.pos, t.state, t.touched, tr.Move); err != nil {
			return engine.Transition{}, err
		}
	}
	t.commit(tr)
	return tr, nil
}

// Play parses SAN or UCI text and applies it. It returns the transition and
// the move in SAN.
func (t *Tracker) Play(text string) (engine.Transition, string, error) {
	m, err := engine.ParseMove(t.pos, t.state, text)
	if err != nil {
		return engine.Transition{}, "", err
	}
	san := engine.MoveNotation(t.pos, t.state, m)
	tr, err := t.Apply(m.From, m.To, m.Promotion)
	if err != nil {
		return engine.Transition{}, "", err
	}
	return tr, san, nil
}

func (t *Tracker) commit(tr engine.Transition) {
	t.undo = append(t.undo, snapshot{pos: t.pos, state: t.state, key: engine.KeyOf(tr.Position, tr.State)})
	t.pos, t.state = tr.Position, tr.State
	t.touched = chess.NoSquare
	t.count(t.undo[len(t.undo)-1].key)
}

// Undo takes back the last move, including moves restored with NewTrackerAt.
func (t *Tracker) Undo() (chess.Move, error) {
	if len(t.undo) == 0 {
		return chess.Move{}, errors.ErrNoHistory
	}
	last, _ := t.state.LastMove()
	prev := t.undo[len(t.undo)-1]
	t.undo = t.undo[:len(t.undo)-1]

	t.counts[prev.key]--
	if t.counts[prev.key] == 0 {
		delete(t.counts, prev.key)
	}
	t.maxCount = 0
	for _, n := range t.counts {
		if n > t.maxCount {
			t.maxCount = n
		}
	}

	t.pos, t.state = prev.pos, prev.state
	t.touched = chess.NoSquare
	return last, nil
}

// SANHistory renders the game's moves in SAN by replaying them from the
// starting position.
func (t *Tracker) SANHistory() []string {
	pos, state, err := engine.StartOf(t.state)
	if err != nil {
		return nil
	}
	sans := make([]string, 0, len(t.state.History))
	for _, m := range t.state.History {
		sans = append(sans, engine.MoveNotation(pos, state, m))
		tr, err := engine.ApplyMoveValue(pos, state, m)
		if err != nil {
			break
		}
		pos, state = tr.Position, tr.State
	}
	return sans
}
