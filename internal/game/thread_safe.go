package game

import (
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// SafeTracker wraps Tracker with mutex protection so that moves for one
// game arriving from several goroutines are applied one at a time.
type SafeTracker struct {
	tracker *Tracker
	mu      sync.RWMutex
}

// NewSafeTracker wraps an existing tracker. The tracker must not be used
// directly afterwards.
func NewSafeTracker(t *Tracker) *SafeTracker {
	return &SafeTracker{tracker: t}
}

// Apply atomically validates and applies a move.
func (s *SafeTracker) Apply(from, to chess.Square, promotion chess.Kind) (engine.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Apply(from, to, promotion)
}

// Play atomically parses and applies a move.
func (s *SafeTracker) Play(text string) (engine.Transition, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Play(text)
}

// Undo atomically takes back the last move.
func (s *SafeTracker) Undo() (chess.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Undo()
}

// Snapshot returns the current position and state together.
func (s *SafeTracker) Snapshot() (chess.Position, engine.GameState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Position(), s.tracker.State()
}

// Result returns the current outcome.
func (s *SafeTracker) Result() engine.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.Result()
}

// LegalMoves returns the legal moves of the side to move.
func (s *SafeTracker) LegalMoves() []chess.Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.LegalMoves()
}

// FEN returns the current position as FEN.
func (s *SafeTracker) FEN() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker.FEN()
}
