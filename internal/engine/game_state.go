package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// GameState is the auxiliary state that accompanies a Position.
// It is only advanced through ApplyMove; every transition returns a new value.
type GameState struct {
	// Castling rights still available. Flags are never re-granted.
	Castling chess.CastlingRights

	// Square passed over by a two-square pawn advance on the previous move,
	// valid for the immediate reply only. NoSquare when there is none.
	EnPassant chess.Square

	// Half-moves since the last capture or pawn move.
	HalfmoveClock int

	// Move number, incremented after Black's move.
	FullmoveNumber int

	// Moves applied since the start of the game, in order. Append-only.
	History []chess.Move

	// Who has the next move.
	ToMove chess.Colour

	// FEN the game started from. Empty means the standard initial setup.
	StartFEN string
}

// InitialPosition returns the standard starting position.
func InitialPosition() chess.Position {
	return chess.InitialPosition()
}

// InitialGameState returns the state for a new game from the standard setup.
func InitialGameState() GameState {
	return GameState{
		Castling:       chess.AllCastling,
		EnPassant:      chess.NoSquare,
		FullmoveNumber: 1,
		ToMove:         chess.White,
	}
}

// Ply returns the number of half-moves played since the game started.
func (s GameState) Ply() int {
	return len(s.History)
}

// LastMove returns the most recent move, if any.
func (s GameState) LastMove() (chess.Move, bool) {
	if len(s.History) == 0 {
		return chess.Move{}, false
	}
	return s.History[len(s.History)-1], true
}

// withMove returns the history extended by m without sharing a backing array
// with the receiver's history.
func (s GameState) withMove(m chess.Move) []chess.Move {
	history := make([]chess.Move, len(s.History), len(s.History)+1)
	copy(history, s.History)
	return append(history, m)
}
