package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// DefaultPromotion is used when ApplyMove is given chess.NoKind for a move
// that promotes.
const DefaultPromotion = chess.Queen

// Transition is the result of applying a move.
type Transition struct {
	Position chess.Position
	State    GameState
	Move     chess.Move
	Captured chess.Piece // NoPiece if the move captured nothing
}

// ApplyMove plays from-to for the side to move and returns the new position
// and state. promotion selects the piece for a pawn reaching the last rank;
// chess.NoKind means DefaultPromotion. Any rejection is a *errors.MoveError
// wrapping errors.ErrIllegalMove, and pos and state are left untouched.
func ApplyMove(pos chess.Position, state GameState, from, to chess.Square, promotion chess.Kind) (Transition, error) {
	m, err := resolveMove(pos, state, from, to, promotion)
	if err != nil {
		err.Ply = state.Ply() + 1
		return Transition{}, err
	}
	return transition(pos, state, m), nil
}

// ApplyMoveValue validates and plays a recorded move, e.g. from a stored history.
func ApplyMoveValue(pos chess.Position, state GameState, m chess.Move) (Transition, error) {
	return ApplyMove(pos, state, m.From, m.To, m.Promotion)
}

// resolveMove finds the legal move matching the request.
func resolveMove(pos chess.Position, state GameState, from, to chess.Square, promotion chess.Kind) (chess.Move, *errors.MoveError) {
	if !from.Valid() || !to.Valid() {
		return chess.Move{}, errors.Illegal(from, to, errors.ErrInvalidSquare)
	}

	piece := pos.At(from)
	switch {
	case piece.IsEmpty():
		return chess.Move{}, errors.Illegal(from, to, fmt.Errorf("no piece on %s", from))
	case piece.Colour != state.ToMove:
		return chess.Move{}, errors.Illegal(from, to, fmt.Errorf("%s to move", state.ToMove))
	}

	if promotion != chess.NoKind && !chess.IsPromotionKind(promotion) {
		return chess.Move{}, errors.Illegal(from, to, fmt.Errorf("%w: %s", errors.ErrInvalidPromotion, promotion))
	}

	var candidates []chess.Move
	for _, m := range LegalMovesFrom(pos, from, state) {
		if m.To == to {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return chess.Move{}, errors.Illegal(from, to, nil)
	}

	if !candidates[0].IsPromotion() {
		if promotion != chess.NoKind {
			return chess.Move{}, errors.Illegal(from, to, fmt.Errorf("%w: %s does not promote", errors.ErrInvalidPromotion, piece))
		}
		return candidates[0], nil
	}

	if promotion == chess.NoKind {
		promotion = DefaultPromotion
	}
	for _, m := range candidates {
		if m.Promotion == promotion {
			return m, nil
		}
	}
	return chess.Move{}, errors.Illegal(from, to, errors.ErrInvalidPromotion)
}

// transition produces the position and state that follow a move already
// known to be legal. It never modifies its arguments.
func transition(pos chess.Position, state GameState, m chess.Move) Transition {
	colour := m.Piece.Colour
	next := state

	next.Castling = updateCastlingRights(state.Castling, m)
	next.EnPassant = enPassantSquare(m)

	if m.IsCapture() || m.IsPawnMove() {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	if colour == chess.Black {
		next.FullmoveNumber++
	}

	next.History = state.withMove(m)
	next.ToMove = colour.Opposite()

	return Transition{
		Position: applyToPosition(pos, m),
		State:    next,
		Move:     m,
		Captured: m.Captured,
	}
}
